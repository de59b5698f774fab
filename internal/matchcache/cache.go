// Package matchcache stores computed recommendation lists keyed by the
// canonical skill set.
package matchcache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "matches:"
	DefaultTTL = time.Hour
)

// ICache is a byte-oriented key/value store with per-key expiry.
type ICache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Key is order independent: skills are trimmed, lowercased and sorted.
func Key(skills []string) string {
	norm := make([]string, 0, len(skills))
	for _, s := range skills {
		norm = append(norm, strings.ToLower(strings.TrimSpace(s)))
	}
	sort.Strings(norm)
	return keyPrefix + strings.Join(norm, ",")
}

// MatchCache is best effort: every backend failure is logged and reported as
// a miss.
type MatchCache struct {
	backend ICache
	ttl     time.Duration
}

func New(backend ICache, ttl time.Duration) *MatchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MatchCache{backend: backend, ttl: ttl}
}

func (c *MatchCache) Enabled() bool {
	return c != nil && c.backend != nil
}

func (c *MatchCache) Get(ctx context.Context, skills []string) ([]string, bool) {
	if !c.Enabled() {
		return nil, false
	}
	key := Key(skills)
	logger := logutil.GetLogger(ctx).With(zap.String("key", key))
	raw, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		logger.Error("read match cache failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		logger.Debug("match cache miss")
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Error("decode cached matches failed", zap.Error(err))
		return nil, false
	}
	logger.Debug("match cache hit")
	return out, true
}

func (c *MatchCache) Set(ctx context.Context, skills []string, matches []string) {
	if !c.Enabled() {
		return
	}
	key := Key(skills)
	logger := logutil.GetLogger(ctx).With(zap.String("key", key))
	raw, err := json.Marshal(matches)
	if err != nil {
		logger.Error("encode matches failed", zap.Error(err))
		return
	}
	if err := c.backend.Set(ctx, key, raw, c.ttl); err != nil {
		logger.Error("write match cache failed", zap.Error(err))
		return
	}
	logger.Debug("matches cached", zap.Duration("ttl", c.ttl))
}

func (c *MatchCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.backend.Close()
}

type BackendFactory func(ctx context.Context, u *url.URL) (ICache, error)

var registry = map[string]BackendFactory{}

func Register(scheme string, factory BackendFactory) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if scheme == "" || factory == nil {
		return
	}
	registry[scheme] = factory
}

// Open picks a backend by URL scheme. An empty URL disables caching.
func Open(ctx context.Context, rawURL string) (ICache, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	factory := registry[strings.ToLower(u.Scheme)]
	if factory == nil {
		return nil, fmt.Errorf("unsupported cache backend: %s", u.Scheme)
	}
	return factory(ctx, u)
}
