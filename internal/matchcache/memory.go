package matchcache

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemorySize = 1024

// memoryCache uses a single expiry for every key; the ttl passed to Set is
// ignored.
type memoryCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryCache(size int, ttl time.Duration) ICache {
	if size <= 0 {
		size = defaultMemorySize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

func (m *memoryCache) Close() error {
	m.lru.Purge()
	return nil
}

// memory://?size=2048&ttl=3600
func createMemoryCache(_ context.Context, u *url.URL) (ICache, error) {
	q := u.Query()
	size, _ := strconv.Atoi(q.Get("size"))
	ttl := DefaultTTL
	if secs, err := strconv.Atoi(q.Get("ttl")); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	return NewMemoryCache(size, ttl), nil
}

func init() {
	Register("memory", createMemoryCache)
}
