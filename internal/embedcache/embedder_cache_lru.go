package embedcache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/ai"
)

func WrapLruCacheToEmbedder(e ai.IEmbedder, size int, ttl time.Duration) ai.IEmbedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &lruEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  ai.IEmbedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	modelName := l.next.ModelName()
	lookup := func(ctx context.Context, text string) ([]float32, bool, error) {
		cacheKey, _, _ := buildCacheKey(modelName, text)
		if cached, ok := l.cache.Get(cacheKey); ok {
			return cloneEmbedding(cached), true, nil
		}
		return nil, false, nil
	}
	out, missed, err := fillMissing(ctx, texts, lookup, l.next.Embed)
	if err != nil {
		return nil, err
	}
	for _, idx := range missed {
		cacheKey, _, _ := buildCacheKey(modelName, texts[idx])
		l.cache.Add(cacheKey, cloneEmbedding(out[idx]))
	}
	if hits := len(texts) - len(missed); hits > 0 {
		logutil.GetLogger(ctx).Debug("embedding cache hit (lru)", zap.Int("hits", hits), zap.Int("total", len(texts)))
	}
	return out, nil
}

func (l *lruEmbedder) ModelName() string {
	return l.next.ModelName()
}
