package embedcache

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/model"
)

type IEmbeddingCacheRepo interface {
	Get(ctx context.Context, modelName, contentHash string) ([]float32, bool, error)
	Save(ctx context.Context, item *model.EmbeddingCache) error
}

func WrapDBCacheToEmbedder(e ai.IEmbedder, cacheRepo IEmbeddingCacheRepo) ai.IEmbedder {
	if e == nil || cacheRepo == nil {
		return e
	}
	return &dbEmbedder{next: e, repo: cacheRepo}
}

type dbEmbedder struct {
	next ai.IEmbedder
	repo IEmbeddingCacheRepo
}

func (d *dbEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	name := d.next.ModelName()
	lookup := func(ctx context.Context, text string) ([]float32, bool, error) {
		_, contentHash, modelName := buildCacheKey(name, text)
		values, ok, err := d.repo.Get(ctx, modelName, contentHash)
		if err != nil {
			logutil.GetLogger(ctx).Warn("read embedding cache failed", zap.Error(err))
			return nil, false, nil
		}
		return values, ok, nil
	}
	out, missed, err := fillMissing(ctx, texts, lookup, d.next.Embed)
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	for _, idx := range missed {
		_, contentHash, modelName := buildCacheKey(name, texts[idx])
		if err := d.repo.Save(ctx, &model.EmbeddingCache{
			ModelName:   modelName,
			ContentHash: contentHash,
			Embedding:   out[idx],
			Ctime:       now,
		}); err != nil {
			logutil.GetLogger(ctx).Warn("failed to cache embedding", zap.Error(err))
		}
	}
	if hits := len(texts) - len(missed); hits > 0 {
		logutil.GetLogger(ctx).Debug("embedding cache hit (db)", zap.Int("hits", hits), zap.Int("total", len(texts)))
	}
	return out, nil
}

func (d *dbEmbedder) ModelName() string {
	return d.next.ModelName()
}
