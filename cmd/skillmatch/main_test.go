package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/skillmatch/internal/config"
)

func TestBuildEmbedderHashWithFallback(t *testing.T) {
	cfg := &config.Config{}
	cfg.Embedding.Provider = "hash"
	cfg.Embedding.Model = "local"
	cfg.Embedding.Data = map[string]interface{}{"dimensions": 64}
	cfg.Embedding.Fallbacks = []config.EmbeddingBackend{{Provider: "hash", Model: "backup"}}
	cfg.Embedding.Breaker = true
	cfg.Embedding.LRUSize = 16
	cfg.Embedding.LRUTTLSeconds = 60

	e, err := buildEmbedder(cfg, nil)
	require.NoError(t, err)
	vecs, err := e.Embed(context.Background(), []string{"coding"})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	require.Len(t, vecs[0], 64)
}

func TestBuildEmbedderUnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Embedding.Provider = "nope"
	_, err := buildEmbedder(cfg, nil)
	require.Error(t, err)
}

func TestRunMatchKeyword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Recommend.Mode = "keyword"
	require.NoError(t, runMatch(context.Background(), cfg, []string{"coding"}))
}
