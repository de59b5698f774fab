package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type lookupFunc func(ctx context.Context, text string) ([]float32, bool, error)

// fillMissing resolves every text through lookup and embeds only the misses,
// in one batch, preserving input order.
func fillMissing(ctx context.Context, texts []string, lookup lookupFunc, embed func(context.Context, []string) ([][]float32, error)) ([][]float32, []int, error) {
	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		values, ok, err := lookup(ctx, text)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			out[i] = values
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}
	if len(missTexts) == 0 {
		return out, nil, nil
	}
	res, err := embed(ctx, missTexts)
	if err != nil {
		return nil, nil, err
	}
	if len(res) != len(missTexts) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(res), len(missTexts))
	}
	for j, idx := range missIdx {
		out[idx] = res[j]
	}
	return out, missIdx, nil
}

func buildCacheKey(modelName, text string) (string, string, string) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		modelName = "unknown"
	}
	hash := sha256.Sum256([]byte(text))
	contentHash := hex.EncodeToString(hash[:])
	return "embed:" + modelName + ":" + contentHash, contentHash, modelName
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
