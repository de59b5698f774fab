package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/catalog"
	"github.com/xxxsen/skillmatch/internal/similarity"
)

const defaultBatchSize = 64

type Option func(*SemanticRecommender)

func WithTopK(k int) Option {
	return func(r *SemanticRecommender) {
		if k > 0 {
			r.k = k
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *SemanticRecommender) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// SemanticRecommender holds the catalog and its embedding matrix. Both are
// read-only after construction.
type SemanticRecommender struct {
	embedder  ai.IEmbedder
	entries   []catalog.Entry
	matrix    similarity.Matrix
	dim       int
	k         int
	batchSize int
}

func NewSemanticRecommender(ctx context.Context, m *catalog.Mapping, embedder ai.IEmbedder, opts ...Option) (*SemanticRecommender, error) {
	r := &SemanticRecommender{
		embedder:  embedder,
		entries:   m.Flatten(),
		k:         similarity.DefaultK,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	matrix, err := r.embedBatches(ctx, catalog.Descriptions(r.entries))
	if err != nil {
		return nil, fmt.Errorf("embed catalog: %w", errors.Join(ai.ErrModelUnavailable, err))
	}
	dim, err := matrix.Dimension()
	if err != nil {
		return nil, fmt.Errorf("embed catalog: %w", errors.Join(ai.ErrModelUnavailable, err))
	}
	r.matrix = matrix
	r.dim = dim
	logutil.GetLogger(ctx).Info("catalog embeddings ready",
		zap.String("model", embedder.ModelName()),
		zap.Int("entries", len(r.entries)),
		zap.Int("dimension", dim),
	)
	return r, nil
}

func (r *SemanticRecommender) embedBatches(ctx context.Context, texts []string) (similarity.Matrix, error) {
	out := make(similarity.Matrix, 0, len(texts))
	for start := 0; start < len(texts); start += r.batchSize {
		end := start + r.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := r.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, similarity.ToMatrix(vecs)...)
	}
	return out, nil
}

func (r *SemanticRecommender) Mode() string { return ModeSemantic }

func (r *SemanticRecommender) Dedup() bool { return true }

func (r *SemanticRecommender) Dimension() int { return r.dim }

func (r *SemanticRecommender) Entries() []catalog.Entry {
	out := make([]catalog.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Match embeds each skill, keeps the top k catalog entries per skill and
// returns the union sorted ascending.
func (r *SemanticRecommender) Match(ctx context.Context, skills []string) ([]string, error) {
	skills, err := normalizeSkills(skills)
	if err != nil {
		return nil, err
	}
	unique := uniqueStrings(skills)
	vecs, err := r.embedBatches(ctx, unique)
	if err != nil {
		return nil, &ComputationError{Op: "embed skills", Err: err}
	}
	seen := make(map[string]struct{})
	for i, vec := range vecs {
		if len(vec) != r.dim {
			return nil, &ComputationError{Op: "score skills", Err: &similarity.DimensionError{Want: r.dim, Got: len(vec)}}
		}
		matches, err := similarity.TopK(similarity.Vector(vec), r.matrix, r.k)
		if err != nil {
			return nil, &ComputationError{Op: "score skills", Err: err}
		}
		for _, m := range matches {
			desc := r.entries[m.Index].Description
			logutil.GetLogger(ctx).Debug("semantic match",
				zap.String("skill", unique[i]),
				zap.String("match", desc),
				zap.Float64("score", m.Score),
			)
			seen[desc] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for desc := range seen {
		out = append(out, desc)
	}
	sort.Strings(out)
	return out, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
