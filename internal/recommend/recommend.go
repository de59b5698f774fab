// Package recommend turns a list of self-reported skills into side hustle
// suggestions. Two interchangeable policies exist: semantic matching over
// catalog embeddings and exact keyword lookup.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/catalog"
)

const (
	ModeSemantic = "semantic"
	ModeKeyword  = "keyword"

	InvalidInputMessage = "Please provide a valid list of skills."
)

var ErrInvalidInput = errors.New("invalid skills input")

// ComputationError is an unexpected failure while scoring a request.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

type IRecommender interface {
	// Match returns recommendations or a typed error.
	Match(ctx context.Context, skills []string) ([]string, error)
	Mode() string
	// Dedup reports whether Match removes duplicate recommendations.
	Dedup() bool
}

type Config struct {
	Mode      string
	TopK      int
	BatchSize int
}

// New builds the recommender selected by cfg.Mode. The semantic variant embeds
// the whole catalog before returning, so a broken model fails here.
func New(ctx context.Context, cfg Config, sideHustles *catalog.Mapping, embedder ai.IEmbedder) (IRecommender, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch mode {
	case "", ModeSemantic:
		if embedder == nil {
			return nil, fmt.Errorf("semantic mode: %w", ai.ErrModelUnavailable)
		}
		return NewSemanticRecommender(ctx, sideHustles, embedder, WithTopK(cfg.TopK), WithBatchSize(cfg.BatchSize))
	case ModeKeyword:
		return NewKeywordRecommender(sideHustles, catalog.DefaultSuggestions()), nil
	default:
		return nil, fmt.Errorf("unsupported recommend mode: %s", cfg.Mode)
	}
}

// Recommend never fails: invalid input and computation errors become a
// single descriptive element.
func Recommend(ctx context.Context, r IRecommender, skills []string) []string {
	res, err := r.Match(ctx, skills)
	if err == nil {
		return res
	}
	if errors.Is(err, ErrInvalidInput) {
		return []string{InvalidInputMessage}
	}
	return []string{fmt.Sprintf("An error occurred while generating recommendations: %v", err)}
}

func normalizeSkills(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrInvalidInput
	}
	return out, nil
}

var _ IRecommender = (*SemanticRecommender)(nil)
var _ IRecommender = (*KeywordRecommender)(nil)
