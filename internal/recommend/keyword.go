package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/skillmatch/internal/catalog"
)

// KeywordRecommender does exact, case-insensitive category lookup. Results
// keep input order and are not deduplicated.
type KeywordRecommender struct {
	mapping  *catalog.Mapping
	defaults []string
}

func NewKeywordRecommender(m *catalog.Mapping, defaults []string) *KeywordRecommender {
	return &KeywordRecommender{mapping: m, defaults: defaults}
}

func (r *KeywordRecommender) Mode() string { return ModeKeyword }

func (r *KeywordRecommender) Dedup() bool { return false }

func (r *KeywordRecommender) Match(_ context.Context, skills []string) ([]string, error) {
	skills, err := normalizeSkills(skills)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, skill := range skills {
		if items, ok := r.mapping.LookupFold(skill); ok {
			out = append(out, items...)
			continue
		}
		out = append(out, r.fallback(skill))
	}
	return out, nil
}

func (r *KeywordRecommender) fallback(skill string) string {
	return fmt.Sprintf("No direct matches found for '%s'. Try these: %s", skill, strings.Join(r.defaults, ", "))
}
