package recommend

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/catalog"
)

type fixedEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fixedEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[strings.ToLower(text)]
		if !ok {
			vec = []float32{0, 0, 0, 1}
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fixedEmbedder) ModelName() string { return "fixed" }

func hashEmbedder(t *testing.T) ai.IEmbedder {
	t.Helper()
	p, err := ai.NewEmbedProvider("hash", nil)
	require.NoError(t, err)
	return ai.NewEmbedder(p, "local")
}

func smallCatalog() *catalog.Mapping {
	return catalog.NewMapping([]catalog.Category{
		{Name: "coding", Items: []string{"Web developer", "Tech consultant"}},
		{Name: "writing", Items: []string{"Copywriter", "Blog creator"}},
	})
}

func TestSemanticRecommenderTopKPerSkill(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float32{
		"web developer":   {1, 0, 0, 0},
		"tech consultant": {0.9, 0.1, 0, 0},
		"copywriter":      {0, 1, 0, 0},
		"blog creator":    {0, 0.9, 0.1, 0},
		"coding":          {1, 0, 0, 0},
		"writing":         {0, 1, 0, 0},
	}}
	r, err := NewSemanticRecommender(context.Background(), smallCatalog(), emb, WithTopK(1))
	require.NoError(t, err)
	require.Equal(t, 4, r.Dimension())

	got, err := r.Match(context.Background(), []string{"writing", "coding", "coding"})
	require.NoError(t, err)
	require.Equal(t, []string{"Copywriter", "Web developer"}, got)
}

func TestSemanticRecommenderDedupSortedIdempotent(t *testing.T) {
	r, err := NewSemanticRecommender(context.Background(), catalog.SideHustles(), hashEmbedder(t))
	require.NoError(t, err)
	require.True(t, r.Dedup())
	require.Len(t, r.Entries(), catalog.SideHustles().Len())

	inputs := [][]string{
		{"coding"},
		{"coding", "coding"},
		{"writing", "design", "web development", "photo editing"},
	}
	for _, in := range inputs {
		got, err := r.Match(context.Background(), in)
		require.NoError(t, err)
		require.True(t, sort.StringsAreSorted(got), "%v", got)
		seen := map[string]bool{}
		for _, s := range got {
			require.False(t, seen[s], "duplicate %q", s)
			seen[s] = true
		}
		require.LessOrEqual(t, len(got), 3*len(in))

		again, err := r.Match(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, got, again)
	}

	single, err := r.Match(context.Background(), []string{"coding"})
	require.NoError(t, err)
	require.Len(t, single, 3)
	doubled, err := r.Match(context.Background(), []string{"coding", "coding"})
	require.NoError(t, err)
	require.Equal(t, single, doubled)
}

func TestSemanticRecommenderFailsFast(t *testing.T) {
	emb := &fixedEmbedder{err: errors.New("model missing")}
	_, err := NewSemanticRecommender(context.Background(), smallCatalog(), emb)
	require.ErrorIs(t, err, ai.ErrModelUnavailable)

	_, err = New(context.Background(), Config{Mode: ModeSemantic}, smallCatalog(), nil)
	require.ErrorIs(t, err, ai.ErrModelUnavailable)
}

func TestSemanticRecommenderComputationError(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float32{}}
	r, err := NewSemanticRecommender(context.Background(), smallCatalog(), emb, WithBatchSize(1))
	require.NoError(t, err)
	require.Equal(t, 4, emb.calls)

	emb.err = errors.New("timeout")
	_, err = r.Match(context.Background(), []string{"coding"})
	var compErr *ComputationError
	require.True(t, errors.As(err, &compErr))

	got := Recommend(context.Background(), r, []string{"coding"})
	require.Len(t, got, 1)
	require.Contains(t, got[0], "timeout")
}

func TestSemanticRecommenderDimensionMismatch(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float32{"coding": {1, 0}}}
	r, err := NewSemanticRecommender(context.Background(), smallCatalog(), emb)
	require.NoError(t, err)
	_, err = r.Match(context.Background(), []string{"coding"})
	var compErr *ComputationError
	require.True(t, errors.As(err, &compErr))
}

func TestInvalidInput(t *testing.T) {
	r, err := New(context.Background(), Config{Mode: ModeKeyword}, catalog.SideHustles(), nil)
	require.NoError(t, err)
	for _, in := range [][]string{nil, {}, {"", "   "}} {
		_, err := r.Match(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.Equal(t, []string{InvalidInputMessage}, Recommend(context.Background(), r, in))
	}

	sem, err := NewSemanticRecommender(context.Background(), smallCatalog(), hashEmbedder(t))
	require.NoError(t, err)
	require.Equal(t, []string{InvalidInputMessage}, Recommend(context.Background(), sem, []string{}))
}

func TestKeywordRecommender(t *testing.T) {
	r, err := New(context.Background(), Config{Mode: "KEYWORD"}, catalog.SideHustles(), nil)
	require.NoError(t, err)
	require.Equal(t, ModeKeyword, r.Mode())
	require.False(t, r.Dedup())

	got, err := r.Match(context.Background(), []string{"coding", "coding"})
	require.NoError(t, err)
	once := []string{"Freelance developer", "Tech consultant", "Web developer"}
	require.Equal(t, append(append([]string{}, once...), once...), got)

	got, err = r.Match(context.Background(), []string{"Data Analysis", "juggling"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"Data analyst",
		"Business intelligence consultant",
		"Freelance statistician",
		"No direct matches found for 'juggling'. Try these: Consider exploring general freelance opportunities, Look into popular gig economy platforms like Upwork or Fiverr",
	}, got)
}

func TestNewUnsupportedMode(t *testing.T) {
	_, err := New(context.Background(), Config{Mode: "magic"}, smallCatalog(), nil)
	require.Error(t, err)
}

func TestAdvisor(t *testing.T) {
	a := NewAdvisor(catalog.Interests(), catalog.Habits())
	require.Equal(t, []string{"Coding", "Data analysis"}, a.RecommendSkills([]string{"technical"}))
	require.Equal(t, []string{}, a.RecommendSkills([]string{"unknown_interest"}))
	require.Equal(t, []string{"Graphic design", "Content creation", "Coding", "Data analysis"},
		a.RecommendSkills([]string{"creative", "technical"}))

	require.NotEmpty(t, a.HabitRecommendations("Freelance Developer"))
	require.Equal(t, []string{}, a.HabitRecommendations("astronaut"))
}
