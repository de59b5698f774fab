package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	out   [][]float32
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Embed(_ context.Context, _ string, _ []string) ([][]float32, error) {
	s.calls++
	return s.out, s.err
}

func TestNewEmbedProviderRegistry(t *testing.T) {
	p, err := NewEmbedProvider(" HASH ", map[string]interface{}{"dimensions": 16})
	require.NoError(t, err)
	require.Equal(t, "hash", p.Name())

	_, err = NewEmbedProvider("", nil)
	require.Error(t, err)
	_, err = NewEmbedProvider("nope", nil)
	require.Error(t, err)
}

func TestEmbedderValidatesInput(t *testing.T) {
	p := &stubProvider{name: "stub", out: [][]float32{{1}}}
	e := NewEmbedder(p, "m")
	require.Equal(t, "stub/m", e.ModelName())

	_, err := e.Embed(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = e.Embed(context.Background(), []string{"ok", "  "})
	var embedErr *EmbedError
	require.True(t, errors.As(err, &embedErr))
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Equal(t, 0, p.calls)

	_, err = e.Embed(context.Background(), []string{"a", "b"})
	require.True(t, errors.As(err, &embedErr))
	require.Equal(t, 1, p.calls)

	p.err = errors.New("boom")
	_, err = e.Embed(context.Background(), []string{"a"})
	require.True(t, errors.As(err, &embedErr))
	require.Equal(t, "stub", embedErr.Provider)
}

func TestHashEmbedderDeterministic(t *testing.T) {
	p, err := NewEmbedProvider("hash", nil)
	require.NoError(t, err)
	e := NewEmbedder(p, "local")

	first, err := e.Embed(context.Background(), []string{"Web developer", "Online tutor"})
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), []string{"Web developer", "Online tutor"})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first[0], defaultHashDimensions)

	var norm float64
	for _, v := range first[0] {
		norm += float64(v) * float64(v)
	}
	require.InDelta(t, 1.0, norm, 1e-5)
}

func TestGroupEmbedderFallsBack(t *testing.T) {
	bad := NewEmbedder(&stubProvider{name: "bad", err: errors.New("down")}, "m")
	good := NewEmbedder(&stubProvider{name: "good", out: [][]float32{{0.5, 0.5}}}, "m")
	g := NewGroupEmbedder([]EmbedderEntry{{Name: "bad", Embedder: bad}, {Name: "good", Embedder: good}})
	require.Equal(t, "bad|good", g.ModelName())

	out, err := g.Embed(context.Background(), []string{"x"})
	require.NoError(t, err)
	require.Equal(t, [][]float32{{0.5, 0.5}}, out)

	require.Nil(t, NewGroupEmbedder(nil))
	require.Equal(t, good, NewGroupEmbedder([]EmbedderEntry{{Name: "good", Embedder: good}}))
}

func TestOllamaProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "all-minilm", req.Model)
		resp := ollamaEmbedResponse{}
		for range req.Input {
			resp.Embeddings = append(resp.Embeddings, []float32{1, 0, 0})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p, err := NewEmbedProvider("ollama", map[string]interface{}{"base_url": srv.URL})
	require.NoError(t, err)
	out, err := NewEmbedder(p, "all-minilm").Embed(context.Background(), []string{"coding", "writing"})
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestOllamaProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := NewEmbedProvider("ollama", map[string]interface{}{"base_url": srv.URL})
	require.NoError(t, err)
	_, err = NewEmbedder(p, "missing").Embed(context.Background(), []string{"coding"})
	var embedErr *EmbedError
	require.True(t, errors.As(err, &embedErr))
	require.Contains(t, err.Error(), "model not found")
}

func TestUnconfiguredRemoteProviders(t *testing.T) {
	for _, name := range []string{"openai", "gemini"} {
		p, err := NewEmbedProvider(name, nil)
		require.NoError(t, err)
		_, err = NewEmbedder(p, "m").Embed(context.Background(), []string{"x"})
		require.ErrorIs(t, err, ErrUnavailable, name)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	p := &stubProvider{name: "flaky", err: errors.New("timeout")}
	cfg := DefaultBreakerConfig()
	cfg.MinRequests = 2
	e := WrapBreaker(NewEmbedder(p, "m"), "test", cfg)

	for i := 0; i < 2; i++ {
		_, err := e.Embed(context.Background(), []string{"x"})
		require.Error(t, err)
	}
	_, err := e.Embed(context.Background(), []string{"x"})
	var embedErr *EmbedError
	require.True(t, errors.As(err, &embedErr))
	require.Equal(t, 2, p.calls)
	require.Equal(t, "flaky/m", e.ModelName())
}
