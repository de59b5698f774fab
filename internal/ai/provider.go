package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// IEmbedProvider is a raw embedding backend. The model is chosen per call.
type IEmbedProvider interface {
	Name() string
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// IEmbedder embeds a non-empty batch of texts, one vector per text in order.
type IEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}

type embedder struct {
	provider IEmbedProvider
	model    string
}

func NewEmbedder(p IEmbedProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, &EmbedError{Provider: e.provider.Name(), Err: fmt.Errorf("text at index %d: %w", i, ErrEmptyInput)}
		}
	}
	out, err := e.provider.Embed(ctx, e.model, texts)
	if err != nil {
		return nil, wrapEmbedErr(e.provider.Name(), err)
	}
	if len(out) != len(texts) {
		return nil, &EmbedError{
			Provider: e.provider.Name(),
			Err:      fmt.Errorf("unexpected number of embeddings: got %d, expected %d", len(out), len(texts)),
		}
	}
	for i, vec := range out {
		if len(vec) == 0 {
			return nil, &EmbedError{Provider: e.provider.Name(), Err: fmt.Errorf("empty embedding at index %d", i)}
		}
	}
	return out, nil
}

func (e *embedder) ModelName() string {
	return e.provider.Name() + "/" + e.model
}

type EmbedProviderFactory func(args interface{}) (IEmbedProvider, error)

var embedRegistry = map[string]EmbedProviderFactory{}

func RegisterEmbed(name string, factory EmbedProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func NewEmbedProvider(name string, args interface{}) (IEmbedProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("embedding provider is required")
	}
	factory := embedRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported embedding provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode embedding provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode embedding provider config: %w", err)
	}
	return nil
}
