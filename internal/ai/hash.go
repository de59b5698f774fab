package ai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultHashDimensions = 384

type hashConfig struct {
	Dimensions int `json:"dimensions"`
}

// hashEmbedProvider is a local feature-hashing embedder over word tokens and
// character trigrams. Texts sharing words or word fragments land close together.
type hashEmbedProvider struct {
	dims int
}

func (p *hashEmbedProvider) Name() string {
	return "hash"
}

func (p *hashEmbedProvider) Embed(ctx context.Context, _ string, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, p.embedOne(text))
	}
	return out, nil
}

func (p *hashEmbedProvider) embedOne(text string) []float32 {
	vec := make([]float32, p.dims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		p.add(vec, "w:"+w, 1)
		padded := []rune(" " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			p.add(vec, "g:"+string(padded[i:i+3]), 0.5)
		}
	}
	normalize(vec)
	return vec
}

func (p *hashEmbedProvider) add(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum32()
	idx := int(sum % uint32(p.dims))
	if sum&(1<<31) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	magnitude := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / magnitude)
	}
}

func createHashEmbedFactory(args interface{}) (IEmbedProvider, error) {
	cfg := &hashConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = defaultHashDimensions
	}
	return &hashEmbedProvider{dims: dims}, nil
}

func init() {
	RegisterEmbed("hash", createHashEmbedFactory)
}
