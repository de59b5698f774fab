// Package similarity scores embedding vectors against a fixed corpus.
package similarity

import (
	"fmt"
	"math"
	"sort"
)

// DefaultK is the number of catalog entries kept per query.
const DefaultK = 3

type Vector []float32

type Matrix []Vector

type Match struct {
	Index int
	Score float64
}

type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// Cosine returns the cosine similarity of a and b. A zero vector scores 0.
func Cosine(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionError{Want: len(a), Got: len(b)}
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// clamp float error so callers can rely on [-1, 1]
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score, nil
}

// TopK returns the k best scoring corpus rows, highest first, ties by lower index.
func TopK(query Vector, corpus Matrix, k int) ([]Match, error) {
	if k <= 0 || len(corpus) == 0 {
		return []Match{}, nil
	}
	scored := make([]Match, 0, len(corpus))
	for i, row := range corpus {
		score, err := Cosine(query, row)
		if err != nil {
			return nil, fmt.Errorf("corpus row %d: %w", i, err)
		}
		scored = append(scored, Match{Index: i, Score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Dimension returns the shared row width, or an error if rows disagree.
func (m Matrix) Dimension() (int, error) {
	if len(m) == 0 {
		return 0, nil
	}
	dim := len(m[0])
	for i, row := range m {
		if len(row) != dim {
			return 0, fmt.Errorf("row %d: %w", i, &DimensionError{Want: dim, Got: len(row)})
		}
	}
	return dim, nil
}

func ToMatrix(rows [][]float32) Matrix {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		m[i] = Vector(row)
	}
	return m
}
