package store

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEmbedder produces deterministic pseudo-embeddings from text hashes.
// Identical inputs always map to identical vectors, which makes similarity
// assertions in tests reproducible without a real embedding backend.
type MockEmbedder struct {
	Dimension int
}

// NewMockEmbedder creates a mock embedder with the given vector dimension.
func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 64
	}
	return &MockEmbedder{Dimension: dimension}
}

// EmbedQuery returns a deterministic unit-length vector for the text.
func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, m.Dimension)
	var norm float64
	for i := range vector {
		v := math.Sin(float64(seed%100000)*0.001 + float64(i)*0.7)
		vector[i] = float32(v)
		norm += v * v
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}
	return vector, nil
}

// EmbedDocuments embeds each text independently.
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := m.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}
