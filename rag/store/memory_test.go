package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

func TestMemoryStoreAddAndSearch(t *testing.T) {
	s := NewMemoryVectorStore(nil)
	docs := []rag.Document{
		{ID: "a", Content: "first", Embedding: []float32{1, 0, 0}},
		{ID: "b", Content: "second", Embedding: []float32{0, 1, 0}},
		{ID: "c", Content: "third", Embedding: []float32{0.9, 0.1, 0}},
	}
	require.NoError(t, s.Add(context.Background(), docs))
	assert.Equal(t, 3, s.Len())

	results, err := s.Search(context.Background(), []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Document.ID)
	assert.Equal(t, "c", results[1].Document.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestMemoryStoreFilter(t *testing.T) {
	s := NewMemoryVectorStore(nil)
	require.NoError(t, s.Add(context.Background(), []rag.Document{
		{ID: "a", Embedding: []float32{1, 0}, Metadata: map[string]any{rag.MetadataDocID: "doc-1"}},
		{ID: "b", Embedding: []float32{1, 0}, Metadata: map[string]any{rag.MetadataDocID: "doc-2"}},
	}))

	results, err := s.Search(context.Background(), []float32{1, 0}, 10, map[string]any{rag.MetadataDocID: "doc-2"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Document.ID)
}

func TestMemoryStoreEmbedsOnAdd(t *testing.T) {
	s := NewMemoryVectorStore(NewMockEmbedder(16))
	require.NoError(t, s.Add(context.Background(), []rag.Document{
		{Content: "needs embedding"},
	}))
	assert.Equal(t, 1, s.Len())

	embedder := NewMockEmbedder(16)
	query, err := embedder.EmbedQuery(context.Background(), "needs embedding")
	require.NoError(t, err)

	results, err := s.Search(context.Background(), query, 1, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Document.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}

func TestMemoryStoreNoEmbedderError(t *testing.T) {
	s := NewMemoryVectorStore(nil)
	err := s.Add(context.Background(), []rag.Document{{Content: "bare"}})
	assert.Error(t, err)
}

func TestMemoryStoreInvalidK(t *testing.T) {
	s := NewMemoryVectorStore(nil)
	_, err := s.Search(context.Background(), []float32{1}, 0, nil)
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}

func TestMockEmbedderDeterministic(t *testing.T) {
	m := NewMockEmbedder(32)
	a, err := m.EmbedQuery(context.Background(), "same text")
	require.NoError(t, err)
	b, err := m.EmbedQuery(context.Background(), "same text")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c, err := m.EmbedQuery(context.Background(), "different text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMockEmbedderBatch(t *testing.T) {
	m := NewMockEmbedder(8)
	vectors, err := m.EmbedDocuments(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], 8)
}
