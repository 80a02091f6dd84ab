// Package store provides vector index implementations behind the
// rag.VectorStore interface: an in-memory cosine store for tests and small
// corpora, and a Postgres/pgvector store for persistent deployments.
package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// MemoryVectorStore is an in-memory cosine-similarity vector store.
// Safe for concurrent use by independent pipeline runs.
type MemoryVectorStore struct {
	mu        sync.RWMutex
	documents []rag.Document
	embedder  rag.Embedder
}

var _ rag.VectorStore = (*MemoryVectorStore)(nil)

// NewMemoryVectorStore creates an empty store. The embedder is used for
// documents added without a precomputed embedding.
func NewMemoryVectorStore(embedder rag.Embedder) *MemoryVectorStore {
	return &MemoryVectorStore{embedder: embedder}
}

// Add indexes documents, embedding any that lack a vector. Documents without
// an ID get a generated one.
func (s *MemoryVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	prepared := make([]rag.Document, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("document %q has no embedding and no embedder is configured", doc.ID)
			}
			embedding, err := s.embedder.EmbedQuery(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("embedding document %q failed: %w", doc.ID, err)
			}
			doc.Embedding = embedding
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		prepared = append(prepared, doc)
	}

	s.mu.Lock()
	s.documents = append(s.documents, prepared...)
	s.mu.Unlock()
	return nil
}

// Search returns the k most similar documents, filtered by metadata.
func (s *MemoryVectorStore) Search(ctx context.Context, queryVector []float32, k int, filter map[string]any) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]rag.SearchResult, 0, len(s.documents))
	for _, doc := range s.documents {
		if !matchesFilter(doc.Metadata, filter) {
			continue
		}
		results = append(results, rag.SearchResult{
			Document: doc,
			Score:    cosineSimilarity(queryVector, doc.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of indexed documents.
func (s *MemoryVectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func matchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
