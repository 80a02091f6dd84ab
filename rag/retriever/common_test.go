package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

var errScorer = errors.New("scorer offline")

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

type stubStore struct {
	results []rag.SearchResult
	err     error

	lastK      int
	lastFilter map[string]any
	calls      int
}

func (s *stubStore) Add(ctx context.Context, docs []rag.Document) error {
	return nil
}

func (s *stubStore) Search(ctx context.Context, queryVector []float32, k int, filter map[string]any) ([]rag.SearchResult, error) {
	s.calls++
	s.lastK = k
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) > k {
		return s.results[:k], nil
	}
	return s.results, nil
}

type failingScorer struct {
	calls int
}

func (f *failingScorer) Score(queryTokens []string, docs []string) ([]float64, error) {
	f.calls++
	return nil, errScorer
}

// reverseScorer ranks the pool in reverse input order.
type reverseScorer struct{}

func (reverseScorer) Score(queryTokens []string, docs []string) ([]float64, error) {
	scores := make([]float64, len(docs))
	for i := range docs {
		scores[i] = float64(i)
	}
	return scores, nil
}

func denseResults(n int) []rag.SearchResult {
	results := make([]rag.SearchResult, n)
	for i := range results {
		results[i] = rag.SearchResult{
			Document: rag.Document{
				ID:      fmt.Sprintf("chunk-%d", i),
				Content: fmt.Sprintf("content %d", i),
				Metadata: map[string]any{
					rag.MetadataDocID:  "doc-1",
					rag.MetadataSource: "doc.txt",
				},
			},
			Score: 1.0 - float64(i)*0.01,
		}
	}
	return results
}
