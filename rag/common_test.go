package rag

import (
	"context"
	"errors"
)

var errRetrieval = errors.New("index offline")

type stubRetriever struct {
	results []FusedResult
	err     error

	lastDocID string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) ([]FusedResult, error) {
	s.lastDocID = ""
	return s.results, s.err
}

func (s *stubRetriever) RetrieveFiltered(ctx context.Context, query, docID string) ([]FusedResult, error) {
	s.lastDocID = docID
	return s.results, s.err
}

// passthroughReranker keeps caller order and cuts to topK.
type passthroughReranker struct{}

func (passthroughReranker) Rerank(ctx context.Context, query string, candidates []FusedResult, topK int) ([]FusedResult, error) {
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates, nil
}

func fusedDoc(id, content, label string, score float64) FusedResult {
	return FusedResult{
		Document: Document{
			ID:      id,
			Content: content,
			Metadata: map[string]any{
				MetadataDocID:  "doc-" + id,
				MetadataSource: label,
			},
		},
		Score: score,
	}
}
