// Package rag implements the hybrid retrieval engine: dense similarity search
// fused with sparse lexical scoring, followed by reranking and grounded answer
// generation. Collaborators (embedding service, vector index, generation
// backend) are consumed through interfaces defined here.
package rag

import "context"

// Metadata keys every stored chunk is expected to carry.
const (
	// MetadataDocID identifies the parent document of a chunk.
	MetadataDocID = "doc_id"
	// MetadataSource is the display label of the chunk's origin.
	MetadataSource = "source"
	// MetadataFilename is the original filename, when known.
	MetadataFilename = "filename"
)

// Document is one indexed text chunk. ID is stable across dense and sparse
// retrieval for the same underlying chunk; it is the fusion join key.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]any
	Embedding []float32
}

// DocID returns the parent document identifier from metadata.
func (d Document) DocID() string {
	if v, ok := d.Metadata[MetadataDocID].(string); ok {
		return v
	}
	return ""
}

// SourceLabel returns the display label for the chunk's origin.
func (d Document) SourceLabel() string {
	if v, ok := d.Metadata[MetadataSource].(string); ok && v != "" {
		return v
	}
	if v, ok := d.Metadata[MetadataFilename].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// SearchResult is a document with a single-strategy relevance score
// (cosine similarity for dense retrieval, BM25 for sparse).
type SearchResult struct {
	Document Document
	Score    float64
}

// FusedResult is a document annotated with its reciprocal-rank-fusion score
// and, after reranking, a pairwise relevance score. Fused results live for
// one query and are never persisted.
type FusedResult struct {
	Document Document

	// Score is the accumulated RRF score.
	Score float64

	// RerankScore is set by the reranker; zero until then.
	RerankScore float64
}

// Embedder turns text into fixed-length vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore is the dense index collaborator.
type VectorStore interface {
	// Add indexes documents, embedding them if needed.
	Add(ctx context.Context, docs []Document) error

	// Search returns the k nearest chunks for the query vector, most similar
	// first. A non-nil filter restricts matches to chunks whose metadata
	// contains every filter entry.
	Search(ctx context.Context, queryVector []float32, k int, filter map[string]any) ([]SearchResult, error)
}

// LexicalScorer assigns term-overlap relevance scores to documents,
// aligned by position with the input slice.
type LexicalScorer interface {
	Score(queryTokens []string, docs []string) ([]float64, error)
}

// Retriever produces a fused candidate ranking for a query.
type Retriever interface {
	// Retrieve returns the fused top candidates, most relevant first.
	Retrieve(ctx context.Context, query string) ([]FusedResult, error)

	// RetrieveFiltered restricts retrieval to a single parent document.
	RetrieveFiltered(ctx context.Context, query, docID string) ([]FusedResult, error)
}

// Reranker rescores candidates against the query and keeps the top topK.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []FusedResult, topK int) ([]FusedResult, error)
}
