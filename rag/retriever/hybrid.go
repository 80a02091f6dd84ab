// Package retriever implements the retrieval strategies of the hybrid engine:
// dense vector search, BM25 lexical scoring over the dense candidate pool,
// and LLM-backed reranking.
package retriever

import (
	"context"
	"fmt"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// Default candidate pool sizes for the two retrieval stages and the fused cut.
const (
	DefaultDenseK  = 20
	DefaultSparseK = 20
	DefaultFinalK  = 10
)

// Config holds the hybrid retrieval knobs.
type Config struct {
	// DenseK is the nearest-neighbour count requested from the vector index.
	DenseK int

	// SparseK caps the lexical ranking computed over the dense pool.
	SparseK int

	// FinalK caps the fused result list.
	FinalK int

	// DenseWeight and SparseWeight are the RRF weights of the two rankings.
	DenseWeight  float64
	SparseWeight float64
}

// DefaultConfig returns the standard retrieval configuration.
func DefaultConfig() Config {
	return Config{
		DenseK:       DefaultDenseK,
		SparseK:      DefaultSparseK,
		FinalK:       DefaultFinalK,
		DenseWeight:  rag.DefaultDenseWeight,
		SparseWeight: rag.DefaultSparseWeight,
	}
}

// HybridRetriever combines dense similarity search with sparse lexical
// scoring. The sparse stage rescores only the dense candidate pool; it never
// searches the full corpus.
type HybridRetriever struct {
	embedder rag.Embedder
	store    rag.VectorStore
	scorer   rag.LexicalScorer
	config   Config
	logger   log.Logger
}

var _ rag.Retriever = (*HybridRetriever)(nil)

// Option customizes a HybridRetriever.
type Option func(*HybridRetriever)

// WithConfig replaces the retrieval configuration.
func WithConfig(config Config) Option {
	return func(h *HybridRetriever) { h.config = config }
}

// WithLogger overrides the retriever logger.
func WithLogger(logger log.Logger) Option {
	return func(h *HybridRetriever) { h.logger = logger }
}

// NewHybridRetriever wires the embedding, vector-index and lexical-scoring
// collaborators. A nil scorer disables the sparse stage entirely and the
// retriever degrades to dense-order fusion.
func NewHybridRetriever(embedder rag.Embedder, store rag.VectorStore, scorer rag.LexicalScorer, opts ...Option) *HybridRetriever {
	h := &HybridRetriever{
		embedder: embedder,
		store:    store,
		scorer:   scorer,
		config:   DefaultConfig(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Retrieve returns the fused top candidates for the query.
func (h *HybridRetriever) Retrieve(ctx context.Context, query string) ([]rag.FusedResult, error) {
	return h.retrieve(ctx, query, "")
}

// RetrieveFiltered restricts the dense search to one parent document.
func (h *HybridRetriever) RetrieveFiltered(ctx context.Context, query, docID string) ([]rag.FusedResult, error) {
	return h.retrieve(ctx, query, docID)
}

func (h *HybridRetriever) retrieve(ctx context.Context, query, docID string) ([]rag.FusedResult, error) {
	queryVector, err := h.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	var filter map[string]any
	if docID != "" {
		filter = map[string]any{rag.MetadataDocID: docID}
	}

	dense, err := h.store.Search(ctx, queryVector, h.config.DenseK, filter)
	if err != nil {
		return nil, fmt.Errorf("dense search failed: %w", err)
	}

	// No dense candidates means nothing for the sparse stage to rescore.
	if len(dense) == 0 {
		h.logger.Info("no dense results for query: %s", rag.Truncate(query, 80))
		return []rag.FusedResult{}, nil
	}

	sparse := h.sparseRank(query, dense)

	fused := rag.Fuse(dense, sparse, h.config.DenseWeight, h.config.SparseWeight)
	if len(fused) > h.config.FinalK {
		fused = fused[:h.config.FinalK]
	}

	h.logger.Info("hybrid retrieval: dense=%d sparse=%d returned=%d", len(dense), len(sparse), len(fused))
	return fused, nil
}

// sparseRank reorders the dense candidate pool by lexical relevance. When the
// scorer is missing or fails, the first SparseK dense candidates are returned
// in their original order, turning fusion into a degenerate single-ranking.
func (h *HybridRetriever) sparseRank(query string, dense []rag.SearchResult) []rag.SearchResult {
	limit := h.config.SparseK
	if limit > len(dense) {
		limit = len(dense)
	}

	if h.scorer == nil {
		return dense[:limit]
	}

	docs := make([]string, len(dense))
	for i, item := range dense {
		docs[i] = item.Document.Content
	}

	scores, err := h.scorer.Score(Tokenize(query), docs)
	if err != nil || len(scores) != len(dense) {
		h.logger.Warn("sparse scoring unavailable, falling back to dense order: %v", err)
		return dense[:limit]
	}

	ranked := make([]rag.SearchResult, len(dense))
	for i, item := range dense {
		ranked[i] = rag.SearchResult{Document: item.Document, Score: scores[i]}
	}
	sortByScore(ranked)

	return ranked[:limit]
}
