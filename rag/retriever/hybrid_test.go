package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

func TestHybridRetrieveEmptyDenseShortCircuits(t *testing.T) {
	scorer := &failingScorer{}
	h := NewHybridRetriever(&stubEmbedder{}, &stubStore{}, scorer)

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Empty(t, results)
	// Sparse scoring must not run over an empty candidate pool.
	assert.Zero(t, scorer.calls)
}

func TestHybridRetrieveFusesBothRankings(t *testing.T) {
	store := &stubStore{results: denseResults(6)}
	h := NewHybridRetriever(&stubEmbedder{}, store, reverseScorer{})

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, DefaultDenseK, store.lastK)

	// Every dense candidate survives fusion exactly once.
	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.Document.ID])
		seen[r.Document.ID] = true
	}

	// Scores are non-increasing.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestHybridRetrieveTruncatesToFinalK(t *testing.T) {
	store := &stubStore{results: denseResults(20)}
	h := NewHybridRetriever(&stubEmbedder{}, store, reverseScorer{})

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, results, DefaultFinalK)
}

func TestHybridRetrieveScorerFailureDegrades(t *testing.T) {
	store := &stubStore{results: denseResults(4)}
	h := NewHybridRetriever(&stubEmbedder{}, store, &failingScorer{})

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Degenerate fusion keeps dense order.
	for i, r := range results {
		assert.Equal(t, store.results[i].Document.ID, r.Document.ID)
	}
}

func TestHybridRetrieveNilScorer(t *testing.T) {
	store := &stubStore{results: denseResults(3)}
	h := NewHybridRetriever(&stubEmbedder{}, store, nil)

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestHybridRetrieveFilteredSetsFilter(t *testing.T) {
	store := &stubStore{results: denseResults(2)}
	h := NewHybridRetriever(&stubEmbedder{}, store, reverseScorer{})

	_, err := h.RetrieveFiltered(context.Background(), "query", "doc-9")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{rag.MetadataDocID: "doc-9"}, store.lastFilter)

	_, err = h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Nil(t, store.lastFilter)
}

func TestHybridRetrieveEmbeddingError(t *testing.T) {
	h := NewHybridRetriever(&stubEmbedder{err: errScorer}, &stubStore{}, nil)

	_, err := h.Retrieve(context.Background(), "query")
	assert.ErrorIs(t, err, errScorer)
}

func TestHybridRetrieveStoreError(t *testing.T) {
	h := NewHybridRetriever(&stubEmbedder{}, &stubStore{err: errScorer}, nil)

	_, err := h.Retrieve(context.Background(), "query")
	assert.ErrorIs(t, err, errScorer)
}

func TestHybridCustomConfig(t *testing.T) {
	store := &stubStore{results: denseResults(8)}
	h := NewHybridRetriever(&stubEmbedder{}, store, reverseScorer{}, WithConfig(Config{
		DenseK:       8,
		SparseK:      8,
		FinalK:       3,
		DenseWeight:  0.5,
		SparseWeight: 0.5,
	}))

	results, err := h.Retrieve(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 8, store.lastK)
}
