package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// scriptedClient returns canned responses in order.
type scriptedClient struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "0", nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *scriptedClient) IsAvailable() bool { return true }

func candidates(n int) []rag.FusedResult {
	out := make([]rag.FusedResult, n)
	for i := range out {
		out[i] = rag.FusedResult{
			Document: rag.Document{ID: string(rune('a' + i)), Content: "passage"},
			Score:    1.0 - float64(i)*0.1,
		}
	}
	return out
}

func TestRerankOrdersByModelScore(t *testing.T) {
	client := &scriptedClient{responses: []string{"3", "9", "7"}}
	r := NewLLMReranker(client)

	ranked, err := r.Rerank(context.Background(), "q", candidates(3), 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "b", ranked[0].Document.ID)
	assert.Equal(t, 9.0, ranked[0].RerankScore)
	assert.Equal(t, "c", ranked[1].Document.ID)
	assert.Equal(t, "a", ranked[2].Document.ID)
}

func TestRerankKeepsTopK(t *testing.T) {
	client := &scriptedClient{responses: []string{"1", "2", "3", "4", "5", "6"}}
	r := NewLLMReranker(client)

	input := candidates(6)
	ranked, err := r.Rerank(context.Background(), "q", input, 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)

	// Result is drawn entirely from the input.
	ids := make(map[string]bool)
	for _, c := range input {
		ids[c.Document.ID] = true
	}
	for _, c := range ranked {
		assert.True(t, ids[c.Document.ID])
	}
}

func TestRerankUnavailableBackendPassthrough(t *testing.T) {
	r := NewLLMReranker(&llm.MockClient{Unavailable: true})

	input := candidates(5)
	ranked, err := r.Rerank(context.Background(), "q", input, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	for i, c := range ranked {
		assert.Equal(t, input[i].Document.ID, c.Document.ID)
		assert.Zero(t, c.RerankScore)
	}
}

func TestRerankScoringErrorPassthrough(t *testing.T) {
	client := &scriptedClient{err: errors.New("timeout")}
	r := NewLLMReranker(client)

	input := candidates(4)
	ranked, err := r.Rerank(context.Background(), "q", input, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, input[0].Document.ID, ranked[0].Document.ID)
	assert.Equal(t, input[1].Document.ID, ranked[1].Document.ID)
}

func TestRerankUnparsableScoreCountsAsZero(t *testing.T) {
	client := &scriptedClient{responses: []string{"high", "8"}}
	r := NewLLMReranker(client)

	ranked, err := r.Rerank(context.Background(), "q", candidates(2), 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Document.ID)
	assert.Zero(t, ranked[1].RerankScore)
}

func TestRerankEmptyInput(t *testing.T) {
	r := NewLLMReranker(&llm.MockClient{})
	ranked, err := r.Rerank(context.Background(), "q", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRerankPromptWrapping(t *testing.T) {
	client := &llm.MockClient{Response: "7"}
	r := NewLLMReranker(client)

	_, err := r.Rerank(context.Background(), "what is rrf", candidates(1), 1)
	require.NoError(t, err)
	require.Len(t, client.Prompts, 1)
	assert.Contains(t, client.Prompts[0], "what is rrf")
	assert.Contains(t, client.Prompts[0], "passage")
}
