package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
	"github.com/nimishaaaaaw/AgentGraph-Intel/session"
)

type stubRunner struct {
	state State
	err   error
}

func (s *stubRunner) Run(ctx context.Context, query, sessionID string) (State, error) {
	return s.state, s.err
}

func TestChatRecordsHistoryAndAnswers(t *testing.T) {
	runner := &stubRunner{state: State{
		FinalAnswer: "Here is the answer.",
		Sources:     []rag.Source{{Content: "chunk", Label: "a.txt", Score: 0.5}},
		Steps:       []string{"router:researcher", "researcher", "synthesiser"},
	}}
	store := session.NewMemoryStore(0)
	svc := NewChatService(runner, store, WithChatLogger(log.NopLogger{}))

	result, err := svc.Chat(context.Background(), "What is RRF?", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Here is the answer.", result.Answer)
	assert.Len(t, result.Sources, 1)
	assert.Equal(t, []string{"router:researcher", "researcher", "synthesiser"}, result.Steps)

	history, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, session.Message{Role: session.RoleUser, Content: "What is RRF?"}, history[0])
	assert.Equal(t, session.Message{Role: session.RoleAssistant, Content: "Here is the answer."}, history[1])
}

func TestChatFallsBackToRAGAnswer(t *testing.T) {
	runner := &stubRunner{state: State{RAGAnswer: "Retrieval answer."}}
	svc := NewChatService(runner, session.NewMemoryStore(0), WithChatLogger(log.NopLogger{}))

	result, err := svc.Chat(context.Background(), "question", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Retrieval answer.", result.Answer)
}

func TestChatPipelineErrorBecomesAnswer(t *testing.T) {
	runner := &stubRunner{err: errEngine}
	store := session.NewMemoryStore(0)
	svc := NewChatService(runner, store, WithChatLogger(log.NopLogger{}))

	result, err := svc.Chat(context.Background(), "question", "s1")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "I encountered an error processing your request")
	assert.Contains(t, result.Answer, errEngine.Error())
	assert.Equal(t, []string{"error"}, result.Steps)

	// The error answer is still recorded as the assistant turn.
	history, err := store.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, session.RoleAssistant, history[1].Role)
}

func TestChatDefaultSession(t *testing.T) {
	runner := &stubRunner{state: State{FinalAnswer: "ok"}}
	store := session.NewMemoryStore(0)
	svc := NewChatService(runner, store, WithChatLogger(log.NopLogger{}))

	_, err := svc.Chat(context.Background(), "hi", "")
	require.NoError(t, err)

	history, err := store.History(context.Background(), "default")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestClearHistory(t *testing.T) {
	runner := &stubRunner{state: State{FinalAnswer: "ok"}}
	store := session.NewMemoryStore(0)
	svc := NewChatService(runner, store, WithChatLogger(log.NopLogger{}))

	_, err := svc.Chat(context.Background(), "hi", "s1")
	require.NoError(t, err)
	require.NoError(t, svc.ClearHistory(context.Background(), "s1"))

	history, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
