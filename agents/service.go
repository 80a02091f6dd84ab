package agents

import (
	"context"
	"fmt"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
	"github.com/nimishaaaaaw/AgentGraph-Intel/session"
)

// Runner executes the agent pipeline for one query.
type Runner interface {
	Run(ctx context.Context, query, sessionID string) (State, error)
}

// ChatResult is the service-level response for one chat turn.
type ChatResult struct {
	Answer  string       `json:"answer"`
	Sources []rag.Source `json:"sources"`
	Steps   []string     `json:"steps_taken"`
}

// ChatService coordinates chat turns: it records history around each
// pipeline run and shields callers from pipeline failures.
type ChatService struct {
	runner   Runner
	sessions session.Store
	logger   log.Logger
}

// NewChatService wires a pipeline runner and a session store.
func NewChatService(runner Runner, sessions session.Store, opts ...ChatServiceOption) *ChatService {
	s := &ChatService{runner: runner, sessions: sessions, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChatServiceOption customises a ChatService.
type ChatServiceOption func(*ChatService)

// WithChatLogger overrides the package default logger.
func WithChatLogger(logger log.Logger) ChatServiceOption {
	return func(s *ChatService) { s.logger = logger }
}

// Chat processes one user message through the pipeline. A pipeline failure
// becomes an apologetic answer rather than an error; only session storage
// failures are returned.
func (s *ChatService) Chat(ctx context.Context, message, sessionID string) (ChatResult, error) {
	if sessionID == "" {
		sessionID = "default"
	}

	if err := s.sessions.Append(ctx, sessionID, session.Message{Role: session.RoleUser, Content: message}); err != nil {
		return ChatResult{}, fmt.Errorf("recording user message: %w", err)
	}

	var result ChatResult
	state, err := s.runner.Run(ctx, message, sessionID)
	if err != nil {
		s.logger.Error("pipeline error: %v", err)
		result = ChatResult{
			Answer: fmt.Sprintf("I encountered an error processing your request: %v", err),
			Steps:  []string{"error"},
		}
	} else {
		answer := state.FinalAnswer
		if answer == "" {
			answer = state.RAGAnswer
		}
		result = ChatResult{Answer: answer, Sources: state.Sources, Steps: state.Steps}
	}

	if err := s.sessions.Append(ctx, sessionID, session.Message{Role: session.RoleAssistant, Content: result.Answer}); err != nil {
		return ChatResult{}, fmt.Errorf("recording assistant message: %w", err)
	}
	return result, nil
}

// History returns the conversation history for a session.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]session.Message, error) {
	return s.sessions.History(ctx, sessionID)
}

// ClearHistory removes the conversation history for a session.
func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	s.logger.Info("cleared history for session %q", sessionID)
	return s.sessions.Clear(ctx, sessionID)
}
