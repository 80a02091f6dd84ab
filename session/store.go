// Package session stores per-conversation message history.
package session

import (
	"context"
	"sync"
)

// DefaultMaxMessages caps stored history per session so long conversations
// cannot grow without bound.
const DefaultMaxMessages = 40

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store persists conversation history keyed by session ID.
type Store interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps history in process memory. Suitable for tests and
// single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Message
	max      int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store. A non-positive max falls
// back to DefaultMaxMessages.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &MemoryStore{sessions: make(map[string][]Message), max: max}
}

// Append adds a message, dropping the oldest entries beyond the cap.
func (s *MemoryStore) Append(ctx context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], msg)
	if len(history) > s.max {
		history = history[len(history)-s.max:]
	}
	s.sessions[sessionID] = history
	return nil
}

// History returns a copy of the session's messages, oldest first.
func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[sessionID]
	out := make([]Message, len(history))
	copy(out, history)
	return out, nil
}

// Clear removes all history for a session.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
