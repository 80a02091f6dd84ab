// Package llm provides the text-generation and embedding clients consumed by
// the query pipeline. Backends are injected as interface handles so pipeline
// runs stay testable with substitute implementations.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable signals that a backend is not configured or reachable, as
// opposed to a transient call failure.
var ErrUnavailable = errors.New("llm backend unavailable")

// DefaultMaxTokens bounds generation when the caller passes no explicit limit.
const DefaultMaxTokens = 2048

// Client generates text for prompts.
type Client interface {
	// Generate returns the completion for prompt, producing at most maxTokens
	// tokens. maxTokens <= 0 means DefaultMaxTokens.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// IsAvailable reports whether the backend is configured and usable.
	// Callers use it to distinguish "no backend" from a transient failure.
	IsAvailable() bool
}

// Embedder produces dense vectors for text.
type Embedder interface {
	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments embeds a batch of texts, one vector per input, aligned
	// by position.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
