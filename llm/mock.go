package llm

import "context"

// MockResponse is returned by MockClient when no canned response is set.
const MockResponse = "This is a mock response. Configure an LLM API key to get real answers."

// MockClient is a deterministic Client used in tests and when no API key is
// configured.
type MockClient struct {
	// Response overrides the default canned text when non-empty.
	Response string

	// Err, when set, is returned by every Generate call.
	Err error

	// Unavailable makes IsAvailable return false.
	Unavailable bool

	// Prompts records every prompt passed to Generate.
	Prompts []string
}

var _ Client = (*MockClient)(nil)

// Generate returns the canned response.
func (m *MockClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Unavailable {
		return "", ErrUnavailable
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return MockResponse, nil
}

// IsAvailable reports the configured availability.
func (m *MockClient) IsAvailable() bool {
	return !m.Unavailable
}
