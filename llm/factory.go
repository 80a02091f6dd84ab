package llm

import (
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

// FactoryConfig selects and configures a generation backend.
type FactoryConfig struct {
	// Provider is the backend name ("openai"). Empty falls through to any
	// provider with a configured key.
	Provider string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

// NewClient returns the generation backend for the given configuration.
// When no provider is usable it returns a MockClient so the pipeline can
// still produce its degraded answers instead of crashing at startup.
func NewClient(cfg FactoryConfig) Client {
	provider := strings.ToLower(cfg.Provider)

	if provider == "openai" && cfg.OpenAIAPIKey != "" {
		log.Info("using OpenAI generation backend (model=%s)", cfg.OpenAIModel)
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}

	// No explicit provider match: fall back to any configured key.
	if cfg.OpenAIAPIKey != "" {
		log.Info("falling back to OpenAI generation backend")
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}

	log.Warn("no LLM API key configured, using mock generation backend")
	return &MockClient{}
}
