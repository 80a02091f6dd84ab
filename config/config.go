// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

// Config holds every runtime setting of the application.
type Config struct {
	AppName string
	Debug   bool

	// LLM backend
	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Neo4j
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string

	// Vector store
	PostgresDSN string

	// Session store
	RedisAddr string

	// Retrieval knobs
	RerankTopK int

	// API surface
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded settings from .env")
	}

	return Config{
		AppName: getEnv("APP_NAME", "agentgraph-intel"),
		Debug:   getBool("DEBUG", false),

		LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUsername: getEnv("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		RerankTopK: getInt("RERANK_TOP_K", 0),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

// LLMFactoryConfig maps the settings onto the LLM client factory.
func (c Config) LLMFactoryConfig() llm.FactoryConfig {
	return llm.FactoryConfig{
		Provider:      c.LLMProvider,
		OpenAIAPIKey:  c.OpenAIAPIKey,
		OpenAIModel:   c.OpenAIModel,
		OpenAIBaseURL: c.OpenAIBaseURL,
	}
}

// LogLevel derives the logging level from the debug flag.
func (c Config) LogLevel() log.Level {
	if c.Debug {
		return log.LevelDebug
	}
	return log.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
