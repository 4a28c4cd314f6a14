// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hal9000y/mailwright/internal/drafter"
)

// Config holds every environment setting of the service.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:"localhost:8080"`

	LLMProvider  string        `env:"LLM_PROVIDER" envDefault:"anthropic"`
	LLMModel     string        `env:"LLM_MODEL"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`
	LLMMaxTokens int64         `env:"LLM_MAX_TOKENS" envDefault:"1000"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	OllamaURL        string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`

	OAuthClientID     string        `env:"OAUTH_GOOGLE_CLIENT_ID"`
	OAuthClientSecret string        `env:"OAUTH_GOOGLE_CLIENT_SECRET"`
	IdentityCacheTTL  time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"10m"`
	IdentityTimeout   time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"5s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogDevelopment     bool     `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads envFile into the process environment when it is set, then parses
// the environment. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("godotenv.Load failed: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("env.ParseAs failed: %w", err)
	}

	return cfg, nil
}

// Drafter returns the settings of the selected language model provider.
func (c Config) Drafter() drafter.Config {
	provider := strings.ToLower(strings.TrimSpace(c.LLMProvider))

	cfg := drafter.Config{
		Provider:  provider,
		Model:     c.LLMModel,
		MaxTokens: c.LLMMaxTokens,
	}

	switch provider {
	case drafter.ProviderAnthropic:
		cfg.APIKey, cfg.BaseURL = c.AnthropicAPIKey, c.AnthropicBaseURL
	case drafter.ProviderOpenAI:
		cfg.APIKey, cfg.BaseURL = c.OpenAIAPIKey, c.OpenAIBaseURL
	case drafter.ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
	case drafter.ProviderOllama:
		cfg.BaseURL = c.OllamaURL
	}

	return cfg
}

// OAuthEnabled reports whether Google OAuth credentials are configured.
func (c Config) OAuthEnabled() bool {
	return c.OAuthClientID != "" && c.OAuthClientSecret != ""
}
