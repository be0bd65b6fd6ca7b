package llm

import (
	"fmt"
	"time"
)

// Provider names accepted by New.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string // friendly alias or provider model ID; empty for the default
	APIKey   string
	BaseURL  string // optional endpoint override
	Retry    RetryConfig
}

// RetryConfig tunes retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is used when Config.Retry is zero.
var DefaultRetry = RetryConfig{
	MaxAttempts: 3,
	InitialWait: time.Second,
	MaxWait:     10 * time.Second,
	Multiplier:  2,
}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// Validate checks the provider name and that a key is set where one is needed.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("llm: %s needs an API key", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// resolveModel maps a friendly alias to a model ID. Unknown names pass
// through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
