package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New builds the configured provider wrapped so that each attempt is
// logged and transient failures are retried.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base = NewAnthropic(cfg)
	case ProviderOpenAI:
		base = NewOpenAI(cfg)
	case ProviderOpenRouter:
		base = NewOpenRouter(cfg)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg)
	case ProviderMock:
		base = NewMock()
	}
	if err != nil {
		return nil, fmt.Errorf("llm: init %s: %w", cfg.Provider, err)
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetry
	}
	return WithRetry(WithLogging(base, log), retry), nil
}
