package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retrying struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries rate limits and unavailable providers with
// exponential backoff and jitter. An invalid reply is retried once.
// Truncated replies and rejected requests are returned at once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false
	for attempt := range r.cfg.MaxAttempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &invalidSeen) || attempt == r.cfg.MaxAttempts-1 {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}
	return nil, err
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var invalid *InvalidResponseError
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}
	var rl *RateLimitError
	var down *UnavailableError
	return errors.As(err, &rl) || errors.As(err, &down)
}

func (r *retrying) wait(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	mult := r.cfg.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(r.cfg.InitialWait) * math.Pow(mult, float64(attempt))
	if r.cfg.MaxWait > 0 {
		d = math.Min(d, float64(r.cfg.MaxWait))
	}
	// ±20% jitter.
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(d, 0))
}
