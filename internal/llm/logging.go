package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type logging struct {
	inner Provider
	log   *zap.Logger
}

// WithLogging logs every request with its purpose, latency and token use.
func WithLogging(p Provider, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &logging{inner: p, log: log.With(zap.String("component", "llm"))}
}

func (l *logging) ModelID() string { return l.inner.ModelID() }

func (l *logging) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Duration("latency", time.Since(start)),
	}
	if req.Schema != nil {
		fields = append(fields, zap.String("schema", req.Schema.Name))
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.log.Debug("llm request",
		append(fields, zap.Int("input_tokens", resp.Usage.InputTokens), zap.Int("output_tokens", resp.Usage.OutputTokens))...)
	return resp, nil
}
