package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var pairSchema = &Schema{
	Name: "test-pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"term":       map[string]any{"type": "string"},
			"definition": map[string]any{"type": "string"},
		},
		"required":             []any{"term", "definition"},
		"additionalProperties": false,
	},
}

func serveJSON(t *testing.T, status int, body any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 12, "output_tokens": 8},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, anthropicReply(`{"term":"ATP","definition":"energy currency"}`, "end_turn"))
	p := NewAnthropic(Config{APIKey: "k", BaseURL: srv.URL})
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), UserPrompt("sys", "define ATP", pairSchema, 200))
	require.NoError(t, err)
	assert.JSONEq(t, `{"term":"ATP","definition":"energy currency"}`, string(resp.Content))
	assert.Equal(t, 20, resp.Usage.Total())
	assert.Equal(t, "end", resp.StopReason)
}

func TestAnthropicSchemaViolation(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, anthropicReply(`{"term":"ATP"}`, "end_turn"))
	p := NewAnthropic(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), UserPrompt("", "define ATP", pairSchema, 200))
	var invalid *InvalidResponseError
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestAnthropicTruncated(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, anthropicReply(`{"term":"A`, "max_tokens"))
	p := NewAnthropic(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), UserPrompt("", "x", pairSchema, 5))
	var truncated *TruncatedError
	assert.True(t, errors.As(err, &truncated), "got %v", err)
}

func TestAnthropicRateLimit(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusTooManyRequests, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
	})
	p := NewAnthropic(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), UserPrompt("", "x", nil, 10))
	var rl *RateLimitError
	assert.True(t, errors.As(err, &rl), "got %v", err)
}

func openAIReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 10, "total_tokens": 40},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, openAIReply(`{"term":"DNA","definition":"genetic code"}`, "stop"))
	p := NewOpenAI(Config{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1"})
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	resp, err := p.Generate(context.Background(), UserPrompt("sys", "define DNA", pairSchema, 200))
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Usage.InputTokens)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
}

func TestOpenAITruncated(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, openAIReply(`{"term":`, "length"))
	p := NewOpenAI(Config{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1"})

	_, err := p.Generate(context.Background(), UserPrompt("", "x", pairSchema, 5))
	var truncated *TruncatedError
	assert.True(t, errors.As(err, &truncated), "got %v", err)
}

func TestOpenAIServerError(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusBadGateway, map[string]any{
		"error": map[string]any{"message": "upstream down", "type": "server_error"},
	})
	p := NewOpenAI(Config{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1"})

	_, err := p.Generate(context.Background(), UserPrompt("", "x", nil, 10))
	var down *UnavailableError
	assert.True(t, errors.As(err, &down), "got %v", err)
}

func TestOpenRouterDefaults(t *testing.T) {
	p := NewOpenRouter(Config{Provider: ProviderOpenRouter, APIKey: "k"})
	assert.Equal(t, "google/gemini-2.0-flash-001", p.ModelID())

	srv, hits := serveJSON(t, http.StatusOK, openAIReply(`{"term":"x","definition":"y"}`, "stop"))
	p = NewOpenRouter(Config{Provider: ProviderOpenRouter, APIKey: "k", Model: "meta/llama", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), UserPrompt("", "x", pairSchema, 50))
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "a BaseURL override wins over the OpenRouter default")
}

func TestGeminiGenerate(t *testing.T) {
	srv, _ := serveJSON(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": `{"term":"RNA","definition":"messenger"}`}}},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 7, "candidatesTokenCount": 3, "totalTokenCount": 10},
	})
	p, err := NewGemini(context.Background(), Config{Provider: ProviderGemini, APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelID())

	resp, err := p.Generate(context.Background(), UserPrompt("sys", "define RNA", pairSchema, 100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"term":"RNA","definition":"messenger"}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.Total())
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"correct": map[string]any{"type": "integer"},
			"kind":    map[string]any{"type": "string", "enum": []any{"mc", "open"}},
		},
		"required": []string{"options", "correct"},
	})
	assert.Equal(t, "OBJECT", string(s.Type))
	assert.Equal(t, "ARRAY", string(s.Properties["options"].Type))
	assert.Equal(t, "STRING", string(s.Properties["options"].Items.Type))
	assert.Equal(t, "INTEGER", string(s.Properties["correct"].Type))
	assert.Equal(t, []string{"mc", "open"}, s.Properties["kind"].Enum)
	assert.Equal(t, []string{"options", "correct"}, s.Required)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "my-model", resolveModel("my-model", anthropicModels))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Provider: ProviderMock}.Validate())
	assert.NoError(t, Config{Provider: ProviderGemini, APIKey: "k"}.Validate())
	assert.ErrorContains(t, Config{Provider: ProviderAnthropic}.Validate(), "API key")
	assert.ErrorContains(t, Config{Provider: "bard"}.Validate(), "unknown provider")
}

func TestNewWrapsProvider(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: ProviderMock}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = New(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	assert.Error(t, err)
}

func TestCheckSchema(t *testing.T) {
	assert.NoError(t, checkSchema(nil, json.RawMessage(`not json`)))
	assert.NoError(t, checkSchema(pairSchema, json.RawMessage(`{"term":"a","definition":"b"}`)))

	for _, raw := range []string{`not json`, `{"term":"a"}`, `{"term":"a","definition":"b","extra":1}`} {
		err := checkSchema(pairSchema, json.RawMessage(raw))
		var invalid *InvalidResponseError
		assert.True(t, errors.As(err, &invalid), "%s: got %v", raw, err)
	}
}

func TestRetry(t *testing.T) {
	fast := RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}
	ok := MockReply{Content: json.RawMessage(`{"term":"a","definition":"b"}`)}

	t.Run("recovers from transient errors", func(t *testing.T) {
		m := NewMock(MockReply{Err: &RateLimitError{}}, MockReply{Err: &UnavailableError{}}, ok)
		resp, err := WithRetry(m, fast).Generate(context.Background(), UserPrompt("", "x", pairSchema, 10))
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Len(t, m.Calls(), 3)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		m := NewMock(MockReply{Err: &UnavailableError{}}, MockReply{Err: &UnavailableError{}}, MockReply{Err: &UnavailableError{}}, ok)
		_, err := WithRetry(m, fast).Generate(context.Background(), Request{})
		var down *UnavailableError
		assert.True(t, errors.As(err, &down))
		assert.Len(t, m.Calls(), 3)
	})

	t.Run("invalid reply retried once", func(t *testing.T) {
		bad := MockReply{Content: json.RawMessage(`{}`)}
		m := NewMock(bad, bad, ok)
		_, err := WithRetry(m, fast).Generate(context.Background(), UserPrompt("", "x", pairSchema, 10))
		var invalid *InvalidResponseError
		assert.True(t, errors.As(err, &invalid))
		assert.Len(t, m.Calls(), 2)
	})

	t.Run("truncation is not retried", func(t *testing.T) {
		m := NewMock(MockReply{Err: &TruncatedError{}}, ok)
		_, err := WithRetry(m, fast).Generate(context.Background(), Request{})
		assert.Error(t, err)
		assert.Len(t, m.Calls(), 1)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, Multiplier: 1}
		m := NewMock(MockReply{Err: &UnavailableError{}}, ok)
		_, err := WithRetry(m, slow).Generate(ctx, Request{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	r := &retrying{cfg: RetryConfig{InitialWait: time.Hour}}
	assert.Equal(t, 3*time.Second, r.wait(0, &RateLimitError{RetryAfter: 3 * time.Second}))

	h := http.Header{}
	h.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, retryAfter(h))
	assert.Zero(t, retryAfter(http.Header{}))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewMock(MockReply{Content: json.RawMessage(`{"term":"a","definition":"b"}`)}, MockReply{Err: &UnavailableError{}})
	p := WithLogging(m, zap.New(core))
	ctx := WithPurpose(context.Background(), "quiz")

	_, err := p.Generate(ctx, UserPrompt("", "x", pairSchema, 10))
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "llm request", entries[0].Message)
	assert.Equal(t, "quiz", entries[0].ContextMap()["purpose"])
	assert.Equal(t, "test-pair", entries[0].ContextMap()["schema"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestPurposeDefault(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
}
