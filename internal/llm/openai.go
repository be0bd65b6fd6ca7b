package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenAI calls the chat completions API with a strict JSON schema
// response format. OpenRouter and other compatible endpoints reuse it
// through BaseURL.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(cfg Config) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(oc), model: cfg.model()}
}

// NewOpenRouter is NewOpenAI pointed at OpenRouter unless BaseURL says
// otherwise.
func NewOpenRouter(cfg Config) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterURL
	}
	return NewOpenAI(cfg)
}

func (p *OpenAI) ModelID() string { return p.model }

func (p *OpenAI) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("llm: marshal schema %s: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &InvalidResponseError{Err: errors.New("no choices in reply")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, &TruncatedError{Content: content}
	}
	if err := checkSchema(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		Model:      resp.Model,
		StopReason: "end",
	}, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		case apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500:
			return fmt.Errorf("llm: openai rejected request: %w", err)
		}
	}
	return &UnavailableError{Err: err}
}
