package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// Gemini calls the Gemini API with a response schema.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: resolveModel(cfg.model(), geminiModels)}, nil
}

func (p *Gemini) ModelID() string { return p.model }

func (p *Gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		gc.Temperature = &t
	}
	if req.System != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, len(req.Messages))
	for i, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents[i] = &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, gc)
	if err != nil {
		return nil, geminiError(err)
	}

	content := json.RawMessage(result.Text())
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, &TruncatedError{Content: content}
	}
	if err := checkSchema(req.Schema, content); err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Model: p.model, StopReason: "end"}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{InputTokens: int(u.PromptTokenCount), OutputTokens: int(u.CandidatesTokenCount)}
	}
	return resp, nil
}

// geminiSchema converts the JSON Schema subset used by koko prompts.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiType(t)
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if pd, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(pd)
			}
		}
	}
	s.Required = stringsOf(def["required"])
	s.Enum = stringsOf(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

func geminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// stringsOf accepts both []string and the []any produced by decoding JSON.
func stringsOf(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		var out []string
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func geminiError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}
	switch {
	case code == http.StatusTooManyRequests:
		return &RateLimitError{Err: err}
	case code >= 400 && code < 500:
		return fmt.Errorf("llm: gemini rejected request: %w", err)
	}
	return &UnavailableError{Err: err}
}
