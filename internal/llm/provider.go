// Package llm talks to hosted language models through one small interface.
// Every provider returns JSON checked against the caller's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a structured reply for a prompt.
type Provider interface {
	// Generate sends req and returns the model's reply. When req.Schema is
	// set the reply Content is JSON that satisfies it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Request is a single prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil for free text
	MaxTokens   int
	Temperature float64 // 0 keeps the provider default
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the reply must satisfy. Name doubles as the
// cache key for the compiled schema, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage counts tokens of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}
