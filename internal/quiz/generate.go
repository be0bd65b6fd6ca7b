package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kokostudy/koko/internal/llm"
)

const (
	// maxPromptCards caps how many cards are quoted to the model.
	maxPromptCards = 60
	maxTokens      = 2048
)

const systemPrompt = `You write multiple choice quiz questions for a student.
Each question has exactly 4 short options and exactly one correct option.
Distractors must be plausible but clearly wrong to someone who knows the material.
Only ask about the material given.`

var questionSchema = &llm.Schema{
	Name:        "koko-quiz-v1",
	Description: "A list of multiple choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": OptionCount,
							"maxItems": OptionCount,
						},
						"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": OptionCount - 1},
						"explanation":   map[string]any{"type": "string"},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type generated struct {
	Questions []struct {
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Explanation  string   `json:"explanation"`
	} `json:"questions"`
}

// LLMGenerator asks a language model to write the questions.
type LLMGenerator struct {
	p llm.Provider
}

func NewLLMGenerator(p llm.Provider) *LLMGenerator {
	return &LLMGenerator{p: p}
}

// Model is the ID of the model questions come from.
func (g *LLMGenerator) Model() string { return g.p.ModelID() }

func (g *LLMGenerator) Generate(ctx context.Context, m Material, n int) ([]Question, error) {
	if len(m.Cards) == 0 && strings.TrimSpace(m.Text) == "" {
		return nil, ErrNoMaterial
	}
	if n <= 0 {
		n = 5
	}

	ctx = llm.WithPurpose(ctx, "quiz")
	resp, err := g.p.Generate(ctx, llm.UserPrompt(systemPrompt, prompt(m, n), questionSchema, maxTokens))
	if err != nil {
		return nil, err
	}

	var out generated
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.InvalidResponseError{Content: resp.Content, Err: err}
	}

	qs := make([]Question, 0, n)
	for _, q := range out.Questions {
		if len(qs) == n {
			break
		}
		question := Question{
			Prompt:      strings.TrimSpace(q.Prompt),
			Options:     trimAll(q.Options),
			Correct:     q.CorrectIndex,
			Explanation: strings.TrimSpace(q.Explanation),
		}
		if wellFormed(question) {
			qs = append(qs, question)
		}
	}
	if len(qs) == 0 {
		return nil, &llm.InvalidResponseError{Content: resp.Content, Err: errors.New("no usable questions")}
	}
	return qs, nil
}

func prompt(m Material, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d questions for the course %q.\n", n, m.CourseName)
	if len(m.Cards) > 0 {
		b.WriteString("\nFlashcards:\n")
		for i, c := range m.Cards {
			if i == maxPromptCards {
				break
			}
			fmt.Fprintf(&b, "- Q: %s\n  A: %s\n", c.Question, c.Answer)
		}
	}
	if t := strings.TrimSpace(m.Text); t != "" {
		b.WriteString("\nNotes:\n")
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String()
}

// wellFormed requires a prompt, OptionCount distinct non-blank options and
// a correct index among them.
func wellFormed(q Question) bool {
	if q.Prompt == "" || len(q.Options) != OptionCount {
		return false
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return false
	}
	seen := map[string]bool{}
	for _, o := range q.Options {
		key := strings.ToLower(o)
		if o == "" || seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
