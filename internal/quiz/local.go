package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// LocalGenerator asks each card's question with the answers of other
// cards as distractors. It needs no network.
type LocalGenerator struct {
	rnd *rand.Rand
}

// NewLocalGenerator seeds its shuffles from seed so quizzes can be replayed.
func NewLocalGenerator(seed uint64) *LocalGenerator {
	return &LocalGenerator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *LocalGenerator) Generate(_ context.Context, m Material, n int) ([]Question, error) {
	answers := distinctAnswers(m)
	if len(answers) < 2 {
		return nil, fmt.Errorf("need cards with at least 2 different answers: %w", ErrNoMaterial)
	}

	order := g.rnd.Perm(len(m.Cards))
	if n <= 0 || n > len(order) {
		n = len(order)
	}

	out := make([]Question, 0, n)
	for _, i := range order[:n] {
		c := m.Cards[i]
		options := []string{strings.TrimSpace(c.Answer)}
		for _, j := range g.rnd.Perm(len(answers)) {
			if len(options) == OptionCount {
				break
			}
			if !strings.EqualFold(answers[j], options[0]) {
				options = append(options, answers[j])
			}
		}
		g.rnd.Shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })

		q := Question{Prompt: c.Question, Options: options, CardID: c.ID}
		for k, o := range options {
			if o == strings.TrimSpace(c.Answer) {
				q.Correct = k
			}
		}
		out = append(out, q)
	}
	return out, nil
}

func distinctAnswers(m Material) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range m.Cards {
		a := strings.TrimSpace(c.Answer)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
