// Package quiz builds multiple choice quizzes from a course's cards, either
// locally or with a language model.
package quiz

import (
	"context"
	"errors"
	"math"

	"github.com/kokostudy/koko/internal/flashcard"
)

// OptionCount is the most choices a question offers. Local quizzes over
// few cards may offer fewer.
const OptionCount = 4

// ErrNoMaterial is returned when there is not enough to ask about.
var ErrNoMaterial = errors.New("quiz: not enough material")

// Question is one multiple choice question.
type Question struct {
	Prompt      string
	Options     []string
	Correct     int    // index into Options
	CardID      string // empty for generated questions without a source card
	Explanation string
}

// Quiz is a set of questions for one course.
type Quiz struct {
	CourseID   string
	CourseName string
	Questions  []Question
	Source     string // "local" or the model ID
}

// Material is what questions are written from.
type Material struct {
	CourseName string
	Cards      []flashcard.Card
	Text       string // optional extra notes
}

// Generator writes up to n questions from m.
type Generator interface {
	Generate(ctx context.Context, m Material, n int) ([]Question, error)
}

// Attempt tracks the answers given to a quiz.
type Attempt struct {
	Quiz    Quiz
	answers []int
}

func NewAttempt(q Quiz) *Attempt {
	return &Attempt{Quiz: q}
}

// Current returns the question to answer next.
func (a *Attempt) Current() (Question, bool) {
	if a.Done() {
		return Question{}, false
	}
	return a.Quiz.Questions[len(a.answers)], true
}

// Index is the zero-based position of the current question.
func (a *Attempt) Index() int { return len(a.answers) }

// Answer records choice for the current question and reports whether it
// was right.
func (a *Attempt) Answer(choice int) bool {
	q, ok := a.Current()
	if !ok {
		return false
	}
	a.answers = append(a.answers, choice)
	return choice == q.Correct
}

// Done reports whether every question has been answered.
func (a *Attempt) Done() bool {
	return len(a.answers) >= len(a.Quiz.Questions)
}

// CorrectCount counts right answers so far.
func (a *Attempt) CorrectCount() int {
	n := 0
	for i, c := range a.answers {
		if c == a.Quiz.Questions[i].Correct {
			n++
		}
	}
	return n
}

// Score is the percentage of right answers over the whole quiz.
func (a *Attempt) Score() int {
	return Score(a.CorrectCount(), len(a.Quiz.Questions))
}

// Score rounds correct/total to a whole percentage. An empty quiz scores 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
