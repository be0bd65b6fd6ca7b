package quiz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
)

// SourceLocal marks quizzes built without a model.
const SourceLocal = "local"

// DefaultQuestions is the quiz length when Build is asked for n <= 0.
const DefaultQuestions = 5

// Service builds quizzes for one user's courses. When a model generator
// is configured it is tried first and the local generator covers its
// failures.
type Service struct {
	cards     *flashcard.Service
	courses   *course.Service
	remote    *LLMGenerator
	local     Generator
	questions int
	timeout   time.Duration
	log       *zap.Logger
}

// NewService creates a quiz service. remote may be nil to stay offline;
// timeout <= 0 leaves model calls bounded only by ctx.
func NewService(cards *flashcard.Service, courses *course.Service, remote *LLMGenerator, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cards:     cards,
		courses:   courses,
		remote:    remote,
		local:     NewLocalGenerator(uint64(time.Now().UnixNano())),
		questions: DefaultQuestions,
		timeout:   timeout,
		log:       log.With(zap.String("component", "quiz")),
	}
}

// WithQuestions sets the quiz length used when Build gets n <= 0.
func (s *Service) WithQuestions(n int) *Service {
	if n > 0 {
		s.questions = n
	}
	return s
}

// Remote reports whether a model generator is configured.
func (s *Service) Remote() bool { return s.remote != nil }

// Build writes up to n questions for a course from its cards plus the
// optional notes text. n <= 0 asks for the configured length.
func (s *Service) Build(ctx context.Context, courseID string, n int, text string) (Quiz, error) {
	if n <= 0 {
		n = s.questions
	}
	c, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return Quiz{}, err
	}
	all, err := s.cards.List(ctx)
	if err != nil {
		return Quiz{}, err
	}
	m := Material{CourseName: c.Name, Text: text}
	for _, card := range all {
		if card.CourseID == c.ID {
			m.Cards = append(m.Cards, card)
		}
	}

	q := Quiz{CourseID: c.ID, CourseName: c.Name}
	if s.remote != nil {
		qs, err := s.generateRemote(ctx, m, n)
		if err == nil {
			q.Questions, q.Source = qs, s.remote.Model()
			return q, nil
		}
		if ctx.Err() != nil {
			return Quiz{}, ctx.Err()
		}
		s.log.Warn("model quiz failed, using local questions",
			zap.String("course_id", c.ID), zap.String("model", s.remote.Model()), zap.Error(err))
	}

	qs, err := s.local.Generate(ctx, m, n)
	if err != nil {
		return Quiz{}, fmt.Errorf("quiz for %s: %w", c.Name, err)
	}
	q.Questions, q.Source = qs, SourceLocal
	return q, nil
}

func (s *Service) generateRemote(ctx context.Context, m Material, n int) ([]Question, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.remote.Generate(ctx, m, n)
}
