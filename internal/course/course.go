// Package course manages the courses that group a user's flashcards.
package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

var (
	// ErrNotFound is returned when a course does not exist for the user.
	ErrNotFound = errors.New("course: not found")

	// ErrInUse is returned when deleting a course that still has cards.
	ErrInUse = store.ErrCourseInUse
)

// Palette is the set of course colors, in picker order.
var Palette = []string{"rose", "purple", "blue", "green", "yellow", "pink"}

// Icons are the suggested course icons.
var Icons = []string{"📚", "🧬", "⚗️", "🫀", "🧠", "💊", "🔬", "📊", "🎨", "🌟"}

const (
	DefaultColor = "rose"
	DefaultIcon  = "📚"
)

// Course groups flashcards under a name.
type Course struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Goal  string

	// Logged study time, filled by List and Get.
	TotalSessions int
	TotalMinutes  int
}

// Draft holds the fields of a course to create.
type Draft struct {
	Name  string `validate:"required,notblank,max=80"`
	Color string `validate:"omitempty,oneof=rose purple blue green yellow pink"`
	Icon  string `validate:"max=8"`
	Goal  string `validate:"max=200"`
}

// Service manages one user's courses.
type Service struct {
	userID   string
	courses  store.CourseRepo
	sessions store.StudySessionRepo
	log      *zap.Logger
}

// NewService returns a course service. sessions may be nil, in which
// case study totals stay zero.
func NewService(userID string, courses store.CourseRepo, sessions store.StudySessionRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userID:   userID,
		courses:  courses,
		sessions: sessions,
		log:      log.With(zap.String("component", "course")),
	}
}

// List returns the user's courses in creation order.
func (s *Service) List(ctx context.Context) ([]Course, error) {
	recs, err := s.courses.ListCourses(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	totals, err := s.totals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Course, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r, totals[r.ID])
	}
	return out, nil
}

// Get returns a course or an error matching ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	rec, err := s.courses.GetCourse(ctx, s.userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		return Course{}, err
	}
	totals, err := s.totals(ctx)
	if err != nil {
		return Course{}, err
	}
	return fromRecord(rec, totals[rec.ID]), nil
}

func (s *Service) totals(ctx context.Context) (map[string]store.StudyTotals, error) {
	if s.sessions == nil {
		return nil, nil
	}
	t, err := s.sessions.StudyTotalsByCourse(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("course study totals: %w", err)
	}
	return t, nil
}

// Create validates d and stores a new course.
func (s *Service) Create(ctx context.Context, d Draft) (Course, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Color = strings.TrimSpace(d.Color)
	d.Icon = strings.TrimSpace(d.Icon)
	d.Goal = strings.TrimSpace(d.Goal)

	if err := validate.Struct(d); err != nil {
		ve := &flashcard.ValidationError{}
		for _, is := range validate.Issues(err) {
			ve.Fields = append(ve.Fields, flashcard.FieldError{Field: is.Field, Reason: reason(is)})
		}
		return Course{}, ve
	}
	if d.Color == "" {
		d.Color = DefaultColor
	}
	if d.Icon == "" {
		d.Icon = DefaultIcon
	}

	rec, err := s.courses.CreateCourse(ctx, s.userID, store.NewCourse{
		Name:  d.Name,
		Color: d.Color,
		Icon:  d.Icon,
		Goal:  d.Goal,
	})
	if err != nil {
		return Course{}, fmt.Errorf("create course: %w", err)
	}
	s.log.Info("course created", zap.String("course_id", rec.ID), zap.String("name", rec.Name))
	return fromRecord(rec, store.StudyTotals{}), nil
}

// Delete removes a course. It fails with ErrInUse while cards reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.courses.DeleteCourse(ctx, s.userID, id)
	switch {
	case err == nil:
		s.log.Info("course deleted", zap.String("course_id", id))
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	default:
		return err
	}
}

func fromRecord(r store.CourseRecord, t store.StudyTotals) Course {
	return Course{
		ID:            r.ID,
		Name:          r.Name,
		Color:         r.Color,
		Icon:          r.Icon,
		Goal:          r.Goal,
		TotalSessions: t.Sessions,
		TotalMinutes:  t.Minutes,
	}
}

func reason(is validate.Issue) string {
	switch is.Tag {
	case "required", "notblank":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(is.Param, " ", ", ")
	case "max":
		return "must be at most " + is.Param + " characters"
	default:
		return "is invalid (" + is.Tag + ")"
	}
}
