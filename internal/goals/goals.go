// Package goals tracks study goals with a target date and percent progress.
package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

// ErrNotFound is returned when a goal does not exist for the user.
var ErrNotFound = errors.New("goals: not found")

// Goal is something the user is working toward, optionally tied to a course.
type Goal struct {
	ID          string
	CourseID    string // empty when not tied to a course
	Title       string
	Description string
	TargetDate  flashcard.Date // zero when open-ended
	Completed   bool
	Progress    int // percent, 0 to 100
	CreatedAt   time.Time
}

// Overdue reports whether an open goal's target date has passed.
func (g Goal) Overdue(today flashcard.Date) bool {
	return !g.Completed && !g.TargetDate.IsZero() && g.TargetDate.Before(today)
}

// Draft holds the fields of a goal to create.
type Draft struct {
	CourseID    string
	Title       string `validate:"required,notblank,max=120"`
	Description string `validate:"max=1000"`
	TargetDate  string `validate:"omitempty,datetime=2006-01-02"`
	Progress    int    `validate:"min=0,max=100"`
}

type progressUpdate struct {
	Progress int `validate:"min=0,max=100"`
}

// Service manages one user's goals.
type Service struct {
	userID  string
	goals   store.GoalRepo
	courses *course.Service
	log     *zap.Logger
}

func NewService(userID string, goals store.GoalRepo, courses *course.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{userID: userID, goals: goals, courses: courses, log: log.With(zap.String("component", "goals"))}
}

// List returns the user's goals in creation order.
func (s *Service) List(ctx context.Context) ([]Goal, error) {
	recs, err := s.goals.ListGoals(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]Goal, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// Add validates d and stores a new goal. A goal created at 100% progress
// is already complete.
func (s *Service) Add(ctx context.Context, d Draft) (Goal, error) {
	d.CourseID = strings.TrimSpace(d.CourseID)
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.TargetDate = strings.TrimSpace(d.TargetDate)

	if err := validate.Struct(d); err != nil {
		return Goal{}, invalid(err)
	}
	in := store.NewGoal{Title: d.Title, Description: d.Description, Progress: d.Progress}
	if d.CourseID != "" {
		if _, err := s.courses.Get(ctx, d.CourseID); err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return Goal{}, &flashcard.ValidationError{Fields: []flashcard.FieldError{{Field: "courseID", Reason: "does not exist"}}}
			}
			return Goal{}, fmt.Errorf("check course: %w", err)
		}
		in.CourseID = &d.CourseID
	}
	if d.TargetDate != "" {
		in.TargetDate = &d.TargetDate
	}

	rec, err := s.goals.CreateGoal(ctx, s.userID, in)
	if err != nil {
		return Goal{}, fmt.Errorf("create goal: %w", err)
	}
	s.log.Info("goal created", zap.String("goal_id", rec.ID), zap.String("title", rec.Title))
	return fromRecord(rec), nil
}

// SetProgress records progress in percent. Reaching 100 completes the
// goal and dropping below it reopens it.
func (s *Service) SetProgress(ctx context.Context, id string, progress int) (Goal, error) {
	if err := validate.Struct(progressUpdate{Progress: progress}); err != nil {
		return Goal{}, invalid(err)
	}
	done := progress == 100
	return s.update(ctx, id, store.GoalPatch{Progress: &progress, Completed: &done})
}

// Complete marks a goal done at full progress.
func (s *Service) Complete(ctx context.Context, id string) (Goal, error) {
	return s.SetProgress(ctx, id, 100)
}

// Delete removes a goal.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.goals.DeleteGoal(ctx, s.userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete goal: %w", err)
	}
	s.log.Info("goal deleted", zap.String("goal_id", id))
	return nil
}

func (s *Service) update(ctx context.Context, id string, patch store.GoalPatch) (Goal, error) {
	rec, err := s.goals.UpdateGoal(ctx, s.userID, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return Goal{}, fmt.Errorf("update goal: %w", err)
	}
	s.log.Info("goal updated", zap.String("goal_id", id), zap.Int("progress", rec.Progress), zap.Bool("completed", rec.Completed))
	return fromRecord(rec), nil
}

func fromRecord(r store.GoalRecord) Goal {
	g := Goal{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Progress:    r.Progress,
		CreatedAt:   r.CreatedAt,
	}
	if r.CourseID != nil {
		g.CourseID = *r.CourseID
	}
	if r.TargetDate != nil {
		g.TargetDate = flashcard.Date(*r.TargetDate)
	}
	return g
}

func invalid(err error) error {
	issues := validate.Issues(err)
	if issues == nil {
		return fmt.Errorf("validate: %w", err)
	}
	ve := &flashcard.ValidationError{Fields: make([]flashcard.FieldError, len(issues))}
	for i, is := range issues {
		ve.Fields[i] = flashcard.FieldError{Field: is.Field, Reason: validate.Reason(is)}
	}
	return ve
}
