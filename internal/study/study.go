// Package study logs timed study sessions against courses and feeds them
// into the streak and reward totals.
package study

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

// Rating defaults for mood and focus when the user skips them.
const DefaultRating = 3

// Pomodoro lengths used when config leaves them unset.
const (
	DefaultFocus = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Pomodoro is the length of a focus block and the break after it.
type Pomodoro struct {
	Focus time.Duration
	Break time.Duration
}

// PomodoroOf builds a Pomodoro from minutes, using the defaults for
// values <= 0.
func PomodoroOf(focusMinutes, breakMinutes int) Pomodoro {
	p := Pomodoro{Focus: DefaultFocus, Break: DefaultBreak}
	if focusMinutes > 0 {
		p.Focus = time.Duration(focusMinutes) * time.Minute
	}
	if breakMinutes > 0 {
		p.Break = time.Duration(breakMinutes) * time.Minute
	}
	return p
}

// Session is one logged block of study time.
type Session struct {
	ID         string
	CourseID   string
	Date       flashcard.Date
	Minutes    int
	Notes      string
	Reflection string
	Mood       int
	Focus      int
	CreatedAt  time.Time
}

// Draft holds a session to log. Zero Mood and Focus become DefaultRating
// and an empty Date becomes today.
type Draft struct {
	CourseID   string `validate:"required,notblank"`
	Date       string `validate:"omitempty,datetime=2006-01-02"`
	Minutes    int    `validate:"min=1,max=600"`
	Notes      string `validate:"max=2000"`
	Reflection string `validate:"max=2000"`
	Mood       int    `validate:"min=1,max=5"`
	Focus      int    `validate:"min=1,max=5"`
}

// Result is a logged session and the awards it earned.
type Result struct {
	Session Session
	Awards  []rewards.Award
}

// Week summarises study since the start of the current week.
type Week struct {
	Since    flashcard.Date
	Sessions int
	Minutes  int
}

// Service logs and lists one user's study sessions.
type Service struct {
	userID   string
	sessions store.StudySessionRepo
	courses  *course.Service
	rewards  *rewards.Service
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a study service. rewards may be nil, in which case
// sessions are stored without awards.
func NewService(userID string, sessions store.StudySessionRepo, courses *course.Service, rw *rewards.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userID:   userID,
		sessions: sessions,
		courses:  courses,
		rewards:  rw,
		log:      log.With(zap.String("component", "study")),
		now:      time.Now,
	}
}

// Today returns the current calendar date in local time.
func (s *Service) Today() flashcard.Date {
	return flashcard.DateOf(s.now())
}

// Log validates d, stores the session and credits its time to the streak
// and rewards. Sessions logged for an earlier date still count toward
// today's streak, the day the work was recorded.
func (s *Service) Log(ctx context.Context, d Draft) (Result, error) {
	d.CourseID = strings.TrimSpace(d.CourseID)
	d.Date = strings.TrimSpace(d.Date)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Reflection = strings.TrimSpace(d.Reflection)
	if d.Mood == 0 {
		d.Mood = DefaultRating
	}
	if d.Focus == 0 {
		d.Focus = DefaultRating
	}
	if d.Date == "" {
		d.Date = string(s.Today())
	}

	if err := validate.Struct(d); err != nil {
		return Result{}, invalid(err)
	}
	if _, err := s.courses.Get(ctx, d.CourseID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return Result{}, &flashcard.ValidationError{Fields: []flashcard.FieldError{{Field: "courseID", Reason: "does not exist"}}}
		}
		return Result{}, fmt.Errorf("check course: %w", err)
	}

	rec, err := s.sessions.CreateStudySession(ctx, s.userID, store.NewStudySession{
		CourseID:        d.CourseID,
		Date:            d.Date,
		DurationMinutes: d.Minutes,
		Notes:           d.Notes,
		Reflection:      d.Reflection,
		Mood:            d.Mood,
		FocusRating:     d.Focus,
	})
	if err != nil {
		return Result{}, fmt.Errorf("log study session: %w", err)
	}
	s.log.Info("study session logged",
		zap.String("session_id", rec.ID),
		zap.String("course_id", rec.CourseID),
		zap.Int("minutes", rec.DurationMinutes))

	res := Result{Session: fromRecord(rec)}
	if s.rewards != nil {
		awards, err := s.rewards.RecordStudy(ctx, rec.ID, rec.DurationMinutes, s.Today())
		if err != nil {
			return res, fmt.Errorf("reward study session: %w", err)
		}
		res.Awards = awards
	}
	return res, nil
}

// List returns sessions newest first. An empty courseID lists every course;
// limit <= 0 means no limit.
func (s *Service) List(ctx context.Context, courseID string, limit int) ([]Session, error) {
	recs, err := s.sessions.ListStudySessions(ctx, s.userID, store.StudySessionFilter{CourseID: courseID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]Session, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// ThisWeek totals the sessions dated from Monday of the current week.
func (s *Service) ThisWeek(ctx context.Context) (Week, error) {
	since := WeekStart(s.Today())
	t, err := s.sessions.StudyTotalsSince(ctx, s.userID, string(since))
	if err != nil {
		return Week{}, err
	}
	return Week{Since: since, Sessions: t.Sessions, Minutes: t.Minutes}, nil
}

// WeekStart returns the Monday on or before day.
func WeekStart(day flashcard.Date) flashcard.Date {
	wd := int(day.Time().Weekday())
	// Sunday is 0; count it as the seventh day.
	back := (wd + 6) % 7
	return day.AddDays(-back)
}

// FormatMinutes renders minutes as "1h 05m" or "45m".
func FormatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func fromRecord(r store.StudySessionRecord) Session {
	return Session{
		ID:         r.ID,
		CourseID:   r.CourseID,
		Date:       flashcard.Date(r.Date),
		Minutes:    r.DurationMinutes,
		Notes:      r.Notes,
		Reflection: r.Reflection,
		Mood:       r.Mood,
		Focus:      r.FocusRating,
		CreatedAt:  r.CreatedAt,
	}
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
