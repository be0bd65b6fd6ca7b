// Package notes keeps dated "what I learned today" entries with tags.
package notes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

// ErrNotFound is returned when a note does not exist for the user.
var ErrNotFound = errors.New("notes: not found")

// Note is a daily-learning entry.
type Note struct {
	ID        string
	CourseID  string // empty when not tied to a course
	Date      flashcard.Date
	Content   string
	Tags      []string
	CreatedAt time.Time
}

// Draft holds a note to add. An empty Date becomes today. Tags are
// lowercased and deduplicated.
type Draft struct {
	CourseID string
	Date     string   `validate:"omitempty,datetime=2006-01-02"`
	Content  string   `validate:"required,notblank,max=4000"`
	Tags     []string `validate:"max=10,dive,notblank,max=30"`
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	CourseID string
	Tag      string
	Limit    int
}

// Service manages one user's notes.
type Service struct {
	userID  string
	notes   store.LearningRepo
	courses *course.Service
	log     *zap.Logger
	now     func() time.Time
}

func NewService(userID string, notes store.LearningRepo, courses *course.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userID:  userID,
		notes:   notes,
		courses: courses,
		log:     log.With(zap.String("component", "notes")),
		now:     time.Now,
	}
}

// Add validates d and stores a new note.
func (s *Service) Add(ctx context.Context, d Draft) (Note, error) {
	d.CourseID = strings.TrimSpace(d.CourseID)
	d.Date = strings.TrimSpace(d.Date)
	d.Content = strings.TrimSpace(d.Content)
	d.Tags = NormalizeTags(d.Tags)
	if d.Date == "" {
		d.Date = string(flashcard.DateOf(s.now()))
	}

	if err := validate.Struct(d); err != nil {
		return Note{}, invalid(err)
	}
	in := store.NewLearning{Date: d.Date, Content: d.Content, Tags: d.Tags}
	if d.CourseID != "" {
		if _, err := s.courses.Get(ctx, d.CourseID); err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return Note{}, &flashcard.ValidationError{Fields: []flashcard.FieldError{{Field: "courseID", Reason: "does not exist"}}}
			}
			return Note{}, fmt.Errorf("check course: %w", err)
		}
		in.CourseID = &d.CourseID
	}

	rec, err := s.notes.CreateLearning(ctx, s.userID, in)
	if err != nil {
		return Note{}, fmt.Errorf("add note: %w", err)
	}
	s.log.Info("note added", zap.String("note_id", rec.ID), zap.Strings("tags", rec.Tags))
	return fromRecord(rec), nil
}

// List returns notes newest first. The tag filter is normalized like
// the tags it is matched against.
func (s *Service) List(ctx context.Context, f Filter) ([]Note, error) {
	lf := store.LearningFilter{CourseID: f.CourseID, Limit: f.Limit}
	if tags := NormalizeTags([]string{f.Tag}); len(tags) == 1 {
		lf.Tag = tags[0]
	}
	recs, err := s.notes.ListLearnings(ctx, s.userID, lf)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]Note, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.notes.DeleteLearning(ctx, s.userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("note %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete note: %w", err)
	}
	s.log.Info("note deleted", zap.String("note_id", id))
	return nil
}

// NormalizeTags trims and lowercases tags, drops empty ones and keeps the
// first occurrence of each. A leading '#' is removed.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func fromRecord(r store.LearningRecord) Note {
	n := Note{
		ID:        r.ID,
		Date:      flashcard.Date(r.Date),
		Content:   r.Content,
		Tags:      []string(r.Tags),
		CreatedAt: r.CreatedAt,
	}
	if r.CourseID != nil {
		n.CourseID = *r.CourseID
	}
	return n
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
