package flashcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

// Service manages one user's flashcards on top of the card store.
type Service struct {
	userID  string
	cards   store.CardRepo
	courses store.CourseRepo
	log     *zap.Logger
	now     func() time.Time
}

// NewService creates a flashcard service for userID.
func NewService(userID string, cards store.CardRepo, courses store.CourseRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userID:  userID,
		cards:   cards,
		courses: courses,
		log:     log.With(zap.String("component", "flashcard")),
		now:     time.Now,
	}
}

// Today returns the current calendar date in local time.
func (s *Service) Today() Date {
	return DateOf(s.now())
}

// List returns every card of the user in creation order.
func (s *Service) List(ctx context.Context) ([]Card, error) {
	recs, err := s.cards.ListCards(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	cards := make([]Card, len(recs))
	for i, r := range recs {
		cards[i] = fromRecord(r)
	}
	return cards, nil
}

// Get returns one card, or an error matching ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Card, error) {
	rec, err := s.cards.GetCard(ctx, s.userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return fromRecord(rec), nil
}

// Create validates d and stores a new card that is due today with the
// default difficulty. Invalid input is rejected before any write.
func (s *Service) Create(ctx context.Context, d Draft) (Card, error) {
	d.Question = strings.TrimSpace(d.Question)
	d.Answer = strings.TrimSpace(d.Answer)
	d.CourseID = strings.TrimSpace(d.CourseID)

	if err := validate.Struct(d); err != nil {
		return Card{}, toValidationError(err)
	}
	if _, err := s.courses.GetCourse(ctx, s.userID, d.CourseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Card{}, &ValidationError{Fields: []FieldError{{Field: "courseID", Reason: "does not exist"}}}
		}
		return Card{}, fmt.Errorf("check course: %w", err)
	}

	rec, err := s.cards.CreateCard(ctx, s.userID, store.NewCard{
		CourseID:   d.CourseID,
		Question:   d.Question,
		Answer:     d.Answer,
		Difficulty: string(DefaultDifficulty),
		NextReview: string(s.Today()),
	})
	if err != nil {
		return Card{}, &PersistError{Op: "create", Err: err}
	}

	s.log.Info("card created", zap.String("card_id", rec.ID), zap.String("course_id", rec.CourseID))
	return fromRecord(rec), nil
}

// Edit changes the question, answer or difficulty of a card. The schedule
// is never touched.
func (s *Service) Edit(ctx context.Context, id string, e Edit) (Card, error) {
	if e.Question != nil {
		q := strings.TrimSpace(*e.Question)
		e.Question = &q
	}
	if e.Answer != nil {
		a := strings.TrimSpace(*e.Answer)
		e.Answer = &a
	}
	if err := validate.Struct(e); err != nil {
		return Card{}, toValidationError(err)
	}
	if e.IsEmpty() {
		return s.Get(ctx, id)
	}

	rec, err := s.cards.UpdateCard(ctx, s.userID, id, editPatch(e))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return Card{}, &PersistError{Op: "edit", CardID: id, Err: err}
	}

	s.log.Info("card edited", zap.String("card_id", id))
	return fromRecord(rec), nil
}

// RecordReview writes the scheduling fields and difficulty of a reviewed
// card back to the store and returns the stored card.
func (s *Service) RecordReview(ctx context.Context, c Card) (Card, error) {
	rec, err := s.cards.UpdateCard(ctx, s.userID, c.ID, schedulePatch(c))
	if err != nil {
		s.log.Warn("review write-back failed", zap.String("card_id", c.ID), zap.Error(err))
		return Card{}, &PersistError{Op: "review", CardID: c.ID, Err: err}
	}
	s.log.Debug("review recorded",
		zap.String("card_id", c.ID),
		zap.String("difficulty", rec.Difficulty),
		zap.String("next_review", rec.NextReview),
		zap.Int("review_count", rec.ReviewCount),
	)
	return fromRecord(rec), nil
}

// CountDue returns the number of cards due on today.
func (s *Service) CountDue(ctx context.Context, today Date) (int, error) {
	n, err := s.cards.CountDue(ctx, s.userID, string(today))
	if err != nil {
		return 0, fmt.Errorf("count due: %w", err)
	}
	return n, nil
}

func toValidationError(err error) error {
	issues := validate.Issues(err)
	if issues == nil {
		return fmt.Errorf("validate: %w", err)
	}
	ve := &ValidationError{Fields: make([]FieldError, len(issues))}
	for i, is := range issues {
		ve.Fields[i] = FieldError{Field: is.Field, Reason: reasonFor(is.Tag)}
	}
	return ve
}

func reasonFor(tag string) string {
	switch tag {
	case "required", "notblank":
		return "is required"
	case "oneof":
		return "must be easy, medium or hard"
	default:
		return "is invalid"
	}
}
