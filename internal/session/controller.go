package session

//go:generate mockgen -source=controller.go -destination=mock/mock_session.go

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/spacedrep"
)

// CardWriter persists the scheduling fields of a reviewed card.
type CardWriter interface {
	RecordReview(ctx context.Context, card flashcard.Card) (flashcard.Card, error)
}

// Controller walks a user through the due set one card at a time.
//
// A rated card leaves the in-memory due list, since its next review is at
// least tomorrow. The session is complete once every due card was rated.
// Skip moves to the next unrated card and wraps to the first after the last.
type Controller struct {
	id        string
	due       []flashcard.Card
	total     int
	cursor    int
	phase     Phase
	today     flashcard.Date
	scheduler *spacedrep.Scheduler
	writer    CardWriter
	log       *zap.Logger

	results   []Result
	skips     int
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

// NewController starts a session over due, which is copied. The session
// starts complete when due is empty.
func NewController(due []flashcard.Card, today flashcard.Date, scheduler *spacedrep.Scheduler, writer CardWriter, log *zap.Logger) *Controller {
	if scheduler == nil {
		scheduler = spacedrep.NewScheduler(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		id:        uuid.NewString(),
		due:       append([]flashcard.Card(nil), due...),
		total:     len(due),
		today:     today,
		scheduler: scheduler,
		writer:    writer,
		now:       time.Now,
	}
	c.log = log.With(zap.String("session_id", c.id))
	c.startedAt = c.now()

	if len(c.due) == 0 {
		c.phase = PhaseComplete
		c.endedAt = c.startedAt
	}
	c.log.Info("review session started", zap.Int("due", c.total), zap.String("today", string(today)))
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Today returns the review day the session schedules from.
func (c *Controller) Today() flashcard.Date { return c.today }

// Total returns the size of the due set the session started with.
func (c *Controller) Total() int { return c.total }

// Remaining returns the number of cards not yet rated.
func (c *Controller) Remaining() int { return len(c.due) }

// Reviewed returns the number of cards rated so far.
func (c *Controller) Reviewed() int { return len(c.results) }

// Results returns the rated cards in rating order.
func (c *Controller) Results() []Result {
	return append([]Result(nil), c.results...)
}

// Current returns the card under the cursor. ok is false once complete.
func (c *Controller) Current() (card flashcard.Card, ok bool) {
	if c.phase == PhaseComplete {
		return flashcard.Card{}, false
	}
	return c.due[c.cursor], true
}

// AnswerVisible reports whether the current card's answer may be shown.
func (c *Controller) AnswerVisible() bool {
	return c.phase == PhaseAwaitingRating
}

// Reveal shows the answer of the current card.
func (c *Controller) Reveal() error {
	if c.phase != PhaseAwaitingReveal {
		return fmt.Errorf("reveal in %s: %w", c.phase, ErrInvalidTransition)
	}
	c.phase = PhaseAwaitingRating
	return nil
}

// Rate applies rating to the current card, writes it back, and advances.
// When the write-back fails the session stays on the same card awaiting a
// rating, and the error is a *flashcard.PersistError.
func (c *Controller) Rate(ctx context.Context, rating flashcard.Difficulty) (Result, error) {
	if c.phase != PhaseAwaitingRating {
		return Result{}, fmt.Errorf("rate in %s: %w", c.phase, ErrInvalidTransition)
	}

	cur := c.due[c.cursor]
	updated, err := c.scheduler.Review(cur, rating, c.today)
	if err != nil {
		return Result{}, err
	}

	stored, err := c.writer.RecordReview(ctx, updated)
	if err != nil {
		var pe *flashcard.PersistError
		if !errors.As(err, &pe) {
			err = &flashcard.PersistError{Op: "review", CardID: cur.ID, Err: err}
		}
		c.log.Warn("review not saved", zap.String("card_id", cur.ID), zap.Error(err))
		return Result{}, err
	}

	res := Result{
		Card:         stored,
		Rating:       rating,
		IntervalDays: c.today.DaysUntil(stored.NextReview),
		RatedAt:      c.now(),
	}
	c.results = append(c.results, res)
	c.log.Info("card rated",
		zap.String("card_id", cur.ID),
		zap.String("rating", string(rating)),
		zap.String("next_review", string(stored.NextReview)),
	)

	c.removeCurrent()
	return res, nil
}

// Skip moves to the next unrated card without rating the current one,
// wrapping to the first after the last.
func (c *Controller) Skip() error {
	if c.phase == PhaseComplete {
		return fmt.Errorf("skip in %s: %w", c.phase, ErrInvalidTransition)
	}
	c.skips++
	c.cursor = (c.cursor + 1) % len(c.due)
	c.phase = PhaseAwaitingReveal
	return nil
}

// Finish ends the session early. Unrated cards stay due.
func (c *Controller) Finish() {
	if c.phase == PhaseComplete {
		return
	}
	c.phase = PhaseComplete
	c.endedAt = c.now()
	c.log.Info("review session ended early", zap.Int("reviewed", len(c.results)), zap.Int("remaining", len(c.due)))
}

func (c *Controller) removeCurrent() {
	c.due = append(c.due[:c.cursor], c.due[c.cursor+1:]...)
	if len(c.due) == 0 {
		c.cursor = 0
		c.phase = PhaseComplete
		c.endedAt = c.now()
		c.log.Info("review session complete", zap.Int("reviewed", len(c.results)))
		return
	}
	if c.cursor >= len(c.due) {
		c.cursor = 0
	}
	c.phase = PhaseAwaitingReveal
}
