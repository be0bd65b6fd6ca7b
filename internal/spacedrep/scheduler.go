package spacedrep

import (
	"errors"
	"fmt"

	"github.com/kokostudy/koko/internal/flashcard"
)

// ErrInvalidRating is returned for ratings outside easy, medium and hard.
var ErrInvalidRating = errors.New("spacedrep: invalid rating")

// DueSet returns, in input order, the cards whose next review is on or
// before today. It never returns nil.
func DueSet(cards []flashcard.Card, today flashcard.Date) []flashcard.Card {
	due := make([]flashcard.Card, 0, len(cards))
	for _, c := range cards {
		if c.IsDue(today) {
			due = append(due, c)
		}
	}
	return due
}

// Scheduler applies a rating to a card.
type Scheduler struct {
	strategy IntervalStrategy
}

// NewScheduler creates a scheduler. A nil strategy means FixedStrategy.
func NewScheduler(strategy IntervalStrategy) *Scheduler {
	if strategy == nil {
		strategy = FixedStrategy{}
	}
	return &Scheduler{strategy: strategy}
}

// Strategy returns the interval strategy in use.
func (s *Scheduler) Strategy() IntervalStrategy {
	return s.strategy
}

// Review returns the card as it stands after being rated on today. The
// input card is not modified.
func (s *Scheduler) Review(card flashcard.Card, rating flashcard.Difficulty, today flashcard.Date) (flashcard.Card, error) {
	if !rating.IsValid() {
		return flashcard.Card{}, fmt.Errorf("%w: %q", ErrInvalidRating, string(rating))
	}

	days := s.strategy.IntervalDays(card, rating)
	if days < 1 {
		days = 1
	}

	reviewed := today
	card.NextReview = today.AddDays(days)
	card.ReviewCount++
	card.LastReviewed = &reviewed
	card.Difficulty = rating
	return card, nil
}
