package session

import (
	"errors"
	"time"

	"github.com/kokostudy/koko/internal/flashcard"
)

// ErrInvalidTransition is returned when an action is not allowed in the
// current phase, e.g. rating a card whose answer is still hidden.
var ErrInvalidTransition = errors.New("session: invalid transition")

// Phase represents the current phase of a review session.
type Phase int

const (
	PhaseAwaitingReveal Phase = iota // Question shown, answer hidden
	PhaseAwaitingRating              // Answer shown, rating controls enabled
	PhaseComplete                    // Nothing left to review
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingReveal:
		return "awaiting_reveal"
	case PhaseAwaitingRating:
		return "awaiting_rating"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result records one rated card.
type Result struct {
	// Card is the card as stored after the review.
	Card flashcard.Card

	// Rating is the difficulty the user picked.
	Rating flashcard.Difficulty

	// IntervalDays is the gap between the review day and the next review.
	IntervalDays int

	// RatedAt is the wall-clock time of the rating.
	RatedAt time.Time
}
