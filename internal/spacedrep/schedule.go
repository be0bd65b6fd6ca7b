package spacedrep

import (
	"math"

	"github.com/kokostudy/koko/internal/flashcard"
)

// FixedIntervals maps a rating to the days until the next review.
var FixedIntervals = map[flashcard.Difficulty]int{
	flashcard.Easy:   7,
	flashcard.Medium: 3,
	flashcard.Hard:   1,
}

// Expanding strategy defaults.
const (
	DefaultGrowth          = 2.5
	DefaultMaxIntervalDays = 180
)

// IntervalStrategy decides how many days a rated card waits. The card is
// passed as it was before the review. Rating is always valid.
type IntervalStrategy interface {
	Name() string
	IntervalDays(card flashcard.Card, rating flashcard.Difficulty) int
}

// FixedStrategy applies FixedIntervals regardless of history.
type FixedStrategy struct{}

func (FixedStrategy) Name() string { return "fixed" }

func (FixedStrategy) IntervalDays(_ flashcard.Card, rating flashcard.Difficulty) int {
	return FixedIntervals[rating]
}

// ExpandingStrategy stretches the previous interval after consecutive
// successful reviews. A card's first review, any hard rating, and any
// review following a hard rating use FixedIntervals, so runs of easy or
// medium ratings grow geometrically from the fixed baseline.
type ExpandingStrategy struct {
	Growth  float64 // multiplier for easy; medium uses half of it, floored at 1
	MaxDays int     // 0 means uncapped
}

// NewExpandingStrategy fills zero fields with the defaults.
func NewExpandingStrategy(growth float64, maxDays int) ExpandingStrategy {
	if growth <= 1 {
		growth = DefaultGrowth
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxIntervalDays
	}
	return ExpandingStrategy{Growth: growth, MaxDays: maxDays}
}

func (ExpandingStrategy) Name() string { return "expanding" }

func (s ExpandingStrategy) IntervalDays(card flashcard.Card, rating flashcard.Difficulty) int {
	base := FixedIntervals[rating]
	if rating == flashcard.Hard || card.ReviewCount == 0 || card.LastReviewed == nil || card.Difficulty == flashcard.Hard {
		return base
	}

	prev := card.LastReviewed.DaysUntil(card.NextReview)
	mult := s.Growth
	if rating == flashcard.Medium {
		mult = math.Max(1, s.Growth/2)
	}

	days := int(math.Round(float64(prev) * mult))
	if days < base {
		days = base
	}
	if s.MaxDays > 0 && days > s.MaxDays {
		days = s.MaxDays
	}
	return days
}
