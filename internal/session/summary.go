package session

import (
	"time"

	"github.com/kokostudy/koko/internal/flashcard"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Due       int
	Reviewed  int
	Skipped   int
	Remaining int
	ByRating  map[flashcard.Difficulty]int
	Results   []Result
}

// BuildSummary creates a Summary from the controller. For a session still
// in progress the duration runs until now.
func BuildSummary(c *Controller) *Summary {
	end := c.endedAt
	if c.phase != PhaseComplete || end.IsZero() {
		end = c.now()
	}

	byRating := make(map[flashcard.Difficulty]int, 3)
	for _, r := range c.results {
		byRating[r.Rating]++
	}

	return &Summary{
		SessionID: c.id,
		Duration:  end.Sub(c.startedAt),
		Due:       c.total,
		Reviewed:  len(c.results),
		Skipped:   c.skips,
		Remaining: len(c.due),
		ByRating:  byRating,
		Results:   c.Results(),
	}
}
