package spacedrep

import "github.com/kokostudy/koko/internal/flashcard"

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// OverdueDays returns how many days past due the card is. Returns 0 if not
// yet due or due today.
func OverdueDays(c flashcard.Card, today flashcard.Date) int {
	if !c.IsDue(today) {
		return 0
	}
	return c.NextReview.DaysUntil(today)
}

// Status returns the review status for UI display.
func Status(c flashcard.Card, today flashcard.Date) ReviewStatus {
	switch {
	case c.ReviewCount == 0 && c.IsDue(today):
		return ReviewNew
	case OverdueDays(c, today) > 0:
		return ReviewOverdue
	case c.IsDue(today):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func DaysUntilReview(c flashcard.Card, today flashcard.Date) int {
	if c.IsDue(today) {
		return 0
	}
	return today.DaysUntil(c.NextReview)
}
