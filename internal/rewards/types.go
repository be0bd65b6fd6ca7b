package rewards

import "time"

// AwardType identifies what the companion was rewarded for.
type AwardType string

const (
	AwardReview  AwardType = "review"
	AwardSession AwardType = "session"
	AwardStreak  AwardType = "streak"
	AwardStudy   AwardType = "study"

	// AwardPurchase records coins spent in the shop; its amount is negative.
	AwardPurchase AwardType = "purchase"
)

// Reward amounts.
const (
	CoinsPerReview      = 1
	CoinsPerSession     = 5
	TicketsPerMilestone = 1

	// A logged study session earns a coin per MinutesPerStudyCoin minutes,
	// and at least one.
	MinutesPerStudyCoin = 5
)

// StudyCoins returns the coins earned by a study session of minutes.
func StudyCoins(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return max(1, minutes/MinutesPerStudyCoin)
}

// AllAwardTypes returns all award types in display order.
func AllAwardTypes() []AwardType {
	return []AwardType{AwardReview, AwardSession, AwardStudy, AwardStreak, AwardPurchase}
}

// DisplayName returns a human-readable label for the award type.
func (t AwardType) DisplayName() string {
	switch t {
	case AwardReview:
		return "Review"
	case AwardSession:
		return "Session"
	case AwardStreak:
		return "Streak"
	case AwardStudy:
		return "Study"
	case AwardPurchase:
		return "Shop"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the award type.
func (t AwardType) Icon() string {
	switch t {
	case AwardReview:
		return "🪙"
	case AwardSession:
		return "🏆"
	case AwardStreak:
		return "🎫"
	case AwardStudy:
		return "⏱️"
	case AwardPurchase:
		return "🛍️"
	default:
		return "✦"
	}
}

// Unit names what the award amount counts.
func (t AwardType) Unit() string {
	if t == AwardStreak {
		return "bus ticket"
	}
	return "coin"
}

// Award is a single reward earned by the companion.
type Award struct {
	Type      AwardType
	Amount    int
	SessionID string
	Reason    string // e.g. "7-day study streak!"
	AwardedAt time.Time
}
