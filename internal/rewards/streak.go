package rewards

import "github.com/kokostudy/koko/internal/flashcard"

// Stats holds the study streak and counters of a user.
type Stats struct {
	CurrentStreak int
	LongestStreak int
	LastStudyDate *flashcard.Date
	TotalReviews  int
	TotalSessions int
	StudyMinutes  int // logged study time
}

// StudiedOn reports whether the last study day is day.
func (s Stats) StudiedOn(day flashcard.Date) bool {
	return s.LastStudyDate != nil && *s.LastStudyDate == day
}

// NextStreakMilestone returns the next streak milestone above the current
// streak length.
func NextStreakMilestone(current int) int {
	thresholds := []int{3, 7, 14, 30}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 30, a milestone every 30 days.
	return ((current / 30) + 1) * 30
}

// IsStreakMilestone reports whether a streak of n days earns a bus ticket.
func IsStreakMilestone(n int) bool {
	return n > 0 && NextStreakMilestone(n-1) == n
}

// RecordStudyDay returns stats updated for study activity on today. The
// streak grows when the previous study day was yesterday and restarts at 1
// after a gap. Repeated activity on the same day changes nothing, in which
// case counted is false.
func RecordStudyDay(s Stats, today flashcard.Date) (next Stats, counted bool) {
	if s.StudiedOn(today) {
		return s, false
	}

	if s.LastStudyDate != nil && s.LastStudyDate.AddDays(1) == today {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	day := today
	s.LastStudyDate = &day
	return s, true
}

// ActiveStreak returns the streak as it stands on today: a streak whose
// last day is before yesterday has lapsed.
func ActiveStreak(s Stats, today flashcard.Date) int {
	if s.LastStudyDate == nil {
		return 0
	}
	if *s.LastStudyDate == today || s.LastStudyDate.AddDays(1) == today {
		return s.CurrentStreak
	}
	return 0
}
