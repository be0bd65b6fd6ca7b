package rewards

import "github.com/kokostudy/koko/internal/flashcard"

// Mood is how the companion feels about the user's study habit.
type Mood string

const (
	MoodSleepy  Mood = "sleepy"
	MoodSad     Mood = "sad"
	MoodExcited Mood = "excited"
	MoodHappy   Mood = "happy"
	MoodProud   Mood = "proud"
)

// MoodFor derives the companion's mood from the streak and today's due count.
func MoodFor(s Stats, today flashcard.Date, dueToday int) Mood {
	switch {
	case s.LastStudyDate == nil:
		return MoodSleepy
	case *s.LastStudyDate == today && dueToday > 0:
		return MoodHappy
	case *s.LastStudyDate == today:
		return MoodProud
	case s.LastStudyDate.AddDays(1) == today:
		return MoodExcited
	default:
		return MoodSad
	}
}

// Icon returns the display icon for the mood.
func (m Mood) Icon() string {
	switch m {
	case MoodSleepy:
		return "😴"
	case MoodSad:
		return "😢"
	case MoodExcited:
		return "🤩"
	case MoodHappy:
		return "😊"
	case MoodProud:
		return "🥳"
	default:
		return "🙂"
	}
}
