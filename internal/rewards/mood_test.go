package rewards

import (
	"testing"

	"github.com/kokostudy/koko/internal/flashcard"
)

func TestMoodFor(t *testing.T) {
	today := flashcard.MustParseDate("2024-03-10")

	tests := []struct {
		name  string
		stats Stats
		due   int
		want  Mood
	}{
		{"never studied", Stats{}, 3, MoodSleepy},
		{"studied today, cards left", Stats{LastStudyDate: datePtr("2024-03-10")}, 2, MoodHappy},
		{"studied today, all done", Stats{LastStudyDate: datePtr("2024-03-10")}, 0, MoodProud},
		{"studied yesterday", Stats{LastStudyDate: datePtr("2024-03-09")}, 4, MoodExcited},
		{"missed days", Stats{LastStudyDate: datePtr("2024-03-01")}, 0, MoodSad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoodFor(tt.stats, today, tt.due); got != tt.want {
				t.Errorf("MoodFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoodIcon(t *testing.T) {
	for _, m := range []Mood{MoodSleepy, MoodSad, MoodExcited, MoodHappy, MoodProud} {
		if m.Icon() == "🙂" {
			t.Errorf("mood %s uses the fallback icon", m)
		}
	}
}
