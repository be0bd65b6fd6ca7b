package home

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// RenderCompanion returns the theme's companion art dressed for mood,
// with the worn outfit's emoji on top.
func RenderCompanion(th theme.Theme, mood rewards.Mood, outfit string) string {
	art := th.Assets.Companion
	fg := moodColor(th, mood)

	lines := strings.Split(art, "\n")
	switch mood {
	case rewards.MoodSleepy:
		lines[0] += "  z z"
	case rewards.MoodSad:
		lines[0] += "  …"
	case rewards.MoodExcited, rewards.MoodProud:
		if len(th.Assets.Sparkles) > 0 {
			sp := th.Assets.Sparkles[0]
			lines[0] = sp + " " + lines[0] + " " + sp
		}
	}
	for _, o := range th.Assets.Outfits {
		if o.ID == outfit {
			lines = append([]string{"      " + o.Emoji}, lines...)
			break
		}
	}
	return lipgloss.NewStyle().Foreground(fg).Render(strings.Join(lines, "\n"))
}

func moodColor(th theme.Theme, mood rewards.Mood) color.Color {
	switch mood {
	case rewards.MoodSad, rewards.MoodSleepy:
		return th.Palette.TextDim
	case rewards.MoodProud:
		return th.Palette.Accent
	default:
		return th.Palette.Primary
	}
}

// moodLine is what the companion says on the home screen.
func moodLine(th theme.Theme, mood rewards.Mood, due int) string {
	name := th.Labels.Companion
	switch mood {
	case rewards.MoodSleepy:
		return name + " is sleepy. Add a card to get started!"
	case rewards.MoodSad:
		return name + " misses you. Let's study!"
	case rewards.MoodExcited:
		return name + " is excited to keep the streak going!"
	case rewards.MoodHappy:
		if due == 1 {
			return name + " is happy. 1 card left today!"
		}
		return name + " is happy. A few more cards to go!"
	case rewards.MoodProud:
		return name + " is proud of you. All done for today!"
	default:
		return name + " says hi!"
	}
}
