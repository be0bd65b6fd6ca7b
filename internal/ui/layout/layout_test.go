package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/ui/theme"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderUsesTheme(t *testing.T) {
	koko := RenderHeader(theme.Resolve(profile.Female), "Review", Status{Coins: 12, Streak: 3, Due: 4}, 100)
	champ := RenderHeader(theme.Resolve(profile.Male), "Review", Status{}, 100)

	if !strings.Contains(koko, "Koko") || !strings.Contains(koko, "12") || !strings.Contains(koko, "4 due") {
		t.Errorf("female header missing content:\n%s", koko)
	}
	if !strings.Contains(champ, "Max") {
		t.Errorf("male header missing companion name:\n%s", champ)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	th := theme.Resolve(profile.Female)
	header := RenderHeader(th, "Home", Status{}, 80)
	footer := RenderFooter(th, []KeyHint{{Key: "Esc", Description: "Back"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}
