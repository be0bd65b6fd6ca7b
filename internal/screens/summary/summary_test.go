package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/session"
	"github.com/kokostudy/koko/internal/ui/theme"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID: "s1",
		Duration:  3*time.Minute + 5*time.Second,
		Due:       5,
		Reviewed:  4,
		Skipped:   1,
		Remaining: 1,
		ByRating:  map[flashcard.Difficulty]int{flashcard.Easy: 3, flashcard.Hard: 1},
	}
}

func testAwards() []rewards.Award {
	return []rewards.Award{
		{Type: rewards.AwardReview, Amount: 1, Reason: "Card reviewed"},
		{Type: rewards.AwardReview, Amount: 1, Reason: "Card reviewed"},
		{Type: rewards.AwardStreak, Amount: 1, Reason: "3-day study streak!"},
		{Type: rewards.AwardSession, Amount: 5, Reason: "Session complete (4 cards)"},
	}
}

func newScreen() *SummaryScreen {
	deps := screen.Deps{Theme: theme.Resolve(profile.Female)}
	return New(deps, testSummary(), testAwards(), rewards.MoodHappy)
}

func TestSummaryScreen_Title(t *testing.T) {
	s := newScreen()
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := newScreen().View(80, 24)
	for _, want := range []string{"Session complete!", "3:05", "Reviewed: 4", "Koko is happy", "3-day study streak!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(screen.Deps{}, nil, nil, rewards.MoodSleepy)
	if got := s.View(80, 24); got != "" {
		t.Errorf("View = %q, want empty", got)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	_, cmd := newScreen().Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	_, cmd := newScreen().Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	hints := newScreen().KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestAwardLines(t *testing.T) {
	lines := awardLines(testAwards())
	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "2 cards reviewed") || !strings.Contains(lines[0], "+2 coins") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "+1 bus ticket") || strings.Contains(lines[1], "tickets") {
		t.Errorf("ticket line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "+5 coins") {
		t.Errorf("session line = %q", lines[2])
	}
}

func TestHeadline(t *testing.T) {
	cases := []struct {
		sum  session.Summary
		want string
	}{
		{session.Summary{Due: 2}, "See you next time!"},
		{session.Summary{Due: 2, Reviewed: 2}, "All caught up!"},
		{session.Summary{Due: 2, Reviewed: 1, Remaining: 1}, "Session complete!"},
	}
	for _, c := range cases {
		if got := headline(&c.sum); got != c.want {
			t.Errorf("headline(%+v) = %q, want %q", c.sum, got, c.want)
		}
	}
}
