package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcomeWithCounter(g profile.Gender) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(theme.Resolve(g), factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(profile.Female)

	// Initially at phase 0, no banner visible.
	view := w.View(80, 24)
	if strings.Contains(view, "crown") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}

	view = w.View(80, 24)
	if !strings.Contains(view, "Every card is a step toward the crown!") {
		t.Error("tagline should be visible after phase 2")
	}
	if !strings.Contains(view, "██╗  ██╗") {
		t.Error("block banner should be visible on a wide terminal")
	}
}

func TestChampionTheme(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(profile.Male)
	sendTicks(w, 20)

	view := w.View(80, 24)
	if !strings.Contains(view, "Every card makes you stronger!") {
		t.Error("champion tagline missing")
	}
	if !strings.Contains(view, "🏆") {
		t.Error("champion badge missing")
	}
}

func TestNarrowTerminalUsesSpacedBanner(t *testing.T) {
	th := theme.Resolve(profile.Female)
	if got := RenderBanner(th, 30); !strings.Contains(got, "K O K O") {
		t.Errorf("narrow banner = %q, want spaced letters", got)
	}
	if got := RenderBanner(th, 80); strings.Contains(got, "K O K O") {
		t.Error("wide banner should use block letters")
	}
}

func TestBlockTextUnknownLetter(t *testing.T) {
	if _, ok := blockText("KOKO"); !ok {
		t.Error("KOKO should render")
	}
	if _, ok := blockText("MAX"); !ok {
		t.Error("MAX should render")
	}
	if _, ok := blockText("ZED"); ok {
		t.Error("letters without glyphs should be reported")
	}
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(profile.Female)

	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(profile.Female)

	// Ticks keep going for the sparkle animation, but the factory waits for
	// a keypress.
	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter(profile.Female)

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(profile.Female)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := sendTicks(w, 1); cmd != nil {
		t.Error("no further ticks after the transition")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcomeWithCounter(profile.Female)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
