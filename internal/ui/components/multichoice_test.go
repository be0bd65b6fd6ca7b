package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/ui/theme"
)

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("2+2?", []string{"3", "4", "5"}, 1)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Fatalf("up at top moved to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.ChosenIndex != 1 {
		t.Fatalf("Submitted=%v ChosenIndex=%d, want true 1", m.Submitted, m.ChosenIndex)
	}
	if !m.IsCorrect() {
		t.Error("IsCorrect = false for the right option")
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("selection moved after submit: %d", m.Selected)
	}
}

func TestMultiChoiceDigits(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"}, 0)

	m, _ = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if m.Submitted {
		t.Fatal("digit past the last option submitted")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if !m.Submitted || m.ChosenIndex != 2 {
		t.Fatalf("ChosenIndex = %d, want 2", m.ChosenIndex)
	}
	if m.IsCorrect() {
		t.Error("IsCorrect = true for a wrong option")
	}
}

func TestMultiChoiceView(t *testing.T) {
	th := theme.Resolve(profile.Female)
	m := NewMultiChoice("Capital of France?", []string{"Paris", "Rome"}, 0)

	view := m.View(th)
	for _, want := range []string{"Capital of France?", "▸ A)  Paris", "B)  Rome"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if strings.Contains(m.View(th), "▸") {
		t.Error("cursor still shown after submit")
	}
}
