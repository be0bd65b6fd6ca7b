// Package shop lets the companion spend coins on outfits and change what
// it wears.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

type shopLoadedMsg struct {
	Companion rewards.Companion
	Err       error
}

type shopActionMsg struct {
	Companion rewards.Companion
	Note      string
	Err       error
}

// ShopScreen lists the theme's outfits with their price and state.
type ShopScreen struct {
	deps      screen.Deps
	catalog   []rewards.Outfit
	companion rewards.Companion
	selected  int
	loaded    bool
	note      string
	errMsg    string
}

var _ screen.Screen = (*ShopScreen)(nil)
var _ screen.KeyHintProvider = (*ShopScreen)(nil)

func New(deps screen.Deps) *ShopScreen {
	return &ShopScreen{deps: deps, catalog: deps.Rewards.Catalog()}
}

func (s *ShopScreen) Init() tea.Cmd {
	svc := s.deps.Rewards
	return func() tea.Msg {
		comp, err := svc.Companion(context.Background())
		return shopLoadedMsg{Companion: comp, Err: err}
	}
}

func (s *ShopScreen) Title() string {
	return "Outfit Shop"
}

func (s *ShopScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Buy / Wear"},
		{Key: "x", Description: "Take off"},
		{Key: "Esc", Description: "Back"},
	}
}

var keyTakeOff = key.NewBinding(key.WithKeys("x"))

func (s *ShopScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shopLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.companion = msg.Companion
		return s, nil

	case shopActionMsg:
		if msg.Err != nil {
			s.note = ""
			s.errMsg = describe(msg.Err)
			return s, nil
		}
		s.errMsg = ""
		s.companion = msg.Companion
		s.note = msg.Note
		return s, func() tea.Msg { return screen.StatusChangedMsg{} }

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, components.KeyBack):
			return s, router.Pop()
		case key.Matches(msg, components.KeyUp):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, components.KeyDown):
			if s.selected < len(s.catalog)-1 {
				s.selected++
			}
		case key.Matches(msg, components.KeySelect):
			if s.loaded && len(s.catalog) > 0 {
				return s, s.act(s.catalog[s.selected])
			}
		case key.Matches(msg, keyTakeOff):
			if s.companion.CurrentOutfit != "" {
				return s, s.wear(rewards.NoOutfit, "Back to the usual look")
			}
		}
	}
	return s, nil
}

// act buys an outfit not yet owned, and wears one that is.
func (s *ShopScreen) act(o rewards.Outfit) tea.Cmd {
	if s.companion.Owns(o.ID) {
		return s.wear(o.ID, "Now wearing "+o.Name)
	}
	svc := s.deps.Rewards
	return func() tea.Msg {
		comp, err := svc.Buy(context.Background(), o.ID)
		return shopActionMsg{Companion: comp, Note: fmt.Sprintf("Bought %s %s!", o.Emoji, o.Name), Err: err}
	}
}

func (s *ShopScreen) wear(id, note string) tea.Cmd {
	svc := s.deps.Rewards
	return func() tea.Msg {
		comp, err := svc.Wear(context.Background(), id)
		return shopActionMsg{Companion: comp, Note: note, Err: err}
	}
}

func describe(err error) string {
	if errors.Is(err, rewards.ErrInsufficientFunds) {
		return "Not enough coins yet. Keep studying!"
	}
	return err.Error()
}

func (s *ShopScreen) View(width, height int) string {
	th := s.deps.Theme
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Opening the shop...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(th.Title(), width,
		fmt.Sprintf("🪙 %d %s", s.companion.Funds, th.Labels.Coins)))
	b.WriteString("\n")
	wearing := "nothing special"
	if o, ok := s.deps.Rewards.Outfit(s.companion.CurrentOutfit); ok {
		wearing = o.Emoji + " " + o.Name
	}
	b.WriteString(theme.Centered(th.Dim(), width, th.Labels.Companion+" is wearing "+wearing))
	b.WriteString("\n\n")

	if len(s.catalog) == 0 {
		b.WriteString(theme.Centered(th.Dim().Italic(true), width, "The shop is empty"))
		return b.String()
	}

	for i, o := range s.catalog {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %-18s %s", prefix, o.Emoji, o.Name, s.state(o))

		st := th.Body()
		switch {
		case i == s.selected:
			st = lipgloss.NewStyle().Bold(true).Foreground(th.Palette.Primary)
		case !s.companion.Owns(o.ID) && !s.companion.CanAfford(o):
			st = th.Dim()
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(line)))
		b.WriteString("\n")
	}

	if o := s.catalog[s.selected]; o.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.Centered(th.Hint(), width, o.Description))
	}
	switch {
	case s.errMsg != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(th.Bad(), width, s.errMsg))
	case s.note != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(th.Good(), width, s.note))
	}
	return b.String()
}

func (s *ShopScreen) state(o rewards.Outfit) string {
	switch {
	case s.companion.CurrentOutfit == o.ID:
		return "WEARING"
	case s.companion.Owns(o.ID):
		return "owned"
	default:
		return fmt.Sprintf("🪙 %d", o.Cost)
	}
}
