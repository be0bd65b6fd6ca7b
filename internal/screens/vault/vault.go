// Package vault shows the companion's savings and every award earned,
// grouped by award type.
package vault

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/screens/shop"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

type vaultLoadedMsg struct {
	Companion rewards.Companion
	Awards    []rewards.Award
	Totals    map[rewards.AwardType]int
	Err       error
}

// VaultScreen displays coins, bus tickets and the award log.
type VaultScreen struct {
	deps         screen.Deps
	companion    rewards.Companion
	awards       []rewards.Award
	totals       map[rewards.AwardType]int
	selectedType int // index into AllAwardTypes
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*VaultScreen)(nil)
var _ screen.KeyHintProvider = (*VaultScreen)(nil)
var _ screen.Resumer = (*VaultScreen)(nil)

// New creates a new VaultScreen.
func New(deps screen.Deps) *VaultScreen {
	return &VaultScreen{deps: deps}
}

func (s *VaultScreen) Init() tea.Cmd {
	svc := s.deps.Rewards
	return func() tea.Msg {
		ctx := context.Background()
		comp, err := svc.Companion(ctx)
		if err != nil {
			return vaultLoadedMsg{Err: err}
		}
		awards, err := svc.History(ctx, 0)
		if err != nil {
			return vaultLoadedMsg{Err: err}
		}
		totals, err := svc.Totals(ctx)
		if err != nil {
			return vaultLoadedMsg{Err: err}
		}
		return vaultLoadedMsg{Companion: comp, Awards: awards, Totals: totals}
	}
}

// Resume reloads after a purchase in the shop.
func (s *VaultScreen) Resume() tea.Cmd {
	return s.Init()
}

func (s *VaultScreen) Title() string {
	return "Reward Vault"
}

func (s *VaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "s", Description: "Shop"},
		{Key: "Esc", Description: "Back"},
	}
}

var (
	keyNextTab = key.NewBinding(key.WithKeys("tab", "right", "l"))
	keyPrevTab = key.NewBinding(key.WithKeys("shift+tab", "left", "h"))
	keyShop    = key.NewBinding(key.WithKeys("s"))
)

func (s *VaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case vaultLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.companion = msg.Companion
			s.awards = msg.Awards
			s.totals = msg.Totals
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		types := rewards.AllAwardTypes()
		switch {
		case key.Matches(msg, components.KeyBack):
			return s, router.Pop()
		case key.Matches(msg, keyShop):
			return s, router.Push(shop.New(s.deps))
		case key.Matches(msg, keyNextTab):
			s.selectedType = (s.selectedType + 1) % len(types)
			s.scrollOffset = 0
		case key.Matches(msg, keyPrevTab):
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.scrollOffset = 0
		case key.Matches(msg, components.KeyUp):
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case key.Matches(msg, components.KeyDown):
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *VaultScreen) View(width, height int) string {
	th := s.deps.Theme
	if s.errMsg != "" {
		return theme.Centered(th.Bad(), width, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Opening the vault...")
	}

	var b strings.Builder
	b.WriteString("\n")
	savings := fmt.Sprintf("🪙 %d %s     🎫 %d %s",
		s.companion.Funds, th.Labels.Coins, s.companion.BusTickets, th.Labels.Tickets)
	b.WriteString(theme.Centered(th.Title(), width, savings))
	b.WriteString("\n\n")

	types := rewards.AllAwardTypes()
	tabs := make([]string, len(types))
	for i, t := range types {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.countByType(t))
		if i == s.selectedType {
			tabs[i] = th.Title().Render(label)
		} else {
			tabs[i] = th.Dim().Render(label)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(th.Palette.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(theme.Centered(th.Dim().Italic(true), width, "Nothing here yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	fg := typeColor(th, types[s.selectedType])
	for _, a := range filtered[start:end] {
		line := fmt.Sprintf("  %+4d %-32s %s", a.Amount, a.Reason, a.AwardedAt.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(fg).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(theme.Centered(th.Dim(), width, fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *VaultScreen) filtered() []rewards.Award {
	selected := rewards.AllAwardTypes()[s.selectedType]
	var out []rewards.Award
	for _, a := range s.awards {
		if a.Type == selected {
			out = append(out, a)
		}
	}
	return out
}

// countByType returns the summed amount of an award type.
func (s *VaultScreen) countByType(t rewards.AwardType) int {
	return s.totals[t]
}

func typeColor(th theme.Theme, t rewards.AwardType) color.Color {
	switch t {
	case rewards.AwardSession:
		return th.Palette.Secondary
	case rewards.AwardStreak:
		return th.Palette.Accent
	case rewards.AwardPurchase:
		return th.Palette.Error
	default:
		return th.Palette.Text
	}
}
