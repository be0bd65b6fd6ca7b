package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/screens/home"
	"github.com/kokostudy/koko/internal/screens/review"
	"github.com/kokostudy/koko/internal/screens/welcome"
	"github.com/kokostudy/koko/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps screen.Deps
	// StartInReview skips the splash and opens a review session on top of home.
	StartInReview bool
}

type statusMsg struct {
	Status layout.Status
	Err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	status layout.Status
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates the model with either the splash or home plus a
// review session on the stack.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	m := AppModel{deps: deps}

	if opts.StartInReview {
		h := home.New(deps)
		m.router = router.New(h)
		m.start = tea.Batch(h.Init(), m.router.Push(review.New(deps)))
		return m
	}

	w := welcome.New(deps.Theme, func() screen.Screen { return home.New(deps) })
	m.router = router.New(w)
	m.start = w.Init()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.start, m.loadStatus())
}

// loadStatus reads the header counters.
func (m AppModel) loadStatus() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		today := deps.Cards.Today()
		due, err := deps.Cards.CountDue(ctx, today)
		if err != nil {
			return statusMsg{Err: err}
		}
		ov, err := deps.Rewards.Overview(ctx, today, due)
		if err != nil {
			return statusMsg{Err: err}
		}
		return statusMsg{Status: layout.Status{
			Coins:  ov.Companion.Funds,
			Streak: ov.Streak,
			Due:    due,
		}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case statusMsg:
		if msg.Err != nil {
			m.deps.Log.Warn("refresh status", zap.Error(msg.Err))
			return m, nil
		}
		m.status = msg.Status
		return m, nil

	case screen.StatusChangedMsg:
		return m, m.loadStatus()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	th := m.deps.Theme
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(th, m.width, m.height))
		return v
	}

	header := layout.RenderHeader(th, m.router.Breadcrumb(), m.status, m.width)
	footer := layout.RenderFooter(th, m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
