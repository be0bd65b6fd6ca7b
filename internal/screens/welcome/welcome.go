package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen shows the companion splash before the home screen.
type WelcomeScreen struct {
	th           theme.Theme
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(th theme.Theme, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		th:          th,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	th := w.th
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(th.Palette.Primary).Render(th.Assets.Companion)

	// Sparkles on the sides of the companion once phase 1 is over.
	if w.elapsed >= phase1End && len(th.Assets.Sparkles) > 0 {
		sparkle := th.Assets.Sparkles[w.tickCount%len(th.Assets.Sparkles)]
		s1 := lipgloss.NewStyle().Foreground(th.Palette.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(th.Palette.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i := range lines {
			switch i % 3 {
			case 0:
				lines[i] = s1 + "  " + lines[i] + "  " + s2
			case 2:
				lines[i] = s2 + "  " + lines[i] + "  " + s1
			default:
				lines[i] = "   " + lines[i] + "   "
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(th, width),
			"",
			th.Body().Bold(true).Render(th.Assets.Badge+" "+th.Labels.Tagline),
			"",
			th.Dim().Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
