package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/quiz"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/spacedrep"
	"github.com/kokostudy/koko/internal/study"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that reload state when they become
// active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Deps carries the loaded profile, its theme and the services screens use.
type Deps struct {
	Profile   profile.Profile
	Theme     theme.Theme
	Cards     *flashcard.Service
	Courses   *course.Service
	Rewards   *rewards.Service
	Scheduler *spacedrep.Scheduler
	Study     *study.Service
	Quiz      *quiz.Service
	Pomodoro  study.Pomodoro
	Log       *zap.Logger
}

// StatusChangedMsg tells the app to refresh the header counters.
type StatusChangedMsg struct{}
