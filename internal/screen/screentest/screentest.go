// Package screentest builds screen dependencies on an in-memory store for
// screen tests.
package screentest

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/quiz"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/spacedrep"
	"github.com/kokostudy/koko/internal/study"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/theme"
)

const UserID = "tester"

// Env is a set of screen dependencies and the store behind them.
type Env struct {
	Deps     screen.Deps
	Store    *store.Store
	CourseID string
}

// New opens a store private to the test and wires every service onto it.
// A course named "Spanish" is created for AddCard.
func New(t testing.TB) *Env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(store.DriverSQLite, "file:screen_"+name+"?mode=memory&cache=shared", store.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// Blinking cursors emit timer commands that Run would wait on.
	blink := components.CursorBlink
	components.CursorBlink = false
	t.Cleanup(func() { components.CursorBlink = blink })

	log := zap.NewNop()
	ctx := context.Background()

	prof, err := profile.NewService(UserID, st.ProfileRepo(), log).Load(ctx)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	courses := course.NewService(UserID, st.CourseRepo(), st.StudySessionRepo(), log)
	c, err := courses.Create(ctx, course.Draft{Name: "Spanish"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	th := theme.Resolve(prof.Gender)
	cards := flashcard.NewService(UserID, st.CardRepo(), st.CourseRepo(), log)
	rw := rewards.NewService(UserID, st.EventRepo(), st.CompanionRepo(), st.StatsRepo(), log).
		WithCatalog(th.Assets.Outfits)

	return &Env{
		Store:    st,
		CourseID: c.ID,
		Deps: screen.Deps{
			Profile:   prof,
			Theme:     th,
			Cards:     cards,
			Courses:   courses,
			Rewards:   rw,
			Scheduler: spacedrep.NewScheduler(nil),
			Study:     study.NewService(UserID, st.StudySessionRepo(), courses, rw, log),
			Quiz:      quiz.NewService(cards, courses, nil, 0, log),
			Pomodoro:  study.PomodoroOf(0, 0),
			Log:       log,
		},
	}
}

// Fund gives the companion coins by logging study time.
func (e *Env) Fund(t testing.TB, minutes int) {
	t.Helper()
	if _, err := e.Deps.Study.Log(context.Background(), study.Draft{CourseID: e.CourseID, Minutes: minutes}); err != nil {
		t.Fatalf("log study: %v", err)
	}
}

// AddCard creates a card in the test course. New cards are due today.
func (e *Env) AddCard(t testing.TB, question, answer string) flashcard.Card {
	t.Helper()
	card, err := e.Deps.Cards.Create(context.Background(), flashcard.Draft{
		CourseID: e.CourseID,
		Question: question,
		Answer:   answer,
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	return card
}

// Run executes cmd and any batches it returns, and collects the messages
// in the order the commands ran.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Key builds a key press for a printable key or a named one such as
// "enter", "esc" or "space".
func Key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}
