// Package review implements the review session screen: it walks the user
// through today's due cards, writes each rating back to the card store and
// hands over to the summary screen when the session ends.
package review

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/screens/summary"
	sess "github.com/kokostudy/koko/internal/session"
	"github.com/kokostudy/koko/internal/spacedrep"
	"github.com/kokostudy/koko/internal/ui/layout"
)

// ReviewScreen implements screen.Screen for an active review session.
type ReviewScreen struct {
	deps   screen.Deps
	writer sess.CardWriter
	ctrl   *sess.Controller

	// busy is set while a command owns the controller. Update then ignores
	// input and View renders from the cached fields below.
	busy     bool
	card     flashcard.Card
	revealed bool
	total    int
	done     int

	last        *sess.Result
	lastAwards  []rewards.Award
	saveErr     string
	errMsg      string
	confirmQuit bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen that writes ratings through deps.Cards.
func New(deps screen.Deps) *ReviewScreen {
	return &ReviewScreen{deps: deps, writer: deps.Cards}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.loadDue()
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Go back"}}
	case s.ctrl == nil || s.busy:
		return nil
	case s.total == 0:
		return []layout.KeyHint{{Key: "any key", Description: "Go back"}}
	case s.confirmQuit:
		return hints(keyYes, keyNo)
	case s.revealed:
		return hints(keyHard, keyMedium, keyEasy, keySkip, keyQuit)
	default:
		return hints(keyReveal, keySkip, keyQuit)
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		out[i] = layout.KeyHint{Key: h.Key, Description: h.Desc}
	}
	return out
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dueLoadedMsg:
		return s.handleLoaded(msg)
	case ratedMsg:
		return s.handleRated(msg)
	case finishedMsg:
		return s.handleFinished(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadDue selects today's due cards and opens a session over them.
func (s *ReviewScreen) loadDue() tea.Cmd {
	deps, writer := s.deps, s.writer
	return func() tea.Msg {
		ctx := context.Background()
		today := deps.Cards.Today()

		cards, err := deps.Cards.List(ctx)
		if err != nil {
			return dueLoadedMsg{Err: err}
		}
		due := spacedrep.DueSet(cards, today)
		ctrl := sess.NewController(due, today, deps.Scheduler, writer, deps.Log)

		if len(due) > 0 {
			if err := deps.Rewards.StartSession(ctx, ctrl.ID(), len(due)); err != nil {
				deps.Log.Warn("session start not logged", zap.Error(err))
			}
		}
		return dueLoadedMsg{Ctrl: ctrl}
	}
}

func (s *ReviewScreen) handleLoaded(msg dueLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.ctrl = msg.Ctrl
	s.syncCard()
	return s, nil
}

// syncCard caches what View needs from the controller.
func (s *ReviewScreen) syncCard() {
	s.card, _ = s.ctrl.Current()
	s.revealed = s.ctrl.AnswerVisible()
	s.total = s.ctrl.Total()
	s.done = s.ctrl.Reviewed()
}

func (s *ReviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Pop()
	}
	if s.ctrl == nil || s.busy {
		return s, nil
	}
	if s.total == 0 {
		return s, router.Pop()
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, keyYes):
			s.confirmQuit = false
			s.ctrl.Finish()
			return s, s.finish()
		case key.Matches(msg, keyNo):
			s.confirmQuit = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keyQuit):
		s.confirmQuit = true
		return s, nil
	case key.Matches(msg, keySkip):
		if err := s.ctrl.Skip(); err == nil {
			s.saveErr = ""
			s.last = nil
			s.syncCard()
		}
		return s, nil
	}

	if !s.revealed {
		if key.Matches(msg, keyReveal) && s.ctrl.Reveal() == nil {
			s.syncCard()
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keyHard):
		return s, s.rate(flashcard.Hard)
	case key.Matches(msg, keyMedium):
		return s, s.rate(flashcard.Medium)
	case key.Matches(msg, keyEasy):
		return s, s.rate(flashcard.Easy)
	}
	return s, nil
}

// rate writes the rating back and records the review rewards. The
// controller belongs to the command until ratedMsg arrives.
func (s *ReviewScreen) rate(rating flashcard.Difficulty) tea.Cmd {
	s.busy = true
	s.saveErr = ""
	ctrl, deps := s.ctrl, s.deps
	return func() tea.Msg {
		ctx := context.Background()
		res, err := ctrl.Rate(ctx, rating)
		if err != nil {
			return ratedMsg{Err: err}
		}
		awards, err := deps.Rewards.RecordReview(ctx, ctrl.ID(), ctrl.Today())
		if err != nil {
			deps.Log.Warn("review reward not recorded", zap.String("card_id", res.Card.ID), zap.Error(err))
		}
		return ratedMsg{Result: res, Awards: awards}
	}
}

func (s *ReviewScreen) handleRated(msg ratedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		var pe *flashcard.PersistError
		if errors.As(msg.Err, &pe) {
			s.saveErr = "Couldn't save your rating. Pick a rating again to retry."
		} else {
			s.saveErr = msg.Err.Error()
		}
		s.deps.Log.Warn("rating failed", zap.String("card_id", s.card.ID), zap.Error(msg.Err))
		s.syncCard()
		return s, nil
	}

	res := msg.Result
	s.last = &res
	s.lastAwards = msg.Awards
	s.syncCard()

	status := func() tea.Msg { return screen.StatusChangedMsg{} }
	if s.ctrl.Phase() == sess.PhaseComplete {
		return s, tea.Batch(status, s.finish())
	}
	return s, status
}

// finish closes the session: it builds the summary, grants the session
// bonus and replaces this screen with the summary screen.
func (s *ReviewScreen) finish() tea.Cmd {
	s.busy = true
	ctrl, deps := s.ctrl, s.deps
	return func() tea.Msg {
		ctx := context.Background()
		sum := sess.BuildSummary(ctrl)
		today := ctrl.Today()

		dueLeft, err := deps.Cards.CountDue(ctx, today)
		if err != nil {
			deps.Log.Warn("count due", zap.Error(err))
		}
		_, err = deps.Rewards.CompleteSession(ctx, rewards.SessionResult{
			SessionID: sum.SessionID,
			Due:       sum.Due,
			Reviewed:  sum.Reviewed,
			Duration:  sum.Duration,
		}, today, dueLeft)
		if err != nil {
			deps.Log.Warn("session end not recorded", zap.Error(err))
		}

		mood, err := deps.Rewards.Mood(ctx, today, dueLeft)
		if err != nil {
			mood = rewards.MoodSleepy
		}
		awards := append([]rewards.Award(nil), deps.Rewards.SessionAwards...)
		return finishedMsg{Summary: sum, Awards: awards, Mood: mood}
	}
}

func (s *ReviewScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	next := summary.New(s.deps, msg.Summary, msg.Awards, msg.Mood)
	return s, tea.Batch(
		func() tea.Msg { return screen.StatusChangedMsg{} },
		router.Replace(next),
	)
}
