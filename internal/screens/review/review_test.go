package review

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/screen/screentest"
	"github.com/kokostudy/koko/internal/screens/summary"
	mock_session "github.com/kokostudy/koko/internal/session/mock"
)

// pump feeds the screen's own messages back into it until only messages
// for the router or the app are left, and returns those.
func pump(s *ReviewScreen, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := screentest.Run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case dueLoadedMsg, ratedMsg, finishedMsg:
			_, next := s.Update(msg)
			queue = append(queue, screentest.Run(next)...)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func press(s *ReviewScreen, k string) []tea.Msg {
	_, cmd := s.Update(screentest.Key(k))
	return pump(s, cmd)
}

func start(t *testing.T, env *screentest.Env) *ReviewScreen {
	t.Helper()
	s := New(env.Deps)
	pump(s, s.Init())
	require.NotNil(t, s.ctrl, "due set loaded")
	return s
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestReview_NothingDue(t *testing.T) {
	env := screentest.New(t)
	s := start(t, env)

	assert.Contains(t, s.View(80, 24), "Nothing due today!")
	_, ok := find[router.PopScreenMsg](press(s, "x"))
	assert.True(t, ok, "any key goes back")
}

func TestReview_RevealThenRate(t *testing.T) {
	env := screentest.New(t)
	first := env.AddCard(t, "hola", "hello")
	env.AddCard(t, "adiós", "goodbye")
	s := start(t, env)

	view := s.View(80, 24)
	assert.Contains(t, view, "hola")
	assert.NotContains(t, view, "hello", "answer hidden before reveal")

	assert.Empty(t, press(s, "3"), "rating before reveal does nothing")
	assert.Equal(t, 0, s.done)

	press(s, "space")
	require.True(t, s.revealed)
	assert.Contains(t, s.View(80, 24), "hello")

	msgs := press(s, "3")
	_, ok := find[screen.StatusChangedMsg](msgs)
	assert.True(t, ok, "header refresh requested")
	assert.False(t, s.busy)
	assert.Equal(t, 1, s.done)
	assert.Equal(t, "adiós", s.card.Question)
	assert.False(t, s.revealed, "next card starts hidden")
	assert.Contains(t, s.View(80, 24), "Next review in 7 days")

	stored, err := env.Deps.Cards.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.NextReview.AddDays(7), stored.NextReview)
	assert.Equal(t, flashcard.Easy, stored.Difficulty)
	assert.Equal(t, 1, stored.ReviewCount)

	comp, err := env.Deps.Rewards.Companion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, comp.Funds)
}

func TestReview_LastRatingOpensSummary(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	s := start(t, env)

	press(s, "space")
	msgs := press(s, "h")

	rep, ok := find[router.ReplaceScreenMsg](msgs)
	require.True(t, ok, "summary replaces the review screen")
	assert.IsType(t, &summary.SummaryScreen{}, rep.Screen)
	assert.Contains(t, rep.Screen.View(80, 30), "All caught up!")

	ctx := context.Background()
	comp, err := env.Deps.Rewards.Companion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, comp.Funds, "one review coin plus the session bonus")

	sessions, err := env.Deps.Rewards.Sessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].Reviewed)
}

func TestReview_Skip(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	env.AddCard(t, "dos", "two")
	s := start(t, env)

	press(s, "space")
	press(s, "s")
	assert.Equal(t, "dos", s.card.Question)
	assert.False(t, s.revealed, "skip hides the answer")

	press(s, "s")
	assert.Equal(t, "uno", s.card.Question, "skip wraps around")
}

func TestReview_QuitConfirm(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	env.AddCard(t, "dos", "two")
	s := start(t, env)

	press(s, "esc")
	require.True(t, s.confirmQuit)
	assert.Contains(t, s.View(80, 24), "End session early?")

	press(s, "n")
	assert.False(t, s.confirmQuit)
	assert.Equal(t, "uno", s.card.Question)

	press(s, "esc")
	rep, ok := find[router.ReplaceScreenMsg](press(s, "y"))
	require.True(t, ok)
	assert.Contains(t, rep.Screen.View(80, 30), "See you next time!")
}

func TestReview_PersistFailureAllowsRetry(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	env.AddCard(t, "dos", "two")

	ctrl := gomock.NewController(t)
	w := mock_session.NewMockCardWriter(ctrl)
	gomock.InOrder(
		w.EXPECT().RecordReview(gomock.Any(), gomock.Any()).
			Return(flashcard.Card{}, &flashcard.PersistError{Op: "review", Err: errors.New("disk full")}),
		w.EXPECT().RecordReview(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c flashcard.Card) (flashcard.Card, error) { return c, nil }),
	)

	s := New(env.Deps)
	s.writer = w
	pump(s, s.Init())

	press(s, "space")
	msgs := press(s, "2")
	assert.Empty(t, msgs, "no header refresh after a failed save")
	assert.Equal(t, "uno", s.card.Question, "still on the same card")
	assert.True(t, s.revealed, "rating controls stay enabled")
	assert.Contains(t, s.View(80, 24), "Couldn't save your rating")

	press(s, "2")
	assert.Empty(t, s.saveErr)
	assert.Equal(t, 1, s.done)
	assert.Equal(t, "dos", s.card.Question)
}

func TestReview_BusyIgnoresInput(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	s := start(t, env)

	press(s, "space")
	_, cmd := s.Update(screentest.Key("3"))
	require.NotNil(t, cmd)
	require.True(t, s.busy)

	_, again := s.Update(screentest.Key("1"))
	assert.Nil(t, again, "second rating ignored while saving")
	assert.Nil(t, s.KeyHints())
}

func TestReview_KeyHints(t *testing.T) {
	env := screentest.New(t)
	env.AddCard(t, "uno", "one")
	s := start(t, env)

	keys := func() []string {
		var out []string
		for _, h := range s.KeyHints() {
			out = append(out, h.Key)
		}
		return out
	}
	assert.Equal(t, []string{"space", "s", "esc"}, keys())
	press(s, "space")
	assert.Equal(t, []string{"1", "2", "3", "s", "esc"}, keys())
}
