package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen/screentest"
)

func TestHistory_Empty(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	assert.Contains(t, s.View(80, 24), "Loading history")

	for _, msg := range screentest.Run(s.Init()) {
		s.Update(msg)
	}
	assert.Contains(t, s.View(80, 24), "No sessions yet")
}

func TestHistory_ListAndExpand(t *testing.T) {
	env := screentest.New(t)
	ctx := context.Background()
	svc := env.Deps.Rewards
	today := flashcard.MustParseDate("2024-03-10")

	require.NoError(t, svc.StartSession(ctx, "s1", 2))
	_, err := svc.RecordReview(ctx, "s1", today)
	require.NoError(t, err)
	_, err = svc.CompleteSession(ctx, rewards.SessionResult{SessionID: "s1", Due: 2, Reviewed: 1, Duration: 90 * time.Second}, today, 1)
	require.NoError(t, err)

	s := New(env.Deps)
	for _, msg := range screentest.Run(s.Init()) {
		s.Update(msg)
	}
	require.Len(t, s.sessions, 1)

	view := s.View(100, 24)
	assert.Contains(t, view, "1:30")
	assert.Contains(t, view, "1/2 cards")
	assert.Contains(t, view, "6 coins")
	assert.NotContains(t, view, "Session complete (1 cards)")

	s.Update(screentest.Key("enter"))
	assert.Contains(t, s.View(100, 24), "Session complete (1 cards)")

	s.Update(screentest.Key("enter"))
	assert.NotContains(t, s.View(100, 24), "Session complete (1 cards)")
}

func TestHistory_Navigation(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.loaded = true
	s.sessions = []rewards.SessionEntry{{SessionID: "a"}, {SessionID: "b"}}

	s.Update(screentest.Key("up"))
	assert.Equal(t, 0, s.selected)
	s.Update(screentest.Key("down"))
	s.Update(screentest.Key("down"))
	assert.Equal(t, 1, s.selected)

	_, cmd := s.Update(screentest.Key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
