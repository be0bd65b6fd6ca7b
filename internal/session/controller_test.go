package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	mock_session "github.com/kokostudy/koko/internal/session/mock"
	"github.com/kokostudy/koko/internal/spacedrep"
)

var today = flashcard.MustParseDate("2024-01-01")

func dueCards(ids ...string) []flashcard.Card {
	cards := make([]flashcard.Card, len(ids))
	for i, id := range ids {
		cards[i] = flashcard.Card{
			ID:         id,
			CourseID:   "c",
			Question:   "q-" + id,
			Answer:     "a-" + id,
			Difficulty: flashcard.Medium,
			NextReview: today,
		}
	}
	return cards
}

// echoWriter expects n write-backs and returns each card unchanged.
func echoWriter(ctrl *gomock.Controller, n int) *mock_session.MockCardWriter {
	w := mock_session.NewMockCardWriter(ctrl)
	w.EXPECT().
		RecordReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c flashcard.Card) (flashcard.Card, error) { return c, nil }).
		Times(n)
	return w
}

func newController(t *testing.T, cards []flashcard.Card, w CardWriter) *Controller {
	t.Helper()
	return NewController(cards, today, spacedrep.NewScheduler(nil), w, zap.NewNop())
}

func currentID(t *testing.T, c *Controller) string {
	t.Helper()
	card, ok := c.Current()
	require.True(t, ok, "expected a current card")
	return card.ID
}

func TestController_EmptyDueSetStartsComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, spacedrep.DueSet(nil, today), mock_session.NewMockCardWriter(ctrl))

	assert.Equal(t, PhaseComplete, c.Phase())
	_, ok := c.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Reveal(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Skip(), ErrInvalidTransition)
	_, err := c.Rate(context.Background(), flashcard.Easy)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestController_RevealThenRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("a"), echoWriter(ctrl, 1))

	require.Equal(t, PhaseAwaitingReveal, c.Phase())
	assert.False(t, c.AnswerVisible())

	_, err := c.Rate(context.Background(), flashcard.Easy)
	assert.ErrorIs(t, err, ErrInvalidTransition, "rating before reveal")

	require.NoError(t, c.Reveal())
	assert.Equal(t, PhaseAwaitingRating, c.Phase())
	assert.True(t, c.AnswerVisible())
	assert.ErrorIs(t, c.Reveal(), ErrInvalidTransition, "double reveal")

	res, err := c.Rate(context.Background(), flashcard.Easy)
	require.NoError(t, err)
	assert.Equal(t, flashcard.MustParseDate("2024-01-08"), res.Card.NextReview)
	assert.Equal(t, 1, res.Card.ReviewCount)
	assert.Equal(t, 7, res.IntervalDays)
	assert.Equal(t, PhaseComplete, c.Phase())
}

func TestController_ThreeCardsAdvanceToSecond(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock_session.NewMockCardWriter(ctrl)

	var written flashcard.Card
	w.EXPECT().
		RecordReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c flashcard.Card) (flashcard.Card, error) {
			written = c
			return c, nil
		})

	c := newController(t, dueCards("1", "2", "3"), w)
	require.Equal(t, "1", currentID(t, c))

	require.NoError(t, c.Reveal())
	_, err := c.Rate(context.Background(), flashcard.Medium)
	require.NoError(t, err)

	assert.Equal(t, "1", written.ID)
	assert.Equal(t, today.AddDays(3), written.NextReview)
	assert.Equal(t, PhaseAwaitingReveal, c.Phase())
	assert.Equal(t, "2", currentID(t, c), "next card, not card 1 again")
	assert.Equal(t, 2, c.Remaining())
}

func TestController_RatedCardsNeverRevisited(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("1", "2", "3"), echoWriter(ctrl, 3))
	ctx := context.Background()

	var seen []string
	for c.Phase() != PhaseComplete {
		seen = append(seen, currentID(t, c))
		require.NoError(t, c.Reveal())
		_, err := c.Rate(ctx, flashcard.Hard)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"1", "2", "3"}, seen)
	assert.Equal(t, 3, c.Reviewed())
	assert.Equal(t, 0, c.Remaining())
}

func TestController_RatingLastCardWrapsToFirstUnrated(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("1", "2", "3"), echoWriter(ctrl, 1))
	ctx := context.Background()

	require.NoError(t, c.Skip())
	require.NoError(t, c.Skip())
	require.Equal(t, "3", currentID(t, c))

	require.NoError(t, c.Reveal())
	_, err := c.Rate(ctx, flashcard.Easy)
	require.NoError(t, err)

	assert.Equal(t, "1", currentID(t, c), "cursor wraps to index 0")
	assert.Equal(t, 2, c.Remaining())
}

func TestController_SkipWraps(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("1", "2"), mock_session.NewMockCardWriter(ctrl))

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Skip())
	assert.Equal(t, "2", currentID(t, c))
	assert.Equal(t, PhaseAwaitingReveal, c.Phase(), "skip hides the answer again")

	require.NoError(t, c.Skip())
	assert.Equal(t, "1", currentID(t, c))
}

func TestController_PersistFailureKeepsCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock_session.NewMockCardWriter(ctrl)
	boom := errors.New("store unavailable")

	gomock.InOrder(
		w.EXPECT().RecordReview(gomock.Any(), gomock.Any()).Return(flashcard.Card{}, boom),
		w.EXPECT().RecordReview(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c flashcard.Card) (flashcard.Card, error) { return c, nil }),
	)

	c := newController(t, dueCards("1", "2"), w)
	ctx := context.Background()
	require.NoError(t, c.Reveal())

	_, err := c.Rate(ctx, flashcard.Easy)
	require.Error(t, err)
	var pe *flashcard.PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "1", pe.CardID)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, PhaseAwaitingRating, c.Phase(), "stays on the card for a retry")
	assert.Equal(t, "1", currentID(t, c))
	assert.Equal(t, 0, c.Reviewed())

	res, err := c.Rate(ctx, flashcard.Easy)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Card.ReviewCount, "a retried rating counts once")
	assert.Equal(t, "2", currentID(t, c))
}

func TestController_PersistErrorPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock_session.NewMockCardWriter(ctrl)
	pe := &flashcard.PersistError{Op: "review", CardID: "1", Err: errors.New("timeout")}
	w.EXPECT().RecordReview(gomock.Any(), gomock.Any()).Return(flashcard.Card{}, pe)

	c := newController(t, dueCards("1"), w)
	require.NoError(t, c.Reveal())
	_, err := c.Rate(context.Background(), flashcard.Hard)

	var got *flashcard.PersistError
	require.True(t, errors.As(err, &got))
	assert.Same(t, pe, got)
}

func TestController_InvalidRatingWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("1"), mock_session.NewMockCardWriter(ctrl))
	require.NoError(t, c.Reveal())

	_, err := c.Rate(context.Background(), flashcard.Difficulty("meh"))
	assert.ErrorIs(t, err, spacedrep.ErrInvalidRating)
	assert.Equal(t, PhaseAwaitingRating, c.Phase())
}

func TestController_DoesNotAliasInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := dueCards("1", "2")
	c := newController(t, cards, echoWriter(ctrl, 1))

	require.NoError(t, c.Reveal())
	_, err := c.Rate(context.Background(), flashcard.Easy)
	require.NoError(t, err)

	assert.Equal(t, "1", cards[0].ID)
	assert.Equal(t, "2", cards[1].ID)
	assert.Equal(t, 0, cards[0].ReviewCount)
}

func TestBuildSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newController(t, dueCards("1", "2", "3"), echoWriter(ctrl, 2))
	ctx := context.Background()

	require.NoError(t, c.Reveal())
	_, err := c.Rate(ctx, flashcard.Easy)
	require.NoError(t, err)
	require.NoError(t, c.Skip())
	require.NoError(t, c.Reveal())
	_, err = c.Rate(ctx, flashcard.Hard)
	require.NoError(t, err)
	c.Finish()

	s := BuildSummary(c)
	assert.Equal(t, c.ID(), s.SessionID)
	assert.Equal(t, 3, s.Due)
	assert.Equal(t, 2, s.Reviewed)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Remaining)
	assert.Equal(t, map[flashcard.Difficulty]int{flashcard.Easy: 1, flashcard.Hard: 1}, s.ByRating)
	assert.Len(t, s.Results, 2)
	assert.GreaterOrEqual(t, s.Duration.Nanoseconds(), int64(0))
	assert.Equal(t, PhaseComplete, c.Phase())
}
