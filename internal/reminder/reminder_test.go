package reminder_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/reminder"
	mock_reminder "github.com/kokostudy/koko/internal/reminder/mock"
	"github.com/kokostudy/koko/internal/ui/theme"
)

var today = flashcard.MustParseDate("2024-05-01")

func TestMessage(t *testing.T) {
	tests := []struct {
		gender profile.Gender
		due    int
		want   string
	}{
		{profile.Female, 4, "Koko: 4 cards are waiting for you!"},
		{profile.Female, 1, "Koko: 1 card is waiting for you!"},
		{profile.Male, 2, "Max: 2 cards are waiting for you!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reminder.Message(theme.Resolve(tt.gender), tt.due))
	}
}

func TestCheck_SendsWhenDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := mock_reminder.NewMockDueCounter(ctrl)
	notifier := mock_reminder.NewMockNotifier(ctrl)

	cards.EXPECT().Today().Return(today)
	cards.EXPECT().CountDue(gomock.Any(), today).Return(4, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r reminder.Reminder) error {
			assert.Equal(t, 4, r.Due)
			assert.Equal(t, "Koko: 4 cards are waiting for you!", r.Message)
			return nil
		})

	svc := reminder.New(cards, theme.Resolve(profile.Female), notifier, nil)
	sent, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestCheck_QuietWhenNothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := mock_reminder.NewMockDueCounter(ctrl)
	notifier := mock_reminder.NewMockNotifier(ctrl)

	cards.EXPECT().Today().Return(today)
	cards.EXPECT().CountDue(gomock.Any(), today).Return(0, nil)

	svc := reminder.New(cards, theme.Resolve(profile.Female), notifier, nil)
	sent, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestCheck_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := mock_reminder.NewMockDueCounter(ctrl)
	notifier := mock_reminder.NewMockNotifier(ctrl)
	boom := errors.New("boom")

	cards.EXPECT().Today().Return(today).Times(2)
	cards.EXPECT().CountDue(gomock.Any(), today).Return(0, boom)
	cards.EXPECT().CountDue(gomock.Any(), today).Return(3, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(boom)

	svc := reminder.New(cards, theme.Resolve(profile.Female), notifier, nil)

	_, err := svc.Check(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "count due cards")

	sent, err := svc.Check(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "send reminder")
	assert.False(t, sent)
}

func TestSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := reminder.New(mock_reminder.NewMockDueCounter(ctrl), theme.Resolve(profile.Female), mock_reminder.NewMockNotifier(ctrl), nil)

	assert.Error(t, svc.Schedule("25:00"))
	require.NoError(t, svc.Schedule("18:30"))

	svc.Start()
	defer svc.Stop()

	next := svc.NextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 18, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.WithinDuration(t, time.Now(), next, 24*time.Hour)

	assert.ErrorIs(t, svc.Schedule("07:00"), reminder.ErrAlreadyStarted)
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := reminder.WriterNotifier{W: &buf}
	sent := time.Date(2024, 5, 1, 18, 0, 0, 0, time.Local)

	require.NoError(t, n.Notify(context.Background(), reminder.Reminder{Due: 2, Message: "Koko: 2 cards are waiting for you!", SentAt: sent}))
	assert.Equal(t, "[18:00] Koko: 2 cards are waiting for you!\n", buf.String())
}
