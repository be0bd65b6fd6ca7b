package flashcard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(store.DriverSQLite, "file:flashcard_"+name+"?mode=memory&cache=shared", store.Options{})
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T, today time.Time) (*Service, string) {
	t.Helper()
	st := openTestStore(t)
	course, err := st.CourseRepo().CreateCourse(context.Background(), "u1", store.NewCourse{Name: "Spanish"})
	require.NoError(t, err)

	svc := NewService("u1", st.CardRepo(), st.CourseRepo(), zap.NewNop())
	svc.now = func() time.Time { return today }
	return svc, course.ID
}

func TestCreateCard(t *testing.T) {
	today := time.Date(2024, 1, 1, 15, 0, 0, 0, time.Local)
	svc, courseID := newTestService(t, today)
	ctx := context.Background()

	card, err := svc.Create(ctx, Draft{CourseID: courseID, Question: "  hola  ", Answer: "hello"})
	require.NoError(t, err)

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "hola", card.Question, "input is trimmed")
	assert.Equal(t, Medium, card.Difficulty)
	assert.Equal(t, MustParseDate("2024-01-01"), card.NextReview)
	assert.Equal(t, 0, card.ReviewCount)
	assert.Nil(t, card.LastReviewed)
	assert.True(t, card.IsDue(svc.Today()), "a new card is due on its creation date")
}

func TestCreateCardValidation(t *testing.T) {
	svc, courseID := newTestService(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	ctx := context.Background()

	tests := []struct {
		name   string
		draft  Draft
		fields []string
	}{
		{"empty question", Draft{CourseID: courseID, Question: "", Answer: "a"}, []string{"question"}},
		{"blank answer", Draft{CourseID: courseID, Question: "q", Answer: "   "}, []string{"answer"}},
		{"missing course", Draft{Question: "q", Answer: "a"}, []string{"courseID"}},
		{"all missing", Draft{}, []string{"courseID", "question", "answer"}},
		{"unknown course", Draft{CourseID: "nope", Question: "q", Answer: "a"}, []string{"courseID"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.draft)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			var got []string
			for _, f := range ve.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}

	cards, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards, "rejected drafts must not be written")
}

func TestEditKeepsSchedule(t *testing.T) {
	svc, courseID := newTestService(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	ctx := context.Background()

	card, err := svc.Create(ctx, Draft{CourseID: courseID, Question: "q", Answer: "a"})
	require.NoError(t, err)

	q := "new question"
	hard := Hard
	edited, err := svc.Edit(ctx, card.ID, Edit{Question: &q, Difficulty: &hard})
	require.NoError(t, err)

	assert.Equal(t, "new question", edited.Question)
	assert.Equal(t, "a", edited.Answer)
	assert.Equal(t, Hard, edited.Difficulty)
	assert.Equal(t, card.NextReview, edited.NextReview)
	assert.Equal(t, card.ReviewCount, edited.ReviewCount)
}

func TestEditValidation(t *testing.T) {
	svc, courseID := newTestService(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	ctx := context.Background()
	card, err := svc.Create(ctx, Draft{CourseID: courseID, Question: "q", Answer: "a"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Edit(ctx, card.ID, Edit{Answer: &blank})
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

	bogus := Difficulty("trivial")
	_, err = svc.Edit(ctx, card.ID, Edit{Difficulty: &bogus})
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

	q := "x"
	_, err = svc.Edit(ctx, "missing", Edit{Question: &q})
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestRecordReviewWritesSchedule(t *testing.T) {
	svc, courseID := newTestService(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	ctx := context.Background()
	card, err := svc.Create(ctx, Draft{CourseID: courseID, Question: "q", Answer: "a"})
	require.NoError(t, err)

	last := MustParseDate("2024-01-01")
	card.Difficulty = Easy
	card.NextReview = MustParseDate("2024-01-08")
	card.ReviewCount = 1
	card.LastReviewed = &last
	card.Question = "changed locally"

	stored, err := svc.RecordReview(ctx, card)
	require.NoError(t, err)
	assert.Equal(t, Easy, stored.Difficulty)
	assert.Equal(t, MustParseDate("2024-01-08"), stored.NextReview)
	assert.Equal(t, 1, stored.ReviewCount)
	require.NotNil(t, stored.LastReviewed)
	assert.Equal(t, last, *stored.LastReviewed)
	assert.Equal(t, "q", stored.Question, "review writes only scheduling fields")

	due, err := svc.CountDue(ctx, MustParseDate("2024-01-07"))
	require.NoError(t, err)
	assert.Equal(t, 0, due)
	due, err = svc.CountDue(ctx, MustParseDate("2024-01-08"))
	require.NoError(t, err)
	assert.Equal(t, 1, due)
}

type failingCards struct {
	store.CardRepo
	err error
}

func (f failingCards) UpdateCard(context.Context, string, string, store.CardPatch) (store.CardRecord, error) {
	return store.CardRecord{}, f.err
}

func TestRecordReviewPersistError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService("u1", failingCards{err: boom}, nil, nil)

	_, err := svc.RecordReview(context.Background(), Card{ID: "c1", Difficulty: Easy, NextReview: "2024-01-08"})
	require.Error(t, err)

	var pe *PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "review", pe.Op)
	assert.Equal(t, "c1", pe.CardID)
	assert.True(t, errors.Is(err, boom))
}
