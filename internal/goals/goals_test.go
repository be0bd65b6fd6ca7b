package goals

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/store"
)

func newTestService(t *testing.T) (*Service, course.Course) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(store.DriverSQLite, "file:goals_"+name+"?mode=memory&cache=shared", store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	courses := course.NewService("u1", st.CourseRepo(), nil, zap.NewNop())
	c, err := courses.Create(context.Background(), course.Draft{Name: "Anatomy"})
	require.NoError(t, err)
	return NewService("u1", st.GoalRepo(), courses, zap.NewNop()), c
}

func TestAddAndList(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	g, err := svc.Add(ctx, Draft{CourseID: c.ID, Title: "  Learn the bones ", TargetDate: "2026-06-01", Progress: 20})
	require.NoError(t, err)
	assert.Equal(t, "Learn the bones", g.Title)
	assert.Equal(t, c.ID, g.CourseID)
	assert.Equal(t, flashcard.Date("2026-06-01"), g.TargetDate)
	assert.False(t, g.Completed)

	open, err := svc.Add(ctx, Draft{Title: "Read more"})
	require.NoError(t, err)
	assert.Empty(t, open.CourseID)
	assert.True(t, open.TargetDate.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, g.ID, list[0].ID)
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"empty title", Draft{}, "title"},
		{"blank title", Draft{Title: "  "}, "title"},
		{"negative progress", Draft{Title: "x", Progress: -1}, "progress"},
		{"progress over 100", Draft{Title: "x", Progress: 101}, "progress"},
		{"bad date", Draft{Title: "x", TargetDate: "June 1"}, "targetDate"},
		{"unknown course", Draft{Title: "x", CourseID: "missing"}, "courseID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.draft)
			require.ErrorIs(t, err, flashcard.ErrValidation)

			var ve *flashcard.ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}
}

func TestProgressAndComplete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	g, err := svc.Add(ctx, Draft{Title: "Finish flashcards"})
	require.NoError(t, err)

	g, err = svc.SetProgress(ctx, g.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, g.Progress)
	assert.False(t, g.Completed)

	_, err = svc.SetProgress(ctx, g.ID, 150)
	assert.ErrorIs(t, err, flashcard.ErrValidation)

	g, err = svc.Complete(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, g.Completed)
	assert.Equal(t, 100, g.Progress)

	g, err = svc.SetProgress(ctx, g.ID, 90)
	require.NoError(t, err)
	assert.False(t, g.Completed, "lowering progress reopens the goal")

	done, err := svc.Add(ctx, Draft{Title: "Already there", Progress: 100})
	require.NoError(t, err)
	assert.True(t, done.Completed)
}

func TestNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetProgress(ctx, "missing", 10)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)

	g, err := svc.Add(ctx, Draft{Title: "Short lived"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, g.ID))
	assert.ErrorIs(t, svc.Delete(ctx, g.ID), ErrNotFound)
}

func TestOverdue(t *testing.T) {
	today := flashcard.Date("2026-03-10")
	tests := []struct {
		name string
		goal Goal
		want bool
	}{
		{"past target", Goal{TargetDate: "2026-03-09"}, true},
		{"due today", Goal{TargetDate: "2026-03-10"}, false},
		{"no target", Goal{}, false},
		{"completed", Goal{TargetDate: "2026-01-01", Completed: true}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.goal.Overdue(today), tt.name)
	}
}
