package notes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

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
	st, err := store.Open(store.DriverSQLite, "file:notes_"+name+"?mode=memory&cache=shared", store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	courses := course.NewService("u1", st.CourseRepo(), nil, zap.NewNop())
	c, err := courses.Create(context.Background(), course.Draft{Name: "Pharmacology"})
	require.NoError(t, err)
	svc := NewService("u1", st.LearningRepo(), courses, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 4, 2, 21, 0, 0, 0, time.UTC) }
	return svc, c
}

func TestAddAndFilter(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	n, err := svc.Add(ctx, Draft{CourseID: c.ID, Content: " Statins lower LDL ", Tags: []string{"#Cardio", "drugs", "cardio", " "}})
	require.NoError(t, err)
	assert.Equal(t, flashcard.Date("2026-04-02"), n.Date)
	assert.Equal(t, "Statins lower LDL", n.Content)
	assert.Equal(t, []string{"cardio", "drugs"}, n.Tags)

	_, err = svc.Add(ctx, Draft{Date: "2026-04-01", Content: "Loop diuretics act on the loop of Henle", Tags: []string{"renal", "drugs"}})
	require.NoError(t, err)

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, n.ID, all[0].ID)

	drugs, err := svc.List(ctx, Filter{Tag: "DRUGS"})
	require.NoError(t, err)
	assert.Len(t, drugs, 2)

	renal, err := svc.List(ctx, Filter{Tag: "renal"})
	require.NoError(t, err)
	require.Len(t, renal, 1)
	assert.Empty(t, renal[0].CourseID)

	byCourse, err := svc.List(ctx, Filter{CourseID: c.ID})
	require.NoError(t, err)
	assert.Len(t, byCourse, 1)
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"empty content", Draft{}, "content"},
		{"bad date", Draft{Date: "yesterday", Content: "x"}, "date"},
		{"long tag", Draft{Content: "x", Tags: []string{strings.Repeat("a", 31)}}, "tags[0]"},
		{"unknown course", Draft{Content: "x", CourseID: "missing"}, "courseID"},
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

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.Add(ctx, Draft{Content: "Temporary"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), ErrNotFound)
}

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{"A", " b ", "#a", ""}))
}
