package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.GoalRepo()
	course := seedCourse(t, s, "u1", "Anatomy")

	created, err := repo.CreateGoal(ctx, "u1", NewGoal{
		CourseID:   &course.ID,
		Title:      "Finish chapter 4",
		TargetDate: strPtr("2026-05-01"),
		Progress:   10,
	})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	got, err := repo.GetGoal(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Finish chapter 4", got.Title)
	require.NotNil(t, got.CourseID)
	assert.Equal(t, course.ID, *got.CourseID)
	require.NotNil(t, got.TargetDate)
	assert.Equal(t, "2026-05-01", *got.TargetDate)

	progress := 100
	done := true
	updated, err := repo.UpdateGoal(ctx, "u1", created.ID, GoalPatch{Progress: &progress, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Finish chapter 4", updated.Title, "untouched fields survive")

	list, err := repo.ListGoals(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	others, err := repo.ListGoals(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, repo.DeleteGoal(ctx, "u1", created.ID))
	_, err = repo.GetGoal(ctx, "u1", created.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestGoalNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := 5

	_, err := s.GoalRepo().UpdateGoal(ctx, "u1", "missing", GoalPatch{Progress: &p})
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	err = s.GoalRepo().DeleteGoal(ctx, "u1", "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestGoalOutlivesCourse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	course := seedCourse(t, s, "u1", "Statistics")

	g, err := s.GoalRepo().CreateGoal(ctx, "u1", NewGoal{CourseID: &course.ID, Title: "Read the syllabus"})
	require.NoError(t, err)
	require.NoError(t, s.CourseRepo().DeleteCourse(ctx, "u1", course.ID))

	got, err := s.GoalRepo().GetGoal(ctx, "u1", g.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CourseID)
}
