package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.CourseRepo()

	created, err := repo.CreateCourse(ctx, "u1", NewCourse{Name: "Chemistry", Color: "#ff00aa", Icon: "⚗️", Goal: "Pass the exam"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetCourse(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", got.Name)
	assert.Equal(t, "Pass the exam", got.Goal)

	list, err := repo.ListCourses(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteCourse(ctx, "u1", created.ID))

	_, err = repo.GetCourse(ctx, "u1", created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteCourseInUse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	course := seedCourse(t, s, "u1", "Physics")

	_, err := s.CardRepo().CreateCard(ctx, "u1", NewCard{CourseID: course.ID, Question: "F?", Answer: "ma", Difficulty: "medium"})
	require.NoError(t, err)

	err = s.CourseRepo().DeleteCourse(ctx, "u1", course.ID)
	assert.True(t, errors.Is(err, ErrCourseInUse), "got %v", err)

	_, err = s.CourseRepo().GetCourse(ctx, "u1", course.ID)
	assert.NoError(t, err, "course must survive a refused delete")
}

func TestDeleteCourseNotFound(t *testing.T) {
	s := openTestStore(t)
	err := s.CourseRepo().DeleteCourse(context.Background(), "u1", "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}
