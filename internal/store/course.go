package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var courseColumns = []string{"id", "user_id", "name", "color", "icon", "goal", "created_at"}

type courseRepo struct {
	s *Store
}

func (r *courseRepo) ListCourses(ctx context.Context, userID string) ([]CourseRecord, error) {
	query, args := r.s.sql().
		Select(courseColumns...).
		From(r.s.sql().Table(tableCourses)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "name").
		Query()

	courses := []CourseRecord{}
	if err := r.s.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) GetCourse(ctx context.Context, userID, id string) (CourseRecord, error) {
	query, args := r.s.sql().
		Select(courseColumns...).
		From(r.s.sql().Table(tableCourses)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()

	var course CourseRecord
	if err := r.s.db.GetContext(ctx, &course, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CourseRecord{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		return CourseRecord{}, fmt.Errorf("get course %s: %w", id, err)
	}
	return course, nil
}

func (r *courseRepo) CreateCourse(ctx context.Context, userID string, course NewCourse) (CourseRecord, error) {
	rec := CourseRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      course.Name,
		Color:     course.Color,
		Icon:      course.Icon,
		Goal:      course.Goal,
		CreatedAt: r.s.now().UTC(),
	}

	query, args, err := r.s.sql().
		Insert(tableCourses).
		Columns(courseColumns...).
		Values(rec.ID, rec.UserID, rec.Name, rec.Color, rec.Icon, rec.Goal, rec.CreatedAt).
		QueryErr()
	if err != nil {
		return CourseRecord{}, fmt.Errorf("build insert course: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return CourseRecord{}, fmt.Errorf("insert course: %w", err)
	}
	return rec, nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, userID, id string) error {
	if _, err := r.GetCourse(ctx, userID, id); err != nil {
		return err
	}

	query, args := r.s.sql().
		Select(entsql.Count("*")).
		From(r.s.sql().Table(tableFlashcards)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("course_id", id))).
		Query()
	var n int
	if err := r.s.db.GetContext(ctx, &n, query, args...); err != nil {
		return fmt.Errorf("count course cards: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("course %s has %d cards: %w", id, n, ErrCourseInUse)
	}

	query, args = r.s.sql().
		Delete(tableCourses).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}
