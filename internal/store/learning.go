package store

import (
	"context"
	"fmt"
	"strconv"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var learningColumns = []string{"id", "user_id", "course_id", "date", "content", "tags", "created_at", "updated_at"}

type learningRepo struct {
	s *Store
}

func (r *learningRepo) ListLearnings(ctx context.Context, userID string, f LearningFilter) ([]LearningRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if f.CourseID != "" {
		preds = append(preds, entsql.EQ("course_id", f.CourseID))
	}
	if f.Tag != "" {
		// Tags are a JSON array; match the quoted element.
		preds = append(preds, entsql.Contains("tags", strconv.Quote(f.Tag)))
	}

	sel := r.s.sql().
		Select(learningColumns...).
		From(r.s.sql().Table(tableLearnings)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("date"), entsql.Desc("created_at"))
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	out := []LearningRecord{}
	if err := r.s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list learnings: %w", err)
	}
	return out, nil
}

func (r *learningRepo) CreateLearning(ctx context.Context, userID string, in NewLearning) (LearningRecord, error) {
	now := r.s.now()
	rec := LearningRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  in.CourseID,
		Date:      in.Date,
		Content:   in.Content,
		Tags:      StringList(in.Tags),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if rec.Date == "" {
		rec.Date = now.Format(dateLayout)
	}

	query, args, err := r.s.sql().
		Insert(tableLearnings).
		Columns(learningColumns...).
		Values(rec.ID, rec.UserID, rec.CourseID, rec.Date, rec.Content, rec.Tags, rec.CreatedAt, rec.UpdatedAt).
		QueryErr()
	if err != nil {
		return LearningRecord{}, fmt.Errorf("build insert learning: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return LearningRecord{}, fmt.Errorf("insert learning: %w", err)
	}
	return rec, nil
}

func (r *learningRepo) DeleteLearning(ctx context.Context, userID, id string) error {
	query, args := r.s.sql().
		Delete(tableLearnings).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete learning %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete learning %s: %w", id, err)
	} else if n == 0 {
		return fmt.Errorf("learning %s: %w", id, ErrNotFound)
	}
	return nil
}
