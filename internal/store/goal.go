package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var goalColumns = []string{
	"id", "user_id", "course_id", "title", "description", "target_date",
	"completed", "progress", "created_at", "updated_at",
}

type goalRepo struct {
	s *Store
}

func (r *goalRepo) ListGoals(ctx context.Context, userID string) ([]GoalRecord, error) {
	query, args := r.s.sql().
		Select(goalColumns...).
		From(r.s.sql().Table(tableGoals)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "id").
		Query()

	goals := []GoalRecord{}
	if err := r.s.db.SelectContext(ctx, &goals, query, args...); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepo) GetGoal(ctx context.Context, userID, id string) (GoalRecord, error) {
	query, args := r.s.sql().
		Select(goalColumns...).
		From(r.s.sql().Table(tableGoals)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()

	var g GoalRecord
	if err := r.s.db.GetContext(ctx, &g, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GoalRecord{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return GoalRecord{}, fmt.Errorf("get goal %s: %w", id, err)
	}
	return g, nil
}

func (r *goalRepo) CreateGoal(ctx context.Context, userID string, in NewGoal) (GoalRecord, error) {
	now := r.s.now().UTC()
	rec := GoalRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		TargetDate:  in.TargetDate,
		Completed:   in.Progress >= 100,
		Progress:    in.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := r.s.sql().
		Insert(tableGoals).
		Columns(goalColumns...).
		Values(rec.ID, rec.UserID, rec.CourseID, rec.Title, rec.Description, rec.TargetDate,
			rec.Completed, rec.Progress, rec.CreatedAt, rec.UpdatedAt).
		QueryErr()
	if err != nil {
		return GoalRecord{}, fmt.Errorf("build insert goal: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return GoalRecord{}, fmt.Errorf("insert goal: %w", err)
	}
	return rec, nil
}

func (r *goalRepo) UpdateGoal(ctx context.Context, userID, id string, patch GoalPatch) (GoalRecord, error) {
	upd := r.s.sql().
		Update(tableGoals).
		Set("updated_at", r.s.now().UTC()).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id)))

	if patch.Title != nil {
		upd.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		upd.Set("description", *patch.Description)
	}
	if patch.TargetDate != nil {
		upd.Set("target_date", *patch.TargetDate)
	}
	if patch.Completed != nil {
		upd.Set("completed", *patch.Completed)
	}
	if patch.Progress != nil {
		upd.Set("progress", *patch.Progress)
	}

	query, args := upd.Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return GoalRecord{}, fmt.Errorf("update goal %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return GoalRecord{}, fmt.Errorf("update goal %s: %w", id, err)
	} else if n == 0 {
		return GoalRecord{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return r.GetGoal(ctx, userID, id)
}

func (r *goalRepo) DeleteGoal(ctx context.Context, userID, id string) error {
	query, args := r.s.sql().
		Delete(tableGoals).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	} else if n == 0 {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return nil
}
