package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var studySessionColumns = []string{
	"id", "user_id", "course_id", "date", "duration_minutes",
	"notes", "reflection", "mood", "focus_rating", "created_at",
}

type studySessionRepo struct {
	s *Store
}

func (r *studySessionRepo) CreateStudySession(ctx context.Context, userID string, in NewStudySession) (StudySessionRecord, error) {
	now := r.s.now()
	rec := StudySessionRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		CourseID:        in.CourseID,
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
		Reflection:      in.Reflection,
		Mood:            in.Mood,
		FocusRating:     in.FocusRating,
		CreatedAt:       now.UTC(),
	}
	if rec.Date == "" {
		rec.Date = now.Format(dateLayout)
	}

	query, args, err := r.s.sql().
		Insert(tableStudySessions).
		Columns(studySessionColumns...).
		Values(rec.ID, rec.UserID, rec.CourseID, rec.Date, rec.DurationMinutes,
			rec.Notes, rec.Reflection, rec.Mood, rec.FocusRating, rec.CreatedAt).
		QueryErr()
	if err != nil {
		return StudySessionRecord{}, fmt.Errorf("build insert study session: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return StudySessionRecord{}, fmt.Errorf("insert study session: %w", err)
	}
	return rec, nil
}

func (r *studySessionRepo) ListStudySessions(ctx context.Context, userID string, f StudySessionFilter) ([]StudySessionRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if f.CourseID != "" {
		preds = append(preds, entsql.EQ("course_id", f.CourseID))
	}
	if f.From != "" {
		preds = append(preds, entsql.GTE("date", f.From))
	}

	sel := r.s.sql().
		Select(studySessionColumns...).
		From(r.s.sql().Table(tableStudySessions)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("date"), entsql.Desc("created_at"))
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	out := []StudySessionRecord{}
	if err := r.s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	return out, nil
}

func (r *studySessionRepo) StudyTotalsByCourse(ctx context.Context, userID string) (map[string]StudyTotals, error) {
	query, args := r.s.sql().
		Select("course_id",
			entsql.As(entsql.Count("*"), "sessions"),
			entsql.As(entsql.Sum("duration_minutes"), "minutes")).
		From(r.s.sql().Table(tableStudySessions)).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("course_id").
		Query()

	var rows []struct {
		CourseID string `db:"course_id"`
		StudyTotals
	}
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("study totals by course: %w", err)
	}
	totals := make(map[string]StudyTotals, len(rows))
	for _, row := range rows {
		totals[row.CourseID] = row.StudyTotals
	}
	return totals, nil
}

func (r *studySessionRepo) StudyTotalsSince(ctx context.Context, userID, from string) (StudyTotals, error) {
	query, args := r.s.sql().
		Select(
			entsql.As(entsql.Count("*"), "sessions"),
			entsql.As(entsql.Sum("duration_minutes"), "minutes")).
		From(r.s.sql().Table(tableStudySessions)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.GTE("date", from))).
		Query()

	// SUM over no rows is NULL.
	var row struct {
		Sessions int  `db:"sessions"`
		Minutes  *int `db:"minutes"`
	}
	if err := r.s.db.GetContext(ctx, &row, query, args...); err != nil {
		return StudyTotals{}, fmt.Errorf("study totals since %s: %w", from, err)
	}
	t := StudyTotals{Sessions: row.Sessions}
	if row.Minutes != nil {
		t.Minutes = *row.Minutes
	}
	return t, nil
}
