package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var (
	companionColumns = []string{"user_id", "funds", "bus_tickets", "mood", "last_interaction", "outfits", "current_outfit"}
	statsColumns     = []string{"user_id", "current_streak", "longest_streak", "last_study_date", "total_reviews", "total_sessions", "study_minutes"}
)

type profileRepo struct {
	s *Store
}

func (r *profileRepo) GetProfile(ctx context.Context, userID string) (ProfileRecord, error) {
	query, args := r.s.sql().
		Select("user_id", "display_name", "gender", "created_at", "updated_at").
		From(r.s.sql().Table(tableProfiles)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var p ProfileRecord
	if err := r.s.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProfileRecord{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		return ProfileRecord{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

// SaveProfile inserts or replaces the profile. CreatedAt is kept on update.
func (r *profileRepo) SaveProfile(ctx context.Context, p ProfileRecord) (ProfileRecord, error) {
	now := r.s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query, args, err := r.s.sql().
		Insert(tableProfiles).
		Columns("user_id", "display_name", "gender", "created_at", "updated_at").
		Values(p.UserID, p.DisplayName, p.Gender, p.CreatedAt, p.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("display_name")
				u.SetExcluded("gender")
				u.SetExcluded("updated_at")
			}),
		).
		QueryErr()
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("build save profile: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return ProfileRecord{}, fmt.Errorf("save profile %s: %w", p.UserID, err)
	}
	return r.GetProfile(ctx, p.UserID)
}

type companionRepo struct {
	s *Store
}

func (r *companionRepo) GetCompanion(ctx context.Context, userID string) (CompanionRecord, error) {
	query, args := r.s.sql().
		Select(companionColumns...).
		From(r.s.sql().Table(tableCompanions)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var c CompanionRecord
	if err := r.s.db.GetContext(ctx, &c, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CompanionRecord{}, fmt.Errorf("companion %s: %w", userID, ErrNotFound)
		}
		return CompanionRecord{}, fmt.Errorf("get companion %s: %w", userID, err)
	}
	return c, nil
}

func (r *companionRepo) SaveCompanion(ctx context.Context, c CompanionRecord) error {
	query, args, err := r.s.sql().
		Insert(tableCompanions).
		Columns(companionColumns...).
		Values(c.UserID, c.Funds, c.BusTickets, c.Mood, c.LastInteraction, c.Outfits, c.CurrentOutfit).
		OnConflict(entsql.ConflictColumns("user_id"), entsql.ResolveWithNewValues()).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build save companion: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save companion %s: %w", c.UserID, err)
	}
	return nil
}

type statsRepo struct {
	s *Store
}

func (r *statsRepo) GetStats(ctx context.Context, userID string) (StatsRecord, error) {
	query, args := r.s.sql().
		Select(statsColumns...).
		From(r.s.sql().Table(tableStats)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var st StatsRecord
	if err := r.s.db.GetContext(ctx, &st, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StatsRecord{}, fmt.Errorf("stats %s: %w", userID, ErrNotFound)
		}
		return StatsRecord{}, fmt.Errorf("get stats %s: %w", userID, err)
	}
	return st, nil
}

func (r *statsRepo) SaveStats(ctx context.Context, st StatsRecord) error {
	query, args, err := r.s.sql().
		Insert(tableStats).
		Columns(statsColumns...).
		Values(st.UserID, st.CurrentStreak, st.LongestStreak, st.LastStudyDate, st.TotalReviews, st.TotalSessions, st.StudyMinutes).
		OnConflict(entsql.ConflictColumns("user_id"), entsql.ResolveWithNewValues()).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build save stats: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save stats %s: %w", st.UserID, err)
	}
	return nil
}
