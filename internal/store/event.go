package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table auto-increment ids can't order a reward
// against the session it was earned in; the shared counter can.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu      sync.Mutex
	db      *sqlx.DB
	dialect string
}

// newSequenceCounter creates a counter and ensures the tracking row exists.
func newSequenceCounter(ctx context.Context, db *sqlx.DB, d string) (*sequenceCounter, error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	query, args, err := entsql.Dialect(d).
		Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		QueryErr()
	if err != nil {
		return nil, fmt.Errorf("build seed sequence: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db, dialect: d}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := entsql.Dialect(sc.dialect).
		Update(tableSequence).
		Set("next_val", entsql.Expr("next_val + 1")).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()

	var next int64
	if err := sc.db.QueryRowxContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}

type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args, err := r.s.sql().
		Insert(tableRewardEvents).
		Columns("sequence", "timestamp", "user_id", "session_id", "award_type", "amount", "reason").
		Values(seqNum, r.s.now().UTC(), data.UserID, data.SessionID, data.AwardType, data.Amount, data.Reason).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build reward event: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args, err := r.s.sql().
		Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "user_id", "session_id", "action", "cards_due", "cards_reviewed", "duration_secs").
		Values(seqNum, r.s.now().UTC(), data.UserID, data.SessionID, data.Action, data.CardsDue, data.CardsReviewed, data.DurationSecs).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build session event: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, userID string, opts QueryOpts) ([]RewardEventRecord, error) {
	sel := r.s.sql().
		Select("sequence", "timestamp", "user_id", "session_id", "award_type", "amount", "reason").
		From(r.s.sql().Table(tableRewardEvents)).
		Where(entsql.And(append(opts.predicates(), entsql.EQ("user_id", userID))...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	records := []RewardEventRecord{}
	if err := r.s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) RewardTotals(ctx context.Context, userID string) (map[string]int, error) {
	query, args := r.s.sql().
		Select("award_type", entsql.As(entsql.Sum("amount"), "total")).
		From(r.s.sql().Table(tableRewardEvents)).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("award_type").
		Query()

	var rows []struct {
		AwardType string `db:"award_type"`
		Total     int    `db:"total"`
	}
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query reward totals: %w", err)
	}

	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.AwardType] = row.Total
	}
	return totals, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, userID string, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := r.s.sql().
		Select("sequence", "timestamp", "session_id", "cards_due", "cards_reviewed", "duration_secs").
		From(r.s.sql().Table(tableSessionEvents)).
		Where(entsql.And(append(opts.predicates(), entsql.EQ("user_id", userID), entsql.EQ("action", "end"))...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	records := []SessionSummaryRecord{}
	if err := r.s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

// predicates translates the sequence and time window into WHERE terms.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE("timestamp", o.From.UTC()))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LTE("timestamp", o.To.UTC()))
	}
	return ps
}
