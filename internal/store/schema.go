package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	"github.com/jmoiron/sqlx"
)

// Table names.
const (
	tableCourses       = "courses"
	tableFlashcards    = "flashcards"
	tableProfiles      = "user_profiles"
	tableCompanions    = "companions"
	tableStats         = "user_stats"
	tableRewardEvents  = "reward_events"
	tableSessionEvents = "session_events"
	tableSequence      = "global_sequence"
	tableStudySessions = "study_sessions"
	tableGoals         = "goals"
	tableLearnings     = "daily_learnings"
)

// schema is written once for both dialects; the placeholders in braces are
// replaced with the dialect's column types.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		icon       TEXT NOT NULL DEFAULT '',
		goal       TEXT NOT NULL DEFAULT '',
		created_at {ts} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_user ON courses (user_id)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		course_id     TEXT NOT NULL REFERENCES courses (id),
		question      TEXT NOT NULL,
		answer        TEXT NOT NULL,
		difficulty    TEXT NOT NULL,
		next_review   TEXT NOT NULL,
		review_count  INTEGER NOT NULL DEFAULT 0,
		last_reviewed TEXT,
		created_at    {ts} NOT NULL,
		updated_at    {ts} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_user_due ON flashcards (user_id, next_review)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id      TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		gender       TEXT NOT NULL,
		created_at   {ts} NOT NULL,
		updated_at   {ts} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS companions (
		user_id          TEXT PRIMARY KEY,
		funds            INTEGER NOT NULL DEFAULT 0,
		bus_tickets      INTEGER NOT NULL DEFAULT 0,
		mood             TEXT NOT NULL DEFAULT '',
		last_interaction {ts},
		outfits          TEXT NOT NULL DEFAULT '[]',
		current_outfit   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS user_stats (
		user_id         TEXT PRIMARY KEY,
		current_streak  INTEGER NOT NULL DEFAULT 0,
		longest_streak  INTEGER NOT NULL DEFAULT 0,
		last_study_date TEXT,
		total_reviews   INTEGER NOT NULL DEFAULT 0,
		total_sessions  INTEGER NOT NULL DEFAULT 0,
		study_minutes   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reward_events (
		id         {serial},
		sequence   BIGINT NOT NULL,
		timestamp  {ts} NOT NULL,
		user_id    TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		award_type TEXT NOT NULL,
		amount     INTEGER NOT NULL,
		reason     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reward_events_user ON reward_events (user_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id             {serial},
		sequence       BIGINT NOT NULL,
		timestamp      {ts} NOT NULL,
		user_id        TEXT NOT NULL,
		session_id     TEXT NOT NULL,
		action         TEXT NOT NULL,
		cards_due      INTEGER NOT NULL DEFAULT 0,
		cards_reviewed INTEGER NOT NULL DEFAULT 0,
		duration_secs  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_user ON session_events (user_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS study_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		course_id        TEXT NOT NULL REFERENCES courses (id) ON DELETE CASCADE,
		date             TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		notes            TEXT NOT NULL DEFAULT '',
		reflection       TEXT NOT NULL DEFAULT '',
		mood             INTEGER NOT NULL,
		focus_rating     INTEGER NOT NULL,
		created_at       {ts} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_user_date ON study_sessions (user_id, date)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		course_id   TEXT REFERENCES courses (id) ON DELETE SET NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		target_date TEXT,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		progress    INTEGER NOT NULL DEFAULT 0,
		created_at  {ts} NOT NULL,
		updated_at  {ts} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals (user_id)`,
	`CREATE TABLE IF NOT EXISTS daily_learnings (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		course_id  TEXT REFERENCES courses (id) ON DELETE SET NULL,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		tags       TEXT NOT NULL DEFAULT '[]',
		created_at {ts} NOT NULL,
		updated_at {ts} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_learnings_user_date ON daily_learnings (user_id, date)`,
}

// addedColumns were introduced after their table first shipped. CREATE
// TABLE IF NOT EXISTS leaves older tables alone, so they are added here.
var addedColumns = []struct {
	table, column, ddl string
}{
	{tableCompanions, "outfits", "TEXT NOT NULL DEFAULT '[]'"},
	{tableCompanions, "current_outfit", "TEXT NOT NULL DEFAULT ''"},
	{tableStats, "study_minutes", "INTEGER NOT NULL DEFAULT 0"},
}

func columnTypes(d string) *strings.Replacer {
	if d == dialect.Postgres {
		return strings.NewReplacer(
			"{ts}", "TIMESTAMPTZ",
			"{serial}", "BIGSERIAL PRIMARY KEY",
		)
	}
	return strings.NewReplacer(
		"{ts}", "TIMESTAMP",
		"{serial}", "INTEGER PRIMARY KEY AUTOINCREMENT",
	)
}

// migrate creates every table and index that does not exist yet.
func migrate(ctx context.Context, db *sqlx.DB, d string) error {
	r := columnTypes(d)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	for _, c := range addedColumns {
		if err := ensureColumn(ctx, db, d, c.table, c.column, c.ddl); err != nil {
			return err
		}
	}
	return nil
}

func ensureColumn(ctx context.Context, db *sqlx.DB, d, table, column, ddl string) error {
	q := `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	if d == dialect.Postgres {
		q = `SELECT COUNT(*) FROM information_schema.columns WHERE table_name = $1 AND column_name = $2`
	}
	var n int
	if err := db.GetContext(ctx, &n, q, table, column); err != nil {
		return fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddl)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
