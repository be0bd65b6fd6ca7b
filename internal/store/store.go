package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	// PostgreSQL driver for hosted deployments.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dateLayout is the text format of calendar date columns.
const dateLayout = time.DateOnly

// Options tunes the connection pool. Zero values keep driver defaults.
type Options struct {
	MaxOpenConns int
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sqlx.DB
	dialect string
	seq     *sequenceCounter
	now     func() time.Time
}

// Open connects to the database named by driver and dsn, applies
// connection settings and creates the schema if it does not exist.
func Open(driver, dsn string, opts Options) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// Pragmas are per connection, so SQLite is pinned to one.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	} else if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, db, d)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dialect: d, seq: seq, now: time.Now}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect returns the ent dialect name the queries are built for.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CardRepo returns a CardRepo backed by this store.
func (s *Store) CardRepo() CardRepo {
	return &cardRepo{s: s}
}

// CourseRepo returns a CourseRepo backed by this store.
func (s *Store) CourseRepo() CourseRepo {
	return &courseRepo{s: s}
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{s: s}
}

// CompanionRepo returns a CompanionRepo backed by this store.
func (s *Store) CompanionRepo() CompanionRepo {
	return &companionRepo{s: s}
}

// StatsRepo returns a StatsRepo backed by this store.
func (s *Store) StatsRepo() StatsRepo {
	return &statsRepo{s: s}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{s: s}
}

// StudySessionRepo returns a StudySessionRepo backed by this store.
func (s *Store) StudySessionRepo() StudySessionRepo {
	return &studySessionRepo{s: s}
}

// GoalRepo returns a GoalRepo backed by this store.
func (s *Store) GoalRepo() GoalRepo {
	return &goalRepo{s: s}
}

// LearningRepo returns a LearningRepo backed by this store.
func (s *Store) LearningRepo() LearningRepo {
	return &learningRepo{s: s}
}

func (s *Store) sql() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return dialect.SQLite, nil
	case DriverPostgres:
		return dialect.Postgres, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DataDir resolves the application data directory in priority order:
// 1. $XDG_DATA_HOME/koko
// 2. ~/.local/share/koko
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "koko"), nil
}

// DefaultDBPath resolves the SQLite database file path in priority order:
// 1. KOKO_DB environment variable
// 2. <DataDir>/koko.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KOKO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "koko.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
