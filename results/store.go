// Package results persists completed estimates to a local SQLite journal so
// past runs can be compared from the shell.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/montelab/montelab/montecarlo"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario    TEXT NOT NULL,
	params      TEXT NOT NULL DEFAULT '',
	seed        INTEGER NOT NULL,
	iterations  INTEGER NOT NULL,
	mean        REAL NOT NULL,
	stderr      REAL NOT NULL,
	elapsed_ms  INTEGER NOT NULL,
	created_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_scenario ON runs (scenario, created_ms);
`

// Run is one journaled estimate.
type Run struct {
	ID            int64
	Scenario      string
	Params        string
	Seed          uint64
	Iterations    uint64
	Mean          float64
	StandardError float64
	Elapsed       time.Duration
	CreatedAt     time.Time
}

// Store wraps the journal database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("results store path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping results db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create results schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one completed estimate to the journal.
func (s *Store) Record(ctx context.Context, scenario, params string, seed uint64, res *montecarlo.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (scenario, params, seed, iterations, mean, stderr, elapsed_ms, created_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scenario, params, int64(seed), int64(res.Iterations),
		res.Mean, res.StandardError,
		res.Elapsed.Milliseconds(), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, params, seed, iterations, mean, stderr, elapsed_ms, created_ms
		FROM runs ORDER BY created_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seed, elapsedMs, createdMs int64
		var iterations int64
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Params, &seed, &iterations,
			&r.Mean, &r.StandardError, &elapsedMs, &createdMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Seed = uint64(seed)
		r.Iterations = uint64(iterations)
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdMs).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
