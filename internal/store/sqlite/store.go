// Package sqlite persists run records and aggregate statistics so results
// can be queried after the experiment directory tree is discarded.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kearns/gridbench/internal/results"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	grid TEXT NOT NULL,
	candidate TEXT NOT NULL,
	iteration INTEGER NOT NULL,
	success INTEGER NOT NULL,
	action_time REAL NOT NULL DEFAULT 0,
	token_usage REAL NOT NULL DEFAULT 0,
	api_queries INTEGER NOT NULL DEFAULT 0,
	recorded_at INTEGER NOT NULL,
	PRIMARY KEY(grid, candidate, iteration)
);

CREATE TABLE IF NOT EXISTS aggregates (
	grid TEXT NOT NULL,
	candidate TEXT NOT NULL,
	success_rate REAL NOT NULL,
	avg_action_time REAL NOT NULL,
	avg_token_usage REAL NOT NULL,
	avg_api_queries REAL NOT NULL,
	total_experiments INTEGER NOT NULL,
	recorded_at INTEGER NOT NULL,
	PRIMARY KEY(grid, candidate)
);
`

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set sqlite pragma %q: %w", stmt, err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// SaveRuns upserts run records. Re-analyzing the same tree overwrites the
// previous rows rather than duplicating them.
func (s *Store) SaveRuns(ctx context.Context, records []results.RunRecord) error {
	now := time.Now().UTC().Unix()
	for _, rec := range records {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO runs(
				grid, candidate, iteration, success, action_time, token_usage, api_queries, recorded_at
			) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Grid, rec.Candidate, rec.Iteration, boolToInt(rec.Success),
			rec.ActionTime, rec.TokenUsage, rec.APIQueries, now,
		)
		if err != nil {
			return fmt.Errorf("save run %s/%s/%d: %w", rec.Grid, rec.Candidate, rec.Iteration, err)
		}
	}
	return nil
}

// SaveSummary upserts one aggregate row per grid/candidate pair.
func (s *Store) SaveSummary(ctx context.Context, summary results.Summary) error {
	now := time.Now().UTC().Unix()
	for grid, byCandidate := range summary {
		for candidate, stats := range byCandidate {
			_, err := s.db.ExecContext(
				ctx,
				`INSERT OR REPLACE INTO aggregates(
					grid, candidate, success_rate, avg_action_time,
					avg_token_usage, avg_api_queries, total_experiments, recorded_at
				) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
				grid, candidate, stats.SuccessRate, stats.AvgActionTime,
				stats.AvgTokenUsage, stats.AvgAPIQueries, stats.TotalExperiments, now,
			)
			if err != nil {
				return fmt.Errorf("save aggregate %s/%s: %w", grid, candidate, err)
			}
		}
	}
	return nil
}

// GetStats reads back the aggregate row for one grid/candidate pair.
func (s *Store) GetStats(ctx context.Context, grid, candidate string) (results.Stats, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT success_rate, avg_action_time, avg_token_usage, avg_api_queries, total_experiments
		FROM aggregates WHERE grid = ? AND candidate = ?`,
		grid, candidate,
	)
	var stats results.Stats
	if err := row.Scan(
		&stats.SuccessRate, &stats.AvgActionTime, &stats.AvgTokenUsage,
		&stats.AvgAPIQueries, &stats.TotalExperiments,
	); err != nil {
		return results.Stats{}, fmt.Errorf("get aggregate %s/%s: %w", grid, candidate, err)
	}
	return stats, nil
}

// ListRuns returns the stored run records for one grid/candidate pair in
// iteration order.
func (s *Store) ListRuns(ctx context.Context, grid, candidate string) ([]results.RunRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT grid, candidate, iteration, success, action_time, token_usage, api_queries
		FROM runs WHERE grid = ? AND candidate = ? ORDER BY iteration`,
		grid, candidate,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs %s/%s: %w", grid, candidate, err)
	}
	defer rows.Close()

	var records []results.RunRecord
	for rows.Next() {
		var rec results.RunRecord
		var success int
		if err := rows.Scan(
			&rec.Grid, &rec.Candidate, &rec.Iteration, &success,
			&rec.ActionTime, &rec.TokenUsage, &rec.APIQueries,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.Success = success != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
