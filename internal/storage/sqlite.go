// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The store is a results ledger: a run is written once when it ends and is
// never loaded back into a simulation.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run results.
type Store struct {
	db *sql.DB
}

// Run is one finished simulation.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Width     int
	Height    int
	Apples    int
	Walls     int
	Seed      int64
	Ticks     int
	CreatedAt time.Time
	Results   []Result
}

// Result is the outcome of one player in a run.
type Result struct {
	ID             int64
	RunID          string
	Player         string
	Strategy       string // Registry ID, or "human"
	Distance       string
	Score          int
	Decisions      int
	MeanDecisionUS float64 // Mean strategy time per decision, microseconds
	CreatedAt      time.Time
}

// StrategyStats contains aggregated results of one strategy.
type StrategyStats struct {
	Strategy       string
	Results        int
	BestScore      int
	AvgScore       float64
	TotalScore     int64
	MeanDecisionUS float64
	LastPlayed     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			apples INTEGER NOT NULL,
			walls INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			player TEXT NOT NULL,
			strategy TEXT NOT NULL,
			distance TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			decisions INTEGER NOT NULL DEFAULT 0,
			mean_decision_us REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(strategy, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its results in one transaction.
// Returns the run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, width, height, apples, walls, seed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Width, run.Height, run.Apples, run.Walls, run.Seed, run.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for _, r := range run.Results {
		_, err := tx.Exec(
			`INSERT INTO results (run_id, player, strategy, distance, score, decisions, mean_decision_us)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, r.Player, r.Strategy, r.Distance, r.Score, r.Decisions, r.MeanDecisionUS,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save result for %s: %w", r.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// RunByID retrieves a run with its results. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	var run Run
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, width, height, apples, walls, seed, ticks, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Width, &run.Height, &run.Apples, &run.Walls, &run.Seed, &run.Ticks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT id, run_id, player, strategy, distance, score, decisions, mean_decision_us, created_at
		 FROM results
		 WHERE run_id = ?
		 ORDER BY score DESC, player`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	run.Results, err = scanResults(rows)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// TopResults retrieves the top N results for a strategy, or across all
// strategies when strategy is empty. Results are ordered by score descending.
func (s *Store) TopResults(strategy string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, strategy, distance, score, decisions, mean_decision_us, created_at
		 FROM results
		 WHERE ? = '' OR strategy = ?
		 ORDER BY score DESC, id
		 LIMIT ?`,
		strategy, strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// BestScore returns the highest score recorded for a strategy.
// Returns 0 if no results exist.
func (s *Store) BestScore(strategy string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE strategy = ?",
		strategy,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// StrategyStats retrieves aggregated statistics for every strategy that has
// results, keyed by strategy ID.
func (s *Store) StrategyStats() (map[string]*StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy, COUNT(*), MAX(score), AVG(score), SUM(score), AVG(mean_decision_us), MAX(created_at)
		 FROM results
		 GROUP BY strategy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StrategyStats)
	for rows.Next() {
		var st StrategyStats
		var lastPlayed any
		if err := rows.Scan(&st.Strategy, &st.Results, &st.BestScore, &st.AvgScore,
			&st.TotalScore, &st.MeanDecisionUS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Strategy] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes all runs and results.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Player, &r.Strategy, &r.Distance,
			&r.Score, &r.Decisions, &r.MeanDecisionUS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
