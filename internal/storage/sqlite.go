// Package storage provides SQLite-based persistence for run history and the
// high score. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.escape/escape.db"

// highScoreKey is the row the reconciled high score lives in.
const highScoreKey = "escape"

// Store manages the SQLite database connection for run and score persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished chase.
type Run struct {
	ID        int64
	RunID     string
	Score     int
	Duration  time.Duration // chase time, excluding the countdown
	Seed      int64
	Ticks     uint64
	CreatedAt time.Time
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

	// One writer at a time; the web server shares a single store between sessions.
	db.SetMaxOpenConns(1)

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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

		CREATE TABLE IF NOT EXISTS high_scores (
			key TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveRun records a finished run. An empty RunID gets a fresh UUID.
// Returns the row ID and the run ID used.
func (s *Store) SaveRun(run Run) (int64, string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (run_id, score, duration_ms, seed, ticks) VALUES (?, ?, ?, ?, ?)",
		run.RunID, run.Score, run.Duration.Milliseconds(), run.Seed, int64(run.Ticks),
	)
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, run.RunID, nil
}

const runColumns = "id, run_id, score, duration_ms, seed, ticks, created_at"

// TopRuns retrieves the best N runs, highest score first.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its run ID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			ticks      int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Score, &durationMS, &r.Seed, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the reconciled high score, or 0 if none is stored.
func (s *Store) HighScore() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM high_scores WHERE key = ?", highScoreKey).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SetHighScore stores score if it beats the stored value. It never lowers
// the high score and reports whether the row changed.
func (s *Store) SetHighScore(score int) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO high_scores (key, score) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > high_scores.score`,
		highScoreKey, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot set high score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// ReadHighScore implements sim.HighScoreStore.
func (s *Store) ReadHighScore() (int, error) {
	return s.HighScore()
}

// WriteHighScore implements sim.HighScoreStore synchronously.
func (s *Store) WriteHighScore(score int) error {
	_, err := s.SetHighScore(score)
	return err
}

// ClearScores deletes all run history and the high score.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM runs; DELETE FROM high_scores;"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated run statistics.
type Stats struct {
	Runs          int
	HighScore     int
	BestRun       int
	AvgScore      float64
	TotalDistance int64
	TotalTime     time.Duration
	LastPlayed    time.Time
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestRun, &stats.AvgScore, &stats.TotalDistance, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTimestamp(lastPlayed)

	if stats.HighScore, err = s.HighScore(); err != nil {
		return nil, err
	}
	return stats, nil
}

// parseTimestamp handles both time.Time and string datetime values.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
