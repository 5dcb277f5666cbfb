// Package storage persists scores and run summaries in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// RunRecord summarizes one finished campaign run.
type RunRecord struct {
	ID           int64
	GameID       string
	Difficulty   string
	Score        int
	LevelReached int // 1-based index of the last stage entered
	Rescues      int
	Victory      bool
	DurationSecs int
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			level_reached INTEGER NOT NULL DEFAULT 1,
			rescues INTEGER NOT NULL DEFAULT 0,
			victory INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(game_id, difficulty);
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

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game, ordered by
// score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game, or 0 if no
// scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveRun records a finished campaign run alongside its score entry.
// Returns the ID of the inserted run record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	victory := 0
	if run.Victory {
		victory = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, difficulty, score, level_reached, rescues, victory, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Difficulty, run.Score, run.LevelReached,
		run.Rescues, victory, run.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs for the given game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, score, level_reached, rescues, victory, duration_secs, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var victory int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Difficulty, &r.Score,
			&r.LevelReached, &r.Rescues, &victory, &r.DurationSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Victory = victory != 0
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the highest-scoring run on a difficulty, or nil when
// none exists.
func (s *Store) BestRun(gameID, difficulty string) (*RunRecord, error) {
	var r RunRecord
	var victory int
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, difficulty, score, level_reached, rescues, victory, duration_secs, created_at
		 FROM runs
		 WHERE game_id = ? AND difficulty = ?
		 ORDER BY score DESC
		 LIMIT 1`,
		gameID, difficulty,
	).Scan(&r.ID, &r.GameID, &r.Difficulty, &r.Score,
		&r.LevelReached, &r.Rescues, &victory, &r.DurationSecs, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	r.Victory = victory != 0
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}

// parseTimestamp handles the driver returning DATETIME columns as either
// time.Time or string.
func parseTimestamp(v any) time.Time {
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
