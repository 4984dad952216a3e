// Package storage provides SQLite-based persistence for level progress:
// completion records, unlocks and pause snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/engine"
)

// DefaultPath is where the CLI keeps progress unless told otherwise.
const DefaultPath = "~/.psycho/progress.db"

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Completion represents a single finished run of a level.
type Completion struct {
	ID        int64
	LevelID   string
	Ticks     int
	Deaths    int
	CreatedAt time.Time
}

// LevelStats contains aggregated completion statistics for a level.
type LevelStats struct {
	LevelID      string
	Runs         int
	BestTicks    int
	FewestDeaths int
	LastPlayed   time.Time
}

// PauseRecord is a persisted pause snapshot plus the counters of the run
// it interrupted.
type PauseRecord struct {
	LevelID   string
	Ticks     int
	Deaths    int
	Positions engine.Snapshot
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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(level_id, ticks ASC, deaths ASC);

		CREATE TABLE IF NOT EXISTS unlocks (
			level_id TEXT PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS snapshots (
			level_id TEXT PRIMARY KEY,
			ticks INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS snapshot_coords (
			level_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			PRIMARY KEY (level_id, idx)
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

// SaveCompletion records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(levelID string, ticks, deaths int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (level_id, ticks, deaths) VALUES (?, ?, ?)",
		levelID, ticks, deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopCompletions retrieves the N fastest runs of a level.
// Ties on ticks go to fewer deaths, then the earlier run.
func (s *Store) TopCompletions(levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, ticks, deaths, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY ticks ASC, deaths ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var e Completion
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Ticks, &e.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestCompletion returns the fastest run of a level, or nil if it was never
// completed.
func (s *Store) BestCompletion(levelID string) (*Completion, error) {
	top, err := s.TopCompletions(levelID, 1)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, nil
	}
	return &top[0], nil
}

// ClearCompletions deletes all completion records for a level.
func (s *Store) ClearCompletions(levelID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// AllLevelStats retrieves statistics for every level that has been completed.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(ticks), MIN(deaths), MAX(created_at)
		 FROM completions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Runs, &ls.BestTicks, &ls.FewestDeaths, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Unlock marks a level as playable. Unlocking twice is a no-op.
func (s *Store) Unlock(levelID string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO unlocks (level_id) VALUES (?)", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock %s: %w", levelID, err)
	}
	return nil
}

// IsUnlocked reports whether a level was unlocked.
func (s *Store) IsUnlocked(levelID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM unlocks WHERE level_id = ?", levelID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query unlock: %w", err)
	}
	return n > 0, nil
}

// Unlocked returns the set of unlocked level IDs.
func (s *Store) Unlocked() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT level_id FROM unlocks")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ResetProgress removes every unlock and pause snapshot. Completion records
// are kept.
func (s *Store) ResetProgress() error {
	_, err := s.db.Exec("DELETE FROM unlocks; DELETE FROM snapshot_coords; DELETE FROM snapshots;")
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// SaveSnapshot stores the pause snapshot of a level, replacing any earlier
// one. Coordinates keep their order.
func (s *Store) SaveSnapshot(rec PauseRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM snapshot_coords WHERE level_id = ?", rec.LevelID); err != nil {
		return fmt.Errorf("storage: cannot replace snapshot: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO snapshots (level_id, ticks, deaths, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		rec.LevelID, rec.Ticks, rec.Deaths,
	); err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO snapshot_coords (level_id, idx, x, y) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range rec.Positions {
		if _, err := stmt.Exec(rec.LevelID, i, p.X, p.Y); err != nil {
			return fmt.Errorf("storage: cannot save snapshot entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the pause snapshot of a level, or nil if none exists.
func (s *Store) LoadSnapshot(levelID string) (*PauseRecord, error) {
	rec := PauseRecord{LevelID: levelID}
	var createdAt any
	err := s.db.QueryRow(
		"SELECT ticks, deaths, created_at FROM snapshots WHERE level_id = ?",
		levelID,
	).Scan(&rec.Ticks, &rec.Deaths, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		"SELECT x, y FROM snapshot_coords WHERE level_id = ? ORDER BY idx ASC",
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p core.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Positions = append(rec.Positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// ClearSnapshot deletes the pause snapshot of a level.
func (s *Store) ClearSnapshot(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM snapshot_coords WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear snapshot: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshots WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string DATETIME values.
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
