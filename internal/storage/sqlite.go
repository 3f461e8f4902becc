// Package storage provides SQLite-based persistence for run history:
// terrain generations and finished play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tilequest/internal/sim"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// GenerationEntry is one recorded level build.
type GenerationEntry struct {
	ID        int64
	Seed      uint32
	Level     int
	Walls     int
	Movables  int
	CreatedAt time.Time
}

// SessionRecord summarizes a finished play session.
type SessionRecord struct {
	ID           int64
	Username     string // "local" for terminal play, the SSH user otherwise
	Seed         uint32
	Moves        uint64
	Pushes       uint64
	Blocked      uint64
	Levels       uint64
	DurationSecs int
	CreatedAt    time.Time
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
		CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			level INTEGER NOT NULL,
			walls INTEGER NOT NULL,
			movables INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_generations_seed ON generations(seed, level);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			pushes INTEGER NOT NULL DEFAULT 0,
			blocked INTEGER NOT NULL DEFAULT 0,
			levels INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_username ON sessions(username);
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

// RecordGeneration stores one level build.
// Returns the ID of the inserted record.
func (s *Store) RecordGeneration(seed uint32, level, walls, movables int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO generations (seed, level, walls, movables) VALUES (?, ?, ?, ?)",
		int64(seed), level, walls, movables,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveGeneration implements sim.GenerationRecorder.
func (s *Store) SaveGeneration(rec sim.GenerationRecord) error {
	_, err := s.RecordGeneration(rec.Seed, rec.Level, rec.Walls, rec.Movables)
	return err
}

// Ensure Store implements GenerationRecorder
var _ sim.GenerationRecorder = (*Store)(nil)

// RecentGenerations retrieves the most recent level builds, newest first.
func (s *Store) RecentGenerations(limit int) ([]GenerationEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, level, walls, movables, created_at
		 FROM generations
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var entries []GenerationEntry
	for rows.Next() {
		var e GenerationEntry
		var seed int64
		var createdAt any
		if err := rows.Scan(&e.ID, &seed, &e.Level, &e.Walls, &e.Movables, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint32(seed)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (username, seed, moves, pushes, blocked, levels, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Username,
		int64(rec.Seed),
		int64(rec.Moves),
		int64(rec.Pushes),
		int64(rec.Blocked),
		int64(rec.Levels),
		rec.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, username, seed, moves, pushes, blocked, levels, duration_secs, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var seed, moves, pushes, blocked, levels int64
		var createdAt any

		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&seed,
			&moves,
			&pushes,
			&blocked,
			&levels,
			&rec.DurationSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		rec.Seed = uint32(seed)
		rec.Moves = uint64(moves)
		rec.Pushes = uint64(pushes)
		rec.Blocked = uint64(blocked)
		rec.Levels = uint64(levels)
		rec.CreatedAt = parseTime(createdAt)
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// PlayerStats contains aggregated statistics for one user.
type PlayerStats struct {
	Username    string
	Sessions    int
	TotalMoves  int64
	TotalPushes int64
	LastPlayed  time.Time
}

// GetPlayerStats retrieves aggregated statistics for a user.
func (s *Store) GetPlayerStats(username string) (*PlayerStats, error) {
	stats := &PlayerStats{Username: username}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(moves), 0), COALESCE(SUM(pushes), 0)
		 FROM sessions WHERE username = ?`,
		username,
	).Scan(&stats.Sessions, &stats.TotalMoves, &stats.TotalPushes)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE username = ? ORDER BY id DESC LIMIT 1`,
		username,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime converts a DATETIME column, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
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
