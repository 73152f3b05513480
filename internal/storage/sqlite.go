// Package storage keeps a SQLite ledger of finished headless runs.
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
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite connection of the run ledger.
type Store struct {
	db *sql.DB
}

// RunResult — итог одного прогона симуляции.
type RunResult struct {
	ID           int64
	Scenario     string
	Seed         int64
	Outcome      string // victory, game_over, timeout
	WavesCleared int
	Lives        int
	Gold         int
	Ticks        uint64
	GameTime     float64
	CreatedAt    time.Time
}

// ScenarioStats — сводка по сценарию.
type ScenarioStats struct {
	Scenario  string
	Runs      int
	Victories int
	BestWaves int
	AvgLives  float64
	LastRun   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// ":memory:" opens a private in-memory ledger.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// один писатель; для :memory: каждое соединение было бы отдельной базой
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			waves_cleared INTEGER NOT NULL DEFAULT 0,
			lives INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			game_time REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(scenario, seed);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r RunResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (scenario, seed, outcome, waves_cleared, lives, gold, ticks, game_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Seed, r.Outcome, r.WavesCleared, r.Lives, r.Gold, int64(r.Ticks), r.GameTime,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveRuns records a batch in one transaction.
func (s *Store) SaveRuns(runs []RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO runs (scenario, seed, outcome, waves_cleared, lives, gold, ticks, game_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range runs {
		if _, err := stmt.Exec(r.Scenario, r.Seed, r.Outcome, r.WavesCleared, r.Lives, r.Gold, int64(r.Ticks), r.GameTime); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save run seed %d: %w", r.Seed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit runs: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first. An empty scenario
// matches every scenario.
func (s *Store) RecentRuns(scenario string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, scenario, seed, outcome, waves_cleared, lives, gold, ticks, game_time, created_at
		 FROM runs
		 WHERE ? = '' OR scenario = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		var (
			r         RunResult
			ticks     int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Seed, &r.Outcome, &r.WavesCleared, &r.Lives, &r.Gold, &ticks, &r.GameTime, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunBySeed returns the latest run of a scenario with the given seed.
// Returns nil when there is none.
func (s *Store) RunBySeed(scenario string, seed int64) (*RunResult, error) {
	var (
		r         RunResult
		ticks     int64
		createdAt any
	)
	err := s.db.QueryRow(
		`SELECT id, scenario, seed, outcome, waves_cleared, lives, gold, ticks, game_time, created_at
		 FROM runs
		 WHERE scenario = ? AND seed = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		scenario, seed,
	).Scan(&r.ID, &r.Scenario, &r.Seed, &r.Outcome, &r.WavesCleared, &r.Lives, &r.Gold, &ticks, &r.GameTime, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Stats aggregates the ledger of one scenario.
func (s *Store) Stats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}
	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(waves_cleared), 0),
		        COALESCE(AVG(lives), 0),
		        MAX(created_at)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Runs, &stats.Victories, &stats.BestWaves, &stats.AvgLives, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)
	return stats, nil
}

// ClearRuns deletes the ledger of one scenario.
func (s *Store) ClearRuns(scenario string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
