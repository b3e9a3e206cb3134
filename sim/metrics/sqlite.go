package metrics

import (
	"database/sql"
	"fmt"

	// Registers the pure-Go "sqlite" driver.
	_ "github.com/glebarez/go-sqlite"
)

const createSamplesSQL = `CREATE TABLE IF NOT EXISTS samples (
	run_id       TEXT    NOT NULL,
	time         INTEGER NOT NULL,
	income       INTEGER NOT NULL,
	active_cases INTEGER NOT NULL,
	deaths       INTEGER NOT NULL,
	immune       INTEGER NOT NULL,
	susceptible  INTEGER NOT NULL,
	in_store     INTEGER NOT NULL,
	queued       INTEGER NOT NULL,
	PRIMARY KEY (run_id, time)
)`

const createRunsSQL = `CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	preset TEXT NOT NULL,
	seed   INTEGER NOT NULL
)`

const insertSampleSQL = `INSERT INTO samples
	(run_id, time, income, active_cases, deaths, immune, susceptible, in_store, queued)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteExporter appends runs to a SQLite database so several runs can be
// compared with plain SQL.
type SQLiteExporter struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. ":memory:" is accepted.
func OpenSQLite(path string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive across statements.
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{createRunsSQL, createSamplesSQL} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create sqlite schema: %w", err)
		}
	}
	return &SQLiteExporter{db: db}, nil
}

// DB exposes the underlying handle for queries.
func (e *SQLiteExporter) DB() *sql.DB {
	return e.db
}

// Export inserts the run and all of its records in one transaction.
func (e *SQLiteExporter) Export(run Run, t *Table) (err error) {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sqlite transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`INSERT INTO runs (run_id, preset, seed) VALUES (?, ?, ?)`, run.ID, run.Preset, run.Seed); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	stmt, err := tx.Prepare(insertSampleSQL)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range t.Records() {
		if _, err = stmt.Exec(run.ID, r.Time, r.Income, r.ActiveCases, r.Deaths, r.Immune, r.Susceptible, r.InStore, r.Queued); err != nil {
			return fmt.Errorf("insert sample t=%d: %w", r.Time, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit sqlite transaction: %w", err)
	}
	return nil
}

// Close closes the database.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}
