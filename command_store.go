package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// FrequencyEntry is one row of an aggregated frequency table
type FrequencyEntry struct {
	Command string
	Count   int
}

// StoreStats holds summary statistics about the stored history
type StoreStats struct {
	TotalRecords         int
	DistinctFullCommands int
	DistinctBaseCommands int
}

// CommandStore is an append-only log of parsed commands backed by SQLite.
// The handle is passed explicitly to everything that needs it; there is no
// package-level connection.
type CommandStore struct {
	dbPath        string
	db            *sql.DB
	mutex         sync.RWMutex
	isInitialized bool
}

// NewCommandStore creates a new command store for the given database path
func NewCommandStore(dbPath string) *CommandStore {
	return &CommandStore{
		dbPath: dbPath,
	}
}

// Initialize opens the database and creates the schema if needed
func (cs *CommandStore) Initialize() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	// Ensure the database directory exists
	dir := filepath.Dir(cs.dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %v", err)
	}

	// Open the SQLite database
	db, err := sql.Open("sqlite3", cs.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}
	cs.db = db

	// Initialize the database schema if needed
	if err := cs.initializeSchema(); err != nil {
		cs.db.Close()
		return fmt.Errorf("failed to initialize database schema: %v", err)
	}

	cs.isInitialized = true
	return nil
}

// initializeSchema creates the necessary tables and indexes in the database
func (cs *CommandStore) initializeSchema() error {
	_, err := cs.db.Exec(`
		CREATE TABLE IF NOT EXISTS commands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_command TEXT NOT NULL,
			base_command TEXT NOT NULL,
			arguments TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	_, err = cs.db.Exec(`CREATE INDEX IF NOT EXISTS idx_full_command ON commands(full_command)`)
	if err != nil {
		return err
	}

	_, err = cs.db.Exec(`CREATE INDEX IF NOT EXISTS idx_base_command ON commands(base_command)`)
	return err
}

// Close closes the underlying database
func (cs *CommandStore) Close() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if cs.db == nil {
		return nil
	}

	err := cs.db.Close()
	cs.db = nil
	cs.isInitialized = false
	return err
}

// Append stores a single command record
func (cs *CommandStore) Append(record CommandRecord) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isInitialized {
		return fmt.Errorf("command store is not initialized")
	}

	_, err := cs.db.Exec(`
		INSERT INTO commands (full_command, base_command, arguments)
		VALUES (?, ?, ?)
	`, record.FullCommand, record.BaseCommand, record.Arguments)
	if err != nil {
		return fmt.Errorf("failed to insert command: %v", err)
	}

	return nil
}

// AppendBatch stores a batch of command records in a single transaction
func (cs *CommandStore) AppendBatch(records []CommandRecord) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isInitialized {
		return fmt.Errorf("command store is not initialized")
	}

	if len(records) == 0 {
		return nil
	}

	tx, err := cs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO commands (full_command, base_command, arguments)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.Exec(record.FullCommand, record.BaseCommand, record.Arguments); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert command: %v", err)
		}
	}

	return tx.Commit()
}

// FrequenciesByFullCommand returns the full-command frequency table,
// descending by count. Equal counts keep the insertion order of the first
// occurrence so the ordering is deterministic.
func (cs *CommandStore) FrequenciesByFullCommand() ([]FrequencyEntry, error) {
	return cs.frequencies("full_command")
}

// FrequenciesByBaseCommand returns the base-command frequency table with
// the same ordering rules as FrequenciesByFullCommand
func (cs *CommandStore) FrequenciesByBaseCommand() ([]FrequencyEntry, error) {
	return cs.frequencies("base_command")
}

// frequencies aggregates the command log grouped by the given column
func (cs *CommandStore) frequencies(column string) ([]FrequencyEntry, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isInitialized {
		return nil, fmt.Errorf("command store is not initialized")
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS freq
		FROM commands
		GROUP BY %s
		ORDER BY freq DESC, MIN(id) ASC
	`, column, column)

	rows, err := cs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query frequencies: %v", err)
	}
	defer rows.Close()

	var entries []FrequencyEntry
	for rows.Next() {
		var entry FrequencyEntry
		if err := rows.Scan(&entry.Command, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan frequency row: %v", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frequency rows: %v", err)
	}

	return entries, nil
}

// Stats returns summary statistics about the stored history
func (cs *CommandStore) Stats() (StoreStats, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	stats := StoreStats{}
	if !cs.isInitialized {
		return stats, fmt.Errorf("command store is not initialized")
	}

	row := cs.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT full_command),
		       COUNT(DISTINCT base_command)
		FROM commands
	`)
	if err := row.Scan(&stats.TotalRecords, &stats.DistinctFullCommands, &stats.DistinctBaseCommands); err != nil {
		return stats, fmt.Errorf("failed to read store stats: %v", err)
	}

	return stats, nil
}

// Reset removes all stored commands
func (cs *CommandStore) Reset() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isInitialized {
		return fmt.Errorf("command store is not initialized")
	}

	if _, err := cs.db.Exec(`DELETE FROM commands`); err != nil {
		return fmt.Errorf("failed to reset command store: %v", err)
	}

	return nil
}
