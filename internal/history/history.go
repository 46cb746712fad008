package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/voidrunner/internal/migrations"
	"github.com/studiowebux/voidrunner/internal/types"
)

// timestampFormat is fixed-width so text ordering matches time ordering
const timestampFormat = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned by Get for an unknown run id
var ErrNotFound = errors.New("history entry not found")

// Manager stores finished runs in SQLite
type Manager struct {
	db *sql.DB
}

// NewManager opens (and migrates) the history database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", migrations.DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record saves a finished run
func (m *Manager) Record(entry types.HistoryEntry) error {
	query := `
		INSERT INTO history (
			id, timestamp, language, code, stdin,
			outcome, output, message, cause, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		entry.ID,
		entry.Timestamp.UTC().Format(timestampFormat),
		entry.Language,
		entry.Code,
		entry.Stdin,
		entry.Outcome,
		entry.Output,
		entry.Message,
		entry.Cause,
		entry.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// List returns the latest runs, newest first. A zero limit returns all.
// An empty language returns every language.
func (m *Manager) List(limit int, language string) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, language, code, stdin, outcome, output, message, cause, duration_ms
		FROM history
		WHERE (? = '' OR language = ?)
		ORDER BY timestamp DESC, rowid DESC
	`
	args := []any{language, language}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns one run by id
func (m *Manager) Get(id string) (types.HistoryEntry, error) {
	row := m.db.QueryRow(`
		SELECT id, timestamp, language, code, stdin, outcome, output, message, cause, duration_ms
		FROM history WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.HistoryEntry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (types.HistoryEntry, error) {
	var (
		entry                  types.HistoryEntry
		timestamp              string
		output, message, cause sql.NullString
		durationMs             int64
	)
	err := s.Scan(
		&entry.ID, &timestamp, &entry.Language, &entry.Code, &entry.Stdin,
		&entry.Outcome, &output, &message, &cause, &durationMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, err
		}
		return entry, fmt.Errorf("failed to scan history entry: %w", err)
	}

	ts, err := time.Parse(timestampFormat, timestamp)
	if err != nil {
		return entry, fmt.Errorf("invalid history timestamp %q: %w", timestamp, err)
	}
	entry.Timestamp = ts
	entry.Output = output.String
	entry.Message = message.String
	entry.Cause = cause.String
	entry.Duration = time.Duration(durationMs) * time.Millisecond
	return entry, nil
}

// Clear removes every run
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Count returns the number of stored runs
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// Close closes the database
func (m *Manager) Close() error {
	return m.db.Close()
}
