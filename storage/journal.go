package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// JournalEntry is one executed tool call as the dispatcher saw it.
type JournalEntry struct {
	ID         int64
	Tool       string
	Arguments  map[string]any
	Summary    string
	Error      string
	ExecutedAt time.Time
}

// CommandJournal records every dispatched tool call in a local sqlite
// database. It satisfies the dispatcher's Recorder interface.
//
// The journal is append-only observability, never consulted by the
// pipeline itself; a write failure must not fail the command, so Record
// swallows errors.
type CommandJournal struct {
	db *sql.DB
}

// NewCommandJournal opens (creating if needed) the journal database
// under dataDir.
func NewCommandJournal(dataDir string) (*CommandJournal, error) {
	dbPath := filepath.Join(dataDir, "journal.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	j := &CommandJournal{db: db}

	if err := j.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return j, nil
}

func (j *CommandJournal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		arguments TEXT NOT NULL,
		summary TEXT,
		error TEXT,
		executed_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commands_tool ON commands(tool);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record appends one executed call. Errors are intentionally dropped;
// journaling is best-effort.
func (j *CommandJournal) Record(tool string, args map[string]any, summary string, callErr error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		argsJSON = []byte("{}")
	}

	errText := ""
	if callErr != nil {
		errText = callErr.Error()
	}

	_, _ = j.db.Exec(
		`INSERT INTO commands (tool, arguments, summary, error, executed_at) VALUES (?, ?, ?, ?, ?)`,
		tool, string(argsJSON), summary, errText, time.Now(),
	)
}

// Recent returns up to limit entries, newest first.
func (j *CommandJournal) Recent(limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.Query(
		`SELECT id, tool, arguments, summary, error, executed_at FROM commands ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e        JournalEntry
			argsJSON string
		)
		if err := rows.Scan(&e.ID, &e.Tool, &argsJSON, &e.Summary, &e.Error, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &e.Arguments); err != nil {
			e.Arguments = map[string]any{}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the underlying database.
func (j *CommandJournal) Close() error {
	return j.db.Close()
}
