package importer

import (
	"database/sql"
	"fmt"
	"time"
)

// Outcome classifies a finished import in history.
type Outcome string

const (
	OutcomeImported Outcome = "imported"
	OutcomeFailed   Outcome = "failed"
	OutcomeDegraded Outcome = "degraded"
)

// HistoryEntry is one terminal import outcome.
type HistoryEntry struct {
	ID        int64
	ImportID  string
	URL       string
	Outcome   Outcome
	RecordID  string
	Message   string
	CreatedAt time.Time
}

// HistoryFilter narrows List results.
type HistoryFilter struct {
	Outcome Outcome // empty matches all
	Limit   int     // 0 means no limit
}

// HistoryStore persists import outcomes in SQLite.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Init creates the history table if missing.
func (s *HistoryStore) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS import_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			import_id TEXT NOT NULL,
			url TEXT NOT NULL,
			outcome TEXT NOT NULL,
			record_id TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_import_history_outcome ON import_history(outcome);
	`)
	if err != nil {
		return fmt.Errorf("creating import_history table: %w", err)
	}
	return nil
}

// Add inserts a new history entry and fills in its id and timestamp.
func (s *HistoryStore) Add(entry *HistoryEntry) error {
	entry.CreatedAt = time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO import_history (import_id, url, outcome, record_id, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ImportID, entry.URL, string(entry.Outcome), entry.RecordID, entry.Message, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	entry.ID, _ = res.LastInsertId()
	return nil
}

// List returns history entries matching the filter, newest first.
func (s *HistoryStore) List(filter HistoryFilter) ([]HistoryEntry, error) {
	query := `
		SELECT id, import_id, url, outcome, record_id, message, created_at
		FROM import_history`
	var args []any
	if filter.Outcome != "" {
		query += ` WHERE outcome = ?`
		args = append(args, string(filter.Outcome))
	}
	query += ` ORDER BY id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var outcome string
		if err := rows.Scan(&e.ID, &e.ImportID, &e.URL, &outcome, &e.RecordID, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
