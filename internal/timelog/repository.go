// Package timelog journals timer sessions in sqlite. The default database is
// in memory, so the journal lasts as long as the process.
package timelog

import (
	"database/sql"
	"fmt"
	"time"

	"countdown_tui/internal/entry"

	_ "modernc.org/sqlite"
)

const MemoryDSN = ":memory:"

type Repository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*Repository, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS time_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL,
		task_name TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		stopped_at INTEGER NOT NULL,
		seconds INTEGER NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *Repository) Create(log *TimeLog) error {
	result, err := r.db.Exec(
		"INSERT INTO time_logs (entry_id, task_name, started_at, stopped_at, seconds) VALUES (?, ?, ?, ?, ?)",
		string(log.EntryID),
		log.TaskName,
		log.StartedAt.UnixNano(),
		log.StoppedAt.UnixNano(),
		log.Seconds,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}

// ByEntry returns the sessions of one entry, newest first.
func (r *Repository) ByEntry(id entry.ID) ([]TimeLog, error) {
	rows, err := r.db.Query(
		"SELECT id, entry_id, task_name, started_at, stopped_at, seconds FROM time_logs WHERE entry_id = ? ORDER BY stopped_at DESC, id DESC",
		string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

// All returns every session, newest first.
func (r *Repository) All() ([]TimeLog, error) {
	rows, err := r.db.Query(
		"SELECT id, entry_id, task_name, started_at, stopped_at, seconds FROM time_logs ORDER BY stopped_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanLogs(rows *sql.Rows) ([]TimeLog, error) {
	var logs []TimeLog
	for rows.Next() {
		var l TimeLog
		var entryID string
		var startedAt, stoppedAt int64
		if err := rows.Scan(&l.ID, &entryID, &l.TaskName, &startedAt, &stoppedAt, &l.Seconds); err != nil {
			return nil, err
		}
		l.EntryID = entry.ID(entryID)
		l.StartedAt = time.Unix(0, startedAt).UTC()
		l.StoppedAt = time.Unix(0, stoppedAt).UTC()
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
