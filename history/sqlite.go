package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"promptline/log"

	_ "modernc.org/sqlite"
)

// SQLiteLog stores entries in a single table, ordered by rowid.
type SQLiteLog struct {
	conn *sql.DB
}

func OpenSQLite(path string) (*SQLiteLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; Rewrite runs in a transaction anyway.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteLog{conn: conn}, nil
}

func (s *SQLiteLog) Load() ([]Entry, error) {
	rows, err := s.conn.Query(`SELECT id, text, timestamp FROM history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id   int64
			text string
			ts   string
		)
		if err := rows.Scan(&id, &text, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			log.Warnf("history: skipping row %d: %v", id, err)
			continue
		}
		e := Entry{Text: text, Timestamp: t}
		if err := e.check(); err != nil {
			log.Warnf("history: skipping row %d: %v", id, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteLog) Rewrite(entries []Entry) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO history (text, timestamp) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Text, e.Timestamp.UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteLog) Truncate() error {
	_, err := s.conn.Exec(`DELETE FROM history`)
	return err
}

func (s *SQLiteLog) Close() error {
	return s.conn.Close()
}
