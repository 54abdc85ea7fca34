package mission

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS missions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at TEXT NOT NULL,
	outcome TEXT NOT NULL,
	player TEXT NOT NULL,
	score INTEGER NOT NULL,
	destroyed INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	source TEXT NOT NULL,
	impactor TEXT NOT NULL
)`

// SQLiteLog stores missions in a SQLite database.
type SQLiteLog struct {
	db *sql.DB
}

// dsnPragmas are applied to every connection. WAL lets the web page read
// while game sessions append; the busy timeout queues concurrent writers.
const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// OpenSQLite opens the database at path and creates the table if needed.
func OpenSQLite(path string) (*SQLiteLog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteLog{db: db}, nil
}

// Append inserts r.
func (l *SQLiteLog) Append(ctx context.Context, r Record) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO missions (at, outcome, player, score, destroyed, duration_ms, source, impactor)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.At.UTC().Format(time.RFC3339Nano), string(r.Outcome), r.Player, r.Score, r.Destroyed,
		r.Duration.Milliseconds(), r.Source, r.Impactor)
	if err != nil {
		return fmt.Errorf("insert mission: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (l *SQLiteLog) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT at, outcome, player, score, destroyed, duration_ms, source, impactor
		 FROM missions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			at      string
			outcome string
			durMS   int64
		)
		if err := rows.Scan(&at, &outcome, &r.Player, &r.Score, &r.Destroyed, &durMS, &r.Source, &r.Impactor); err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		r.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse mission time: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
