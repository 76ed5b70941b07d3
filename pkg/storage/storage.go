// Package storage records setup attempts driven through the HTTP API. The
// bridge library itself persists nothing; this store is a server-side audit
// trail only.
package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS setup_attempts (
  id          INTEGER PRIMARY KEY,
  token       TEXT NOT NULL,
  smdp_host   TEXT NOT NULL DEFAULT '',
  outcome     TEXT NOT NULL,
  created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_attempts_time ON setup_attempts(created_at);
`

// Attempt is one recorded setup call. SMDPHost is the redacted remainder of
// the activation code; the matching ID is never stored.
type Attempt struct {
	ID        int64     `db:"id" json:"id"`
	Token     string    `db:"token" json:"token"`
	SMDPHost  string    `db:"smdp_host" json:"smdpHost,omitempty"`
	Outcome   string    `db:"outcome" json:"outcome"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed creates) the sqlite store at path.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordAttempt inserts one attempt row.
func (s *Store) RecordAttempt(ctx context.Context, token, smdpHost, outcome string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO setup_attempts (token, smdp_host, outcome, created_at) VALUES (?, ?, ?, ?)`,
		token, smdpHost, outcome, time.Now().UTC())
	return err
}

// RecentAttempts returns up to limit attempts, newest first.
func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	attempts := []Attempt{}
	err := s.db.SelectContext(ctx, &attempts,
		`SELECT id, token, smdp_host, outcome, created_at FROM setup_attempts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
