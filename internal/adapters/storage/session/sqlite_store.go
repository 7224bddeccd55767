package session

import (
	"context"
	"fmt"
	"time"

	"ugoness/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore and ensures the table exists.
// PRE: db is a valid, open database connection
// POST: sessions table exists; store is ready for use
func NewSQLiteStore(db storage.SQLDB) (*SQLiteStore, error) {
	_, err := db.ExecContext(context.Background(), `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		api_token TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts or replaces a session row.
// PRE: s has a non-empty ID
// POST: session is persisted
func (s *SQLiteStore) Save(ctx context.Context, value Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, email, api_token, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET email=excluded.email, api_token=excluded.api_token, created_at=excluded.created_at`,
		value.ID, value.Email, value.APIToken, value.CreatedAt)
	return err
}

// Get retrieves a session by its cookie token.
// PRE: id is non-empty
// POST: returns the session or an error if not found
func (s *SQLiteStore) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, api_token, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Email, &sess.APIToken, &sess.CreatedAt)
	return sess, err
}

// Delete removes a session by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpired removes every session past its TTL.
// POST: only sessions created within TTL of now remain
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, now.Add(-TTL))
	return err
}
