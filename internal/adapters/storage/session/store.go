package session

import (
	"context"
	"time"
)

// Session is one operator's authenticated dashboard session. The external
// API token lives here, server-side; the browser carries only the opaque
// session ID in a cookie.
type Session struct {
	ID        string
	Email     string
	APIToken  string
	CreatedAt time.Time
}

// TTL is how long a session stays valid after creation.
const TTL = 24 * time.Hour

// Expired reports whether the session has outlived its TTL at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > TTL
}

// Store persists operator sessions.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
