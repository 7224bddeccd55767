package journal

import (
	"context"

	domain "ugoness/internal/domain/journal"
)

// Store persists the local workout journal.
type Store interface {
	Save(ctx context.Context, e domain.Entry) error
	ListRecent(ctx context.Context, limit int) ([]domain.Entry, error)
}
