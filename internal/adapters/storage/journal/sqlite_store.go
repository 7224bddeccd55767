package journal

import (
	"context"
	"fmt"

	"ugoness/internal/adapters/storage"
	domain "ugoness/internal/domain/journal"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore and ensures the table exists.
// PRE: db is a valid, open database connection
// POST: workout_journal table exists; store is ready for use
func NewSQLiteStore(db storage.SQLDB) (*SQLiteStore, error) {
	_, err := db.ExecContext(context.Background(), `CREATE TABLE IF NOT EXISTS workout_journal (
		id TEXT PRIMARY KEY,
		training_history_id INTEGER NOT NULL,
		participant_count INTEGER NOT NULL,
		video_count INTEGER NOT NULL,
		completed_at DATETIME NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("creating workout_journal table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts a journal entry.
// PRE: e passes Validate
// POST: entry is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workout_journal (id, training_history_id, participant_count, video_count, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.TrainingHistoryID, e.ParticipantCount, e.VideoCount, e.CompletedAt)
	return err
}

// ListRecent returns the most recently completed entries, newest first.
// PRE: limit > 0
// POST: returns at most limit entries
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, training_history_id, participant_count, video_count, completed_at
		 FROM workout_journal ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.TrainingHistoryID, &e.ParticipantCount, &e.VideoCount, &e.CompletedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
