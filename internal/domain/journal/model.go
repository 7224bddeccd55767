package journal

import (
	"errors"
	"time"
)

// Entry is the dashboard's local record of one completed training session.
// It exists purely for the home page's recent-workouts list; the API-side
// training history remains the system of record.
type Entry struct {
	ID                string
	TrainingHistoryID int64
	ParticipantCount  int
	VideoCount        int
	CompletedAt       time.Time
}

// Validate checks the entry's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e Entry) Validate() error {
	if e.ID == "" {
		return errors.New("journal entry ID cannot be empty")
	}
	if e.TrainingHistoryID <= 0 {
		return errors.New("journal entry training history ID must be positive")
	}
	if e.ParticipantCount <= 0 {
		return errors.New("journal entry participant count must be positive")
	}
	if e.VideoCount <= 0 {
		return errors.New("journal entry video count must be positive")
	}
	return nil
}
