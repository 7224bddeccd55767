package projections

import (
	"context"

	"ugoness/internal/domain/journal"
)

// defaultRecentLimit bounds the home page journal listing.
const defaultRecentLimit = 10

// GetRecentWorkoutsQuery carries query parameters for the home page journal.
type GetRecentWorkoutsQuery struct {
	Limit int // defaults to 10
}

// GetRecentWorkoutsResult carries the most recent completed sessions.
type GetRecentWorkoutsResult struct {
	Entries []journal.Entry
}

// GetRecentWorkoutsDeps holds dependencies for GetRecentWorkouts.
type GetRecentWorkoutsDeps struct {
	Journal JournalStore
}

// QueryGetRecentWorkouts lists recently completed training sessions from the
// local journal, newest first.
// POST: returns at most Limit entries
func QueryGetRecentWorkouts(ctx context.Context, query GetRecentWorkoutsQuery, deps GetRecentWorkoutsDeps) (GetRecentWorkoutsResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	entries, err := deps.Journal.ListRecent(ctx, limit)
	if err != nil {
		return GetRecentWorkoutsResult{}, err
	}
	return GetRecentWorkoutsResult{Entries: entries}, nil
}
