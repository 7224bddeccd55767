package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ViewingHistoryAPI defines the training-history operations needed to
// finish playback and record what was watched.
type ViewingHistoryAPI interface {
	CreateTrainingHistory(ctx context.Context, token string) (int64, error)
	AddViewingHistory(ctx context.Context, token string, trainingHistoryID, contentID int64) (int64, error)
}

// FinishWorkoutInput carries input for the finish transition.
type FinishWorkoutInput struct {
	Token            string
	ParticipantIDs   []int64
	PlaylistVideoIDs []int64 // one per queued entry, repeats included, in play order
}

// ViewingSubmitFailure records one viewing-history submission that failed.
// Partial histories are acceptable: the training history already exists,
// so these are surfaced to the operator without blocking the rating step.
type ViewingSubmitFailure struct {
	Position  int // playlist position the submission was for
	ContentID int64
	Err       error
}

// FinishWorkoutResult carries the created training history and the
// per-entry submission outcomes.
type FinishWorkoutResult struct {
	TrainingHistoryID int64
	ViewingHistoryIDs []int64 // successfully created rows, any order
	Failed            []ViewingSubmitFailure
}

// FinishWorkoutDeps holds dependencies for FinishWorkout.
type FinishWorkoutDeps struct {
	History ViewingHistoryAPI
	FanOut  int // max concurrent viewing-history submissions; defaults to 4
}

// ExecuteFinishWorkout creates the training history record and then
// submits one viewing-history row per playlist entry concurrently.
// PRE: playlist and participant set are non-empty
// POST: training history exists; one submission attempted per entry;
// per-entry failures collected, never fatal once the history exists
func ExecuteFinishWorkout(ctx context.Context, input FinishWorkoutInput, deps FinishWorkoutDeps) (FinishWorkoutResult, error) {
	if len(input.PlaylistVideoIDs) == 0 {
		return FinishWorkoutResult{}, errors.New("cannot finish a workout with an empty playlist")
	}
	if len(input.ParticipantIDs) == 0 {
		return FinishWorkoutResult{}, errors.New("cannot finish a workout with no participants")
	}

	historyID, err := deps.History.CreateTrainingHistory(ctx, input.Token)
	if err != nil {
		return FinishWorkoutResult{}, err
	}

	fanOut := deps.FanOut
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}

	type outcome struct {
		viewingID int64
		err       error
	}
	outcomes := make([]outcome, len(input.PlaylistVideoIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, contentID := range input.PlaylistVideoIDs {
		g.Go(func() error {
			id, err := deps.History.AddViewingHistory(gctx, input.Token, historyID, contentID)
			outcomes[i] = outcome{viewingID: id, err: err}
			return nil // failures are aggregated, every entry is attempted
		})
	}
	if err := g.Wait(); err != nil {
		return FinishWorkoutResult{}, err
	}

	result := FinishWorkoutResult{TrainingHistoryID: historyID}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, ViewingSubmitFailure{
				Position:  i,
				ContentID: input.PlaylistVideoIDs[i],
				Err:       o.err,
			})
			continue
		}
		result.ViewingHistoryIDs = append(result.ViewingHistoryIDs, o.viewingID)
	}

	slog.Info("workout_finished",
		"training_history_id", historyID,
		"entries", len(input.PlaylistVideoIDs),
		"recorded", len(result.ViewingHistoryIDs),
		"failed", len(result.Failed))
	for _, f := range result.Failed {
		slog.Warn("viewing_history_submit_failed", "training_history_id", historyID, "position", f.Position, "content_id", f.ContentID, "error", f.Err.Error())
	}

	return result, nil
}
