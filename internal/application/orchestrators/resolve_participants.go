package orchestrators

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"ugoness/internal/domain/participant"
)

// defaultFanOut bounds concurrent API calls issued by one orchestrator run.
const defaultFanOut = 4

// DirectoryAPI defines the directory operations needed to resolve
// participants from the IDs carried in the wizard URL.
type DirectoryAPI interface {
	GetUser(ctx context.Context, token string, id int64) (participant.Participant, error)
}

// ResolveParticipantsInput carries input for participant resolution.
type ResolveParticipantsInput struct {
	Token   string  // API auth token for this operator session
	UserIDs []int64 // ordered IDs from the users= query parameter
}

// ResolveParticipantsResult carries the resolved roster. IDs that no
// longer resolve server-side are reported per-item, never fatal: the step
// continues with whatever subset resolved.
type ResolveParticipantsResult struct {
	Roster  participant.Roster
	Missing []int64
}

// ResolveParticipantsDeps holds dependencies for ResolveParticipants.
type ResolveParticipantsDeps struct {
	Directory DirectoryAPI
	FanOut    int // max concurrent lookups; defaults to 4
}

// ExecuteResolveParticipants fetches each rostered user by ID. Lookups run
// concurrently; the result preserves the requested ID order and drops
// duplicates the way the selection step does.
// PRE: Token is a valid API token
// POST: Roster holds every resolvable ID in request order; Missing the rest
func ExecuteResolveParticipants(ctx context.Context, input ResolveParticipantsInput, deps ResolveParticipantsDeps) (ResolveParticipantsResult, error) {
	if len(input.UserIDs) == 0 {
		return ResolveParticipantsResult{}, nil
	}

	fanOut := deps.FanOut
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}

	resolved := make([]*participant.Participant, len(input.UserIDs))
	var mu sync.Mutex
	var missing []int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, id := range input.UserIDs {
		g.Go(func() error {
			p, err := deps.Directory.GetUser(gctx, input.Token, id)
			if err != nil {
				slog.Warn("participant_resolve_failed", "user_id", id, "error", err.Error())
				mu.Lock()
				missing = append(missing, id)
				mu.Unlock()
				return nil // stale references are tolerated per-item
			}
			resolved[i] = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ResolveParticipantsResult{}, err
	}

	var roster participant.Roster
	for _, p := range resolved {
		if p != nil {
			roster.Add(*p)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return ResolveParticipantsResult{Roster: roster, Missing: missing}, nil
}
