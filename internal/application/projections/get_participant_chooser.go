package projections

import (
	"context"
	"sort"
	"strings"
	"time"

	"ugoness/internal/application/listutil"
	"ugoness/internal/domain/participant"
)

// GetParticipantChooserQuery carries query parameters for the participant
// selection step.
type GetParticipantChooserQuery struct {
	Token       string
	Search      string  // case-insensitive name filter
	SelectedIDs []int64 // ordered IDs already in the roster
	Page        listutil.PageParams
}

// ParticipantView is a participant with display fields resolved.
type ParticipantView struct {
	participant.Participant
	Age int // -1 when the date of birth is unknown
}

// GetParticipantChooserResult carries the chooser page data. Selected holds
// the already-rostered participants in roster order; Candidates the pageful
// of remaining users; Missing any rostered ID the directory no longer knows.
type GetParticipantChooserResult struct {
	Selected   []ParticipantView
	Candidates []ParticipantView
	Missing    []int64
	PageInfo   listutil.PageInfo
}

// GetParticipantChooserDeps holds dependencies for GetParticipantChooser.
type GetParticipantChooserDeps struct {
	Directory DirectoryAPI
}

// QueryGetParticipantChooser builds the participant selection screen from
// one directory listing: the roster is resolved against the same list the
// candidates come from, so both views agree on who exists.
// PRE: Token is a valid API token
// POST: Candidates exclude rostered users and are name-sorted, then paged
func QueryGetParticipantChooser(ctx context.Context, query GetParticipantChooserQuery, deps GetParticipantChooserDeps) (GetParticipantChooserResult, error) {
	users, err := deps.Directory.ListUsers(ctx, query.Token)
	if err != nil {
		return GetParticipantChooserResult{}, err
	}

	byID := make(map[int64]participant.Participant, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	now := time.Now()
	view := func(u participant.Participant) ParticipantView {
		return ParticipantView{Participant: u, Age: u.Age(now)}
	}

	var result GetParticipantChooserResult
	selected := make(map[int64]bool, len(query.SelectedIDs))
	for _, id := range query.SelectedIDs {
		if selected[id] {
			continue
		}
		selected[id] = true
		if u, ok := byID[id]; ok {
			result.Selected = append(result.Selected, view(u))
		} else {
			result.Missing = append(result.Missing, id)
		}
	}

	var candidates []ParticipantView
	for _, u := range users {
		if selected[u.ID] {
			continue
		}
		if query.Search != "" && !u.MatchesName(query.Search) {
			continue
		}
		candidates = append(candidates, view(u))
	}
	sort.Slice(candidates, func(i, j int) bool {
		if c := strings.Compare(candidates[i].Name, candidates[j].Name); c != 0 {
			return c < 0
		}
		return candidates[i].ID < candidates[j].ID
	})

	result.PageInfo = listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(candidates))
	lo, hi := result.PageInfo.Bounds()
	result.Candidates = candidates[lo:hi]
	return result, nil
}
