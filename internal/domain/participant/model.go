package participant

import (
	"errors"
	"strings"
	"time"
)

// Participant is a directory user chosen to take part in a training session.
// The directory service owns the record; this is a session-scoped projection.
type Participant struct {
	ID          int64
	Name        string
	DateOfBirth string // YYYY-MM-DD, informational only
}

// Validate checks the participant's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (p Participant) Validate() error {
	if p.ID <= 0 {
		return errors.New("participant ID must be positive")
	}
	if p.Name == "" {
		return errors.New("participant name cannot be empty")
	}
	return nil
}

// MatchesName reports whether the participant's name contains the query,
// case-insensitively. An empty query matches everyone.
func (p Participant) MatchesName(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}

// Age returns the participant's age in whole years at the given time.
// Returns -1 if the date of birth cannot be parsed.
func (p Participant) Age(now time.Time) int {
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return -1
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Roster is the set of participants for one session. Insertion order is
// preserved for display, but order carries no meaning downstream.
// INVARIANT: no two entries share an ID. Duplicate names are allowed.
type Roster struct {
	entries []Participant
}

// NewRoster builds a roster from the given participants, dropping duplicates.
func NewRoster(participants ...Participant) Roster {
	var r Roster
	for _, p := range participants {
		r.Add(p)
	}
	return r
}

// Add appends the participant unless an entry with the same ID exists.
// PRE: none
// POST: Contains(p.ID) is true; a duplicate add is a silent no-op
func (r *Roster) Add(p Participant) {
	if r.Contains(p.ID) {
		return
	}
	r.entries = append(r.entries, p)
}

// Remove deletes the entry with the given ID. Absent IDs are a no-op.
func (r *Roster) Remove(id int64) {
	for i, p := range r.entries {
		if p.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Contains reports whether an entry with the given ID is present.
func (r *Roster) Contains(id int64) bool {
	for _, p := range r.entries {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Entries returns a copy of the roster in insertion order.
func (r *Roster) Entries() []Participant {
	out := make([]Participant, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns the participant IDs in insertion order.
func (r *Roster) IDs() []int64 {
	ids := make([]int64, len(r.entries))
	for i, p := range r.entries {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of participants.
func (r *Roster) Len() int {
	return len(r.entries)
}
