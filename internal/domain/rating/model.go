package rating

import (
	"errors"
	"fmt"
	"strings"

	"ugoness/internal/domain/participant"
)

// Rating scale bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Record is one participant's post-session self-report.
type Record struct {
	Physical  int // 1..10
	Emotional int // 1..10
}

// Complete reports whether both aspects have been rated.
func (r Record) Complete() bool {
	return r.Physical >= MinScore && r.Physical <= MaxScore &&
		r.Emotional >= MinScore && r.Emotional <= MaxScore
}

// Sheet collects rating records keyed by participant ID while the operator
// fills in the post-session form.
type Sheet struct {
	records map[int64]Record
}

// NewSheet returns an empty rating sheet.
func NewSheet() *Sheet {
	return &Sheet{records: make(map[int64]Record)}
}

// SetPhysical records the physical rating for a participant.
// PRE: MinScore <= score <= MaxScore
func (s *Sheet) SetPhysical(userID int64, score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("physical rating must be between %d and %d", MinScore, MaxScore)
	}
	rec := s.records[userID]
	rec.Physical = score
	s.records[userID] = rec
	return nil
}

// SetEmotional records the emotional rating for a participant.
// PRE: MinScore <= score <= MaxScore
func (s *Sheet) SetEmotional(userID int64, score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("emotional rating must be between %d and %d", MinScore, MaxScore)
	}
	rec := s.records[userID]
	rec.Emotional = score
	s.records[userID] = rec
	return nil
}

// Record returns the record for a participant, if any rating was set.
func (s *Sheet) Record(userID int64) (Record, bool) {
	rec, ok := s.records[userID]
	return rec, ok
}

// IncompleteError lists the participants missing a rating, by name, so the
// operator can see exactly who still needs one.
type IncompleteError struct {
	Names []string
}

func (e *IncompleteError) Error() string {
	return "missing ratings for: " + strings.Join(e.Names, ", ")
}

// Validate checks that every rostered participant has a complete record.
// PRE: roster is the session's participant set
// POST: returns nil, or *IncompleteError naming every incomplete participant
func (s *Sheet) Validate(roster []participant.Participant) error {
	if len(roster) == 0 {
		return errors.New("no participants to rate")
	}
	var missing []string
	for _, p := range roster {
		if rec, ok := s.records[p.ID]; !ok || !rec.Complete() {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError{Names: missing}
	}
	return nil
}
