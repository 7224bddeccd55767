package rating_test

import (
	"errors"
	"testing"

	"ugoness/internal/domain/participant"
	"ugoness/internal/domain/rating"
)

// TestRecordComplete tests the completeness rule for a single record.
func TestRecordComplete(t *testing.T) {
	tests := []struct {
		name string
		rec  rating.Record
		want bool
	}{
		{"both set", rating.Record{Physical: 5, Emotional: 8}, true},
		{"bounds", rating.Record{Physical: 1, Emotional: 10}, true},
		{"physical missing", rating.Record{Emotional: 5}, false},
		{"emotional missing", rating.Record{Physical: 5}, false},
		{"out of range", rating.Record{Physical: 11, Emotional: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSheetRangeChecks tests that out-of-scale scores are rejected.
func TestSheetRangeChecks(t *testing.T) {
	s := rating.NewSheet()
	if err := s.SetPhysical(1, 0); err == nil {
		t.Error("expected error for physical score 0")
	}
	if err := s.SetEmotional(1, 11); err == nil {
		t.Error("expected error for emotional score 11")
	}
	if err := s.SetPhysical(1, 10); err != nil {
		t.Errorf("unexpected error for valid score: %v", err)
	}
}

// TestValidateNamesIncompleteParticipants tests that validation names
// every participant with a missing rating.
func TestValidateNamesIncompleteParticipants(t *testing.T) {
	roster := []participant.Participant{
		{ID: 1, Name: "田中"},
		{ID: 2, Name: "佐藤"},
		{ID: 3, Name: "鈴木"},
	}
	s := rating.NewSheet()
	s.SetPhysical(1, 7)
	s.SetEmotional(1, 6)
	s.SetPhysical(2, 5) // emotional missing

	err := s.Validate(roster)
	var incomplete *rating.IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if len(incomplete.Names) != 2 {
		t.Fatalf("expected 2 incomplete participants, got %v", incomplete.Names)
	}
	if incomplete.Names[0] != "佐藤" || incomplete.Names[1] != "鈴木" {
		t.Errorf("expected incomplete participants named in roster order, got %v", incomplete.Names)
	}
}

// TestValidateComplete tests that a fully rated roster passes.
func TestValidateComplete(t *testing.T) {
	roster := []participant.Participant{{ID: 1, Name: "田中"}}
	s := rating.NewSheet()
	s.SetPhysical(1, 9)
	s.SetEmotional(1, 4)
	if err := s.Validate(roster); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidateEmptyRoster tests that an empty roster is rejected.
func TestValidateEmptyRoster(t *testing.T) {
	if err := rating.NewSheet().Validate(nil); err == nil {
		t.Error("expected error for empty roster")
	}
}
