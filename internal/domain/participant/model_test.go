package participant_test

import (
	"testing"
	"time"

	"ugoness/internal/domain/participant"
)

// TestRosterAddRemove tests that the roster reflects exactly the net
// adds minus removes with no duplicate IDs.
func TestRosterAddRemove(t *testing.T) {
	var r participant.Roster
	r.Add(participant.Participant{ID: 1, Name: "田中"})
	r.Add(participant.Participant{ID: 2, Name: "佐藤"})
	r.Add(participant.Participant{ID: 1, Name: "田中"}) // duplicate, no-op
	if r.Len() != 2 {
		t.Fatalf("expected 2 entries after duplicate add, got %d", r.Len())
	}

	r.Remove(99) // absent, no-op
	if r.Len() != 2 {
		t.Errorf("expected remove of absent ID to be a no-op, got %d entries", r.Len())
	}

	r.Remove(1)
	if r.Len() != 1 || r.Contains(1) {
		t.Errorf("expected only ID 2 to remain, got %v", r.IDs())
	}
	if !r.Contains(2) {
		t.Error("expected ID 2 to remain in roster")
	}
}

// TestRosterInsertionOrder tests that entries keep insertion order.
func TestRosterInsertionOrder(t *testing.T) {
	r := participant.NewRoster(
		participant.Participant{ID: 3, Name: "c"},
		participant.Participant{ID: 1, Name: "a"},
		participant.Participant{ID: 2, Name: "b"},
	)
	ids := r.IDs()
	want := []int64{3, 1, 2}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected IDs %v, got %v", want, ids)
		}
	}
}

// TestRosterDuplicateNames tests that same-name participants with
// different IDs are both kept.
func TestRosterDuplicateNames(t *testing.T) {
	var r participant.Roster
	r.Add(participant.Participant{ID: 1, Name: "田中"})
	r.Add(participant.Participant{ID: 2, Name: "田中"})
	if r.Len() != 2 {
		t.Errorf("expected duplicate names with distinct IDs to be allowed, got %d entries", r.Len())
	}
}

// TestMatchesName tests case-insensitive substring name matching.
func TestMatchesName(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"Alice Smith", "smith", true},
		{"Alice Smith", "ALICE", true},
		{"Alice Smith", "", true},
		{"Alice Smith", "bob", false},
		{"田中太郎", "田中", true},
	}
	for _, tt := range tests {
		p := participant.Participant{ID: 1, Name: tt.name}
		if got := p.MatchesName(tt.query); got != tt.want {
			t.Errorf("MatchesName(%q) on %q = %v, want %v", tt.query, tt.name, got, tt.want)
		}
	}
}

// TestParticipantAge tests age calculation against a fixed clock.
func TestParticipantAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		dob  string
		want int
	}{
		{"1990-06-15", 36},
		{"1990-06-16", 35}, // birthday not reached yet
		{"1990-12-01", 35},
		{"not-a-date", -1},
	}
	for _, tt := range tests {
		p := participant.Participant{ID: 1, Name: "x", DateOfBirth: tt.dob}
		if got := p.Age(now); got != tt.want {
			t.Errorf("Age(%q) = %d, want %d", tt.dob, got, tt.want)
		}
	}
}

// TestParticipantValidate tests validation of Participant.
func TestParticipantValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       participant.Participant
		wantErr bool
	}{
		{"valid", participant.Participant{ID: 1, Name: "田中"}, false},
		{"zero ID", participant.Participant{ID: 0, Name: "田中"}, true},
		{"empty name", participant.Participant{ID: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
