package domain

import (
	"reflect"
	"testing"
)

func TestToggleVote(t *testing.T) {
	tests := []struct {
		name     string
		votes    []string
		username string
		want     []string
	}{
		{"append to empty", nil, "alice", []string{"alice"}},
		{"append to existing", []string{"bob"}, "alice", []string{"bob", "alice"}},
		{"remove only vote", []string{"alice"}, "alice", []string{}},
		{"remove from middle", []string{"bob", "alice", "carol"}, "alice", []string{"bob", "carol"}},
		{"remove all duplicates", []string{"alice", "bob", "alice"}, "alice", []string{"bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleVote(tt.votes, tt.username)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToggleVote(%v, %q) = %v, want %v", tt.votes, tt.username, got, tt.want)
			}
		})
	}
}

func TestToggleVoteTwiceRestoresMembership(t *testing.T) {
	original := []string{"bob", "carol"}
	once := ToggleVote(original, "alice")
	twice := ToggleVote(once, "alice")
	if !reflect.DeepEqual(twice, original) {
		t.Errorf("toggling twice = %v, want %v", twice, original)
	}
}

func TestToggleVoteDoesNotMutateInput(t *testing.T) {
	votes := []string{"bob"}
	_ = ToggleVote(votes, "alice")
	if !reflect.DeepEqual(votes, []string{"bob"}) {
		t.Errorf("input slice mutated: %v", votes)
	}
}

func TestHasVote(t *testing.T) {
	votes := []string{"alice", "bob"}
	if !HasVote(votes, "alice") {
		t.Error("HasVote(alice) = false, want true")
	}
	if HasVote(votes, "carol") {
		t.Error("HasVote(carol) = true, want false")
	}
	if HasVote(nil, "alice") {
		t.Error("HasVote on nil list = true, want false")
	}
}

func TestVotePercent(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  float64
	}{
		{"zero total", 0, 0, 0},
		{"zero count", 0, 5, 0},
		{"half", 2, 4, 50},
		{"all", 3, 3, 100},
		{"negative total treated as zero", 1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VotePercent(tt.count, tt.total); got != tt.want {
				t.Errorf("VotePercent(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
			}
		})
	}
}
