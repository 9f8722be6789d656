package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateOption is a date candidate guests vote on.
type DateOption struct {
	ID    uuid.UUID `json:"id"`
	Date  time.Time `json:"date"`
	Votes []string  `json:"votes"`
}

// LocationOption is a location candidate guests vote on. The value is free
// text; a maps link is the recommended format.
type LocationOption struct {
	ID       uuid.UUID `json:"id"`
	Location string    `json:"location"`
	Votes    []string  `json:"votes"`
}

// HasVote reports whether username is present in the vote list.
func HasVote(votes []string, username string) bool {
	for _, v := range votes {
		if v == username {
			return true
		}
	}
	return false
}

// ToggleVote removes username from the vote list if present, otherwise appends
// it. Toggling twice restores the original membership. All occurrences are
// removed on the way out, so a list that arrived with duplicates leaves clean.
func ToggleVote(votes []string, username string) []string {
	if HasVote(votes, username) {
		out := make([]string, 0, len(votes))
		for _, v := range votes {
			if v != username {
				out = append(out, v)
			}
		}
		return out
	}
	out := make([]string, len(votes), len(votes)+1)
	copy(out, votes)
	return append(out, username)
}

// VotePercent returns count/total as a percentage in [0, 100]. A zero total
// yields 0, never NaN.
func VotePercent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
