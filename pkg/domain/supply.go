package domain

import "github.com/google/uuid"

// Supply is a claimable item needed for the party. Assignee is empty while the
// item is unclaimed; at most one guest holds a claim at a time. Emoji is a
// unified codepoint string (e.g. "1f525").
type Supply struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Assignee string    `json:"assignee,omitempty"`
	IsUrgent bool      `json:"isUrgent"`
	Emoji    string    `json:"emoji"`
}

// ClaimedBy reports whether the supply is currently claimed by username.
func (s Supply) ClaimedBy(username string) bool {
	return s.Assignee != "" && s.Assignee == username
}

// ToggleAssignee returns the next assignee for a claim action: claiming an
// item you already hold releases it, otherwise the claim moves to username.
func ToggleAssignee(current, username string) string {
	if current == username {
		return ""
	}
	return username
}

// SupplyPatch is a field-level update to a supply. Nil fields are left
// unchanged. An Assignee pointing at the empty string clears the claim.
type SupplyPatch struct {
	Name     *string `json:"name,omitempty"`
	Emoji    *string `json:"emoji,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	IsUrgent *bool   `json:"isUrgent,omitempty"`
	Assignee *string `json:"assignee,omitempty"`
}

// Deletes reports whether applying the patch must delete the supply instead of
// updating it. Quantity is never persisted at zero or below.
func (p SupplyPatch) Deletes() bool {
	return p.Quantity != nil && *p.Quantity <= 0
}

// Apply returns a copy of s with the patch applied. Callers must check
// Deletes first; applying a deleting patch clamps quantity to zero.
func (p SupplyPatch) Apply(s Supply) Supply {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Emoji != nil {
		s.Emoji = *p.Emoji
	}
	if p.Quantity != nil {
		s.Quantity = *p.Quantity
		if s.Quantity < 0 {
			s.Quantity = 0
		}
	}
	if p.IsUrgent != nil {
		s.IsUrgent = *p.IsUrgent
	}
	if p.Assignee != nil {
		s.Assignee = *p.Assignee
	}
	return s
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
