package domain

import "github.com/google/uuid"

// Party is the root aggregate for one planned event. The name doubles as the
// shareable party code; the admin code is a separate bearer secret and is only
// populated on admin-scoped lookups.
type Party struct {
	Name      string           `json:"name"`
	Creator   string           `json:"creator"`
	AdminCode string           `json:"adminCode,omitempty"`
	Settings  Settings         `json:"settings"`
	Dates     []DateOption     `json:"dates"`
	Locations []LocationOption `json:"locations"`
	Supplies  []Supply         `json:"supplies"`
}

// CategorySettings are the per-category guest permissions.
type CategorySettings struct {
	VotingEnabled  bool `json:"votingEnabled"`
	OptionsEnabled bool `json:"optionsEnabled"`
}

// Settings holds the date and location permissions for a party.
type Settings struct {
	Dates     CategorySettings `json:"dates"`
	Locations CategorySettings `json:"locations"`
}

// TotalDateVotes sums votes across all date options.
func (p *Party) TotalDateVotes() int {
	total := 0
	for _, d := range p.Dates {
		total += len(d.Votes)
	}
	return total
}

// TotalLocationVotes sums votes across all location options.
func (p *Party) TotalLocationVotes() int {
	total := 0
	for _, l := range p.Locations {
		total += len(l.Votes)
	}
	return total
}

// FindDate returns the date option with the given ID, or nil.
func (p *Party) FindDate(id uuid.UUID) *DateOption {
	for i := range p.Dates {
		if p.Dates[i].ID == id {
			return &p.Dates[i]
		}
	}
	return nil
}

// FindLocation returns the location option with the given ID, or nil.
func (p *Party) FindLocation(id uuid.UUID) *LocationOption {
	for i := range p.Locations {
		if p.Locations[i].ID == id {
			return &p.Locations[i]
		}
	}
	return nil
}

// FindSupply returns the supply with the given ID, or nil.
func (p *Party) FindSupply(id uuid.UUID) *Supply {
	for i := range p.Supplies {
		if p.Supplies[i].ID == id {
			return &p.Supplies[i]
		}
	}
	return nil
}
