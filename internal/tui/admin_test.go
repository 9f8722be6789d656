package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamboree-events/jamboree/pkg/client"
	"github.com/jamboree-events/jamboree/pkg/domain"
)

func newTestAdminModel(party *domain.Party) adminModel {
	m := newAdminModel(client.New("http://127.0.0.1:0"), "secret-admin-code", "brave-red-fox",
		"https://jamboree.party", party)
	m.width = 80
	m.height = 40
	return m
}

func adminCursorTo(m adminModel, kind adminItemKind, index int) adminModel {
	for i, it := range m.items() {
		if it.kind == kind && it.index == index {
			m.cursor = i
			return m
		}
	}
	return m
}

func TestAdminSettingToggleLeavesVotesAlone(t *testing.T) {
	m := newTestAdminModel(makeTestParty())
	m = adminCursorTo(m, aSetting, settingDateVoting)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.party.Settings.Dates.VotingEnabled {
		t.Error("expected date voting toggled off")
	}
	if cmd == nil {
		t.Error("expected a settings command, got nil")
	}
	if len(m.party.Dates[0].Votes) != 1 {
		t.Errorf("toggling voting must not clear existing votes, got %v", m.party.Dates[0].Votes)
	}
}

func TestAdminSettingTogglesAreIndependent(t *testing.T) {
	m := newTestAdminModel(makeTestParty())

	m = adminCursorTo(m, aSetting, settingLocationOptions)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s := m.party.Settings
	if s.Locations.OptionsEnabled {
		t.Error("expected location suggestions toggled off")
	}
	if !s.Dates.VotingEnabled || !s.Dates.OptionsEnabled || !s.Locations.VotingEnabled {
		t.Errorf("expected only one switch to change, got %+v", s)
	}
}

func TestAdminEditLocationFlow(t *testing.T) {
	m := newTestAdminModel(makeTestParty())
	m = adminCursorTo(m, aLocation, 0)

	m, _ = m.Update(keyRunes("e"))
	if m.editTarget != adminEditLocation {
		t.Fatal("expected location edit mode")
	}
	if m.editInput != "the lakehouse" {
		t.Errorf("expected edit input prefilled, got %q", m.editInput)
	}

	for _, r := range " dock" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editTarget != adminEditNone {
		t.Error("expected edit mode closed after submit")
	}
	if cmd == nil {
		t.Error("expected an edit command, got nil")
	}
}

func TestAdminBannerShowsAdminLink(t *testing.T) {
	m := newTestAdminModel(makeTestParty())

	view := m.View()
	if !strings.Contains(view, "ADMIN ZONE") {
		t.Errorf("expected admin zone banner, got:\n%s", view)
	}
	if !strings.Contains(view, "secret-admin-code") {
		t.Errorf("expected admin link in banner, got:\n%s", view)
	}
}

func TestAdminStaleSnapshotDiscarded(t *testing.T) {
	m := newTestAdminModel(nil)

	fresh := makeTestParty()
	fresh.Supplies = fresh.Supplies[:1]
	m, _ = m.Update(adminLoadedMsg{party: fresh, seq: 2})

	m, _ = m.Update(adminLoadedMsg{party: makeTestParty(), seq: 1})
	if len(m.party.Supplies) != 1 {
		t.Errorf("stale snapshot overwrote a newer one: %d supplies", len(m.party.Supplies))
	}
}

func TestAdminNotFound(t *testing.T) {
	m := newTestAdminModel(nil)
	m, _ = m.Update(adminLoadedMsg{seq: 1, err: &client.HTTPError{StatusCode: 404, Message: "nope"}})

	view := m.View()
	if !strings.Contains(view, "admin code") {
		t.Errorf("expected not-found state in view, got:\n%s", view)
	}
}

func TestAdminSupplyQuantityDeleteAtOne(t *testing.T) {
	m := newTestAdminModel(makeTestParty())
	m = adminCursorTo(m, aSupply, 1) // speakers, quantity 1

	m, cmd := m.Update(keyRunes("-"))
	if len(m.party.Supplies) != 1 {
		t.Fatalf("expected supply removed, got %d supplies", len(m.party.Supplies))
	}
	if cmd == nil {
		t.Error("expected a delete command, got nil")
	}
}
