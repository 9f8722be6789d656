package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamboree-events/jamboree/internal/localstore"
	"github.com/jamboree-events/jamboree/pkg/client"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})
	a := NewApp(Config{
		Client:   client.New("http://127.0.0.1:0"),
		Store:    store,
		WebURL:   "https://jamboree.party",
		Version:  "test",
		Username: "brave-red-fox",
		Scheme:   "dark",
	})
	a.width = 80
	a.height = 40
	return a
}

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	next, ok := model.(App)
	if !ok {
		t.Fatalf("expected App model, got %T", model)
	}
	return next, cmd
}

func TestAppStartsAtHome(t *testing.T) {
	a := newTestApp(t)
	if a.view != viewHome {
		t.Errorf("expected home view, got %d", a.view)
	}
	if !strings.Contains(a.View(), "brave-red-fox") {
		t.Error("expected username on the home screen")
	}
}

func TestAppJoinNavigatesToParty(t *testing.T) {
	a := newTestApp(t)
	a, cmd := updateApp(t, a, gotoPartyMsg{name: "disco-inferno"})
	if a.view != viewParty {
		t.Fatalf("expected party view, got %d", a.view)
	}
	if cmd == nil {
		t.Error("expected the party view to start polling")
	}

	// The visit lands in the recent list for next time.
	recent, err := a.store.RecentParties(5)
	if err != nil {
		t.Fatalf("recent parties: %v", err)
	}
	if len(recent) != 1 || recent[0].Name != "disco-inferno" || recent[0].Role != localstore.RoleGuest {
		t.Errorf("expected disco-inferno remembered as guest, got %+v", recent)
	}
}

func TestAppCreatedPartyRemembersAdmin(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, gotoAdminMsg{code: "secret-admin-code", party: makeTestParty()})
	if a.view != viewAdmin {
		t.Fatalf("expected admin view, got %d", a.view)
	}

	recent, err := a.store.RecentParties(5)
	if err != nil {
		t.Fatalf("recent parties: %v", err)
	}
	if len(recent) != 1 || recent[0].Role != localstore.RoleAdmin || recent[0].AdminCode != "secret-admin-code" {
		t.Errorf("expected the party remembered as admin, got %+v", recent)
	}
}

func TestAppAdminRememberedAfterLookup(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, gotoAdminMsg{code: "secret-admin-code"})

	a, _ = updateApp(t, a, adminLoadedMsg{party: makeTestParty(), seq: 1})
	recent, err := a.store.RecentParties(5)
	if err != nil {
		t.Fatalf("recent parties: %v", err)
	}
	if len(recent) != 1 || recent[0].Name != "disco-inferno" || recent[0].Role != localstore.RoleAdmin {
		t.Errorf("expected the party remembered once its name resolved, got %+v", recent)
	}
}

func TestAppEscReturnsHome(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, gotoPartyMsg{name: "disco-inferno"})

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.view != viewHome {
		t.Errorf("expected home after esc, got %d", a.view)
	}
}

func TestAppSchemeToggle(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, gotoPartyMsg{name: "disco-inferno"})

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlT})
	if a.scheme != "light" {
		t.Errorf("expected light scheme, got %q", a.scheme)
	}
	scheme, err := a.store.ColorScheme()
	if err != nil {
		t.Fatalf("color scheme: %v", err)
	}
	if scheme != "light" {
		t.Errorf("expected scheme persisted, got %q", scheme)
	}
}

func TestAppUsernamePrompt(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab}) // leave the code input
	a, _ = updateApp(t, a, keyRunes("u"))
	if !a.promptOpen {
		t.Fatal("expected the username prompt to open")
	}

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	for _, r := range "x" {
		a, _ = updateApp(t, a, keyRunes(string(r)))
	}
	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.promptOpen {
		t.Fatal("expected the prompt closed after save")
	}
	if !strings.HasSuffix(a.username, "x") {
		t.Errorf("expected edited username, got %q", a.username)
	}

	saved, err := a.store.Username()
	if err != nil {
		t.Fatalf("username: %v", err)
	}
	if saved != a.username {
		t.Errorf("expected username persisted, got %q vs %q", saved, a.username)
	}
}

func TestAppUsernamePromptRejectsEmpty(t *testing.T) {
	a := newTestApp(t)
	a.promptOpen = true
	a.promptInput = "   "

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.promptOpen {
		t.Error("expected the prompt to stay open for an empty name")
	}
	if a.promptErr == "" {
		t.Error("expected a validation message")
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit on ctrl+c")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppStartFlags(t *testing.T) {
	a := NewApp(Config{
		Client:     client.New("http://127.0.0.1:0"),
		WebURL:     "https://jamboree.party",
		Username:   "brave-red-fox",
		StartParty: "disco-inferno",
	})
	if a.view != viewParty {
		t.Errorf("expected party view at startup, got %d", a.view)
	}

	a = NewApp(Config{
		Client:      client.New("http://127.0.0.1:0"),
		Username:    "brave-red-fox",
		StartCreate: true,
	})
	if a.view != viewCreate {
		t.Errorf("expected create view at startup, got %d", a.view)
	}
}
