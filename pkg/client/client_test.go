package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jamboree-events/jamboree/pkg/domain"
)

func TestGetParty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/parties/brave-red-fox" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(domain.Party{ //nolint:errcheck
			Name:    "brave-red-fox",
			Creator: "alice",
			Settings: domain.Settings{
				Dates: domain.CategorySettings{VotingEnabled: true, OptionsEnabled: true},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.GetParty(context.Background(), "brave-red-fox")
	if err != nil {
		t.Fatalf("GetParty() error: %v", err)
	}
	if p.Name != "brave-red-fox" {
		t.Errorf("Name = %q, want %q", p.Name, "brave-red-fox")
	}
	if p.Creator != "alice" {
		t.Errorf("Creator = %q, want %q", p.Creator, "alice")
	}
	if p.AdminCode != "" {
		t.Errorf("AdminCode = %q, want empty on guest lookup", p.AdminCode)
	}
}

func TestGetParty_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "party not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetParty(context.Background(), "no-such-party")
	if err == nil {
		t.Fatal("expected error for missing party")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
	if IsNameTaken(err) {
		t.Errorf("IsNameTaken(%v) = true, want false", err)
	}
}

func TestGetPartyByAdminCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/parties/admin/") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(domain.Party{Name: "brave-red-fox", AdminCode: "secret-code"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.GetPartyByAdminCode(context.Background(), "secret-code")
	if err != nil {
		t.Fatalf("GetPartyByAdminCode() error: %v", err)
	}
	if p.AdminCode != "secret-code" {
		t.Errorf("AdminCode = %q, want %q", p.AdminCode, "secret-code")
	}
}

func TestCreatePartyGeneratedName_Collision(t *testing.T) {
	var attempted []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreatePartyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		attempted = append(attempted, req.Name)
		if req.Name == "brave-red-fox" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "name already taken"}) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Party{Name: req.Name, Creator: req.Creator}) //nolint:errcheck
	}))
	defer srv.Close()

	names := []string{"brave-red-fox", "calm-blue-owl"}
	i := 0
	gen := func() string {
		n := names[i%len(names)]
		i++
		return n
	}

	c := New(srv.URL)
	p, err := c.CreatePartyGeneratedName(context.Background(), gen, CreatePartyRequest{Creator: "alice"})
	if err != nil {
		t.Fatalf("CreatePartyGeneratedName() error: %v", err)
	}
	if p.Name != "calm-blue-owl" {
		t.Errorf("created name = %q, want %q", p.Name, "calm-blue-owl")
	}
	if len(attempted) != 2 {
		t.Errorf("attempts = %v, want exactly two", attempted)
	}
}

func TestCreatePartyGeneratedName_NonCollisionErrorStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreatePartyGeneratedName(context.Background(), func() string { return "any-name" }, CreatePartyRequest{})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on non-collision errors)", calls)
	}
}

func TestUpdatePartySettings_AdminHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Admin-Code") != "secret-code" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin code required"}) //nolint:errcheck
			return
		}
		var patch SettingsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if patch.DateVoting == nil || *patch.DateVoting {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if patch.DateOptions != nil || patch.LocationVoting != nil || patch.LocationOptions != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.Party{Name: "brave-red-fox"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.UpdatePartySettings(context.Background(), "brave-red-fox", SettingsPatch{DateVoting: domain.Ptr(false)}); err == nil {
		t.Fatal("expected error without admin code")
	}

	admin := c.WithAdminCode("secret-code")
	if _, err := admin.UpdatePartySettings(context.Background(), "brave-red-fox", SettingsPatch{DateVoting: domain.Ptr(false)}); err != nil {
		t.Fatalf("UpdatePartySettings() error: %v", err)
	}
}

func TestToggleDateVote(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dates/"+id.String()+"/votes" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string][]string{"votes": {req.Username}}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	votes, err := c.ToggleDateVote(context.Background(), id, "alice")
	if err != nil {
		t.Fatalf("ToggleDateVote() error: %v", err)
	}
	if len(votes) != 1 || votes[0] != "alice" {
		t.Errorf("votes = %v, want [alice]", votes)
	}
}

func TestEditSupply_PatchBody(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Only the patched field may appear in the body.
		if _, ok := raw["quantity"]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := raw["name"]; ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.Supply{ID: id, Name: "Firewood", Quantity: 2}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.EditSupply(context.Background(), id, domain.SupplyPatch{Quantity: domain.Ptr(2)})
	if err != nil {
		t.Fatalf("EditSupply() error: %v", err)
	}
	if s.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", s.Quantity)
	}
}

func TestDeleteSupply(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/supplies/"+id.String() {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.DeleteSupply(context.Background(), id); err != nil {
		t.Fatalf("DeleteSupply() error: %v", err)
	}
}

func TestAddDateOption(t *testing.T) {
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/parties/brave-red-fox/dates" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Date time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.DateOption{ID: uuid.New(), Date: req.Date}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	opt, err := c.AddDateOption(context.Background(), "brave-red-fox", when)
	if err != nil {
		t.Fatalf("AddDateOption() error: %v", err)
	}
	if !opt.Date.Equal(when) {
		t.Errorf("Date = %v, want %v", opt.Date, when)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second)               // slow server
		json.NewEncoder(w).Encode(domain.Party{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.GetParty(ctx, "brave-red-fox")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
