package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jamboree-events/jamboree/pkg/domain"
)

// CreatePartyRequest is the payload for creating a new party.
type CreatePartyRequest struct {
	Name      string             `json:"name"`
	Creator   string             `json:"creator"`
	AdminCode string             `json:"adminCode"`
	Settings  domain.Settings    `json:"settings"`
	Dates     []time.Time        `json:"dates,omitempty"`
	Locations []string           `json:"locations,omitempty"`
	Supplies  []AddSupplyRequest `json:"supplies,omitempty"`
}

// AddSupplyRequest is the payload for creating a supply item. New supplies
// always start with quantity 1 and no assignee.
type AddSupplyRequest struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	IsUrgent bool   `json:"isUrgent"`
}

// SettingsPatch is a field-level update to a party's settings. Nil fields are
// left unchanged, so two admins editing different flags never clobber each
// other.
type SettingsPatch struct {
	DateVoting      *bool `json:"dateVoting,omitempty"`
	DateOptions     *bool `json:"dateOptions,omitempty"`
	LocationVoting  *bool `json:"locationVoting,omitempty"`
	LocationOptions *bool `json:"locationOptions,omitempty"`
}

// Client is the Jamboree party store client.
type Client struct {
	baseURL    string
	adminCode  string
	httpClient *http.Client
}

// New creates a new party store client.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithAdminCode returns a copy of the client that presents the given admin
// code on every request. Admin-scoped mutations are rejected without it.
func (c *Client) WithAdminCode(code string) *Client {
	clone := *c
	clone.adminCode = code
	return &clone
}

// GetParty fetches a party by its shareable name. The response never carries
// the admin code.
func (c *Client) GetParty(ctx context.Context, name string) (*domain.Party, error) {
	var p domain.Party
	if err := c.get(ctx, "/api/parties/"+url.PathEscape(name), &p); err != nil {
		return nil, fmt.Errorf("client.GetParty: %w", err)
	}
	return &p, nil
}

// GetPartyByAdminCode looks a party up by its admin code. The response
// includes the admin code, confirming the caller's privileged view.
func (c *Client) GetPartyByAdminCode(ctx context.Context, code string) (*domain.Party, error) {
	var p domain.Party
	if err := c.get(ctx, "/api/parties/admin/"+url.PathEscape(code), &p); err != nil {
		return nil, fmt.Errorf("client.GetPartyByAdminCode: %w", err)
	}
	return &p, nil
}

// CreateParty creates a new party. The server answers 409 when the name is
// already taken; see CreatePartyGeneratedName for the retry loop.
func (c *Client) CreateParty(ctx context.Context, req CreatePartyRequest) (*domain.Party, error) {
	var created domain.Party
	if err := c.post(ctx, "/api/parties", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateParty: %w", err)
	}
	return &created, nil
}

// maxNameAttempts bounds the collision retry loop so a pathological server
// cannot spin it forever.
const maxNameAttempts = 32

// CreatePartyGeneratedName creates a party, regenerating the candidate name
// with gen and retrying whenever the store reports a name collision.
func (c *Client) CreatePartyGeneratedName(ctx context.Context, gen func() string, req CreatePartyRequest) (*domain.Party, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if req.Name == "" {
			req.Name = gen()
		}
		created, err := c.CreateParty(ctx, req)
		if err == nil {
			return created, nil
		}
		if !IsNameTaken(err) {
			return nil, err
		}
		req.Name = gen()
	}
	return nil, fmt.Errorf("client.CreatePartyGeneratedName: no free party name after %d attempts", maxNameAttempts)
}

// UpdatePartySettings applies a partial settings update. Admin-scoped.
func (c *Client) UpdatePartySettings(ctx context.Context, name string, patch SettingsPatch) (*domain.Party, error) {
	var p domain.Party
	if err := c.doRequest(ctx, http.MethodPatch, "/api/parties/"+url.PathEscape(name)+"/settings", patch, &p); err != nil {
		return nil, fmt.Errorf("client.UpdatePartySettings: %w", err)
	}
	return &p, nil
}

// --- Date options ---

// AddDateOption appends a new date candidate to the party.
func (c *Client) AddDateOption(ctx context.Context, partyName string, date time.Time) (*domain.DateOption, error) {
	var opt domain.DateOption
	if err := c.post(ctx, "/api/parties/"+url.PathEscape(partyName)+"/dates", map[string]time.Time{"date": date}, &opt); err != nil {
		return nil, fmt.Errorf("client.AddDateOption: %w", err)
	}
	return &opt, nil
}

// EditDateOption changes the timestamp of an existing date option. Admin-scoped.
func (c *Client) EditDateOption(ctx context.Context, id uuid.UUID, date time.Time) (*domain.DateOption, error) {
	var opt domain.DateOption
	if err := c.doRequest(ctx, http.MethodPut, "/api/dates/"+id.String(), map[string]time.Time{"date": date}, &opt); err != nil {
		return nil, fmt.Errorf("client.EditDateOption: %w", err)
	}
	return &opt, nil
}

// ToggleDateVote toggles username's vote on a date option and returns the
// updated vote list.
func (c *Client) ToggleDateVote(ctx context.Context, id uuid.UUID, username string) ([]string, error) {
	var out voteListResponse
	if err := c.post(ctx, "/api/dates/"+id.String()+"/votes", map[string]string{"username": username}, &out); err != nil {
		return nil, fmt.Errorf("client.ToggleDateVote: %w", err)
	}
	return out.Votes, nil
}

// --- Location options ---

// AddLocationOption appends a new location candidate to the party.
func (c *Client) AddLocationOption(ctx context.Context, partyName, location string) (*domain.LocationOption, error) {
	var opt domain.LocationOption
	if err := c.post(ctx, "/api/parties/"+url.PathEscape(partyName)+"/locations", map[string]string{"location": location}, &opt); err != nil {
		return nil, fmt.Errorf("client.AddLocationOption: %w", err)
	}
	return &opt, nil
}

// EditLocationOption changes the text of an existing location option. Admin-scoped.
func (c *Client) EditLocationOption(ctx context.Context, id uuid.UUID, location string) (*domain.LocationOption, error) {
	var opt domain.LocationOption
	if err := c.doRequest(ctx, http.MethodPut, "/api/locations/"+id.String(), map[string]string{"location": location}, &opt); err != nil {
		return nil, fmt.Errorf("client.EditLocationOption: %w", err)
	}
	return &opt, nil
}

// ToggleLocationVote toggles username's vote on a location option and returns
// the updated vote list.
func (c *Client) ToggleLocationVote(ctx context.Context, id uuid.UUID, username string) ([]string, error) {
	var out voteListResponse
	if err := c.post(ctx, "/api/locations/"+id.String()+"/votes", map[string]string{"username": username}, &out); err != nil {
		return nil, fmt.Errorf("client.ToggleLocationVote: %w", err)
	}
	return out.Votes, nil
}

// --- Supplies ---

// AddSupply creates a new supply entry with quantity 1 and no assignee.
func (c *Client) AddSupply(ctx context.Context, partyName string, req AddSupplyRequest) (*domain.Supply, error) {
	var s domain.Supply
	if err := c.post(ctx, "/api/parties/"+url.PathEscape(partyName)+"/supplies", req, &s); err != nil {
		return nil, fmt.Errorf("client.AddSupply: %w", err)
	}
	return &s, nil
}

// EditSupply applies a field-level patch to a supply. Callers must route
// quantity-zero patches to DeleteSupply instead; quantity is never persisted
// at zero.
func (c *Client) EditSupply(ctx context.Context, id uuid.UUID, patch domain.SupplyPatch) (*domain.Supply, error) {
	var s domain.Supply
	if err := c.doRequest(ctx, http.MethodPatch, "/api/supplies/"+id.String(), patch, &s); err != nil {
		return nil, fmt.Errorf("client.EditSupply: %w", err)
	}
	return &s, nil
}

// DeleteSupply removes a supply entry.
func (c *Client) DeleteSupply(ctx context.Context, id uuid.UUID) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/supplies/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteSupply: %w", err)
	}
	return nil
}

type voteListResponse struct {
	Votes []string `json:"votes"`
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminCode != "" {
		req.Header.Set("X-Admin-Code", c.adminCode)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
