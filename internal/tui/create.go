package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jamboree-events/jamboree/internal/names"
	"github.com/jamboree-events/jamboree/pkg/client"
	"github.com/jamboree-events/jamboree/pkg/domain"
)

// Create form focus order.
const (
	createFocusName = iota
	createFocusDate
	createFocusLocation
	createFocusDateVoting
	createFocusDateOptions
	createFocusLocationVoting
	createFocusLocationOptions
	createFocusCount
)

// partyCreatedMsg reports the result of a create submission.
type partyCreatedMsg struct {
	party     *domain.Party
	adminCode string
	err       error
}

// createModel is the plan-a-party form: a pre-generated party code, an
// optional first date and location, and the four guest settings.
type createModel struct {
	client   *client.Client
	username string
	gen      *names.Generator

	name          string
	dateInput     string
	locationInput string
	settings      domain.Settings

	focus      int
	submitting bool
	errMsg     string

	width  int
	height int
}

func newCreateModel(c *client.Client, username string, gen *names.Generator) createModel {
	return createModel{
		client:   c,
		username: username,
		gen:      gen,
		name:     gen.Generate(),
		settings: domain.Settings{
			Dates:     domain.CategorySettings{VotingEnabled: true, OptionsEnabled: true},
			Locations: domain.CategorySettings{VotingEnabled: true, OptionsEnabled: true},
		},
	}
}

func (m createModel) Init() tea.Cmd {
	return nil
}

// editing is always true here: the whole screen is a form, so single-letter
// global keys must never fire. esc leaves the form explicitly.
func (m createModel) editing() bool {
	return true
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case partyCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = "couldn't create the party: " + msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return gotoAdminMsg{code: msg.adminCode, party: msg.party}
		}

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return gotoHomeMsg{} }
	case "tab", "down":
		m.focus = (m.focus + 1) % createFocusCount
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + createFocusCount - 1) % createFocusCount
		return m, nil
	case "ctrl+r":
		m.name = m.gen.Generate()
		return m, nil
	case "ctrl+y":
		if err := clipboard.WriteAll(m.name); err != nil {
			m.errMsg = "couldn't reach the clipboard"
		}
		return m, nil
	case "ctrl+s", "enter":
		if msg.String() == "enter" && m.focus < createFocusDateVoting {
			// Enter advances through the text fields; ctrl+s submits anywhere.
			m.focus++
			return m, nil
		}
		return m.submit()
	case " ":
		switch m.focus {
		case createFocusDateVoting:
			m.settings.Dates.VotingEnabled = !m.settings.Dates.VotingEnabled
		case createFocusDateOptions:
			m.settings.Dates.OptionsEnabled = !m.settings.Dates.OptionsEnabled
		case createFocusLocationVoting:
			m.settings.Locations.VotingEnabled = !m.settings.Locations.VotingEnabled
		case createFocusLocationOptions:
			m.settings.Locations.OptionsEnabled = !m.settings.Locations.OptionsEnabled
		default:
			m = m.editFocused(msg.String())
		}
		return m, nil
	default:
		m = m.editFocused(msg.String())
		return m, nil
	}
}

func (m createModel) editFocused(key string) createModel {
	switch m.focus {
	case createFocusDate:
		m.dateInput = editRune(m.dateInput, key)
	case createFocusLocation:
		m.locationInput = editRune(m.locationInput, key)
	}
	return m
}

func (m createModel) submit() (createModel, tea.Cmd) {
	req := client.CreatePartyRequest{
		Name:      m.name,
		Creator:   m.username,
		AdminCode: uuid.NewString(),
		Settings:  m.settings,
	}

	if v := strings.TrimSpace(m.dateInput); v != "" {
		when, err := parseDateInput(v)
		if err != nil {
			m.errMsg = err.Error()
			m.focus = createFocusDate
			return m, nil
		}
		req.Dates = []time.Time{when}
	}
	if v := strings.TrimSpace(m.locationInput); v != "" {
		req.Locations = []string{v}
	}

	m.errMsg = ""
	m.submitting = true

	c, gen := m.client, m.gen.Generate
	return m, func() tea.Msg {
		party, err := c.CreatePartyGeneratedName(context.Background(), gen, req)
		return partyCreatedMsg{party: party, adminCode: req.AdminCode, err: err}
	}
}

func (m createModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, " %s\n\n", sectionHeaderStyle.Render("Plan a party"))

	fmt.Fprintf(&b, " %s %s  %s\n",
		m.focusMarker(createFocusName),
		metaStyle.Render("party code"),
		accentStyle.Render(m.name))
	if m.focus == createFocusName {
		fmt.Fprintf(&b, "     %s\n", dimStyle.Render("ctrl+r rolls a new one"))
	}

	b.WriteString(m.renderTextField(createFocusDate, "first date", m.dateInput, "2026-09-12 18:00"))
	b.WriteString(m.renderTextField(createFocusLocation, "first location", m.locationInput, "where's the fun?"))
	b.WriteString("\n")

	b.WriteString(m.renderToggle(createFocusDateVoting, "guests can vote on dates", m.settings.Dates.VotingEnabled))
	b.WriteString(m.renderToggle(createFocusDateOptions, "guests can suggest dates", m.settings.Dates.OptionsEnabled))
	b.WriteString(m.renderToggle(createFocusLocationVoting, "guests can vote on locations", m.settings.Locations.VotingEnabled))
	b.WriteString(m.renderToggle(createFocusLocationOptions, "guests can suggest locations", m.settings.Locations.OptionsEnabled))

	b.WriteString("\n")
	if m.submitting {
		fmt.Fprintf(&b, " %s\n", softAccentStyle.Render("creating the party..."))
	}
	if m.errMsg != "" {
		fmt.Fprintf(&b, " %s\n", errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m createModel) focusMarker(focus int) string {
	if m.focus == focus {
		return accentStyle.Render(">")
	}
	return " "
}

func (m createModel) renderTextField(focus int, label, value, placeholder string) string {
	rendered := value
	if m.focus == focus {
		rendered += accentStyle.Render("█")
	}
	if value == "" {
		rendered += " " + inputPlaceholderStyle.Render(placeholder)
	}
	return fmt.Sprintf(" %s %s  %s\n", m.focusMarker(focus), metaStyle.Render(label), rendered)
}

func (m createModel) renderToggle(focus int, label string, on bool) string {
	state := dimStyle.Render("[ ] off")
	if on {
		state = claimedStyle.Render("[x] on ")
	}
	return fmt.Sprintf(" %s %s %s\n", m.focusMarker(focus), state, normalStyle.Render(label))
}

func (m createModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("space", "toggle") + "  " +
		helpEntry("ctrl+r", "new code") + "  " + helpEntry("ctrl+y", "copy code") + "  " +
		helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "home")
}
