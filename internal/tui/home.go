package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/jamboree-events/jamboree/internal/localstore"
	"github.com/jamboree-events/jamboree/internal/logging"
)

const maxRecentParties = 8

// homeModel is the landing screen: join a party by code, revisit a recent
// one, or start planning a new one.
type homeModel struct {
	store    *localstore.Store
	username string

	codeInput    string
	inputFocused bool
	recent       []localstore.PartyRef
	cursor       int

	width  int
	height int
}

func newHomeModel(store *localstore.Store, username string) homeModel {
	m := homeModel{
		store:        store,
		username:     username,
		inputFocused: true,
	}
	m.reloadRecent()
	return m
}

func (m *homeModel) reloadRecent() {
	if m.store == nil {
		return
	}
	recent, err := m.store.RecentParties(maxRecentParties)
	if err != nil {
		logging.Log.Warn("recent parties unavailable", zap.Error(err))
		return
	}
	m.recent = recent
	if m.cursor >= len(m.recent) && len(m.recent) > 0 {
		m.cursor = len(m.recent) - 1
	}
}

func (m homeModel) editing() bool {
	return m.inputFocused
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inputFocused {
			return m.updateInputKeys(msg)
		}
		return m.updateListKeys(msg)
	}
	return m, nil
}

func (m homeModel) updateInputKeys(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.inputFocused = false
		return m, nil
	case "enter":
		code := strings.TrimSpace(m.codeInput)
		if code == "" {
			return m, nil
		}
		return m, func() tea.Msg { return gotoPartyMsg{name: code} }
	default:
		m.codeInput = editRune(m.codeInput, msg.String())
		return m, nil
	}
}

func (m homeModel) updateListKeys(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.inputFocused = true
		return m, nil
	case "j", "down":
		if m.cursor < len(m.recent)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter":
		if m.cursor >= len(m.recent) {
			return m, nil
		}
		ref := m.recent[m.cursor]
		if ref.Role == localstore.RoleAdmin && ref.AdminCode != "" {
			return m, func() tea.Msg { return gotoAdminMsg{code: ref.AdminCode} }
		}
		return m, func() tea.Msg { return gotoPartyMsg{name: ref.Name} }
	case "n":
		return m, func() tea.Msg { return gotoCreateMsg{} }
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, " %s %s\n\n",
		metaStyle.Render("planning as"),
		UserStyle(m.username).Render(m.username))

	prompt := inputPromptStyle.Render("party code ")
	input := m.codeInput
	if m.inputFocused {
		input += accentStyle.Render("█")
	}
	if m.codeInput == "" {
		input += " " + inputPlaceholderStyle.Render("brave-red-fox")
	}
	fmt.Fprintf(&b, " %s%s\n", prompt, input)

	if len(m.recent) > 0 {
		fmt.Fprintf(&b, "\n %s\n", sectionHeaderStyle.Render("Recent parties"))
		for i, ref := range m.recent {
			cursor := " "
			if !m.inputFocused && i == m.cursor {
				cursor = accentStyle.Render(">")
			}
			role := ""
			if ref.Role == localstore.RoleAdmin {
				role = softAccentStyle.Render(" (host)")
			}
			fmt.Fprintf(&b, " %s %s%s  %s\n", cursor,
				normalStyle.Render(ref.Name), role,
				metaStyle.Render(humanize.Time(ref.VisitedAt)))
		}
	}

	fmt.Fprintf(&b, "\n %s\n", dimStyle.Render("n plans a new party · u changes your name"))
	return b.String()
}

func (m homeModel) helpKeys() string {
	if m.inputFocused {
		return helpEntry("enter", "join") + "  " + helpEntry("tab", "recent") + "  " +
			helpEntry("q", "quit")
	}
	return helpEntry("j/k", "move") + "  " + helpEntry("enter", "open") + "  " +
		helpEntry("n", "new party") + "  " + helpEntry("u", "name") + "  " +
		helpEntry("tab", "code") + "  " + helpEntry("q", "quit")
}
