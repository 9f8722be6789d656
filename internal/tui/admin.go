package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamboree-events/jamboree/internal/emoji"
	"github.com/jamboree-events/jamboree/internal/logging"
	"github.com/jamboree-events/jamboree/pkg/client"
	"github.com/jamboree-events/jamboree/pkg/domain"
)

type adminTickMsg time.Time

func adminTickCmd() tea.Cmd {
	return tea.Tick(partyPollInterval, func(t time.Time) tea.Msg {
		return adminTickMsg(t)
	})
}

type adminLoadedMsg struct {
	party *domain.Party
	seq   uint64
	err   error
}

type adminMutatedMsg struct {
	err error
}

type adminItemKind int

const (
	aSetting adminItemKind = iota
	aDate
	aAddDate
	aLocation
	aAddLocation
	aSupply
	aAddSupply
)

type adminItem struct {
	kind  adminItemKind
	index int
}

// Setting rows, in display order.
const (
	settingDateVoting = iota
	settingDateOptions
	settingLocationVoting
	settingLocationOptions
	settingCount
)

type adminEditTarget int

const (
	adminEditNone adminEditTarget = iota
	adminAddDate
	adminAddLocation
	adminAddSupply
	adminEditDate
	adminEditLocation
)

// adminModel is the host view of a party: everything a guest can do, plus
// per-category settings and editing existing options.
type adminModel struct {
	client    *client.Client
	adminCode string
	username  string
	webURL    string

	party    *domain.Party
	notFound bool
	loading  bool

	nextSeq    uint64
	appliedSeq uint64

	cursor int
	status string
	errMsg string

	editTarget adminEditTarget
	editID     uuid.UUID
	editInput  string
	addUrgent  bool
	addEmoji   string
	rng        *rand.Rand

	width  int
	height int
}

// newAdminModel builds the host view. party may be non-nil when the caller
// already holds a fresh snapshot, e.g. right after creating the party.
func newAdminModel(c *client.Client, adminCode, username, webURL string, party *domain.Party) adminModel {
	return adminModel{
		client:    c.WithAdminCode(adminCode),
		adminCode: adminCode,
		username:  username,
		webURL:    webURL,
		party:     party,
		loading:   party == nil,
		nextSeq:   1,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m adminModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.nextSeq), adminTickCmd())
}

func (m adminModel) fetch(seq uint64) tea.Cmd {
	c, code := m.client, m.adminCode
	return func() tea.Msg {
		p, err := c.GetPartyByAdminCode(context.Background(), code)
		return adminLoadedMsg{party: p, seq: seq, err: err}
	}
}

func (m adminModel) refetch() (adminModel, tea.Cmd) {
	m.nextSeq++
	return m, m.fetch(m.nextSeq)
}

func (m adminModel) editing() bool {
	return m.editTarget != adminEditNone
}

func (m adminModel) items() []adminItem {
	if m.party == nil {
		return nil
	}
	var its []adminItem
	for i := 0; i < settingCount; i++ {
		its = append(its, adminItem{aSetting, i})
	}
	for i := range m.party.Dates {
		its = append(its, adminItem{aDate, i})
	}
	its = append(its, adminItem{aAddDate, 0})
	for i := range m.party.Locations {
		its = append(its, adminItem{aLocation, i})
	}
	its = append(its, adminItem{aAddLocation, 0})
	for i := range m.party.Supplies {
		its = append(its, adminItem{aSupply, i})
	}
	its = append(its, adminItem{aAddSupply, 0})
	return its
}

func (m adminModel) current() (adminItem, bool) {
	its := m.items()
	if m.cursor < 0 || m.cursor >= len(its) {
		return adminItem{}, false
	}
	return its[m.cursor], true
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminTickMsg:
		var cmd tea.Cmd
		m, cmd = m.refetch()
		return m, tea.Batch(cmd, adminTickCmd())

	case adminLoadedMsg:
		if msg.seq <= m.appliedSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if client.IsNotFound(msg.err) {
				m.appliedSeq = msg.seq
				m.party = nil
				m.notFound = true
				return m, nil
			}
			logging.Log.Warn("admin fetch failed", zap.Error(msg.err))
			m.errMsg = "can't reach the party right now"
			return m, nil
		}
		m.appliedSeq = msg.seq
		m.party = msg.party
		m.notFound = false
		m.errMsg = ""
		if its := m.items(); m.cursor >= len(its) && len(its) > 0 {
			m.cursor = len(its) - 1
		}
		return m, nil

	case adminMutatedMsg:
		if msg.err != nil {
			logging.Log.Warn("admin mutation failed", zap.Error(msg.err))
			m.status = "that didn't stick — the next refresh has the real state"
		}
		return m.refetch()

	case tea.KeyMsg:
		if m.editing() {
			return m.updateEditKeys(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m adminModel) updateKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter", " ":
		return m.activateCurrent()
	case "e":
		return m.startEditCurrent()
	case "+":
		return m.adjustQuantity(1)
	case "-":
		return m.adjustQuantity(-1)
	case "u":
		return m.toggleUrgent()
	case "y":
		if m.party == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(joinURL(m.webURL, m.party.Name)); err != nil {
			m.status = "couldn't reach the clipboard"
		} else {
			m.status = "join link copied"
		}
		return m, nil
	case "Y":
		if err := clipboard.WriteAll(adminURL(m.webURL, m.adminCode)); err != nil {
			m.status = "couldn't reach the clipboard"
		} else {
			m.status = "admin link copied — keep it secret"
		}
		return m, nil
	}
	return m, nil
}

func (m adminModel) activateCurrent() (adminModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || m.party == nil {
		return m, nil
	}

	switch it.kind {
	case aSetting:
		return m.toggleSetting(it.index)

	case aDate:
		// Hosts vote like everyone else; voting toggles are for guests.
		opt := &m.party.Dates[it.index]
		opt.Votes = domain.ToggleVote(opt.Votes, m.username)
		return m, m.toggleDateVoteCmd(opt.ID)

	case aLocation:
		opt := &m.party.Locations[it.index]
		opt.Votes = domain.ToggleVote(opt.Votes, m.username)
		return m, m.toggleLocationVoteCmd(opt.ID)

	case aSupply:
		s := &m.party.Supplies[it.index]
		next := domain.ToggleAssignee(s.Assignee, m.username)
		s.Assignee = next
		return m, m.editSupplyCmd(s.ID, domain.SupplyPatch{Assignee: domain.Ptr(next)})

	case aAddDate:
		m.editTarget = adminAddDate
		m.editInput = ""
	case aAddLocation:
		m.editTarget = adminAddLocation
		m.editInput = ""
	case aAddSupply:
		m.editTarget = adminAddSupply
		m.editInput = ""
		m.addUrgent = false
		m.addEmoji = emoji.Random(m.rng)
	}
	return m, nil
}

// toggleSetting flips one of the four per-category switches, optimistically
// and with a single-field patch so concurrent edits to the other switches
// survive.
func (m adminModel) toggleSetting(index int) (adminModel, tea.Cmd) {
	var patch client.SettingsPatch
	s := &m.party.Settings

	switch index {
	case settingDateVoting:
		s.Dates.VotingEnabled = !s.Dates.VotingEnabled
		patch.DateVoting = domain.Ptr(s.Dates.VotingEnabled)
	case settingDateOptions:
		s.Dates.OptionsEnabled = !s.Dates.OptionsEnabled
		patch.DateOptions = domain.Ptr(s.Dates.OptionsEnabled)
	case settingLocationVoting:
		s.Locations.VotingEnabled = !s.Locations.VotingEnabled
		patch.LocationVoting = domain.Ptr(s.Locations.VotingEnabled)
	case settingLocationOptions:
		s.Locations.OptionsEnabled = !s.Locations.OptionsEnabled
		patch.LocationOptions = domain.Ptr(s.Locations.OptionsEnabled)
	}

	c, name := m.client, m.party.Name
	return m, func() tea.Msg {
		_, err := c.UpdatePartySettings(context.Background(), name, patch)
		return adminMutatedMsg{err: err}
	}
}

func (m adminModel) startEditCurrent() (adminModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || m.party == nil {
		return m, nil
	}
	switch it.kind {
	case aDate:
		opt := m.party.Dates[it.index]
		m.editTarget = adminEditDate
		m.editID = opt.ID
		m.editInput = opt.Date.Local().Format("2006-01-02 15:04")
	case aLocation:
		opt := m.party.Locations[it.index]
		m.editTarget = adminEditLocation
		m.editID = opt.ID
		m.editInput = opt.Location
	}
	return m, nil
}

func (m adminModel) adjustQuantity(delta int) (adminModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || it.kind != aSupply || m.party == nil {
		return m, nil
	}
	s := m.party.Supplies[it.index]
	next := s.Quantity + delta

	if next <= 0 {
		m.party.Supplies = append(m.party.Supplies[:it.index], m.party.Supplies[it.index+1:]...)
		if its := m.items(); m.cursor >= len(its) && len(its) > 0 {
			m.cursor = len(its) - 1
		}
		return m, m.deleteSupplyCmd(s.ID)
	}

	m.party.Supplies[it.index].Quantity = next
	return m, m.editSupplyCmd(s.ID, domain.SupplyPatch{Quantity: domain.Ptr(next)})
}

func (m adminModel) toggleUrgent() (adminModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || it.kind != aSupply || m.party == nil {
		return m, nil
	}
	s := &m.party.Supplies[it.index]
	s.IsUrgent = !s.IsUrgent
	return m, m.editSupplyCmd(s.ID, domain.SupplyPatch{IsUrgent: domain.Ptr(s.IsUrgent)})
}

func (m adminModel) updateEditKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editTarget = adminEditNone
		m.editInput = ""
		return m, nil
	case "tab":
		if m.editTarget == adminAddSupply {
			m.addUrgent = !m.addUrgent
		}
		return m, nil
	case "ctrl+e":
		if m.editTarget == adminAddSupply {
			m.addEmoji = emoji.Random(m.rng)
		}
		return m, nil
	case "enter":
		return m.submitEdit()
	default:
		m.editInput = editRune(m.editInput, msg.String())
		return m, nil
	}
}

func (m adminModel) submitEdit() (adminModel, tea.Cmd) {
	value := strings.TrimSpace(m.editInput)
	if value == "" {
		m.status = "a value is required"
		return m, nil
	}

	target, id := m.editTarget, m.editID
	m.editTarget = adminEditNone
	m.editInput = ""
	c, name := m.client, m.party.Name

	switch target {
	case adminAddDate:
		when, err := parseDateInput(value)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			_, err := c.AddDateOption(context.Background(), name, when)
			return adminMutatedMsg{err: err}
		}
	case adminAddLocation:
		return m, func() tea.Msg {
			_, err := c.AddLocationOption(context.Background(), name, value)
			return adminMutatedMsg{err: err}
		}
	case adminAddSupply:
		emojiCode, urgent := m.addEmoji, m.addUrgent
		return m, func() tea.Msg {
			_, err := c.AddSupply(context.Background(), name, client.AddSupplyRequest{
				Name:     value,
				Emoji:    emojiCode,
				IsUrgent: urgent,
			})
			return adminMutatedMsg{err: err}
		}
	case adminEditDate:
		when, err := parseDateInput(value)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			_, err := c.EditDateOption(context.Background(), id, when)
			return adminMutatedMsg{err: err}
		}
	case adminEditLocation:
		return m, func() tea.Msg {
			_, err := c.EditLocationOption(context.Background(), id, value)
			return adminMutatedMsg{err: err}
		}
	}
	return m, nil
}

func (m adminModel) toggleDateVoteCmd(id uuid.UUID) tea.Cmd {
	c, user := m.client, m.username
	return func() tea.Msg {
		_, err := c.ToggleDateVote(context.Background(), id, user)
		return adminMutatedMsg{err: err}
	}
}

func (m adminModel) toggleLocationVoteCmd(id uuid.UUID) tea.Cmd {
	c, user := m.client, m.username
	return func() tea.Msg {
		_, err := c.ToggleLocationVote(context.Background(), id, user)
		return adminMutatedMsg{err: err}
	}
}

func (m adminModel) editSupplyCmd(id uuid.UUID, patch domain.SupplyPatch) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.EditSupply(context.Background(), id, patch)
		return adminMutatedMsg{err: err}
	}
}

func (m adminModel) deleteSupplyCmd(id uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return adminMutatedMsg{err: c.DeleteSupply(context.Background(), id)}
	}
}

// -- view --

func (m adminModel) View() string {
	if m.notFound {
		return "\n  " + dimStyle.Render("no party answers to that admin code") +
			"\n  " + metaStyle.Render("double-check the code, it is not the party code guests use")
	}
	if m.party == nil {
		if m.errMsg != "" {
			return "\n  " + errorStyle.Render(m.errMsg)
		}
		return "\n  " + dimStyle.Render("unlocking the admin zone...")
	}

	var b strings.Builder

	banner := sectionHeaderStyle.Render("ADMIN ZONE") + "  " + accentStyle.Render("#"+m.party.Name) + "\n" +
		metaStyle.Render("guests join with the party code — this link is yours alone:") + "\n" +
		softAccentStyle.Render(adminURL(m.webURL, m.adminCode)) + "  " + helpEntry("Y", "copy")
	b.WriteString(adminZoneStyle.Render(banner))
	b.WriteString("\n")
	if m.errMsg != "" {
		fmt.Fprintf(&b, " %s\n", errorStyle.Render("● "+m.errMsg))
	}
	b.WriteString("\n")

	lastKind := adminItemKind(-1)
	for i, it := range m.items() {
		if header := adminSectionHeaderFor(it.kind, lastKind); header != "" {
			fmt.Fprintf(&b, " %s\n", sectionHeaderStyle.Render(header))
		}
		lastKind = it.kind

		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render(">")
		}
		b.WriteString(m.renderItem(cursor, it))
	}

	if m.status != "" {
		fmt.Fprintf(&b, "\n %s\n", softAccentStyle.Render(m.status))
	}
	return b.String()
}

func adminSectionHeaderFor(kind, prev adminItemKind) string {
	section := func(k adminItemKind) int {
		switch k {
		case aSetting:
			return 0
		case aDate, aAddDate:
			return 1
		case aLocation, aAddLocation:
			return 2
		default:
			return 3
		}
	}
	if prev >= 0 && section(kind) == section(prev) {
		return ""
	}
	switch section(kind) {
	case 0:
		return "Settings"
	case 1:
		return "When?"
	case 2:
		return "Where?"
	default:
		return "Supplies"
	}
}

func (m adminModel) renderItem(cursor string, it adminItem) string {
	switch it.kind {
	case aSetting:
		return m.renderSetting(cursor, it.index)
	case aDate:
		opt := m.party.Dates[it.index]
		if m.editTarget == adminEditDate && m.editID == opt.ID {
			return " " + cursor + " " + inputPromptStyle.Render("edit ") + m.editInput + accentStyle.Render("█") + "\n"
		}
		return m.renderOption(cursor, formatDate(opt.Date), opt.Votes, m.party.TotalDateVotes())
	case aLocation:
		opt := m.party.Locations[it.index]
		if m.editTarget == adminEditLocation && m.editID == opt.ID {
			return " " + cursor + " " + inputPromptStyle.Render("edit ") + m.editInput + accentStyle.Render("█") + "\n"
		}
		return m.renderOption(cursor, truncStr(opt.Location, 48), opt.Votes, m.party.TotalLocationVotes())
	case aSupply:
		return m.renderSupply(cursor, m.party.Supplies[it.index])
	case aAddDate:
		return m.renderAddRow(cursor, adminAddDate, "new date option", "2026-09-12 18:00")
	case aAddLocation:
		return m.renderAddRow(cursor, adminAddLocation, "new location option", "a maps link works great")
	case aAddSupply:
		return m.renderAddRow(cursor, adminAddSupply, "new supply", "what should someone bring?")
	}
	return ""
}

func (m adminModel) renderSetting(cursor string, index int) string {
	labels := [settingCount]string{
		"guests can vote on dates",
		"guests can suggest dates",
		"guests can vote on locations",
		"guests can suggest locations",
	}
	values := [settingCount]bool{
		m.party.Settings.Dates.VotingEnabled,
		m.party.Settings.Dates.OptionsEnabled,
		m.party.Settings.Locations.VotingEnabled,
		m.party.Settings.Locations.OptionsEnabled,
	}

	state := dimStyle.Render("[ ] off")
	if values[index] {
		state = claimedStyle.Render("[x] on ")
	}
	return fmt.Sprintf(" %s %s %s\n", cursor, state, normalStyle.Render(labels[index]))
}

func (m adminModel) renderOption(cursor, label string, votes []string, total int) string {
	marker := " "
	style := normalStyle
	if domain.HasVote(votes, m.username) {
		marker = votedStyle.Render("♥")
		style = selectedStyle
	}
	line1 := fmt.Sprintf(" %s %s %s\n", cursor, marker, style.Render(label))
	line2 := fmt.Sprintf("     %s %s  %s\n",
		progressBar(len(votes), total, 20),
		metaStyle.Render(formatPercent(len(votes), total)),
		voterList(votes))
	return line1 + line2
}

func (m adminModel) renderSupply(cursor string, s domain.Supply) string {
	name := normalStyle.Render(s.Name)
	if s.IsUrgent {
		name = urgentStyle.Render(s.Name + " !")
	}
	claim := metaStyle.Render("unclaimed")
	if s.Assignee != "" {
		label := "claimed by " + s.Assignee
		if s.ClaimedBy(m.username) {
			label = "you've got this one"
		}
		claim = claimedStyle.Render(label)
	}
	return fmt.Sprintf(" %s %s %s %s  %s\n", cursor, emoji.Render(s.Emoji),
		dimStyle.Render(fmt.Sprintf("%d x", s.Quantity)), name, claim)
}

func (m adminModel) renderAddRow(cursor string, target adminEditTarget, label, placeholder string) string {
	if m.editTarget == target {
		line := " " + cursor + " " + inputPromptStyle.Render("+ ") + m.editInput + accentStyle.Render("█")
		if target == adminAddSupply {
			urgent := metaStyle.Render("not urgent (tab)")
			if m.addUrgent {
				urgent = urgentStyle.Render("urgent! (tab)")
			}
			line += "  " + emoji.Render(m.addEmoji) + " " + urgent
		}
		if m.editInput == "" {
			line += " " + inputPlaceholderStyle.Render(placeholder)
		}
		return line + "\n"
	}
	return fmt.Sprintf(" %s %s\n", cursor, dimStyle.Render("+ "+label))
}

func (m adminModel) helpKeys() string {
	if m.editing() {
		if m.editTarget == adminAddSupply {
			return helpEntry("enter", "save") + "  " + helpEntry("tab", "urgent") + "  " +
				helpEntry("ctrl+e", "emoji") + "  " + helpEntry("esc", "cancel")
		}
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "move") + "  " + helpEntry("enter", "toggle/vote") + "  " +
		helpEntry("e", "edit") + "  " + helpEntry("+/-", "qty") + "  " +
		helpEntry("Y", "admin link") + "  " + helpEntry("esc", "home")
}
