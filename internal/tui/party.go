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
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/jamboree-events/jamboree/internal/emoji"
	"github.com/jamboree-events/jamboree/internal/logging"
	"github.com/jamboree-events/jamboree/pkg/client"
	"github.com/jamboree-events/jamboree/pkg/domain"
)

// partyPollInterval is how often the party snapshot refreshes to pick up
// other guests' changes. There is no push channel; this is the staleness
// window.
const partyPollInterval = 500 * time.Millisecond

// partyTickMsg fires on each poll interval.
type partyTickMsg time.Time

func partyTickCmd() tea.Cmd {
	return tea.Tick(partyPollInterval, func(t time.Time) tea.Msg {
		return partyTickMsg(t)
	})
}

// partyLoadedMsg carries a party snapshot. seq orders responses so a slow
// in-flight poll can never overwrite a newer snapshot.
type partyLoadedMsg struct {
	party *domain.Party
	seq   uint64
	err   error
}

// partyMutatedMsg carries the result of a mutation; every mutation is
// followed by a refetch regardless of outcome.
type partyMutatedMsg struct {
	err error
}

type itemKind int

const (
	itemDate itemKind = iota
	itemAddDate
	itemLocation
	itemAddLocation
	itemSupply
	itemAddSupply
)

// partyItem is one cursor-addressable row in the guest view.
type partyItem struct {
	kind  itemKind
	index int
}

type addTarget int

const (
	addNone addTarget = iota
	addDate
	addLocation
	addSupply
)

// partyModel is the guest view of a party: vote on dates and locations,
// claim and manage supplies.
type partyModel struct {
	client    *client.Client
	username  string
	partyName string
	webURL    string

	party    *domain.Party
	notFound bool
	loading  bool

	// Poll ordering: nextSeq stamps outgoing fetches, appliedSeq is the
	// newest snapshot applied. Stale responses are discarded.
	nextSeq    uint64
	appliedSeq uint64

	cursor      int
	status      string
	errMsg      string
	hintVisible bool

	adding    addTarget
	addInput  string
	addUrgent bool
	addEmoji  string
	rng       *rand.Rand

	width  int
	height int
}

func newPartyModel(c *client.Client, username, partyName, webURL string) partyModel {
	return partyModel{
		client:      c,
		username:    username,
		partyName:   partyName,
		webURL:      webURL,
		loading:     true,
		nextSeq:     1,
		hintVisible: true,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m partyModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.nextSeq), partyTickCmd())
}

func (m partyModel) fetch(seq uint64) tea.Cmd {
	c, name := m.client, m.partyName
	return func() tea.Msg {
		p, err := c.GetParty(context.Background(), name)
		return partyLoadedMsg{party: p, seq: seq, err: err}
	}
}

// refetch issues a fresh fetch with the next sequence number.
func (m partyModel) refetch() (partyModel, tea.Cmd) {
	m.nextSeq++
	return m, m.fetch(m.nextSeq)
}

func (m partyModel) editing() bool {
	return m.adding != addNone
}

// items flattens the party into cursor-addressable rows. New-option rows only
// exist while guest suggestions are enabled; the new-supply row is always
// present.
func (m partyModel) items() []partyItem {
	if m.party == nil {
		return nil
	}
	var its []partyItem
	for i := range m.party.Dates {
		its = append(its, partyItem{itemDate, i})
	}
	if m.party.Settings.Dates.OptionsEnabled {
		its = append(its, partyItem{itemAddDate, 0})
	}
	for i := range m.party.Locations {
		its = append(its, partyItem{itemLocation, i})
	}
	if m.party.Settings.Locations.OptionsEnabled {
		its = append(its, partyItem{itemAddLocation, 0})
	}
	for i := range m.party.Supplies {
		its = append(its, partyItem{itemSupply, i})
	}
	its = append(its, partyItem{itemAddSupply, 0})
	return its
}

func (m partyModel) current() (partyItem, bool) {
	its := m.items()
	if m.cursor < 0 || m.cursor >= len(its) {
		return partyItem{}, false
	}
	return its[m.cursor], true
}

func (m partyModel) Update(msg tea.Msg) (partyModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case partyTickMsg:
		var cmd tea.Cmd
		m, cmd = m.refetch()
		return m, tea.Batch(cmd, partyTickCmd())

	case partyLoadedMsg:
		if msg.seq <= m.appliedSeq {
			// A newer snapshot already landed; drop the stale response.
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
			// Keep the stale snapshot; polling recovers on its own.
			logging.Log.Warn("party fetch failed", zap.String("party", m.partyName), zap.Error(msg.err))
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

	case partyMutatedMsg:
		if msg.err != nil {
			logging.Log.Warn("party mutation failed", zap.String("party", m.partyName), zap.Error(msg.err))
			m.status = "that didn't stick — the next refresh has the real state"
		}
		return m.refetch()

	case tea.KeyMsg:
		if m.editing() {
			return m.updateAddKeys(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m partyModel) updateKeys(msg tea.KeyMsg) (partyModel, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m.dismissHintOnSupplies(), nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter", " ":
		return m.activateCurrent()
	case "a":
		return m.startAddForCurrentSection()
	case "+":
		return m.adjustQuantity(1)
	case "-":
		return m.adjustQuantity(-1)
	case "u":
		return m.toggleUrgent()
	case "y":
		if err := clipboard.WriteAll(joinURL(m.webURL, m.partyName)); err != nil {
			m.status = "couldn't reach the clipboard"
		} else {
			m.status = "join link copied"
		}
		return m, nil
	case "c":
		if err := clipboard.WriteAll(m.partyName); err != nil {
			m.status = "couldn't reach the clipboard"
		} else {
			m.status = "party code copied"
		}
		return m, nil
	case "o":
		browser.OpenURL(joinURL(m.webURL, m.partyName)) //nolint:errcheck // best-effort browser open
		return m, nil
	}
	return m, nil
}

// dismissHintOnSupplies hides the supplies hint once the guest scrolls down
// to the supplies section.
func (m partyModel) dismissHintOnSupplies() partyModel {
	if it, ok := m.current(); ok && (it.kind == itemSupply || it.kind == itemAddSupply) {
		m.hintVisible = false
	}
	return m
}

func (m partyModel) activateCurrent() (partyModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || m.party == nil {
		return m, nil
	}

	switch it.kind {
	case itemDate:
		if !m.party.Settings.Dates.VotingEnabled {
			m.status = "voting on dates is disabled for this party"
			return m, nil
		}
		opt := &m.party.Dates[it.index]
		opt.Votes = domain.ToggleVote(opt.Votes, m.username)
		return m, m.toggleDateVoteCmd(opt.ID)

	case itemLocation:
		if !m.party.Settings.Locations.VotingEnabled {
			m.status = "voting on locations is disabled for this party"
			return m, nil
		}
		opt := &m.party.Locations[it.index]
		opt.Votes = domain.ToggleVote(opt.Votes, m.username)
		return m, m.toggleLocationVoteCmd(opt.ID)

	case itemSupply:
		s := &m.party.Supplies[it.index]
		next := domain.ToggleAssignee(s.Assignee, m.username)
		s.Assignee = next
		return m, m.editSupplyCmd(s.ID, domain.SupplyPatch{Assignee: domain.Ptr(next)})

	case itemAddDate:
		m.adding = addDate
		m.addInput = ""
		return m, nil
	case itemAddLocation:
		m.adding = addLocation
		m.addInput = ""
		return m, nil
	case itemAddSupply:
		m.adding = addSupply
		m.addInput = ""
		m.addUrgent = false
		m.addEmoji = emoji.Random(m.rng)
		return m, nil
	}
	return m, nil
}

// startAddForCurrentSection begins adding an option or supply in the section
// under the cursor, honoring the per-category suggestion settings.
func (m partyModel) startAddForCurrentSection() (partyModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || m.party == nil {
		return m, nil
	}

	switch it.kind {
	case itemDate, itemAddDate:
		if !m.party.Settings.Dates.OptionsEnabled {
			m.status = "user suggestions are disabled for this party, ask an admin to enable it"
			return m, nil
		}
		m.adding = addDate
		m.addInput = ""
	case itemLocation, itemAddLocation:
		if !m.party.Settings.Locations.OptionsEnabled {
			m.status = "user suggestions are disabled for this party, ask an admin to enable it"
			return m, nil
		}
		m.adding = addLocation
		m.addInput = ""
	case itemSupply, itemAddSupply:
		m.adding = addSupply
		m.addInput = ""
		m.addUrgent = false
		m.addEmoji = emoji.Random(m.rng)
	}
	return m, nil
}

// adjustQuantity changes the quantity of the supply under the cursor.
// Decrementing past one deletes the entry; quantity is never stored at zero.
func (m partyModel) adjustQuantity(delta int) (partyModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || it.kind != itemSupply || m.party == nil {
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

func (m partyModel) toggleUrgent() (partyModel, tea.Cmd) {
	it, ok := m.current()
	if !ok || it.kind != itemSupply || m.party == nil {
		return m, nil
	}
	s := &m.party.Supplies[it.index]
	s.IsUrgent = !s.IsUrgent
	return m, m.editSupplyCmd(s.ID, domain.SupplyPatch{IsUrgent: domain.Ptr(s.IsUrgent)})
}

func (m partyModel) updateAddKeys(msg tea.KeyMsg) (partyModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = addNone
		m.addInput = ""
		return m, nil
	case "tab":
		if m.adding == addSupply {
			m.addUrgent = !m.addUrgent
		}
		return m, nil
	case "ctrl+e":
		if m.adding == addSupply {
			m.addEmoji = emoji.Random(m.rng)
		}
		return m, nil
	case "enter":
		return m.submitAdd()
	default:
		m.addInput = editRune(m.addInput, msg.String())
		return m, nil
	}
}

func (m partyModel) submitAdd() (partyModel, tea.Cmd) {
	value := strings.TrimSpace(m.addInput)
	if value == "" {
		m.status = "a value is required"
		return m, nil
	}

	target := m.adding
	m.adding = addNone
	m.addInput = ""

	switch target {
	case addDate:
		when, err := parseDateInput(value)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.addDateCmd(when)
	case addLocation:
		return m, m.addLocationCmd(value)
	case addSupply:
		return m, m.addSupplyCmd(value, m.addEmoji, m.addUrgent)
	}
	return m, nil
}

// -- mutation commands --

func (m partyModel) toggleDateVoteCmd(id uuid.UUID) tea.Cmd {
	c, user := m.client, m.username
	return func() tea.Msg {
		_, err := c.ToggleDateVote(context.Background(), id, user)
		return partyMutatedMsg{err: err}
	}
}

func (m partyModel) toggleLocationVoteCmd(id uuid.UUID) tea.Cmd {
	c, user := m.client, m.username
	return func() tea.Msg {
		_, err := c.ToggleLocationVote(context.Background(), id, user)
		return partyMutatedMsg{err: err}
	}
}

func (m partyModel) editSupplyCmd(id uuid.UUID, patch domain.SupplyPatch) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.EditSupply(context.Background(), id, patch)
		return partyMutatedMsg{err: err}
	}
}

func (m partyModel) deleteSupplyCmd(id uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return partyMutatedMsg{err: c.DeleteSupply(context.Background(), id)}
	}
}

func (m partyModel) addDateCmd(when time.Time) tea.Cmd {
	c, name := m.client, m.partyName
	return func() tea.Msg {
		_, err := c.AddDateOption(context.Background(), name, when)
		return partyMutatedMsg{err: err}
	}
}

func (m partyModel) addLocationCmd(location string) tea.Cmd {
	c, name := m.client, m.partyName
	return func() tea.Msg {
		_, err := c.AddLocationOption(context.Background(), name, location)
		return partyMutatedMsg{err: err}
	}
}

func (m partyModel) addSupplyCmd(supplyName, emojiCode string, urgent bool) tea.Cmd {
	c, name := m.client, m.partyName
	return func() tea.Msg {
		_, err := c.AddSupply(context.Background(), name, client.AddSupplyRequest{
			Name:     supplyName,
			Emoji:    emojiCode,
			IsUrgent: urgent,
		})
		return partyMutatedMsg{err: err}
	}
}

// -- view --

func (m partyModel) View() string {
	if m.notFound {
		return "\n  " + dimStyle.Render("no party answers to ") + accentStyle.Render(m.partyName) +
			"\n  " + metaStyle.Render("check the code, or plan a new party from home (esc)")
	}
	if m.party == nil {
		if m.errMsg != "" {
			return "\n  " + errorStyle.Render(m.errMsg)
		}
		return "\n  " + dimStyle.Render("finding the party...")
	}

	var b strings.Builder

	// Header: party code + host
	fmt.Fprintf(&b, " %s %s\n", accentStyle.Render("#"+m.partyName),
		metaStyle.Render("hosted by ")+UserStyle(m.party.Creator).Render(m.party.Creator))
	if m.errMsg != "" {
		fmt.Fprintf(&b, " %s\n", errorStyle.Render("● "+m.errMsg))
	}
	if m.hintVisible {
		fmt.Fprintf(&b, " %s\n", noticeStyle.Render("want to help out? scroll down to see supplies you can buy or bring!"))
	}
	b.WriteString("\n")

	lastKind := itemKind(-1)
	for i, it := range m.items() {
		if header := sectionHeaderFor(it.kind, lastKind); header != "" {
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

// sectionHeaderFor returns the section title when the item opens a new section.
func sectionHeaderFor(kind, prev itemKind) string {
	section := func(k itemKind) int {
		switch k {
		case itemDate, itemAddDate:
			return 0
		case itemLocation, itemAddLocation:
			return 1
		default:
			return 2
		}
	}
	if prev >= 0 && section(kind) == section(prev) {
		return ""
	}
	switch section(kind) {
	case 0:
		return "When?"
	case 1:
		return "Where?"
	default:
		return "Supplies"
	}
}

func (m partyModel) renderItem(cursor string, it partyItem) string {
	switch it.kind {
	case itemDate:
		opt := m.party.Dates[it.index]
		return m.renderOption(cursor, formatDate(opt.Date), opt.Votes, m.party.TotalDateVotes(),
			m.party.Settings.Dates.VotingEnabled)
	case itemLocation:
		opt := m.party.Locations[it.index]
		return m.renderOption(cursor, truncStr(opt.Location, 48), opt.Votes, m.party.TotalLocationVotes(),
			m.party.Settings.Locations.VotingEnabled)
	case itemSupply:
		return m.renderSupply(cursor, m.party.Supplies[it.index])
	case itemAddDate:
		return m.renderAddRow(cursor, addDate, "new date option", "2026-09-12 18:00")
	case itemAddLocation:
		return m.renderAddRow(cursor, addLocation, "new location option", "a maps link works great")
	case itemAddSupply:
		return m.renderAddRow(cursor, addSupply, "new supply", "what should someone bring?")
	}
	return ""
}

func (m partyModel) renderOption(cursor, label string, votes []string, total int, votingEnabled bool) string {
	marker := " "
	style := normalStyle
	if domain.HasVote(votes, m.username) {
		marker = votedStyle.Render("♥")
		style = selectedStyle
	}
	if !votingEnabled {
		style = dimStyle
	}

	line1 := fmt.Sprintf(" %s %s %s\n", cursor, marker, style.Render(label))
	line2 := fmt.Sprintf("     %s %s  %s\n",
		progressBar(len(votes), total, 20),
		metaStyle.Render(formatPercent(len(votes), total)),
		voterList(votes))
	return line1 + line2
}

func (m partyModel) renderSupply(cursor string, s domain.Supply) string {
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

func (m partyModel) renderAddRow(cursor string, target addTarget, label, placeholder string) string {
	if m.adding == target {
		line := " " + cursor + " " + inputPromptStyle.Render("+ ") + m.addInput + accentStyle.Render("█")
		if m.adding == addSupply {
			urgent := metaStyle.Render("not urgent (tab)")
			if m.addUrgent {
				urgent = urgentStyle.Render("urgent! (tab)")
			}
			line += "  " + emoji.Render(m.addEmoji) + " " + urgent
		}
		if m.addInput == "" {
			line += " " + inputPlaceholderStyle.Render(placeholder)
		}
		return line + "\n"
	}
	return fmt.Sprintf(" %s %s\n", cursor, dimStyle.Render("+ "+label))
}

// helpKeys renders the context help line for the party view.
func (m partyModel) helpKeys() string {
	if m.editing() {
		if m.adding == addSupply {
			return helpEntry("enter", "add") + "  " + helpEntry("tab", "urgent") + "  " +
				helpEntry("ctrl+e", "emoji") + "  " + helpEntry("esc", "cancel")
		}
		return helpEntry("enter", "add") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "move") + "  " + helpEntry("enter", "vote/claim") + "  " +
		helpEntry("+/-", "qty") + "  " + helpEntry("u", "urgent") + "  " +
		helpEntry("a", "suggest") + "  " + helpEntry("y", "copy link") + "  " +
		helpEntry("esc", "home")
}
