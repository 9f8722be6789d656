package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jamboree-events/jamboree/internal/localstore"
	"github.com/jamboree-events/jamboree/internal/logging"
	"github.com/jamboree-events/jamboree/internal/names"
	"github.com/jamboree-events/jamboree/pkg/client"
	"github.com/jamboree-events/jamboree/pkg/domain"
)

type view int

const (
	viewHome view = iota
	viewCreate
	viewParty
	viewAdmin
)

// Navigation messages emitted by child models and handled at the root.
type gotoPartyMsg struct {
	name string
}

// gotoAdminMsg opens the admin view. party is optional; it is set when the
// sender already holds a snapshot, e.g. right after creating the party.
type gotoAdminMsg struct {
	code  string
	party *domain.Party
}

type gotoCreateMsg struct{}

type gotoHomeMsg struct{}

// Config carries everything the app needs at startup.
type Config struct {
	Client   *client.Client
	Store    *localstore.Store
	WebURL   string
	Version  string
	Username string
	Scheme   string

	// At most one of these starts the app somewhere other than home.
	StartParty     string
	StartAdminCode string
	StartCreate    bool
}

// App is the root model: view routing, the shimmer header, the help bar and
// the username prompt overlay.
type App struct {
	client   *client.Client
	store    *localstore.Store
	webURL   string
	version  string
	username string
	scheme   string
	gen      *names.Generator

	view   view
	home   homeModel
	create createModel
	party  partyModel
	admin  adminModel

	adminRemembered bool

	promptOpen  bool
	promptInput string
	promptErr   string

	frame  int
	width  int
	height int
}

func NewApp(cfg Config) App {
	a := App{
		client:   cfg.Client,
		store:    cfg.Store,
		webURL:   cfg.WebURL,
		version:  cfg.Version,
		username: cfg.Username,
		scheme:   cfg.Scheme,
		gen:      names.NewGenerator(),
	}
	if a.scheme == "" {
		a.scheme = "dark"
	}
	a.home = newHomeModel(a.store, a.username)

	switch {
	case cfg.StartParty != "":
		a.view = viewParty
		a.party = newPartyModel(a.client, a.username, cfg.StartParty, a.webURL)
		a.rememberGuest(cfg.StartParty)
	case cfg.StartAdminCode != "":
		a.view = viewAdmin
		a.admin = newAdminModel(a.client, cfg.StartAdminCode, a.username, a.webURL, nil)
	case cfg.StartCreate:
		a.view = viewCreate
		a.create = newCreateModel(a.client, a.username, a.gen)
	default:
		a.view = viewHome
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	switch a.view {
	case viewParty:
		cmds = append(cmds, a.party.Init())
	case viewAdmin:
		cmds = append(cmds, a.admin.Init())
	}
	return tea.Batch(cmds...)
}

// editing reports whether the active view is capturing text input, in which
// case single-letter global keys must not fire.
func (a App) editing() bool {
	if a.promptOpen {
		return true
	}
	switch a.view {
	case viewHome:
		return a.home.editing()
	case viewCreate:
		return a.create.editing()
	case viewParty:
		return a.party.editing()
	case viewAdmin:
		return a.admin.editing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.delegate(msg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case gotoPartyMsg:
		a.view = viewParty
		a.party = newPartyModel(a.client, a.username, msg.name, a.webURL)
		a.rememberGuest(msg.name)
		return a, a.party.Init()

	case gotoAdminMsg:
		a.view = viewAdmin
		a.admin = newAdminModel(a.client, msg.code, a.username, a.webURL, msg.party)
		a.adminRemembered = false
		if msg.party != nil {
			a.rememberAdmin(msg.party.Name, msg.code)
		}
		return a, a.admin.Init()

	case gotoCreateMsg:
		a.view = viewCreate
		a.create = newCreateModel(a.client, a.username, a.gen)
		return a, a.create.Init()

	case gotoHomeMsg:
		a.view = viewHome
		a.home = newHomeModel(a.store, a.username)
		return a, nil

	case adminLoadedMsg:
		// Remember the party once the admin lookup resolves its name.
		if a.view == viewAdmin && msg.err == nil && msg.party != nil && !a.adminRemembered {
			a.rememberAdmin(msg.party.Name, a.admin.adminCode)
		}
		return a.delegate(msg)

	case tea.KeyMsg:
		if a.promptOpen {
			return a.updatePromptKeys(msg)
		}
		if handled, model, cmd := a.updateGlobalKeys(msg); handled {
			return model, cmd
		}
		return a.delegate(msg)
	}

	return a.delegate(msg)
}

func (a App) updateGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return true, a, tea.Quit
	}
	if a.editing() {
		// esc still backs out of the home input, handled by the view itself.
		return false, a, nil
	}

	switch key {
	case "q":
		return true, a, tea.Quit
	case "esc":
		if a.view == viewHome {
			return true, a, nil
		}
		a.view = viewHome
		a.home = newHomeModel(a.store, a.username)
		return true, a, nil
	case "ctrl+t":
		if a.scheme == "dark" {
			a.scheme = "light"
		} else {
			a.scheme = "dark"
		}
		if a.store != nil {
			if err := a.store.SetColorScheme(a.scheme); err != nil {
				logging.Log.Warn("color scheme not saved", zap.Error(err))
			}
		}
		return true, a, nil
	case "u":
		if a.view == viewHome {
			a.promptOpen = true
			a.promptInput = a.username
			a.promptErr = ""
			return true, a, nil
		}
	}
	return false, a, nil
}

func (a App) updatePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.promptOpen = false
		return a, nil
	case "ctrl+r":
		a.promptInput = a.gen.Generate()
		return a, nil
	case "enter":
		name := strings.TrimSpace(a.promptInput)
		if name == "" {
			a.promptErr = "a name is required — it's how friends see your votes"
			return a, nil
		}
		if a.store != nil {
			if err := a.store.SetUsername(name); err != nil {
				logging.Log.Warn("username not saved", zap.Error(err))
			}
		}
		a.username = name
		a.promptOpen = false
		a.home = newHomeModel(a.store, a.username)
		return a, nil
	default:
		a.promptInput = editRune(a.promptInput, msg.String())
		return a, nil
	}
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	case viewParty:
		a.party, cmd = a.party.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a *App) rememberGuest(name string) {
	if a.store == nil {
		return
	}
	if err := a.store.RememberParty(localstore.PartyRef{Name: name, Role: localstore.RoleGuest}); err != nil {
		logging.Log.Warn("party not remembered", zap.String("party", name), zap.Error(err))
	}
}

func (a *App) rememberAdmin(name, code string) {
	a.adminRemembered = true
	if a.store == nil {
		return
	}
	ref := localstore.PartyRef{Name: name, Role: localstore.RoleAdmin, AdminCode: code}
	if err := a.store.RememberParty(ref); err != nil {
		logging.Log.Warn("party not remembered", zap.String("party", name), zap.Error(err))
	}
}

func (a App) View() string {
	var b strings.Builder

	b.WriteString(renderShimmerLogo(a.frame, a.scheme))
	fmt.Fprintf(&b, "  %s\n\n", metaStyle.Render(a.version))

	if a.promptOpen {
		b.WriteString(" " + inputPromptStyle.Render("your name ") + a.promptInput + accentStyle.Render("█") + "\n")
		if a.promptErr != "" {
			fmt.Fprintf(&b, " %s\n", errorStyle.Render(a.promptErr))
		}
		fmt.Fprintf(&b, "\n %s\n", helpEntry("enter", "save")+"  "+helpEntry("ctrl+r", "random")+"  "+helpEntry("esc", "cancel"))
		return b.String()
	}

	var body, help string
	switch a.view {
	case viewHome:
		body, help = a.home.View(), a.home.helpKeys()
	case viewCreate:
		body, help = a.create.View(), a.create.helpKeys()
	case viewParty:
		body, help = a.party.View(), a.party.helpKeys()
	case viewAdmin:
		body, help = a.admin.View(), a.admin.helpKeys()
	}

	if a.height > 0 {
		// Leave room for the header and the help bar.
		body = truncateToHeight(body, a.height-4)
	}
	b.WriteString(body)
	b.WriteString("\n " + help + "\n")
	return b.String()
}
