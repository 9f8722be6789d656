package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/pkg/browser"

	"github.com/jamboree-events/jamboree/internal/localstore"
	"github.com/jamboree-events/jamboree/internal/logging"
	"github.com/jamboree-events/jamboree/internal/names"
	"github.com/jamboree-events/jamboree/internal/tui"
	"github.com/jamboree-events/jamboree/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// dataDirPath returns the local data directory, ~/.jamboree unless
// JAMBOREE_DATA_DIR overrides it.
func dataDirPath() (string, error) {
	if dir := os.Getenv("JAMBOREE_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".jamboree"), nil
}

func run() error {
	godotenv.Load() //nolint:errcheck // a .env file is optional

	apiURL := os.Getenv("JAMBOREE_API_URL")
	if apiURL == "" {
		apiURL = "https://api.jamboree.party"
	}
	webURL := os.Getenv("JAMBOREE_WEB_URL")
	if webURL == "" {
		webURL = "https://jamboree.party"
	}

	var cfg tui.Config
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("jamboree " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "web":
			return browser.OpenURL(webURL)
		case "create":
			cfg.StartCreate = true
		case "join":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: jamboree join <party-code>")
			}
			cfg.StartParty = os.Args[2]
		case "admin":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: jamboree admin <admin-code>")
			}
			cfg.StartAdminCode = os.Args[2]
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	dataDir, err := dataDirPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := logging.Init(filepath.Join(dataDir, "jamboree.log")); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	store, err := localstore.Open(filepath.Join(dataDir, "jamboree.db"))
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	username, err := store.Username()
	if err != nil {
		return fmt.Errorf("read username: %w", err)
	}
	if username == "" {
		// First run: hand out a friendly identity, changeable with "u".
		username = names.NewGenerator().Generate()
		if err := store.SetUsername(username); err != nil {
			return fmt.Errorf("save username: %w", err)
		}
	}
	scheme, err := store.ColorScheme()
	if err != nil {
		return fmt.Errorf("read color scheme: %w", err)
	}

	cfg.Client = client.New(apiURL)
	cfg.Store = store
	cfg.WebURL = webURL
	cfg.Version = version
	cfg.Username = username
	cfg.Scheme = scheme

	p := tea.NewProgram(tui.NewApp(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
