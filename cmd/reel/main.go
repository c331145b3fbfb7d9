package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tobran/reel/internal/catalog"
	"github.com/tobran/reel/internal/config"
	"github.com/tobran/reel/internal/domain"
	"github.com/tobran/reel/internal/log"
	"github.com/tobran/reel/internal/player"
	"github.com/tobran/reel/internal/session"
	"github.com/tobran/reel/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		queryText   string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&queryText, "q", "", "initial search query")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(queryText); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(queryText string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("reel is a full-screen application and needs a terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	if !cfg.IsConfigured() {
		return fmt.Errorf("no catalog server configured: set server.url in %s",
			"~/.config/reel/config.yaml (or REEL_SERVER_URL)")
	}

	client, err := catalog.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	sess, err := session.NewStore(config.DefaultDataPath())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sess.Close()

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	model := tui.NewModel(client, sess, launcher, logger, cfg, initialQuery(cfg, sess, queryText))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// initialQuery seeds the first search: an explicit -q flag wins, then the
// last query persisted by a previous session, then the configured defaults.
func initialQuery(cfg *config.Config, sess *session.Store, queryText string) domain.Query {
	q := domain.Query{
		Sort:      cfg.Catalog.Sort,
		Direction: domain.SortDesc,
	}
	if cfg.Catalog.Direction == "asc" {
		q.Direction = domain.SortAsc
	}

	if queryText != "" {
		q.Text = queryText
		return q
	}
	if last, ok := sess.LastQuery(); ok {
		return last
	}
	return q
}
