package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pevans/nordfeed/config"
	"github.com/pevans/nordfeed/discovery"
	"github.com/pevans/nordfeed/nordbayern"
	"github.com/pevans/nordfeed/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Path of the YAML config file. Set before calling Run().
	ConfigPath string

	// Lister replaces the HTTP scraper when set, for end-to-end testing.
	Lister server.ArticleLister

	// Now returns the discovery time of scraped articles.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	configPath, err := config.ConfigPath()
	if err != nil {
		configPath = ""
	}
	return &Main{
		ConfigPath: configPath,
		Now:        time.Now,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	cli := &CLI{}
	helpShown := false
	parser, err := kong.New(cli,
		kong.Name("nordfeed"),
		kong.Description("Feeds of regional news from nordbayern.de"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helpShown = true }), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nordfeed --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	// Subcommand help was printed; don't run the command as well.
	if helpShown {
		return nil
	}

	if m.ConfigPath != "" {
		deps.File, err = config.LoadConfigFileFrom(m.ConfigPath)
		if err != nil {
			return err
		}
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	settingsPath := cli.SettingsDSN
	if settingsPath == "" && deps.File != nil {
		settingsPath = deps.File.Storage.SettingsDSN
	}
	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}
	deps.Settings, err = config.NewSettingsStore(settingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set NORDFEED_SETTINGS_DSN to use a different database path\n")
		return fmt.Errorf("failed to open settings at %q: %w", settingsPath, err)
	}
	defer deps.Settings.Close()

	deps.Lister = m.Lister
	if deps.Lister == nil {
		deps.Lister = nordbayern.New(newFetcher(deps.File), nordbayern.WithLogger(deps.Logger))
	}

	return kongCtx.Run(deps)
}

// newFetcher builds the HTTP fetcher from the config file's http section.
func newFetcher(cfg *config.FileConfig) *discovery.Fetcher {
	opts := []discovery.Option{
		discovery.WithTimeout(cfg.FetchTimeout(discovery.DefaultTimeout)),
	}
	if cfg != nil && cfg.HTTP.UserAgent != "" {
		opts = append(opts, discovery.WithUserAgent(cfg.HTTP.UserAgent))
	}
	if cfg != nil && cfg.HTTP.Rate != nil {
		opts = append(opts, discovery.WithRate(*cfg.HTTP.Rate))
	}
	return discovery.NewFetcher(opts...)
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.db"
	}
	dir := filepath.Join(home, ".nordfeed")
	_ = os.MkdirAll(dir, 0o700)
	return filepath.Join(dir, "settings.db")
}
