package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/glabrego/rss-cli/internal/app"
	"github.com/glabrego/rss-cli/internal/config"
	"github.com/glabrego/rss-cli/internal/fetch"
	"github.com/glabrego/rss-cli/internal/storage"
	"github.com/glabrego/rss-cli/internal/tui"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rss-cli",
		Usage: "Read RSS and Atom feeds in the terminal",
		Description: `Keeps a collection of feeds in a local file and browses it in a
two-pane terminal UI. Without a command the UI is started.

The collection file format follows its extension: .json, .yml/.yaml or
.db/.sqlite/.sqlite3. Settings can be given via environment variables:

RSS_CLI_DB_PATH       collection file (default feeds.json)
RSS_CLI_HTTP_TIMEOUT  fetch timeout, e.g. 30s (default none)
RSS_CLI_USER_AGENT    User-Agent header for fetches
RSS_CLI_LOG_FILE      write logs here (default: discarded in the UI)
RSS_CLI_LOG_LEVEL     logrus level name (default info)`,
		Commands: []*cli.Command{
			dbCmd(),
			fetchCmd(),
			tuiCmd(),
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runTUI(ctx, cfg)
		},
	}
}

func dbCmd() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Print the feeds and entries of a collection file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Usage:    "collection file to print",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "feed",
				Usage: "only print the feed with this URL",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			closeLog, err := setupLogging(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			svc := app.NewService(fetch.NewClientWithTimeout(cfg.UserAgent, cfg.HTTPTimeout))
			return svc.ShowDatabase(ctx.Context, os.Stdout, ctx.String("path"), ctx.String("feed"))
		},
	}
}

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch one feed and print its entries without saving",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Usage:    "feed URL",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			closeLog, err := setupLogging(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			svc := app.NewService(fetch.NewClientWithTimeout(cfg.UserAgent, cfg.HTTPTimeout))
			return svc.ShowFeed(ctx.Context, os.Stdout, ctx.String("url"))
		},
	}
}

func tuiCmd() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse and edit the collection interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "collection file (overrides RSS_CLI_DB_PATH)",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if ctx.IsSet("db") {
				cfg.DBPath = ctx.String("db")
			}
			return runTUI(ctx, cfg)
		},
	}
}

func runTUI(ctx *cli.Context, cfg config.Config) error {
	if err := cfg.ValidateStorage(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	closeLog, err := setupLogging(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	collection, err := storage.LoadOrEmpty(ctx.Context, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("cannot load collection: %w", err)
	}
	log.WithFields(log.Fields{"path": cfg.DBPath, "feeds": collection.Len()}).Info("collection loaded")

	model := tui.NewModel(fetch.NewClient(cfg.UserAgent, nil), storage.NewFileStore(cfg.DBPath), collection)
	model.SetFetchTimeout(cfg.HTTPTimeout)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Context))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// setupLogging points logrus at the configured log file, or at fallback when
// none is set. The returned func closes the file.
func setupLogging(cfg config.Config, fallback io.Writer) (func(), error) {
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		log.SetOutput(fallback)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
