// Command fourinarow is a terminal client for a 4-in-a-row game server.
// It logs in with a chosen username, holds one realtime connection per
// login, and mirrors the server's game state onto a TUI board.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/connect4/tui/internal/config"
	"github.com/connect4/tui/internal/conn"
	"github.com/connect4/tui/internal/leaderboard"
	"github.com/connect4/tui/internal/theme"
	"github.com/connect4/tui/internal/ui"
)

func main() {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	defaults := config.FromEnv()

	cmd := &cli.Command{
		Name:  "fourinarow",
		Usage: "terminal client for a 4-in-a-row game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: defaults.ServerURL,
				Usage: "game server base URL (http, https, ws or wss)",
			},
			&cli.StringFlag{
				Name:  "username",
				Value: defaults.Username,
				Usage: "prefill the login name",
			},
			&cli.StringFlag{
				Name:  "theme",
				Value: defaults.Theme,
				Usage: "color theme (overrides the persisted choice)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: defaults.LogFile,
				Usage: "write logs to this file (the terminal belongs to the UI)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: defaults.Debug,
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-leaderboard",
				Value: !defaults.ShowLeaderboard,
				Usage: "hide the leaderboard",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.String("log-file"), cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logger.Sync()

	serverURL := cmd.String("server")

	network, err := conn.NewManager(serverURL, logger.Named("conn"))
	if err != nil {
		return err
	}
	defer network.Close()

	lb, err := leaderboard.NewClient(serverURL, logger.Named("leaderboard"))
	if err != nil {
		return err
	}

	store := theme.NewStore("")
	themeName := cmd.String("theme")
	if themeName == "" {
		if themeName, err = store.Load(); err != nil {
			logger.Warn("loading persisted theme", zap.Error(err))
		}
	}
	th, ok := theme.Lookup(themeName)
	if !ok {
		logger.Warn("unknown theme, using default", zap.String("theme", themeName))
		th = theme.Default()
	}

	m := ui.New(ui.Options{
		Network:         network,
		Leaderboard:     lb,
		Themes:          store,
		Theme:           th,
		Username:        cmd.String("username"),
		ShowLeaderboard: !cmd.Bool("no-leaderboard"),
		Logger:          logger.Named("ui"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newLogger(path string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
