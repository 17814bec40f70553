package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli"
	"github.com/dagimg/prdesk/internal/config"
	"github.com/dagimg/prdesk/internal/db"
	"github.com/dagimg/prdesk/internal/session"
	"github.com/dagimg/prdesk/internal/stream"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessions, err := session.NewStore(database)
	if err != nil {
		return err
	}

	// The TUI owns stdout, so client logs go to a file (or nowhere).
	log, err := api.NewFileLogger(cfg.LogFile)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg, sessions, api.NewLogObserver(log))

	app := &cli.App{
		Auth:     client,
		Requests: client,
		Notify:   client,
		Metrics:  client,
		Sessions: sessions,
		Config:   cfg,
		Log:      log,
	}

	app.NewStream = func() cli.NotificationStream {
		endpoint, err := cfg.StreamURL()
		if err != nil {
			log.WithError(err).Warn("notification stream disabled")
			return nil
		}
		opts := stream.DefaultOptions()
		opts.BackoffMax = time.Duration(cfg.ReconnectMaxMs) * time.Millisecond
		return stream.NewClient(endpoint, sessions.Token, opts, log)
	}

	// Detect interactive terminal for the shell-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
