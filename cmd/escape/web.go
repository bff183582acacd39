package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-escape/internal/platform/web"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve browser clients over websockets",
	Long: `Start an HTTP server for browser front ends.

Endpoints:
  GET /ws              - One game per connection: send {"type":"start"},
                         "left", "right", "pause", "reset"; receive a
                         snapshot after every tick
  GET /api/highscore   - {"high": n}
  GET /api/runs        - Stored runs (?order=top|recent&limit=n)
  GET /api/runs/{id}   - One stored run
  GET /healthz         - Liveness probe

Examples:
  escape web
  escape web --http :9000 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "escape-web")

	opts, err := gameOptions(logger)
	if err != nil {
		return err
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Game = opts
	cfg.Logger = logger

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		cfg.Store = store
	}

	server := web.NewServer(cfg)
	defer func() {
		if err := server.Close(); err != nil {
			logger.Warn("high score flush failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving Shadow Escape on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
