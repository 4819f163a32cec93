// chess-server serves two-player chess games over an HTTP JSON API.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/server"
	"github.com/lgbarn/ascii-chess-go/internal/storage"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if code := serve(cfg); code != 0 {
		os.Exit(code)
	}
}

// serve runs the API until it is shut down or fails to listen, and closes
// the archive before returning the exit status.
func serve(cfg *config.Config) int {
	var store *storage.Storage
	if cfg.Storage.Enabled() {
		var err error
		if store, err = storage.Open(storage.OptionsFromConfig(cfg.Storage)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer func() {
			if err := store.Close(); err != nil {
				cfg.Logf(config.Normal, "closing archive: %v", err)
			}
		}()
		cfg.Logf(config.Normal, "archive at %s", cfg.Storage.Dir)
	}

	app := server.New(cfg, store)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sig:
		case <-done:
			return
		}
		cfg.Logf(config.Normal, "shutting down")
		if err := app.Shutdown(); err != nil {
			cfg.Logf(config.Normal, "shutdown: %v", err)
		}
	}()

	cfg.Logf(config.Normal, "listening on %s", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, `chess-server - chess games over HTTP

Usage: chess-server [options]

Routes:
  POST   /api/games              start a game ({"fen": ...} or {"archiveId": ...})
  GET    /api/games/:id          game status
  POST   /api/games/:id/moves    play a move ({"move": "e4"})
  POST   /api/games/:id/archive  store the game (-db)
  DELETE /api/games/:id          end the game
  GET    /api/games/:id/ws       websocket: game updates, {"move": ...} to play
  GET    /api/archive            list archived games (-db)
  DELETE /api/archive/:id        delete an archived game (-db)

Options:
`)
	flag.PrintDefaults()
}
