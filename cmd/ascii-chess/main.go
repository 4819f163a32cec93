// ascii-chess is a two-player chess console. Moves are typed in algebraic
// or coordinate notation and the board is drawn in ASCII after each move.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/ascii-chess-go/internal/config"
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
		fmt.Printf("ascii-chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *checkMode {
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "Error: -check needs at least one move list file")
			os.Exit(2)
		}
		if summary := runCheck(cfg, cfg.OutputFile, flag.Args(), *workers); summary.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	if code := runConsole(cfg, *startFEN, os.Stdin); code != 0 {
		os.Exit(code)
	}
}

// runConsole opens the archive, plays commands from in and closes the
// archive before returning the exit status.
func runConsole(cfg *config.Config, fen string, in io.Reader) int {
	store, err := openArchive(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if store != nil {
		defer closeArchive(cfg, store)
	}

	console := NewConsole(cfg, store)
	if err := console.startFrom(fen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.LoadFile != "" {
		if err := console.load(cfg.LoadFile); err != nil {
			fmt.Fprintln(cfg.OutputFile, err)
		}
	}

	if err := console.Run(in); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
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

// openArchive opens the game archive if one is configured. It returns a
// nil store otherwise.
func openArchive(cfg *config.Config) (*storage.Storage, error) {
	if !cfg.Storage.Enabled() {
		return nil, nil
	}
	store, err := storage.Open(storage.OptionsFromConfig(cfg.Storage))
	if err != nil {
		return nil, err
	}
	cfg.Logf(config.Chatty, "archive opened at %s", cfg.Storage.Dir)
	return store, nil
}

func closeArchive(cfg *config.Config, store *storage.Storage) {
	if err := store.Close(); err != nil {
		cfg.Logf(config.Normal, "closing archive: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `ascii-chess - two-player chess in the terminal

Usage: ascii-chess [options]
       ascii-chess -check [options] file...

Commands at the prompt:
  q                 quit
  b                 print the board
  load [file]       replay a move list file
  save [file]       write the moves played to a file
  moves             print the moves played
  status            print the game status (JSON with -J)
  fen               print the position as FEN
  new [fen]         start a new game
  restart           take back every move, keeping the start position
  archive           store the game in the archive (-db)
  restore <id>      continue an archived game
  games             list archived games

Anything else is read as a move: e4, Nf3, Nxe5, exd6, e2-e4, e2e4, O-O, O-O-O.

With -check, each file is replayed from the initial position and reported
as ok or failed; files ending in the same position as an earlier file are
flagged. The exit status is 1 if any file fails.

Options:
`)
	flag.PrintDefaults()
}
