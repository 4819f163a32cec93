// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"

	"github.com/lgbarn/ascii-chess-go/internal/config"
)

var (
	// Board and output options
	noBoard    = flag.Bool("noboard", false, "Don't print the board after each move")
	noCoords   = flag.Bool("nocoords", false, "Print the board without file letters and rank numbers")
	emptyGlyph = flag.String("empty", config.DefaultEmptySquare, "Glyph drawn for empty squares")
	jsonOutput = flag.Bool("J", false, "Print game status as JSON")
	lineLength = flag.Int("w", 80, "Maximum line length of the printed move list")

	// Game options
	loadFile = flag.String("load", "", "Replay a move list file before reading moves")
	startFEN = flag.String("fen", "", "Start from this FEN position instead of the initial position")

	// Batch validation
	checkMode = flag.Bool("check", false, "Replay the move list files given as arguments and report on each")
	workers   = flag.Int("workers", runtime.NumCPU(), "Number of files replayed in parallel with -check")

	// Archive options
	dbDir      = flag.String("db", "", "Game archive directory (empty disables the archive)")
	syncWrites = flag.Bool("sync", false, "Make every archive write durable before returning")

	// Logging
	verbosity = flag.Int("v", config.Normal, "Verbosity: 0 silent, 1 normal, 2 chatty")
	logFile   = flag.String("l", "", "Write diagnostics to log file")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyStorageFlags(cfg)
	cfg.Verbosity = *verbosity
	cfg.LoadFile = *loadFile
}

// applyOutputFlags configures board and status output.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.ShowBoard = !*noBoard
	cfg.Output.ShowCoordinates = !*noCoords
	cfg.Output.EmptySquare = *emptyGlyph
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.MaxLineLength = uint(max(*lineLength, 0))
}

// applyStorageFlags configures the game archive.
func applyStorageFlags(cfg *config.Config) {
	cfg.Storage.Dir = *dbDir
	cfg.Storage.SyncWrites = *syncWrites
}
