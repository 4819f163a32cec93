// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/ascii-chess-go/internal/config"
)

var (
	// Listener options
	addr        = flag.String("addr", ":8080", "Listen address (host:port)")
	maxGames    = flag.Int("max-games", 1000, "Maximum games in progress (0 = unlimited)")
	readTimeout = flag.Duration("read-timeout", 10*time.Second, "Request read timeout")

	// Archive options
	dbDir      = flag.String("db", "", "Game archive directory (empty disables the archive)")
	syncWrites = flag.Bool("sync", false, "Make every archive write durable before returning")

	// Logging
	verbosity     = flag.Int("v", config.Normal, "Verbosity: 0 silent, 1 normal, 2 chatty")
	logFile       = flag.String("l", "", "Write diagnostics and request logs to log file")
	quietRequests = flag.Bool("quiet-requests", false, "Don't log each request")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Verbosity = *verbosity
	cfg.Server.Addr = *addr
	cfg.Server.MaxGames = *maxGames
	cfg.Server.ReadTimeout = *readTimeout
	cfg.Server.LogRequests = !*quietRequests && *verbosity > config.Quiet
	cfg.Storage.Dir = *dbDir
	cfg.Storage.SyncWrites = *syncWrites
}
