// check.go - Batch validation of move-list files
package main

import (
	"fmt"
	"io"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/game"
	"github.com/lgbarn/ascii-chess-go/internal/hashing"
	"github.com/lgbarn/ascii-chess-go/internal/movelist"
	"github.com/lgbarn/ascii-chess-go/internal/worker"
)

// checkSummary counts the outcome of a check run.
type checkSummary struct {
	Files      int
	Failed     int
	Duplicates int
}

// replayFile loads and replays one move-list file from the standard
// position.
func replayFile(cfg *config.Config, item worker.WorkItem) worker.ProcessResult {
	result := worker.ProcessResult{Path: item.Path, Index: item.Index}

	list, err := movelist.Load(item.Path)
	if err != nil {
		result.Error = err
		return result
	}

	result.Game = game.New(cfg)
	if err := result.Game.Replay(list.Moves); err != nil {
		list.Locate(err, 1)
		result.Error = err
	}
	return result
}

// runCheck replays every file in paths on a pool of workers and writes one
// line per file to w, in the order the files were given. Files whose final
// position matches an earlier file are reported as duplicates.
func runCheck(cfg *config.Config, w io.Writer, paths []string, workers int) checkSummary {
	pool := worker.NewPool(func(item worker.WorkItem) worker.ProcessResult {
		return replayFile(cfg, item)
	}, worker.WithWorkers(workers), worker.WithQueueSize(max(len(paths), 1)))
	results := pool.Process(paths)

	summary := checkSummary{Files: len(results)}
	detector := hashing.NewDuplicateDetector(false)
	for _, r := range results {
		if r.Error != nil {
			summary.Failed++
			fmt.Fprintln(w, describeFailure(r))
			continue
		}

		g := r.Game
		fmt.Fprintf(w, "%s: ok, %d moves, %s to move", r.Path, len(g.Moves()), g.SideToMove())
		sig := hashing.Signature(r.Path, g.Board(), g.SideToMove(), len(g.Moves()))
		if original, dup := detector.CheckAndAdd(sig); dup {
			fmt.Fprintf(w, " (same final position as %s)", original)
		}
		fmt.Fprintln(w)
	}

	summary.Duplicates = detector.DuplicateCount()
	cfg.Logf(config.Normal, "checked %d files: %d failed, %d duplicate positions",
		summary.Files, summary.Failed, summary.Duplicates)
	return summary
}

func describeFailure(r worker.ProcessResult) string {
	var ge *errors.GameError
	if errors.As(r.Error, &ge) && ge.File != "" {
		return r.Error.Error()
	}
	return fmt.Sprintf("%s: %v", r.Path, r.Error)
}
