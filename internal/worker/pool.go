// Package worker replays move-list files on a fixed number of goroutines.
package worker

import (
	"slices"
	"sync"

	"github.com/lgbarn/ascii-chess-go/internal/game"
)

// WorkItem names a move-list file to replay.
type WorkItem struct {
	Path  string
	Index int // Position in the caller's input
}

// ProcessResult is the outcome of replaying one file.
type ProcessResult struct {
	Path  string
	Index int
	Game  *game.Game // Game as far as it could be replayed (may be nil)
	Error error
}

// ProcessFunc replays a single item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over work items on a fixed set of goroutines.
type Pool struct {
	workers     int
	queueSize   int
	processFunc ProcessFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are
// ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithQueueSize sets how many items may wait for a worker. Values below 1
// are ignored.
func WithQueueSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.queueSize = size
		}
	}
}

// NewPool creates a pool with one worker and a queue of 10 unless options
// say otherwise.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		workers:     1,
		queueSize:   10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process replays every path and returns one result per path, in the order
// the paths were given. Each call uses its own channels and goroutines.
func (p *Pool) Process(paths []string) []ProcessResult {
	items := make(chan WorkItem, p.queueSize)
	results := make(chan ProcessResult, p.queueSize)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				results <- p.processFunc(item)
			}
		}()
	}

	go func() {
		for i, path := range paths {
			items <- WorkItem{Path: path, Index: i}
		}
		close(items)
		wg.Wait()
		close(results)
	}()

	collected := make([]ProcessResult, 0, len(paths))
	for r := range results {
		collected = append(collected, r)
	}
	slices.SortFunc(collected, func(a, b ProcessResult) int {
		return a.Index - b.Index
	})
	return collected
}
