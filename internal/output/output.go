// Package output renders boards and games as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/config"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer. A maxLineLength of 0 or less
// disables wrapping.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.maxLineLength > 0 && o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line if anything was written to it.
func (o *OutputWriter) NewLine() {
	if o.lineLength == 0 {
		return
	}
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

const fileHeader = "    A B C D E F G H"

var frameRule = strings.Repeat("-", 23)

// RenderBoard draws board with White at the bottom. Each row reads
// "8 | r n b q k b n r | 8" when coordinates are shown; empty squares use
// cfg.EmptySquare.
func RenderBoard(w io.Writer, board *chess.Board, cfg *config.OutputConfig) {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	empty := cfg.EmptySquare
	if empty == "" {
		empty = config.DefaultEmptySquare
	}

	if cfg.ShowCoordinates {
		fmt.Fprintln(w, fileHeader)
		fmt.Fprintln(w, frameRule)
	}
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		cells := make([]string, 0, 8)
		for file := 1; file <= 8; file++ {
			piece, ok := board.Lookup(chess.Square{File: file, Rank: rank})
			if ok {
				cells = append(cells, string(piece.Letter()))
			} else {
				cells = append(cells, empty)
			}
		}
		row := strings.Join(cells, " ")
		if cfg.ShowCoordinates {
			fmt.Fprintf(w, "%d | %s | %d\n", rank, row, rank)
		} else {
			fmt.Fprintln(w, row)
		}
	}
	if cfg.ShowCoordinates {
		fmt.Fprintln(w, frameRule)
		fmt.Fprintln(w, fileHeader)
	}
}

// BoardRows returns the eight board rows from rank 8 down, one character per
// square, with '.' for empty squares.
func BoardRows(board *chess.Board) []string {
	rows := make([]string, 0, 8)
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		row := make([]byte, 0, 8)
		for file := 1; file <= 8; file++ {
			if piece, ok := board.Lookup(chess.Square{File: file, Rank: rank}); ok {
				row = append(row, piece.Letter())
			} else {
				row = append(row, '.')
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}

// WriteMoves writes moves as numbered move text ("1. e4 e5 2. Nf3"),
// wrapping at maxLineLength (0 for no wrapping). firstMove is the full move number of moves[0]
// and blackFirst says whether Black played it.
func WriteMoves(w io.Writer, moves []string, firstMove int, blackFirst bool, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)
	moveNum := firstMove
	isWhite := !blackFirst

	for i, move := range moves {
		if isWhite {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(move)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
	ow.NewLine()
}
