package testutil

import (
	"testing"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/engine"
)

// Player is anything that accepts move text one ply at a time, such as a
// game.Game.
type Player interface {
	Play(text string) (engine.Move, error)
}

// MustBoardFromFEN builds a board from fen and fails the test if the FEN
// is invalid.
func MustBoardFromFEN(t testing.TB, fen string) *chess.Board {
	t.Helper()
	board, _, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
	}
	return board
}

// MustPlay plays moves in order and fails the test at the first rejected
// move.
func MustPlay(t testing.TB, p Player, moves ...string) {
	t.Helper()
	for i, text := range moves {
		if _, err := p.Play(text); err != nil {
			t.Fatalf("move %d (%q) rejected: %v", i+1, text, err)
		}
	}
}

// AssertPlacement compares the piece placement of board with want, given
// as the first field of a FEN string.
func AssertPlacement(t *testing.T, board *chess.Board, want string, msgAndArgs ...interface{}) {
	t.Helper()
	AssertEqual(t, engine.PlacementFEN(board), want, msgAndArgs...)
}

// AssertPiece fails unless want stands on sq. Moved flags and en-passant
// squares are ignored.
func AssertPiece(t *testing.T, board *chess.Board, sq string, want chess.Piece) {
	t.Helper()
	got, _ := board.Lookup(chess.MustSquare(sq))
	if got.Type != want.Type || got.Colour != want.Colour {
		t.Errorf("piece on %s = %v, want %v", sq, got, want)
	}
}
