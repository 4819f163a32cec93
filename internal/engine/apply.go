// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// Move is a single ply waiting to be applied to a board.
type Move interface {
	// Apply validates the move for the given side and plays it on board.
	// On error the board is left exactly as it was.
	Apply(board *chess.Board, colour chess.Colour) error

	// String returns the move in coordinate form, e.g. "e2-e4" or "O-O".
	String() string
}

// SimpleMove moves one piece from one square to another, capturing or not.
type SimpleMove struct {
	From    chess.Square
	To      chess.Square
	Capture bool
}

// NewSimpleMove creates a simple move.
func NewSimpleMove(from, to chess.Square, capture bool) *SimpleMove {
	return &SimpleMove{From: from, To: to, Capture: capture}
}

// String returns the move in hyphenated coordinate form.
func (m *SimpleMove) String() string {
	if m.Capture {
		return m.From.String() + "x" + m.To.String()
	}
	return m.From.String() + "-" + m.To.String()
}

// ApplyMove applies a move to the board for the given side.
func ApplyMove(board *chess.Board, move Move, colour chess.Colour) error {
	if move == nil {
		return fmt.Errorf("no move given: %w", errors.ErrIllegalMove)
	}
	return move.Apply(board, colour)
}

// Apply plays the move. The piece on From must belong to colour, the move
// must fit the piece and must not leave colour's king in check.
func (m *SimpleMove) Apply(board *chess.Board, colour chess.Colour) error {
	piece, err := m.pieceToMove(board, colour)
	if err != nil {
		return err
	}

	state := board.SaveState()

	var valid bool
	if m.Capture {
		valid = piece.CanCapture(board, m.From, m.To)
	} else {
		// A king may "move" onto its own rook when castling; as a simple
		// move the destination has to be empty.
		valid = board.IsEmpty(m.To) && piece.CanMoveTo(board, m.From, m.To)
	}
	if !valid {
		kind := "move"
		if m.Capture {
			kind = "capture"
		}
		return fmt.Errorf("illegal %s: %s: %w", kind, m, errors.ErrIllegalMove)
	}

	if m.Capture && m.isEnPassant(board) {
		board.Remove(capturedPawnSquare(m.To, colour))
	}

	board.Remove(m.From)
	board.Put(m.To, piece)

	if board.IsInCheck(colour) {
		board.RestoreState(state)
		return fmt.Errorf("%s's king would be in check after %s: %w", colour, m, errors.ErrIllegalMove)
	}

	board.ClearEnPassant()
	if piece.Type == chess.Pawn {
		m.updateEnPassantSquares(board, colour)
	}
	board.SetMoved(m.To)

	return nil
}

// pieceToMove returns the piece on From after checking it belongs to colour.
func (m *SimpleMove) pieceToMove(board *chess.Board, colour chess.Colour) (chess.Piece, error) {
	piece, ok := board.Lookup(m.From)
	if !ok {
		return chess.Piece{}, fmt.Errorf("no piece at %s: %w", m.From, errors.ErrIllegalMove)
	}
	if piece.Colour != colour {
		return chess.Piece{}, fmt.Errorf("the piece at %s is the wrong colour: %w", m.From, errors.ErrIllegalMove)
	}
	return piece, nil
}

// IsCapture reports whether the move captures on the current board: the
// destination holds an opposing piece, or the move is an en-passant capture.
func (m *SimpleMove) IsCapture(board *chess.Board) bool {
	if m.isEnPassant(board) {
		return true
	}
	p1, ok1 := board.Lookup(m.From)
	p2, ok2 := board.Lookup(m.To)
	if !ok1 || !ok2 {
		return false
	}
	return !p1.SameColour(p2)
}
