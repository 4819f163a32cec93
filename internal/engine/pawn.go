package engine

import "github.com/lgbarn/ascii-chess-go/internal/chess"

// isEnPassant identifies an en-passant capture by its shape: a pawn moving
// to an empty square on a neighbouring file.
func (m *SimpleMove) isEnPassant(board *chess.Board) bool {
	return board.IsAnyPawn(m.From) && board.IsEmpty(m.To) && m.From.File != m.To.File
}

// capturedPawnSquare returns the square of the pawn taken by an en-passant
// capture of the given colour landing on to.
func capturedPawnSquare(to chess.Square, colour chess.Colour) chess.Square {
	return chess.Square{File: to.File, Rank: to.Rank - colour.Direction()}
}

// updateEnPassantSquares arms the opposing pawns beside a pawn that has just
// advanced two ranks, so they may capture it en passant on the next ply.
func (m *SimpleMove) updateEnPassantSquares(board *chess.Board, colour chess.Colour) {
	if m.To.Rank-m.From.Rank != 2*colour.Direction() {
		return
	}
	passed := chess.Square{File: m.To.File, Rank: m.To.Rank - colour.Direction()}
	armEnPassant(board, m.To, passed, colour.Opposite())
}
