package engine

import (
	"fmt"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// Castling is a king-side or queen-side castling move.
type Castling struct {
	Side   chess.CastleSide
	Colour chess.Colour
}

// KingsideCastle returns the king-side castling move for colour.
func KingsideCastle(colour chess.Colour) *Castling {
	return &Castling{Side: chess.Kingside, Colour: colour}
}

// QueensideCastle returns the queen-side castling move for colour.
func QueensideCastle(colour chess.Colour) *Castling {
	return &Castling{Side: chess.Queenside, Colour: colour}
}

// String returns the castling move in SAN.
func (c *Castling) String() string {
	if c.Side == chess.Queenside {
		return "O-O-O"
	}
	return "O-O"
}

// KingSquare returns the king's starting square.
func (c *Castling) KingSquare() chess.Square {
	return chess.Square{File: chess.KingFile, Rank: c.Colour.HomeRank()}
}

// RookSquare returns the starting square of the rook taking part.
func (c *Castling) RookSquare() chess.Square {
	return chess.Square{File: c.Side.RookFile(), Rank: c.Colour.HomeRank()}
}

// Apply castles for colour. The king and the chosen rook must both be
// unmoved with nothing between them, and the king must not be in check
// before or after. Squares the king passes over are not tested for attack.
func (c *Castling) Apply(board *chess.Board, colour chess.Colour) error {
	if colour != c.Colour {
		return fmt.Errorf("%s cannot castle on %s's turn: %w", c.Colour, colour, errors.ErrInvalidMove)
	}

	kingSq := c.KingSquare()
	rookSq := c.RookSquare()

	if !board.IsKing(kingSq, colour) {
		return fmt.Errorf("the %s king is not standing on %s: %w", colour, kingSq, errors.ErrInvalidMove)
	}
	king, _ := board.Lookup(kingSq)

	if !king.CanCastle(board, kingSq, rookSq) {
		return fmt.Errorf("%s castling is not allowed for %s: %w", c.Side, colour, errors.ErrInvalidMove)
	}
	if board.IsInCheck(colour) {
		return fmt.Errorf("castling is not allowed since the %s king is in check: %w", colour, errors.ErrInvalidMove)
	}

	state := board.SaveState()
	rook, _ := board.Lookup(rookSq)
	rank := colour.HomeRank()

	board.Remove(kingSq)
	board.Remove(rookSq)
	kingTo := chess.Square{File: c.Side.KingTargetFile(), Rank: rank}
	rookTo := chess.Square{File: c.Side.RookTargetFile(), Rank: rank}
	board.Put(kingTo, king)
	board.Put(rookTo, rook)

	if board.IsInCheck(colour) {
		board.RestoreState(state)
		return fmt.Errorf("%s's king would be in check after %s: %w", colour, c, errors.ErrIllegalMove)
	}

	board.ClearEnPassant()
	board.SetMoved(kingTo)
	board.SetMoved(rookTo)

	return nil
}
