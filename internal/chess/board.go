package chess

import (
	"fmt"

	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// Board is the authoritative position: which piece stands on which square,
// and where the two kings are. It is not safe for concurrent use.
type Board struct {
	// squares[file-1][rank-1]; the zero Piece marks an empty square.
	squares [BoardSize][BoardSize]Piece

	// Keep track of where the two kings are for check detection.
	// The zero Square means the king has not been placed.
	whiteKing Square
	blackKing Square
}

// BoardState captures all mutable board state for save/restore operations.
// Pieces are held by value, so a saved state shares nothing with the board.
type BoardState struct {
	squares   [BoardSize][BoardSize]Piece
	whiteKing Square
	blackKing Square
}

// Placement pairs a piece with the square it stands on.
type Placement struct {
	Square Square
	Piece  Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board holding the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	*b = Board{}

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for i, pt := range backRank {
		file := i + 1
		b.Put(Square{File: file, Rank: 1}, W(pt))
		b.Put(Square{File: file, Rank: 2}, W(Pawn))
		b.Put(Square{File: file, Rank: 7}, B(Pawn))
		b.Put(Square{File: file, Rank: 8}, B(pt))
	}
}

// Copy creates an independent copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// SaveState captures the current board state for later restoration.
func (b *Board) SaveState() BoardState {
	return BoardState{
		squares:   b.squares,
		whiteKing: b.whiteKing,
		blackKing: b.blackKing,
	}
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	b.squares = s.squares
	b.whiteKing = s.whiteKing
	b.blackKing = s.blackKing
}

// Equal reports whether two boards hold identical positions, including
// per-piece state and the king index.
func (b *Board) Equal(other *Board) bool {
	return b.SaveState() == other.SaveState()
}

func (b *Board) at(sq Square) *Piece {
	return &b.squares[sq.File-1][sq.Rank-1]
}

// IsEmpty reports whether sq holds no piece. Squares off the board are
// reported empty.
func (b *Board) IsEmpty(sq Square) bool {
	if !sq.IsValid() {
		return true
	}
	return b.at(sq).IsEmpty()
}

// Lookup returns the piece on sq and whether there is one.
func (b *Board) Lookup(sq Square) (Piece, bool) {
	if b.IsEmpty(sq) {
		return Piece{}, false
	}
	return *b.at(sq), true
}

// PieceAt returns the piece on sq. It fails when the square is empty, so
// callers should check IsEmpty first.
func (b *Board) PieceAt(sq Square) (Piece, error) {
	p, ok := b.Lookup(sq)
	if !ok {
		return Piece{}, fmt.Errorf("no piece at %s: %w", sq, errors.ErrIllegalMove)
	}
	return p, nil
}

// Put places p on sq, replacing whatever stood there. The king index
// follows: a king placed on sq is recorded and a king overwritten there is
// forgotten.
func (b *Board) Put(sq Square, p Piece) {
	if !sq.IsValid() {
		return
	}
	b.forgetKing(sq)
	*b.at(sq) = p
	if p.Type == King {
		b.setKingSquare(p.Colour, sq)
	}
}

// Remove clears sq. Removing a king drops it from the king index.
func (b *Board) Remove(sq Square) {
	if !sq.IsValid() {
		return
	}
	b.forgetKing(sq)
	*b.at(sq) = Piece{}
}

func (b *Board) forgetKing(sq Square) {
	if old := *b.at(sq); old.Type == King && b.KingSquare(old.Colour) == sq {
		b.setKingSquare(old.Colour, Square{})
	}
}

// SetMoved marks the piece on sq as having moved.
func (b *Board) SetMoved(sq Square) {
	if !b.IsEmpty(sq) {
		b.at(sq).Moved = true
	}
}

// SetEnPassant records target as the en-passant capture square of the pawn
// on sq. It does nothing if sq does not hold a pawn.
func (b *Board) SetEnPassant(sq, target Square) {
	if b.IsAnyPawn(sq) {
		b.at(sq).EnPassant = target
	}
}

// ClearEnPassant clears the en-passant square of every pawn on the board.
func (b *Board) ClearEnPassant() {
	for f := range b.squares {
		for r := range b.squares[f] {
			if b.squares[f][r].Type == Pawn {
				b.squares[f][r].EnPassant = Square{}
			}
		}
	}
}

// KingSquare returns the square of the king of the given colour, or the
// zero Square if no such king has been placed.
func (b *Board) KingSquare(colour Colour) Square {
	if colour == White {
		return b.whiteKing
	}
	return b.blackKing
}

func (b *Board) setKingSquare(colour Colour, sq Square) {
	if colour == White {
		b.whiteKing = sq
	} else {
		b.blackKing = sq
	}
}

// IsPieceOf reports whether a piece of the given type and colour stands on sq.
func (b *Board) IsPieceOf(sq Square, pieceType PieceType, colour Colour) bool {
	p, ok := b.Lookup(sq)
	return ok && p.Type == pieceType && p.Colour == colour
}

// IsKing reports whether a king of the given colour stands on sq.
func (b *Board) IsKing(sq Square, colour Colour) bool {
	return b.IsPieceOf(sq, King, colour)
}

// IsRook reports whether a rook of the given colour stands on sq.
func (b *Board) IsRook(sq Square, colour Colour) bool {
	return b.IsPieceOf(sq, Rook, colour)
}

// IsPawn reports whether a pawn of the given colour stands on sq.
func (b *Board) IsPawn(sq Square, colour Colour) bool {
	return b.IsPieceOf(sq, Pawn, colour)
}

// IsAnyPawn reports whether a pawn of either colour stands on sq.
func (b *Board) IsAnyPawn(sq Square) bool {
	p, ok := b.Lookup(sq)
	return ok && p.Type == Pawn
}

// IsOppositeColour reports whether sq holds a piece of the other colour
// than p.
func (b *Board) IsOppositeColour(sq Square, p Piece) bool {
	other, ok := b.Lookup(sq)
	return ok && !other.SameColour(p)
}

// Pieces returns every piece on the board, ordered by file then rank.
func (b *Board) Pieces() []Placement {
	var out []Placement
	for f := range b.squares {
		for r := range b.squares[f] {
			if p := b.squares[f][r]; !p.IsEmpty() {
				out = append(out, Placement{Square: Square{File: f + 1, Rank: r + 1}, Piece: p})
			}
		}
	}
	return out
}

// Collect returns the pieces of the given type and colour, ordered by file
// then rank.
func (b *Board) Collect(pieceType PieceType, colour Colour) []Placement {
	var out []Placement
	for _, pl := range b.Pieces() {
		if pl.Piece.Type == pieceType && pl.Piece.Colour == colour {
			out = append(out, pl)
		}
	}
	return out
}

// IsInCheck returns true if the given colour's king is attacked by any
// opposing piece. A colour without a king is never in check.
func (b *Board) IsInCheck(colour Colour) bool {
	king := b.KingSquare(colour)
	if !king.IsValid() {
		return false
	}
	for _, pl := range b.Pieces() {
		if pl.Piece.Colour != colour && pl.Piece.Covers(b, pl.Square, king) {
			return true
		}
	}
	return false
}
