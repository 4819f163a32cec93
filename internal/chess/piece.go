package chess

import "iter"

// Piece is a coloured chess piece together with the per-piece state the
// rules depend on. Pieces are stored by value on the board; the zero Piece
// is an empty square.
type Piece struct {
	Type   PieceType
	Colour Colour

	// Moved is set once the piece has made its first successful move.
	// Only kings and rooks consult it (castling).
	Moved bool

	// EnPassant is the square a pawn may capture onto en passant during the
	// current ply. The zero Square means no such capture is available.
	EnPassant Square
}

// NewPiece returns an unmoved piece.
func NewPiece(colour Colour, pieceType PieceType) Piece {
	return Piece{Type: pieceType, Colour: colour}
}

// W creates a white piece.
func W(pieceType PieceType) Piece {
	return NewPiece(White, pieceType)
}

// B creates a black piece.
func B(pieceType PieceType) Piece {
	return NewPiece(Black, pieceType)
}

// IsEmpty reports whether p is the empty-square placeholder.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Letter returns the piece letter, uppercase for White and lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns a description such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return p.Type.Value()
}

// SameColour reports whether p and other belong to the same side.
func (p Piece) SameColour(other Piece) bool {
	return p.Colour == other.Colour
}

// Covers reports whether p, standing on from, attacks to on board b. What
// currently stands on to does not matter.
func (p Piece) Covers(b *Board, from, to Square) bool {
	df := to.File - from.File
	dr := to.Rank - from.Rank

	switch p.Type {
	case Pawn:
		return dr == p.Colour.Direction() && abs(df) == 1

	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)

	case King:
		return from != to && abs(df) <= 1 && abs(dr) <= 1

	case Bishop, Rook, Queen:
		squares := p.ray(from, to)
		if squares == nil {
			return false
		}
		for sq := range squares {
			if sq == to {
				return true
			}
			// A piece before the target blocks the line.
			if !b.IsEmpty(sq) {
				return false
			}
		}
	}
	return false
}

// ray returns the line a sliding piece would travel from from to to, or nil
// when the displacement is not one the piece can make.
func (p Piece) ray(from, to Square) iter.Seq[Square] {
	df := to.File - from.File
	dr := to.Rank - from.Rank
	if df == 0 && dr == 0 {
		return nil
	}

	straight := df == 0 || dr == 0
	diagonal := abs(df) == abs(dr)

	switch {
	case (p.Type == Rook || p.Type == Queen) && dr == 0:
		return HorizontalRay(from, to)
	case (p.Type == Rook || p.Type == Queen) && df == 0:
		return VerticalRay(from, to)
	case (p.Type == Bishop || p.Type == Queen) && diagonal && !straight:
		return DiagonalRay(from, to)
	}
	return nil
}

// CanMoveTo reports whether p may make the non-capturing move from from to
// to. For a king this also accepts the castling shape onto its own rook's
// square, which the castling move later interprets.
func (p Piece) CanMoveTo(b *Board, from, to Square) bool {
	switch p.Type {
	case Pawn:
		return p.canAdvance(b, from, to)
	case King:
		if p.Covers(b, from, to) {
			return b.IsEmpty(to)
		}
		return p.CanCastle(b, from, to)
	case NoPiece:
		return false
	}
	return p.Covers(b, from, to) && b.IsEmpty(to)
}

// canAdvance is the forward movement rule of a pawn: one step onto an empty
// square, or two from its starting rank when both squares are empty.
func (p Piece) canAdvance(b *Board, from, to Square) bool {
	if from.File != to.File || !b.IsEmpty(to) {
		return false
	}
	dir := p.Colour.Direction()
	switch to.Rank - from.Rank {
	case dir:
		return true
	case 2 * dir:
		return from.Rank == p.Colour.PawnRank() && b.IsEmpty(from.offset(0, dir))
	}
	return false
}

// CanCastle reports whether a king standing on kingSq may castle with the
// rook on rookSq: both on the home rank in their starting files, neither has
// moved and every square strictly between them is empty. Whether the king is
// in check is not considered here.
func (p Piece) CanCastle(b *Board, kingSq, rookSq Square) bool {
	if p.Type != King || p.Moved {
		return false
	}
	rank := p.Colour.HomeRank()
	if kingSq.Rank != rank || rookSq.Rank != rank || kingSq.File != KingFile {
		return false
	}
	if rookSq.File != KingsideRookFile && rookSq.File != QueensideRookFile {
		return false
	}
	if !b.IsRook(rookSq, p.Colour) {
		return false
	}
	if rook, _ := b.Lookup(rookSq); rook.Moved {
		return false
	}
	step := sign(rookSq.File - kingSq.File)
	for f := kingSq.File + step; f != rookSq.File; f += step {
		// TODO: also reject castling through a square the opponent attacks.
		if !b.IsEmpty(Square{File: f, Rank: rank}) {
			return false
		}
	}
	return true
}

// CanCapture reports whether p may capture from from onto to. The target
// must hold an opposing piece that p covers; a pawn may also capture onto
// its en-passant square.
func (p Piece) CanCapture(b *Board, from, to Square) bool {
	if p.Type == Pawn && p.EnPassant.IsValid() && to == p.EnPassant {
		return true
	}
	return b.IsOppositeColour(to, p) && p.Covers(b, from, to)
}

// CanBePromoted reports whether a pawn standing on sq has reached the last
// rank for its colour.
func (p Piece) CanBePromoted(sq Square) bool {
	if p.Type != Pawn {
		return false
	}
	return sq.Rank == p.Colour.Opposite().HomeRank()
}
