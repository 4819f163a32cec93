// Package chess provides core chess types: squares, pieces and the board.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Direction returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the rank the colour's king and rooks start on.
func (c Colour) HomeRank() int {
	if c == White {
		return FirstRank
	}
	return LastRank
}

// PawnRank returns the rank the colour's pawns start on.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Direction()
}

// PieceType represents a chess piece kind.
type PieceType int

const (
	NoPiece PieceType = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Value returns the material value of the piece type. It is display
// metadata and plays no part in move legality.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	}
	return 0
}

// PieceTypeFromLetter converts an uppercase SAN letter (K, Q, R, B, N, P)
// to a piece type. NoPiece is returned for any other byte.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'P':
		return Pawn
	}
	return NoPiece
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstFile = 1
	LastFile  = BoardSize
	FirstRank = 1
	LastRank  = BoardSize

	FileBase = 'a'
	RankBase = '1'

	// Castling files.
	KingFile          = 5
	KingsideRookFile  = 8
	QueensideRookFile = 1
)

// CastleSide selects king-side or queen-side castling.
type CastleSide int

const (
	Kingside CastleSide = iota
	Queenside
)

// String returns the string representation of a castling side.
func (s CastleSide) String() string {
	if s == Queenside {
		return "Queen-side"
	}
	return "King-side"
}

// RookFile returns the file of the rook taking part in castling on side s.
func (s CastleSide) RookFile() int {
	if s == Queenside {
		return QueensideRookFile
	}
	return KingsideRookFile
}

// KingTargetFile returns the file the king lands on after castling.
func (s CastleSide) KingTargetFile() int {
	if s == Queenside {
		return 3
	}
	return 7
}

// RookTargetFile returns the file the rook lands on after castling.
func (s CastleSide) RookTargetFile() int {
	if s == Queenside {
		return 4
	}
	return 6
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
