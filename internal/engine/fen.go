package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string and returns it with the
// side to move. Only the first four fields carry meaning: the clocks are
// accepted but not tracked. Kings and rooks whose castling right is absent
// are marked as moved, and an en-passant field arms the pawns that could
// capture onto it.
func NewBoardFromFEN(fen string) (*chess.Board, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, chess.White, err
	}

	toMove, err := parseSideToMove(parts)
	if err != nil {
		return nil, chess.White, err
	}

	if err := parseCastlingRights(board, parts); err != nil {
		return nil, chess.White, err
	}
	if err := parseEnPassant(board, toMove, parts); err != nil {
		return nil, chess.White, err
	}

	return board, toMove, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rank := chess.LastRank
	file := chess.FirstFile

	for _, c := range positions {
		switch {
		case c == '/':
			rank--
			file = chess.FirstFile
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			pieceType := chess.PieceTypeFromLetter(byte(unicode.ToUpper(c)))
			if pieceType == chess.NoPiece {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			sq, err := chess.SquareAt(file, rank)
			if err != nil {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			board.Put(sq, chess.NewPiece(colour, pieceType))
			file++
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
}

// parseCastlingRights parses the castling availability field. A missing
// field leaves every piece unmoved.
func parseCastlingRights(board *chess.Board, parts []string) error {
	if len(parts) < 3 {
		return nil
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, pl := range board.Collect(chess.King, colour) {
			board.SetMoved(pl.Square)
		}
		for _, pl := range board.Collect(chess.Rook, colour) {
			board.SetMoved(pl.Square)
		}
	}
	if parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		var side chess.CastleSide
		switch unicode.ToUpper(c) {
		case 'K':
			side = chess.Kingside
		case 'Q':
			side = chess.Queenside
		default:
			return fmt.Errorf("invalid castling field: %s: %w", parts[2], errors.ErrInvalidFEN)
		}
		rank := colour.HomeRank()
		kingSq := chess.Square{File: chess.KingFile, Rank: rank}
		rookSq := chess.Square{File: side.RookFile(), Rank: rank}
		if board.IsKing(kingSq, colour) && board.IsRook(rookSq, colour) {
			unmark(board, kingSq)
			unmark(board, rookSq)
		}
	}
	return nil
}

// unmark clears the moved flag of the piece on sq.
func unmark(board *chess.Board, sq chess.Square) {
	if p, ok := board.Lookup(sq); ok {
		p.Moved = false
		board.Put(sq, p)
	}
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, toMove chess.Colour, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
	}
	// The pawn that just advanced two squares stands one rank past the target.
	pushed := chess.Square{File: target.File, Rank: target.Rank - toMove.Direction()}
	armEnPassant(board, pushed, target, toMove)
	return nil
}

// armEnPassant sets target as the en-passant square of every pawn of the
// capturing colour standing beside pushed.
func armEnPassant(board *chess.Board, pushed, target chess.Square, capturer chess.Colour) {
	for _, df := range []int{-1, 1} {
		sq := chess.Square{File: pushed.File + df, Rank: pushed.Rank}
		if board.IsPawn(sq, capturer) {
			board.SetEnPassant(sq, target)
		}
	}
}

// BoardToFEN converts a board to a FEN string. The halfmove clock is not
// tracked and is always written as 0.
func BoardToFEN(board *chess.Board, toMove chess.Colour, moveNumber int) string {
	var sb strings.Builder

	sb.WriteString(PlacementFEN(board))
	sb.WriteByte(' ')
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board, toMove)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "0 %d", moveNumber)

	return sb.String()
}

// PlacementFEN returns the piece placement field of the position.
func PlacementFEN(board *chess.Board) string {
	var sb strings.Builder
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for file := chess.FirstFile; file <= chess.LastFile; file++ {
			p, ok := board.Lookup(chess.Square{File: file, Rank: rank})
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// writeCastlingRights writes the castling availability to the builder.
// A right exists while the king and that rook are both unmoved on their
// starting squares.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		rank := colour.HomeRank()
		king, ok := board.Lookup(chess.Square{File: chess.KingFile, Rank: rank})
		if !ok || king.Type != chess.King || king.Colour != colour || king.Moved {
			continue
		}
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			rookSq := chess.Square{File: side.RookFile(), Rank: rank}
			rook, ok := board.Lookup(rookSq)
			if !ok || !board.IsRook(rookSq, colour) || rook.Moved {
				continue
			}
			letter := byte('K')
			if side == chess.Queenside {
				letter = 'Q'
			}
			if colour == chess.Black {
				letter = byte(unicode.ToLower(rune(letter)))
			}
			sb.WriteByte(letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board, toMove chess.Colour) {
	for _, pl := range board.Collect(chess.Pawn, toMove) {
		if pl.Piece.EnPassant.IsValid() {
			sb.WriteString(pl.Piece.EnPassant.String())
			return
		}
	}
	sb.WriteByte('-')
}
