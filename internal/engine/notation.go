package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// ParseMove translates move text into a Move for the side to move. The
// accepted forms are castling (O-O, 0-0, O-O-O, 0-0-0), explicit squares
// (e2-e4, e2e4, e4xd5), pawn moves by target (e4), piece moves (Nf3, Pe4),
// piece captures (Nxe5) and pawn captures (fxe6, including en passant).
// A trailing check or mate marker is ignored.
//
// Piece moves are resolved against board: exactly one piece of the named
// type must be able to make the move.
//
// Malformed text fails with errors.ErrParseFailure and the message always
// quotes text in full.
func ParseMove(board *chess.Board, text string, colour chess.Colour) (Move, error) {
	move, err := parseMove(board, strings.TrimRight(text, "+#"), colour, false)
	var pe *errors.ParseError
	if errors.As(err, &pe) && pe.Input != text {
		return nil, fmt.Errorf("%q: %w", text, err)
	}
	return move, err
}

func parseMove(board *chess.Board, text string, colour chess.Colour, capture bool) (Move, error) {
	switch text {
	case "O-O", "0-0":
		return KingsideCastle(colour), nil
	case "O-O-O", "0-0-0":
		return QueensideCastle(colour), nil
	}

	switch {
	case text == "" || strings.ContainsAny(text, " \t"):
		return nil, notationError(text)

	case strings.Contains(text, "-"):
		parts := strings.Split(text, "-")
		if len(parts) != 2 {
			return nil, notationError(text)
		}
		from, err := chess.ParseSquare(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		to, err := chess.ParseSquare(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		return NewSimpleMove(from, to, capture), nil

	case strings.Contains(text, "x"):
		return parseCapturingMove(board, text, colour)
	}

	if len(text) == 2 {
		// A bare target square such as "e4" is a pawn move, read as "Pe4".
		text = "P" + text
	}

	if pieceType := chess.PieceTypeFromLetter(text[0]); pieceType != chess.NoPiece {
		to, err := chess.ParseSquare(text[1:])
		if err != nil {
			return nil, err
		}
		return resolvePieceMove(board, pieceType, to, colour, capture)
	}

	if len(text) == 4 {
		// "e2e4" is handled as "e2-e4".
		return parseMove(board, text[:2]+"-"+text[2:], colour, false)
	}
	return nil, notationError(text)
}

// resolvePieceMove finds the single piece of the given type and colour that
// can move (or capture) to the target square.
func resolvePieceMove(board *chess.Board, pieceType chess.PieceType, to chess.Square, colour chess.Colour, capture bool) (Move, error) {
	var candidates []chess.Placement
	for _, pl := range board.Collect(pieceType, colour) {
		var ok bool
		if capture {
			ok = pl.Piece.CanCapture(board, pl.Square, to)
		} else {
			ok = board.IsEmpty(to) && pl.Piece.CanMoveTo(board, pl.Square, to)
		}
		if ok {
			candidates = append(candidates, pl)
		}
	}

	switch len(candidates) {
	case 0:
		verb := "move to"
		if capture {
			verb = "capture on"
		}
		return nil, fmt.Errorf("no %s %s can %s %s: %w", colour, pieceType, verb, to, errors.ErrInvalidMove)
	case 1:
		return NewSimpleMove(candidates[0].Square, to, capture), nil
	}
	// Disambiguation such as "Ngf3" or "N1f3" is not supported.
	return nil, fmt.Errorf("ambiguous move: more than one %s %s can move to %s: %w",
		colour, pieceType, to, errors.ErrInvalidMove)
}

// parseCapturingMove parses moves of the form "Nxd5", "fxe6" and "e4xd5".
func parseCapturingMove(board *chess.Board, text string, colour chess.Colour) (Move, error) {
	var move Move
	var err error

	switch strings.Index(text, "x") {
	case 1:
		if chess.PieceTypeFromLetter(text[0]) != chess.NoPiece {
			// "Nxe5" is handled as "Ne5" with the capture flag set.
			move, err = parseMove(board, text[:1]+text[2:], colour, true)
		} else {
			move, err = parsePawnCapture(board, text, colour)
		}
	case 2:
		// "e4xd5" is handled as "e4-d5" with the capture flag set.
		move, err = parseMove(board, strings.Replace(text, "x", "-", 1), colour, true)
	default:
		return nil, notationError(text)
	}
	if err != nil {
		return nil, err
	}

	if sm, ok := move.(*SimpleMove); !ok || !sm.IsCapture(board) {
		return nil, fmt.Errorf("%s is not a capture: %w", text, errors.ErrInvalidMove)
	}
	return move, nil
}

// parsePawnCapture parses pawn captures of the form "fxe6". The pawn stands
// on the given file one rank behind the target.
func parsePawnCapture(board *chess.Board, text string, colour chess.Colour) (Move, error) {
	to, err := chess.ParseSquare(text[2:])
	if err != nil {
		return nil, err
	}
	from, err := chess.SquareOf(text[0], to.Rank-colour.Direction())
	if err != nil {
		if text[0] < 'a' || text[0] > 'h' {
			return nil, notationError(text)
		}
		return nil, fmt.Errorf("no %s pawn can capture on %s: %w", colour, to, errors.ErrInvalidMove)
	}

	if pawn, ok := board.Lookup(from); ok && board.IsPawn(from, colour) && pawn.CanCapture(board, from, to) {
		return NewSimpleMove(from, to, true), nil
	}
	return nil, fmt.Errorf("no %s pawn can capture on %s: %w", colour, to, errors.ErrInvalidMove)
}

func notationError(text string) error {
	return &errors.ParseError{Err: errors.ErrParseFailure, Input: text, Expected: "move notation"}
}
