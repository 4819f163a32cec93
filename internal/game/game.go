// Package game tracks one game in progress: the board, the side to move,
// the ply counter and the moves played so far. The engine itself keeps no
// such state; Game passes the side to move into every call.
package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/engine"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// Game is a game in progress. It is not safe for concurrent use.
type Game struct {
	board    *chess.Board
	moves    []string
	ply      int // the ply about to be played; 1 is White's first move
	startFEN string
	cfg      *config.Config
}

// New creates a game from the standard starting position. cfg may be nil,
// in which case nothing is logged.
func New(cfg *config.Config) *Game {
	return &Game{
		board: chess.NewInitialBoard(),
		ply:   1,
		cfg:   cfg,
	}
}

// NewFromFEN creates a game from a FEN position. The full move number, if
// present, sets the ply counter.
func NewFromFEN(fen string, cfg *config.Config) (*Game, error) {
	board, toMove, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}

	fullMove := 1
	if fields := strings.Fields(fen); len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad full move number %q: %w", fields[5], errors.ErrInvalidFEN)
		}
		fullMove = n
	}

	ply := 2*(fullMove-1) + 1
	if toMove == chess.Black {
		ply++
	}
	return &Game{board: board, ply: ply, startFEN: fen, cfg: cfg}, nil
}

// Board returns the live board. Callers must not mutate it.
func (g *Game) Board() *chess.Board {
	return g.board
}

// Ply returns the number of the ply about to be played.
func (g *Game) Ply() int {
	return g.ply
}

// SideToMove returns White on odd plies and Black on even ones.
func (g *Game) SideToMove() chess.Colour {
	if g.ply%2 == 1 {
		return chess.White
	}
	return chess.Black
}

// MoveNumber returns the full move number, starting at 1.
func (g *Game) MoveNumber() int {
	return (g.ply + 1) / 2
}

// Moves returns a copy of the move texts accepted so far.
func (g *Game) Moves() []string {
	out := make([]string, len(g.moves))
	copy(out, g.moves)
	return out
}

// StartPly returns the ply on which the first recorded move was played.
func (g *Game) StartPly() int {
	return g.ply - len(g.moves)
}

// BlackStarted reports whether the first recorded move was Black's.
func (g *Game) BlackStarted() bool {
	return g.StartPly()%2 == 0
}

// StartFEN returns the FEN the game started from, or "" for the standard
// starting position.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// FEN returns the current position as a FEN string.
func (g *Game) FEN() string {
	return engine.BoardToFEN(g.board, g.SideToMove(), g.MoveNumber())
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.board.IsInCheck(g.SideToMove())
}

// Material returns the summed piece values of colour.
func (g *Game) Material(colour chess.Colour) int {
	total := 0
	for _, pl := range g.board.Pieces() {
		if pl.Piece.Colour == colour {
			total += pl.Piece.Value()
		}
	}
	return total
}

// Play parses text for the side to move and applies it. On success the
// text is added to the history and the turn passes; on failure the game is
// unchanged and the error is a *errors.GameError wrapping the cause.
func (g *Game) Play(text string) (engine.Move, error) {
	text = strings.TrimSpace(text)
	colour := g.SideToMove()

	move, err := engine.ParseMove(g.board, text, colour)
	if err == nil {
		err = move.Apply(g.board, colour)
	}
	if err != nil {
		return nil, &errors.GameError{Err: err, PlyNum: g.ply, MoveText: text}
	}

	g.logf(config.Chatty, "ply %d: %s plays %s (%s)", g.ply, colour, text, move)
	g.notePromotion(move, colour)

	g.moves = append(g.moves, text)
	g.ply++
	return move, nil
}

// notePromotion reports a pawn that has reached the last rank. The pawn
// stays a pawn.
func (g *Game) notePromotion(move engine.Move, colour chess.Colour) {
	sm, ok := move.(*engine.SimpleMove)
	if !ok {
		return
	}
	if p, ok := g.board.Lookup(sm.To); ok && p.CanBePromoted(sm.To) {
		g.logf(config.Normal, "%s pawn on %s can be promoted; promotion is not supported", colour, sm.To)
	}
}

// Replay plays moves in order, stopping at the first failure. The moves
// before the failure stay played.
func (g *Game) Replay(moves []string) error {
	for _, text := range moves {
		if _, err := g.Play(text); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns the game to the position it started from.
func (g *Game) Reset() {
	if g.startFEN != "" {
		if fresh, err := NewFromFEN(g.startFEN, g.cfg); err == nil {
			*g = *fresh
			return
		}
	}
	*g = *New(g.cfg)
}

func (g *Game) logf(level int, format string, args ...any) {
	if g.cfg != nil {
		g.cfg.Logf(level, format, args...)
	}
}
