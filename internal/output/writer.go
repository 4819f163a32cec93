package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/game"
)

// GameWriter writes a game summary in one output format.
type GameWriter interface {
	WriteGame(g *game.Game) error
}

// NewGameWriter returns the writer selected by cfg.Output.JSONFormat.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output != nil && cfg.Output.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg.Output)
}

// TextWriter writes the board followed by the numbered move list.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer. cfg may be nil.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	return &TextWriter{w: w, cfg: cfg}
}

// WriteGame writes the board (if enabled), the moves and the side to move.
func (tw *TextWriter) WriteGame(g *game.Game) error {
	if tw.cfg.ShowBoard {
		RenderBoard(tw.w, g.Board(), tw.cfg)
	}

	if moves := g.Moves(); len(moves) > 0 {
		WriteMoves(tw.w, moves, (g.StartPly()+1)/2, g.BlackStarted(), int(tw.cfg.MaxLineLength))
	}

	status := fmt.Sprintf("%s to move (move %d)", g.SideToMove(), g.MoveNumber())
	if g.InCheck() {
		status += ", in check"
	}
	_, err := fmt.Fprintln(tw.w, status)
	return err
}

// JSONWriter writes each game as an indented JSON snapshot.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteGame writes a snapshot of g.
func (jw *JSONWriter) WriteGame(g *game.Game) error {
	return OutputGameJSON(jw.w, g)
}
