package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
	"github.com/lgbarn/ascii-chess-go/internal/game"
	"github.com/lgbarn/ascii-chess-go/internal/movelist"
)

// JSONGame is a snapshot of a game in progress.
type JSONGame struct {
	ID         string       `json:"id,omitempty"`
	ToMove     string       `json:"toMove"`
	Ply        int          `json:"ply"`
	MoveNumber int          `json:"moveNumber"`
	Moves      [][]string   `json:"moves"`
	StartFEN   string       `json:"startFEN,omitempty"`
	FEN        string       `json:"fen"`
	InCheck    bool         `json:"inCheck"`
	Material   JSONMaterial `json:"material"`
	Board      []string     `json:"board"`
}

// JSONMaterial holds each side's material count.
type JSONMaterial struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// GameToJSON converts a game to its JSON snapshot.
func GameToJSON(g *game.Game) *JSONGame {
	return &JSONGame{
		ToMove:     g.SideToMove().String(),
		Ply:        g.Ply(),
		MoveNumber: g.MoveNumber(),
		Moves:      movelist.Pairs(g.Moves(), g.BlackStarted()),
		StartFEN:   g.StartFEN(),
		FEN:        g.FEN(),
		InCheck:    g.InCheck(),
		Material: JSONMaterial{
			White: g.Material(chess.White),
			Black: g.Material(chess.Black),
		},
		Board: BoardRows(g.Board()),
	}
}

// OutputGameJSON writes a single game snapshot as indented JSON.
func OutputGameJSON(w io.Writer, g *game.Game) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(g))
}
