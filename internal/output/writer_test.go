package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/game"
	"github.com/lgbarn/ascii-chess-go/internal/testutil"
)

const initialDump = `    A B C D E F G H
-----------------------
8 | r n b q k b n r | 8
7 | p p p p p p p p | 7
6 | · · · · · · · · | 6
5 | · · · · · · · · | 5
4 | · · · · · · · · | 4
3 | · · · · · · · · | 3
2 | P P P P P P P P | 2
1 | R N B Q K B N R | 1
-----------------------
    A B C D E F G H
`

func renderBoard(g *game.Game, cfg *config.OutputConfig) string {
	var buf bytes.Buffer
	RenderBoard(&buf, g.Board(), cfg)
	return buf.String()
}

func TestRenderBoard_Initial(t *testing.T) {
	testutil.AssertEqual(t, renderBoard(game.New(nil), nil), initialDump)
}

func TestRenderBoard_Options(t *testing.T) {
	g := game.New(nil)
	testutil.MustPlay(t, g, "e4")

	cfg := config.NewOutputConfig()
	cfg.ShowCoordinates = false
	cfg.EmptySquare = "."

	got := renderBoard(g, cfg)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	testutil.AssertEqual(t, len(lines), 8, "rows without coordinates")
	testutil.AssertEqual(t, lines[0], "r n b q k b n r")
	testutil.AssertEqual(t, lines[4], ". . . . P . . .")
	testutil.AssertEqual(t, lines[6], "P P P P . P P P")
}

func TestBoardRows(t *testing.T) {
	g, err := game.NewFromFEN("4k3/8/8/3pP3/8/8/8/R3K3 w - d6 0 2", nil)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, BoardRows(g.Board()), []string{
		"....k...",
		"........",
		"........",
		"...pP...",
		"........",
		"........",
		"........",
		"R...K...",
	})
}

func TestWriteMoves(t *testing.T) {
	tests := []struct {
		name       string
		moves      []string
		firstMove  int
		blackFirst bool
		maxLen     int
		want       string
	}{
		{
			name:      "from the start",
			moves:     []string{"e4", "e5", "Nf3"},
			firstMove: 1,
			maxLen:    80,
			want:      "1. e4 e5 2. Nf3\n",
		},
		{
			name:       "black first",
			moves:      []string{"Kd7", "Ke2"},
			firstMove:  20,
			blackFirst: true,
			maxLen:     80,
			want:       "20... Kd7 21. Ke2\n",
		},
		{
			name:      "wraps",
			moves:     []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"},
			firstMove: 1,
			maxLen:    20,
			want:      "1. e4 e5 2. Nf3 Nc6\n3. Bc4 Bc5\n",
		},
		{
			name:      "no wrapping",
			moves:     []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"},
			firstMove: 1,
			maxLen:    0,
			want:      "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5\n",
		},
		{
			name:      "nothing",
			firstMove: 1,
			maxLen:    80,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteMoves(&buf, tt.moves, tt.firstMove, tt.blackFirst, tt.maxLen)
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

func TestTextWriter_WriteGame(t *testing.T) {
	g := game.New(nil)
	testutil.MustPlay(t, g, "e4", "f6", "d4", "g5", "Qh5")

	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.ShowBoard = false
	w := NewTextWriter(&buf, cfg)

	testutil.AssertNoError(t, w.WriteGame(g))
	testutil.AssertEqual(t, buf.String(), "1. e4 f6 2. d4 g5 3. Qh5\nBlack to move (move 3), in check\n")
}

func TestTextWriter_UnlimitedWidth(t *testing.T) {
	g := game.New(nil)
	moves := []string{
		"Nf3", "Nf6", "Ng1", "Ng8", "Nc3", "Nc6", "Nb1", "Nb8",
		"Nf3", "Nf6", "Ng1", "Ng8", "Nc3", "Nc6", "Nb1", "Nb8",
		"Nf3", "Nf6", "Ng1", "Ng8", "Nc3", "Nc6", "Nb1", "Nb8",
		"Nf3", "Nf6", "Ng1", "Ng8", "Nc3", "Nc6", "Nb1", "Nb8",
	}
	testutil.MustPlay(t, g, moves...)

	cfg := config.NewOutputConfig()
	cfg.ShowBoard = false
	cfg.MaxLineLength = 0
	testutil.AssertNoError(t, cfg.Validate())

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteGame(g))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 2, "one move line and the status line")
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "1. Nf3 Nf6 2. Ng1 Ng8"))
	testutil.AssertTrue(t, strings.HasSuffix(lines[0], "16. Nb1 Nb8"))
}

func TestTextWriter_BlackFirst(t *testing.T) {
	g, err := game.NewFromFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 20", nil)
	testutil.AssertNoError(t, err)
	testutil.MustPlay(t, g, "Kd7", "Ke2")

	cfg := config.NewOutputConfig()
	cfg.ShowBoard = false

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteGame(g))
	testutil.AssertEqual(t, buf.String(), "20... Kd7 21. Ke2\nBlack to move (move 21)\n")
}

func TestTextWriter_WithBoard(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, nil)

	testutil.AssertNoError(t, w.WriteGame(game.New(nil)))
	testutil.AssertEqual(t, buf.String(), initialDump+"White to move (move 1)\n")
}

func TestGameToJSON(t *testing.T) {
	g := game.New(nil)
	testutil.MustPlay(t, g, "e4", "d5", "exd5")

	jg := GameToJSON(g)

	testutil.AssertEqual(t, jg.ToMove, "Black")
	testutil.AssertEqual(t, jg.Ply, 4)
	testutil.AssertEqual(t, jg.MoveNumber, 2)
	testutil.AssertEqual(t, jg.Moves, [][]string{{"e4", "d5"}, {"exd5"}})
	testutil.AssertEqual(t, jg.Material, JSONMaterial{White: 39, Black: 38})
	testutil.AssertFalse(t, jg.InCheck)
	testutil.AssertEqual(t, jg.FEN, g.FEN())
	testutil.AssertEqual(t, jg.Board[3], "...P....")
}

func TestGameToJSON_BlackFirst(t *testing.T) {
	g, err := game.NewFromFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 20", nil)
	testutil.AssertNoError(t, err)
	testutil.MustPlay(t, g, "Kd7", "Ke2", "Kc6")

	testutil.AssertEqual(t, GameToJSON(g).Moves, [][]string{{"...", "Kd7"}, {"Ke2", "Kc6"}})
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	testutil.AssertNoError(t, w.WriteGame(game.New(nil)))

	var got JSONGame
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))
	testutil.AssertEqual(t, got.ToMove, "White")
	testutil.AssertEqual(t, got.Moves, [][]string{})
	testutil.AssertContains(t, buf.String(), "\n  \"toMove\"")
}

func TestNewGameWriter(t *testing.T) {
	cfg := config.NewConfig()
	if _, ok := NewGameWriter(&bytes.Buffer{}, cfg).(*TextWriter); !ok {
		t.Error("default writer should be a TextWriter")
	}
	cfg.Output.JSONFormat = true
	if _, ok := NewGameWriter(&bytes.Buffer{}, cfg).(*JSONWriter); !ok {
		t.Error("JSON output should select a JSONWriter")
	}
}
