// console.go - Interactive move loop
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/game"
	"github.com/lgbarn/ascii-chess-go/internal/movelist"
	"github.com/lgbarn/ascii-chess-go/internal/output"
	"github.com/lgbarn/ascii-chess-go/internal/storage"
)

const prompt = "\nEnter a move ('q' to quit, 'b' to print board): "

// errQuit stops the loop.
var errQuit = errors.New("quit")

// Console reads one command or move per line and plays it on its game.
type Console struct {
	cfg       *config.Config
	game      *game.Game
	store     *storage.Storage // nil when no archive is configured
	archiveID string
	out       io.Writer
	in        *bufio.Scanner
}

// NewConsole creates a console for a fresh game. store may be nil.
func NewConsole(cfg *config.Config, store *storage.Storage) *Console {
	return &Console{
		cfg:   cfg,
		game:  game.New(cfg),
		store: store,
		out:   cfg.OutputFile,
	}
}

// Run prints the board and handles lines from r until "q" or end of input.
// Rejected moves and failed commands are reported and the loop goes on.
func (c *Console) Run(r io.Reader) error {
	c.in = bufio.NewScanner(r)

	fmt.Fprintln(c.out)
	c.printBoard()
	for {
		fmt.Fprint(c.out, prompt)
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}
		err := c.Handle(c.in.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(c.out, err)
		}
	}
}

// Handle executes a single input line.
func (c *Console) Handle(line string) error {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return nil
	case "q":
		return errQuit
	case "b":
		c.printBoard()
		return nil
	case "load":
		return c.load(arg)
	case "save":
		return c.save(arg)
	case "moves":
		return c.printMoves()
	case "status":
		return output.NewGameWriter(c.out, c.cfg).WriteGame(c.game)
	case "new":
		return c.reset(arg)
	case "restart":
		c.game.Reset()
		c.archiveID = ""
		c.printBoard()
		return nil
	case "fen":
		fmt.Fprintln(c.out, c.game.FEN())
		return nil
	case "archive":
		return c.archive()
	case "restore":
		return c.restore(arg)
	case "games":
		return c.listGames()
	}

	move, err := c.game.Play(line)
	if err != nil {
		return err
	}
	c.cfg.Logf(config.Chatty, "played %s", move)
	c.afterMove()
	return nil
}

func (c *Console) afterMove() {
	if c.cfg.Output.ShowBoard {
		c.printBoard()
	}
	if c.game.InCheck() {
		fmt.Fprintf(c.out, "%s is in check.\n", c.game.SideToMove())
	}
}

func (c *Console) printBoard() {
	output.RenderBoard(c.out, c.game.Board(), c.cfg.Output)
}

func (c *Console) printMoves() error {
	moves := c.game.Moves()
	if len(moves) == 0 {
		fmt.Fprintln(c.out, "No moves played.")
		return nil
	}
	return output.NewTextWriter(c.out, &config.OutputConfig{
		MaxLineLength: c.cfg.Output.MaxLineLength,
	}).WriteGame(c.game)
}

// fileArg returns arg, or reads a file name from the next input line when
// arg is empty.
func (c *Console) fileArg(arg string) string {
	if arg != "" || c.in == nil {
		return arg
	}
	fmt.Fprint(c.out, "Enter file name: ")
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// load replays a move list on top of the current game.
func (c *Console) load(arg string) error {
	path := c.fileArg(arg)
	if path == "" {
		return nil
	}
	list, err := movelist.Load(path)
	if err != nil {
		return err
	}

	for _, pair := range movelist.Pairs(list.Moves, list.BlackFirst) {
		fmt.Fprint(c.out, strings.Join(pair, " "), " ")
	}
	fmt.Fprintln(c.out)

	firstPly := c.game.Ply()
	err = c.game.Replay(list.Moves)
	list.Locate(err, firstPly)
	fmt.Fprintln(c.out)
	c.printBoard()
	if err != nil {
		return err
	}
	c.cfg.Logf(config.Normal, "loaded %d moves from %s", len(list.Moves), path)
	return nil
}

func (c *Console) save(arg string) error {
	path := c.fileArg(arg)
	if path == "" {
		return nil
	}
	if err := movelist.Save(path, c.game.Moves(), c.game.BlackStarted()); err != nil {
		return err
	}
	c.cfg.Logf(config.Normal, "saved %d moves to %s", len(c.game.Moves()), path)
	return nil
}

// reset starts over from the standard position, or from a FEN if one is
// given.
func (c *Console) reset(fen string) error {
	if err := c.startFrom(fen); err != nil {
		return err
	}
	c.printBoard()
	return nil
}

// startFrom replaces the game with a new one. An empty fen means the
// standard position.
func (c *Console) startFrom(fen string) error {
	g := game.New(c.cfg)
	if fen != "" {
		var err error
		if g, err = game.NewFromFEN(fen, c.cfg); err != nil {
			return err
		}
	}
	c.game = g
	c.archiveID = ""
	return nil
}

func (c *Console) archive() error {
	if c.store == nil {
		return errors.New("no archive configured (use -db)")
	}
	rec := storage.RecordFromGame(c.game)
	rec.ID = c.archiveID
	if err := c.store.SaveGame(rec); err != nil {
		return err
	}
	c.archiveID = rec.ID
	fmt.Fprintf(c.out, "Archived as %s\n", rec.ID)
	return nil
}

func (c *Console) restore(id string) error {
	if c.store == nil {
		return errors.New("no archive configured (use -db)")
	}
	if id == "" {
		return errors.New("usage: restore <id>")
	}
	rec, err := c.store.LoadGame(id)
	if err != nil {
		return err
	}
	g, err := rec.Game(c.cfg)
	if err != nil {
		return err
	}
	c.game = g
	c.archiveID = rec.ID
	c.printBoard()
	return nil
}

func (c *Console) listGames() error {
	if c.store == nil {
		return errors.New("no archive configured (use -db)")
	}
	games, err := c.store.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(c.out, "No archived games.")
		return nil
	}
	for _, rec := range games {
		fmt.Fprintf(c.out, "%s  %s  %d moves\n",
			rec.ID, rec.UpdatedAt.Format("2006-01-02 15:04"), len(rec.Moves))
	}
	return nil
}
