// Package movelist reads and writes the plain-text move list format: one
// full move per line, White's move then Black's, separated by whitespace.
// Tokens are stored exactly as they were typed. A list that starts with
// Black's move opens with the "..." placeholder in White's column.
package movelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// BlackFirstMarker stands in for White's move on a first line that holds
// only Black's.
const BlackFirstMarker = "..."

// List is a move list as read from a file.
type List struct {
	Name       string
	Moves      []string
	Lines      []int // Lines[i] is the line Moves[i] was read from
	BlackFirst bool
}

// Line returns the line move i was read from, or 0 if i is out of range.
func (l *List) Line(i int) int {
	if i < 0 || i >= len(l.Lines) {
		return 0
	}
	return l.Lines[i]
}

// Locate fills in the file and line of a *errors.GameError raised while
// replaying the list. firstPly is the ply of the list's first move.
func (l *List) Locate(err error, firstPly int) {
	var ge *errors.GameError
	if !errors.As(err, &ge) {
		return
	}
	if ge.File == "" {
		ge.File = l.Name
	}
	if ge.Line == 0 {
		ge.Line = l.Line(ge.PlyNum - firstPly)
	}
}

// Read returns the move tokens in r in playing order. name is used in error
// messages only. A line holding more than two tokens is rejected with a
// *errors.GameError naming the line.
func Read(r io.Reader, name string) (*List, error) {
	list := &List{Name: name}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(list.Moves) == 0 && !list.BlackFirst && len(fields) == 2 && fields[0] == BlackFirstMarker {
			list.BlackFirst = true
			fields = fields[1:]
		}
		switch len(fields) {
		case 0:
			continue
		case 1, 2:
			for _, f := range fields {
				list.Moves = append(list.Moves, f)
				list.Lines = append(list.Lines, lineNum)
			}
		default:
			return nil, &errors.GameError{
				Err:      fmt.Errorf("%d moves on one line, want at most 2: %w", len(fields), errors.ErrParseFailure),
				File:     name,
				Line:     lineNum,
				PlyNum:   len(list.Moves) + 1,
				MoveText: fields[2],
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return list, nil
}

// Load reads the move list stored at path.
func Load(path string) (*List, error) {
	file, err := os.Open(path) //nolint:gosec // G304: console loads user-specified files
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, path)
}

// Write writes moves as full moves, one to a line, separated by a tab.
// blackFirst says whether moves[0] is Black's.
func Write(w io.Writer, moves []string, blackFirst bool) error {
	bw := bufio.NewWriter(w)
	for _, pair := range Pairs(moves, blackFirst) {
		if _, err := bw.WriteString(strings.Join(pair, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes moves to path, replacing any existing file.
func Save(path string, moves []string, blackFirst bool) error {
	file, err := os.Create(path) //nolint:gosec // G304: console saves to user-specified files
	if err != nil {
		return err
	}
	if err := Write(file, moves, blackFirst); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return file.Close()
}

// Pairs groups moves into full moves: each entry holds White's move and, if
// played, Black's. When blackFirst is set the first entry is
// {BlackFirstMarker, moves[0]}.
func Pairs(moves []string, blackFirst bool) [][]string {
	pairs := make([][]string, 0, (len(moves)+2)/2)
	if blackFirst && len(moves) > 0 {
		pairs = append(pairs, []string{BlackFirstMarker, moves[0]})
		moves = moves[1:]
	}
	for i := 0; i < len(moves); i += 2 {
		end := min(i+2, len(moves))
		pairs = append(pairs, moves[i:end:end])
	}
	return pairs
}
