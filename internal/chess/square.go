package chess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// Square identifies one of the 64 board positions. File and Rank are both
// 1-based. The zero Square is not on the board and stands for "no square".
type Square struct {
	File int
	Rank int
}

// ParseSquare parses coordinate text such as "e4". The first character must
// be a file letter a-h and the (trimmed) remainder a rank number 1-8.
func ParseSquare(text string) (Square, error) {
	if text == "" {
		return Square{}, &errors.ParseError{Err: errors.ErrParseFailure, Input: text, Expected: "square"}
	}
	file := text[0]
	if file < 'a' || file > 'h' {
		return Square{}, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Input:    text,
			Expected: "file a-h",
			Got:      fmt.Sprintf("%q", string(file)),
		}
	}
	rank, err := strconv.Atoi(strings.TrimSpace(text[1:]))
	if err != nil || rank < FirstRank || rank > LastRank {
		return Square{}, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Input:    text,
			Expected: "rank 1-8",
			Got:      fmt.Sprintf("%q", strings.TrimSpace(text[1:])),
		}
	}
	return Square{File: int(file-FileBase) + 1, Rank: rank}, nil
}

// MustSquare is like ParseSquare but panics on malformed text. It is meant
// for package-level tables and tests.
func MustSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// SquareAt returns the square with the given numeric file and rank.
func SquareAt(file, rank int) (Square, error) {
	if !onBoard(file, rank) {
		return Square{}, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Expected: "file and rank 1-8",
			Got:      fmt.Sprintf("%d,%d", file, rank),
		}
	}
	return Square{File: file, Rank: rank}, nil
}

// SquareOf returns the square with the given file letter and rank.
func SquareOf(file byte, rank int) (Square, error) {
	if file < 'a' || file > 'h' {
		return Square{}, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Expected: "file a-h",
			Got:      fmt.Sprintf("%q", string(file)),
		}
	}
	return SquareAt(int(file-FileBase)+1, rank)
}

// IsValid reports whether the square lies on the board.
func (s Square) IsValid() bool {
	return onBoard(s.File, s.Rank)
}

// FileLetter returns the file as a letter 'a'-'h'.
func (s Square) FileLetter() byte {
	return byte(FileBase + s.File - 1)
}

// String returns the square in coordinate form, e.g. "e4".
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{s.FileLetter(), byte(RankBase + s.Rank - 1)})
}

// offset returns the square df files and dr ranks away, which may be off
// the board.
func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func onBoard(file, rank int) bool {
	return file >= FirstFile && file <= LastFile && rank >= FirstRank && rank <= LastRank
}
