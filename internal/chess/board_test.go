package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	chesserrors "github.com/lgbarn/ascii-chess-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("all squares empty", func(t *testing.T) {
		for file := FirstFile; file <= LastFile; file++ {
			for rank := FirstRank; rank <= LastRank; rank++ {
				if !b.IsEmpty(Square{file, rank}) {
					t.Errorf("square %v is not empty", Square{file, rank})
				}
			}
		}
	})

	t.Run("no kings", func(t *testing.T) {
		if b.KingSquare(White).IsValid() || b.KingSquare(Black).IsValid() {
			t.Error("empty board should not track any king")
		}
		if b.IsInCheck(White) {
			t.Error("a colour without a king is never in check")
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewInitialBoard()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white bishop f1", "f1", W(Bishop)},
		{"white knight g1", "g1", W(Knight)},
		{"white rook h1", "h1", W(Rook)},
		{"white pawn a2", "a2", W(Pawn)},
		{"white pawn e2", "e2", W(Pawn)},
		{"black pawn h7", "h7", B(Pawn)},
		{"black rook a8", "a8", B(Rook)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.PieceAt(MustSquare(tt.sq))
			if err != nil {
				t.Fatalf("PieceAt(%s) error: %v", tt.sq, err)
			}
			if got != tt.piece {
				t.Errorf("PieceAt(%s) = %v, want %v", tt.sq, got, tt.piece)
			}
		})
	}

	if got := len(b.Pieces()); got != 32 {
		t.Errorf("len(Pieces()) = %d, want 32", got)
	}
	if b.KingSquare(White) != MustSquare("e1") || b.KingSquare(Black) != MustSquare("e8") {
		t.Errorf("king squares = %v, %v; want e1, e8", b.KingSquare(White), b.KingSquare(Black))
	}
	if b.IsInCheck(White) || b.IsInCheck(Black) {
		t.Error("nobody is in check in the initial position")
	}
}

func TestBoard_PieceAtEmpty(t *testing.T) {
	b := NewBoard()
	_, err := b.PieceAt(MustSquare("d4"))
	if !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Errorf("PieceAt(empty) error = %v, want ErrIllegalMove", err)
	}
}

func TestBoard_TypedLookups(t *testing.T) {
	b := NewInitialBoard()

	if !b.IsKing(MustSquare("e1"), White) || b.IsKing(MustSquare("e1"), Black) {
		t.Error("IsKing(e1) wrong")
	}
	if !b.IsRook(MustSquare("h8"), Black) {
		t.Error("IsRook(h8, Black) = false")
	}
	if !b.IsPawn(MustSquare("c2"), White) || b.IsPawn(MustSquare("c3"), White) {
		t.Error("IsPawn wrong")
	}
	if !b.IsAnyPawn(MustSquare("c7")) {
		t.Error("IsAnyPawn(c7) = false")
	}
	if !b.IsOppositeColour(MustSquare("e7"), W(Pawn)) || b.IsOppositeColour(MustSquare("e2"), W(Pawn)) {
		t.Error("IsOppositeColour wrong")
	}
	if b.IsOppositeColour(MustSquare("e4"), W(Pawn)) {
		t.Error("IsOppositeColour(empty) = true")
	}
}

func TestBoard_Collect(t *testing.T) {
	b := NewInitialBoard()

	got := b.Collect(Knight, White)
	want := []Placement{
		{Square: MustSquare("b1"), Piece: W(Knight)},
		{Square: MustSquare("g1"), Piece: W(Knight)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect(Knight, White) mismatch (-want +got):\n%s", diff)
	}

	if n := len(b.Collect(Pawn, Black)); n != 8 {
		t.Errorf("len(Collect(Pawn, Black)) = %d, want 8", n)
	}
}

func TestBoard_SaveRestoreState(t *testing.T) {
	b := NewInitialBoard()
	before := b.Copy()
	state := b.SaveState()

	b.Remove(MustSquare("e1"))
	b.Put(MustSquare("e4"), W(King))
	b.SetMoved(MustSquare("e4"))
	b.Remove(MustSquare("d7"))

	if b.Equal(before) {
		t.Fatal("board should differ after mutation")
	}

	b.RestoreState(state)
	if !b.Equal(before) {
		t.Error("RestoreState did not restore the position")
	}
	if b.KingSquare(White) != MustSquare("e1") {
		t.Errorf("KingSquare(White) = %v after restore, want e1", b.KingSquare(White))
	}
}

func TestBoard_PutTracksKing(t *testing.T) {
	b := NewBoard()
	b.Put(MustSquare("g1"), W(King))
	b.Put(MustSquare("b8"), B(King))

	if b.KingSquare(White) != MustSquare("g1") {
		t.Errorf("KingSquare(White) = %v, want g1", b.KingSquare(White))
	}
	if b.KingSquare(Black) != MustSquare("b8") {
		t.Errorf("KingSquare(Black) = %v, want b8", b.KingSquare(Black))
	}
}

func TestBoard_KingIndexFollowsRemoval(t *testing.T) {
	tests := []struct {
		name   string
		change func(b *Board)
		want   Square
	}{
		{"removed", func(b *Board) { b.Remove(MustSquare("e1")) }, Square{}},
		{"overwritten", func(b *Board) { b.Put(MustSquare("e1"), B(Queen)) }, Square{}},
		{"replaced by own king", func(b *Board) { b.Put(MustSquare("e1"), W(King)) }, MustSquare("e1")},
		{"moved then old square cleared", func(b *Board) {
			b.Put(MustSquare("f1"), W(King))
			b.Remove(MustSquare("e1"))
		}, MustSquare("f1")},
		{"other square removed", func(b *Board) { b.Remove(MustSquare("e8")) }, MustSquare("e1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(map[string]Piece{"e1": W(King), "e8": B(King)})
			tt.change(b)
			if got := b.KingSquare(White); got != tt.want {
				t.Errorf("KingSquare(White) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoard_RemovedKingNotInCheck(t *testing.T) {
	b := boardWith(map[string]Piece{"e1": W(King), "e8": B(Rook)})
	if !b.IsInCheck(White) {
		t.Fatal("king on e1 should be in check from e8")
	}
	b.Remove(MustSquare("e1"))
	if b.IsInCheck(White) {
		t.Error("IsInCheck(White) after the king was removed = true, want false")
	}
}

func TestBoard_EnPassantBookkeeping(t *testing.T) {
	b := boardWith(map[string]Piece{"e5": W(Pawn), "c5": W(Pawn), "d5": B(Pawn), "a1": W(Rook)})

	b.SetEnPassant(MustSquare("e5"), MustSquare("d6"))
	b.SetEnPassant(MustSquare("a1"), MustSquare("d6"))

	if p, _ := b.Lookup(MustSquare("e5")); p.EnPassant != MustSquare("d6") {
		t.Errorf("e5 pawn EnPassant = %v, want d6", p.EnPassant)
	}
	if p, _ := b.Lookup(MustSquare("a1")); p.EnPassant.IsValid() {
		t.Error("SetEnPassant must ignore non-pawns")
	}

	b.ClearEnPassant()
	for _, pl := range b.Pieces() {
		if pl.Piece.EnPassant.IsValid() {
			t.Errorf("piece on %v still has en passant square %v", pl.Square, pl.Piece.EnPassant)
		}
	}
}

func TestBoard_IsInCheck(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]Piece
		colour Colour
		want   bool
	}{
		{"rook on open file", map[string]Piece{"e1": W(King), "e8": B(Rook)}, White, true},
		{"rook blocked", map[string]Piece{"e1": W(King), "e8": B(Rook), "e4": W(Pawn)}, White, false},
		{"bishop diagonal", map[string]Piece{"e1": W(King), "a5": B(Bishop)}, White, true},
		{"knight", map[string]Piece{"e1": W(King), "f3": B(Knight)}, White, true},
		{"pawn", map[string]Piece{"e1": W(King), "d2": B(Pawn)}, White, true},
		{"pawn ahead does not check", map[string]Piece{"e1": W(King), "e2": B(Pawn)}, White, false},
		{"own pieces never check", map[string]Piece{"e1": W(King), "e8": W(Rook)}, White, false},
		{"black king by queen", map[string]Piece{"e8": B(King), "h5": W(Queen)}, Black, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(tt.pieces)
			if got := b.IsInCheck(tt.colour); got != tt.want {
				t.Errorf("IsInCheck(%v) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}
