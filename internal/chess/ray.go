package chess

import "iter"

// The ray generators yield the squares strictly between from and to along a
// single line, followed by to itself, nearest-to-from first. They trust their
// caller to have checked the line shape: a horizontal ray needs equal ranks,
// a vertical ray equal files and a diagonal ray |dfile| == |drank| != 0.

// HorizontalRay walks along from's rank towards to.
func HorizontalRay(from, to Square) iter.Seq[Square] {
	return ray(from, to, sign(to.File-from.File), 0)
}

// VerticalRay walks along from's file towards to.
func VerticalRay(from, to Square) iter.Seq[Square] {
	return ray(from, to, 0, sign(to.Rank-from.Rank))
}

// DiagonalRay walks file and rank in lockstep towards to.
func DiagonalRay(from, to Square) iter.Seq[Square] {
	return ray(from, to, sign(to.File-from.File), sign(to.Rank-from.Rank))
}

func ray(from, to Square, df, dr int) iter.Seq[Square] {
	return func(yield func(Square) bool) {
		if df == 0 && dr == 0 {
			return
		}
		for sq := from.offset(df, dr); sq.IsValid(); sq = sq.offset(df, dr) {
			if !yield(sq) || sq == to {
				return
			}
		}
	}
}
