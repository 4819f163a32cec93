// Package hashing provides position hashes and duplicate detection for
// chess games.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/ascii-chess-go/internal/chess"
)

// zobristKeys holds one random key per (colour, piece type, square), plus
// the side-to-move key. The generator is seeded so hashes are stable
// across runs.
var (
	zobristKeys    [2][chess.King + 1][chess.BoardSize * chess.BoardSize]uint64
	zobristToMove  uint64
	weakPieceCodes = [chess.King + 1]uint32{0, 1, 3, 5, 7, 11, 13}
)

func init() {
	rng := rand.New(rand.NewPCG(0x5eed_c0de, 0xa5c11_c4e55))
	for c := range zobristKeys {
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			for sq := range zobristKeys[c][pt] {
				zobristKeys[c][pt][sq] = rng.Uint64()
			}
		}
	}
	zobristToMove = rng.Uint64()
}

func squareIndex(sq chess.Square) int {
	return (sq.Rank-1)*chess.BoardSize + sq.File - 1
}

// GenerateZobristHash hashes the piece placement of board and the side to
// move. Moved flags and en-passant state are not included.
func GenerateZobristHash(board *chess.Board, toMove chess.Colour) uint64 {
	var hash uint64
	for _, pl := range board.Pieces() {
		hash ^= zobristKeys[pl.Piece.Colour][pl.Piece.Type][squareIndex(pl.Square)]
	}
	if toMove == chess.White {
		hash ^= zobristToMove
	}
	return hash
}

// WeakHash is a cheap secondary hash of the piece placement, used to
// confirm Zobrist matches.
func WeakHash(board *chess.Board) uint32 {
	var hash uint32
	for _, pl := range board.Pieces() {
		code := weakPieceCodes[pl.Piece.Type]
		if pl.Piece.Colour == chess.Black {
			code <<= 4
		}
		hash += code * uint32(squareIndex(pl.Square)+1)
	}
	return hash
}

// DuplicateDetector tracks the final positions of games seen so far.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Name identifies the game, e.g. its file name
	Name string
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Plies is the number of half-moves played
	Plies int
	// WeakHash is a fast hash for quick comparison
	WeakHash uint32
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
	}
}

// Signature builds the signature of a game ending on board with toMove to
// play.
func Signature(name string, board *chess.Board, toMove chess.Colour, plies int) GameSignature {
	return GameSignature{
		Name:     name,
		Hash:     GenerateZobristHash(board, toMove),
		Plies:    plies,
		WeakHash: WeakHash(board),
	}
}

// CheckAndAdd checks whether sig matches a game already seen. If it does,
// the earlier game's name is returned with true; otherwise sig is recorded.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) (string, bool) {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.Name, true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return "", false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}
