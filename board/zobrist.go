package board

import "math/rand"

// Zobrist hashing keys, generated once from a fixed seed so hashes are
// reproducible across runs (same technique as the teacher's zobrist.go).
var (
	zobristPiece    [2][7][64]uint64 // [color][PieceType][square], PieceType 0 unused
	zobristCastling [16]uint64
	zobristEnPassant [8]uint64
	zobristSide     uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5EED_C0FFEE_F00D))
	for c := 0; c < 2; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// HashSide returns the Zobrist key XORed in whenever the side to move flips.
func HashSide() uint64 { return zobristSide }

func pieceKey(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

func castlingKey(rights uint8) uint64 { return zobristCastling[rights&0xF] }

func enPassantKey(file int) uint64 { return zobristEnPassant[file] }
