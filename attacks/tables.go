// Package attacks is the move-generation collaborator's attack-table
// machinery: precomputed knight/king/pawn attacks and magic-bitboard
// sliding attacks for bishops and rooks, computed once at process start by
// Init (spec 1's "magic/PEXT sliding-attack lookups").
package attacks

import "corvid/board"

var (
	KnightAttacks [64]board.Bitboard
	KingAttacks   [64]board.Bitboard
	PawnAttacks   [2][64]board.Bitboard // [Color][square]
)

var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingDeltas = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

func initLeaperTables() {
	for sq := 0; sq < 64; sq++ {
		s := board.Square(sq)
		file, rank := s.File(), s.Rank()

		var knight, king board.Bitboard
		for _, d := range knightDeltas {
			if f, r := file+d[0], rank+d[1]; onBoard(f, r) {
				knight.Set(board.NewSquare(f, r))
			}
		}
		for _, d := range kingDeltas {
			if f, r := file+d[0], rank+d[1]; onBoard(f, r) {
				king.Set(board.NewSquare(f, r))
			}
		}
		KnightAttacks[sq] = knight
		KingAttacks[sq] = king

		var whitePawn, blackPawn board.Bitboard
		if f, r := file-1, rank+1; onBoard(f, r) {
			whitePawn.Set(board.NewSquare(f, r))
		}
		if f, r := file+1, rank+1; onBoard(f, r) {
			whitePawn.Set(board.NewSquare(f, r))
		}
		if f, r := file-1, rank-1; onBoard(f, r) {
			blackPawn.Set(board.NewSquare(f, r))
		}
		if f, r := file+1, rank-1; onBoard(f, r) {
			blackPawn.Set(board.NewSquare(f, r))
		}
		PawnAttacks[board.White][sq] = whitePawn
		PawnAttacks[board.Black][sq] = blackPawn
	}
}
