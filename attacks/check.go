package attacks

import "corvid/board"

// IsAttacked reports whether sq is attacked by any piece belonging to by.
func IsAttacked(b *board.Board, sq board.Square, by board.Color) bool {
	occ := b.All
	if KnightAttacks[sq]&b.Pieces[by][board.Knight] != 0 {
		return true
	}
	if KingAttacks[sq]&b.Pieces[by][board.King] != 0 {
		return true
	}
	// Pawn attacks are symmetric: a pawn of color `by` attacks sq from the
	// squares that a pawn of the opposite color standing on sq would attack.
	if PawnAttacks[by.Other()][sq]&b.Pieces[by][board.Pawn] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(b.Pieces[by][board.Rook]|b.Pieces[by][board.Queen]) != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&(b.Pieces[by][board.Bishop]|b.Pieces[by][board.Queen]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func InCheck(b *board.Board) bool {
	return IsAttacked(b, b.KingSquare(b.SideToMove), b.SideToMove.Other())
}
