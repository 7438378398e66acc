// Package movegen is the external move-generation collaborator: pseudo-
// legal and legal move enumeration, split into tactical/quiet streams for
// the search core's MovePicker, plus Perft for correctness testing.
package movegen

import (
	"corvid/attacks"
	"corvid/board"
)

// PseudoLegalMoves generates every move for the side to move without
// filtering for leaving the king in check.
func PseudoLegalMoves(b *board.Board) []board.Move {
	moves := make([]board.Move, 0, 48)
	us := b.SideToMove
	them := us.Other()
	occ := b.All

	genPawnMoves(b, us, &moves)

	for knights := b.Pieces[us][board.Knight]; knights != 0; {
		from := knights.PopLSB()
		targets := attacks.KnightAttacks[from] &^ b.Occupied[us]
		appendTargets(b, from, targets, them, &moves)
	}
	for bishops := b.Pieces[us][board.Bishop]; bishops != 0; {
		from := bishops.PopLSB()
		targets := attacks.BishopAttacks(from, occ) &^ b.Occupied[us]
		appendTargets(b, from, targets, them, &moves)
	}
	for rooks := b.Pieces[us][board.Rook]; rooks != 0; {
		from := rooks.PopLSB()
		targets := attacks.RookAttacks(from, occ) &^ b.Occupied[us]
		appendTargets(b, from, targets, them, &moves)
	}
	for queens := b.Pieces[us][board.Queen]; queens != 0; {
		from := queens.PopLSB()
		targets := attacks.QueenAttacks(from, occ) &^ b.Occupied[us]
		appendTargets(b, from, targets, them, &moves)
	}

	king := b.KingSquare(us)
	targets := attacks.KingAttacks[king] &^ b.Occupied[us]
	appendTargets(b, king, targets, them, &moves)
	genCastles(b, us, &moves)

	return moves
}

func appendTargets(b *board.Board, from board.Square, targets board.Bitboard, them board.Color, moves *[]board.Move) {
	for targets != 0 {
		to := targets.PopLSB()
		if b.Occupied[them].Has(to) {
			*moves = append(*moves, board.NewMove(from, to, board.Capture))
		} else {
			*moves = append(*moves, board.NewMove(from, to, board.Quiet))
		}
	}
}

var promoTypes = [4]board.MoveType{board.PromoKnight, board.PromoBishop, board.PromoRook, board.PromoQueen}
var capPromoTypes = [4]board.MoveType{board.CapPromoKnight, board.CapPromoBishop, board.CapPromoRook, board.CapPromoQueen}

func genPawnMoves(b *board.Board, us board.Color, moves *[]board.Move) {
	them := us.Other()
	occ := b.All
	pawns := b.Pieces[us][board.Pawn]

	var forward, startRank, promoRank int
	if us == board.White {
		forward, startRank, promoRank = 8, board.Rank2, board.Rank8
	} else {
		forward, startRank, promoRank = -8, board.Rank7, board.Rank1
	}

	for p := pawns; p != 0; {
		from := p.PopLSB()
		oneStep := board.Square(int(from) + forward)
		if !occ.Has(oneStep) {
			if oneStep.Rank() == promoRank {
				for _, t := range promoTypes {
					*moves = append(*moves, board.NewMove(from, oneStep, t))
				}
			} else {
				*moves = append(*moves, board.NewMove(from, oneStep, board.Quiet))
				if from.Rank() == startRank {
					twoStep := board.Square(int(from) + 2*forward)
					if !occ.Has(twoStep) {
						*moves = append(*moves, board.NewMove(from, twoStep, board.DoublePawnPush))
					}
				}
			}
		}

		capTargets := attacks.PawnAttacks[us][from] & b.Occupied[them]
		for capTargets != 0 {
			to := capTargets.PopLSB()
			if to.Rank() == promoRank {
				for _, t := range capPromoTypes {
					*moves = append(*moves, board.NewMove(from, to, t))
				}
			} else {
				*moves = append(*moves, board.NewMove(from, to, board.Capture))
			}
		}

		if b.EnPassant != board.NoSquare && attacks.PawnAttacks[us][from].Has(b.EnPassant) {
			*moves = append(*moves, board.NewMove(from, b.EnPassant, board.EnPassant))
		}
	}
}

func genCastles(b *board.Board, us board.Color, moves *[]board.Move) {
	them := us.Other()
	rank := board.Rank1
	kingRight, queenRight := board.CastleWhiteKing, board.CastleWhiteQueen
	if us == board.Black {
		rank = board.Rank8
		kingRight, queenRight = board.CastleBlackKing, board.CastleBlackQueen
	}
	e := board.NewSquare(board.FileE, rank)
	f := board.NewSquare(board.FileF, rank)
	g := board.NewSquare(board.FileG, rank)
	d := board.NewSquare(board.FileD, rank)
	c := board.NewSquare(board.FileC, rank)
	bSq := board.NewSquare(board.FileB, rank)

	if b.Castling&kingRight != 0 &&
		!b.All.Has(f) && !b.All.Has(g) &&
		!attacks.IsAttacked(b, e, them) && !attacks.IsAttacked(b, f, them) && !attacks.IsAttacked(b, g, them) {
		*moves = append(*moves, board.NewMove(e, g, board.KingCastle))
	}
	if b.Castling&queenRight != 0 &&
		!b.All.Has(d) && !b.All.Has(c) && !b.All.Has(bSq) &&
		!attacks.IsAttacked(b, e, them) && !attacks.IsAttacked(b, d, them) && !attacks.IsAttacked(b, c, them) {
		*moves = append(*moves, board.NewMove(e, c, board.QueenCastle))
	}
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave the
// mover's own king in check.
func LegalMoves(b *board.Board) []board.Move {
	pseudo := PseudoLegalMoves(b)
	us := b.SideToMove
	them := us.Other()
	legal := make([]board.Move, 0, len(pseudo))
	for _, m := range pseudo {
		after := b.MakeMove(m)
		if !attacks.IsAttacked(&after, after.KingSquare(us), them) {
			legal = append(legal, m)
		}
	}
	return legal
}

// TacticalMoves returns the legal captures and promotions (spec 4.3's
// "Captures" stage: captures, en passant, and promotions).
func TacticalMoves(b *board.Board) []board.Move {
	all := LegalMoves(b)
	out := make([]board.Move, 0, len(all)/3+1)
	for _, m := range all {
		if m.IsCapture() || m.IsPromotion() {
			out = append(out, m)
		}
	}
	return out
}

// QuietMoves returns the legal non-capture, non-promotion moves.
func QuietMoves(b *board.Board) []board.Move {
	all := LegalMoves(b)
	out := make([]board.Move, 0, len(all))
	for _, m := range all {
		if m.IsQuiet() {
			out = append(out, m)
		}
	}
	return out
}
