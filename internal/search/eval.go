package search

import "corvid/board"

// MaterialEvaluator is the default static evaluator: material balance plus
// piece-square tables, folded by game phase between a middlegame and an
// endgame table (tapered eval). Its weights are implementation-defined by
// spec 1; this one is a plain from-scratch table, not ported from any
// example engine's tuned values.
type MaterialEvaluator struct{}

// NewMaterialEvaluator constructs the default evaluator.
func NewMaterialEvaluator() *MaterialEvaluator { return &MaterialEvaluator{} }

// phaseWeight is the game-phase contribution of one piece, used to taper
// between middlegame and endgame piece-square tables.
var phaseWeight = [7]int{0, 0, 1, 1, 2, 4, 0}

const totalPhase = 24 // 4 knights/bishops(1) + 4 rooks(2) + 2 queens(4)

// pst[phase][pieceType][square] holds white-relative square bonuses;
// black reads the vertically mirrored square.
var pstMid, pstEnd [7][64]int

func init() {
	pawnMid := [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightMid := [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopMid := [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookMid := [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenMid := [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMid := [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEnd := [64]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}

	pstMid[board.Pawn] = pawnMid
	pstMid[board.Knight] = knightMid
	pstMid[board.Bishop] = bishopMid
	pstMid[board.Rook] = rookMid
	pstMid[board.Queen] = queenMid
	pstMid[board.King] = kingMid

	pstEnd = pstMid
	pstEnd[board.King] = kingEnd
}

// mirror flips a square vertically so black can read the white-relative
// tables.
func mirror(sq board.Square) board.Square { return board.NewSquare(sq.File(), 7-sq.Rank()) }

// Evaluate scores b from the side-to-move's perspective: material plus a
// phase-tapered piece-square table (spec 1's static evaluator).
func (e *MaterialEvaluator) Evaluate(b *board.Board) int {
	var mid, end, phase int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := b.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				sqIdx := sq
				if c == board.Black {
					sqIdx = mirror(sq)
				}
				mid += sign * (board.PieceValue[pt] + pstMid[pt][sqIdx])
				end += sign * (board.PieceValue[pt] + pstEnd[pt][sqIdx])
				phase += phaseWeight[pt]
			}
		}
	}

	if phase > totalPhase {
		phase = totalPhase
	}
	score := (mid*phase + end*(totalPhase-phase)) / totalPhase

	if b.SideToMove == board.Black {
		return -score
	}
	return score
}
