package search

import (
	"sort"

	"corvid/board"
	"corvid/movegen"
)

// Stage is the MovePicker's state machine position (spec 4.3).
type Stage int

const (
	StageTT Stage = iota
	StageGenCaptures
	StageCaptures
	StageGenKillers
	StageKillers
	StageGenQuiets
	StageQuiets
	StageDone
)

// scoredMove pairs a move with its ordering score for one stage's sort.
type scoredMove struct {
	move  board.Move
	score int
}

// MovePicker yields legal moves one at a time in the order
// TTMove -> Captures (MVV/LVA) -> Killers -> Quiets, skipping any move
// already returned by an earlier stage (spec 4.3).
type MovePicker struct {
	b       *board.Board
	ttMove  board.Move
	killers [killerSlots]board.Move

	stage      Stage
	skipQuiets bool

	captures []scoredMove
	quiets   []scoredMove
	index    int

	returned map[board.Move]bool

	legal     []board.Move
	haveLegal bool
}

// NewMovePicker builds a picker for board b, preferring ttMove first and
// the thread's current-ply killers after captures.
func NewMovePicker(b *board.Board, ttMove board.Move, killers [killerSlots]board.Move) *MovePicker {
	return &MovePicker{
		b:        b,
		ttMove:   ttMove,
		killers:  killers,
		stage:    StageTT,
		returned: make(map[board.Move]bool, 8),
	}
}

// NewQuiescenceMovePicker builds a picker that terminates after the
// Captures stage (spec 4.3's skip_quiets=true), used by quiescence search.
func NewQuiescenceMovePicker(b *board.Board, ttMove board.Move) *MovePicker {
	return &MovePicker{
		b:          b,
		ttMove:     ttMove,
		stage:      StageTT,
		skipQuiets: true,
		returned:   make(map[board.Move]bool, 8),
	}
}

// mvvLVAScore computes 100*victim_value - attacker_value (spec 4.3); a
// queen-promoting move uses QueenPromoAttackerValue as its attacker value
// regardless of the pawn doing the promoting.
func (mp *MovePicker) mvvLVAScore(m board.Move) int {
	victimValue := board.PieceValue[board.Pawn] // en passant always takes a pawn
	if m.Type() != board.EnPassant {
		if victim := mp.b.PieceOn(m.Dest()); victim.Type != board.NoPieceType {
			victimValue = board.PieceValue[victim.Type]
		}
	}

	attackerValue := board.PieceValue[mp.b.PieceOn(m.Src()).Type]
	if m.Type() == board.PromoQueen || m.Type() == board.CapPromoQueen {
		attackerValue = board.QueenPromoAttackerValue
	}

	return 100*victimValue - attackerValue
}

// legalMoves computes the legal move list once and caches it for the
// lifetime of the picker; every stage draws from this single generation.
func (mp *MovePicker) legalMoves() []board.Move {
	if !mp.haveLegal {
		mp.legal = movegen.LegalMoves(mp.b)
		mp.haveLegal = true
	}
	return mp.legal
}

func (mp *MovePicker) isLegalHere(m board.Move) bool {
	for _, l := range mp.legalMoves() {
		if l == m {
			return true
		}
	}
	return false
}

// Next returns the next move and true, or the null move and false once
// every stage is exhausted.
func (mp *MovePicker) Next() (board.Move, bool) {
	for {
		switch mp.stage {
		case StageTT:
			mp.stage = StageGenCaptures
			if !mp.ttMove.IsNull() && mp.isLegalHere(mp.ttMove) {
				mp.returned[mp.ttMove] = true
				return mp.ttMove, true
			}

		case StageGenCaptures:
			for _, m := range mp.legalMoves() {
				if !m.IsCapture() && !m.IsPromotion() {
					continue
				}
				if mp.returned[m] {
					continue
				}
				mp.captures = append(mp.captures, scoredMove{m, mp.mvvLVAScore(m)})
			}
			sort.SliceStable(mp.captures, func(i, j int) bool { return mp.captures[i].score > mp.captures[j].score })
			mp.index = 0
			mp.stage = StageCaptures

		case StageCaptures:
			if mp.index < len(mp.captures) {
				m := mp.captures[mp.index].move
				mp.index++
				mp.returned[m] = true
				return m, true
			}
			if mp.skipQuiets {
				mp.stage = StageDone
			} else {
				mp.stage = StageGenKillers
			}

		case StageGenKillers:
			mp.index = 0
			mp.stage = StageKillers

		case StageKillers:
			for mp.index < killerSlots {
				k := mp.killers[mp.index]
				mp.index++
				if k.IsNull() || mp.returned[k] || !mp.isLegalHere(k) {
					continue
				}
				mp.returned[k] = true
				return k, true
			}
			mp.stage = StageGenQuiets

		case StageGenQuiets:
			for _, m := range mp.legalMoves() {
				if m.IsCapture() || m.IsPromotion() {
					continue
				}
				if mp.returned[m] {
					continue
				}
				mp.quiets = append(mp.quiets, scoredMove{m, 0})
			}
			mp.index = 0
			mp.stage = StageQuiets

		case StageQuiets:
			if mp.index < len(mp.quiets) {
				m := mp.quiets[mp.index].move
				mp.index++
				mp.returned[m] = true
				return m, true
			}
			mp.stage = StageDone

		case StageDone:
			return board.NullMove, false
		}
	}
}
