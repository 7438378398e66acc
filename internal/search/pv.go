package search

import (
	"strings"

	"corvid/board"
)

// PrincipalVariation is a fixed-capacity ordered sequence of moves, grounded
// on laura_engine's PrincipalVariation (spec 3).
type PrincipalVariation struct {
	moves [MaxPly]board.Move
	len   int
}

// Len returns the current number of moves in the line.
func (pv *PrincipalVariation) Len() int { return pv.len }

// Reset empties the line.
func (pv *PrincipalVariation) Reset() { pv.len = 0 }

// Moves returns the stored moves, oldest (root) first.
func (pv *PrincipalVariation) Moves() []board.Move { return pv.moves[:pv.len] }

// BestMove returns the first move of the line, or the null move if empty.
func (pv *PrincipalVariation) BestMove() board.Move {
	if pv.len == 0 {
		return board.NullMove
	}
	return pv.moves[0]
}

// PushLine sets the first element to m and copies child's line into
// positions 1..=child.len (spec 3).
func (pv *PrincipalVariation) PushLine(m board.Move, child *PrincipalVariation) {
	pv.moves[0] = m
	copy(pv.moves[1:1+child.len], child.moves[:child.len])
	pv.len = child.len + 1
}

// String renders the line as space-separated UCI moves, for "info ... pv ...".
func (pv *PrincipalVariation) String() string {
	var sb strings.Builder
	for i, m := range pv.Moves() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
