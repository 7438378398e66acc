package search

import (
	"corvid/attacks"
	"corvid/board"
)

// Evaluator scores a position from the side-to-move's perspective. The
// static evaluator is a collaborator; its weights are implementation-
// defined (spec 1).
type Evaluator interface {
	Evaluate(b *board.Board) int
}

// Position owns the current board and an append-only stack of prior
// boards used for undo (spec 3). Stack depth always equals ply depth from
// the search root (spec 3's invariant).
type Position struct {
	current board.Board
	stack   []board.Board
	eval    Evaluator
}

// NewPosition wraps b as the root of a search, with eval used by Evaluate.
func NewPosition(b board.Board, eval Evaluator) *Position {
	return &Position{current: b, stack: make([]board.Board, 0, MaxPly+16), eval: eval}
}

// Clone makes an independent copy (its own undo stack) for a worker thread
// to search from, per spec 4.5 ("workers clone the Position").
func (p *Position) Clone() *Position {
	cp := &Position{current: p.current, eval: p.eval, stack: make([]board.Board, len(p.stack), cap(p.stack))}
	copy(cp.stack, p.stack)
	return cp
}

// Board returns the current board snapshot.
func (p *Position) Board() *board.Board { return &p.current }

// PushMove replaces the current board with board.MakeMove(m), pushes the
// old board onto the undo stack, and updates the thread's ply/node
// accounting (spec 4.6).
func (p *Position) PushMove(m board.Move, thread *SearchThread) {
	thread.Ply++
	thread.Nodes++
	p.stack = append(p.stack, p.current)
	p.current = p.current.MakeMove(m)
}

// PushNull does the same accounting as PushMove but advances via a
// side-flipping null move (spec 4.6).
func (p *Position) PushNull(thread *SearchThread) {
	thread.Ply++
	thread.Nodes++
	p.stack = append(p.stack, p.current)
	p.current = p.current.NullMove()
}

// PopMove restores the board on top of the undo stack (spec 4.6).
func (p *Position) PopMove(thread *SearchThread) {
	n := len(p.stack) - 1
	p.current = p.stack[n]
	p.stack = p.stack[:n]
	thread.Ply--
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return attacks.InCheck(&p.current) }

// White reports whether white is to move.
func (p *Position) White() bool { return p.current.SideToMove == board.White }

// Hash returns the current position's Zobrist key.
func (p *Position) Hash() uint64 { return p.current.Hash }

// Evaluate delegates to the evaluator collaborator.
func (p *Position) Evaluate() int { return p.eval.Evaluate(&p.current) }
