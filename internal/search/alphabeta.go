package search

import "corvid/board"

// NodeKind distinguishes root, PV and non-PV nodes for the PVS move loop
// (spec 4.4). It is a plain runtime enum rather than a compile-time
// parameter; Go has no template specialization to avoid the branch.
type NodeKind int

const (
	Root NodeKind = iota
	PVNode
	NonPV
)

// AlphaBetaEngine runs iterative-deepening PVS alpha-beta with aspiration
// windows over a shared TranspositionTable (spec 4.4).
type AlphaBetaEngine struct {
	tt   *TranspositionTable
	eval Evaluator
}

// NewAlphaBetaEngine builds an engine sharing tt across every thread in
// the pool.
func NewAlphaBetaEngine(tt *TranspositionTable, eval Evaluator) *AlphaBetaEngine {
	return &AlphaBetaEngine{tt: tt, eval: eval}
}

// IterativeDeepen runs the per-thread iterative-deepening loop described
// in spec 4.4, starting at thread.StartDepth() and stopping on
// stop_soft, on the shared stop flag, or at MaxPly. onDepth, if non-nil,
// is called after every depth the main thread completes.
func (e *AlphaBetaEngine) IterativeDeepen(thread *SearchThread, pos *Position, onDepth func(depth int)) {
	score := 0
	for depth := thread.StartDepth(); depth <= MaxPly; depth++ {
		if thread.Time.ExceedsDepth(depth) {
			break
		}
		if thread.Time.StopSoft() {
			break
		}

		thread.Depth = depth
		completedScore, ok := e.aspirationSearch(thread, pos, depth, score)
		if !ok {
			break
		}
		score = completedScore
		thread.Score = score
		thread.Completed = depth

		if onDepth != nil {
			onDepth(depth)
		}
	}
}

// aspirationSearch runs one iteration's search, widening the window on
// fail-low/fail-high until it succeeds or the window degrades to
// [-Infinity, +Infinity] (spec 4.4's aspiration window).
func (e *AlphaBetaEngine) aspirationSearch(thread *SearchThread, pos *Position, depth int, prevScore int) (int, bool) {
	alpha, beta := -Infinity, Infinity
	delta := aspirationMargin
	if depth >= aspirationDepthThreshold {
		alpha = prevScore - delta
		beta = prevScore + delta
	}

	for {
		var pv PrincipalVariation
		score := e.alphaBeta(thread, pos, depth, alpha, beta, Root, &pv)

		if thread.Time.StopHard(thread.Nodes) {
			return 0, false
		}

		switch {
		case score <= alpha:
			alpha -= delta
		case score >= beta:
			beta += delta
		default:
			thread.PV = pv
			return score, true
		}

		delta *= 2
		if delta >= maxAspirationDelta {
			alpha, beta = -Infinity, Infinity
		}
	}
}

// ttCutoffApplies reports whether a TT hit at the stored bound justifies
// returning its score directly instead of continuing the search
// (spec 4.4 step 6).
func ttCutoffApplies(bound Bound, score, alpha, beta int) bool {
	switch bound {
	case BoundExact:
		return true
	case BoundLower:
		return score >= beta
	case BoundUpper:
		return score <= alpha
	default:
		return false
	}
}

// alphaBeta is the fail-soft PVS search described in spec 4.4. It returns
// a score in [-Infinity, Infinity]; on a hard stop it returns 0, which
// the caller must discard.
func (e *AlphaBetaEngine) alphaBeta(thread *SearchThread, pos *Position, depth, alpha, beta int, kind NodeKind, pv *PrincipalVariation) int {
	if thread.Time.StopHard(thread.Nodes) {
		return 0
	}

	ply := thread.Ply
	if kind != Root && ply > thread.Seldepth {
		thread.Seldepth = ply
	}

	inCheck := pos.InCheck()
	if inCheck && depth < MaxPly {
		depth++
	}

	if depth <= 0 || ply >= MaxPly {
		return e.quiescence(thread, pos, alpha, beta, rootToPV(kind), pv)
	}

	if kind != Root {
		if a := -Mate + ply; alpha < a {
			alpha = a
		}
		if b := Mate - ply - 1; beta > b {
			beta = b
		}
		if alpha >= beta {
			return alpha
		}
	}

	alphaOrig := alpha

	ttMove, ttScore, _, ttDepth, ttBound, _, ttHit := e.tt.Probe(pos.Hash(), ply)
	if ttHit {
		if int(ttDepth) >= depth && kind == NonPV && ttCutoffApplies(ttBound, ttScore, alpha, beta) {
			return ttScore
		}
	} else {
		ttMove = board.NullMove
	}

	if kind == PVNode && depth >= 4 && !ttHit {
		depth--
	}

	picker := NewMovePicker(pos.Board(), ttMove, thread.Killers.Get(ply))

	moveCount := 0
	bestScore := -Infinity
	bestMove := board.NullMove

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}

		pos.PushMove(m, thread)
		e.tt.Prefetch(pos.Hash())
		moveCount++

		var childPV PrincipalVariation
		var score int
		if moveCount == 1 {
			score = -e.alphaBeta(thread, pos, depth-1, -beta, -alpha, firstMoveKind(kind), &childPV)
		} else {
			score = -e.alphaBeta(thread, pos, depth-1, -alpha-1, -alpha, NonPV, &childPV)
			if score > alpha && kind != NonPV {
				score = -e.alphaBeta(thread, pos, depth-1, -beta, -alpha, PVNode, &childPV)
			}
		}

		pos.PopMove(thread)

		if thread.Time.StopHard(thread.Nodes) {
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = m
				if pv != nil && kind != NonPV {
					pv.PushLine(m, &childPV)
				}
				if score >= beta {
					if m.IsQuiet() {
						thread.Killers.Store(ply, m)
					}
					break
				}
			}
		}
	}

	if moveCount == 0 {
		if inCheck {
			return -Mate + ply
		}
		return 0
	}

	bound := BoundUpper
	switch {
	case bestScore >= beta:
		bound = BoundLower
	case bestScore > alphaOrig:
		bound = BoundExact
	}
	e.tt.Insert(pos.Hash(), bestMove, bestScore, 0, uint8(depth), bound, kind != NonPV, ply)

	return bestScore
}

// firstMoveKind is the node kind propagated to the first (principal) move
// of a PVS move loop: Root's and PV's first child stay on the PV line;
// NonPV's first child stays NonPV.
func firstMoveKind(kind NodeKind) NodeKind {
	if kind == NonPV {
		return NonPV
	}
	return PVNode
}

// rootToPV folds Root into PV for the leaf/quiescence call, since
// quiescence only distinguishes PV from NonPV (spec 4.4 step 4).
func rootToPV(kind NodeKind) NodeKind {
	if kind == Root {
		return PVNode
	}
	return kind
}

// quiescence is the tactical-only search continuing past depth 0 until no
// captures remain (spec 4.4's Quiescence, GLOSSARY).
func (e *AlphaBetaEngine) quiescence(thread *SearchThread, pos *Position, alpha, beta int, kind NodeKind, pv *PrincipalVariation) int {
	if thread.Time.StopHard(thread.Nodes) {
		return 0
	}

	ply := thread.Ply
	if ply > thread.Seldepth {
		thread.Seldepth = ply
	}

	ttMove, ttScore, _, _, ttBound, _, ttHit := e.tt.Probe(pos.Hash(), ply)
	if ttHit && kind == NonPV && ttCutoffApplies(ttBound, ttScore, alpha, beta) {
		return ttScore
	}
	if !ttHit {
		ttMove = board.NullMove
	}

	alphaOrig := alpha
	standPat := pos.Evaluate()
	bestScore := standPat
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	picker := NewQuiescenceMovePicker(pos.Board(), ttMove)
	bestMove := board.NullMove
	moveCount := 0

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}

		pos.PushMove(m, thread)
		e.tt.Prefetch(pos.Hash())
		moveCount++

		var childPV PrincipalVariation
		score := -e.quiescence(thread, pos, -beta, -alpha, oppositeNonPV(kind), &childPV)

		pos.PopMove(thread)

		if thread.Time.StopHard(thread.Nodes) {
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = m
				if pv != nil && kind != NonPV {
					pv.PushLine(m, &childPV)
				}
				if score >= beta {
					break
				}
			}
		}
	}

	if moveCount == 0 && pos.InCheck() {
		return -Mate + ply
	}

	bound := BoundUpper
	switch {
	case bestScore >= beta:
		bound = BoundLower
	case bestScore > alphaOrig:
		bound = BoundExact
	}
	e.tt.Insert(pos.Hash(), bestMove, bestScore, 0, 0, bound, kind != NonPV, ply)

	return bestScore
}

// oppositeNonPV propagates PV status one ply deeper in quiescence the
// same way the main search does for its first move.
func oppositeNonPV(kind NodeKind) NodeKind {
	if kind == NonPV {
		return NonPV
	}
	return PVNode
}
