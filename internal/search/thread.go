package search

import "corvid/board"

// SearchThread is the per-thread state described in spec 3: id, time link,
// PV buffer, killers, local node count, ply, seldepth, and iteration
// bookkeeping. PV buffers and killer tables are by-value fixed-size arrays
// with no back-pointers (spec 9).
type SearchThread struct {
	ID int

	Time *TimeManager

	PV      PrincipalVariation
	Killers KillerTable

	Nodes int64
	Ply   int

	Seldepth int

	Score        int
	Depth        int
	Completed    int
}

// NewSearchThread builds a worker/main thread bound to tm.
func NewSearchThread(id int, tm *TimeManager) *SearchThread {
	return &SearchThread{ID: id, Time: tm}
}

// Reset clears all per-search state before a new iterative-deepening run.
func (t *SearchThread) Reset() {
	t.PV.Reset()
	t.Killers.Clear()
	t.Nodes = 0
	t.Ply = 0
	t.Seldepth = 0
	t.Score = -Infinity
	t.Depth = 0
	t.Completed = 0
}

// BestMove returns the thread's PV head, or the null move if it never
// completed an iteration.
func (t *SearchThread) BestMove() board.Move { return t.PV.BestMove() }

// StartDepth staggers worker start depths so Lazy-SMP-style threads diverge
// early (spec 4.4: start_depth = (thread_id & 7) + 1).
func (t *SearchThread) StartDepth() int { return (t.ID & 7) + 1 }
