package search

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"corvid/board"
	"corvid/movegen"
)

// ThreadPool owns the main search thread and a set of worker threads,
// fanning out iterative deepening over a shared TranspositionTable and
// selecting a best move by vote once every thread stops (spec 4.5).
type ThreadPool struct {
	engine *AlphaBetaEngine
	log    *Logger

	main    *SearchThread
	workers []*SearchThread

	stop  atomic.Bool
	nodes atomic.Int64
}

// NewThreadPool builds a pool of n threads (n clamped to at least 1)
// sharing engine. Diagnostic depth records are queued to log (may be nil).
func NewThreadPool(engine *AlphaBetaEngine, n int, log *Logger) *ThreadPool {
	tp := &ThreadPool{engine: engine, log: log}
	tp.Resize(n)
	return tp
}

// Resize adjusts the worker count so total threads = max(n, 1), reusing
// existing worker slots where possible (spec 4.5).
func (tp *ThreadPool) Resize(n int) {
	if n < 1 {
		n = 1
	}
	if tp.main == nil {
		tp.main = NewSearchThread(0, nil)
	}
	workerCount := n - 1
	if workerCount < 0 {
		workerCount = 0
	}
	if len(tp.workers) > workerCount {
		tp.workers = tp.workers[:workerCount]
		return
	}
	for i := len(tp.workers); i < workerCount; i++ {
		tp.workers = append(tp.workers, NewSearchThread(i+1, nil))
	}
}

// Result is the outcome of a completed search: the chosen move and a flag
// reporting whether it was found by vote across threads that ran
// iterative deepening (false for the root shortcuts of spec 4.5 step 2).
type Result struct {
	BestMove board.Move
	Searched bool
}

// DepthReport is emitted by the main thread after each completed
// iteration, for the UCI dispatcher to format into an "info" line
// (spec 4.4/6).
type DepthReport struct {
	Depth    int
	Seldepth int
	Score    int
	Nodes    int64
	Elapsed  int64 // milliseconds
	HashFull int
	PV       string
}

// NoLegalMoves is emitted instead of any DepthReport when the root has no
// legal moves (spec 4.5 step 2): InCheck distinguishes mate from stalemate.
type NoLegalMoves struct {
	InCheck bool
}

// StartSearch runs the pool's search over pos under tc, reporting each
// completed main-thread iteration through onDepth, and reporting the
// no-legal-moves root case through onMate if it applies. It returns the
// selected best move (spec 4.5).
func (tp *ThreadPool) StartSearch(pos *Position, tc TimeControl, onDepth func(DepthReport), onMate func(NoLegalMoves)) Result {
	root := pos.Board()
	legal := movegen.LegalMoves(root)

	if len(legal) == 0 {
		if onMate != nil {
			onMate(NoLegalMoves{InCheck: pos.InCheck()})
		}
		return Result{BestMove: board.NullMove, Searched: false}
	}

	white := pos.White()
	tm := NewTimeManager(tc, &tp.stop, &tp.nodes, white)

	if len(legal) == 1 {
		return Result{BestMove: legal[0], Searched: false}
	}
	if tm.NotSearch() {
		return Result{BestMove: legal[0], Searched: false}
	}

	tp.stop.Store(false)
	tp.nodes.Store(0)
	tp.engine.tt.Age()

	tp.main.Time = tm
	tp.main.Reset()
	for _, w := range tp.workers {
		// Each worker gets its own copy: same limits, stop flag and node
		// counter, but its own node-fold bookkeeping.
		wtm := *tm
		w.Time = &wtm
		w.Reset()
	}

	var g errgroup.Group

	for _, w := range tp.workers {
		worker := w
		workerPos := pos.Clone()
		g.Go(func() error {
			tp.engine.IterativeDeepen(worker, workerPos, nil)
			return nil
		})
	}

	tp.engine.IterativeDeepen(tp.main, pos, func(depth int) {
		report := DepthReport{
			Depth:    depth,
			Seldepth: tp.main.Seldepth,
			Score:    tp.main.Score,
			Nodes:    tp.aggregateNodes(),
			Elapsed:  tm.Elapsed().Milliseconds(),
			HashFull: tp.engine.tt.HashFull(),
			PV:       tp.main.PV.String(),
		}
		if onDepth != nil {
			onDepth(report)
		}
		tp.log.LogDepth(Event{
			Depth:    report.Depth,
			Score:    report.Score,
			Nodes:    report.Nodes,
			HashFull: report.HashFull,
			Duration: time.Duration(report.Elapsed) * time.Millisecond,
			PV:       report.PV,
		})
	})

	tp.stop.Store(true)
	_ = g.Wait()

	return Result{BestMove: tp.voteBestMove(), Searched: true}
}

// Stop sets the shared stop flag so every thread's next StopHard/StopSoft
// poll returns true, letting an in-flight StartSearch return early
// (spec 5/7's "stop" cancellation protocol).
func (tp *ThreadPool) Stop() {
	tp.stop.Store(true)
}

// aggregateNodes folds the main thread's unflushed node delta in with the
// shared counter for reporting mid-search totals.
func (tp *ThreadPool) aggregateNodes() int64 {
	return tp.nodes.Load() + tp.main.Nodes - tp.main.Time.lastFolded
}

// allThreads returns every thread in the pool, main first.
func (tp *ThreadPool) allThreads() []*SearchThread {
	all := make([]*SearchThread, 0, len(tp.workers)+1)
	all = append(all, tp.main)
	all = append(all, tp.workers...)
	return all
}

// voteBestMove finds the maximum completed depth across all threads, then
// returns the most frequent first-PV-move among threads that reached it
// (ties broken by first encountered), per spec 4.5 step 6.
func (tp *ThreadPool) voteBestMove() board.Move {
	threads := tp.allThreads()

	maxDepth := 0
	for _, t := range threads {
		if t.Completed > maxDepth {
			maxDepth = t.Completed
		}
	}

	var order []board.Move
	counts := make(map[board.Move]int)
	for _, t := range threads {
		if t.Completed != maxDepth || t.PV.Len() == 0 {
			continue
		}
		m := t.PV.BestMove()
		if _, seen := counts[m]; !seen {
			order = append(order, m)
		}
		counts[m]++
	}

	best := board.NullMove
	bestCount := -1
	for _, m := range order {
		if counts[m] > bestCount {
			bestCount = counts[m]
			best = m
		}
	}
	return best
}
