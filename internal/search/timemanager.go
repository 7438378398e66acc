package search

import (
	"sync/atomic"
	"time"
)

// Time-control constants (spec 4.1).
const (
	MoveOverheadMS    = 50
	MinimumTimeMS     = 30
	OptimalTimeBase   = 65  // percent
	IncrementTimeBase = 85  // percent
	DefaultMovesToGo  = 40
)

// TimeControl mirrors the UCI go-parameter categories, matched in the order
// depth > movetime > (wtime/btime[+inc/movestogo]) > nodes > infinite,
// following original_source/laura_engine/src/timer.rs's parse precedence
// (spec 6 fixes only that "first matching category wins").
type TimeControl struct {
	Kind TimeControlKind

	Depth     int
	MoveTimeMS int64
	WTimeMS    int64
	BTimeMS    int64
	WIncMS     int64
	BIncMS     int64
	MovesToGo  int // 0 = not given
	Nodes      int64
}

type TimeControlKind int

const (
	TCDepth TimeControlKind = iota
	TCMoveTime
	TCDynamic
	TCNodes
	TCInfinite
)

// TimeManager converts a TimeControl into soft/hard deadlines and polls
// them during search (spec 4.1). It is constructed per-search for the main
// thread; every worker thread gets its own copy, which shares the stop flag
// and node counter but keeps its own node-fold bookkeeping.
type TimeManager struct {
	control TimeControl

	start time.Time

	softLimit time.Duration
	hardLimit time.Duration

	// shared across every thread in the pool
	stop  *atomic.Bool
	nodes *atomic.Int64

	// per-thread-manager buffering of the local node count, folded into
	// the shared counter every 1024 nodes (spec 4.1).
	lastFolded int64
}

// NewTimeManager builds a TimeManager for tc, starting the clock now.
// stop and nodes are the pool-shared atomics; white is the side to move,
// used only to pick wtime/winc vs btime/binc for DynamicTime.
func NewTimeManager(tc TimeControl, stop *atomic.Bool, nodes *atomic.Int64, white bool) *TimeManager {
	tm := &TimeManager{control: tc, start: time.Now(), stop: stop, nodes: nodes}
	tm.computeLimits(white)
	return tm
}

func satSub(a, b int64) int64 {
	if b >= a {
		return 0
	}
	return a - b
}

func (tm *TimeManager) computeLimits(white bool) {
	switch tm.control.Kind {
	case TCDepth, TCInfinite:
		tm.softLimit = 0
		tm.hardLimit = 0
	case TCMoveTime:
		t := tm.control.MoveTimeMS
		soft := satSub(t, min64(MoveOverheadMS, t))
		tm.softLimit = time.Duration(soft) * time.Millisecond
		tm.hardLimit = tm.softLimit
	case TCDynamic:
		remaining, inc := tm.control.BTimeMS, tm.control.BIncMS
		if white {
			remaining, inc = tm.control.WTimeMS, tm.control.WIncMS
		}
		maxTime := satSub(remaining, MoveOverheadMS)

		var limit int64
		if tm.control.MovesToGo > 0 {
			limit = maxTime / int64(tm.control.MovesToGo)
		} else {
			limit = maxTime/DefaultMovesToGo + inc*IncrementTimeBase/100
		}

		hard := max64(limit, MinimumTimeMS)
		soft := max64(min64(hard, maxTime)*OptimalTimeBase/100, MinimumTimeMS)

		tm.hardLimit = time.Duration(hard) * time.Millisecond
		tm.softLimit = time.Duration(soft) * time.Millisecond
	case TCNodes:
		tm.softLimit = 0
		tm.hardLimit = 0
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// NotSearch reports a timed control whose hard limit computed to zero,
// signaling the pool to skip searching entirely (spec 4.5 step 2).
func (tm *TimeManager) NotSearch() bool {
	return tm.control.Kind == TCMoveTime && tm.hardLimit == 0
}

// ExceedsDepth reports whether depth is past a TimeControl::Depth bound
// (spec 4.4: the depth loop caps itself; TCDepth carries no stop_soft
// deadline of its own, per spec 4.1's note for Depth(d)).
func (tm *TimeManager) ExceedsDepth(depth int) bool {
	return tm.control.Kind == TCDepth && depth > tm.control.Depth
}

// Elapsed returns wall-clock time since the manager was constructed.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.start) }

// StopSoft is polled only at the iterative-deepening loop boundary, between
// depths (spec 4.1).
func (tm *TimeManager) StopSoft() bool {
	if tm.stop.Load() {
		return true
	}
	switch tm.control.Kind {
	case TCDepth:
		return false
	case TCMoveTime, TCDynamic:
		if tm.Elapsed() >= tm.softLimit {
			tm.stop.Store(true)
			return true
		}
		return false
	case TCNodes:
		if tm.nodes.Load() >= tm.control.Nodes {
			tm.stop.Store(true)
			return true
		}
		return false
	case TCInfinite:
		return false
	}
	return false
}

// StopHard is polled at every node. localNodes is the thread's own running
// node count; once it has grown by more than 1024 since the last fold, the
// delta is added to the shared aggregate counter (spec 4.1/5). The stop
// flag is sticky: once set, every subsequent poll (on this or any other
// thread sharing the same *atomic.Bool) returns true immediately.
func (tm *TimeManager) StopHard(localNodes int64) bool {
	if tm.stop.Load() {
		return true
	}
	if localNodes-tm.lastFolded > 1024 {
		tm.nodes.Add(localNodes - tm.lastFolded)
		tm.lastFolded = localNodes
	}
	switch tm.control.Kind {
	case TCDepth:
		return tm.stop.Load()
	case TCMoveTime, TCDynamic:
		if tm.Elapsed() >= tm.hardLimit {
			tm.stop.Store(true)
			return true
		}
		return false
	case TCNodes:
		if tm.nodes.Load() >= tm.control.Nodes {
			tm.stop.Store(true)
			return true
		}
		return false
	case TCInfinite:
		return tm.stop.Load()
	}
	return false
}
