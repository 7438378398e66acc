package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newAtomics() (*atomic.Bool, *atomic.Int64) {
	return &atomic.Bool{}, &atomic.Int64{}
}

func TestTimeManagerDepthHasNoDeadlines(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCDepth, Depth: 10}, stop, nodes, true)

	assert.False(t, tm.StopSoft())
	assert.False(t, tm.StopHard(0))
}

func TestTimeManagerExceedsDepthOnlyAppliesToDepthKind(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCDepth, Depth: 5}, stop, nodes, true)

	assert.False(t, tm.ExceedsDepth(5))
	assert.True(t, tm.ExceedsDepth(6))

	infinite := NewTimeManager(TimeControl{Kind: TCInfinite}, stop, nodes, true)
	assert.False(t, infinite.ExceedsDepth(1000), "ExceedsDepth is only meaningful for TCDepth")
}

func TestTimeManagerInfiniteNeverStopsUntilToldTo(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCInfinite}, stop, nodes, true)

	assert.False(t, tm.StopSoft())
	assert.False(t, tm.StopHard(0))

	stop.Store(true)
	assert.True(t, tm.StopSoft())
	assert.True(t, tm.StopHard(0))
}

func TestTimeManagerMoveTimeSubtractsOverhead(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCMoveTime, MoveTimeMS: 1000}, stop, nodes, true)

	assert.Equal(t, time.Duration(1000-MoveOverheadMS)*time.Millisecond, tm.softLimit)
	assert.Equal(t, tm.softLimit, tm.hardLimit)
}

func TestTimeManagerMoveTimeBelowOverheadSaturatesToZero(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCMoveTime, MoveTimeMS: 10}, stop, nodes, true)

	assert.Equal(t, time.Duration(0), tm.hardLimit)
	assert.True(t, tm.NotSearch())
}

func TestTimeManagerNodesStopsAtThreshold(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCNodes, Nodes: 5000}, stop, nodes, true)

	nodes.Store(4999)
	assert.False(t, tm.StopSoft())
	assert.False(t, tm.StopHard(0))

	nodes.Store(5000)
	assert.True(t, tm.StopSoft())
}

func TestTimeManagerDynamicUsesMovesToGoWhenGiven(t *testing.T) {
	stop, nodes := newAtomics()
	tc := TimeControl{Kind: TCDynamic, WTimeMS: 10000, MovesToGo: 10}
	tm := NewTimeManager(tc, stop, nodes, true)

	maxTime := satSub(10000, MoveOverheadMS)
	wantHard := max64(maxTime/10, MinimumTimeMS)
	assert.Equal(t, time.Duration(wantHard)*time.Millisecond, tm.hardLimit)
}

func TestTimeManagerDynamicUsesIncrementWhenNoMovesToGo(t *testing.T) {
	stop, nodes := newAtomics()
	tc := TimeControl{Kind: TCDynamic, WTimeMS: 60000, WIncMS: 1000}
	tm := NewTimeManager(tc, stop, nodes, true)

	maxTime := satSub(60000, MoveOverheadMS)
	wantLimit := maxTime/DefaultMovesToGo + 1000*IncrementTimeBase/100
	wantHard := max64(wantLimit, MinimumTimeMS)
	assert.Equal(t, time.Duration(wantHard)*time.Millisecond, tm.hardLimit)
}

func TestTimeManagerDynamicPicksSideToMoveClock(t *testing.T) {
	stop, nodes := newAtomics()
	tc := TimeControl{Kind: TCDynamic, WTimeMS: 60000, BTimeMS: 1000, MovesToGo: 20}

	white := NewTimeManager(tc, stop, nodes, true)
	black := NewTimeManager(tc, stop, nodes, false)

	assert.Greater(t, white.hardLimit, black.hardLimit)
}

func TestTimeManagerStopIsSticky(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCMoveTime, MoveTimeMS: 100000}, stop, nodes, true)

	assert.False(t, tm.StopHard(0))
	stop.Store(true)
	assert.True(t, tm.StopHard(0))
	assert.True(t, tm.StopSoft())
}

func TestTimeManagerFoldsNodesEvery1024(t *testing.T) {
	stop, nodes := newAtomics()
	tm := NewTimeManager(TimeControl{Kind: TCNodes, Nodes: 1 << 30}, stop, nodes, true)

	tm.StopHard(500)
	assert.Equal(t, int64(0), nodes.Load(), "below the 1024 fold threshold, nothing is folded yet")

	tm.StopHard(2000)
	assert.Equal(t, int64(2000), nodes.Load())
}

func TestTimeManagerMoveTimeNotSearchOnlyForMoveTimeKind(t *testing.T) {
	stop, nodes := newAtomics()
	depth := NewTimeManager(TimeControl{Kind: TCDepth}, stop, nodes, true)
	assert.False(t, depth.NotSearch())

	dynamic := NewTimeManager(TimeControl{Kind: TCDynamic, WTimeMS: 0, MovesToGo: 1}, stop, nodes, true)
	assert.False(t, dynamic.NotSearch(), "NotSearch is defined only for MoveTime per spec")
}
