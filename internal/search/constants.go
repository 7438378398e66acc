// Package search implements the CORE of the engine: the alpha-beta/
// quiescence search, principal-variation aggregation, staged move picker,
// lockless shared transposition table, per-thread search state, the
// thread pool with its cooperative stop protocol, and time management
// (spec 1-5).
package search

const (
	// Infinity bounds every returned score (spec 4.4).
	Infinity = 32001
	// Mate is the base mate score; actual mate scores are Mate-ply (spec 4.4).
	Mate = 32000
	// MaxPly bounds recursion depth and every per-ply fixed-size table (spec 3/4.4).
	MaxPly = 128

	// TTMate is the mate-distance normalization threshold (spec 4.2).
	TTMate = 30000

	killerSlots = 2

	aspirationMargin         = 25
	aspirationDepthThreshold = 5
	maxAspirationDelta       = 1025
)
