package search

import "corvid/board"

// KillerTable stores two quiet beta-cutoff moves per ply (spec 3, 4.3),
// grounded on laura_engine/src/tables.rs's KillerMoves.
type KillerTable struct {
	table [MaxPly][killerSlots]board.Move
}

// Store inserts m at slot 0 if it differs from the current slot 0, shifting
// the old slot 0 into slot 1. Only quiet moves are ever stored; callers are
// expected to have already checked m.IsQuiet() (spec 3).
func (k *KillerTable) Store(ply int, m board.Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if k.table[ply][0] == m {
		return
	}
	k.table[ply][1] = k.table[ply][0]
	k.table[ply][0] = m
}

// Get returns the two killer slots for ply (either may be NullMove).
func (k *KillerTable) Get(ply int) [killerSlots]board.Move {
	if ply < 0 || ply >= MaxPly {
		return [killerSlots]board.Move{}
	}
	return k.table[ply]
}

// Clear empties every slot, used when starting a new search.
func (k *KillerTable) Clear() {
	for i := range k.table {
		k.table[i] = [killerSlots]board.Move{}
	}
}
