package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corvid/board"
	"corvid/movegen"
)

func drain(mp *MovePicker) []board.Move {
	var out []board.Move
	for {
		m, ok := mp.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

func TestMovePickerYieldsEveryLegalMoveExactlyOnce(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	mp := NewMovePicker(&b, board.NullMove, [killerSlots]board.Move{})
	got := drain(mp)

	want := movegen.LegalMoves(&b)
	assert.Equal(t, len(want), len(got))

	seen := make(map[board.Move]bool, len(got))
	for _, m := range got {
		assert.False(t, seen[m], "move %v returned twice", m)
		seen[m] = true
	}
	for _, m := range want {
		assert.True(t, seen[m], "legal move %v was never yielded", m)
	}
}

func TestMovePickerSkipQuietsYieldsOnlyCapturesAndPromotions(t *testing.T) {
	b, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	assert.NoError(t, err)

	mp := NewQuiescenceMovePicker(&b, board.NullMove)
	got := drain(mp)

	tactical := movegen.TacticalMoves(&b)
	assert.Equal(t, len(tactical), len(got))
	for _, m := range got {
		assert.True(t, m.IsCapture() || m.IsPromotion())
	}
}

func TestMovePickerReturnsTTMoveFirst(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	legal := movegen.LegalMoves(&b)
	ttMove := legal[len(legal)-1]

	mp := NewMovePicker(&b, ttMove, [killerSlots]board.Move{})
	first, ok := mp.Next()
	assert.True(t, ok)
	assert.Equal(t, ttMove, first)
}

func TestMovePickerIgnoresIllegalTTMove(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	bogus := board.NewMove(board.NewSquare(board.FileA, board.Rank1), board.NewSquare(board.FileH, board.Rank8), board.Quiet)
	mp := NewMovePicker(&b, bogus, [killerSlots]board.Move{})
	got := drain(mp)

	assert.Equal(t, len(movegen.LegalMoves(&b)), len(got))
	for _, m := range got {
		assert.NotEqual(t, bogus, m)
	}
}

func TestMovePickerYieldsCaptureBeforeQuiets(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3q4/2P5/1N6/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	mp := NewMovePicker(&b, board.NullMove, [killerSlots]board.Move{})
	first, ok := mp.Next()
	assert.True(t, ok)
	assert.True(t, first.IsCapture(), "the only capture on the board sorts ahead of quiets")
}

func TestMovePickerYieldsLegalKillerBeforeQuiets(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	quiets := movegen.QuietMoves(&b)
	var killer board.Move
	for _, m := range quiets {
		if !m.IsCapture() && !m.IsPromotion() {
			killer = m
			break
		}
	}

	mp := NewMovePicker(&b, board.NullMove, [killerSlots]board.Move{killer, board.NullMove})
	got := drain(mp)

	idx := -1
	for i, m := range got {
		if m == killer {
			idx = i
			break
		}
	}
	assert.GreaterOrEqual(t, idx, 0)
	for i := 0; i < idx; i++ {
		assert.True(t, got[i].IsCapture() || got[i].IsPromotion() || got[i] == killer)
	}
}
