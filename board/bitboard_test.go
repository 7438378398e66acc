package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClearHas(t *testing.T) {
	var bb Bitboard
	sq := NewSquare(FileD, Rank4)
	assert.False(t, bb.Has(sq))
	bb.Set(sq)
	assert.True(t, bb.Has(sq))
	bb.Clear(sq)
	assert.False(t, bb.Has(sq))
}

func TestBitboardPopCountAndPopLSB(t *testing.T) {
	bb := SquareBB(NewSquare(FileA, Rank1)) | SquareBB(NewSquare(FileH, Rank8))
	assert.Equal(t, 2, bb.PopCount())

	first := bb.PopLSB()
	assert.Equal(t, NewSquare(FileA, Rank1), first)
	assert.Equal(t, 1, bb.PopCount())

	second := bb.PopLSB()
	assert.Equal(t, NewSquare(FileH, Rank8), second)
	assert.Equal(t, 0, bb.PopCount())
}

func TestFileAndRankMasks(t *testing.T) {
	assert.Equal(t, 8, FileABB.PopCount())
	assert.Equal(t, 8, Rank1BB.PopCount())
	assert.True(t, FileABB.Has(NewSquare(FileA, Rank4)))
	assert.False(t, FileABB.Has(NewSquare(FileB, Rank4)))
}
