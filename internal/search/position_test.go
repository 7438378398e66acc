package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corvid/board"
)

type stubEvaluator struct{ value int }

func (s stubEvaluator) Evaluate(*board.Board) int { return s.value }

func TestPositionPushPopMoveRestoresBoard(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{})
	thread := NewSearchThread(0, nil)

	before := *pos.Board()
	m := board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.DoublePawnPush)

	pos.PushMove(m, thread)
	assert.Equal(t, 1, thread.Ply)
	assert.Equal(t, int64(1), thread.Nodes)
	assert.NotEqual(t, before.Hash, pos.Hash())

	pos.PopMove(thread)
	assert.Equal(t, 0, thread.Ply)
	assert.Equal(t, before, *pos.Board())
}

func TestPositionPushNullFlipsSideToMove(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{})
	thread := NewSearchThread(0, nil)

	pos.PushNull(thread)
	assert.Equal(t, board.Black, pos.Board().SideToMove)
	assert.Equal(t, 1, thread.Ply)

	pos.PopMove(thread)
	assert.Equal(t, board.White, pos.Board().SideToMove)
}

func TestPositionNestedPushPopRestoresExactly(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{})
	thread := NewSearchThread(0, nil)
	root := *pos.Board()

	m1 := board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.DoublePawnPush)
	m2 := board.NewMove(board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank5), board.DoublePawnPush)

	pos.PushMove(m1, thread)
	pos.PushMove(m2, thread)
	assert.Equal(t, 2, thread.Ply)

	pos.PopMove(thread)
	pos.PopMove(thread)
	assert.Equal(t, 0, thread.Ply)
	assert.Equal(t, root, *pos.Board())
}

func TestPositionCloneIsIndependent(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{})
	thread := NewSearchThread(0, nil)
	m := board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.DoublePawnPush)
	pos.PushMove(m, thread)

	clone := pos.Clone()
	cloneThread := NewSearchThread(0, nil)
	m2 := board.NewMove(board.NewSquare(board.FileD, board.Rank2), board.NewSquare(board.FileD, board.Rank4), board.DoublePawnPush)
	clone.PushMove(m2, cloneThread)

	assert.NotEqual(t, pos.Hash(), clone.Hash())
	clone.PopMove(cloneThread)
	assert.Equal(t, pos.Hash(), clone.Hash())
}

func TestPositionInCheckWhiteAndHashDelegate(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/4r3/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{})
	assert.True(t, pos.InCheck())
	assert.True(t, pos.White())
	assert.Equal(t, b.Hash, pos.Hash())
}

func TestPositionEvaluateDelegatesToEvaluator(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	pos := NewPosition(b, stubEvaluator{value: 77})
	assert.Equal(t, 77, pos.Evaluate())
}
