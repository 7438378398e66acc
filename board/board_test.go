package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeMoveQuietPawnPush(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	assert.NoError(t, err)

	m := NewMove(NewSquare(FileE, Rank2), NewSquare(FileE, Rank4), DoublePawnPush)
	nb := b.MakeMove(m)

	assert.Equal(t, Black, nb.SideToMove)
	assert.Equal(t, Piece{Type: Pawn, Color: White}, nb.PieceOn(NewSquare(FileE, Rank4)))
	assert.Equal(t, NoPiece, nb.PieceOn(NewSquare(FileE, Rank2)))
	assert.Equal(t, NewSquare(FileE, Rank3), nb.EnPassant)
	assert.NotEqual(t, b.Hash, nb.Hash)

	// original board is untouched: MakeMove is value-receiver, non-mutating.
	assert.Equal(t, White, b.SideToMove)
	assert.Equal(t, Piece{Type: Pawn, Color: White}, b.PieceOn(NewSquare(FileE, Rank2)))
}

func TestMakeMoveCapture(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	assert.NoError(t, err)

	m := NewMove(NewSquare(FileE, Rank4), NewSquare(FileD, Rank5), Capture)
	nb := b.MakeMove(m)

	assert.Equal(t, Piece{Type: Pawn, Color: White}, nb.PieceOn(NewSquare(FileD, Rank5)))
	assert.Equal(t, NoPiece, nb.PieceOn(NewSquare(FileE, Rank4)))
	assert.Equal(t, uint8(0), nb.HalfMove)
}

func TestMakeMoveEnPassant(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	assert.NoError(t, err)

	m := NewMove(NewSquare(FileE, Rank5), NewSquare(FileD, Rank6), EnPassant)
	nb := b.MakeMove(m)

	assert.Equal(t, Piece{Type: Pawn, Color: White}, nb.PieceOn(NewSquare(FileD, Rank6)))
	assert.Equal(t, NoPiece, nb.PieceOn(NewSquare(FileD, Rank5)), "captured pawn removed")
	assert.Equal(t, NoSquare, nb.EnPassant)
}

func TestMakeMoveCastling(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	m := NewMove(NewSquare(FileE, Rank1), NewSquare(FileG, Rank1), KingCastle)
	nb := b.MakeMove(m)

	assert.Equal(t, Piece{Type: King, Color: White}, nb.PieceOn(NewSquare(FileG, Rank1)))
	assert.Equal(t, Piece{Type: Rook, Color: White}, nb.PieceOn(NewSquare(FileF, Rank1)))
	assert.Equal(t, NoPiece, nb.PieceOn(NewSquare(FileE, Rank1)))
	assert.Equal(t, NoPiece, nb.PieceOn(NewSquare(FileH, Rank1)))
	assert.Equal(t, uint8(0), nb.Castling&(CastleWhiteKing|CastleWhiteQueen))
}

func TestMakeMovePromotion(t *testing.T) {
	b, err := ParseFEN("8/4P3/8/8/8/8/4k3/4K3 w - - 0 1")
	assert.NoError(t, err)

	m := NewMove(NewSquare(FileE, Rank7), NewSquare(FileE, Rank8), PromoQueen)
	nb := b.MakeMove(m)

	assert.Equal(t, Piece{Type: Queen, Color: White}, nb.PieceOn(NewSquare(FileE, Rank8)))
}

func TestNullMoveFlipsSideOnly(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	assert.NoError(t, err)

	nb := b.NullMove()
	assert.Equal(t, Black, nb.SideToMove)
	assert.Equal(t, b.All, nb.All)
	assert.NotEqual(t, b.Hash, nb.Hash)
}

func TestKingSquare(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	assert.NoError(t, err)
	assert.Equal(t, NewSquare(FileE, Rank1), b.KingSquare(White))
	assert.Equal(t, NewSquare(FileE, Rank8), b.KingSquare(Black))
}
