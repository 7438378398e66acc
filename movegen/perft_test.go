package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corvid/attacks"
	"corvid/board"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

// Reference perft values from the Chess Programming Wiki's standard
// starting-position table.
func TestPerftStartPosition(t *testing.T) {
	want := map[int]uint64{
		1: 20,
		2: 400,
		3: 8902,
		4: 197281,
	}
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)
	for depth, expected := range want {
		assert.Equal(t, expected, Perft(&b, depth), "depth %d", depth)
	}
}

func TestPerftStartPositionDepth5(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4865609), Perft(&b, 5))
}

// Kiwipete: a standard perft stress position exercising castling, en
// passant and promotions.
func TestPerftKiwipete(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	assert.Equal(t, uint64(48), Perft(&b, 1))
	assert.Equal(t, uint64(2039), Perft(&b, 2))
}

func TestLegalMovesExcludesSelfCheck(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	assert.NoError(t, err)
	for _, m := range LegalMoves(&b) {
		after := b.MakeMove(m)
		assert.False(t, attacks.IsAttacked(&after, after.KingSquare(board.White), board.Black))
	}
}

func TestTacticalAndQuietMovesPartitionLegalMoves(t *testing.T) {
	b, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	assert.NoError(t, err)

	all := LegalMoves(&b)
	tactical := TacticalMoves(&b)
	quiet := QuietMoves(&b)

	assert.Equal(t, len(all), len(tactical)+len(quiet))
	for _, m := range tactical {
		assert.True(t, m.IsCapture() || m.IsPromotion())
	}
	for _, m := range quiet {
		assert.True(t, m.IsQuiet())
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	assert.NoError(t, err)

	var total uint64
	for _, n := range Divide(&b, 3) {
		total += n
	}
	assert.Equal(t, Perft(&b, 3), total)
}
