package board

const (
	CastleWhiteKing uint8 = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// Board is an immutable-by-convention snapshot of a chess position: piece
// placement, side to move, castling rights, en passant target and a
// Zobrist key kept stable under MakeMove/NullMove. It is the "Board
// collaborator" of spec 3: search only ever holds a Board by value and
// replaces it wholesale via MakeMove/NullMove, never mutates in place.
type Board struct {
	Pieces    [2][7]Bitboard // [Color][PieceType], PieceType 0 unused
	Occupied  [2]Bitboard    // per-color occupancy
	All       Bitboard       // Occupied[White] | Occupied[Black]
	SideToMove Color
	Castling  uint8
	EnPassant Square // NoSquare if unavailable
	HalfMove  uint8
	FullMove  uint16
	Hash      uint64
}

// PieceOn returns the piece (possibly NoPiece) occupying sq.
func (b *Board) PieceOn(sq Square) Piece {
	bb := SquareBB(sq)
	for c := White; c <= Black; c++ {
		if b.Occupied[c]&bb == 0 {
			continue
		}
		for pt := Pawn; pt <= King; pt++ {
			if b.Pieces[c][pt]&bb != 0 {
				return Piece{Type: pt, Color: c}
			}
		}
	}
	return NoPiece
}

func (b *Board) KingSquare(c Color) Square {
	return b.Pieces[c][King].LSB()
}

func (b *Board) place(c Color, pt PieceType, sq Square) {
	b.Pieces[c][pt].Set(sq)
	b.Occupied[c].Set(sq)
	b.All.Set(sq)
	b.Hash ^= pieceKey(c, pt, sq)
}

func (b *Board) remove(c Color, pt PieceType, sq Square) {
	b.Pieces[c][pt].Clear(sq)
	b.Occupied[c].Clear(sq)
	b.All.Clear(sq)
	b.Hash ^= pieceKey(c, pt, sq)
}

// rookCastleSquares returns the rook source/destination for a castle move.
func rookCastleSquares(c Color, kingSide bool) (from, to Square) {
	rank := Rank1
	if c == Black {
		rank = Rank8
	}
	if kingSide {
		return NewSquare(FileH, rank), NewSquare(FileF, rank)
	}
	return NewSquare(FileA, rank), NewSquare(FileD, rank)
}

// castleRightsLost returns the castling-rights bits removed when a piece
// moves from or a rook is captured on sq.
func castleRightsLost(sq Square) uint8 {
	switch sq {
	case NewSquare(FileE, Rank1):
		return CastleWhiteKing | CastleWhiteQueen
	case NewSquare(FileH, Rank1):
		return CastleWhiteKing
	case NewSquare(FileA, Rank1):
		return CastleWhiteQueen
	case NewSquare(FileE, Rank8):
		return CastleBlackKing | CastleBlackQueen
	case NewSquare(FileH, Rank8):
		return CastleBlackKing
	case NewSquare(FileA, Rank8):
		return CastleBlackQueen
	default:
		return 0
	}
}

// MakeMove returns the board resulting from playing m; it does not mutate
// the receiver. The caller (search.Position) is responsible for pushing the
// old board onto an undo stack (spec 3/4.6).
func (b Board) MakeMove(m Move) Board {
	nb := b
	us := b.SideToMove
	them := us.Other()
	src, dest := m.Src(), m.Dest()
	moving := b.PieceOn(src)

	nb.Hash ^= castlingKey(nb.Castling)
	if nb.EnPassant != NoSquare {
		nb.Hash ^= enPassantKey(nb.EnPassant.File())
	}
	nb.EnPassant = NoSquare

	nb.remove(us, moving.Type, src)

	switch m.Type() {
	case EnPassant:
		capSq := Square(int(dest) - 8)
		if us == Black {
			capSq = Square(int(dest) + 8)
		}
		nb.remove(them, Pawn, capSq)
		nb.place(us, Pawn, dest)
	case KingCastle, QueenCastle:
		nb.place(us, King, dest)
		rFrom, rTo := rookCastleSquares(us, m.Type() == KingCastle)
		nb.remove(us, Rook, rFrom)
		nb.place(us, Rook, rTo)
	default:
		if m.IsCapture() {
			capturedType := b.PieceOn(dest).Type
			nb.remove(them, capturedType, dest)
			nb.Castling &^= castleRightsLost(dest)
		}
		if m.IsPromotion() {
			nb.place(us, m.PromotionPiece(), dest)
		} else {
			nb.place(us, moving.Type, dest)
		}
	}

	nb.Castling &^= castleRightsLost(src)

	if m.Type() == DoublePawnPush {
		epSq := Square(int(src+dest) / 2)
		nb.EnPassant = epSq
		nb.Hash ^= enPassantKey(epSq.File())
	}

	if moving.Type == Pawn || m.IsCapture() {
		nb.HalfMove = 0
	} else {
		nb.HalfMove = b.HalfMove + 1
	}
	if us == Black {
		nb.FullMove = b.FullMove + 1
	}

	nb.Hash ^= castlingKey(nb.Castling)
	nb.Hash ^= HashSide()
	nb.SideToMove = them
	return nb
}

// NullMove returns the board with the side to move flipped and en passant
// cleared, used by the search collaborator for null-move style probing
// (spec 3's push_null).
func (b Board) NullMove() Board {
	nb := b
	if nb.EnPassant != NoSquare {
		nb.Hash ^= enPassantKey(nb.EnPassant.File())
		nb.EnPassant = NoSquare
	}
	nb.Hash ^= HashSide()
	nb.SideToMove = b.SideToMove.Other()
	return nb
}

// Square attack and check detection live in package attacks, which depends
// on Board for types; Board itself stays free of that dependency so the two
// packages don't cycle (attacks.IsAttacked, attacks.InCheck).
