package board

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromChar = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// ParseFEN parses a 6-field FEN record into a Board.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Board{}, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	var b Board
	b.EnPassant = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				pt, ok := pieceFromChar[lower(ch)]
				if !ok {
					return Board{}, fmt.Errorf("fen: bad piece char %q", ch)
				}
				if file > 7 {
					return Board{}, fmt.Errorf("fen: rank overflow")
				}
				color := White
				if ch >= 'a' && ch <= 'z' {
					color = Black
				}
				b.place(color, pt, NewSquare(file, rank))
				file++
			}
		}
		if file != 8 {
			return Board{}, fmt.Errorf("fen: rank %d has %d files", i, file)
		}
	}

	switch fields[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
		b.Hash ^= HashSide()
	default:
		return Board{}, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				b.Castling |= CastleWhiteKing
			case 'Q':
				b.Castling |= CastleWhiteQueen
			case 'k':
				b.Castling |= CastleBlackKing
			case 'q':
				b.Castling |= CastleBlackQueen
			default:
				return Board{}, fmt.Errorf("fen: bad castling char %q", ch)
			}
		}
	}
	b.Hash ^= castlingKey(b.Castling)

	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return Board{}, fmt.Errorf("fen: bad en passant square %q", fields[3])
		}
		b.EnPassant = sq
		b.Hash ^= enPassantKey(sq.File())
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return Board{}, fmt.Errorf("fen: bad halfmove clock: %w", err)
	}
	b.HalfMove = uint8(half)

	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return Board{}, fmt.Errorf("fen: bad fullmove number: %w", err)
	}
	b.FullMove = uint16(full)

	return b, nil
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + 32
	}
	return ch
}

// FEN renders the board back into FEN notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			p := b.PieceOn(NewSquare(file, rank))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.Castling == 0 {
		sb.WriteByte('-')
	} else {
		if b.Castling&CastleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if b.Castling&CastleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if b.Castling&CastleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if b.Castling&CastleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if b.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.EnPassant.String())
	}

	fmt.Fprintf(&sb, " %d %d", b.HalfMove, b.FullMove)
	return sb.String()
}

// Pretty renders an 8x8 ASCII board for debugging/UCI "print".
func (b *Board) Pretty() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := FileA; file <= FileH; file++ {
			p := b.PieceOn(NewSquare(file, rank))
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
