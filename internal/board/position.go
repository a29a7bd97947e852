package board

import (
	"fmt"
	"log/slog"
)

// CastlingRights is the 4-bit vector of available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the conventional "KQkq" form of the rights vector.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Position is a complete chess position: twelve piece bitboards, derived
// occupancy aggregates, side to move, castling rights, and the en-passant
// target. The aggregates must always equal the union of the twelve piece
// sets; every mutation path re-establishes that invariant.
type Position struct {
	// Piece bitboards: [Color][PieceType]. A square is a member of at
	// most one of the twelve sets at any time.
	Pieces [2][6]Bitboard

	// Occupancy aggregates, derived from Pieces.
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square, NoSquare if none
	HalfMoveClock  int    // plies since the last pawn move or capture
	FullMoveNumber int    // starts at 1

	// Hash is the current Zobrist fingerprint, recomputed by ApplyMove.
	Hash uint64

	hasher *Hasher
}

// NewPosition creates the standard starting position.
func NewPosition(h *Hasher) *Position {
	p := NewEmptyPosition(h)

	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range backRank {
		p.SetPiece(NewSquare(file, 0), NewPiece(pt, White))
		p.SetPiece(NewSquare(file, 7), NewPiece(pt, Black))
	}
	for file := 0; file < 8; file++ {
		p.SetPiece(NewSquare(file, 1), NewPiece(Pawn, White))
		p.SetPiece(NewSquare(file, 6), NewPiece(Pawn, Black))
	}

	p.CastlingRights = AllCastling
	p.UpdateOccupied()
	p.Hash = h.Compute(p)
	return p
}

// NewEmptyPosition creates a position with an empty board, white to move,
// and no castling rights.
func NewEmptyPosition(h *Hasher) *Position {
	p := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		hasher:         h,
	}
	p.Hash = h.Compute(p)
	return p
}

// Copy creates an independent copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
// The twelve sets are probed in fixed color/kind order; an occupied square
// yields exactly one piece value.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)

	if p.AllOccupied&bb == 0 {
		return NoPiece
	}

	var c Color
	if p.Occupied[White]&bb != 0 {
		c = White
	} else {
		c = Black
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// SetPiece places a piece on a square, clearing the square on every piece
// set first so no square is ever a member of two sets. The caller updates
// the aggregates afterward with UpdateOccupied.
func (p *Position) SetPiece(sq Square, piece Piece) {
	bb := SquareBB(sq)
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p.Pieces[c][pt] &^= bb
		}
	}
	if piece != NoPiece {
		p.Pieces[piece.Color()][piece.Type()] |= bb
	}
}

// UpdateOccupied recalculates the occupancy aggregates from the piece sets.
func (p *Position) UpdateOccupied() {
	p.Occupied[White] = Empty
	p.Occupied[Black] = Empty

	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}

	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// removePiece removes whatever occupies a square, keeping the aggregates in
// lock-step. Returns the removed piece.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	bb := SquareBB(sq)
	p.Pieces[piece.Color()][piece.Type()] &^= bb
	p.Occupied[piece.Color()] &^= bb
	p.AllOccupied &^= bb

	return piece
}

// movePiece relocates the occupant of from to the empty square to, keeping
// the aggregates in lock-step.
func (p *Position) movePiece(from, to Square, piece Piece) {
	moveBB := SquareBB(from) | SquareBB(to)
	p.Pieces[piece.Color()][piece.Type()] ^= moveBB
	p.Occupied[piece.Color()] ^= moveBB
	p.AllOccupied ^= moveBB
}

// CanCastleKingside reports whether the color may castle kingside right now:
// the rights flag is set, the squares between king and rook are empty, every
// square of the king's path (origin included) is safe, and the king and rook
// are actually standing on their origin squares.
func (p *Position) CanCastleKingside(c Color) bool {
	rank := 0
	flag := WhiteKingSideCastle
	if c == Black {
		rank = 7
		flag = BlackKingSideCastle
	}
	if p.CastlingRights&flag == 0 {
		return false
	}

	kingFrom := NewSquare(4, rank)
	rookFrom := NewSquare(7, rank)
	if p.PieceAt(kingFrom) != NewPiece(King, c) || p.PieceAt(rookFrom) != NewPiece(Rook, c) {
		return false
	}

	// f and g files must be empty.
	if p.AllOccupied&(SquareBB(NewSquare(5, rank))|SquareBB(NewSquare(6, rank))) != 0 {
		return false
	}

	// e, f and g files must not be attacked.
	for file := 4; file <= 6; file++ {
		if p.IsSquareAttacked(NewSquare(file, rank), c.Other()) {
			return false
		}
	}

	return true
}

// CanCastleQueenside mirrors CanCastleKingside for the queenside: b, c and d
// files empty, king path c-d-e safe, king and rook on their origin squares.
func (p *Position) CanCastleQueenside(c Color) bool {
	rank := 0
	flag := WhiteQueenSideCastle
	if c == Black {
		rank = 7
		flag = BlackQueenSideCastle
	}
	if p.CastlingRights&flag == 0 {
		return false
	}

	kingFrom := NewSquare(4, rank)
	rookFrom := NewSquare(0, rank)
	if p.PieceAt(kingFrom) != NewPiece(King, c) || p.PieceAt(rookFrom) != NewPiece(Rook, c) {
		return false
	}

	empties := SquareBB(NewSquare(1, rank)) | SquareBB(NewSquare(2, rank)) | SquareBB(NewSquare(3, rank))
	if p.AllOccupied&empties != 0 {
		return false
	}

	for file := 2; file <= 4; file++ {
		if p.IsSquareAttacked(NewSquare(file, rank), c.Other()) {
			return false
		}
	}

	return true
}

// ApplyMove mutates the position by an accepted move. The caller must have
// validated the move against the generated candidate list; applying a move
// from an empty square is a contract violation and panics.
//
// Order matters: the new en-passant target is decided from the piece about
// to move, before the origin square is cleared, and the old target governs
// en-passant capture resolution.
func (p *Position) ApplyMove(m Move) {
	piece := p.PieceAt(m.From)
	if piece == NoPiece {
		panic(fmt.Sprintf("board: ApplyMove from empty square %s", m.From))
	}

	us := piece.Color()
	oldEP := p.EnPassant

	// New en-passant target: a pawn moving exactly two ranks exposes the
	// midpoint square; every other move clears the target.
	newEP := NoSquare
	if piece.Type() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		newEP = Square((int(m.From) + int(m.To)) / 2)
	}

	captured := p.removePiece(m.To)
	p.movePiece(m.From, m.To, piece)

	// En-passant capture: the captured pawn sits one rank behind the
	// destination, on the mover's side of it.
	if piece.Type() == Pawn && m.To == oldEP && oldEP != NoSquare {
		var behind Square
		if us == White {
			behind = m.To - 8
		} else {
			behind = m.To + 8
		}
		captured = p.removePiece(behind)
		slog.Debug("en passant capture resolved", "target", m.To, "captured", behind)
	}

	// Promotion: substitute the promoted kind for the pawn on arrival at
	// the farthest rank.
	if m.IsPromotion() && piece.Type() == Pawn && m.To.Rank() == promotionRank(us) {
		bb := SquareBB(m.To)
		p.Pieces[us][Pawn] &^= bb
		p.Pieces[us][m.Promotion] |= bb
	}

	// Castling: a king moving two files drags its rook across.
	if piece.Type() == King && abs(m.To.File()-m.From.File()) == 2 {
		var rookFrom, rookTo Square
		if m.To > m.From {
			rookFrom = NewSquare(7, m.From.Rank())
			rookTo = NewSquare(5, m.From.Rank())
		} else {
			rookFrom = NewSquare(0, m.From.Rank())
			rookTo = NewSquare(3, m.From.Rank())
		}
		p.movePiece(rookFrom, rookTo, NewPiece(Rook, us))
	}

	// Castling rights degrade when the king or a rook leaves its origin
	// square, or a rook is captured on it.
	if piece.Type() == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if m.From == A1 || m.To == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	p.EnPassant = newEP

	if piece.Type() == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = us.Other()
	p.Hash = p.hasher.Compute(p)
}

// promotionRank returns the farthest rank for the color's pawns.
func promotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// String returns an 8x8 grid dump of the position with algebraic labels,
// the query surface a textual renderer consumes.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}
