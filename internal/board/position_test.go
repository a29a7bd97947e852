package board

import (
	"strings"
	"testing"
)

func TestStartPosition(t *testing.T) {
	p := NewPosition(NewHasher())

	placements := []struct {
		sq    Square
		piece Piece
	}{
		{A1, WhiteRook}, {B1, WhiteKnight}, {C1, WhiteBishop}, {D1, WhiteQueen},
		{E1, WhiteKing}, {F1, WhiteBishop}, {G1, WhiteKnight}, {H1, WhiteRook},
		{A2, WhitePawn}, {H2, WhitePawn},
		{A7, BlackPawn}, {H7, BlackPawn},
		{A8, BlackRook}, {E8, BlackKing}, {H8, BlackRook},
		{E4, NoPiece}, {D5, NoPiece},
	}
	for _, tc := range placements {
		if got := p.PieceAt(tc.sq); got != tc.piece {
			t.Errorf("PieceAt(%s) = %v, want %v", tc.sq, got, tc.piece)
		}
	}

	if p.SideToMove != White {
		t.Error("white moves first")
	}
	if p.CastlingRights != AllCastling {
		t.Errorf("CastlingRights = %s, want KQkq", p.CastlingRights)
	}
	if p.EnPassant != NoSquare {
		t.Errorf("EnPassant = %s, want none", p.EnPassant)
	}
	if n := p.AllOccupied.PopCount(); n != 32 {
		t.Errorf("occupied squares = %d, want 32", n)
	}
}

func TestSetPieceRoundTrip(t *testing.T) {
	p := NewEmptyPosition(NewHasher())

	p.SetPiece(E4, WhiteKnight)
	p.SetPiece(D5, BlackQueen)
	p.UpdateOccupied()

	if got := p.PieceAt(E4); got != WhiteKnight {
		t.Errorf("PieceAt(e4) = %v, want white knight", got)
	}
	if got := p.PieceAt(D5); got != BlackQueen {
		t.Errorf("PieceAt(d5) = %v, want black queen", got)
	}

	// Replacing the occupant clears the square on every other set first.
	p.SetPiece(E4, BlackPawn)
	p.UpdateOccupied()

	if got := p.PieceAt(E4); got != BlackPawn {
		t.Errorf("PieceAt(e4) after replace = %v, want black pawn", got)
	}
	if got := p.PieceAt(D5); got != BlackQueen {
		t.Errorf("replace on e4 disturbed d5: %v", got)
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if (c != Black || pt != Pawn) && p.Pieces[c][pt].IsSet(E4) {
				t.Errorf("e4 still a member of the %v %v set", c, pt)
			}
		}
	}
}

// checkAggregates verifies that the occupancy aggregates equal the union of
// the twelve piece sets and that the colors are disjoint.
func checkAggregates(t *testing.T, p *Position) {
	t.Helper()

	var white, black Bitboard
	for pt := Pawn; pt <= King; pt++ {
		white |= p.Pieces[White][pt]
		black |= p.Pieces[Black][pt]
	}

	if p.Occupied[White] != white || p.Occupied[Black] != black {
		t.Error("per-color occupancy diverged from the piece sets")
	}
	if p.AllOccupied != white|black {
		t.Error("AllOccupied diverged from the union of the piece sets")
	}
	if white&black != 0 {
		t.Error("white and black occupancy overlap")
	}
}

func TestAggregateInvariant(t *testing.T) {
	p := NewPosition(NewHasher())
	checkAggregates(t, p)

	for _, mv := range []string{"e2e4", "d7d5", "e4d5", "d8d5"} {
		m, err := ParseMove(mv)
		if err != nil {
			t.Fatal(err)
		}
		p.ApplyMove(m)
		checkAggregates(t, p)
	}
}

func TestApplyMoveEnPassantTarget(t *testing.T) {
	p := NewPosition(NewHasher())

	p.ApplyMove(NewMove(E2, E4))
	if p.EnPassant != E3 {
		t.Errorf("EnPassant after e2e4 = %s, want e3", p.EnPassant)
	}

	// Two-square advance from d7 (51) to d5 (35) exposes d6 (43).
	p.ApplyMove(NewMove(D7, D5))
	if p.EnPassant != D6 {
		t.Errorf("EnPassant after d7d5 = %s, want d6", p.EnPassant)
	}

	// Any other move clears the target unconditionally.
	p.ApplyMove(NewMove(G1, F3))
	if p.EnPassant != NoSquare {
		t.Errorf("EnPassant after knight move = %s, want none", p.EnPassant)
	}
}

func TestApplyMoveEnPassantCapture(t *testing.T) {
	p := NewEmptyPosition(NewHasher())
	p.SetPiece(E5, WhitePawn)
	p.SetPiece(D7, BlackPawn)
	p.UpdateOccupied()
	p.SideToMove = Black

	p.ApplyMove(NewMove(D7, D5))
	if p.EnPassant != D6 {
		t.Fatalf("EnPassant = %s, want d6", p.EnPassant)
	}

	p.ApplyMove(NewMove(E5, D6))

	if got := p.PieceAt(D6); got != WhitePawn {
		t.Errorf("PieceAt(d6) = %v, want white pawn", got)
	}
	if got := p.PieceAt(D5); got != NoPiece {
		t.Errorf("captured pawn still on d5: %v", got)
	}
	if p.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d after capture, want 0", p.HalfMoveClock)
	}
	checkAggregates(t, p)
}

func TestApplyMovePromotion(t *testing.T) {
	p := NewEmptyPosition(NewHasher())
	p.SetPiece(A7, WhitePawn)
	p.UpdateOccupied()

	p.ApplyMove(NewPromotion(A7, A8, Queen))

	if got := p.PieceAt(A8); got != WhiteQueen {
		t.Errorf("PieceAt(a8) = %v, want white queen", got)
	}
	if p.Pieces[White][Pawn] != 0 {
		t.Error("promoted pawn still on the pawn set")
	}
	checkAggregates(t, p)
}

func TestApplyMoveCastling(t *testing.T) {
	p := NewPosition(NewHasher())
	p.SetPiece(F1, NoPiece)
	p.SetPiece(G1, NoPiece)
	p.UpdateOccupied()

	p.ApplyMove(NewMove(E1, G1))

	if got := p.PieceAt(G1); got != WhiteKing {
		t.Errorf("PieceAt(g1) = %v, want white king", got)
	}
	if got := p.PieceAt(F1); got != WhiteRook {
		t.Errorf("PieceAt(f1) = %v, want white rook", got)
	}
	if p.PieceAt(H1) != NoPiece || p.PieceAt(E1) != NoPiece {
		t.Error("king or rook origin square still occupied")
	}
	if p.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Errorf("white castling rights survived castling: %s", p.CastlingRights)
	}
	if p.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) == 0 {
		t.Error("black castling rights lost")
	}
	checkAggregates(t, p)
}

func TestApplyMoveFromEmptySquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic applying a move from an empty square")
		}
	}()

	p := NewPosition(NewHasher())
	p.ApplyMove(NewMove(E4, E5))
}

func TestCastlingGating(t *testing.T) {
	p := NewPosition(NewHasher())

	if p.CanCastleKingside(White) {
		t.Error("kingside castling allowed through f1/g1 occupants")
	}

	p.SetPiece(F1, NoPiece)
	p.SetPiece(G1, NoPiece)
	p.UpdateOccupied()
	if !p.CanCastleKingside(White) {
		t.Error("kingside castling refused with f1/g1 vacated")
	}

	// A rook on f5 attacks f1 once the f2 pawn no longer shadows it.
	p.SetPiece(F2, NoPiece)
	p.SetPiece(F5, BlackRook)
	p.UpdateOccupied()
	if p.CanCastleKingside(White) {
		t.Error("kingside castling allowed across an attacked transit square")
	}

	// Re-blocking the ray restores eligibility.
	p.SetPiece(F3, WhitePawn)
	p.UpdateOccupied()
	if !p.CanCastleKingside(White) {
		t.Error("kingside castling refused though the attack is shadowed")
	}
}

func TestCastlingQueensideGating(t *testing.T) {
	p := NewPosition(NewHasher())

	if p.CanCastleQueenside(White) {
		t.Error("queenside castling allowed through b1/c1/d1 occupants")
	}

	for _, sq := range []Square{B1, C1, D1} {
		p.SetPiece(sq, NoPiece)
	}
	p.UpdateOccupied()
	if !p.CanCastleQueenside(White) {
		t.Error("queenside castling refused with b1/c1/d1 vacated")
	}

	// Rights flag absent: refused regardless of geometry.
	p.CastlingRights &^= WhiteQueenSideCastle
	if p.CanCastleQueenside(White) {
		t.Error("queenside castling allowed without the rights flag")
	}

	// Rook missing from its origin square: refused even with the flag.
	p.CastlingRights |= WhiteQueenSideCastle
	p.SetPiece(A1, NoPiece)
	p.UpdateOccupied()
	if p.CanCastleQueenside(White) {
		t.Error("queenside castling allowed without the rook on a1")
	}
}

func TestIsSquareSafe(t *testing.T) {
	p := NewEmptyPosition(NewHasher())
	p.SetPiece(F5, BlackRook)
	p.SetPiece(E1, WhiteKing)
	p.UpdateOccupied()

	if p.IsSquareSafe(F1) {
		t.Error("f1 reported safe under a rook on the open f-file")
	}
	if !p.IsSquareSafe(E1) {
		t.Error("e1 reported unsafe with no attacker")
	}

	// A blocker shadows attacks from beyond it.
	p.SetPiece(F3, WhitePawn)
	p.UpdateOccupied()
	if !p.IsSquareSafe(F1) {
		t.Error("f1 reported unsafe though the rook's ray is blocked")
	}

	p.SetPiece(D2, BlackKnight)
	p.UpdateOccupied()
	if p.IsSquareSafe(F1) {
		t.Error("f1 reported safe under a knight on d2")
	}
}

func TestHalfMoveClock(t *testing.T) {
	p := NewPosition(NewHasher())

	p.ApplyMove(NewMove(G1, F3))
	p.ApplyMove(NewMove(B8, C6))
	if p.HalfMoveClock != 2 {
		t.Errorf("half-move clock = %d, want 2", p.HalfMoveClock)
	}

	p.ApplyMove(NewMove(E2, E4))
	if p.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d after pawn move, want 0", p.HalfMoveClock)
	}
}

func TestPositionString(t *testing.T) {
	p := NewPosition(NewHasher())
	s := p.String()

	for _, want := range []string{"a b c d e f g h", "R N B Q K B N R", "r n b q k b n r", "Side to move: White"} {
		if !strings.Contains(s, want) {
			t.Errorf("board dump missing %q:\n%s", want, s)
		}
	}
}
