package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBitboardSetClearTest(t *testing.T) {
	var b Bitboard

	b = b.Set(A1).Set(E4).Set(H8)
	for _, sq := range []Square{A1, E4, H8} {
		if !b.IsSet(sq) {
			t.Errorf("expected %s to be set", sq)
		}
	}
	if b.IsSet(E5) {
		t.Errorf("did not expect %s to be set", E5)
	}

	b = b.Clear(E4)
	if b.IsSet(E4) {
		t.Errorf("expected %s to be cleared", E4)
	}
	if !b.IsSet(A1) || !b.IsSet(H8) {
		t.Error("clearing one square disturbed the others")
	}

	b = b.Toggle(E4)
	if !b.IsSet(E4) {
		t.Errorf("expected %s to be set after toggle", E4)
	}
}

func TestBitboardRawMaskOps(t *testing.T) {
	b := SquareBB(A1) | SquareBB(B1) | SquareBB(C1)

	if got := b.And(uint64(SquareBB(B1) | SquareBB(H8))); got != SquareBB(B1) {
		t.Errorf("And = %x, want %x", uint64(got), uint64(SquareBB(B1)))
	}
	if got := b.Or(uint64(SquareBB(H8))); !got.IsSet(H8) || !got.IsSet(A1) {
		t.Error("Or dropped members")
	}

	c := b
	c.AndAssign(uint64(SquareBB(A1)))
	if c != SquareBB(A1) {
		t.Errorf("AndAssign = %x, want %x", uint64(c), uint64(SquareBB(A1)))
	}

	c.OrAssign(uint64(SquareBB(D1)))
	if !c.IsSet(D1) || !c.IsSet(A1) {
		t.Error("OrAssign dropped members")
	}
}

func TestBitboardIteration(t *testing.T) {
	b := SquareBB(H8) | SquareBB(A1) | SquareBB(E4) | SquareBB(B2)

	want := []Square{A1, B2, E4, H8} // ascending
	if diff := cmp.Diff(want, b.Squares()); diff != "" {
		t.Errorf("Squares() mismatch (-want +got):\n%s", diff)
	}

	var visited []Square
	b.ForEach(func(sq Square) {
		visited = append(visited, sq)
	})
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("ForEach mismatch (-want +got):\n%s", diff)
	}

	// Iteration is restartable: the source set is unchanged.
	if b.PopCount() != 4 {
		t.Errorf("PopCount = %d after iteration, want 4", b.PopCount())
	}
}

func TestBitboardPopLSB(t *testing.T) {
	b := SquareBB(C3) | SquareBB(F7)

	if sq := b.PopLSB(); sq != C3 {
		t.Errorf("first PopLSB = %s, want %s", sq, C3)
	}
	if sq := b.PopLSB(); sq != F7 {
		t.Errorf("second PopLSB = %s, want %s", sq, F7)
	}
	if !b.Empty() {
		t.Error("expected empty bitboard after popping all squares")
	}
	if sq := b.LSB(); sq != NoSquare {
		t.Errorf("LSB of empty set = %s, want NoSquare", sq)
	}
}

func TestSquareMapping(t *testing.T) {
	tests := []struct {
		sq   Square
		file int
		rank int
		name string
	}{
		{A1, 0, 0, "a1"},
		{H1, 7, 0, "h1"},
		{E4, 4, 3, "e4"},
		{D4, 3, 3, "d4"},
		{A8, 0, 7, "a8"},
		{H8, 7, 7, "h8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.sq.File() != tc.file || tc.sq.Rank() != tc.rank {
				t.Errorf("%s: file/rank = %d/%d, want %d/%d",
					tc.sq, tc.sq.File(), tc.sq.Rank(), tc.file, tc.rank)
			}
			if tc.sq.String() != tc.name {
				t.Errorf("String() = %q, want %q", tc.sq.String(), tc.name)
			}
			parsed, err := ParseSquare(tc.name)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", tc.name, err)
			}
			if parsed != tc.sq {
				t.Errorf("ParseSquare(%q) = %v, want %v", tc.name, parsed, tc.sq)
			}
		})
	}

	if _, err := ParseSquare("j9"); err == nil {
		t.Error("expected error for off-board square")
	}
}
