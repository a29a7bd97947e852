package board

import (
	"fmt"
	"math/bits"
)

// Bitboard is a 64-bit membership set over board squares.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
// Callers must only pass squares in [0,64); there are no bounds checks.
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets the bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears the bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ (1 << sq)
}

// And returns the intersection with a raw 64-bit mask.
func (b Bitboard) And(mask uint64) Bitboard {
	return b & Bitboard(mask)
}

// Or returns the union with a raw 64-bit mask.
func (b Bitboard) Or(mask uint64) Bitboard {
	return b | Bitboard(mask)
}

// AndAssign intersects the set with a raw 64-bit mask in place.
func (b *Bitboard) AndAssign(mask uint64) {
	*b &= Bitboard(mask)
}

// OrAssign unions the set with a raw 64-bit mask in place.
func (b *Bitboard) OrAssign(mask uint64) {
	*b |= Bitboard(mask)
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square index, or NoSquare if the set is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// ForEach calls the function for each set square in ascending order.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns all set squares in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "  a b c d e f g h\n"
	return s
}
