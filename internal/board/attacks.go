package board

// Fixed square offsets for the leaper pieces. Raw offset arithmetic cannot
// distinguish an off-board wrap from a legal jump, so every candidate is
// additionally screened by its file delta.
var (
	knightOffsets = [8]int{17, 15, 10, 6, -17, -15, -10, -6}
	kingOffsets   = [8]int{9, 8, 7, 1, -1, -7, -8, -9}
)

// Sliding directions as (file, rank) steps, so rays terminate at the board
// edge instead of wrapping.
type direction struct {
	df, dr int
}

var (
	bishopDirections = [4]direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	rookDirections   = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirections  = [8]direction{
		{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	}
)

// Pre-computed attack tables for the leaper pieces.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square], capture targets
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		attacks := Empty
		for _, offset := range knightOffsets {
			target := int(sq) + offset
			if target < 0 || target > 63 {
				continue
			}
			fileDiff := abs(target%8 - sq.File())
			// |Δfile|=1 for the ±17/±15 offsets, 2 for ±10/±6.
			if (abs(offset) == 17 || abs(offset) == 15) && fileDiff == 1 ||
				(abs(offset) == 10 || abs(offset) == 6) && fileDiff == 2 {
				attacks = attacks.Set(Square(target))
			}
		}
		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		attacks := Empty
		for _, offset := range kingOffsets {
			target := int(sq) + offset
			if target < 0 || target > 63 {
				continue
			}
			if abs(target%8-sq.File()) <= 1 {
				attacks = attacks.Set(Square(target))
			}
		}
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		white := Empty
		black := Empty
		for _, offset := range [2]int{7, 9} {
			up := int(sq) + offset
			if up <= 63 && abs(up%8-sq.File()) == 1 {
				white = white.Set(Square(up))
			}
			down := int(sq) - offset
			if down >= 0 && abs(down%8-sq.File()) == 1 {
				black = black.Set(Square(down))
			}
		}
		pawnAttacks[White][sq] = white
		pawnAttacks[Black][sq] = black
	}
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the capture targets of a pawn of the given color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// slidingAttacks walks each direction one step at a time from sq, collecting
// every square visited. The first occupied square ends its ray; the blocker
// itself is included, so the caller decides whether it is capturable.
func slidingAttacks(sq Square, directions []direction, occupied Bitboard) Bitboard {
	attacks := Empty
	for _, d := range directions {
		f, r := sq.File()+d.df, sq.Rank()+d.dr
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			target := NewSquare(f, r)
			attacks = attacks.Set(target)
			if occupied.IsSet(target) {
				break
			}
			f += d.df
			r += d.dr
		}
	}
	return attacks
}

// BishopAttacks returns diagonal attacks from sq given the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, bishopDirections[:], occupied)
}

// RookAttacks returns orthogonal attacks from sq given the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, rookDirections[:], occupied)
}

// QueenAttacks returns all sliding attacks from sq given the occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, queenDirections[:], occupied)
}

// AttackersByColor probes outward from sq and returns the pieces of the given
// color that attack it: pawn offsets fixed per attacker color, knight and
// king offset tables, and sliding rays blocked by the first occupied square.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	// A pawn of color c attacks sq iff sq is a capture target of a
	// same-colored pawn probing from sq in the opposite direction.
	return (pawnAttacks[c.Other()][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// IsSquareSafe returns true if no piece of the opponent of the side to move
// attacks the square. This is a static probe; it does not consider whether
// the side to move is itself in check.
func (p *Position) IsSquareSafe(sq Square) bool {
	return !p.IsSquareAttacked(sq, p.SideToMove.Other())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
