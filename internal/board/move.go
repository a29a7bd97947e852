package board

import "fmt"

// Move is a candidate move: origin, destination, and an optional promotion
// kind. Promotion is NoPieceType unless a pawn reaches its farthest rank.
// Castling and en passant carry no flag; ApplyMove recognizes them from the
// moving piece and the position.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: NoPieceType}
}

// NewPromotion creates a pawn promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// IsPromotion returns true if the move carries a promotion kind.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		promoChars := [...]byte{'p', 'n', 'b', 'r', 'q', 'k'}
		s += string(promoChars[m.Promotion])
	}
	return s
}

// ParseMove parses a coordinate-form move string.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return Move{}, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations during
// generation. 256 exceeds the maximum move count of any chess position.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves as a slice backed by the list's storage.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
