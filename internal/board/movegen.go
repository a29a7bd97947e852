package board

// GenerateMoves produces the pseudo-legal moves for the side to move:
// each move obeys piece movement and occupancy, but may still leave the
// mover's own king in check. Only castling squares are check-screened.
// The position is not mutated; two calls on an unmodified position return
// identical move lists.
func (p *Position) GenerateMoves() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove

	pieces := p.Occupied[us]
	for pieces != 0 {
		sq := pieces.PopLSB()
		switch p.PieceAt(sq).Type() {
		case Pawn:
			p.generatePawnMoves(ml, sq, us)
		case Knight:
			p.generateLeaperMoves(ml, sq, KnightAttacks(sq), us)
		case Bishop:
			p.generateSlidingMoves(ml, sq, bishopDirections[:], us)
		case Rook:
			p.generateSlidingMoves(ml, sq, rookDirections[:], us)
		case Queen:
			p.generateSlidingMoves(ml, sq, queenDirections[:], us)
		case King:
			p.generateKingMoves(ml, sq, us)
		}
	}

	return ml
}

// generatePawnMoves emits single pushes (with promotion substitution on the
// farthest rank), double pushes from the starting rank, diagonal captures,
// and en-passant captures.
func (p *Position) generatePawnMoves(ml *MoveList, sq Square, us Color) {
	dir := 8
	startRank := 1
	if us == Black {
		dir = -8
		startRank = 6
	}

	// Single push, destination empty.
	forward := int(sq) + dir
	if forward >= 0 && forward < 64 && p.IsEmpty(Square(forward)) {
		addPawnMove(ml, sq, Square(forward), us)

		// Double push only from the starting rank, both squares empty.
		if sq.Rank() == startRank {
			double := int(sq) + 2*dir
			if p.IsEmpty(Square(double)) {
				ml.Add(NewMove(sq, Square(double)))
			}
		}
	}

	// Diagonal captures onto opponent-occupied squares.
	them := us.Other()
	targets := PawnAttacks(sq, us) & p.Occupied[them]
	for targets != 0 {
		addPawnMove(ml, sq, targets.PopLSB(), us)
	}

	// En-passant capture: the origin must be diagonally adjacent to the
	// current target, which the attack table encodes wrap-safely.
	if p.EnPassant != NoSquare && PawnAttacks(sq, us).IsSet(p.EnPassant) {
		ml.Add(NewMove(sq, p.EnPassant))
	}
}

// addPawnMove emits the move, substituting the four promotion kinds when the
// pawn lands on the farthest rank for its color.
func addPawnMove(ml *MoveList, from, to Square, us Color) {
	if to.Rank() == promotionRank(us) {
		ml.Add(NewPromotion(from, to, Queen))
		ml.Add(NewPromotion(from, to, Rook))
		ml.Add(NewPromotion(from, to, Bishop))
		ml.Add(NewPromotion(from, to, Knight))
		return
	}
	ml.Add(NewMove(from, to))
}

// generateLeaperMoves emits the offset-table moves not blocked by a friendly
// piece.
func (p *Position) generateLeaperMoves(ml *MoveList, sq Square, attacks Bitboard, us Color) {
	targets := attacks &^ p.Occupied[us]
	for targets != 0 {
		ml.Add(NewMove(sq, targets.PopLSB()))
	}
}

// generateSlidingMoves walks each ray one step at a time: every empty square
// is emitted; an occupied square is emitted only when it holds an opposing
// piece, and ends the ray either way.
func (p *Position) generateSlidingMoves(ml *MoveList, sq Square, directions []direction, us Color) {
	targets := slidingAttacks(sq, directions, p.AllOccupied) &^ p.Occupied[us]
	for targets != 0 {
		ml.Add(NewMove(sq, targets.PopLSB()))
	}
}

// generateKingMoves emits the eight adjacent squares not held by a friendly
// piece, plus castling when eligible. The king's path must be safe: origin,
// transit and destination squares.
func (p *Position) generateKingMoves(ml *MoveList, sq Square, us Color) {
	p.generateLeaperMoves(ml, sq, KingAttacks(sq), us)

	rank := 0
	if us == Black {
		rank = 7
	}
	kingFrom := NewSquare(4, rank)

	if p.CanCastleKingside(us) {
		if p.IsSquareSafe(kingFrom) && p.IsSquareSafe(kingFrom+1) && p.IsSquareSafe(kingFrom+2) {
			ml.Add(NewMove(kingFrom, NewSquare(6, rank)))
		}
	}

	if p.CanCastleQueenside(us) {
		if p.IsSquareSafe(kingFrom) && p.IsSquareSafe(kingFrom-1) && p.IsSquareSafe(kingFrom-2) {
			ml.Add(NewMove(kingFrom, NewSquare(2, rank)))
		}
	}
}
