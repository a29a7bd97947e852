package board

// Hasher owns the Zobrist key tables used to fingerprint positions. Keys come
// from a fixed-seed PRNG so fingerprints are reproducible across runs. A
// Hasher is built once and shared by reference; there is no package-global
// key state.
type Hasher struct {
	piece      [2][6][64]uint64 // [Color][PieceType][Square]
	sideToMove uint64           // XOR when black to move
	castling   [16]uint64       // one per rights combination
	enPassant  [8]uint64        // one per file
}

// Fixed seed for key generation. Changing it changes every fingerprint.
const zobristSeed = 0x98F107A2BEEF1234

// prng is an xorshift64* generator, good enough for key material and
// dependency-free.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewHasher creates a Hasher with deterministic key tables.
func NewHasher() *Hasher {
	h := &Hasher{}
	rng := newPRNG(zobristSeed)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				h.piece[c][pt][sq] = rng.next()
			}
		}
	}

	h.sideToMove = rng.next()

	for i := 0; i < 16; i++ {
		h.castling[i] = rng.next()
	}

	for file := 0; file < 8; file++ {
		h.enPassant[file] = rng.next()
	}

	return h
}

// Compute folds the position into a 64-bit fingerprint: one key per occupied
// (color, kind, square) triple, the side key iff black is to move, the key
// for the current castling-rights combination, and the file key of the
// en-passant target if one is set. Move counters and history bookkeeping do
// not contribute.
func (h *Hasher) Compute(p *Position) uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= h.piece[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= h.sideToMove
	}

	hash ^= h.castling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		hash ^= h.enPassant[p.EnPassant.File()]
	}

	return hash
}
