package game

import (
	"fmt"
	"log/slog"

	"github.com/okneroz/chesscore/internal/board"
)

// Result of a finished game, from white's perspective.
type Result string

const (
	ResultWhiteWins Result = "1-0"
	ResultBlackWins Result = "0-1"
	ResultDraw      Result = "1/2-1/2"
	ResultOngoing   Result = "*"
)

// Game owns one Position and its history. Moves flow one way: the caller
// picks a candidate from Candidates, Play applies it, and the resulting
// fingerprint is recorded. A Game is driven by a single caller; see the
// board package for the ownership rules.
type Game struct {
	hasher  *board.Hasher
	pos     *board.Position
	history *History
	played  []board.Move
}

// New creates a game at the standard starting position.
func New() *Game {
	h := board.NewHasher()
	return &Game{
		hasher:  h,
		pos:     board.NewPosition(h),
		history: NewHistory(),
	}
}

// Position exposes the current position for querying and rendering.
// Mutating it directly bypasses history tracking.
func (g *Game) Position() *board.Position {
	return g.pos
}

// Candidates returns the pseudo-legal moves for the side to move,
// recomputed fresh on every call.
func (g *Game) Candidates() *board.MoveList {
	return g.pos.GenerateMoves()
}

// Play validates the move against the candidate list, applies it, and
// records the new fingerprint and half-move clock. A move outside the
// candidate list is a policy rejection, reported as an error and otherwise
// ignored.
func (g *Game) Play(m board.Move) error {
	if !g.Candidates().Contains(m) {
		slog.Debug("move rejected", "move", m.String(), "side", g.pos.SideToMove.String())
		return fmt.Errorf("illegal move %s", m)
	}

	g.pos.ApplyMove(m)
	g.played = append(g.played, m)
	g.history.Push(GameState{
		Fingerprint:   g.pos.Hash,
		HalfMoveClock: g.pos.HalfMoveClock,
	})

	return nil
}

// TakeBack undoes the most recent move. The core has no unmake, so the
// recorded moves are replayed from the start position.
func (g *Game) TakeBack() error {
	if len(g.played) == 0 {
		return fmt.Errorf("no moves to take back")
	}

	g.history.Pop()
	g.played = g.played[:len(g.played)-1]

	g.pos = board.NewPosition(g.hasher)
	for _, m := range g.played {
		g.pos.ApplyMove(m)
	}

	return nil
}

// Reset starts a new game, clearing position, history, and move record.
func (g *Game) Reset() {
	g.pos = board.NewPosition(g.hasher)
	g.history.Clear()
	g.played = nil
}

// PlayedMoves returns the moves played so far, oldest first.
func (g *Game) PlayedMoves() []board.Move {
	out := make([]board.Move, len(g.played))
	copy(out, g.played)
	return out
}

// MoveStrings returns the played moves in coordinate notation.
func (g *Game) MoveStrings() []string {
	out := make([]string, len(g.played))
	for i, m := range g.played {
		out[i] = m.String()
	}
	return out
}

// History exposes the fingerprint history.
func (g *Game) History() *History {
	return g.history
}

// DrawClaimable reports whether the tracked facts permit a draw claim:
// threefold repetition or the fifty-move rule. The game does not adjudicate;
// it only exposes the facts.
func (g *Game) DrawClaimable() bool {
	return g.history.IsThreefoldRepetition() || g.history.IsFiftyMoveRule()
}
