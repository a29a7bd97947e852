// Package game drives a chess game over the board core: candidate-list
// validation, move application, fingerprint history, and draw queries.
package game

import "fmt"

// maxGameStates bounds the history. Games longer than this are outside the
// modeled domain; exceeding the bound is a fatal contract violation.
const maxGameStates = 1024

// GameState is one history entry: the position fingerprint after a move and
// the half-move clock at that point.
type GameState struct {
	Fingerprint   uint64
	HalfMoveClock int
}

// History is a bounded sequence of game states plus a fingerprint occurrence
// multiset, maintained in lock-step, answering repetition and fifty-move
// queries.
type History struct {
	list        [maxGameStates]GameState
	count       int
	repetitions map[uint64]int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		repetitions: make(map[uint64]int),
	}
}

// Push appends a state and counts its fingerprint occurrence.
func (h *History) Push(g GameState) {
	if h.count >= maxGameStates {
		panic(fmt.Sprintf("game: history capacity %d exceeded", maxGameStates))
	}
	h.list[h.count] = g
	h.count++
	h.repetitions[g.Fingerprint]++
}

// Pop removes and returns the most recent state, releasing its fingerprint
// occurrence. Returns false when the history is empty.
func (h *History) Pop() (GameState, bool) {
	if h.count == 0 {
		return GameState{}, false
	}
	h.count--
	g := h.list[h.count]

	h.repetitions[g.Fingerprint]--
	if h.repetitions[g.Fingerprint] == 0 {
		delete(h.repetitions, g.Fingerprint)
	}

	return g, true
}

// Get returns the state at index i (0 = oldest).
func (h *History) Get(i int) GameState {
	return h.list[i]
}

// Len returns the number of recorded states.
func (h *History) Len() int {
	return h.count
}

// Clear resets the history to empty.
func (h *History) Clear() {
	h.count = 0
	clear(h.repetitions)
}

// IsThreefoldRepetition returns true if any tracked fingerprint has occurred
// three or more times.
func (h *History) IsThreefoldRepetition() bool {
	for _, n := range h.repetitions {
		if n >= 3 {
			return true
		}
	}
	return false
}

// IsFiftyMoveRule returns true if the most recent state's half-move clock
// has reached 100 plies.
func (h *History) IsFiftyMoveRule() bool {
	if h.count == 0 {
		return false
	}
	return h.list[h.count-1].HalfMoveClock >= 100
}
