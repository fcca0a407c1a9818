package agent

import (
	"sync"
	"time"

	"maestro/model"
)

// DefaultMaxTurns is how many conversation turns are kept as model context.
const DefaultMaxTurns = 10

// History is the bounded, ordered conversation context shared with the
// provider on every command.
//
// It is append-only except for pruning: once the window is full, the
// oldest turns are dropped first, never the most recent. Appends are
// atomic, so overlapping commands cannot interleave half-written turns.
// One History belongs to exactly one Agent; it is provider-agnostic and
// survives provider switches untouched.
type History struct {
	mu       sync.Mutex
	turns    []model.Message
	maxTurns int
}

// NewHistory creates a history bounded to maxTurns; values below 1 fall
// back to DefaultMaxTurns.
func NewHistory(maxTurns int) *History {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}
	return &History{maxTurns: maxTurns}
}

// Append adds a turn, stamping it if unstamped, and prunes from the front
// so the window invariant holds on every return.
func (h *History) Append(turn model.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}

	h.turns = append(h.turns, turn)
	if excess := len(h.turns) - h.maxTurns; excess > 0 {
		h.turns = append([]model.Message(nil), h.turns[excess:]...)
	}
}

// Turns returns a snapshot of the history, oldest first.
func (h *History) Turns() []model.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.Message, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len reports the current number of turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear resets the history to empty. This is the only way to fully forget
// context.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

// Replace swaps the entire history, keeping only the newest turns if the
// input exceeds the window. Used when restoring a persisted session.
func (h *History) Replace(turns []model.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if excess := len(turns) - h.maxTurns; excess > 0 {
		turns = turns[excess:]
	}
	h.turns = append([]model.Message(nil), turns...)
}
