package game

// History is an undo stack of full state snapshots. It exclusively owns the
// snapshots pushed onto it: callers must push a Clone, never the live state.
type History struct {
	stack []*GameState
}

// Push stores a snapshot taken before a committed placement.
func (h *History) Push(snapshot *GameState) {
	h.stack = append(h.stack, snapshot)
}

// Pop removes and returns the most recent snapshot, or nil when empty.
func (h *History) Pop() *GameState {
	if len(h.stack) == 0 {
		return nil
	}
	s := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return s
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.stack)
}
