package uttt

// What MakeMove overwrote, so UndoMove can restore it
type undoEntry struct {
	move            Action
	prevOutcome     LocalOutcome // outcome of the sub-board the move was made on
	prevActive      ActiveBoard  // mostly it will be specific, but if the sub-board decided, it's AnyBoard
	prevTermination Termination
}

// Stores the history of the state (for MakeMove, UndoMove)
type history struct {
	list []undoEntry
}

func newHistory() history {
	return history{list: make([]undoEntry, 0, 16)}
}

func (h *history) push(e undoEntry) {
	h.list = append(h.list, e)
}

// Remove and return the last entry, ok is false if the history is empty
func (h *history) pop() (undoEntry, bool) {
	n := len(h.list)
	if n == 0 {
		return undoEntry{}, false
	}
	e := h.list[n-1]
	h.list = h.list[:n-1]
	return e, true
}

func (h *history) size() int {
	return len(h.list)
}

func (h *history) clone() history {
	c := history{list: make([]undoEntry, len(h.list), max(cap(h.list), 16))}
	copy(c.list, h.list)
	return c
}

// Last move played, ActionNone if there is no history
func (h *history) last() Action {
	if len(h.list) == 0 {
		return ActionNone
	}
	return h.list[len(h.list)-1].move
}
