package uttt

import (
	"math/bits"
)

// Generate all legal moves in this state into given list, ordered by big index,
// then small index. The list is empty exactly when the state is terminal.
func (s *State) GenerateMoves(ml *MoveList) {
	ml.Clear()
	if s.termination != TerminationNone {
		return
	}

	// Constrained to a single sub-board, which is always undecided
	if bi, ok := s.active.BigIndex(); ok {
		s.appendFree(ml, bi)
		return
	}

	for bi := 0; bi < 9; bi++ {
		if s.localOutcome[bi] != InProgress {
			continue
		}
		s.appendFree(ml, bi)
	}
}

func (s *State) appendFree(ml *MoveList, bi int) {
	// This is valid, because these 2 bitboards are mutually exclusive
	free := _fullBoard ^ (s.bitboards[0][bi] | s.bitboards[1][bi])
	for free != 0 {
		ml.Append(bi, bits.TrailingZeros16(free))
		free &= free - 1
	}
}

// Get all legal actions as a new slice
func (s *State) LegalActions() []Action {
	ml := NewMoveList()
	s.GenerateMoves(ml)
	actions := make([]Action, ml.Size())
	copy(actions, ml.Slice())
	return actions
}
