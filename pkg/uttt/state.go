package uttt

import (
	"fmt"
	"strings"
)

// Main game state struct
type State struct {
	board        [9][9]Cell      // 2d array of the cells [bigIndex][smallIndex]
	bitboards    [2][9]uint16    // [player index][bigIndex], mirrors 'board'
	localOutcome [9]LocalOutcome // cache of each sub-board's outcome, updated in MakeMove
	active       ActiveBoard     // where the side to move must play
	side         Player          // side to move
	termination  Termination     // cached, changes only when a sub-board gets decided
	ply          int             // number of cells filled
	history      history         // for MakeMove, UndoMove
}

// Create the initial, empty state with given player to move first
func NewState(first Player) *State {
	if !first.Valid() {
		panic(fmt.Sprintf("uttt: invalid first player %d", int8(first)))
	}

	return &State{
		side:    first,
		active:  AnyBoard(),
		history: newHistory(),
	}
}

// Make a deep copy of the state (has no shared memory with this object)
func (s *State) Clone() *State {
	c := *s
	c.history = s.history.clone()
	return &c
}

// Whether both states describe the same position, history is ignored
func (s *State) Equal(other *State) bool {
	return s.board == other.board &&
		s.localOutcome == other.localOutcome &&
		s.active == other.active &&
		s.side == other.side &&
		s.termination == other.termination
}

// Getters
func (s *State) SideToMove() Player {
	return s.side
}

func (s *State) ActiveBoard() ActiveBoard {
	return s.active
}

func (s *State) Ply() int {
	return s.ply
}

func (s *State) Termination() Termination {
	return s.termination
}

func (s *State) IsTerminal() bool {
	return s.termination != TerminationNone
}

// Last move played on this state, ActionNone if there is no (undoable) history
func (s *State) LastMove() Action {
	return s.history.last()
}

func (s *State) Cell(a Action) Cell {
	if !a.Valid() {
		return CellEmpty
	}
	return s.board[a.BigIndex()][a.SmallIndex()]
}

// Copy of the cells as a nested grid
func (s *State) Board() Board {
	var b Board
	for bi := range 9 {
		for si := range 9 {
			b[bi/3][bi%3][si/3][si%3] = s.board[bi][si]
		}
	}
	return b
}

func (s *State) LocalOutcome(macroRow, macroCol int) LocalOutcome {
	return s.localOutcome[macroRow*3+macroCol]
}

// Outcome of the sub-board at given big index
func (s *State) Outcome(bigIndex int) LocalOutcome {
	return s.localOutcome[bigIndex]
}

func (s *State) LocalOutcomes() [3][3]LocalOutcome {
	var o [3][3]LocalOutcome
	for bi, v := range s.localOutcome {
		o[bi/3][bi%3] = v
	}
	return o
}

// Bitboard of given player's cells on the sub-board at big index, bit i is small index i
func (s *State) Bitboard(p Player, bigIndex int) uint16 {
	return s.bitboards[p.index()][bigIndex]
}

// Check if given action is legal
func (s *State) IsLegal(a Action) bool {
	if !a.Valid() || s.termination != TerminationNone {
		return false
	}

	bi, si := a.BigIndex(), a.SmallIndex()
	return s.active.allows(bi) &&
		s.localOutcome[bi] == InProgress &&
		s.board[bi][si] == CellEmpty
}

// Return the successor state after playing given action, the receiver is not modified
func (s *State) Transition(a Action) (*State, error) {
	if !s.IsLegal(a) {
		return nil, s.illegalMoveError(a)
	}

	next := s.Clone()
	next.MakeMove(a)
	return next, nil
}

// Verifies legality of given action, then if it's valid, makes it on this state
func (s *State) MakeLegalMove(a Action) error {
	if !s.IsLegal(a) {
		return s.illegalMoveError(a)
	}
	s.MakeMove(a)
	return nil
}

func (s *State) illegalMoveError(a Action) error {
	ml := NewMoveList()
	s.GenerateMoves(ml)
	return fmt.Errorf("%w: %s, possible moves=[%s]", ErrIllegalMove, a.String(), ml.String())
}

// Make an action on the state in place and switch the sides, legality is not verified.
// This is the scratch API for search, pair it with UndoMove. Callers outside of
// a search should use Transition.
func (s *State) MakeMove(a Action) {
	if s.termination != TerminationNone || !a.Valid() {
		return
	}

	bi, si := a.BigIndex(), a.SmallIndex()
	s.history.push(undoEntry{
		move:            a,
		prevOutcome:     s.localOutcome[bi],
		prevActive:      s.active,
		prevTermination: s.termination,
	})

	// Put the marker on the board
	s.board[bi][si] = s.side.Cell()
	s.bitboards[s.side.index()][bi] |= 1 << si

	// Update the sub-board's outcome, the whole game can only end if it changed
	s.localOutcome[bi] = checkLocalOutcome(s.bitboards[0][bi], s.bitboards[1][bi])
	if s.localOutcome[bi] != InProgress {
		s.termination = checkTermination(&s.localOutcome)
	}

	// If opponent's move would be on a decided sub-board,
	// allow it to play on every undecided one
	if s.localOutcome[si] == InProgress {
		s.active = specificBoard(si)
	} else {
		s.active = AnyBoard()
	}

	s.side = s.side.Opponent()
	s.ply++
}

// Undo last move, from the history
func (s *State) UndoMove() {
	last, ok := s.history.pop()
	if !ok {
		return
	}

	bi, si := last.move.BigIndex(), last.move.SmallIndex()
	s.side = s.side.Opponent()
	s.ply--

	// Remove that marker from its square
	s.board[bi][si] = CellEmpty
	s.bitboards[s.side.index()][bi] &^= 1 << si

	s.localOutcome[bi] = last.prevOutcome
	s.active = last.prevActive
	s.termination = last.prevTermination
}

// Plain text board, rows from top to bottom
func (s *State) String() string {
	builder := strings.Builder{}
	for row := range 9 {
		if row > 0 && row%3 == 0 {
			builder.WriteString("------+-------+------\n")
		}
		for col := range 9 {
			if col > 0 && col%3 == 0 {
				builder.WriteString("| ")
			}
			bi := (row/3)*3 + col/3
			si := (row%3)*3 + col%3
			builder.WriteRune(s.board[bi][si].Rune())
			if col != 8 {
				builder.WriteByte(' ')
			}
		}
		builder.WriteByte('\n')
	}
	fmt.Fprintf(&builder, "side: %s, active: %s, termination: %s\n", s.side, s.active, s.termination)
	return builder.String()
}
