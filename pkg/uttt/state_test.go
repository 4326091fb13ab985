package uttt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Play random legal games from the empty board, calling visit on every transition
func randomPlayouts(t *testing.T, games int, visit func(prev, next *State, a Action)) {
	t.Helper()
	r := rand.New(rand.NewSource(42))

	for g := 0; g < games; g++ {
		first := PlayerA
		if g%2 == 1 {
			first = PlayerB
		}

		s := NewState(first)
		for moves := 0; !s.IsTerminal(); moves++ {
			require.Less(t, moves, 81, "game did not terminate within 81 moves")

			actions := s.LegalActions()
			require.NotEmpty(t, actions, "non-terminal state without legal actions:\n%s", s)

			a := actions[r.Intn(len(actions))]
			next, err := s.Transition(a)
			require.NoError(t, err)

			visit(s, next, a)
			s = next
		}
	}
}

func TestNewState(t *testing.T) {
	s := NewState(PlayerB)

	assert.Equal(t, PlayerB, s.SideToMove())
	assert.True(t, s.ActiveBoard().IsAny())
	assert.False(t, s.IsTerminal())
	assert.Len(t, s.LegalActions(), 81)
	assert.Equal(t, 0, s.Ply())

	for r := range 3 {
		for c := range 3 {
			assert.Equal(t, InProgress, s.LocalOutcome(r, c))
		}
	}

	assert.Panics(t, func() { NewState(Player(0)) })
}

func TestCenterFirstMove(t *testing.T) {
	// Given: an empty board
	s := NewState(PlayerA)

	// When: PlayerA plays the center cell of the center sub-board
	next, err := s.Transition(NewAction(1, 1, 1, 1))
	require.NoError(t, err)

	// Then: the opponent is sent to the center sub-board, which is still in progress
	row, col, ok := next.ActiveBoard().Coords()
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 1}, [2]int{row, col})
	assert.Equal(t, InProgress, next.LocalOutcome(1, 1))
	assert.Equal(t, CellA, next.Cell(NewAction(1, 1, 1, 1)))
	assert.Equal(t, PlayerB, next.SideToMove())

	// Then: the source state is untouched
	assert.Equal(t, CellEmpty, s.Cell(NewAction(1, 1, 1, 1)))
	assert.Equal(t, PlayerA, s.SideToMove())
	assert.True(t, s.ActiveBoard().IsAny())
}

func TestLocalDiagonalWin(t *testing.T) {
	// Given: sub-board (0,0) with x on (0,0) and (1,1)
	s, err := ParseNotation("x3x4/9/9/9/o8/9/9/9/o8 x 0")
	require.NoError(t, err)
	require.Equal(t, InProgress, s.LocalOutcome(0, 0))

	// When: PlayerA plays the remaining diagonal cell
	next, err := s.Transition(NewAction(0, 0, 2, 2))
	require.NoError(t, err)

	// Then: the sub-board is won by A and the opponent is sent to (2,2)
	assert.Equal(t, WonByA, next.LocalOutcome(0, 0))
	assert.Equal(t, SpecificBoard(2, 2), next.ActiveBoard())
	assert.False(t, next.IsTerminal())
}

func TestMacroDiagonalWonByB(t *testing.T) {
	s, err := ParseNotation("ooo6/9/9/9/ooo6/9/9/9/ooo6 x -")
	require.NoError(t, err)

	assert.True(t, s.IsTerminal())
	assert.Equal(t, TerminationBWon, s.Termination())
	assert.Empty(t, s.LegalActions())

	utility, err := s.Utility()
	require.NoError(t, err)
	assert.Equal(t, 0.0, utility)

	utility, err = s.TerminalUtility(PlayerB)
	require.NoError(t, err)
	assert.Equal(t, 1.0, utility)

	winner, ok := s.Winner()
	assert.True(t, ok)
	assert.Equal(t, PlayerB, winner)
}

func TestMacroLineBeatsFullBoard(t *testing.T) {
	// Every sub-board is decided, and A also owns the top row
	s, err := ParseNotation("xxx6/xxx6/xxx6/ooo6/ooo6/xxx6/oxoxoxxox/ooo6/xxoooxxxo o -")
	require.NoError(t, err)

	assert.Equal(t, Drawn, s.LocalOutcome(2, 0))
	assert.Equal(t, TerminationAWon, s.Termination())

	utility, err := s.Utility()
	require.NoError(t, err)
	assert.Equal(t, 1.0, utility)
}

func TestMacroDraw(t *testing.T) {
	// No macro line, all sub-boards decided, drawn ones never count for a line
	s, err := ParseNotation("xxx6/ooo6/xxx6/oxoxoxxox/xxx6/ooo6/ooo6/xxx6/oxoxoxxox x -")
	require.NoError(t, err)

	assert.Equal(t, TerminationDraw, s.Termination())
	assert.Empty(t, s.LegalActions())

	utility, err := s.Utility()
	require.NoError(t, err)
	assert.Equal(t, 0.5, utility)
}

func TestTerminalUtilityNotTerminal(t *testing.T) {
	s := NewState(PlayerA)

	_, err := s.TerminalUtility(PlayerA)
	require.ErrorIs(t, err, ErrNotTerminal)
}

func TestTransitionIllegal(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		action   Action
	}{
		{"wrong sub-board", "2x6/9/9/9/9/9/9/9/9 o 2", NewAction(0, 0, 1, 1)},
		{"occupied cell", "2x6/9/9/9/2x6/9/9/9/9 o 4", NewAction(1, 1, 0, 2)},
		{"decided sub-board", "xxx6/9/9/9/9/9/9/9/9 o -", NewAction(0, 0, 1, 1)},
		{"terminal state", "ooo6/9/9/9/ooo6/9/9/9/ooo6 x -", NewAction(1, 0, 0, 0)},
		{"out of range", StartingNotation, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a state where the action is illegal
			state, err := ParseNotation(tt.notation)
			require.NoError(t, err)
			before := state.Notation()

			// When: the action is requested
			assert.False(t, state.IsLegal(tt.action))
			next, err := state.Transition(tt.action)

			// Then: ErrIllegalMove is returned and the state is unchanged
			require.ErrorIs(t, err, ErrIllegalMove)
			assert.Nil(t, next)
			assert.Equal(t, before, state.Notation())

			require.ErrorIs(t, state.MakeLegalMove(tt.action), ErrIllegalMove)
			assert.Equal(t, before, state.Notation())
		})
	}
}

func TestDecidedTargetRelaxesConstraint(t *testing.T) {
	// Sub-board 8 is won by A, the next move sends o there
	s, err := ParseNotation("1x7/9/9/9/9/9/9/9/xxx6 x 0")
	require.NoError(t, err)

	next, err := s.Transition(ActionFromIndex(0, 8))
	require.NoError(t, err)

	assert.True(t, next.ActiveBoard().IsAny())
	for _, a := range next.LegalActions() {
		assert.NotEqual(t, 8, a.BigIndex(), "decided sub-board must not be playable")
	}
}

func TestFirstMovesActiveBoard(t *testing.T) {
	s := NewState(PlayerA)

	for _, a := range s.LegalActions() {
		next, err := s.Transition(a)
		require.NoError(t, err)

		row, col, ok := next.ActiveBoard().Coords()
		require.True(t, ok, "first move can't decide a sub-board")
		assert.Equal(t, a.LocalRow(), row, "action %s", a)
		assert.Equal(t, a.LocalCol(), col, "action %s", a)
	}
}

func TestRandomPlayoutProperties(t *testing.T) {
	randomPlayouts(t, 500, func(prev, next *State, a Action) {
		// No cell is playable twice
		require.False(t, next.IsLegal(a))

		// Side to move strictly alternates
		require.Equal(t, prev.SideToMove().Opponent(), next.SideToMove())
		require.Equal(t, prev.Ply()+1, next.Ply())

		// Legal actions empty iff terminal
		require.Equal(t, next.IsTerminal(), len(next.LegalActions()) == 0)

		// Sub-board outcomes are monotonic
		for bi := range 9 {
			if prev.Outcome(bi) != InProgress {
				require.Equal(t, prev.Outcome(bi), next.Outcome(bi))
			}
		}

		// The active board is the cell just played, unless that sub-board is decided
		if next.Outcome(a.SmallIndex()) == InProgress {
			require.Equal(t, SpecificBoard(a.LocalRow(), a.LocalCol()), next.ActiveBoard())
		} else {
			require.True(t, next.ActiveBoard().IsAny())
		}

		// Terminal utility is one of the three values
		if next.IsTerminal() {
			u, err := next.Utility()
			require.NoError(t, err)
			require.Contains(t, []float64{0.0, 0.5, 1.0}, u)
		}
	})
}

func TestMakeUndoMove(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for g := 0; g < 200; g++ {
		s := NewState(PlayerA)
		snapshots := []*State{s.Clone()}

		for !s.IsTerminal() {
			actions := s.LegalActions()
			s.MakeMove(actions[r.Intn(len(actions))])
			snapshots = append(snapshots, s.Clone())
		}

		for i := len(snapshots) - 2; i >= 0; i-- {
			s.UndoMove()
			require.True(t, snapshots[i].Equal(s), "undo mismatch at ply %d", i)
			require.Equal(t, snapshots[i].Notation(), s.Notation())
		}

		// Undo on an empty history is a no-op
		s.UndoMove()
		assert.True(t, snapshots[0].Equal(s))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState(PlayerA)
	s.MakeMove(NewAction(0, 0, 1, 1))

	c := s.Clone()
	c.MakeMove(NewAction(1, 1, 0, 0))
	c.UndoMove()
	c.UndoMove()

	assert.Equal(t, NewAction(0, 0, 1, 1), s.LastMove())
	assert.Equal(t, CellA, s.Cell(NewAction(0, 0, 1, 1)))
	assert.Equal(t, CellEmpty, c.Cell(NewAction(0, 0, 1, 1)))
}

func TestBoardLayout(t *testing.T) {
	s := NewState(PlayerA)
	a := NewAction(2, 1, 0, 2)
	require.NoError(t, s.MakeLegalMove(a))

	board := s.Board()
	assert.Equal(t, CellA, board[2][1][0][2])
	assert.Equal(t, CellA, board.At(a))
	assert.Equal(t, uint16(1<<2), s.Bitboard(PlayerA, 7))
}

func BenchmarkGenerateMoves(b *testing.B) {
	s, err := ParseNotation("9/9/9/7x1/4xo3/8x/9/4o4/o8 x -")
	if err != nil {
		b.Fatal(err)
	}
	ml := NewMoveList()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.GenerateMoves(ml)
	}
}
