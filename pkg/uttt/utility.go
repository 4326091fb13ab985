package uttt

import "fmt"

// Get the winner of the game, ok is false if it's not finished or drawn
func (s *State) Winner() (Player, bool) {
	switch s.termination {
	case TerminationAWon:
		return PlayerA, true
	case TerminationBWon:
		return PlayerB, true
	}
	return 0, false
}

// Final score of the game from given player's perspective: 1.0 if that player
// has a macro line, 0.0 if the opponent does and 0.5 for a draw.
// Fails with ErrNotTerminal if the game is still going.
func (s *State) TerminalUtility(perspective Player) (float64, error) {
	if s.termination == TerminationNone {
		return 0, fmt.Errorf("%w: %s to move on %s", ErrNotTerminal, s.side, s.active)
	}

	winner, ok := s.Winner()
	switch {
	case !ok:
		return 0.5, nil
	case winner == perspective:
		return 1.0, nil
	default:
		return 0.0, nil
	}
}

// Terminal utility from PlayerA's perspective
func (s *State) Utility() (float64, error) {
	return s.TerminalUtility(PlayerA)
}
