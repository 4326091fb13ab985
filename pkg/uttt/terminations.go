package uttt

// Horizontal, vertical and diagonal patterns as bitboards, bit i is small index i
var WinningPatterns = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

var _patterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

const _fullBoard uint16 = 0b111111111

// Check if given slice is filled with items other than 'none'
func _isFilled[T comparable](arr []T, none T) bool {
	isFilled := true
	for i := 0; isFilled && i < len(arr); i++ {
		isFilled = arr[i] != none
	}
	return isFilled
}

// Compute a sub-board's outcome from both players' bitboards
func checkLocalOutcome(abb, bbb uint16) LocalOutcome {
	// See if there is any winning pattern
	for _, pattern := range WinningPatterns {
		if abb&pattern == pattern {
			return WonByA
		}
		if bbb&pattern == pattern {
			return WonByB
		}
	}

	// If not, check if that's a draw (this sub-board is fully filled)
	if (abb | bbb) == _fullBoard {
		return Drawn
	}
	return InProgress
}

// Compute the game's termination from the local outcome cache.
// A macro line takes precedence over the full-board draw.
func checkTermination(outcomes *[9]LocalOutcome) Termination {
	for i := 0; i < 8; i++ {
		v := outcomes[_patterns[i][0]]
		if v != WonByA && v != WonByB {
			continue
		}
		if v == outcomes[_patterns[i][1]] && v == outcomes[_patterns[i][2]] {
			if v == WonByA {
				return TerminationAWon
			}
			return TerminationBWon
		}
	}

	if _isFilled(outcomes[:], InProgress) {
		return TerminationDraw
	}
	return TerminationNone
}
