package uttt

import (
	"fmt"
	"strings"
)

const (
	StartingNotation string = "9/9/9/9/9/9/9/9/9 x -"
)

// string notation for the ultimate tic tac toe state
// Much like the FEN representation of a chessboard
// Will result in something like this:
//
//	X/X/X/X/X/X/X/X/X <side> <active>
//
// where `X` is one sub-board string (in big index order), saves the
// cells in small index order, same as FEN, but instead of chess pieces
// we have got 'x' (PlayerA) and 'o' (PlayerB), digits skip empty cells.
//
// For example, let X be:
//
//	o | x | x
//	---------
//	x | o |
//	---------
//	o |   |
//
// then X format string would be:
//
//	oxxxo1o2
//
// <side> - either 'x' or 'o'
//
// <active> - where the side to move must play on the macro board,
// it is an integer between 0 and 8, or - if it can move anywhere
//
// Examples:
//
// * 9/9/9/9/9/9/9/9/9 x -
//
// * 9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0
func (s *State) Notation() string {
	builder := strings.Builder{}

	for bi, square := range s.board {
		// In each sub-board, we will generate the small square string
		counter := 0
		for _, cell := range square {
			if cell == CellEmpty {
				counter++
				continue
			}

			// Write the counter, and current marker
			if counter > 0 {
				builder.WriteByte('0' + byte(counter))
				counter = 0
			}
			builder.WriteRune(cell.Rune())
		}

		if counter > 0 {
			builder.WriteByte('0' + byte(counter))
		}

		if bi != 8 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	builder.WriteString(s.side.String())

	builder.WriteByte(' ')
	if bi, ok := s.active.BigIndex(); ok {
		builder.WriteByte('0' + byte(bi))
	} else {
		builder.WriteByte('-')
	}

	return builder.String()
}

// Load the state from given notation string, replaces the current state
// (including the history). On error the state is left unchanged.
func (s *State) FromNotation(notation string) error {
	parsed, err := ParseNotation(notation)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// Create a state from given notation, "startpos" is the empty board with PlayerA to move.
// Sub-board outcomes and the termination are recomputed from the cells, and an active
// board pointing at a decided sub-board is relaxed to AnyBoard.
func ParseNotation(notation string) (*State, error) {
	if notation == "startpos" {
		notation = StartingNotation
	}

	fields := strings.Fields(notation)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected 3 space separated sections, got %d", ErrInvalidNotation, len(fields))
	}

	squares := strings.Split(fields[0], "/")
	if len(squares) != 9 {
		return nil, fmt.Errorf("%w: expected 9 sub-boards, got %d", ErrInvalidNotation, len(squares))
	}

	s := &State{history: newHistory()}

	for bi, square := range squares {
		smallIndex := 0
		for i, v := range square {
			if smallIndex >= 9 {
				return nil, fmt.Errorf("%w: too many squares within sub-board %d", ErrInvalidNotation, bi)
			}

			switch {
			case v == 'x' || v == 'o':
				cell := CellFromRune(v)
				s.board[bi][smallIndex] = cell
				s.bitboards[Player(cell).index()][bi] |= 1 << smallIndex
				s.ply++
				smallIndex++
			case '1' <= v && v <= '9':
				// Number, meaning skip given number of squares
				smallIndex += int(v - '0')
				if smallIndex > 9 {
					return nil, fmt.Errorf("%w: invalid skip %c in sub-board %d, at index %d", ErrInvalidNotation, v, bi, i)
				}
			default:
				return nil, fmt.Errorf("%w: unexpected token %c in sub-board %d", ErrInvalidNotation, v, bi)
			}
		}

		// Small index must be 9, before moving on to next square
		if smallIndex != 9 {
			return nil, fmt.Errorf("%w: sub-board %d has %d squares", ErrInvalidNotation, bi, smallIndex)
		}
	}

	// Read the side
	switch fields[1] {
	case "x":
		s.side = PlayerA
	case "o":
		s.side = PlayerB
	default:
		return nil, fmt.Errorf("%w: invalid side %q", ErrInvalidNotation, fields[1])
	}

	// Read the active board
	switch v := fields[2]; {
	case v == "-":
		s.active = AnyBoard()
	case len(v) == 1 && v[0] >= '0' && v[0] <= '8':
		s.active = specificBoard(int(v[0] - '0'))
	default:
		return nil, fmt.Errorf("%w: invalid active board %q, expected a digit 0-8 or -", ErrInvalidNotation, v)
	}

	s.setupOutcomes()
	return s, nil
}

// Recompute the outcome cache, the active board and the termination from the cells
func (s *State) setupOutcomes() {
	for bi := range 9 {
		s.localOutcome[bi] = checkLocalOutcome(s.bitboards[0][bi], s.bitboards[1][bi])
	}

	// Don't allow playing on a decided sub-board
	if bi, ok := s.active.BigIndex(); ok && s.localOutcome[bi] != InProgress {
		s.active = AnyBoard()
	}

	s.termination = checkTermination(&s.localOutcome)
}
