// Package uttt implements the Ultimate Tic-Tac-Toe rules: state, legal move generation,
// transitions and terminal detection.
package uttt

import "fmt"

// Type defines for the state
type Cell int8
type Player int8
type LocalOutcome uint8
type Termination uint8

// Raw nested grid of cells, indexed [macroRow][macroCol][localRow][localCol]
type Board [3][3][3][3]Cell

// Get the cell at given action's coordinates
func (b *Board) At(a Action) Cell {
	return b[a.MacroRow()][a.MacroCol()][a.LocalRow()][a.LocalCol()]
}

// Enum for the cell values
const (
	CellEmpty Cell = iota
	CellA
	CellB
)

// Enum for the players, the values match their cell markers
const (
	PlayerA Player = Player(CellA)
	PlayerB Player = Player(CellB)
)

// Enum for the sub-board outcomes
const (
	InProgress LocalOutcome = iota
	WonByA
	WonByB
	Drawn
)

// Enum for the whole game's outcome
const (
	TerminationNone Termination = iota
	TerminationAWon
	TerminationBWon
	TerminationDraw
)

func (c Cell) Rune() rune {
	switch c {
	case CellA:
		return 'x'
	case CellB:
		return 'o'
	default:
		return '.'
	}
}

// Create cell from a rune
func CellFromRune(r rune) Cell {
	switch r {
	case 'x':
		return CellA
	case 'o':
		return CellB
	default:
		return CellEmpty
	}
}

func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

func (p Player) Opponent() Player {
	return PlayerA + PlayerB - p
}

// Marker this player puts on the board
func (p Player) Cell() Cell {
	return Cell(p)
}

// Index into per-player arrays (bitboards)
func (p Player) index() int {
	return int(p) - 1
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "x"
	case PlayerB:
		return "o"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

func wonBy(p Player) LocalOutcome {
	if p == PlayerA {
		return WonByA
	}
	return WonByB
}

// Whether this sub-board can no longer be played on
func (o LocalOutcome) Decided() bool {
	return o != InProgress
}

// Get the winner of this sub-board, ok is false if it's in progress or drawn
func (o LocalOutcome) Winner() (Player, bool) {
	switch o {
	case WonByA:
		return PlayerA, true
	case WonByB:
		return PlayerB, true
	}
	return 0, false
}

func (o LocalOutcome) String() string {
	switch o {
	case InProgress:
		return "InProgress"
	case WonByA:
		return "WonByA"
	case WonByB:
		return "WonByB"
	case Drawn:
		return "Drawn"
	default:
		return fmt.Sprintf("LocalOutcome(%d)", uint8(o))
	}
}

func (t Termination) String() string {
	switch t {
	case TerminationNone:
		return "None"
	case TerminationAWon:
		return "AWon"
	case TerminationBWon:
		return "BWon"
	case TerminationDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Termination(%d)", uint8(t))
	}
}
