package uttt

import "fmt"

// The sub-board the side to move is constrained to, either a specific one
// or any undecided sub-board. The zero value is AnyBoard().
type ActiveBoard struct {
	index    uint8
	specific bool
}

func AnyBoard() ActiveBoard {
	return ActiveBoard{}
}

func SpecificBoard(macroRow, macroCol int) ActiveBoard {
	return specificBoard(macroRow*3 + macroCol)
}

func specificBoard(bigIndex int) ActiveBoard {
	return ActiveBoard{index: uint8(bigIndex), specific: true}
}

func (a ActiveBoard) IsAny() bool {
	return !a.specific
}

// Get the macro coordinates of the active board, ok is false for AnyBoard
func (a ActiveBoard) Coords() (macroRow, macroCol int, ok bool) {
	if !a.specific {
		return 0, 0, false
	}
	return int(a.index) / 3, int(a.index) % 3, true
}

// Big index of the active board, ok is false for AnyBoard
func (a ActiveBoard) BigIndex() (int, bool) {
	return int(a.index), a.specific
}

// Whether a move on given big index satisfies this constraint
func (a ActiveBoard) allows(bigIndex int) bool {
	return !a.specific || int(a.index) == bigIndex
}

func (a ActiveBoard) String() string {
	if !a.specific {
		return "any"
	}
	return fmt.Sprintf("(%d,%d)", a.index/3, a.index%3)
}
