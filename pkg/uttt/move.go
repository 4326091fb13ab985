package uttt

import (
	"fmt"
	"strings"
)

// Packed move representation: big index in the high nibble, small index in the low one.
// Big index is macroRow*3+macroCol, small index is localRow*3+localCol.
type Action uint8

const (
	ActionNone Action = 255

	_moveBigIndexMask   = 0b11110000
	_moveSmallIndexMask = 0b1111
)

// Create an action from the (macroRow, macroCol, localRow, localCol) tuple
func NewAction(macroRow, macroCol, localRow, localCol int) Action {
	for _, v := range [4]int{macroRow, macroCol, localRow, localCol} {
		if v < 0 || v > 2 {
			return ActionNone
		}
	}
	return ActionFromIndex(macroRow*3+macroCol, localRow*3+localCol)
}

// Create an action, based on big and small indexes
func ActionFromIndex(bigIndex, smallIndex int) Action {
	return Action((smallIndex & _moveSmallIndexMask) | ((bigIndex << 4) & _moveBigIndexMask))
}

// Get the big index of an action
func (a Action) BigIndex() int {
	return int(a&_moveBigIndexMask) >> 4
}

// Get the small index of an action
func (a Action) SmallIndex() int {
	return int(a & _moveSmallIndexMask)
}

func (a Action) MacroRow() int { return a.BigIndex() / 3 }
func (a Action) MacroCol() int { return a.BigIndex() % 3 }
func (a Action) LocalRow() int { return a.SmallIndex() / 3 }
func (a Action) LocalCol() int { return a.SmallIndex() % 3 }

// The (macroRow, macroCol, localRow, localCol) tuple
func (a Action) Tuple() [4]int {
	return [4]int{a.MacroRow(), a.MacroCol(), a.LocalRow(), a.LocalCol()}
}

func (a Action) Valid() bool {
	return a.BigIndex() < 9 && a.SmallIndex() < 9
}

// Get string representation of the action, will contain
// A/B/C 1/2/3 as coordinates of the sub-board and a/b/c 1/2/3
// as coordinates of the cell, for example big index = 7,
// small index = 2 -> B1c3
//
//	     A   B   C
//	   0 | 1 | 2   3
//	  -----------
//	   3 | 4 | 5   2
//	  -----------
//	   6 | 7 | 8   1
func (a Action) String() string {
	if !a.Valid() {
		return "(none)"
	}

	bi, si := a.BigIndex(), a.SmallIndex()
	builder := strings.Builder{}
	builder.WriteByte('A' + byte(bi%3))
	builder.WriteByte('3' - byte(bi/3))
	builder.WriteByte('a' + byte(si%3))
	builder.WriteByte('3' - byte(si/3))
	return builder.String()
}

// Convert given notation (as produced by Action.String) back into an action
func ParseAction(str string) (Action, error) {
	if len(str) != 4 {
		return ActionNone, fmt.Errorf("%w: %q", ErrInvalidAction, str)
	}

	// Make sure the coordinates are within the range
	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if !_cmp(0, 'A') || !_cmp(2, 'a') {
		return ActionNone, fmt.Errorf("%w: %q", ErrInvalidAction, str)
	}

	return ActionFromIndex(
		int((str[0]-'A')+('3'-str[1])*3),
		int((str[2]-'a')+('3'-str[3])*3)), nil
}

type MoveList struct {
	moves [9 * 9]Action
	size  uint8
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Action {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

func (ml *MoveList) Get(i int) Action {
	return ml.moves[i]
}

// Appends a new move to the list of moves
func (ml *MoveList) Append(bigIndex, smallIndex int) {
	ml.moves[ml.size] = Action((smallIndex & _moveSmallIndexMask) | ((bigIndex << 4) & _moveBigIndexMask))
	ml.size++
}

// Put given move at the front, keeping the relative order of the others.
// Returns false if the move is not in the list.
func (ml *MoveList) MoveToFront(a Action) bool {
	for i := 0; i < int(ml.size); i++ {
		if ml.moves[i] == a {
			copy(ml.moves[1:i+1], ml.moves[0:i])
			ml.moves[0] = a
			return true
		}
	}
	return false
}

func (ml *MoveList) Contains(a Action) bool {
	for _, m := range ml.Slice() {
		if m == a {
			return true
		}
	}
	return false
}

// Convert movelist into a string, uses move notation with space separation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
