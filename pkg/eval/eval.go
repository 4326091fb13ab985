// Package eval provides static evaluation of non-terminal Ultimate Tic-Tac-Toe states,
// used by the search when it's cut off before reaching a terminal state.
package eval

import (
	"fmt"
	"math/bits"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Bound of any heuristic score, terminal scores in the search are always above it
const MaxScore = 10000

type Evaluator interface {
	// Score of the state from the side to move's perspective, in [-MaxScore, MaxScore].
	// Never called on terminal states.
	Evaluate(s *uttt.State) int
}

// Squares of a 3x3 grid by the number of lines going through them
const (
	centerMask uint16 = 0b000010000
	cornerMask uint16 = 0b101000101
	edgeMask   uint16 = 0b010101010
)

// Tunable weights of the heuristic, all of them must be non-negative
type Weights struct {
	BoardCenter int `yaml:"board-center" env:"UTTT_EVAL_BOARD_CENTER" env-default:"4"`
	BoardCorner int `yaml:"board-corner" env:"UTTT_EVAL_BOARD_CORNER" env-default:"3"`
	BoardEdge   int `yaml:"board-edge" env:"UTTT_EVAL_BOARD_EDGE" env-default:"2"`
	CellCenter  int `yaml:"cell-center" env:"UTTT_EVAL_CELL_CENTER" env-default:"3"`
	CellCorner  int `yaml:"cell-corner" env:"UTTT_EVAL_CELL_CORNER" env-default:"2"`
	CellEdge    int `yaml:"cell-edge" env:"UTTT_EVAL_CELL_EDGE" env-default:"1"`
	LocalWin    int `yaml:"local-win" env:"UTTT_EVAL_LOCAL_WIN" env-default:"25"`
	LocalThreat int `yaml:"local-threat" env:"UTTT_EVAL_LOCAL_THREAT" env-default:"6"`
	MacroThreat int `yaml:"macro-threat" env:"UTTT_EVAL_MACRO_THREAT" env-default:"120"`
	FreeMove    int `yaml:"free-move" env:"UTTT_EVAL_FREE_MOVE" env-default:"15"`

	// Per local threat inside the sub-board the side to move is sent to
	ActiveThreat int `yaml:"active-threat" env:"UTTT_EVAL_ACTIVE_THREAT" env-default:"20"`
}

func DefaultWeights() Weights {
	return Weights{
		BoardCenter: 4,
		BoardCorner: 3,
		BoardEdge:   2,
		CellCenter:  3,
		CellCorner:  2,
		CellEdge:    1,
		LocalWin:    25,
		LocalThreat: 6,
		MacroThreat: 120,
		FreeMove:    15,

		ActiveThreat: 20,
	}
}

func (w Weights) Validate() error {
	named := []struct {
		name  string
		value int
	}{
		{"board-center", w.BoardCenter}, {"board-corner", w.BoardCorner}, {"board-edge", w.BoardEdge},
		{"cell-center", w.CellCenter}, {"cell-corner", w.CellCorner}, {"cell-edge", w.CellEdge},
		{"local-win", w.LocalWin}, {"local-threat", w.LocalThreat},
		{"macro-threat", w.MacroThreat}, {"free-move", w.FreeMove},
		{"active-threat", w.ActiveThreat},
	}
	for _, n := range named {
		if n.value < 0 {
			return fmt.Errorf("eval: weight %s must be non-negative, got %d", n.name, n.value)
		}
	}
	return nil
}

// Weight of each square of a 3x3 grid, by big/small index
func squareWeights(center, corner, edge int) [9]int {
	var w [9]int
	for i := range 9 {
		switch bit := uint16(1) << i; {
		case bit&centerMask != 0:
			w[i] = center
		case bit&cornerMask != 0:
			w[i] = corner
		default:
			w[i] = edge
		}
	}
	return w
}

// Number of lines with exactly 2 of 'own' and the third square free of 'other'
func countThreats(own, other uint16) int {
	n := 0
	for _, pattern := range uttt.WinningPatterns {
		if bits.OnesCount16(own&pattern) == 2 && other&pattern == 0 {
			n++
		}
	}
	return n
}

func clamp(v int) int {
	return min(max(v, -MaxScore), MaxScore)
}
