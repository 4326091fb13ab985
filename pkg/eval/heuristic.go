package eval

import (
	"math/bits"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Heuristic scores per-sub-board control, local and macro two-in-a-row threats,
// whether the side to move is free to choose its sub-board, and otherwise
// the threats inside the sub-board it is sent to.
//
// Every term is a non-negative weight times a count for one player, so
// more threats for a player never decrease that player's score.
type Heuristic struct {
	weights      Weights
	boardWeights [9]int
	cellWeights  [9]int
}

func NewHeuristic(w Weights) *Heuristic {
	return &Heuristic{
		weights:      w,
		boardWeights: squareWeights(w.BoardCenter, w.BoardCorner, w.BoardEdge),
		cellWeights:  squareWeights(w.CellCenter, w.CellCorner, w.CellEdge),
	}
}

func (h *Heuristic) Weights() Weights {
	return h.weights
}

func (h *Heuristic) Evaluate(s *uttt.State) int {
	score := h.playerScore(s, uttt.PlayerA) - h.playerScore(s, uttt.PlayerB)

	// Flip to the side to move's perspective
	if s.SideToMove() == uttt.PlayerB {
		score = -score
	}

	if bi, ok := s.ActiveBoard().BigIndex(); ok {
		score += h.activeScore(s, bi)
	} else {
		score += h.weights.FreeMove
	}

	return clamp(score)
}

// Score of a single player's assets on the board, always >= 0
func (h *Heuristic) playerScore(s *uttt.State, p uttt.Player) int {
	opp := p.Opponent()
	total := 0

	var won, open uint16
	for bi := 0; bi < 9; bi++ {
		bw := h.boardWeights[bi]

		switch outcome := s.Outcome(bi); outcome {
		case uttt.InProgress:
			open |= 1 << bi
			own, other := s.Bitboard(p, bi), s.Bitboard(opp, bi)
			total += bw * (h.cellScore(own) + h.weights.LocalThreat*countThreats(own, other))
		default:
			if winner, ok := outcome.Winner(); ok && winner == p {
				won |= 1 << bi
				total += bw * h.weights.LocalWin
			}
		}
	}

	// Macro threats: two won sub-boards in a line, the third still playable
	for _, pattern := range uttt.WinningPatterns {
		if bits.OnesCount16(won&pattern) == 2 && open&(pattern&^won) != 0 {
			total += h.weights.MacroThreat
		}
	}
	return total
}

// Value of the constrained sub-board to the side to move: its own threats there can be
// completed right away, the opponent's ones must be blocked
func (h *Heuristic) activeScore(s *uttt.State, bi int) int {
	side := s.SideToMove()
	own, other := s.Bitboard(side, bi), s.Bitboard(side.Opponent(), bi)
	return h.weights.ActiveThreat * (countThreats(own, other) - countThreats(other, own))
}

func (h *Heuristic) cellScore(own uint16) int {
	total := 0
	for own != 0 {
		total += h.cellWeights[bits.TrailingZeros16(own)]
		own &= own - 1
	}
	return total
}
