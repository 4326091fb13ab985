package eval

import "github.com/IlikeChooros/go-uttt/pkg/uttt"

const materialUnit = 100

// Material only counts won sub-boards, a weak baseline for comparing evaluators
type Material struct{}

func (Material) Evaluate(s *uttt.State) int {
	score := 0
	for bi := 0; bi < 9; bi++ {
		switch s.Outcome(bi) {
		case uttt.WonByA:
			score += materialUnit
		case uttt.WonByB:
			score -= materialUnit
		}
	}

	if s.SideToMove() == uttt.PlayerB {
		score = -score
	}
	return clamp(score)
}
