package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type ScoreType uint8

const (
	ValueScore ScoreType = iota
	MateScore
)

// Outcome of a completed search, scores are from the side to move's perspective
type Result struct {
	BestMove   uttt.Action
	Score      int
	ScoreType  ScoreType
	Pv         []uttt.Action
	Depth      int
	Nodes      uint64
	Nps        uint64
	Elapsed    time.Duration
	StopReason StopReason
	Turn       uttt.Player
}

// Signed number of plies until the game ends, valid only for MateScore
func (r Result) MateIn() int {
	if r.ScoreType != MateScore {
		return 0
	}
	plies := Mate - abs(r.Score)
	if r.Score < 0 {
		return -plies
	}
	return plies
}

func (r Result) StringValue() string {
	if r.ScoreType == MateScore {
		return fmt.Sprintf("%dxM", r.MateIn())
	}
	return fmt.Sprintf("%.2f", float64(r.Score)/100)
}

func (r Result) String() string {
	return fmt.Sprintf("eval %s depth %d nps %d nodes %d bestmove %v pv %s",
		r.StringValue(), r.Depth, r.Nps, r.Nodes, r.BestMove, pvString(r.Pv))
}

func pvString(pv []uttt.Action) string {
	builder := strings.Builder{}
	for i, m := range pv {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(m.String())
	}
	return builder.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
