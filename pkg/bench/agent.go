package bench

import (
	"context"
	"math/rand"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Anything that can pick a move, *search.Engine satisfies it
type Agent interface {
	ChooseAction(s *uttt.State, budget time.Duration) (uttt.Action, error)
}

// Creates a fresh agent for every arena worker, agents are never shared between goroutines
type AgentFactory func(workerID int) Agent

// Agent whose thinking can be cut short, the arena passes its context so that
// a cancelled series doesn't wait for the agents' full budget
type ContextAgent interface {
	Agent
	SetContext(ctx context.Context)
}

var _ ContextAgent = (*search.Engine)(nil)

// Plays uniformly random legal moves
type RandomAgent struct {
	r *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{r: rand.New(rand.NewSource(seed))}
}

func (ra *RandomAgent) ChooseAction(s *uttt.State, _ time.Duration) (uttt.Action, error) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return uttt.ActionNone, search.ErrNoLegalMove
	}
	return actions[ra.r.Intn(len(actions))], nil
}

// Factory of random agents, with a seed derived from given base and the worker id
func RandomAgents(seed int64) AgentFactory {
	return func(workerID int) Agent {
		return NewRandomAgent(seed + int64(workerID))
	}
}

// Factory of search engines, each worker gets its own engine built with given options
func EngineAgents(opts ...search.Option) AgentFactory {
	return func(int) Agent {
		return search.NewEngine(opts...)
	}
}
