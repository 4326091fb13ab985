package search

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Depth         int
	Nodes         uint64
	Movetime      int
	Infinite      bool
	NThreads      int
	CheckInterval uint64
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = MaxPly
	DefaultNodeLimit     uint64 = math.MaxUint64
	DefaultMovetimeLimit int    = -1

	// How many nodes are searched between deadline checks
	DefaultCheckInterval uint64 = 1024
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:         DefaultDepthLimit,
		Nodes:         DefaultNodeLimit,
		Movetime:      DefaultMovetimeLimit,
		Infinite:      true,
		NThreads:      1,
		CheckInterval: DefaultCheckInterval,
	}
}

// Set the maximum depth of the search, in plies
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = max(depth, 1)
	l.Infinite = false
	return l
}

// Set the maximum number of nodes engine can go through
func (l *Limits) SetNodes(nodes uint64) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}

func (l *Limits) SetCheckInterval(nodes uint64) *Limits {
	l.CheckInterval = max(nodes, 1)
	return l
}
