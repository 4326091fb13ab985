package search

import (
	"context"
	"sync/atomic"
	"unsafe"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached
	StopDepth     StopReason = 4  // Depth limit reached (or no more plies to search)
	StopNodes     StopReason = 8  // Node limit reached
	StopProven    StopReason = 16 // Forced result found, deeper search can't change it
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopDepth, "Depth"},
		{StopNodes, "Nodes"},
		{StopProven, "Proven"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Whether the search may continue, 'depth' is the depth about to be searched
	Ok(nodes uint64, depth int) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally
	EvaluateStopReason(nodes uint64, depth int)
}

type Limiter struct {
	limits *Limits
	Timer  *_Timer
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		Timer:  _NewTimer(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) EvaluateStopReason(nodes uint64, depth int) {
	l.reason = StopReason(l.LimitMask(nodes, depth))
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.Timer.Deltatime())
}

func toMask(val bool, offset int) int {
	return int(*(*byte)(unsafe.Pointer(&val))) << offset
}

// Bit mask of StopReason flags of the limits that are reached
func (l *Limiter) LimitMask(nodes uint64, depth int) int {
	stop := l.Stop()
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return toMask(stop, 0)
	}

	limitMask := 0
	limitMask |= toMask(stop, 0)
	limitMask |= toMask(l.Timer.IsEnd(), 1)
	limitMask |= toMask(l.limits.Depth < depth, 2)
	limitMask |= toMask(l.limits.Nodes <= nodes, 3)
	return limitMask
}

func (l *Limiter) Ok(nodes uint64, depth int) bool {
	return l.LimitMask(nodes, depth) == 0
}
