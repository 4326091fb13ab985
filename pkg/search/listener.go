package search

// Listener function callback, receives the result of the last completed depth
type ListenerFunc func(Result)

type StatsListener struct {
	// called when an iteration of the deepening completes
	onDepth ListenerFunc

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach new on completed depth callback, called only by the searching goroutine,
// meaning no need for synchronization here
func (listener *StatsListener) OnDepth(onDepth ListenerFunc) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach 'on search end' callback, called once,
// makes 'StopReason' available in the result
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeDepth(r Result) {
	if listener.onDepth != nil {
		listener.onDepth(r)
	}
}

func (listener *StatsListener) invokeStop(r Result) {
	if listener.onStop != nil {
		listener.onStop(r)
	}
}
