package search

import (
	"time"
)

type _Timer struct {
	start    time.Time
	duration time.Duration
	set      bool
}

func _NewTimer() *_Timer {
	return &_Timer{start: time.Now()}
}

// Check if this timer has ended, a zero duration ends immediately
func (t *_Timer) IsEnd() bool {
	return t.set && time.Since(t.start) >= t.duration
}

// Set the 'start' as now
func (t *_Timer) Reset() {
	t.start = time.Now()
}

// In milliseconds, at least 1
func (t *_Timer) Deltatime() int {
	return max(int(time.Since(t.start).Milliseconds()), 1)
}

// In milliseconds, negative value disables the timer
func (t *_Timer) Movetime(movetime int) {
	if movetime < 0 {
		t.set = false
		t.duration = 0
	} else {
		t.set = true
		t.duration = time.Duration(movetime) * time.Millisecond
	}
}
