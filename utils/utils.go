// Package utils carries the small game-facing helpers that ship with the
// runtime: a frame clock resource and a one-shot timer.
package utils

import (
	"time"

	"pkg.world.dev/tecs"
)

// Timer is a one-shot countdown. A timer that was never started reports
// done.
type Timer struct {
	start    time.Time
	started  bool
	Duration time.Duration
}

func NewTimer(duration time.Duration) *Timer {
	return &Timer{Duration: duration}
}

func (t *Timer) Start() {
	t.start = time.Now()
	t.started = true
}

func (t *Timer) Done() bool {
	if !t.started {
		return true
	}
	return time.Since(t.start) > t.Duration
}

// Clock is a world resource tracking per-tick delta time. Install it with
// AddClock; every tick updates Delta to the wall time elapsed since the
// previous tick.
type Clock struct {
	Delta time.Duration
	Start time.Time
	last  time.Time
}

// AddClock installs the Clock resource and its ticker on the world.
func AddClock[E any](w *tecs.World[E]) *tecs.World[E] {
	now := time.Now()
	return tecs.WithResource(w, Clock{Start: now, last: now}).
		WithTicker(tickClock[E])
}

func tickClock[E any](w *tecs.World[E]) {
	clock, ok := tecs.GetResourceMut[Clock](w)
	if !ok {
		panic("tecs: clock resource missing, was AddClock skipped?")
	}
	defer clock.Close()

	now := time.Now()
	c := clock.Ptr()
	c.Delta = now.Sub(c.last)
	c.last = now
}

// State is the coarse run state a game loop exposes to its systems.
type State int

const (
	Stopped State = iota
	Running
)
