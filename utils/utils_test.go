package utils_test

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"pkg.world.dev/tecs"
	"pkg.world.dev/tecs/utils"
)

func TestTimer(t *testing.T) {
	timer := utils.NewTimer(20 * time.Millisecond)

	// A never-started timer reports done.
	assert.Check(t, timer.Done())

	timer.Start()
	assert.Check(t, !timer.Done())

	time.Sleep(30 * time.Millisecond)
	assert.Check(t, timer.Done())
}

func TestTimerRestart(t *testing.T) {
	timer := utils.NewTimer(50 * time.Millisecond)
	timer.Start()
	time.Sleep(60 * time.Millisecond)
	assert.Check(t, timer.Done())

	timer.Start()
	assert.Check(t, !timer.Done())
}

func TestClockTracksDelta(t *testing.T) {
	w := tecs.NewWorld[struct{}]()
	utils.AddClock(w)

	clock, ok := tecs.GetResource[utils.Clock](w)
	assert.Check(t, ok)
	assert.Equal(t, time.Duration(0), clock.Get().Delta)
	start := clock.Get().Start
	clock.Close()

	time.Sleep(10 * time.Millisecond)
	w.Tick()

	clock, ok = tecs.GetResource[utils.Clock](w)
	assert.Check(t, ok)
	defer clock.Close()
	assert.Check(t, clock.Get().Delta >= 10*time.Millisecond)
	assert.Equal(t, start, clock.Get().Start)
}

func TestClockDeltaResetsEachTick(t *testing.T) {
	w := tecs.NewWorld[struct{}]()
	utils.AddClock(w)

	time.Sleep(20 * time.Millisecond)
	w.Tick()
	w.Tick()

	clock, ok := tecs.GetResource[utils.Clock](w)
	assert.Check(t, ok)
	defer clock.Close()
	// The second tick followed the first immediately.
	assert.Check(t, clock.Get().Delta < 20*time.Millisecond)
}
