package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch_CountsAsStoppedBeforeFirstStart(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch(time.Minute)

	stopped, remaining := stopwatch.Stopped()

	assert.True(t, stopped)
	assert.Zero(t, remaining)
	assert.False(t, stopwatch.Running())
}

func TestStopwatch_RunsUntilTimeoutIsReached(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch(50 * time.Millisecond)
	stopwatch.Start()

	stopped, remaining := stopwatch.Stopped()
	assert.False(t, stopped)
	assert.Greater(t, remaining, time.Duration(0))

	time.Sleep(60 * time.Millisecond)

	stopped, remaining = stopwatch.Stopped()
	assert.True(t, stopped)
	assert.Zero(t, remaining)
}

func TestStopwatch_StopCancelsTheTimeout(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch(time.Minute)
	stopwatch.Start()
	stopwatch.Stop()

	stopped, _ := stopwatch.Stopped()
	assert.True(t, stopped)
}

func TestTimedExecutor_RunsTaskOncePerPeriod(t *testing.T) {
	t.Parallel()

	runs := 0
	executor := NewTimedExecutor(50*time.Millisecond, func() { runs++ })

	// First call fires immediately, the next one is inside the period
	executor.Execute()
	executor.Execute()
	assert.Equal(t, 1, runs)

	time.Sleep(60 * time.Millisecond)
	executor.Execute()
	assert.Equal(t, 2, runs)
}
