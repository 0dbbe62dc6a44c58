package common

import (
	"time"
)

// A TimedExecutor runs its task at most once per period. It does no
// scheduling of its own: the owner polls Execute from a loop as often
// as it likes, and the task fires only when the period has elapsed
// since the previous run
type TimedExecutor struct {
	stopwatch Stopwatch
	task      func()
}

func NewTimedExecutor(period time.Duration, task func()) TimedExecutor {
	return TimedExecutor{NewStopwatch(period), task}
}

// Run the task if its period has elapsed, else do nothing.
// The first call after creation fires immediately
func (te *TimedExecutor) Execute() {
	stopped, _ := te.stopwatch.Stopped()
	if !stopped {
		return
	}
	te.stopwatch.Start()
	te.task()
}
