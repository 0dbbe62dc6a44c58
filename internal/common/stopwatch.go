package common

import (
	"time"
)

// This stopwatch keeps track of time. You can set a timeout for it,
// make it start counting time, and ask it if the timeout has been reached
type Stopwatch struct {
	Timeout   time.Duration
	startTime time.Time
	running   bool
}

func NewStopwatch(timeout time.Duration) Stopwatch {
	return Stopwatch{timeout, time.Time{}, false}
}

func (s *Stopwatch) Start() {
	s.running = true
	s.startTime = time.Now()
}

func (s *Stopwatch) Stop() {
	s.running = false
}

func (s *Stopwatch) Running() bool {
	return s.running
}

// Stopped reports whether the timeout has been reached since the last
// call to Start. A stopwatch that was never started counts as stopped.
// When the timeout has not been reached yet, the second return value
// is the time left until it is
func (s *Stopwatch) Stopped() (bool, time.Duration) {
	if !s.running {
		return true, 0
	}
	remaining := s.Timeout - time.Since(s.startTime)
	if remaining <= 0 {
		s.running = false
		return true, 0
	}
	return false, remaining
}

// Return the time elapsed since this stopwatch
// stopped (reached its timeout).
// Note that if the number is negative, the timeout still
// has not been reached
func (s *Stopwatch) TimeStopped() time.Duration {
	currentTime := time.Now()
	return currentTime.Sub(s.startTime.Add(s.Timeout))
}
