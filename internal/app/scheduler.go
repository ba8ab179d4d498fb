package app

import "time"

// Timer is a cancellable handle for a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran or was stopped.
	Stop() bool
}

// Scheduler arms one-shot callbacks. The quiz engine uses it for auto-advance
// so tests can fire timers deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer wheel.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
