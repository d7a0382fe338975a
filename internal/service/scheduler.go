package service

import "time"

// Scheduler fires a callback exactly once after a delay. Firing is
// fire-and-forget; the production implementation wraps time.AfterFunc and
// tests substitute a manually triggered fake.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the time.AfterFunc backed scheduler.
func NewTimerScheduler() Scheduler { return timerScheduler{} }

func (timerScheduler) ScheduleOnce(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
