package persist

import "time"

// CancelFunc stops a scheduled callback. Calling it after the callback has
// fired, or calling it twice, is a no-op.
type CancelFunc func()

// Scheduler defers a callback by a duration. The default implementation uses
// runtime timers; tests inject a manual scheduler to drive debounce
// deterministically.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks with time.AfterFunc.
type TimerScheduler struct{}

// Schedule runs fn after d on a runtime timer.
func (TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
