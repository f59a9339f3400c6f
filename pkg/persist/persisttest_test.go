package persist_test

import (
	"sync"
	"time"

	"github.com/statekit/persist/pkg/log"
	"github.com/statekit/persist/pkg/persist"
)

// fakeContainer is a minimal host state container for middleware tests.
type fakeContainer struct {
	mu    sync.Mutex
	state persist.State
}

func newFakeContainer(state persist.State) *fakeContainer {
	return &fakeContainer{state: state}
}

func (c *fakeContainer) GetState() persist.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *fakeContainer) SetState(state persist.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

func (c *fakeContainer) Dispatch(action any) any { return action }

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, fields ...log.Field) {}
func (l *recordingLogger) Info(msg string, fields ...log.Field)  {}

func (l *recordingLogger) Warn(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

// manualScheduler drives debounced saves by hand.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledCall
}

type scheduledCall struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (m *manualScheduler) Schedule(d time.Duration, fn func()) persist.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := &scheduledCall{delay: d, fn: fn}
	m.pending = append(m.pending, call)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		call.cancelled = true
	}
}

// fireDue runs every scheduled call that has not been cancelled, simulating
// all timers expiring.
func (m *manualScheduler) fireDue() {
	m.mu.Lock()
	due := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, call := range due {
		m.mu.Lock()
		cancelled := call.cancelled
		m.mu.Unlock()
		if !cancelled {
			call.fn()
		}
	}
}

func (m *manualScheduler) scheduledCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// recordingEvents captures emitted events.
type recordingEvents struct {
	persist.BaseEventHandler

	mu     sync.Mutex
	saves  []persist.SaveEvent
	loads  []persist.LoadEvent
	clears []persist.ClearEvent
}

func (h *recordingEvents) OnSave(e persist.SaveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, e)
}

func (h *recordingEvents) OnLoad(e persist.LoadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, e)
}

func (h *recordingEvents) OnClear(e persist.ClearEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clears = append(h.clears, e)
}
