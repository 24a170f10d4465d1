package animation

import (
	"sync"
	"time"
)

// Clock provides time and one-shot timers to the carousel. The default
// implementation uses system time. Tests inject a fake clock to control
// timing deterministically.
type Clock interface {
	Now() time.Time
	// AfterFunc arranges for f to run once after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means the timer already fired or was stopped.
	Stop() bool
}

// DispatchFunc schedules a callback on the goroutine that owns UI state.
type DispatchFunc func(callback func())

// systemClock uses system time. Timer callbacks are handed to dispatch so
// they run on the owner's loop instead of the runtime timer goroutine.
type systemClock struct {
	mu       sync.RWMutex
	dispatch DispatchFunc
}

// NewSystemClock returns a Clock backed by the time package. Callbacks are
// delivered through dispatch; with a nil dispatch they run on the timer
// goroutine and the caller must serialize access itself.
func NewSystemClock(dispatch DispatchFunc) Clock {
	return &systemClock{dispatch: dispatch}
}

func (c *systemClock) Now() time.Time { return time.Now() }

func (c *systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		c.mu.RLock()
		dispatch := c.dispatch
		c.mu.RUnlock()
		if dispatch == nil {
			f()
			return
		}
		dispatch(f)
	})
}

// SetDispatch replaces the dispatch function of a clock created by
// NewSystemClock. It reports false for other clock implementations.
func SetDispatch(c Clock, dispatch DispatchFunc) bool {
	sc, ok := c.(*systemClock)
	if !ok {
		return false
	}
	sc.mu.Lock()
	sc.dispatch = dispatch
	sc.mu.Unlock()
	return true
}
