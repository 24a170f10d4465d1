package carousel

import (
	"log/slog"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/errors"
)

// TransitionCoordinator maps an index change to the contract of its mode:
//
//   - ContinuousScroll commits at once. The renderer animates the scroll.
//   - Crossfade commits at once and reports Duration so the renderer can
//     blend both slides.
//   - OverlayDoubleBuffer sets NextIndex, waits Duration, then commits.
//     A newer request before the commit cancels the pending timer and starts
//     a new one against the newer target.
//
// Only OverlayDoubleBuffer owns a timer. Each armed timer carries a
// generation number; a callback whose generation is stale does nothing, so a
// callback already queued on the owner loop when it was cancelled is inert.
type TransitionCoordinator struct {
	mode     TransitionMode
	duration time.Duration
	clock    animation.Clock
	logger   *slog.Logger

	timer    animation.Timer
	gen      uint64
	last     *Transition
	disposed bool
}

// NewTransitionCoordinator creates a coordinator. A non-positive duration
// is replaced with DefaultAnimationDuration.
func NewTransitionCoordinator(mode TransitionMode, duration time.Duration, clock animation.Clock, logger *slog.Logger) *TransitionCoordinator {
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}
	if clock == nil {
		clock = animation.NewSystemClock(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TransitionCoordinator{
		mode:     mode,
		duration: duration,
		clock:    clock,
		logger:   logger,
	}
}

// Begin implements Transitioner.
func (t *TransitionCoordinator) Begin(c *IndexController, target int) {
	if t.disposed {
		return
	}
	tr := Transition{
		From:      c.current,
		To:        target,
		Mode:      t.mode,
		StartedAt: t.clock.Now(),
	}

	switch t.mode {
	case OverlayDoubleBuffer:
		t.cancelTimer()
		if target == c.current {
			// Back to the slide already shown: settle without a commit event.
			t.last = nil
			c.CommitTo(target)
			return
		}
		tr.Duration = t.duration
		t.last = &tr
		c.Retarget(target)
		t.arm(c)
		t.logger.Debug("overlay transition started",
			slog.Int("from", tr.From),
			slog.Int("to", tr.To),
			slog.Duration("duration", tr.Duration))
	case Crossfade:
		tr.Duration = t.duration
		t.last = &tr
		c.CommitTo(target)
	default:
		t.last = &tr
		c.CommitTo(target)
	}
}

// arm schedules the commit of whatever c targets when the timer fires.
func (t *TransitionCoordinator) arm(c *IndexController) {
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.duration, func() {
		const op = "carousel.TransitionCoordinator.commit"
		defer errors.RecoverWithCallback(op, timerFailed(op))
		if t.disposed || gen != t.gen {
			return
		}
		t.timer = nil
		c.Commit()
	})
}

// Pending reports whether a commit timer is armed.
func (t *TransitionCoordinator) Pending() bool { return t.timer != nil }

// Last returns the most recent transition, or nil.
func (t *TransitionCoordinator) Last() *Transition {
	if t.last == nil {
		return nil
	}
	tr := *t.last
	return &tr
}

// Duration returns the resolved transition duration.
func (t *TransitionCoordinator) Duration() time.Duration { return t.duration }

// Dispose cancels any pending commit. Callbacks already queued are ignored.
func (t *TransitionCoordinator) Dispose() {
	t.cancelTimer()
	t.disposed = true
}

func (t *TransitionCoordinator) cancelTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}
