package carousel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/errors"
)

// Phase is the autoplay state.
//
//	          Start()             Interaction()
//	Idle ──────────────► Running ───────────────► Paused
//	 ▲                      ▲                        │
//	 │        Stop()        │   resume timer fires   │
//	 └──────────────────────┴────────────────────────┘
type Phase int

const (
	// PhaseIdle means autoplay is disabled and no timer is armed.
	PhaseIdle Phase = iota
	// PhaseRunning means the periodic tick is armed.
	PhaseRunning
	// PhasePaused means the tick is cancelled; a resume timer may be armed.
	PhasePaused
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// SchedulerState is a snapshot of the autoplay scheduler.
type SchedulerState struct {
	Phase Phase
	// Held is set by an explicit Pause; interaction does not resume a held
	// scheduler.
	Held        bool
	TickArmed   bool
	ResumeArmed bool
}

// AutoScrollScheduler owns the periodic autoplay tick and the interaction
// cooldown. At most one tick timer and one resume timer exist at a time:
// every path cancels before it re-arms.
type AutoScrollScheduler struct {
	clock       animation.Clock
	interval    time.Duration
	resumeDelay time.Duration
	onTick      func()
	onPhase     func(SchedulerState)
	logger      *slog.Logger

	phase    Phase
	enabled  bool
	held     bool
	disposed bool

	tick      animation.Timer
	tickGen   uint64
	resume    animation.Timer
	resumeGen uint64
}

// NewAutoScrollScheduler creates an idle scheduler. onTick runs on every
// periodic tick. Non-positive durations are replaced with DefaultTickInterval
// and DefaultResumeDelay.
func NewAutoScrollScheduler(clock animation.Clock, interval, resumeDelay time.Duration, onTick func()) *AutoScrollScheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if resumeDelay <= 0 {
		resumeDelay = DefaultResumeDelay
	}
	if clock == nil {
		clock = animation.NewSystemClock(nil)
	}
	return &AutoScrollScheduler{
		clock:       clock,
		interval:    interval,
		resumeDelay: resumeDelay,
		onTick:      onTick,
		logger:      slog.Default(),
	}
}

// OnPhaseChange registers a callback invoked after every phase change.
func (s *AutoScrollScheduler) OnPhaseChange(fn func(SchedulerState)) { s.onPhase = fn }

// SetLogger replaces the scheduler's logger.
func (s *AutoScrollScheduler) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// State returns a snapshot of the scheduler.
func (s *AutoScrollScheduler) State() SchedulerState {
	return SchedulerState{
		Phase:       s.phase,
		Held:        s.held,
		TickArmed:   s.tick != nil,
		ResumeArmed: s.resume != nil,
	}
}

// Enabled reports whether autoplay is enabled.
func (s *AutoScrollScheduler) Enabled() bool { return s.enabled }

// Start enables autoplay and arms the periodic tick. It does nothing if
// autoplay is already enabled.
func (s *AutoScrollScheduler) Start() {
	if s.disposed || s.enabled {
		return
	}
	s.enabled = true
	s.run()
}

// Stop disables autoplay and cancels both timers.
func (s *AutoScrollScheduler) Stop() {
	if s.disposed {
		return
	}
	s.enabled = false
	s.held = false
	s.cancelTick()
	s.cancelResume()
	s.setPhase(PhaseIdle)
}

// Interaction records a manual navigation. It cancels the tick and restarts
// the cooldown, so repeated interaction keeps deferring autoplay.
func (s *AutoScrollScheduler) Interaction() {
	if s.disposed || !s.enabled {
		return
	}
	s.cancelTick()
	s.cancelResume()
	if !s.held {
		s.armResume()
	}
	s.setPhase(PhasePaused)
}

// Pause holds autoplay until Resume. No resume timer is armed.
func (s *AutoScrollScheduler) Pause() {
	if s.disposed || !s.enabled {
		return
	}
	s.held = true
	s.cancelTick()
	s.cancelResume()
	s.setPhase(PhasePaused)
}

// Resume clears a hold and any cooldown and restarts the periodic tick.
func (s *AutoScrollScheduler) Resume() {
	if s.disposed || !s.enabled {
		return
	}
	s.held = false
	s.run()
}

// Dispose stops the scheduler permanently. Callbacks already queued on the
// owner loop are ignored.
func (s *AutoScrollScheduler) Dispose() {
	s.Stop()
	s.disposed = true
}

func (s *AutoScrollScheduler) run() {
	s.cancelTick()
	s.cancelResume()
	s.armTick()
	s.setPhase(PhaseRunning)
}

func (s *AutoScrollScheduler) armTick() {
	s.tickGen++
	gen := s.tickGen
	s.tick = s.clock.AfterFunc(s.interval, func() { s.fireTick(gen) })
}

func (s *AutoScrollScheduler) fireTick(gen uint64) {
	const op = "carousel.AutoScrollScheduler.tick"
	defer errors.RecoverWithCallback(op, timerFailed(op))
	if s.disposed || gen != s.tickGen || s.phase != PhaseRunning {
		return
	}
	s.tick = nil
	// Re-arm even when onTick panics. onTick may have stopped or restarted
	// autoplay itself.
	defer func() {
		if s.phase == PhaseRunning && s.tick == nil && !s.disposed {
			s.armTick()
		}
	}()
	if s.onTick != nil {
		s.onTick()
	}
}

func (s *AutoScrollScheduler) armResume() {
	s.resumeGen++
	gen := s.resumeGen
	s.resume = s.clock.AfterFunc(s.resumeDelay, func() { s.fireResume(gen) })
}

func (s *AutoScrollScheduler) fireResume(gen uint64) {
	const op = "carousel.AutoScrollScheduler.resume"
	defer errors.RecoverWithCallback(op, timerFailed(op))
	if s.disposed || gen != s.resumeGen {
		return
	}
	s.resume = nil
	if !s.enabled {
		s.Stop()
		return
	}
	s.logger.Debug("autoplay resumed after cooldown", slog.Duration("delay", s.resumeDelay))
	s.run()
}

func (s *AutoScrollScheduler) cancelTick() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
	s.tickGen++
}

func (s *AutoScrollScheduler) cancelResume() {
	if s.resume != nil {
		s.resume.Stop()
		s.resume = nil
	}
	s.resumeGen++
}

func (s *AutoScrollScheduler) setPhase(p Phase) {
	changed := s.phase != p
	s.phase = p
	if changed {
		s.logger.Debug("autoplay phase changed", slog.String("phase", p.String()))
	}
	// Held and armed flags can change without a phase change.
	if s.onPhase != nil {
		s.onPhase(s.State())
	}
}

// timerFailed reports a panic inside a timer callback as a KindTimer error
// after the panic itself has been reported.
func timerFailed(op string) func(r any) {
	return func(r any) {
		errors.Report(&errors.CarouselError{
			Op:   op,
			Kind: errors.KindTimer,
			Err:  fmt.Errorf("callback panicked: %v", r),
		})
	}
}
