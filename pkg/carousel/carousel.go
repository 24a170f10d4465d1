package carousel

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/errors"
)

// Carousel is one carousel instance. It owns its navigation state and
// timers exclusively; nothing is shared between instances.
//
// Always call Dispose when the carousel is torn down. After Dispose every
// method is a no-op and no timer callback can reach the carousel.
type Carousel struct {
	id       string
	cfg      Config
	slides   Collection
	options  Options
	clock    animation.Clock
	renderer Renderer
	logger   *slog.Logger
	metrics  Metrics

	index       *IndexController
	transitions *TransitionCoordinator
	scheduler   *AutoScrollScheduler
	input       *NavigationInput

	indexListeners []func(previous, current int)
	disposed       bool
}

// Option customizes a Carousel.
type Option func(*Carousel)

// WithClock sets the time source and timer factory.
func WithClock(c animation.Clock) Option {
	return func(cr *Carousel) {
		if c != nil {
			cr.clock = c
		}
	}
}

// WithRenderer sets the rendering collaborator.
func WithRenderer(r Renderer) Option {
	return func(cr *Carousel) { cr.renderer = r }
}

// WithLogger sets the logger. Records carry a carousel_id attribute.
func WithLogger(l *slog.Logger) Option {
	return func(cr *Carousel) {
		if l != nil {
			cr.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(cr *Carousel) { cr.metrics = m }
}

// WithOnIndexChanged registers a listener for committed index changes.
func WithOnIndexChanged(fn func(previous, current int)) Option {
	return func(cr *Carousel) {
		if fn != nil {
			cr.indexListeners = append(cr.indexListeners, fn)
		}
	}
}

// New creates a carousel on the first slide, renders the initial frame and
// starts autoplay when cfg.AutoScroll is set.
func New(cfg Config, opts ...Option) *Carousel {
	cfg = cfg.withDefaults()
	c := &Carousel{
		id:      uuid.NewString(),
		cfg:     cfg,
		slides:  NewCollection(cfg.Images),
		options: cfg.options(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = animation.NewSystemClock(nil)
	}
	c.logger = c.logger.With(slog.String("carousel_id", c.id))

	c.transitions = NewTransitionCoordinator(cfg.Mode, cfg.AnimationDuration, c.clock, c.logger)
	var transitioner Transitioner = c.transitions
	if c.metrics != nil {
		transitioner = meteredTransitioner{inner: c.transitions, mode: cfg.Mode, metrics: c.metrics}
	}
	c.index = NewIndexController(c.slides, cfg.Mode, transitioner)
	c.index.OnChange(c.render)
	c.index.OnCommit(c.committed)

	c.scheduler = NewAutoScrollScheduler(c.clock, cfg.TickInterval, cfg.ResumeDelay, c.tick)
	c.scheduler.SetLogger(c.logger)
	c.scheduler.OnPhaseChange(func(SchedulerState) { c.render() })

	c.input = NewNavigationInput(c.index, c.scheduler, cfg.Mode)
	if c.metrics != nil {
		c.input.OnInteraction(c.metrics.Interaction)
	}

	c.logger.Debug("carousel created",
		slog.Int("slides", c.slides.Len()),
		slog.String("mode", cfg.Mode.String()),
		slog.Bool("autoscroll", cfg.AutoScroll))

	c.render()
	if cfg.AutoScroll {
		c.scheduler.Start()
	}
	return c
}

// ID returns the instance identifier used in logs and error reports.
func (c *Carousel) ID() string { return c.id }

// Config returns the resolved configuration.
func (c *Carousel) Config() Config { return c.cfg }

// Input returns the adapter for user triggers. Use it for anything the user
// did; it pauses autoplay before navigating.
func (c *Carousel) Input() *NavigationInput { return c.input }

// Advance moves one slide in direction (+1 or -1) without counting as a
// user interaction. It returns the requested index.
func (c *Carousel) Advance(direction int) int {
	if c.disposed {
		return c.State().CurrentIndex
	}
	return c.index.Advance(direction)
}

// JumpTo requests index without counting as a user interaction.
// Out-of-range indices are ignored.
func (c *Carousel) JumpTo(index int) bool {
	if c.disposed {
		return false
	}
	return c.index.JumpTo(index)
}

// PauseAutoplay holds autoplay until ResumeAutoplay.
func (c *Carousel) PauseAutoplay() {
	if c.disposed {
		return
	}
	c.scheduler.Pause()
}

// ResumeAutoplay restarts the autoplay tick immediately, discarding any
// cooldown or hold. It has no effect while autoplay is disabled.
func (c *Carousel) ResumeAutoplay() {
	if c.disposed {
		return
	}
	c.scheduler.Resume()
}

// SetAutoScroll enables or disables autoplay at runtime.
func (c *Carousel) SetAutoScroll(enabled bool) {
	if c.disposed {
		return
	}
	c.cfg.AutoScroll = enabled
	if enabled {
		c.scheduler.Start()
	} else {
		c.scheduler.Stop()
	}
}

// State returns the navigation state.
func (c *Carousel) State() State { return c.index.State() }

// Autoplay returns the scheduler state.
func (c *Carousel) Autoplay() SchedulerState { return c.scheduler.State() }

// Frame builds the frame the renderer would receive now.
func (c *Carousel) Frame() Frame {
	st := c.index.State()
	f := Frame{
		State:      st,
		Slides:     c.slides,
		Transition: c.transitions.Last(),
		Autoplay:   c.scheduler.State(),
		Options:    c.options,
		Now:        c.clock.Now(),
	}
	if !st.Empty {
		f.Current, _ = c.slides.At(st.CurrentIndex)
		f.Next, _ = c.slides.At(st.NextIndex)
	}
	return f
}

// Dispose stops autoplay and any pending transition. It is safe to call
// more than once.
func (c *Carousel) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.scheduler.Dispose()
	c.transitions.Dispose()
	c.logger.Debug("carousel disposed")
}

// tick advances one slide. A tick that lands while an overlay commit is
// still pending is skipped so the pending commit can land.
func (c *Carousel) tick() {
	if c.disposed || c.index.State().Transitioning {
		return
	}
	if c.metrics != nil {
		c.metrics.AutoplayTick()
	}
	c.index.Advance(+1)
}

func (c *Carousel) committed(previous, current int) {
	if c.disposed {
		return
	}
	c.logger.Debug("slide committed", slog.Int("previous", previous), slog.Int("current", current))
	if c.metrics != nil {
		c.metrics.Committed(c.cfg.Mode)
	}
	for _, fn := range c.indexListeners {
		c.notify(fn, previous, current)
	}
}

func (c *Carousel) notify(fn func(previous, current int), previous, current int) {
	defer errors.Recover("carousel.onIndexChanged")
	fn(previous, current)
}

func (c *Carousel) render() {
	if c.disposed || c.renderer == nil {
		return
	}
	defer errors.Recover("carousel.render")
	c.renderer.Render(c.Frame())
}
