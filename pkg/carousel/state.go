package carousel

import "time"

// NoIndex is reported for both indices when the collection is empty.
const NoIndex = -1

// State is a snapshot of the navigation state.
type State struct {
	// CurrentIndex is the committed slide.
	CurrentIndex int
	// NextIndex equals CurrentIndex except while an overlay transition is
	// in flight, when it is the incoming slide.
	NextIndex int
	// Mode is the transition mode fixed at construction.
	Mode TransitionMode
	// Transitioning is true while a transition waits for its commit.
	Transitioning bool
	// Empty marks a carousel with no slides. Both indices are NoIndex.
	Empty bool
}

// Transition describes the most recent index change handed to the renderer.
type Transition struct {
	From int
	To   int
	Mode TransitionMode
	// Duration is zero for ContinuousScroll, advisory for Crossfade and the
	// commit delay for OverlayDoubleBuffer.
	Duration  time.Duration
	StartedAt time.Time
}

// Done reports whether the transition has run its duration at now.
func (t Transition) Done(now time.Time) bool {
	return !now.Before(t.StartedAt.Add(t.Duration))
}

// Animations names the easing used for each rendered element. The names are
// passed through to the renderer, which resolves them with animation.ParseCurve.
type Animations struct {
	Image     string `yaml:"image,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Subtitle  string `yaml:"subtitle,omitempty"`
	Thumbnail string `yaml:"thumbnail,omitempty"`
}

// Options are presentation settings the core does not interpret.
type Options struct {
	ShowControls    bool
	ShowThumbnails  bool
	ShowOverlayText bool
	// Style holds colors, sizes and radii keyed by option name
	// (e.g. "overlay_text_color", "thumbnail_size").
	Style      map[string]string
	Animations Animations
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	State State
	// Current and Next are the slides at State.CurrentIndex and
	// State.NextIndex. Both are zero when State.Empty is set.
	Current Slide
	Next    Slide
	Slides  Collection
	// Transition is the most recent index change, nil before the first one.
	Transition *Transition
	Autoplay   SchedulerState
	Options    Options
	Now        time.Time
}

// Renderer draws frames. Render is called on the carousel's goroutine after
// every visible state change.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(f Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f Frame) { fn(f) }
