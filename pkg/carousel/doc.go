// Package carousel implements the slide-index and timer state machine behind
// an image carousel.
//
// # Core Components
//
//   - [Collection]: the immutable ordered slides.
//   - [IndexController]: owns the current and next index and all wrap-around
//     arithmetic. It has no timers.
//   - [AutoScrollScheduler]: the periodic autoplay tick and the cooldown that
//     pauses autoplay after a manual interaction.
//   - [TransitionCoordinator]: applies the contract of the [TransitionMode]
//     to an index change and commits it.
//   - [NavigationInput]: adapts prev/next presses, thumbnail taps and drag end
//     into index requests, signalling the interaction first.
//
// [Carousel] wires these together and hands a [Frame] to a [Renderer]
// whenever the visible state changes.
//
// # Basic Usage
//
//	c := carousel.New(carousel.Config{
//	    Images:     slides,
//	    AutoScroll: true,
//	    Mode:       carousel.Crossfade,
//	}, carousel.WithRenderer(r), carousel.WithClock(animation.NewSystemClock(dispatch)))
//	defer c.Dispose()
//
//	c.Input().Next()            // user pressed the next control
//	c.Input().SelectThumbnail(3) // user tapped the fourth thumbnail
//
// # Threading
//
// A Carousel is NOT thread-safe. Every method must be called from the
// goroutine that owns it, and the [animation.Clock] must deliver timer
// callbacks on that same goroutine (see [animation.NewSystemClock]).
//
// # Empty Collections
//
// With no slides every navigation call is a no-op and [State] reports
// Empty with both indices set to [NoIndex].
package carousel
