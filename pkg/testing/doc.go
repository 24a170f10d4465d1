// Package testing provides deterministic test helpers for carousels.
//
// # Quick Start
//
//	func TestAutoplay(t *testing.T) {
//	    tester := carouseltest.NewCarouselTester(t, carousel.Config{
//	        Images:     slides,
//	        AutoScroll: true,
//	    })
//
//	    tester.Elapse(3 * time.Second)
//	    if got := tester.Carousel.State().CurrentIndex; got != 1 {
//	        t.Errorf("expected slide 1 after one tick, got %d", got)
//	    }
//	}
//
// # Time Control
//
// [FakeClock] implements animation.Clock. Timers fire synchronously inside
// Advance, in deadline order, on the test goroutine:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//
// [CarouselTester] records every rendered frame and every committed index
// change so tests can assert on the whole sequence, not just the end state.
//
// # Snapshots
//
// CaptureSnapshot serializes the recorded frames and commits with times
// relative to the tester's start. Compare against a golden file with:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/overlay.snapshot.json")
//
// Run with CAROUSEL_UPDATE_SNAPSHOTS=1 to create or refresh golden files.
package testing
