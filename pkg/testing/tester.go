package testing

import (
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
)

// Commit records one committed index change.
type Commit struct {
	Previous int
	Current  int
	// At is the fake time elapsed since the tester was created.
	At time.Duration
}

// CarouselTester drives a carousel against a FakeClock and records every
// frame and commit it produces.
type CarouselTester struct {
	Carousel *carousel.Carousel

	clock   *FakeClock
	start   time.Time
	frames  []carousel.Frame
	commits []Commit
}

// NewCarouselTester creates a carousel with a fake clock and a recording
// renderer. Extra options are applied after the tester's own, so a
// WithRenderer option replaces the recorder. The carousel is disposed when
// the test finishes.
func NewCarouselTester(t testing.TB, cfg carousel.Config, opts ...carousel.Option) *CarouselTester {
	t.Helper()
	clk := NewFakeClock()
	ct := &CarouselTester{clock: clk, start: clk.Now()}
	base := []carousel.Option{
		carousel.WithClock(clk),
		carousel.WithRenderer(carousel.RendererFunc(ct.record)),
		carousel.WithOnIndexChanged(ct.commit),
	}
	ct.Carousel = carousel.New(cfg, append(base, opts...)...)
	t.Cleanup(ct.Carousel.Dispose)
	return ct
}

// Clock returns the tester's fake clock.
func (ct *CarouselTester) Clock() *FakeClock { return ct.clock }

// Elapse advances fake time by d, firing due timers.
func (ct *CarouselTester) Elapse(d time.Duration) { ct.clock.Advance(d) }

// ElapseTo advances fake time to offset since the tester was created.
// Offsets in the past are ignored.
func (ct *CarouselTester) ElapseTo(offset time.Duration) {
	if d := offset - ct.Elapsed(); d > 0 {
		ct.clock.Advance(d)
	}
}

// Elapsed returns the fake time since the tester was created.
func (ct *CarouselTester) Elapsed() time.Duration { return ct.clock.Now().Sub(ct.start) }

// Frames returns every frame rendered so far.
func (ct *CarouselTester) Frames() []carousel.Frame { return ct.frames }

// LastFrame returns the most recent frame.
func (ct *CarouselTester) LastFrame() carousel.Frame {
	if len(ct.frames) == 0 {
		return carousel.Frame{}
	}
	return ct.frames[len(ct.frames)-1]
}

// Commits returns every committed index change so far.
func (ct *CarouselTester) Commits() []Commit { return ct.commits }

// CurrentIndices returns CurrentIndex from every recorded frame, with
// consecutive duplicates removed.
func (ct *CarouselTester) CurrentIndices() []int {
	var out []int
	for _, f := range ct.frames {
		idx := f.State.CurrentIndex
		if len(out) > 0 && out[len(out)-1] == idx {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// Reset forgets recorded frames and commits.
func (ct *CarouselTester) Reset() {
	ct.frames = nil
	ct.commits = nil
}

func (ct *CarouselTester) record(f carousel.Frame) {
	ct.frames = append(ct.frames, f)
}

func (ct *CarouselTester) commit(previous, current int) {
	ct.commits = append(ct.commits, Commit{Previous: previous, Current: current, At: ct.Elapsed()})
}
