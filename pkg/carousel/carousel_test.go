package carousel_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	carouseltest "github.com/go-drift/carousel/pkg/testing"
)

func images(n int) []carousel.Slide {
	out := make([]carousel.Slide, n)
	for i := range out {
		out[i] = carousel.Slide{
			ImageURL: fmt.Sprintf("https://example.com/%d.jpg", i),
			Title:    fmt.Sprintf("Slide %d", i),
		}
	}
	return out
}

func TestCarousel_AdvanceSequenceWraps(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(5)})

	var got []int
	for range 5 {
		got = append(got, tester.Carousel.Advance(+1))
	}

	assert.Equal(t, []int{1, 2, 3, 4, 0}, got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 0}, tester.CurrentIndices())
	assert.Len(t, tester.Commits(), 5)
}

func TestCarousel_SingleSlideIsNoOp(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(1), AutoScroll: true})
	before := tester.Carousel.State()

	tester.Carousel.Advance(+1)
	tester.Carousel.Advance(-1)
	tester.Carousel.JumpTo(0)
	tester.Carousel.Input().Next()
	tester.Elapse(10 * time.Second)

	assert.Equal(t, before, tester.Carousel.State())
	assert.Empty(t, tester.Commits())
}

func TestCarousel_EmptyCollection(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{AutoScroll: true, Mode: carousel.OverlayDoubleBuffer})

	assert.Equal(t, carousel.NoIndex, tester.Carousel.Advance(+1))
	assert.False(t, tester.Carousel.JumpTo(0))
	assert.Equal(t, carousel.NoIndex, tester.Carousel.Input().Prev())
	assert.False(t, tester.Carousel.Input().SelectThumbnail(0))
	assert.False(t, tester.Carousel.Input().DragEnd(120, 100))
	tester.Elapse(20 * time.Second)

	st := tester.Carousel.State()
	assert.True(t, st.Empty)
	assert.Equal(t, carousel.NoIndex, st.CurrentIndex)
	assert.Equal(t, carousel.NoIndex, st.NextIndex)
	assert.Empty(t, tester.Commits())

	frame := tester.Carousel.Frame()
	assert.True(t, frame.State.Empty)
	assert.Zero(t, frame.Current)
}

func TestAutoplay_TicksAtInterval(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3), AutoScroll: true})
	require.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)

	tester.Elapse(2999 * time.Millisecond)
	assert.Empty(t, tester.Commits())

	tester.Elapse(time.Millisecond)
	tester.ElapseTo(9 * time.Second)

	assert.Equal(t, []carouseltest.Commit{
		{Previous: 0, Current: 1, At: 3 * time.Second},
		{Previous: 1, Current: 2, At: 6 * time.Second},
		{Previous: 2, Current: 0, At: 9 * time.Second},
	}, tester.Commits())
}

func TestAutoplay_InteractionDefersTicks(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:       images(5),
		AutoScroll:   true,
		TickInterval: 3000 * time.Millisecond,
	})

	tester.ElapseTo(1000 * time.Millisecond)
	require.True(t, tester.Carousel.Input().SelectThumbnail(2))
	assert.Equal(t, carousel.PhasePaused, tester.Carousel.Autoplay().Phase)

	tester.ElapseTo(6999 * time.Millisecond)
	require.Len(t, tester.Commits(), 1, "no autoplay tick before the cooldown ends")

	tester.ElapseTo(7000 * time.Millisecond)
	assert.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)
	assert.True(t, tester.Carousel.Autoplay().TickArmed)

	tester.ElapseTo(10000 * time.Millisecond)
	assert.Equal(t, []carouseltest.Commit{
		{Previous: 0, Current: 2, At: 1000 * time.Millisecond},
		{Previous: 2, Current: 3, At: 10000 * time.Millisecond},
	}, tester.Commits())
}

func TestAutoplay_RepeatedInteractionKeepsOneResumeTimer(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(4), AutoScroll: true})

	tester.ElapseTo(1 * time.Second)
	tester.Carousel.Input().Next()
	tester.ElapseTo(2 * time.Second)
	tester.Carousel.Input().Next()

	st := tester.Carousel.Autoplay()
	assert.Equal(t, carousel.PhasePaused, st.Phase)
	assert.True(t, st.ResumeArmed)
	assert.False(t, st.TickArmed)
	assert.Equal(t, []time.Duration{6 * time.Second}, tester.Clock().Deadlines())

	tester.ElapseTo(7999 * time.Millisecond)
	assert.Equal(t, carousel.PhasePaused, tester.Carousel.Autoplay().Phase)
	tester.ElapseTo(8 * time.Second)
	assert.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)
	assert.Equal(t, 1, tester.Clock().PendingTimers())
}

func TestAutoplay_ProgrammaticAdvanceDoesNotPause(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(4), AutoScroll: true})

	tester.ElapseTo(time.Second)
	tester.Carousel.Advance(+1)
	assert.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)

	tester.ElapseTo(3 * time.Second)
	assert.Equal(t, 2, tester.Carousel.State().CurrentIndex)
}

func TestAutoplay_PauseHoldsUntilResume(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(4), AutoScroll: true})

	tester.Carousel.PauseAutoplay()
	st := tester.Carousel.Autoplay()
	assert.True(t, st.Held)
	assert.False(t, st.TickArmed)
	assert.False(t, st.ResumeArmed)

	tester.Carousel.Input().Next()
	assert.False(t, tester.Carousel.Autoplay().ResumeArmed, "interaction must not resume a held scheduler")

	tester.Elapse(time.Minute)
	require.Len(t, tester.Commits(), 1)

	tester.Carousel.ResumeAutoplay()
	assert.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)
	tester.Elapse(3 * time.Second)
	assert.Equal(t, 2, tester.Carousel.State().CurrentIndex)
}

func TestAutoplay_ResumeWithoutAutoScrollIsNoOp(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3)})

	tester.Carousel.ResumeAutoplay()
	tester.Elapse(10 * time.Second)

	assert.Equal(t, carousel.PhaseIdle, tester.Carousel.Autoplay().Phase)
	assert.Empty(t, tester.Commits())
}

func TestAutoplay_DisableDuringCooldown(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3), AutoScroll: true})

	tester.Carousel.Input().Next()
	require.True(t, tester.Carousel.Autoplay().ResumeArmed)

	tester.Carousel.SetAutoScroll(false)
	assert.Equal(t, carousel.PhaseIdle, tester.Carousel.Autoplay().Phase)
	assert.Zero(t, tester.Clock().PendingTimers())

	tester.Elapse(time.Minute)
	assert.Len(t, tester.Commits(), 1)

	tester.Carousel.SetAutoScroll(true)
	tester.Elapse(3 * time.Second)
	assert.Len(t, tester.Commits(), 2)
}

func TestAutoplay_NonPositiveIntervalsUseDefaults(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:            images(3),
		AutoScroll:        true,
		TickInterval:      -time.Second,
		ResumeDelay:       0,
		AnimationDuration: -1,
	})

	cfg := tester.Carousel.Config()
	assert.Equal(t, carousel.DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, carousel.DefaultResumeDelay, cfg.ResumeDelay)
	assert.Equal(t, carousel.DefaultAnimationDuration, cfg.AnimationDuration)
	assert.Equal(t, []time.Duration{3 * time.Second}, tester.Clock().Deadlines())
}

func TestOverlay_CoalescesToLatestTarget(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:            images(5),
		Mode:              carousel.OverlayDoubleBuffer,
		AnimationDuration: 300 * time.Millisecond,
	})

	require.True(t, tester.Carousel.Input().SelectThumbnail(2))
	st := tester.Carousel.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Equal(t, 2, st.NextIndex)
	assert.True(t, st.Transitioning)

	tester.ElapseTo(100 * time.Millisecond)
	require.True(t, tester.Carousel.Input().SelectThumbnail(4))
	assert.Equal(t, 1, tester.Clock().PendingTimers(), "superseded commit timer must be cancelled")

	tester.ElapseTo(300 * time.Millisecond)
	assert.Empty(t, tester.Commits(), "first transition must not commit")

	tester.ElapseTo(400 * time.Millisecond)
	assert.Equal(t, []carouseltest.Commit{{Previous: 0, Current: 4, At: 400 * time.Millisecond}}, tester.Commits())
	for _, f := range tester.Frames() {
		assert.NotEqual(t, 2, f.State.CurrentIndex, "slide 2 must never become current")
	}

	final := tester.Carousel.State()
	assert.Equal(t, carousel.State{CurrentIndex: 4, NextIndex: 4, Mode: carousel.OverlayDoubleBuffer}, final)
}

func TestOverlay_FramesShowBothSlides(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images: images(3),
		Mode:   carousel.OverlayDoubleBuffer,
	})
	tester.Reset()

	tester.Carousel.JumpTo(1)
	f := tester.LastFrame()
	assert.Equal(t, "Slide 0", f.Current.Title)
	assert.Equal(t, "Slide 1", f.Next.Title)
	require.NotNil(t, f.Transition)
	assert.Equal(t, 300*time.Millisecond, f.Transition.Duration)
	assert.False(t, f.Transition.Done(f.Now))

	tester.Elapse(300 * time.Millisecond)
	f = tester.LastFrame()
	assert.Equal(t, "Slide 1", f.Current.Title)
	assert.False(t, f.State.Transitioning)
	assert.True(t, f.Transition.Done(f.Now))
}

func TestOverlay_RapidNextPressesAccumulate(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images: images(5),
		Mode:   carousel.OverlayDoubleBuffer,
	})

	tester.Carousel.Input().Next()
	tester.Elapse(50 * time.Millisecond)
	tester.Carousel.Input().Next()
	assert.Equal(t, 2, tester.Carousel.State().NextIndex)

	tester.Elapse(time.Second)
	assert.Equal(t, []carouseltest.Commit{{Previous: 0, Current: 2, At: 350 * time.Millisecond}}, tester.Commits())
}

func TestOverlay_JumpBackToCurrentSettles(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images: images(3),
		Mode:   carousel.OverlayDoubleBuffer,
	})

	tester.Carousel.JumpTo(2)
	require.True(t, tester.Carousel.State().Transitioning)
	require.True(t, tester.Carousel.JumpTo(0))

	st := tester.Carousel.State()
	assert.False(t, st.Transitioning)
	assert.Equal(t, 0, st.NextIndex)
	assert.Zero(t, tester.Clock().PendingTimers())

	tester.Elapse(time.Second)
	assert.Empty(t, tester.Commits())
}

func TestOverlay_AutoplayCommitsAfterDuration(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:          images(3),
		IsOverlaySlider: true,
		AutoScroll:      true,
	})
	require.Equal(t, carousel.OverlayDoubleBuffer, tester.Carousel.State().Mode)

	tester.ElapseTo(3 * time.Second)
	assert.Equal(t, 1, tester.Carousel.State().NextIndex)
	assert.Equal(t, 0, tester.Carousel.State().CurrentIndex)

	tester.ElapseTo(3300 * time.Millisecond)
	assert.Equal(t, 1, tester.Carousel.State().CurrentIndex)

	tester.ElapseTo(6300 * time.Millisecond)
	assert.Equal(t, 2, tester.Carousel.State().CurrentIndex)
}

func TestOverlay_LongAnimationStillCommits(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:            images(5),
		Mode:              carousel.OverlayDoubleBuffer,
		AutoScroll:        true,
		AnimationDuration: 5 * time.Second,
		TickInterval:      3 * time.Second,
	})

	// The tick at 6s lands mid-transition and is skipped.
	tester.ElapseTo(6 * time.Second)
	assert.Equal(t, carousel.State{CurrentIndex: 0, NextIndex: 1, Transitioning: true, Mode: carousel.OverlayDoubleBuffer}, tester.Carousel.State())

	tester.ElapseTo(8 * time.Second)
	require.Equal(t, []carouseltest.Commit{{Previous: 0, Current: 1, At: 8 * time.Second}}, tester.Commits())

	tester.ElapseTo(60 * time.Second)
	commits := tester.Commits()
	require.Len(t, commits, 9)
	for i, c := range commits {
		assert.Equal(t, i%5, c.Previous)
		assert.Equal(t, (i+1)%5, c.Current)
		assert.Equal(t, time.Duration(8+6*i)*time.Second, c.At)
	}
	assert.Equal(t, 4, tester.Carousel.State().CurrentIndex)
}

func TestCrossfade_CommitsImmediatelyWithAdvisoryDuration(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:            images(3),
		Mode:              carousel.Crossfade,
		AnimationDuration: 450 * time.Millisecond,
	})

	tester.Carousel.JumpTo(2)

	st := tester.Carousel.State()
	assert.Equal(t, 2, st.CurrentIndex)
	assert.Equal(t, 2, st.NextIndex)
	assert.False(t, st.Transitioning)
	assert.Zero(t, tester.Clock().PendingTimers())

	tr := tester.LastFrame().Transition
	require.NotNil(t, tr)
	assert.Equal(t, carousel.Transition{
		From:      0,
		To:        2,
		Mode:      carousel.Crossfade,
		Duration:  450 * time.Millisecond,
		StartedAt: tester.Clock().Now(),
	}, *tr)
}

func TestContinuousScroll_NoIntermediateState(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(4)})
	tester.Reset()

	tester.Carousel.JumpTo(3)

	frames := tester.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, 3, frames[0].State.CurrentIndex)
	assert.Equal(t, 3, frames[0].State.NextIndex)
	assert.Zero(t, frames[0].Transition.Duration)
}

func TestNavigation_DragEnd(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(5), AutoScroll: true})

	assert.True(t, tester.Carousel.Input().DragEnd(260, 100))
	assert.Equal(t, 3, tester.Carousel.State().CurrentIndex)
	assert.Equal(t, carousel.PhasePaused, tester.Carousel.Autoplay().Phase)

	assert.True(t, tester.Carousel.Input().DragEnd(9000, 100))
	assert.Equal(t, 4, tester.Carousel.State().CurrentIndex)

	assert.False(t, tester.Carousel.Input().DragEnd(420, 100), "snap back to the same page")
	assert.False(t, tester.Carousel.Input().DragEnd(100, 0))
}

func TestNavigation_DragEndIgnoredOutsideScrollMode(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(5), Mode: carousel.Crossfade})

	assert.False(t, tester.Carousel.Input().DragEnd(260, 100))
	assert.Equal(t, 0, tester.Carousel.State().CurrentIndex)
}

func TestNavigation_OutOfRangeThumbnailIgnored(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3), AutoScroll: true})

	assert.False(t, tester.Carousel.Input().SelectThumbnail(3))
	assert.False(t, tester.Carousel.Input().SelectThumbnail(-1))
	assert.Equal(t, carousel.PhaseRunning, tester.Carousel.Autoplay().Phase)
	assert.Equal(t, 0, tester.Carousel.State().CurrentIndex)
}

func TestNavigation_PrevWraps(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3)})

	assert.Equal(t, 2, tester.Carousel.Input().Prev())
	assert.Equal(t, 1, tester.Carousel.Input().Prev())
	assert.Equal(t, 2, tester.Carousel.Input().Next())
}

func TestDispose_CancelsEverything(t *testing.T) {
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:     images(4),
		AutoScroll: true,
		Mode:       carousel.OverlayDoubleBuffer,
	})
	tester.Carousel.Input().Next()
	require.Equal(t, 2, tester.Clock().PendingTimers())

	tester.Carousel.Dispose()
	tester.Carousel.Dispose()
	assert.Zero(t, tester.Clock().PendingTimers())

	tester.Reset()
	tester.Carousel.Advance(+1)
	tester.Carousel.JumpTo(3)
	tester.Carousel.ResumeAutoplay()
	tester.Carousel.SetAutoScroll(true)
	tester.Elapse(time.Minute)

	assert.Empty(t, tester.Frames())
	assert.Empty(t, tester.Commits())
}

// queuedClock hands out timers whose Stop always fails, as if the callback
// had already fired and been queued on the owner loop.
type queuedClock struct {
	now       time.Time
	callbacks []func()
}

func (c *queuedClock) Now() time.Time { return c.now }

func (c *queuedClock) AfterFunc(_ time.Duration, f func()) animation.Timer {
	c.callbacks = append(c.callbacks, f)
	return lateTimer{}
}

type lateTimer struct{}

func (lateTimer) Stop() bool { return false }

func TestDispose_QueuedCallbacksAreInert(t *testing.T) {
	clk := &queuedClock{now: time.Unix(0, 0)}
	commits := 0
	c := carousel.New(carousel.Config{
		Images:     images(3),
		AutoScroll: true,
		Mode:       carousel.OverlayDoubleBuffer,
	}, carousel.WithClock(clk), carousel.WithOnIndexChanged(func(int, int) { commits++ }))

	c.Input().Next()
	require.Len(t, clk.callbacks, 3, "tick, resume and commit timers")

	c.Dispose()
	for _, cb := range clk.callbacks {
		cb()
	}

	assert.Zero(t, commits)
	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.Equal(t, carousel.PhaseIdle, c.Autoplay().Phase)
}

func TestSupersededCallbacksAreInert(t *testing.T) {
	clk := &queuedClock{now: time.Unix(0, 0)}
	c := carousel.New(carousel.Config{Images: images(5), Mode: carousel.OverlayDoubleBuffer}, carousel.WithClock(clk))
	defer c.Dispose()

	c.JumpTo(2)
	c.JumpTo(4)
	require.Len(t, clk.callbacks, 2)

	// The first timer was superseded; firing it must not commit slide 4 early
	// or commit slide 2.
	clk.callbacks[0]()
	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.True(t, c.State().Transitioning)

	clk.callbacks[1]()
	assert.Equal(t, 4, c.State().CurrentIndex)
}

type captureHandler struct {
	errs   []*errors.CarouselError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.CarouselError) { h.errs = append(h.errs, err) }

func (h *captureHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func TestRendererPanicIsRecovered(t *testing.T) {
	h := &captureHandler{}
	prev := errors.SetHandler(h)
	defer errors.SetHandler(prev)

	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3)},
		carousel.WithRenderer(carousel.RendererFunc(func(carousel.Frame) { panic("renderer exploded") })))

	tester.Carousel.Advance(+1)

	assert.Equal(t, 1, tester.Carousel.State().CurrentIndex)
	require.NotEmpty(t, h.panics)
	assert.Equal(t, "carousel.render", h.panics[0].Op)
	assert.Len(t, tester.Commits(), 1)
}

func TestCarousel_CopiesStyleOptions(t *testing.T) {
	style := map[string]string{"controls_color": "#ffffff"}
	cfg := carousel.DefaultConfig()
	cfg.Images = images(2)
	cfg.Style = style
	cfg.Animations.Image = "ease-in-out"
	tester := carouseltest.NewCarouselTester(t, cfg)

	style["controls_color"] = "#000000"
	opts := tester.LastFrame().Options
	assert.Equal(t, "#ffffff", opts.Style["controls_color"])
	assert.Equal(t, "ease-in-out", opts.Animations.Image)
	assert.True(t, opts.ShowThumbnails)
	assert.NotEmpty(t, tester.Carousel.ID())
}

type recordingMetrics struct {
	requested    int
	committed    int
	ticks        int
	interactions []carousel.Trigger
}

func (m *recordingMetrics) TransitionRequested(carousel.TransitionMode) { m.requested++ }
func (m *recordingMetrics) Committed(carousel.TransitionMode)           { m.committed++ }
func (m *recordingMetrics) AutoplayTick()                               { m.ticks++ }
func (m *recordingMetrics) Interaction(t carousel.Trigger)              { m.interactions = append(m.interactions, t) }

func TestMetrics_ReportsEvents(t *testing.T) {
	m := &recordingMetrics{}
	tester := carouseltest.NewCarouselTester(t, carousel.Config{
		Images:     images(5),
		AutoScroll: true,
		Mode:       carousel.OverlayDoubleBuffer,
	}, carousel.WithMetrics(m))

	in := tester.Carousel.Input()
	in.Next()
	in.Next()
	in.SelectThumbnail(7)
	in.SelectThumbnail(4)
	tester.Elapse(300 * time.Millisecond)

	assert.Equal(t, []carousel.Trigger{carousel.TriggerNext, carousel.TriggerNext, carousel.TriggerThumbnail}, m.interactions)
	assert.Equal(t, 3, m.requested, "every accepted request reaches the coordinator")
	assert.Equal(t, 1, m.committed, "overlay requests coalesce into one commit")

	// Cooldown ends at 6s, the first autoplay tick lands at 9s.
	tester.ElapseTo(9*time.Second + 300*time.Millisecond)
	assert.Equal(t, 1, m.ticks)
	assert.Equal(t, 2, m.committed)
}

func TestMetrics_DragTrigger(t *testing.T) {
	m := &recordingMetrics{}
	tester := carouseltest.NewCarouselTester(t, carousel.Config{Images: images(3)}, carousel.WithMetrics(m))

	require.True(t, tester.Carousel.Input().DragEnd(210, 100))
	assert.Equal(t, []carousel.Trigger{carousel.TriggerDrag}, m.interactions)
	assert.Equal(t, 1, m.committed)
}

func TestScheduler_TickPanicKeepsAutoplayRunning(t *testing.T) {
	h := &captureHandler{}
	prev := errors.SetHandler(h)
	defer errors.SetHandler(prev)

	clk := carouseltest.NewFakeClock()
	ticks := 0
	s := carousel.NewAutoScrollScheduler(clk, 3*time.Second, 6*time.Second, func() {
		ticks++
		panic("tick exploded")
	})
	defer s.Dispose()
	s.Start()

	clk.Advance(3 * time.Second)
	assert.Equal(t, 1, ticks)
	assert.Equal(t, carousel.SchedulerState{Phase: carousel.PhaseRunning, TickArmed: true}, s.State())

	clk.Advance(6 * time.Second)
	assert.Equal(t, 3, ticks)

	require.Len(t, h.panics, 3)
	assert.Equal(t, "carousel.AutoScrollScheduler.tick", h.panics[0].Op)
	require.Len(t, h.errs, 3)
	assert.Equal(t, errors.KindTimer, h.errs[0].Kind)
	assert.Equal(t, "carousel.AutoScrollScheduler.tick", h.errs[0].Op)
}
