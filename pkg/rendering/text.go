package rendering

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/carousel"
)

// DefaultScrollDuration is how long renderers animate a ContinuousScroll
// page change. The core commits scroll changes at once and leaves the
// motion to the renderer.
const DefaultScrollDuration = 300 * time.Millisecond

// TextRenderer draws frames as plain text, one block per frame.
//
//	[crossfade] 3/5  autoplay: running
//	Slide 2 -> Slide 3 (40%)
//	  Harbour at dusk
//	  Taken from the pier
//	  https://example.com/3.jpg
//	  <  prev                next  >
//	   1   2  [3]  4   5
type TextRenderer struct {
	// Out receives each rendered frame. Nil keeps frames in memory only.
	Out io.Writer
	// ScrollDuration is used to report ContinuousScroll progress.
	// Zero means DefaultScrollDuration.
	ScrollDuration time.Duration
	// Width is the column count for the controls row. Zero means 40.
	Width int

	last string
}

// Render implements carousel.Renderer.
func (r *TextRenderer) Render(f carousel.Frame) {
	r.last = r.Format(f)
	if r.Out != nil {
		io.WriteString(r.Out, r.last)
	}
}

// String returns the most recently rendered frame.
func (r *TextRenderer) String() string { return r.last }

// Format renders f without recording it.
func (r *TextRenderer) Format(f carousel.Frame) string {
	var sb strings.Builder
	if f.State.Empty {
		fmt.Fprintf(&sb, "[%s] no slides\n", f.State.Mode)
		return sb.String()
	}

	n := f.Slides.Len()
	fmt.Fprintf(&sb, "[%s] %d/%d", f.State.Mode, f.State.CurrentIndex+1, n)
	if status := autoplayStatus(f.Autoplay); status != "" {
		fmt.Fprintf(&sb, "  autoplay: %s", status)
	}
	sb.WriteByte('\n')

	if line := r.transitionLine(f); line != "" {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	slide := f.Current
	if f.Options.ShowOverlayText {
		if slide.Title != "" {
			fmt.Fprintf(&sb, "  %s\n", slide.Title)
		}
		if slide.Subtitle != "" {
			fmt.Fprintf(&sb, "  %s\n", slide.Subtitle)
		}
	}
	fmt.Fprintf(&sb, "  %s\n", slide.ImageURL)

	if f.Options.ShowControls {
		width := r.Width
		if width <= 0 {
			width = 40
		}
		gap := max(width-len("<  prev")-len("next  >"), 1)
		fmt.Fprintf(&sb, "  <  prev%snext  >\n", strings.Repeat(" ", gap))
	}

	if f.Options.ShowThumbnails {
		sb.WriteString(" ")
		for i := range n {
			switch {
			case i == f.State.CurrentIndex:
				fmt.Fprintf(&sb, " [%d]", i+1)
			case f.State.Transitioning && i == f.State.NextIndex:
				fmt.Fprintf(&sb, " (%d)", i+1)
			default:
				fmt.Fprintf(&sb, "  %d ", i+1)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *TextRenderer) transitionLine(f carousel.Frame) string {
	tr := f.Transition
	if tr == nil {
		return ""
	}
	duration := tr.Duration
	if tr.Mode == carousel.ContinuousScroll {
		duration = r.ScrollDuration
		if duration <= 0 {
			duration = DefaultScrollDuration
		}
	}
	if !f.Now.Before(tr.StartedAt.Add(duration)) {
		return ""
	}
	from, _ := f.Slides.At(tr.From)
	to, _ := f.Slides.At(tr.To)
	p := animation.Progress(tr.StartedAt, f.Now, duration, curveFor(f.Options.Animations.Image))
	return fmt.Sprintf("%s -> %s (%d%%)", slideLabel(from, tr.From), slideLabel(to, tr.To), int(p*100))
}

func slideLabel(s carousel.Slide, index int) string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("#%d", index+1)
}

func autoplayStatus(s carousel.SchedulerState) string {
	switch s.Phase {
	case carousel.PhaseRunning:
		return "running"
	case carousel.PhasePaused:
		if s.Held {
			return "held"
		}
		return "paused"
	default:
		return ""
	}
}

// curveFor resolves an animation name, falling back to linear.
func curveFor(name string) animation.Curve {
	c, err := animation.ParseCurve(name)
	if err != nil {
		return animation.LinearCurve
	}
	return c
}
