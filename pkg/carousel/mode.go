package carousel

import (
	"fmt"
	"strings"
)

// TransitionMode selects how an index change is presented. It is fixed when
// the carousel is created.
type TransitionMode int

const (
	// ContinuousScroll commits immediately; the renderer scrolls to the new page.
	ContinuousScroll TransitionMode = iota
	// Crossfade commits immediately and reports an advisory fade duration.
	Crossfade
	// OverlayDoubleBuffer keeps the current slide and draws the next one over
	// it until the transition duration elapses, then commits.
	OverlayDoubleBuffer
)

// String returns the configuration name of the mode.
func (m TransitionMode) String() string {
	switch m {
	case ContinuousScroll:
		return "scroll"
	case Crossfade:
		return "crossfade"
	case OverlayDoubleBuffer:
		return "overlay"
	default:
		return fmt.Sprintf("TransitionMode(%d)", int(m))
	}
}

// ParseMode resolves a mode name. It accepts "scroll", "crossfade" and
// "overlay", plus the long forms "continuous-scroll" and
// "overlay-double-buffer". Matching ignores case.
func ParseMode(name string) (TransitionMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scroll", "continuous-scroll", "continuous_scroll":
		return ContinuousScroll, nil
	case "crossfade", "fade":
		return Crossfade, nil
	case "overlay", "overlay-double-buffer", "overlay_double_buffer":
		return OverlayDoubleBuffer, nil
	default:
		return ContinuousScroll, fmt.Errorf("unknown transition mode %q", name)
	}
}
