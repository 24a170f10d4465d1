package carousel

import "time"

// Defaults applied to non-positive durations.
const (
	DefaultAnimationDuration = 300 * time.Millisecond
	DefaultTickInterval      = 3000 * time.Millisecond
	DefaultResumeDelay       = 6000 * time.Millisecond
)

// Config configures a Carousel.
//
// Config is explicit: a zero bool means off. Use [DefaultConfig] for the
// usual presentation (controls, thumbnails and overlay text shown).
// Durations are the exception: non-positive values are replaced with the
// documented defaults, so no zero or negative timer is ever armed.
type Config struct {
	// Images is the ordered slide collection. It may be empty.
	Images []Slide
	// AutoScroll enables periodic advancement.
	AutoScroll bool
	// ShowControls asks the renderer to draw prev/next controls.
	ShowControls bool
	// ShowThumbnails asks the renderer to draw thumbnail navigation.
	ShowThumbnails bool
	// ShowOverlayText asks the renderer to draw title and subtitle.
	ShowOverlayText bool
	// Mode selects the transition contract.
	Mode TransitionMode
	// IsOverlaySlider forces OverlayDoubleBuffer regardless of Mode.
	IsOverlaySlider bool
	// AnimationDuration is the transition duration. Default 300ms.
	AnimationDuration time.Duration
	// TickInterval is the autoplay interval. Default 3s.
	TickInterval time.Duration
	// ResumeDelay is the cooldown after a manual interaction. Default 6s.
	ResumeDelay time.Duration
	// Style is passed through to the renderer untouched.
	Style map[string]string
	// Animations names the easing per element, passed through to the renderer.
	Animations Animations
}

// DefaultConfig returns a Config with the standard presentation options on.
func DefaultConfig() Config {
	return Config{
		ShowControls:      true,
		ShowThumbnails:    true,
		ShowOverlayText:   true,
		AnimationDuration: DefaultAnimationDuration,
		TickInterval:      DefaultTickInterval,
		ResumeDelay:       DefaultResumeDelay,
	}
}

// ResolvedMode returns the transition mode after applying IsOverlaySlider.
func (c Config) ResolvedMode() TransitionMode {
	if c.IsOverlaySlider {
		return OverlayDoubleBuffer
	}
	return c.Mode
}

// withDefaults returns a copy of c with non-positive durations replaced.
func (c Config) withDefaults() Config {
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.ResumeDelay <= 0 {
		c.ResumeDelay = DefaultResumeDelay
	}
	c.Mode = c.ResolvedMode()
	return c
}

func (c Config) options() Options {
	var style map[string]string
	if len(c.Style) > 0 {
		style = make(map[string]string, len(c.Style))
		for k, v := range c.Style {
			style[k] = v
		}
	}
	return Options{
		ShowControls:    c.ShowControls,
		ShowThumbnails:  c.ShowThumbnails,
		ShowOverlayText: c.ShowOverlayText,
		Style:           style,
		Animations:      c.Animations,
	}
}
