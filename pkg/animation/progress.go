package animation

import "time"

// Progress returns the eased progress of a transition that started at start
// and runs for duration, sampled at now. The result is clamped to [0, 1].
// A non-positive duration is reported as complete. A nil curve is linear.
func Progress(start, now time.Time, duration time.Duration, curve Curve) float64 {
	if duration <= 0 {
		return 1
	}
	linear := clampUnit(float64(now.Sub(start)) / float64(duration))
	if curve == nil {
		return linear
	}
	return curve(linear)
}
