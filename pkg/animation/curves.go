package animation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve transforms linear progress t in [0, 1] into eased progress.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to create custom curves matching CSS cubic-bezier().
// Renderers look curves up by name with [ParseCurve].
type Curve func(float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Use for slides leaving the frame.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Use for slides entering the frame.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

var namedCurves = map[string]Curve{
	"linear":      LinearCurve,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseCurve resolves a curve by its CSS-style name ("linear", "ease",
// "ease-in", "ease-out", "ease-in-out"). Matching ignores case and treats
// underscores and camel case ("easeInOut") like hyphens. An empty name
// resolves to [LinearCurve].
func ParseCurve(name string) (Curve, error) {
	key := normalizeCurveName(name)
	if key == "" {
		return LinearCurve, nil
	}
	if c, ok := namedCurves[key]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown curve %q (want one of %s)", name, strings.Join(CurveNames(), ", "))
}

// CurveNames lists the names accepted by ParseCurve in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeCurveName(name string) string {
	var sb strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '_' || r == ' ' || r == '-':
			sb.WriteByte('-')
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
			prevLower = false
		default:
			sb.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z'
		}
	}
	return sb.String()
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection keeps the solution inside [0,1] when Newton stalls.
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
