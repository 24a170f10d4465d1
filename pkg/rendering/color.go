package rendering

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// WithAlpha returns a copy of the color with the given alpha (0-255).
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// NRGBA converts to a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

// Lerp interpolates from a to b by t in [0, 1], channel by channel.
func Lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(shift uint) uint8 {
		x := float64(uint8(a >> shift))
		y := float64(uint8(b >> shift))
		return uint8(x + (y-x)*t + 0.5)
	}
	return RGBA(mix(16), mix(8), mix(0), mix(24))
}

// ParseColor parses CSS hex notation: #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	// v is RRGGBBAA; rotate alpha to the top byte.
	return Color(uint32(v)>>8 | uint32(v)<<24), nil
}

// StyleColor looks key up in a style map and parses it, falling back to def
// when the key is missing or malformed.
func StyleColor(style map[string]string, key string, def Color) Color {
	raw, ok := style[key]
	if !ok {
		return def
	}
	c, err := ParseColor(raw)
	if err != nil {
		return def
	}
	return c
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)

// DefaultPalette colors slide placeholders by index.
var DefaultPalette = []Color{
	RGB(0x26, 0x46, 0x53),
	RGB(0x2A, 0x9D, 0x8F),
	RGB(0xE9, 0xC4, 0x6A),
	RGB(0xF4, 0xA2, 0x61),
	RGB(0xE7, 0x6F, 0x51),
}
