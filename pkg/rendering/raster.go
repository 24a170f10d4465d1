package rendering

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
)

// Style keys read by RasterRenderer. Missing or malformed values fall back
// to the defaults.
const (
	StyleOverlayTextColor = "overlay_text_color"
	StyleControlsColor    = "controls_color"
	StyleBackgroundColor  = "background_color"
	StyleThumbnailBorder  = "thumbnail_border_color"
)

// RasterRenderer draws frames into an RGBA image. Slides are drawn as
// colored placeholders (the carousel never loads images) with the title,
// subtitle, controls and thumbnail strip on top:
//
//   - ContinuousScroll slides the strip from the old page to the new one
//     over ScrollDuration.
//   - Crossfade blends the outgoing slide into the incoming one.
//   - OverlayDoubleBuffer draws the next slide over the current one with
//     rising opacity until the commit.
type RasterRenderer struct {
	Width  int
	Height int
	// Palette colors slides by index. Nil means DefaultPalette.
	Palette []Color
	// ScrollDuration is the page-slide animation length. Zero means
	// DefaultScrollDuration.
	ScrollDuration time.Duration

	face font.Face
	last *image.RGBA
}

// NewRasterRenderer creates a renderer producing width x height frames.
func NewRasterRenderer(width, height int) *RasterRenderer {
	return &RasterRenderer{Width: width, Height: height, face: basicfont.Face7x13}
}

// Render implements carousel.Renderer.
func (r *RasterRenderer) Render(f carousel.Frame) {
	r.last = r.Draw(f)
}

// Image returns the most recently rendered frame, or nil.
func (r *RasterRenderer) Image() *image.RGBA { return r.last }

// WritePNG encodes the most recent frame.
func (r *RasterRenderer) WritePNG(w io.Writer) error {
	if r.last == nil {
		return &errors.CarouselError{Op: "rendering.RasterRenderer.WritePNG", Kind: errors.KindRender, Err: fmt.Errorf("no frame rendered")}
	}
	return png.Encode(w, r.last)
}

// SavePNG writes the most recent frame to path.
func (r *RasterRenderer) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.WritePNG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Draw renders f into a new image.
func (r *RasterRenderer) Draw(f carousel.Frame) *image.RGBA {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 320
	}
	if h <= 0 {
		h = 200
	}
	if r.face == nil {
		r.face = basicfont.Face7x13
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	style := f.Options.Style
	fill(img, img.Bounds(), StyleColor(style, StyleBackgroundColor, ColorBlack))

	if f.State.Empty {
		r.text(img, "no slides", w/2-len("no slides")*7/2, h/2, ColorWhite)
		return img
	}

	thumbH := 0
	if f.Options.ShowThumbnails {
		thumbH = max(h/6, 16)
	}
	stage := image.Rect(0, 0, w, h-thumbH)

	r.drawStage(img, stage, f)

	if f.Options.ShowOverlayText {
		textColor := StyleColor(style, StyleOverlayTextColor, ColorWhite)
		y := stage.Max.Y - 24
		if f.Current.Subtitle != "" {
			r.text(img, f.Current.Subtitle, 10, y+14, textColor)
		}
		r.text(img, f.Current.Title, 10, y, textColor)
	}
	if f.Options.ShowControls {
		ctl := StyleColor(style, StyleControlsColor, ColorWhite)
		mid := stage.Min.Y + stage.Dy()/2
		r.text(img, "<", 6, mid, ctl)
		r.text(img, ">", w-13, mid, ctl)
	}
	if thumbH > 0 {
		r.drawThumbnails(img, image.Rect(0, h-thumbH, w, h), f)
	}
	return img
}

func (r *RasterRenderer) drawStage(img *image.RGBA, stage image.Rectangle, f carousel.Frame) {
	cur := f.State.CurrentIndex
	tr := f.Transition
	curve := curveFor(f.Options.Animations.Image)

	switch f.State.Mode {
	case carousel.ContinuousScroll:
		pos := float64(cur)
		if tr != nil {
			d := r.ScrollDuration
			if d <= 0 {
				d = DefaultScrollDuration
			}
			p := animation.Progress(tr.StartedAt, f.Now, d, curve)
			pos = float64(tr.From) + float64(tr.To-tr.From)*p
		}
		for i := range f.Slides.Len() {
			x := int(math.Round((float64(i) - pos) * float64(stage.Dx())))
			rect := stage.Add(image.Pt(x, 0)).Intersect(stage)
			if !rect.Empty() {
				fill(img, rect, r.slideColor(i))
			}
		}
	case carousel.Crossfade:
		base := r.slideColor(cur)
		if tr != nil && !tr.Done(f.Now) {
			p := animation.Progress(tr.StartedAt, f.Now, tr.Duration, curve)
			base = Lerp(r.slideColor(tr.From), base, p)
		}
		fill(img, stage, base)
	case carousel.OverlayDoubleBuffer:
		fill(img, stage, r.slideColor(cur))
		if f.State.Transitioning && tr != nil {
			p := animation.Progress(tr.StartedAt, f.Now, tr.Duration, curve)
			over := r.slideColor(f.State.NextIndex).WithAlpha(uint8(p * maxByte))
			blend(img, stage, over)
		}
	}
}

func (r *RasterRenderer) drawThumbnails(img *image.RGBA, strip image.Rectangle, f carousel.Frame) {
	n := f.Slides.Len()
	if n == 0 {
		return
	}
	border := StyleColor(f.Options.Style, StyleThumbnailBorder, ColorWhite)
	pad := 4
	size := min(strip.Dy()-2*pad, (strip.Dx()-pad)/n-pad)
	if size <= 0 {
		return
	}
	x := strip.Min.X + pad
	for i := range n {
		cell := image.Rect(x, strip.Min.Y+pad, x+size, strip.Min.Y+pad+size)
		if i == f.State.CurrentIndex || (f.State.Transitioning && i == f.State.NextIndex) {
			fill(img, cell.Inset(-2), border)
		}
		fill(img, cell, r.slideColor(i))
		x += size + pad
	}
}

func (r *RasterRenderer) slideColor(i int) Color {
	palette := r.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if i < 0 {
		return ColorBlack
	}
	return palette[i%len(palette)]
}

func (r *RasterRenderer) text(img *image.RGBA, s string, x, y int, c Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fill(img *image.RGBA, rect image.Rectangle, c Color) {
	xdraw.Draw(img, rect, image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Src)
}

func blend(img *image.RGBA, rect image.Rectangle, c Color) {
	xdraw.Draw(img, rect, image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Over)
}
