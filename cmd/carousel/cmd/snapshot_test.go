package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/carousel/pkg/carousel"
)

func fiveSlides() []carousel.Slide {
	slides := make([]carousel.Slide, 5)
	for i := range slides {
		slides[i] = carousel.Slide{ImageURL: "https://example.com/" + string(rune('a'+i)) + ".jpg", Title: "Slide " + string(rune('A'+i))}
	}
	return slides
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"next", Step{Kind: StepNext, Raw: "next"}},
		{"PREV", Step{Kind: StepPrev, Raw: "PREV"}},
		{"thumb:3", Step{Kind: StepThumb, Raw: "thumb:3", Index: 2}},
		{"jump:1", Step{Kind: StepJump, Raw: "jump:1", Index: 0}},
		{"drag:-120.5", Step{Kind: StepDrag, Raw: "drag:-120.5", Offset: -120.5}},
		{"wait:3s", Step{Kind: StepWait, Raw: "wait:3s", Wait: 3 * time.Second}},
		{"wait:250", Step{Kind: StepWait, Raw: "wait:250", Wait: 250 * time.Millisecond}},
		{"autoplay:on", Step{Kind: StepAutoplay, Raw: "autoplay:on", On: true}},
		{"autoplay:off", Step{Kind: StepAutoplay, Raw: "autoplay:off"}},
		{"pause", Step{Kind: StepPause, Raw: "pause"}},
		{"resume", Step{Kind: StepResume, Raw: "resume"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStep(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStepErrors(t *testing.T) {
	for _, in := range []string{"spin", "thumb", "thumb:x", "drag:", "wait:-1s", "wait:soon", "autoplay:maybe"} {
		_, err := ParseStep(in)
		assert.Error(t, err, in)
	}
}

func TestParseSnapshotFlags(t *testing.T) {
	opts, rest, err := parseSnapshotFlags([]string{"--out", "frames", "--width=200", "next", "--step", "100ms", "--quiet", "wait:1s"})
	require.NoError(t, err)
	assert.Equal(t, "frames", opts.outDir)
	assert.Equal(t, 200, opts.width)
	assert.Equal(t, 320, opts.height)
	assert.Equal(t, 100*time.Millisecond, opts.step)
	assert.True(t, opts.quiet)
	assert.Equal(t, []string{"next", "wait:1s"}, rest)

	_, _, err = parseSnapshotFlags([]string{"--bogus", "1"})
	assert.ErrorContains(t, err, "unknown flag")
	_, _, err = parseSnapshotFlags([]string{"--width", "0"})
	assert.Error(t, err)
	_, _, err = parseSnapshotFlags([]string{"--out"})
	assert.Error(t, err)
}

func TestSessionPlaysScript(t *testing.T) {
	cfg := carousel.DefaultConfig()
	cfg.Images = fiveSlides()
	cfg.AutoScroll = true

	dir := t.TempDir()
	var out strings.Builder
	s := newSession(cfg, snapshotOptions{outDir: dir, width: 120, height: 80}, &out)
	defer s.close()

	steps, err := ParseScript([]string{"next", "thumb:4", "wait:6s", "wait:3s"})
	require.NoError(t, err)
	require.NoError(t, s.play(steps))

	// Manual input at t=0 defers autoplay to 6s; the first tick lands at 9s.
	assert.Equal(t, 4, s.c.State().CurrentIndex)
	assert.Len(t, s.saved, 5)
	for _, path := range s.saved {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, filepath.Join(dir, "frame-000.png"), s.saved[0])
	assert.Contains(t, out.String(), "--- thumb:4")
	assert.Contains(t, out.String(), "4/5")
}

func TestSessionIntermediateFrames(t *testing.T) {
	cfg := carousel.DefaultConfig()
	cfg.Images = fiveSlides()
	cfg.Mode = carousel.Crossfade

	s := newSession(cfg, snapshotOptions{width: 60, height: 40, step: 100 * time.Millisecond}, nil)
	defer s.close()

	require.NoError(t, s.play([]Step{{Kind: StepNext, Raw: "next"}, {Kind: StepWait, Raw: "wait", Wait: 300 * time.Millisecond}}))
	// start, next, two intermediate frames, final wait frame
	assert.Equal(t, 5, s.frames)
	assert.Equal(t, 1, s.c.State().CurrentIndex)
	assert.False(t, s.c.State().Transitioning)
}
