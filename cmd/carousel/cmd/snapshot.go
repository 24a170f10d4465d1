package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/rendering"
	carouseltest "github.com/go-drift/carousel/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Run a scripted session and write PNG frames",
		Long: `Run a scripted session against a simulated clock.

Each step is applied in order and a frame is captured after it. Frames are
written as PNG files to --out (when given) and as text to stdout.

Steps:
  next, prev        Press the next/previous control
  thumb:N           Select thumbnail N (1-based)
  drag:OFFSET       End a drag at horizontal OFFSET pixels (scroll mode)
  jump:N            Jump to slide N (1-based) without pausing autoplay
  wait:DURATION     Let DURATION pass (e.g. 300ms, 3s, or 250 for ms)
  pause, resume     Hold or resume autoplay
  autoplay:on|off   Enable or disable autoplay

Flags:
  --out DIR         Write frame-NNN.png files to DIR
  --width N         Frame width in pixels (default 480)
  --height N        Frame height in pixels (default 320)
  --step DURATION   Capture intermediate frames every DURATION during waits
  --quiet           Do not print text frames`,
		Usage: "carousel snapshot [--out DIR] [--width N] [--height N] [--step DURATION] <step>...",
		Run:   runSnapshot,
	})
}

// StepKind identifies a scripted action.
type StepKind int

const (
	StepNext StepKind = iota
	StepPrev
	StepThumb
	StepDrag
	StepJump
	StepWait
	StepPause
	StepResume
	StepAutoplay
)

// Step is one parsed script entry.
type Step struct {
	Kind   StepKind
	Raw    string
	Index  int
	Offset float64
	Wait   time.Duration
	On     bool
}

// ParseStep parses a single script entry.
func ParseStep(s string) (Step, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.ToLower(name)
	step := Step{Raw: s}
	needArg := func() error {
		if !hasArg || arg == "" {
			return fmt.Errorf("step %q requires an argument", s)
		}
		return nil
	}
	switch name {
	case "next":
		step.Kind = StepNext
	case "prev":
		step.Kind = StepPrev
	case "pause":
		step.Kind = StepPause
	case "resume":
		step.Kind = StepResume
	case "thumb", "jump":
		if err := needArg(); err != nil {
			return step, err
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return step, fmt.Errorf("step %q: invalid slide number: %w", s, err)
		}
		step.Kind = StepThumb
		if name == "jump" {
			step.Kind = StepJump
		}
		step.Index = n - 1
	case "drag":
		if err := needArg(); err != nil {
			return step, err
		}
		off, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return step, fmt.Errorf("step %q: invalid offset: %w", s, err)
		}
		step.Kind = StepDrag
		step.Offset = off
	case "wait":
		if err := needArg(); err != nil {
			return step, err
		}
		d, err := config.ParseDuration(arg)
		if err != nil {
			return step, fmt.Errorf("step %q: %w", s, err)
		}
		if d < 0 {
			return step, fmt.Errorf("step %q: negative duration", s)
		}
		step.Kind = StepWait
		step.Wait = d
	case "autoplay":
		if err := needArg(); err != nil {
			return step, err
		}
		switch strings.ToLower(arg) {
		case "on", "true":
			step.On = true
		case "off", "false":
		default:
			return step, fmt.Errorf("step %q: want on or off", s)
		}
		step.Kind = StepAutoplay
	default:
		return step, fmt.Errorf("unknown step %q", s)
	}
	return step, nil
}

// ParseScript parses every entry of a script.
func ParseScript(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for _, a := range args {
		st, err := ParseStep(a)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

type snapshotOptions struct {
	outDir string
	width  int
	height int
	step   time.Duration
	quiet  bool
}

func parseSnapshotFlags(args []string) (snapshotOptions, []string, error) {
	opts := snapshotOptions{width: 480, height: 320}
	var rest []string
	intFlag := func(name, value string) (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%s requires a positive integer", name)
		}
		return n, nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, inline := strings.Cut(arg, "=")
		if !strings.HasPrefix(name, "--") {
			rest = append(rest, arg)
			continue
		}
		if name == "--quiet" {
			opts.quiet = true
			continue
		}
		if !inline {
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		var err error
		switch name {
		case "--out":
			opts.outDir = value
		case "--width":
			opts.width, err = intFlag(name, value)
		case "--height":
			opts.height, err = intFlag(name, value)
		case "--step":
			opts.step, err = config.ParseDuration(value)
			if err == nil && opts.step <= 0 {
				err = fmt.Errorf("--step requires a positive duration")
			}
		default:
			return opts, nil, fmt.Errorf("unknown flag: %s", name)
		}
		if err != nil {
			return opts, nil, err
		}
	}
	return opts, rest, nil
}

func runSnapshot(args []string) error {
	opts, rest, err := parseSnapshotFlags(args)
	if err != nil {
		return err
	}
	steps, err := ParseScript(rest)
	if err != nil {
		return err
	}
	res, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.outDir, err)
		}
	}
	var text io.Writer = os.Stdout
	if opts.quiet {
		text = nil
	}
	s := newSession(res.Config, opts, text)
	defer s.close()
	return s.play(steps)
}

// session runs a script against a simulated clock.
type session struct {
	c      *carousel.Carousel
	clock  *carouseltest.FakeClock
	raster *rendering.RasterRenderer
	text   *rendering.TextRenderer
	opts   snapshotOptions
	start  time.Time
	frames int
	saved  []string
}

func newSession(cfg carousel.Config, opts snapshotOptions, out io.Writer) *session {
	s := &session{
		clock:  carouseltest.NewFakeClock(),
		raster: rendering.NewRasterRenderer(opts.width, opts.height),
		text:   &rendering.TextRenderer{ScrollDuration: cfg.AnimationDuration},
		opts:   opts,
	}
	s.raster.ScrollDuration = cfg.AnimationDuration
	s.text.Out = out
	s.start = s.clock.Now()
	s.c = carousel.New(cfg,
		carousel.WithClock(s.clock),
		carousel.WithOnIndexChanged(func(previous, current int) {
			slog.Debug("index changed", slog.Int("previous", previous), slog.Int("current", current))
		}),
	)
	return s
}

func (s *session) close() { s.c.Dispose() }

func (s *session) play(steps []Step) error {
	if err := s.capture("start"); err != nil {
		return err
	}
	for _, st := range steps {
		if err := s.apply(st); err != nil {
			return err
		}
		if err := s.capture(st.Raw); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) apply(st Step) error {
	in := s.c.Input()
	switch st.Kind {
	case StepNext:
		in.Next()
	case StepPrev:
		in.Prev()
	case StepThumb:
		in.SelectThumbnail(st.Index)
	case StepDrag:
		in.DragEnd(st.Offset, float64(s.opts.width))
	case StepJump:
		s.c.JumpTo(st.Index)
	case StepPause:
		s.c.PauseAutoplay()
	case StepResume:
		s.c.ResumeAutoplay()
	case StepAutoplay:
		s.c.SetAutoScroll(st.On)
	case StepWait:
		return s.wait(st)
	}
	return nil
}

func (s *session) wait(st Step) error {
	if s.opts.step <= 0 {
		s.clock.Advance(st.Wait)
		return nil
	}
	remaining := st.Wait
	for remaining > s.opts.step {
		s.clock.Advance(s.opts.step)
		remaining -= s.opts.step
		if err := s.capture(st.Raw); err != nil {
			return err
		}
	}
	s.clock.Advance(remaining)
	return nil
}

func (s *session) capture(label string) error {
	f := s.c.Frame()
	if s.text.Out != nil {
		fmt.Fprintf(s.text.Out, "--- %s @ %s\n", label, s.clock.Now().Sub(s.start))
		s.text.Render(f)
	}
	s.raster.Render(f)
	if s.opts.outDir != "" {
		path := filepath.Join(s.opts.outDir, fmt.Sprintf("frame-%03d.png", s.frames))
		if err := s.raster.SavePNG(path); err != nil {
			return err
		}
		s.saved = append(s.saved, path)
	}
	s.frames++
	return nil
}
