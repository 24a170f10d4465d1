package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/cmd/carousel/internal/watch"
	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/metrics"
	"github.com/go-drift/carousel/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Interactive terminal preview",
		Long: `Run the carousel interactively in the terminal.

Keys:
  left/right, h/l   Previous/next slide
  1-9               Select thumbnail
  space             Pause or resume autoplay
  a                 Toggle autoplay
  q, ctrl+c         Quit

Flags:
  --width N         Column count for the controls row (default 48)
  --inline          Render inline instead of using the alternate screen
  --watch           Rebuild the carousel when the configuration file changes
  --metrics ADDR    Serve Prometheus metrics on ADDR (e.g. :9090)`,
		Usage: "carousel preview [--width N] [--inline] [--watch] [--metrics ADDR]",
		Run:   runPreview,
	})
}

const previewFrameInterval = 33 * time.Millisecond

// dispatchMsg carries a timer callback onto the program loop.
type dispatchMsg struct{ fn func() }

// animFrameMsg redraws an in-flight transition.
type animFrameMsg struct{}

// reloadMsg carries a re-read configuration.
type reloadMsg struct {
	res *config.Resolved
	err error
}

type previewModel struct {
	c        *carousel.Carousel
	build    func(carousel.Config) *carousel.Carousel
	text     *rendering.TextRenderer
	now      func() time.Time
	status   string
	ticking  bool
	quitting bool
}

func newPreviewModel(build func(carousel.Config) *carousel.Carousel, cfg carousel.Config, text *rendering.TextRenderer, now func() time.Time) previewModel {
	return previewModel{c: build(cfg), build: build, text: text, now: now}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKey(msg) {
			m.quitting = true
			m.c.Dispose()
			return m, tea.Quit
		}
	case dispatchMsg:
		if msg.fn != nil {
			msg.fn()
		}
	case animFrameMsg:
		m.ticking = false
	case reloadMsg:
		m = m.reload(msg)
	}
	return m.scheduleFrame()
}

// reload replaces the carousel with one built from the new configuration,
// keeping the current slide when it still exists. A failed load keeps the
// running carousel.
func (m previewModel) reload(msg reloadMsg) previewModel {
	if msg.err != nil {
		errors.Report(&errors.CarouselError{
			Op:       "preview.reload",
			Kind:     errors.KindConfig,
			Err:      msg.err,
			Carousel: m.c.ID(),
		})
		m.status = "reload failed: " + msg.err.Error()
		return m
	}
	current := m.c.State().CurrentIndex
	m.c.Dispose()
	m.c = m.build(msg.res.Config)
	if current > 0 {
		m.c.JumpTo(current)
	}
	m.text.ScrollDuration = msg.res.Config.AnimationDuration
	m.status = "reloaded " + msg.res.Path
	return m
}

// handleKey applies a key press and reports whether the program should quit.
func (m previewModel) handleKey(msg tea.KeyMsg) bool {
	in := m.c.Input()
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return true
	case "left", "h":
		in.Prev()
	case "right", "l":
		in.Next()
	case " ", "space":
		if m.c.Autoplay().Held {
			m.c.ResumeAutoplay()
		} else {
			m.c.PauseAutoplay()
		}
	case "a":
		m.c.SetAutoScroll(!m.c.Config().AutoScroll)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			in.SelectThumbnail(n - 1)
		}
	}
	return false
}

// scheduleFrame keeps redrawing while a transition is visible.
func (m previewModel) scheduleFrame() (tea.Model, tea.Cmd) {
	if m.ticking || m.quitting {
		return m, nil
	}
	tr := m.c.Frame().Transition
	if tr == nil {
		return m, nil
	}
	// Scroll commits at once; the renderer still eases the offset.
	if tr.Mode == carousel.ContinuousScroll && tr.Duration <= 0 {
		tr.Duration = m.text.ScrollDuration
		if tr.Duration <= 0 {
			tr.Duration = rendering.DefaultScrollDuration
		}
	}
	if tr.Done(m.now()) {
		return m, nil
	}
	m.ticking = true
	return m, tea.Tick(previewFrameInterval, func(time.Time) tea.Msg { return animFrameMsg{} })
}

func (m previewModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.text.Format(m.c.Frame()))
	sb.WriteString("\n←/→ navigate · 1-9 thumbnail · space pause · a autoplay · q quit\n")
	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	return sb.String()
}

func runPreview(args []string) error {
	width := 48
	inline := false
	watchConfig := false
	metricsAddr := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--width":
			if i+1 >= len(args) {
				return fmt.Errorf("--width requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return fmt.Errorf("--width requires a positive integer")
			}
			width = n
			i++
		case "--metrics":
			if i+1 >= len(args) {
				return fmt.Errorf("--metrics requires an address")
			}
			metricsAddr = args[i+1]
			i++
		case "--inline":
			inline = true
		case "--watch":
			watchConfig = true
		default:
			if strings.HasPrefix(arg, "--width=") {
				n, err := strconv.Atoi(strings.TrimPrefix(arg, "--width="))
				if err != nil || n <= 0 {
					return fmt.Errorf("--width requires a positive integer")
				}
				width = n
				continue
			}
			if strings.HasPrefix(arg, "--metrics=") {
				metricsAddr = strings.TrimPrefix(arg, "--metrics=")
				continue
			}
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	res, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := animation.NewSystemClock(nil)
	opts := []carousel.Option{carousel.WithClock(clock)}
	if metricsAddr != "" {
		reg := prom.NewRegistry()
		opts = append(opts, carousel.WithMetrics(metrics.NewPrometheusRecorder(reg)))
		stop := serveMetrics(metricsAddr, reg)
		defer stop()
	}
	build := func(cfg carousel.Config) *carousel.Carousel { return carousel.New(cfg, opts...) }

	cfg := res.Config
	autoplay := cfg.AutoScroll
	cfg.AutoScroll = false
	text := &rendering.TextRenderer{ScrollDuration: cfg.AnimationDuration, Width: width}
	model := newPreviewModel(build, cfg, text, clock.Now)

	var programOpts []tea.ProgramOption
	if !inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)
	animation.SetDispatch(clock, func(fn func()) { p.Send(dispatchMsg{fn: fn}) })

	// Autoplay starts only once timer callbacks are routed through the loop.
	model.c.SetAutoScroll(autoplay)

	if watchConfig {
		if res.Path == "" {
			return fmt.Errorf("--watch requires a configuration file")
		}
		cw, err := watch.NewConfigWatcher(res.Path, watch.DefaultDebounce, func() {
			next, err := loadConfig()
			p.Send(reloadMsg{res: next, err: err})
		})
		if err != nil {
			return err
		}
		defer cw.Close()
		go cw.Run(ctx)
	}

	final, err := p.Run()
	if fm, ok := final.(previewModel); ok {
		fm.c.Dispose()
	}
	return err
}

// serveMetrics starts an HTTP server for reg and returns its shutdown func.
func serveMetrics(addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", slog.String("addr", addr), slog.Any("error", err))
		}
	}()
	slog.Debug("serving metrics", slog.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
