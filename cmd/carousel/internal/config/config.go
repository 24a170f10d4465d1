// Package config loads carousel.yaml and resolves it into a carousel.Config.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/errors"
)

// FileName is the configuration file looked up by FindConfig.
const FileName = "carousel.yaml"

// SupportedMajor is the configuration schema major version this build reads.
const SupportedMajor = "v1"

// Environment overrides, applied after the file.
const (
	EnvMode              = "CAROUSEL_MODE"
	EnvAutoScroll        = "CAROUSEL_AUTOSCROLL"
	EnvTickInterval      = "CAROUSEL_TICK_INTERVAL"
	EnvResumeDelay       = "CAROUSEL_RESUME_DELAY"
	EnvAnimationDuration = "CAROUSEL_ANIMATION_DURATION"
)

// File mirrors carousel.yaml.
type File struct {
	Version         string              `yaml:"version,omitempty"`
	Mode            string              `yaml:"mode,omitempty"`
	IsOverlaySlider bool                `yaml:"is_overlay_slider,omitempty"`
	AutoScroll      bool                `yaml:"autoscroll,omitempty"`
	ShowControls    *bool               `yaml:"show_controls,omitempty"`
	ShowThumbnails  *bool               `yaml:"show_thumbnails,omitempty"`
	ShowOverlayText *bool               `yaml:"show_overlay_text,omitempty"`
	Animation       Duration            `yaml:"animation_duration,omitempty"`
	TickInterval    Duration            `yaml:"tick_interval,omitempty"`
	ResumeDelay     Duration            `yaml:"resume_delay,omitempty"`
	Style           map[string]string   `yaml:"style,omitempty"`
	Animations      carousel.Animations `yaml:"animations,omitempty"`
	Slides          []carousel.Slide    `yaml:"slides"`
}

// Duration accepts either a Go duration string ("300ms", "3s") or a bare
// integer number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	v, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// ParseDuration parses a duration string or an integer millisecond count.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	// Path is the file that was read, empty when none was found.
	Path    string
	Version string
	Config  carousel.Config
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// LoadOptional reads path if it exists and returns an empty File otherwise.
func LoadOptional(path string) (*File, error) {
	f, err := Load(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	return f, nil
}

// LookupFunc looks an environment variable up.
type LookupFunc func(key string) (string, bool)

// Environment returns a LookupFunc that prefers the process environment
// and falls back to a .env file in dir, if one exists.
func Environment(dir string) (LookupFunc, error) {
	dotenv := map[string]string{}
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err == nil {
		dotenv, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// Resolve loads path (if present), applies env overrides and returns the
// carousel configuration. A nil env disables overrides.
func Resolve(path string, env LookupFunc) (*Resolved, error) {
	f, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	res := &Resolved{Version: f.Version}
	if _, statErr := os.Stat(path); statErr == nil {
		res.Path = path
	}

	if res.Version == "" {
		res.Version = SupportedMajor
	}
	if err := checkVersion(res.Version); err != nil {
		return nil, err
	}

	cfg := carousel.DefaultConfig()
	cfg.Images = f.Slides
	cfg.AutoScroll = f.AutoScroll
	cfg.IsOverlaySlider = f.IsOverlaySlider
	cfg.Style = f.Style
	cfg.Animations = f.Animations
	if f.ShowControls != nil {
		cfg.ShowControls = *f.ShowControls
	}
	if f.ShowThumbnails != nil {
		cfg.ShowThumbnails = *f.ShowThumbnails
	}
	if f.ShowOverlayText != nil {
		cfg.ShowOverlayText = *f.ShowOverlayText
	}
	if f.Animation > 0 {
		cfg.AnimationDuration = time.Duration(f.Animation)
	}
	if f.TickInterval > 0 {
		cfg.TickInterval = time.Duration(f.TickInterval)
	}
	if f.ResumeDelay > 0 {
		cfg.ResumeDelay = time.Duration(f.ResumeDelay)
	}

	mode, err := carousel.ParseMode(f.Mode)
	if err != nil {
		return nil, &errors.ConfigError{Field: "mode", Value: f.Mode, Err: err}
	}
	cfg.Mode = mode

	if err := checkAnimations(cfg.Animations); err != nil {
		return nil, err
	}
	for i, s := range cfg.Images {
		if strings.TrimSpace(s.ImageURL) == "" {
			return nil, &errors.ConfigError{Field: fmt.Sprintf("slides[%d].image_url", i), Value: s.ImageURL}
		}
	}

	if env != nil {
		if err := applyEnv(&cfg, env); err != nil {
			return nil, err
		}
	}
	res.Config = cfg
	return res, nil
}

// FindConfig walks up from dir looking for carousel.yaml. It returns the
// path in dir when none is found, so callers can still report it.
func FindConfig(dir string) string {
	cur := dir
	for {
		candidate := filepath.Join(cur, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return filepath.Join(dir, FileName)
		}
		cur = parent
	}
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return &errors.ConfigError{Field: "version", Value: v, Err: fmt.Errorf("not a semantic version")}
	}
	if semver.Major(v) != SupportedMajor {
		return &errors.ConfigError{Field: "version", Value: v, Err: fmt.Errorf("unsupported major version, want %s", SupportedMajor)}
	}
	return nil
}

func checkAnimations(a carousel.Animations) error {
	fields := []struct{ name, value string }{
		{"animations.image", a.Image},
		{"animations.title", a.Title},
		{"animations.subtitle", a.Subtitle},
		{"animations.thumbnail", a.Thumbnail},
	}
	for _, f := range fields {
		if _, err := animation.ParseCurve(f.value); err != nil {
			return &errors.ConfigError{Field: f.name, Value: f.value, Err: err}
		}
	}
	return nil
}

func applyEnv(cfg *carousel.Config, env LookupFunc) error {
	if v, ok := env(EnvMode); ok && v != "" {
		mode, err := carousel.ParseMode(v)
		if err != nil {
			return &errors.ConfigError{Field: EnvMode, Value: v, Err: err}
		}
		cfg.Mode = mode
		cfg.IsOverlaySlider = false
	}
	if v, ok := env(EnvAutoScroll); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &errors.ConfigError{Field: EnvAutoScroll, Value: v, Err: err}
		}
		cfg.AutoScroll = b
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvTickInterval, &cfg.TickInterval},
		{EnvResumeDelay, &cfg.ResumeDelay},
		{EnvAnimationDuration, &cfg.AnimationDuration},
	}
	for _, d := range durations {
		v, ok := env(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := ParseDuration(v)
		if err != nil {
			return &errors.ConfigError{Field: d.key, Value: v, Err: err}
		}
		*d.dst = parsed
	}
	return nil
}
