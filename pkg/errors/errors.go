// Package errors provides structured error handling for the carousel.
//
// Navigation never fails: out-of-range jumps and empty collections are
// silent no-ops. The errors in this package cover the edges around the state
// machine: configuration that cannot be resolved, collaborators (renderers,
// listeners) that panic inside a callback, and timers that misbehave.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates configuration that could not be loaded or resolved.
	KindConfig
	// KindTimer indicates a timer scheduling or delivery failure.
	KindTimer
	// KindRender indicates a rendering collaborator failure.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTimer:
		return "timer"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// CarouselError represents a structured error reported by a carousel.
type CarouselError struct {
	// Op is the operation that failed (e.g., "rendering.RasterRenderer.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Carousel is the instance ID, if the error belongs to one carousel.
	Carousel string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CarouselError) Error() string {
	if e.Carousel != "" {
		return fmt.Sprintf("%s [%s] carousel=%s: %v", e.Op, e.Kind, e.Carousel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CarouselError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "carousel.render").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigError describes a configuration value that could not be used.
type ConfigError struct {
	// Field is the configuration key (e.g., "mode" or "CAROUSEL_TICK_INTERVAL").
	Field string
	// Value is the raw value that was rejected.
	Value string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by carousels and their collaborators.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CarouselError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
