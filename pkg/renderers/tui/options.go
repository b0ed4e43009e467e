package tui

import (
	"log/slog"

	"github.com/goliatone/go-formstate/pkg/formstate"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary with
	// password values masked.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	default:
		return "", false
	}
}

// Theme captures optional message prefixes the renderer applies when
// printing prompts and errors.
type Theme struct {
	PromptPrefix string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how often a field is re-prompted after an invalid
// answer. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithConfirmSubmit asks for confirmation once every field is answered.
func WithConfirmSubmit(enabled bool) Option {
	return func(r *Renderer) {
		r.confirmSubmit = enabled
	}
}

// WithControllerOptions forwards options to the form controller created for
// each session, for example formstate.WithObserver.
func WithControllerOptions(opts ...formstate.Option) Option {
	return func(r *Renderer) {
		r.controllerOptions = append(r.controllerOptions, opts...)
	}
}

// WithLogger sets the logger used by the renderer and its controllers.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
