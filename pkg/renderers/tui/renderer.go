package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
)

const passwordMask = "********"

// Renderer collects field values interactively. Every answer is fed through
// a formstate.Controller, so the terminal shows exactly the errors a GUI
// would show once the field settles.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	theme             Theme
	maxAttempts       int
	confirmSubmit     bool
	controllerOptions []formstate.Option
	logger            *slog.Logger
}

// New constructs a TUI renderer with the provided options.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the MIME type of the payload for the configured format.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Fill prompts for every field in descriptor order and returns the collected
// values once the form is ready.
func (r *Renderer) Fill(ctx context.Context, fields []model.Field) (map[string]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := append([]formstate.Option{formstate.WithLogger(r.logger)}, r.controllerOptions...)
	ctrl, err := formstate.New(fields, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	defer ctrl.Close()

	for _, field := range ctrl.Descriptors() {
		if err := r.promptField(ctx, ctrl, field.ID); err != nil {
			return nil, err
		}
	}

	if !ctrl.Ready() {
		return ctrl.Values(), ErrNotReady
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.theme.PromptPrefix + "Submit?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}
	return ctrl.Values(), nil
}

// Render runs Fill and serializes the values in the configured format.
func (r *Renderer) Render(ctx context.Context, fields []model.Field) ([]byte, error) {
	values, err := r.Fill(ctx, fields)
	if err != nil {
		return nil, err
	}
	return r.Encode(fields, values)
}

// Encode serializes values in the configured format. Fields without a value
// are omitted.
func (r *Renderer) Encode(fields []model.Field, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, field := range fields {
			if value, ok := values[field.ID]; ok {
				form.Set(field.ID, value)
			}
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return encodePretty(fields, values), nil
	default:
		payload, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	}
}

func (r *Renderer) promptField(ctx context.Context, ctrl *formstate.Controller, fieldID string) error {
	for attempt := 1; ; attempt++ {
		view, ok := ctrl.Field(fieldID)
		if !ok {
			return fmt.Errorf("tui: %w: %q", formstate.ErrUnknownField, fieldID)
		}

		answer, err := r.ask(ctx, view)
		if err != nil {
			return err
		}
		if err := ctrl.OnFieldEdit(fieldID, answer); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		ctrl.Settle(fieldID)

		view, _ = ctrl.Field(fieldID)
		if view.Error == "" {
			return nil
		}

		r.logger.Debug("tui: invalid answer",
			slog.String("field", fieldID),
			slog.String("error", view.Error),
			slog.Int("attempt", attempt),
		)
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, view.DisplayLabel(), view.Error)); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return nil
		}
	}
}

func (r *Renderer) ask(ctx context.Context, view formstate.FieldView) (string, error) {
	cfg := InputConfig{
		Message: r.theme.PromptPrefix + view.DisplayLabel(),
	}
	if !view.Field.Required {
		cfg.Help = "optional"
	}
	if view.Field.Type == model.FieldTypePassword {
		return r.driver.Password(ctx, cfg)
	}
	if view.Status == formstate.StatusUntouched {
		cfg.Default = view.Value
	}
	return r.driver.Input(ctx, cfg)
}

func encodePretty(fields []model.Field, values map[string]string) []byte {
	var buf bytes.Buffer
	width := 0
	for _, field := range fields {
		if n := len(field.ID); n > width {
			width = n
		}
	}
	for _, field := range fields {
		value, ok := values[field.ID]
		if !ok {
			continue
		}
		if field.Type == model.FieldTypePassword && value != "" {
			value = passwordMask
		}
		fmt.Fprintf(&buf, "%-*s  %s\n", width, field.ID, value)
	}
	return buf.Bytes()
}
