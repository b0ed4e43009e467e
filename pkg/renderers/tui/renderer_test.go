package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	inputConfigs []InputConfig
	infoMessages []string
	inputPos     int
	passPos      int
	confirmPos   int
	failWith     error
}

// Input mimics survey: an empty answer accepts the prompt default.
func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if val == "" {
		val = cfg.Default
	}
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRendererFillCollectsValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Doe", "ada@example.com"},
		passwords: []string{"correct horse"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	values, err := renderer.Fill(context.Background(), testsupport.SampleFields())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]string{
		"first_name": "Some first name",
		"last_name":  "Doe",
		"email":      "ada@example.com",
		"password":   "correct horse",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := driver.inputConfigs[0].Default; got != "Some first name" {
		t.Fatalf("expected default prefill, got %q", got)
	}
	if got := driver.inputConfigs[2].Message; got != "Email*" {
		t.Fatalf("expected required marker in prompt, got %q", got)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("expected no error messages, got %v", driver.infoMessages)
	}
}

func TestRendererRepromptsInvalidAnswers(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "not-an-email", "", "ada@example.com"},
		passwords: []string{"short", "long enough"},
	}
	renderer, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	values, err := renderer.Fill(context.Background(), testsupport.SampleFields())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if values["email"] != "ada@example.com" || values["password"] != "long enough" {
		t.Fatalf("unexpected values: %v", values)
	}

	wantInfo := []string{
		"! Email*: " + validation.MessageInvalidEmail,
		"! Email*: " + validation.MessageEmpty,
		"! Password*: " + validation.MessagePasswordTooShort,
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	// Only seeded defaults prefill; a rejected answer does not.
	if got := driver.inputConfigs[3].Default; got != "" {
		t.Fatalf("expected empty default on retry, got %q", got)
	}
}

func TestRendererMaxAttemptsLeavesFormNotReady(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "bad"},
		passwords: []string{"short"},
	}
	renderer, err := New(WithPromptDriver(driver), WithMaxAttempts(1))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	values, err := renderer.Fill(context.Background(), testsupport.SampleFields())
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if values["email"] != "bad" {
		t.Fatalf("expected partial values, got %v", values)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected 2 error messages, got %v", driver.infoMessages)
	}
}

func TestRendererAbort(t *testing.T) {
	driver := &stubDriver{failWith: ErrAborted}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Fill(context.Background(), testsupport.SampleFields()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRendererConfirmDeclined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "ada@example.com"},
		passwords: []string{"long enough"},
		confirm:   []bool{false},
	}
	renderer, err := New(WithPromptDriver(driver), WithConfirmSubmit(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Fill(context.Background(), testsupport.SampleFields()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRendererRejectsBrokenDescriptors(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	fields := []model.Field{
		{ID: "email", Type: model.FieldTypeEmail},
		{ID: "email", Type: model.FieldTypeText},
	}
	_, err = renderer.Fill(context.Background(), fields)
	if !errors.Is(err, validation.ErrDuplicateFieldID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestRendererEncode(t *testing.T) {
	fields := testsupport.SampleFields()
	values := map[string]string{
		"first_name": "Ada",
		"email":      "ada@example.com",
		"password":   "long enough",
	}

	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{
			name:   "form",
			format: OutputFormatFormURLEncoded,
			want:   "email=ada%40example.com&first_name=Ada&password=long+enough",
		},
		{
			name:   "pretty",
			format: OutputFormatPrettyText,
			want:   "first_name  Ada\nemail       ada@example.com\npassword    ********\n",
		},
		{
			name:   "json",
			format: OutputFormatJSON,
			want:   "{\n  \"email\": \"ada@example.com\",\n  \"first_name\": \"Ada\",\n  \"password\": \"long enough\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(tt.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			got, err := renderer.Encode(fields, values)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}
