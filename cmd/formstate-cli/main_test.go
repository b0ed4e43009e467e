package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func testConfig() config.Config {
	return config.Config{
		SettleDelay: 500 * time.Millisecond,
		LogLevel:    "error",
		LogFormat:   "text",
		Output:      "json",
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(testConfig(), strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestInspectFormFile(t *testing.T) {
	out, _, err := execute(t, "", "inspect", "--file", "testdata/forms.yaml", "--form", "signup")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var fields []model.Field
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := []model.Field{
		{ID: "first_name", Type: model.FieldTypeText, Label: "First Name", Default: "Some first name"},
		{ID: "last_name", Type: model.FieldTypeText, Label: "Last Name"},
		{ID: "email", Type: model.FieldTypeEmail, Label: "Email", Required: true},
		{ID: "password", Type: model.FieldTypePassword, Label: "Password", Required: true},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectRequiresFormWhenAmbiguous(t *testing.T) {
	_, _, err := execute(t, "", "inspect", "--file", "testdata/forms.yaml")
	if err == nil || !strings.Contains(err.Error(), "newsletter, signup") {
		t.Fatalf("expected ambiguity error listing forms, got %v", err)
	}
}

func TestInspectListOperations(t *testing.T) {
	out, _, err := execute(t, "", "inspect", "--list", "--openapi", "../../pkg/openapi/testdata/signup.json")
	if err != nil {
		t.Fatalf("inspect --list: %v", err)
	}
	if diff := cmp.Diff("createAccount\ngetAccount\n", out); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectRequiresSource(t *testing.T) {
	if _, _, err := execute(t, "", "inspect"); !errors.Is(err, errNoSource) {
		t.Fatalf("expected errNoSource, got %v", err)
	}
}

func TestCheckReady(t *testing.T) {
	out, _, err := execute(t, "", "check", "--file", "testdata/forms.yaml", "--form", "signup", "--values", "testdata/valid.yaml")
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	var report checkReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	want := checkReport{
		Ready: true,
		Fields: []fieldReport{
			{ID: "first_name", Label: "First Name", Type: model.FieldTypeText, Value: "Some first name", Status: "untouched"},
			{ID: "last_name", Label: "Last Name", Type: model.FieldTypeText, Value: "Lovelace", Status: "settled"},
			{ID: "email", Label: "Email*", Type: model.FieldTypeEmail, Value: "ada@example.com", Status: "settled"},
			{ID: "password", Label: "Password*", Type: model.FieldTypePassword, Value: "********", Status: "settled"},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckNotReadyFromStdin(t *testing.T) {
	stdin := `{"email": "not-an-email", "password": "short"}`
	out, _, err := execute(t, stdin, "check", "--file", "testdata/forms.yaml", "--form", "signup", "--values", "-")
	if !errors.Is(err, errNotReady) {
		t.Fatalf("expected errNotReady, got %v", err)
	}

	var report checkReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	errs := map[string]string{}
	for _, field := range report.Fields {
		if field.Error != "" {
			errs[field.ID] = field.Error
		}
	}
	want := map[string]string{
		"email":    validation.MessageInvalidEmail,
		"password": validation.MessagePasswordTooShort,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckRejectsUnknownFields(t *testing.T) {
	_, _, err := execute(t, "nickname: ada\n", "check", "--file", "testdata/forms.yaml", "--form", "newsletter", "--values", "-")
	if !errors.Is(err, formstate.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCheckPrettyWithMetrics(t *testing.T) {
	out, stderr, err := execute(t, "",
		"check", "--file", "testdata/forms.yaml", "--form", "signup",
		"--values", "testdata/invalid.json", "--output", "pretty", "--metrics")
	if !errors.Is(err, errNotReady) {
		t.Fatalf("expected errNotReady, got %v", err)
	}
	if !strings.Contains(out, "ready: false") || !strings.Contains(out, validation.MessageInvalidEmail) {
		t.Fatalf("unexpected pretty report:\n%s", out)
	}
	for _, want := range []string{
		`formstate_field_edits_total{field="email",result="invalid"} 1`,
		`formstate_field_settles_total{field="password"} 1`,
		"formstate_form_ready 0",
	} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, stderr)
		}
	}
}

func TestCheckFromOpenAPI(t *testing.T) {
	stdin := "email: ada@example.com\npassword: correct horse\n"
	out, _, err := execute(t, stdin, "check", "--openapi", "../../pkg/openapi/testdata/signup.json", "--operation", "createAccount", "--values", "-")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"ready": true`) {
		t.Fatalf("expected ready report:\n%s", out)
	}
}

func TestFillRejectsUnknownOutput(t *testing.T) {
	_, _, err := execute(t, "", "fill", "--file", "testdata/forms.yaml", "--form", "signup", "--output", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported --output") {
		t.Fatalf("expected output format error, got %v", err)
	}
}
