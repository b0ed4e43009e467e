// Package testsupport holds helpers shared by package tests: fixture loading
// and recorders for controller callbacks.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
)

// SampleFields returns the sign-up descriptor list used across tests: an
// optional text field with a default, an optional text field without one,
// and required email and password fields.
func SampleFields() []model.Field {
	return []model.Field{
		{ID: "first_name", Type: model.FieldTypeText, Label: "First Name", Default: "Some first name"},
		{ID: "last_name", Type: model.FieldTypeText, Label: "Last Name"},
		{ID: "email", Type: model.FieldTypeEmail, Label: "Email", Required: true},
		{ID: "password", Type: model.FieldTypePassword, Label: "Password", Required: true},
	}
}

// MustLoadFields reads a JSON array of descriptors, failing the test on error.
func MustLoadFields(t *testing.T, path string) []model.Field {
	t.Helper()

	fields, err := LoadFields(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// LoadFields reads a JSON array of descriptors without requiring testing.T.
func LoadFields(path string) ([]model.Field, error) {
	if path == "" {
		return nil, errors.New("testsupport: fields path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fields: %w", err)
	}
	var out []model.Field
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal fields: %w", err)
	}
	return out, nil
}
