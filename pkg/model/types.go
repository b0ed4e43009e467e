package model

import (
	"fmt"
	"strings"
)

// FieldType is the closed set of input kinds a form can hold.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
)

var fieldTypeAliases = map[string]FieldType{
	"text":          FieldTypeText,
	"email":         FieldTypeEmail,
	"password":      FieldTypePassword,
	"inputtext":     FieldTypeText,
	"inputemail":    FieldTypeEmail,
	"inputpassword": FieldTypePassword,
}

// ParseFieldType resolves a raw type name. Canonical names and the legacy
// "inputText"/"inputEmail"/"inputPassword" spellings are accepted in any case.
func ParseFieldType(raw string) (FieldType, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if typ, ok := fieldTypeAliases[key]; ok {
		return typ, nil
	}
	return "", fmt.Errorf("model: unknown field type %q", raw)
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePassword:
		return true
	default:
		return false
	}
}

// InputType returns the HTML input type used to render the field.
func (t FieldType) InputType() string {
	if t.Valid() {
		return string(t)
	}
	return string(FieldTypeText)
}

// Field describes a single input inside a form. The struct is comparable so
// descriptor lists can be checked for content changes with slices.Equal.
type Field struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label,omitempty"`
	Default  string    `json:"defaultValue,omitempty"`
	Required bool      `json:"required,omitempty"`
}

// HasDefault reports whether the field seeds an initial value.
func (f Field) HasDefault() bool {
	return f.Default != ""
}

// IDs returns the ids of fields in order.
func IDs(fields []Field) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.ID)
	}
	return out
}
