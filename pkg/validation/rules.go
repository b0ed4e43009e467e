package validation

import (
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
)

const (
	// MaxLength bounds every field type, counted in code points.
	MaxLength = 100
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
)

const (
	MessageEmpty            = "Empty field"
	MessageTooLong          = "Too long"
	MessageInvalidEmail     = "Invalid email"
	MessagePasswordTooShort = "Must be at least 8 characters"
)

// Rule validates a candidate value for one field.
type Rule func(value string) Result

// check returns a failure message, or "" when the value passes.
type check func(value string) string

// BuildRule derives the rule for a single descriptor. Unknown types fail with
// a *ConfigurationError wrapping ErrUnknownFieldType.
func BuildRule(field model.Field) (Rule, error) {
	checks := []check{maxLength}
	switch field.Type {
	case model.FieldTypeText:
	case model.FieldTypeEmail:
		checks = append(checks, emailFormat)
	case model.FieldTypePassword:
		checks = append(checks, passwordLength)
	default:
		return nil, &ConfigurationError{FieldID: field.ID, Type: field.Type, Err: ErrUnknownFieldType}
	}

	required := field.Required
	return func(value string) Result {
		if value == "" {
			if required {
				return Invalid(MessageEmpty)
			}
			return Valid()
		}
		for _, fn := range checks {
			if msg := fn(value); msg != "" {
				return Invalid(msg)
			}
		}
		return Valid()
	}, nil
}

// BuildRules derives rules for a whole descriptor list, keyed by field id.
// Missing and duplicate ids are rejected alongside unknown types so a broken
// list fails before any edit is applied.
func BuildRules(fields []model.Field) (map[string]Rule, error) {
	rules := make(map[string]Rule, len(fields))
	for _, field := range fields {
		if field.ID == "" {
			return nil, &ConfigurationError{Type: field.Type, Err: ErrMissingFieldID}
		}
		if _, exists := rules[field.ID]; exists {
			return nil, &ConfigurationError{FieldID: field.ID, Type: field.Type, Err: ErrDuplicateFieldID}
		}
		rule, err := BuildRule(field)
		if err != nil {
			return nil, err
		}
		rules[field.ID] = rule
	}
	return rules, nil
}

func maxLength(value string) string {
	if utf8.RuneCountInString(value) > MaxLength {
		return MessageTooLong
	}
	return ""
}

func emailFormat(value string) string {
	if !IsEmail(value) {
		return MessageInvalidEmail
	}
	return ""
}

func passwordLength(value string) string {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return MessagePasswordTooShort
	}
	return ""
}
