package validation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrUnknownFieldType signals a descriptor whose type is outside the
	// closed FieldType set.
	ErrUnknownFieldType = errors.New("validation: unknown field type")
	// ErrMissingFieldID signals a descriptor without an id.
	ErrMissingFieldID = errors.New("validation: field id is required")
	// ErrDuplicateFieldID signals two descriptors sharing an id.
	ErrDuplicateFieldID = errors.New("validation: duplicate field id")
)

// ConfigurationError reports a programmer error in a descriptor list. It is
// returned at rule-build time and never surfaces as a per-value message.
type ConfigurationError struct {
	FieldID string
	Type    model.FieldType
	Err     error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.FieldID == "":
		return fmt.Sprintf("%v (type %q)", e.Err, e.Type)
	case errors.Is(e.Err, ErrUnknownFieldType):
		return fmt.Sprintf("%v %q for field %q", e.Err, e.Type, e.FieldID)
	default:
		return fmt.Sprintf("%v: %q", e.Err, e.FieldID)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err carries a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
