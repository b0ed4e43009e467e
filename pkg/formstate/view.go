package formstate

import (
	"github.com/goliatone/go-formstate/internal/labels"
	"github.com/goliatone/go-formstate/pkg/model"
)

// FieldStatus is the per-field edit lifecycle.
type FieldStatus int

const (
	// StatusUntouched fields have never been edited.
	StatusUntouched FieldStatus = iota
	// StatusEditing fields were edited within the settle window; their error
	// is hidden.
	StatusEditing
	// StatusSettled fields show their recorded error, if any.
	StatusSettled
)

func (s FieldStatus) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSettled:
		return "settled"
	default:
		return "untouched"
	}
}

// FieldView is what a renderer needs to draw one input: the descriptor, the
// current value, the error to display and whether the field is being edited.
type FieldView struct {
	Field   model.Field
	Value   string
	Error   string
	Editing bool
	Status  FieldStatus
}

// DisplayLabel returns the label shown next to the input, falling back to a
// label derived from the id and marking required fields with "*".
func (v FieldView) DisplayLabel() string {
	label := v.Field.Label
	if label == "" {
		label = labels.FromID(v.Field.ID)
	}
	if v.Field.Required {
		label += "*"
	}
	return label
}
