package formstate

import "github.com/goliatone/go-formstate/pkg/model"

// ready reports whether every required field holds a non-empty value and has
// no recorded error.
func ready(fields []model.Field, s *state) bool {
	for _, field := range fields {
		if !field.Required {
			continue
		}
		if s.value(field.ID) == "" || s.err(field.ID) != "" {
			return false
		}
	}
	return true
}
