package formstate

import "github.com/goliatone/go-formstate/pkg/model"

// state tracks values and recorded errors keyed by field id. A key in errors
// means the field has been edited at least once; an empty message means the
// last edit passed.
type state struct {
	values map[string]string
	errors map[string]string
}

func newState(fields []model.Field) *state {
	s := &state{
		values: make(map[string]string, len(fields)),
		errors: make(map[string]string, len(fields)),
	}
	s.seed(fields)
	return s
}

// seed recomputes the value of every untouched field from its default.
// Fields without a default are left absent.
func (s *state) seed(fields []model.Field) {
	for _, field := range fields {
		if s.touched(field.ID) {
			continue
		}
		if field.HasDefault() {
			s.values[field.ID] = field.Default
		} else {
			delete(s.values, field.ID)
		}
	}
}

func (s *state) value(id string) string {
	return s.values[id]
}

func (s *state) err(id string) string {
	return s.errors[id]
}

func (s *state) touched(id string) bool {
	_, ok := s.errors[id]
	return ok
}

func (s *state) set(id, value, message string) {
	s.values[id] = value
	s.errors[id] = message
}

// prune drops every key not present in keep and returns the removed ids.
func (s *state) prune(keep map[string]int) []string {
	seen := make(map[string]struct{})
	var removed []string
	for _, m := range []map[string]string{s.values, s.errors} {
		for id := range m {
			if _, ok := keep[id]; ok {
				continue
			}
			delete(m, id)
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				removed = append(removed, id)
			}
		}
	}
	return removed
}

func (s *state) valuesCopy() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// errorsCopy returns only the non-empty recorded errors.
func (s *state) errorsCopy() map[string]string {
	out := make(map[string]string, len(s.errors))
	for id, msg := range s.errors {
		if msg != "" {
			out[id] = msg
		}
	}
	return out
}
