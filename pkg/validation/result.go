package validation

// Result is the outcome of applying a Rule: either valid, or invalid with a
// single human-readable message.
type Result struct {
	invalid bool
	message string
}

// Valid returns the passing result.
func Valid() Result {
	return Result{}
}

// Invalid returns a failing result carrying message.
func Invalid(message string) Result {
	return Result{invalid: true, message: message}
}

// OK reports whether the value passed.
func (r Result) OK() bool {
	return !r.invalid
}

// Message returns the failure message, or "" for valid results.
func (r Result) Message() string {
	return r.message
}

func (r Result) String() string {
	if r.OK() {
		return "valid"
	}
	return "invalid: " + r.message
}
