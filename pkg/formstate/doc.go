// Package formstate implements the form state controller: it owns the current
// value and validation error of every field in a descriptor list, applies the
// field rules on each edit, suppresses a field's error while the field is
// being actively edited, and reports form readiness after every state change.
//
// A Controller is created with New, which seeds defaults and emits the
// initial readiness signal. Renderers feed raw input through OnFieldEdit and
// read the per-field display tuple via Field or Fields. The suppression window
// is closed by a settle timer (500ms by default); Settle closes it early, for
// example on blur. Close stops every timer and must be called when the form
// is torn down.
//
// Readiness: a form is ready when every required field holds a non-empty
// value and has no recorded error. Optional fields never block readiness,
// even when they hold an invalid non-empty value.
package formstate
