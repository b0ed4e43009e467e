// Package validation derives per-field rules from descriptors. A Rule is a
// pure function from a candidate value to a Result; user-input problems are
// reported as Invalid results, never as Go errors. Broken descriptors (unknown
// type, missing or duplicate id) fail once, when the rule is built, with a
// *ConfigurationError.
//
// Checks run in a fixed order: required-emptiness first, then for non-empty
// values the maximum length, then the type-specific check. An empty value on
// an optional field is always valid.
package validation
