package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// the submit confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrNotReady is returned when prompting ends with required fields still
	// empty or invalid.
	ErrNotReady = errors.New("tui: form not ready")
)
