// Package logging builds the slog loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents logger output format.
type Format string

const (
	// FormatText outputs human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON outputs one JSON object per record.
	FormatJSON Format = "json"
)

// ParseLevel maps debug, info, warn and error (case-insensitive) to a level.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", raw)
	}
	return level, nil
}

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("logging: invalid format %q: must be %q or %q", raw, FormatText, FormatJSON)
	}
}

// New creates a logger writing to w, or stderr when w is nil, so log lines
// never mix with payloads printed on stdout.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if f == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
