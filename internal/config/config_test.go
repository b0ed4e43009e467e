package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		SettleDelay: 500 * time.Millisecond,
		LogLevel:    "info",
		LogFormat:   "text",
		Output:      "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"FORMSTATE_SETTLE_DELAY": "1s",
		"FORMSTATE_LOG_LEVEL":    "debug",
		"FORMSTATE_LOG_FORMAT":   "json",
		"FORMSTATE_OUTPUT":       "pretty",
		"SETTLE_DELAY":           "9s",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		SettleDelay: time.Second,
		LogLevel:    "debug",
		LogFormat:   "json",
		Output:      "pretty",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromRejectsBadDelay(t *testing.T) {
	for _, raw := range []string{"soon", "-1s"} {
		if _, err := LoadFrom(map[string]string{"FORMSTATE_SETTLE_DELAY": raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
