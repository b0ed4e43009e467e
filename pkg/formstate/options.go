package formstate

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultSettleDelay is how long a field stays in the Editing state after its
// last edit.
const DefaultSettleDelay = 500 * time.Millisecond

// SettlePolicy selects how settle timers are scoped.
type SettlePolicy int

const (
	// SettlePerField keeps one independent timer per field id, so editing one
	// field never changes the error display of another.
	SettlePerField SettlePolicy = iota
	// SettleShared keeps a single timer for the whole form: an edit to any
	// field settles the previously edited field immediately and restarts the
	// timer against the new one.
	SettleShared
)

func (p SettlePolicy) String() string {
	switch p {
	case SettleShared:
		return "shared"
	default:
		return "per-field"
	}
}

// ChangeFunc receives a copy of the current values and the readiness flag. It
// runs once on construction and after every state-affecting call. It must not
// block.
type ChangeFunc func(values map[string]string, ready bool)

// DisplayFunc is notified when a field leaves the Editing state and its error
// becomes visible. Timer-driven notifications run on the timer goroutine.
type DisplayFunc func(view FieldView)

// Option configures a Controller.
type Option func(*Controller)

// WithSettleDelay overrides the editing suppression window. A zero or
// negative delay disables suppression: every edit settles immediately.
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Controller) {
		c.delay = delay
	}
}

// WithClock swaps the clock used for settle timers, typically for a
// clock.Mock in tests.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithSettlePolicy selects per-field or shared settle timers.
func WithSettlePolicy(policy SettlePolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithDisplayHandler registers a callback for fields that finish settling.
func WithDisplayHandler(fn DisplayFunc) Option {
	return func(c *Controller) {
		c.onDisplay = fn
	}
}

// WithObserver attaches an Observer, for example a metrics collector.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
