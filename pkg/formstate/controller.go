package formstate

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Controller owns the state of one form instance. All methods are safe for
// concurrent use; callbacks run after internal locks are released.
type Controller struct {
	mu       sync.Mutex
	inflight sync.WaitGroup

	fields []model.Field
	index  map[string]int
	rules  map[string]validation.Rule
	state  *state

	pending map[string]*pendingSettle
	seq     uint64
	closed  bool

	onChange  ChangeFunc
	onDisplay DisplayFunc
	observer  Observer
	logger    *slog.Logger
	clock     clock.Clock
	delay     time.Duration
	policy    SettlePolicy
}

// New validates the descriptor list, seeds defaults and emits the initial
// readiness signal. A broken descriptor list fails with a wrapped
// *validation.ConfigurationError before any state is created.
func New(fields []model.Field, onChange ChangeFunc, options ...Option) (*Controller, error) {
	rules, err := validation.BuildRules(fields)
	if err != nil {
		return nil, fmt.Errorf("formstate: %w", err)
	}

	c := &Controller{
		fields:   slices.Clone(fields),
		index:    indexFields(fields),
		rules:    rules,
		state:    newState(fields),
		pending:  make(map[string]*pendingSettle),
		onChange: onChange,
		observer: nopObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    clock.New(),
		delay:    DefaultSettleDelay,
		policy:   SettlePerField,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	values, isReady := c.state.valuesCopy(), ready(c.fields, c.state)
	c.logger.Debug("formstate: controller mounted",
		slog.Int("fields", len(c.fields)),
		slog.Bool("ready", isReady),
		slog.String("settle_policy", c.policy.String()),
		slog.Duration("settle_delay", c.delay),
	)
	c.emit(values, isReady)
	return c, nil
}

// OnFieldEdit applies a raw input change: the field enters the Editing
// state, its rule runs against value, the error and value are recorded and
// readiness is reported through the change callback.
func (c *Controller) OnFieldEdit(fieldID, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if _, ok := c.index[fieldID]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}

	settled := c.beginEditLocked(fieldID)
	result := c.rules[fieldID](value)
	c.state.set(fieldID, value, result.Message())

	values, isReady := c.state.valuesCopy(), ready(c.fields, c.state)
	c.mu.Unlock()

	c.observer.ObserveEdit(fieldID, result)
	c.notifySettled(settled)
	c.emit(values, isReady)
	return nil
}

// SetFields replaces the descriptor list. An identical list is a no-op.
// Otherwise rules are rebuilt, removed fields are dropped, untouched fields
// are reseeded from their defaults, edited fields are re-validated under
// their new rule, and readiness is re-emitted. On error the controller keeps
// its previous descriptors.
func (c *Controller) SetFields(fields []model.Field) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if slices.Equal(c.fields, fields) {
		c.mu.Unlock()
		return nil
	}

	rules, err := validation.BuildRules(fields)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("formstate: %w", err)
	}
	index := indexFields(fields)

	for id, p := range c.pending {
		if _, ok := index[id]; !ok {
			p.timer.Stop()
			delete(c.pending, id)
		}
	}
	removed := c.state.prune(index)
	c.state.seed(fields)
	for _, field := range fields {
		if c.state.touched(field.ID) {
			value := c.state.value(field.ID)
			c.state.set(field.ID, value, rules[field.ID](value).Message())
		}
	}
	c.fields, c.index, c.rules = slices.Clone(fields), index, rules

	values, isReady := c.state.valuesCopy(), ready(c.fields, c.state)
	c.mu.Unlock()

	sort.Strings(removed)
	c.logger.Debug("formstate: descriptors replaced",
		slog.Int("fields", len(fields)),
		slog.Any("removed", removed),
	)
	c.emit(values, isReady)
	return nil
}

// Field returns the display tuple for one field.
func (c *Controller) Field(fieldID string) (FieldView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[fieldID]; !ok {
		return FieldView{}, false
	}
	return c.viewLocked(fieldID), true
}

// Fields returns display tuples in descriptor order.
func (c *Controller) Fields() []FieldView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]FieldView, 0, len(c.fields))
	for _, field := range c.fields {
		out = append(out, c.viewLocked(field.ID))
	}
	return out
}

// Descriptors returns a copy of the current descriptor list.
func (c *Controller) Descriptors() []model.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.fields)
}

// Values returns a copy of the current values.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.valuesCopy()
}

// Errors returns a copy of the recorded, non-empty errors regardless of
// display suppression.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.errorsCopy()
}

// Ready reports the current readiness.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ready(c.fields, c.state)
}

// Close stops every pending timer and waits for timer callbacks already in
// flight. No callback starts after Close returns. Close must not be called
// from a DisplayFunc.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	stopped := len(c.pending)
	for id, p := range c.pending {
		p.timer.Stop()
		delete(c.pending, id)
	}
	c.mu.Unlock()

	c.inflight.Wait()
	c.logger.Debug("formstate: controller closed", slog.Int("stopped_timers", stopped))
	return nil
}

func (c *Controller) viewLocked(fieldID string) FieldView {
	_, editing := c.pending[fieldID]
	view := FieldView{
		Field:   c.fields[c.index[fieldID]],
		Value:   c.state.value(fieldID),
		Editing: editing,
	}
	switch {
	case editing:
		view.Status = StatusEditing
	case c.state.touched(fieldID):
		view.Status = StatusSettled
		view.Error = c.state.err(fieldID)
	default:
		view.Status = StatusUntouched
	}
	return view
}

func (c *Controller) emit(values map[string]string, isReady bool) {
	c.observer.ObserveReadiness(isReady)
	if c.onChange != nil {
		c.onChange(values, isReady)
	}
}

func indexFields(fields []model.Field) map[string]int {
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.ID] = i
	}
	return index
}
