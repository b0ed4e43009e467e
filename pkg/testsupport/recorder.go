package testsupport

import (
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-formstate/pkg/formstate"
)

// Change is one invocation of a formstate.ChangeFunc.
type Change struct {
	Values map[string]string
	Ready  bool
}

// ChangeRecorder collects change callbacks. Use Record as the ChangeFunc.
type ChangeRecorder struct {
	mu      sync.Mutex
	changes []Change
}

// Record implements formstate.ChangeFunc.
func (r *ChangeRecorder) Record(values map[string]string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, Change{Values: values, Ready: ready})
}

// All returns every recorded change in order.
func (r *ChangeRecorder) All() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

// Len returns the number of recorded changes.
func (r *ChangeRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

// Last returns the most recent change, failing the test when none exists.
func (r *ChangeRecorder) Last(t *testing.T) Change {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		t.Fatalf("no changes recorded")
	}
	return r.changes[len(r.changes)-1]
}

// DisplayRecorder collects settle notifications. Use Handle as the
// formstate.DisplayFunc.
type DisplayRecorder struct {
	mu    sync.Mutex
	views []formstate.FieldView
	ch    chan struct{}
	once  sync.Once
}

func (r *DisplayRecorder) signal() chan struct{} {
	r.once.Do(func() {
		r.ch = make(chan struct{}, 64)
	})
	return r.ch
}

// Handle implements formstate.DisplayFunc.
func (r *DisplayRecorder) Handle(view formstate.FieldView) {
	r.mu.Lock()
	r.views = append(r.views, view)
	r.mu.Unlock()

	select {
	case r.signal() <- struct{}{}:
	default:
	}
}

// All returns every recorded view in order.
func (r *DisplayRecorder) All() []formstate.FieldView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]formstate.FieldView(nil), r.views...)
}

// Wait blocks until at least n views were recorded or the timeout elapses.
func (r *DisplayRecorder) Wait(t *testing.T, n int, timeout time.Duration) []formstate.FieldView {
	t.Helper()

	deadline := time.After(timeout)
	for {
		views := r.All()
		if len(views) >= n {
			return views
		}
		select {
		case <-r.signal():
		case <-deadline:
			t.Fatalf("timed out waiting for %d display notifications, got %d", n, len(views))
		}
	}
}
