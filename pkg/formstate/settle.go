package formstate

import (
	"log/slog"

	"github.com/benbjohnson/clock"
)

// pendingSettle is the timer keeping a field in the Editing state. seq ties
// the timer to the edit that started it so a late firing never clears a
// newer edit.
type pendingSettle struct {
	timer *clock.Timer
	seq   uint64
}

// Settle ends the Editing state of fieldID right away, as a blur would. It
// reports whether the field was being edited.
func (c *Controller) Settle(fieldID string) bool {
	c.mu.Lock()
	p, ok := c.pending[fieldID]
	if c.closed || !ok {
		c.mu.Unlock()
		return false
	}
	p.timer.Stop()
	delete(c.pending, fieldID)
	view := c.viewLocked(fieldID)
	c.mu.Unlock()

	c.notifySettled([]FieldView{view})
	return true
}

// beginEditLocked restarts the settle timer for fieldID. Under the shared
// policy any other pending field settles immediately; its view is returned
// so the caller can notify once the lock is released.
func (c *Controller) beginEditLocked(fieldID string) []FieldView {
	var settled []FieldView
	if c.policy == SettleShared {
		for id, p := range c.pending {
			if id == fieldID {
				continue
			}
			p.timer.Stop()
			delete(c.pending, id)
			settled = append(settled, c.viewLocked(id))
		}
	}

	if p, ok := c.pending[fieldID]; ok {
		p.timer.Stop()
		delete(c.pending, fieldID)
	}
	if c.delay <= 0 {
		return settled
	}

	c.seq++
	seq := c.seq
	c.pending[fieldID] = &pendingSettle{
		seq: seq,
		timer: c.clock.AfterFunc(c.delay, func() {
			c.settleFired(fieldID, seq)
		}),
	}
	return settled
}

func (c *Controller) settleFired(fieldID string, seq uint64) {
	c.mu.Lock()
	p, ok := c.pending[fieldID]
	if c.closed || !ok || p.seq != seq {
		c.mu.Unlock()
		return
	}
	delete(c.pending, fieldID)
	view := c.viewLocked(fieldID)
	c.inflight.Add(1)
	c.mu.Unlock()

	defer c.inflight.Done()
	c.notifySettled([]FieldView{view})
}

func (c *Controller) notifySettled(views []FieldView) {
	for _, view := range views {
		c.logger.Debug("formstate: field settled",
			slog.String("field", view.Field.ID),
			slog.Bool("has_error", view.Error != ""),
		)
		c.observer.ObserveSettle(view.Field.ID)
		if c.onDisplay != nil {
			c.onDisplay(view)
		}
	}
}
