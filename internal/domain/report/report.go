// Package report collects crowd reports of stream events and tracks them
// through streamer adjudication.
package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"github.com/streamkit/bingo/internal/domain/model"
)

// EventID normalizes event text into a stable identifier: lower-case,
// non-alphanumeric runs collapsed to single hyphens, edges trimmed. Reports
// of "Chat spams F" and "chat SPAMS f!" converge on the same id.
func EventID(text string) string {
	return slug.Make(text)
}

// Aggregator deduplicates event reports per reporter and exposes pending
// items for adjudication. Report is an atomic check-and-insert per event id;
// two concurrent first-reporters never create two PendingEvents.
type Aggregator struct {
	mu      sync.RWMutex
	pending map[string]*model.PendingEvent
	history []model.PendingEvent
	clock   func() time.Time
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		pending: make(map[string]*model.PendingEvent),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report records that reporter saw the event described by text. The first
// report creates a pending entry; repeat reports from the same reporter are
// no-ops. There is no confirmation threshold: adjudication is always an
// explicit streamer action. Returns the pending entry and whether this call
// added a new reporter.
func (a *Aggregator) Report(ctx context.Context, text string, reporter model.Reporter) (model.PendingEvent, bool) {
	id := EventID(text)

	a.mu.Lock()
	defer a.mu.Unlock()

	ev, ok := a.pending[id]
	if !ok {
		ev = &model.PendingEvent{
			ID:              id,
			Text:            text,
			FirstReportedAt: a.clock(),
			Status:          model.EventPending,
		}
		a.pending[id] = ev
	}

	for _, r := range ev.ReportedBy {
		if r.UserID == reporter.UserID {
			return cloneEvent(ev), false
		}
	}
	ev.ReportedBy = append(ev.ReportedBy, reporter)
	return cloneEvent(ev), true
}

// Adjudicate resolves a pending event. Confirmed events move to history
// with a confirmation timestamp; rejected events are discarded. Either way
// the id leaves the pending set, so an event cannot be adjudicated twice
// without being re-reported first.
func (a *Aggregator) Adjudicate(ctx context.Context, id string, confirmed bool) (model.PendingEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ev, ok := a.pending[id]
	if !ok {
		return model.PendingEvent{}, ErrEventNotFound
	}
	delete(a.pending, id)

	if confirmed {
		now := a.clock()
		ev.Status = model.EventConfirmed
		ev.ConfirmedAt = &now
	} else {
		ev.Status = model.EventRejected
	}
	a.history = append(a.history, cloneEvent(ev))
	return cloneEvent(ev), nil
}

// Pending returns pending events ordered by first report time.
func (a *Aggregator) Pending(ctx context.Context) []model.PendingEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.PendingEvent, 0, len(a.pending))
	for _, ev := range a.pending {
		out = append(out, cloneEvent(ev))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FirstReportedAt.Before(out[j].FirstReportedAt)
	})
	return out
}

// History returns adjudicated events in adjudication order.
func (a *Aggregator) History(ctx context.Context) []model.PendingEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.PendingEvent, len(a.history))
	copy(out, a.history)
	return out
}

// Size returns the number of pending events.
func (a *Aggregator) Size(ctx context.Context) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.pending)
}

// Snapshot captures aggregator state for persistence.
type Snapshot struct {
	Pending []model.PendingEvent `json:"pending"`
	History []model.PendingEvent `json:"history"`
}

// Snapshot returns a serializable copy of the aggregator state.
func (a *Aggregator) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{Pending: a.Pending(ctx), History: a.History(ctx)}
}

// Restore replaces aggregator state from a snapshot.
func (a *Aggregator) Restore(ctx context.Context, snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = make(map[string]*model.PendingEvent, len(snap.Pending))
	for i := range snap.Pending {
		ev := cloneEvent(&snap.Pending[i])
		a.pending[ev.ID] = &ev
	}
	a.history = make([]model.PendingEvent, len(snap.History))
	copy(a.history, snap.History)
}

func cloneEvent(ev *model.PendingEvent) model.PendingEvent {
	out := *ev
	out.ReportedBy = make([]model.Reporter, len(ev.ReportedBy))
	copy(out.ReportedBy, ev.ReportedBy)
	return out
}
