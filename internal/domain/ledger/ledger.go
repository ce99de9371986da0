// Package ledger records win submissions, assigns placements and points,
// and produces the leaderboard.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/types"
)

// DefaultPoints is the placement -> points table used when none is
// configured: 100/75/50/25/10, then 0.
var DefaultPoints = []int{100, 75, 50, 25, 10}

// Ledger owns win submissions. Adjudications are serialized: placement is a
// function of the full confirmed set ordered by completion time, so two
// confirmations must never race on the same snapshot of that set.
type Ledger struct {
	mu     sync.RWMutex
	subs   map[string]*model.WinSubmission
	points []int
	clock  func() time.Time
	newID  func() string
}

// New creates a Ledger with configuration options.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		subs:   make(map[string]*model.WinSubmission),
		points: DefaultPoints,
		clock:  time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit stores a submission with pending status and returns its id. The
// caller enforces card-state preconditions; the ledger only stamps id,
// submission time, and status.
func (l *Ledger) Submit(ctx context.Context, sub model.WinSubmission) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub.ID = l.newID()
	sub.SubmittedAt = l.clock()
	sub.Status = model.SubmissionPending
	sub.Placement = 0
	sub.Points = 0
	l.subs[sub.ID] = &sub
	return sub.ID, nil
}

// Adjudicate confirms or rejects a pending submission; a submission that
// already carries a verdict returns ErrAlreadyAdjudicated so a late reject
// cannot strip a confirmed placement. Confirmation recomputes placements
// for the entire confirmed set ordered by CompletedAt ascending, so
// confirming out of achievement order still yields placements that reflect
// who finished first. Points come from the placement table, 0 past its end.
func (l *Ledger) Adjudicate(ctx context.Context, id string, confirmed bool) (model.WinSubmission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub, ok := l.subs[id]
	if !ok {
		return model.WinSubmission{}, ErrSubmissionNotFound
	}
	if sub.Status != model.SubmissionPending {
		return model.WinSubmission{}, ErrAlreadyAdjudicated
	}

	now := l.clock()
	if !confirmed {
		sub.Status = model.SubmissionRejected
		sub.RejectedAt = &now
		return *sub, nil
	}

	sub.Status = model.SubmissionConfirmed
	sub.ConfirmedAt = &now
	l.recomputePlacements()
	return *sub, nil
}

// recomputePlacements reorders every confirmed submission by completion
// time and reassigns placement and points. Caller holds l.mu.
func (l *Ledger) recomputePlacements() {
	confirmed := make([]*model.WinSubmission, 0, len(l.subs))
	for _, s := range l.subs {
		if s.Status == model.SubmissionConfirmed {
			confirmed = append(confirmed, s)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].CompletedAt.Before(confirmed[j].CompletedAt)
	})
	for i, s := range confirmed {
		s.Placement = i + 1
		s.Points = l.pointsFor(s.Placement)
	}
}

func (l *Ledger) pointsFor(placement int) int {
	if placement < 1 || placement > len(l.points) {
		return 0
	}
	return l.points[placement-1]
}

// Get returns a submission by id.
func (l *Ledger) Get(ctx context.Context, id string) (model.WinSubmission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sub, ok := l.subs[id]
	if !ok {
		return model.WinSubmission{}, ErrSubmissionNotFound
	}
	return *sub, nil
}

// Pending returns pending submissions ordered by completion time.
func (l *Ledger) Pending(ctx context.Context) []model.WinSubmission {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.WinSubmission
	for _, s := range l.subs {
		if s.Status == model.SubmissionPending {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out
}

// Leaderboard aggregates confirmed submissions per (username, platform):
// total points, win count, best placement, most recent win. Rows sort by
// total points descending; ties break by win count descending, then by
// earlier last win.
func (l *Ledger) Leaderboard(ctx context.Context, limit int) []types.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	type key struct{ username, platform string }
	rows := make(map[key]*types.Entry)
	for _, s := range l.subs {
		if s.Status != model.SubmissionConfirmed {
			continue
		}
		k := key{s.Username, s.Platform}
		row, ok := rows[k]
		if !ok {
			row = &types.Entry{
				Username:      s.Username,
				Platform:      s.Platform,
				BestPlacement: s.Placement,
				LastWin:       s.CompletedAt,
			}
			rows[k] = row
		}
		row.TotalPoints += s.Points
		row.Wins++
		if s.Placement < row.BestPlacement {
			row.BestPlacement = s.Placement
		}
		if s.CompletedAt.After(row.LastWin) {
			row.LastWin = s.CompletedAt
		}
	}

	out := make([]types.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].LastWin.Before(out[j].LastWin)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Count returns the total number of submissions tracked.
func (l *Ledger) Count(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs)
}

// Snapshot captures ledger state for persistence.
type Snapshot struct {
	Submissions []model.WinSubmission `json:"submissions"`
}

// Snapshot returns a serializable copy of the ledger state.
func (l *Ledger) Snapshot(ctx context.Context) Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := Snapshot{Submissions: make([]model.WinSubmission, 0, len(l.subs))}
	for _, s := range l.subs {
		snap.Submissions = append(snap.Submissions, *s)
	}
	sort.Slice(snap.Submissions, func(i, j int) bool {
		return snap.Submissions[i].SubmittedAt.Before(snap.Submissions[j].SubmittedAt)
	})
	return snap
}

// Restore replaces ledger state from a snapshot.
func (l *Ledger) Restore(ctx context.Context, snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = make(map[string]*model.WinSubmission, len(snap.Submissions))
	for i := range snap.Submissions {
		s := snap.Submissions[i]
		l.subs[s.ID] = &s
	}
}
