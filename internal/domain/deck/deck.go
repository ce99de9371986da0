// Package deck maintains the collection of bingo decks and their
// active/inactive bookkeeping.
package deck

import (
	"context"
	"sort"
	"sync"

	"github.com/streamkit/bingo/internal/domain/model"
)

// Library owns the deck collection. At most one main deck is active at a
// time; any subset of addon decks may be active alongside it.
type Library struct {
	mu           sync.RWMutex
	decks        map[string]model.Deck
	activeMain   string
	activeAddons map[string]bool
}

// NewLibrary creates an empty deck library.
func NewLibrary() *Library {
	return &Library{
		decks:        make(map[string]model.Deck),
		activeAddons: make(map[string]bool),
	}
}

// Put stores or replaces a deck.
func (l *Library) Put(ctx context.Context, d model.Deck) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decks[d.ID] = d
}

// Get returns the deck with the given id.
func (l *Library) Get(ctx context.Context, id string) (model.Deck, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.decks[id]
	if !ok {
		return model.Deck{}, ErrDeckNotFound
	}
	return d, nil
}

// Delete removes a deck, deactivating it first.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.decks[id]; !ok {
		return ErrDeckNotFound
	}
	delete(l.decks, id)
	if l.activeMain == id {
		l.activeMain = ""
	}
	delete(l.activeAddons, id)
	return nil
}

// Activate toggles a deck's active state. A main deck replaces (or, when
// already active, clears) the current active main deck; addon decks toggle
// independently. Returns the resulting active state.
func (l *Library) Activate(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.decks[id]
	if !ok {
		return false, ErrDeckNotFound
	}
	if d.Type == model.DeckAddon {
		if l.activeAddons[id] {
			delete(l.activeAddons, id)
			return false, nil
		}
		l.activeAddons[id] = true
		return true, nil
	}
	if l.activeMain == id {
		l.activeMain = ""
		return false, nil
	}
	l.activeMain = id
	return true, nil
}

// List returns all decks ordered by creation time.
func (l *Library) List(ctx context.Context) []model.Deck {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Deck, 0, len(l.decks))
	for _, d := range l.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// IsActive reports whether the deck with the given id is currently active.
func (l *Library) IsActive(ctx context.Context, id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activeMain == id || l.activeAddons[id]
}

// ActiveDecks returns the active main deck (if any) followed by active
// addon decks. ErrNoActiveDeck when nothing is active.
func (l *Library) ActiveDecks(ctx context.Context) ([]model.Deck, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.Deck
	if d, ok := l.decks[l.activeMain]; ok {
		out = append(out, d)
	}
	addons := make([]model.Deck, 0, len(l.activeAddons))
	for id := range l.activeAddons {
		if d, ok := l.decks[id]; ok {
			addons = append(addons, d)
		}
	}
	sort.Slice(addons, func(i, j int) bool { return addons[i].ID < addons[j].ID })
	out = append(out, addons...)
	if len(out) == 0 {
		return nil, ErrNoActiveDeck
	}
	return out, nil
}

// ActiveEvents returns the union of event strings across active decks,
// preserving deck order and dropping duplicates.
func (l *Library) ActiveEvents(ctx context.Context) ([]string, error) {
	decks, err := l.ActiveDecks(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var events []string
	for _, d := range decks {
		for _, e := range d.Events {
			if seen[e] {
				continue
			}
			seen[e] = true
			events = append(events, e)
		}
	}
	return events, nil
}

// Snapshot captures the library state for persistence.
type Snapshot struct {
	Decks            []model.Deck `json:"decks"`
	ActiveDeckID     string       `json:"active_deck_id,omitempty"`
	ActiveAddonDecks []string     `json:"active_addon_decks,omitempty"`
}

// Snapshot returns a serializable copy of the library state.
func (l *Library) Snapshot(ctx context.Context) Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := Snapshot{ActiveDeckID: l.activeMain}
	for _, d := range l.decks {
		snap.Decks = append(snap.Decks, d)
	}
	sort.Slice(snap.Decks, func(i, j int) bool { return snap.Decks[i].ID < snap.Decks[j].ID })
	for id := range l.activeAddons {
		snap.ActiveAddonDecks = append(snap.ActiveAddonDecks, id)
	}
	sort.Strings(snap.ActiveAddonDecks)
	return snap
}

// Restore replaces the library state from a snapshot.
func (l *Library) Restore(ctx context.Context, snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decks = make(map[string]model.Deck, len(snap.Decks))
	for _, d := range snap.Decks {
		l.decks[d.ID] = d
	}
	l.activeMain = snap.ActiveDeckID
	l.activeAddons = make(map[string]bool, len(snap.ActiveAddonDecks))
	for _, id := range snap.ActiveAddonDecks {
		l.activeAddons[id] = true
	}
}
