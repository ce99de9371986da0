// Package repository defines the snapshot persistence contract and its
// JSON-file implementation.
package repository

import (
	"context"
	"time"

	"github.com/streamkit/bingo/internal/domain/deck"
	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
)

// Snapshot is the whole serializable game state. Saving and reloading a
// snapshot reproduces an observably identical service: same decks, same
// pending events, same leaderboard.
type Snapshot struct {
	Decks   deck.Snapshot       `json:"decks"`
	Players []model.PlayerState `json:"players"`
	Events  report.Snapshot     `json:"events"`
	Wins    ledger.Snapshot     `json:"wins"`
	SavedAt time.Time           `json:"saved_at"`
}

// Store provides whole-snapshot load/save. Implementations need no
// partial-write semantics; the service always persists the full state.
type Store interface {
	// Load reads the persisted snapshot. A store with no prior state
	// returns an empty snapshot, not an error.
	Load(ctx context.Context) (Snapshot, error)

	// Save persists the full snapshot.
	Save(ctx context.Context, snap Snapshot) error
}

// Exporter is the optional backup surface. Stores that can round-trip the
// whole state through a single backup file implement it alongside Store.
type Exporter interface {
	// Export writes snap to one timestamped backup file and returns its
	// path.
	Export(ctx context.Context, snap Snapshot) (string, error)

	// Import reads a backup file previously written by Export.
	Import(ctx context.Context, path string) (Snapshot, error)
}
