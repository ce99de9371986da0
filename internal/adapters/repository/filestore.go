package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/streamkit/bingo/internal/domain/deck"
	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
)

// State file names, one per concern so streamer tooling can edit decks
// without touching live game state.
const (
	decksFile       = "decks.json"
	playersFile     = "players.json"
	pendingFile     = "pending-events.json"
	historyFile     = "event-history.json"
	submissionsFile = "win-submissions.json"
)

const fileMode = 0o644

// FileStore persists snapshots as JSON files under a data directory.
type FileStore struct {
	dir    string
	pretty bool
}

// NewFileStore creates a FileStore with configuration options and ensures
// the data directory exists.
func NewFileStore(opts ...Option) (*FileStore, error) {
	s := &FileStore{
		dir:    "data",
		pretty: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w: %v", ErrPersistence, err)
	}
	return s, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

type decksDoc struct {
	deck.Snapshot
	LastUpdated time.Time `json:"last_updated"`
}

type playersDoc struct {
	Players     []model.PlayerState `json:"players"`
	LastUpdated time.Time           `json:"last_updated"`
}

type eventsDoc struct {
	Events      []model.PendingEvent `json:"events"`
	LastUpdated time.Time            `json:"last_updated"`
}

type submissionsDoc struct {
	Submissions []model.WinSubmission `json:"submissions"`
	LastUpdated time.Time             `json:"last_updated"`
}

// Load reads every state file; missing files contribute empty state.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	var decks decksDoc
	if err := s.readFile(decksFile, &decks); err != nil {
		return Snapshot{}, err
	}
	snap.Decks = decks.Snapshot

	var players playersDoc
	if err := s.readFile(playersFile, &players); err != nil {
		return Snapshot{}, err
	}
	snap.Players = players.Players

	var pending eventsDoc
	if err := s.readFile(pendingFile, &pending); err != nil {
		return Snapshot{}, err
	}
	var history eventsDoc
	if err := s.readFile(historyFile, &history); err != nil {
		return Snapshot{}, err
	}
	snap.Events = report.Snapshot{Pending: pending.Events, History: history.Events}

	var subs submissionsDoc
	if err := s.readFile(submissionsFile, &subs); err != nil {
		return Snapshot{}, err
	}
	snap.Wins = ledger.Snapshot{Submissions: subs.Submissions}

	return snap, nil
}

// Save writes every state file.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	now := time.Now()
	if err := s.writeFile(decksFile, decksDoc{Snapshot: snap.Decks, LastUpdated: now}); err != nil {
		return err
	}
	if err := s.writeFile(playersFile, playersDoc{Players: snap.Players, LastUpdated: now}); err != nil {
		return err
	}
	if err := s.writeFile(pendingFile, eventsDoc{Events: snap.Events.Pending, LastUpdated: now}); err != nil {
		return err
	}
	if err := s.writeFile(historyFile, eventsDoc{Events: snap.Events.History, LastUpdated: now}); err != nil {
		return err
	}
	return s.writeFile(submissionsFile, submissionsDoc{Submissions: snap.Wins.Submissions, LastUpdated: now})
}

// Export writes the full snapshot to a single timestamped backup file and
// returns its path.
func (s *FileStore) Export(ctx context.Context, snap Snapshot) (string, error) {
	snap.SavedAt = time.Now()
	name := fmt.Sprintf("backup-%d.json", snap.SavedAt.UnixMilli())
	if err := s.writeFile(name, snap); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Import reads a backup file produced by Export.
func (s *FileStore) Import(ctx context.Context, path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w: %v", path, ErrPersistence, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w: %v", path, ErrPersistence, err)
	}
	return snap, nil
}

func (s *FileStore) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w: %v", name, ErrPersistence, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w: %v", name, ErrPersistence, err)
	}
	return nil
}

func (s *FileStore) writeFile(name string, v any) error {
	var (
		data []byte
		err  error
	)
	if s.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", name, ErrPersistence, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, fileMode); err != nil {
		return fmt.Errorf("write %s: %w: %v", name, ErrPersistence, err)
	}
	return nil
}
