// Package service provides the core game service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streamkit/bingo/internal/adapters/notify"
	"github.com/streamkit/bingo/internal/adapters/repository"
	"github.com/streamkit/bingo/internal/domain/bingo"
	"github.com/streamkit/bingo/internal/domain/card"
	"github.com/streamkit/bingo/internal/domain/deck"
	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
	"github.com/streamkit/bingo/internal/domain/types"
	"github.com/streamkit/bingo/pkg/logger"
	"github.com/streamkit/bingo/pkg/metrics"
)

// Default game configuration.
const (
	defaultCardSize = 5
)

// playerEntry pairs a player's state with its own lock. All reads and
// writes of the state go through this lock, giving per-player atomicity
// without serializing unrelated players.
type playerEntry struct {
	mu    sync.Mutex
	state *model.PlayerState
}

// Service orchestrates the bingo game: card issuing, cell toggling, report
// aggregation, adjudication, and the win ledger. State changes are applied
// in memory first; persistence and notifications are best-effort
// afterwards, so neither can roll back live gameplay.
type Service struct {
	mu      sync.RWMutex
	players map[string]*playerEntry

	library *deck.Library
	reports *report.Aggregator
	wins    *ledger.Ledger

	store    repository.Store
	notifier notify.Notifier

	generator  *card.Generator
	cardSize   int
	points     []int
	policyName string
	fill       bingo.Policy

	clock func() time.Time
	rng   *rand.Rand

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the snapshot persistence store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithNotifier sets the outbound notification bus.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithCardSize sets the grid dimension for new cards.
func WithCardSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cardSize = size
		}
	}
}

// WithPoints sets the placement -> points table; index 0 is first place.
func WithPoints(points []int) Option {
	return func(s *Service) {
		if len(points) > 0 {
			s.points = points
		}
	}
}

// WithFillPolicy selects the win-detection fill policy by name.
func WithFillPolicy(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.policyName = name
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source. Tests use a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRand sets the random source used for card shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		players:    make(map[string]*playerEntry),
		cardSize:   defaultCardSize,
		points:     ledger.DefaultPoints,
		policyName: bingo.PolicyConfirmedOrSelfReported,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes components and loads persisted state if a store is
// configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.library = deck.NewLibrary()
	s.reports = report.New(report.WithClock(s.clock))
	s.wins = ledger.New(ledger.WithPoints(s.points), ledger.WithClock(s.clock))
	var cardOpts []card.Option
	if s.rng != nil {
		cardOpts = append(cardOpts, card.WithRand(s.rng))
	}
	s.generator = card.New(cardOpts...)
	s.fill = bingo.PolicyByName(s.policyName)

	if s.store != nil {
		snap, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		s.restoreLocked(ctx, snap)
	}

	s.started = true
	s.logger.Info(ctx, "bingo service started",
		logger.Int("cardSize", s.cardSize),
		logger.String("fillPolicy", s.policyName),
		logger.Int("players", len(s.players)),
	)
	return nil
}

// Stop persists state and shuts the service down.
func (s *Service) Stop() {
	ctx := context.Background()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	s.persist(ctx)
	if closer, ok := s.notifier.(interface{ Close() error }); ok && s.notifier != nil {
		_ = closer.Close()
	}
	s.logger.Info(ctx, "bingo service stopped")
}

// restoreLocked rebuilds in-memory state from a snapshot. Caller holds s.mu.
func (s *Service) restoreLocked(ctx context.Context, snap repository.Snapshot) {
	s.library.Restore(ctx, snap.Decks)
	s.reports.Restore(ctx, snap.Events)
	s.wins.Restore(ctx, snap.Wins)
	s.players = make(map[string]*playerEntry, len(snap.Players))
	for i := range snap.Players {
		st := snap.Players[i].Clone()
		if st.Checked == nil {
			st.Checked = make(map[model.Position]bool)
		}
		if st.ConfirmedTexts == nil {
			st.ConfirmedTexts = make(map[string]bool)
		}
		if st.BingoAchieved && st.BingoAchievedAt == nil {
			// A hand-edited state file can carry the achieved flag
			// without its timestamp. Placements are ordered by that
			// timestamp, so the achievement is cleared and the next
			// evaluation restamps it.
			st.BingoAchieved = false
			st.BingoType = ""
		}
		s.players[st.PlayerID] = &playerEntry{state: &st}
	}
}

// RequestCard issues a fresh card to a player. A player holds at most one
// card; a second request fails until an administrative reset.
func (s *Service) RequestCard(ctx context.Context, playerID, username, deckID string) (model.PlayerState, error) {
	var (
		source model.Deck
		events []string
		err    error
	)
	if deckID != "" {
		source, err = s.library.Get(ctx, deckID)
		if err != nil {
			return model.PlayerState{}, err
		}
		events = source.Events
	} else {
		decks, derr := s.library.ActiveDecks(ctx)
		if derr != nil {
			return model.PlayerState{}, derr
		}
		source = decks[0]
		events, err = s.library.ActiveEvents(ctx)
		if err != nil {
			return model.PlayerState{}, err
		}
	}

	s.mu.Lock()
	if _, exists := s.players[playerID]; exists {
		s.mu.Unlock()
		return model.PlayerState{}, ErrAlreadyHasCard
	}
	grid, err := s.generator.Generate(events, s.cardSize)
	if err != nil {
		s.mu.Unlock()
		return model.PlayerState{}, err
	}
	st := &model.PlayerState{
		PlayerID:       playerID,
		Username:       username,
		DeckID:         source.ID,
		DeckName:       source.Name,
		Card:           grid,
		CreatedAt:      s.clock(),
		Checked:        make(map[model.Position]bool),
		ConfirmedTexts: make(map[string]bool),
	}
	s.players[playerID] = &playerEntry{state: st}
	playerCount := len(s.players)
	s.mu.Unlock()

	metrics.RecordCardIssued()
	metrics.UpdateActivePlayers(playerCount)
	s.notify(ctx, notify.TopicCardIssued, map[string]any{
		"player_id": playerID,
		"username":  username,
		"deck_id":   source.ID,
		"deck_name": source.Name,
		"size":      s.cardSize,
	})
	s.persist(ctx)

	return st.Clone(), nil
}

// ToggleResult describes the outcome of a cell toggle.
type ToggleResult struct {
	ReportedText       string `json:"reported_text,omitempty"`
	BingoNewlyAchieved bool   `json:"bingo_newly_achieved"`
	BingoType          string `json:"bingo_type,omitempty"`
}

// ToggleCell marks or unmarks a card cell. Marking forwards the cell's
// event text to the report aggregator; unmarking does not retract the
// report, since a report says "this happened" independent of the player's
// current checkbox. The win condition is re-evaluated after every toggle.
func (s *Service) ToggleCell(ctx context.Context, playerID string, row, col int, marked bool) (ToggleResult, error) {
	entry, err := s.player(playerID)
	if err != nil {
		return ToggleResult{}, err
	}

	entry.mu.Lock()
	st := entry.state
	size := st.Card.Size()
	if row < 0 || row >= size || col < 0 || col >= size || st.Card[row][col] == model.FreeCell {
		entry.mu.Unlock()
		return ToggleResult{}, ErrInvalidCell
	}

	var res ToggleResult
	pos := model.Position{Row: row, Col: col}
	if marked {
		st.Checked[pos] = true
		text := st.Card[row][col]
		res.ReportedText = text
		_, added := s.reports.Report(ctx, text, model.Reporter{UserID: st.PlayerID, Username: st.Username})
		if added {
			metrics.RecordEventReport()
		} else {
			metrics.RecordDuplicateReport()
		}
		metrics.RecordCellMark()
	} else {
		delete(st.Checked, pos)
		metrics.RecordCellUnmark()
	}

	res.BingoNewlyAchieved = s.evaluateLocked(st)
	res.BingoType = st.BingoType
	username := st.Username
	entry.mu.Unlock()

	if res.BingoNewlyAchieved {
		s.notify(ctx, notify.TopicBingoAchieved, map[string]any{
			"player_id":  playerID,
			"username":   username,
			"bingo_type": res.BingoType,
		})
	}
	metrics.UpdatePendingEvents(s.reports.Size(ctx))
	s.persist(ctx)
	return res, nil
}

// evaluateLocked re-runs win detection for a player and records the first
// achievement. Idempotent once a bingo is achieved. Caller holds the
// player's lock.
func (s *Service) evaluateLocked(st *model.PlayerState) bool {
	if st.BingoAchieved {
		return false
	}
	result := bingo.Evaluate(st.Card, s.fill(st))
	if !result.Won {
		return false
	}
	now := s.clock()
	st.BingoAchieved = true
	st.BingoAchievedAt = &now
	st.BingoType = result.Label()
	metrics.RecordBingoAchieved()
	return true
}

// AdjudicateEvent resolves a pending event. Confirmation ratifies the event
// text for every player whose card contains it and re-runs win detection;
// rejection touches no player state. Returns the adjudicated event and the
// ids of affected players so the transport layer knows whom to notify.
func (s *Service) AdjudicateEvent(ctx context.Context, eventID string, confirmed bool) (model.PendingEvent, []string, error) {
	ev, err := s.reports.Adjudicate(ctx, eventID, confirmed)
	if err != nil {
		return model.PendingEvent{}, nil, err
	}
	metrics.UpdatePendingEvents(s.reports.Size(ctx))

	if !confirmed {
		metrics.RecordEventRejected()
		s.persist(ctx)
		return ev, nil, nil
	}
	metrics.RecordEventConfirmed()

	var affected []string
	var achieved []map[string]any
	for _, entry := range s.entries() {
		entry.mu.Lock()
		st := entry.state
		if st.Card.Contains(ev.Text) {
			st.ConfirmedTexts[ev.Text] = true
			affected = append(affected, st.PlayerID)
			if s.evaluateLocked(st) {
				achieved = append(achieved, map[string]any{
					"player_id":  st.PlayerID,
					"username":   st.Username,
					"bingo_type": st.BingoType,
				})
			}
		}
		entry.mu.Unlock()
	}
	sort.Strings(affected)
	for _, payload := range achieved {
		s.notify(ctx, notify.TopicBingoAchieved, payload)
	}

	s.notify(ctx, notify.TopicEventConfirmed, map[string]any{
		"event_id":         ev.ID,
		"text":             ev.Text,
		"affected_players": affected,
	})
	s.persist(ctx)
	return ev, affected, nil
}

// ClaimWin submits a win for a player who has achieved bingo. The claim is
// terminal for the card: it can succeed at most once.
func (s *Service) ClaimWin(ctx context.Context, playerID, platform, platformUsername string) (string, error) {
	entry, err := s.player(playerID)
	if err != nil {
		return "", err
	}

	entry.mu.Lock()
	st := entry.state
	if !st.BingoAchieved {
		entry.mu.Unlock()
		return "", ErrNoBingoYet
	}
	if st.WinClaimed {
		entry.mu.Unlock()
		return "", ErrAlreadyClaimed
	}
	sub := model.WinSubmission{
		PlayerID:         st.PlayerID,
		Username:         st.Username,
		Platform:         platform,
		PlatformUsername: platformUsername,
		BingoType:        st.BingoType,
		DeckID:           st.DeckID,
		DeckName:         st.DeckName,
		CompletedAt:      *st.BingoAchievedAt,
	}
	id, err := s.wins.Submit(ctx, sub)
	if err != nil {
		entry.mu.Unlock()
		return "", err
	}
	st.WinClaimed = true
	st.Platform = platform
	st.PlatformUsername = platformUsername
	username := st.Username
	entry.mu.Unlock()

	metrics.RecordWinSubmitted()
	metrics.UpdatePendingWins(len(s.wins.Pending(ctx)))
	s.notify(ctx, notify.TopicWinSubmitted, map[string]any{
		"submission_id": id,
		"player_id":     playerID,
		"username":      username,
		"platform":      platform,
	})
	s.persist(ctx)
	return id, nil
}

// AdjudicateWin confirms or rejects a win submission. Confirmation assigns
// placement and points from the achievement order of all confirmed wins.
func (s *Service) AdjudicateWin(ctx context.Context, submissionID string, confirmed bool) (model.WinSubmission, error) {
	sub, err := s.wins.Adjudicate(ctx, submissionID, confirmed)
	if err != nil {
		return model.WinSubmission{}, err
	}

	if confirmed {
		metrics.RecordWinConfirmed()
		s.notify(ctx, notify.TopicWinConfirmed, map[string]any{
			"submission_id": sub.ID,
			"player_id":     sub.PlayerID,
			"username":      sub.Username,
			"placement":     sub.Placement,
			"points":        sub.Points,
		})
	} else {
		metrics.RecordWinRejected()
	}
	metrics.UpdatePendingWins(len(s.wins.Pending(ctx)))
	s.persist(ctx)
	return sub, nil
}

// Leaderboard returns the top rows of the points leaderboard.
func (s *Service) Leaderboard(ctx context.Context, limit int) []types.Entry {
	return s.wins.Leaderboard(ctx, limit)
}

// PlayerStatus returns a copy of a player's current card state.
func (s *Service) PlayerStatus(ctx context.Context, playerID string) (model.PlayerState, error) {
	entry, err := s.player(playerID)
	if err != nil {
		return model.PlayerState{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state.Clone(), nil
}

// ResetPlayer discards a player's card so a new one can be requested.
// This is the administrative reset between game rounds.
func (s *Service) ResetPlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	if _, ok := s.players[playerID]; !ok {
		s.mu.Unlock()
		return ErrPlayerNotFound
	}
	delete(s.players, playerID)
	playerCount := len(s.players)
	s.mu.Unlock()

	metrics.UpdateActivePlayers(playerCount)
	s.persist(ctx)
	return nil
}

// ExportState writes the full game state to a timestamped backup file and
// returns its path. Requires a store with backup support.
func (s *Service) ExportState(ctx context.Context) (string, error) {
	exporter, ok := s.store.(repository.Exporter)
	if !ok {
		return "", ErrBackupUnsupported
	}
	path, err := exporter.Export(ctx, s.snapshot(ctx))
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "state exported", logger.String("path", path))
	return path, nil
}

// ImportState replaces the live game state with a backup file's contents
// and persists the result.
func (s *Service) ImportState(ctx context.Context, path string) error {
	exporter, ok := s.store.(repository.Exporter)
	if !ok {
		return ErrBackupUnsupported
	}
	snap, err := exporter.Import(ctx, path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.restoreLocked(ctx, snap)
	playerCount := len(s.players)
	s.mu.Unlock()

	metrics.UpdateActivePlayers(playerCount)
	metrics.UpdateDeckCount(len(s.library.List(ctx)))
	metrics.UpdatePendingEvents(s.reports.Size(ctx))
	metrics.UpdatePendingWins(len(s.wins.Pending(ctx)))
	s.persist(ctx)
	s.logger.Info(ctx, "state imported", logger.String("path", path))
	return nil
}

// PendingEvents lists events awaiting streamer adjudication.
func (s *Service) PendingEvents(ctx context.Context) []model.PendingEvent {
	return s.reports.Pending(ctx)
}

// PendingWins lists win submissions awaiting streamer adjudication.
func (s *Service) PendingWins(ctx context.Context) []model.WinSubmission {
	return s.wins.Pending(ctx)
}

// DeckInfo pairs a deck with its current active flag for listings.
type DeckInfo struct {
	model.Deck
	Active bool `json:"active"`
}

// SaveDeck stores or replaces a deck, assigning an id and creation time to
// new decks.
func (s *Service) SaveDeck(ctx context.Context, d model.Deck) (model.Deck, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.clock()
	}
	if d.Type == "" {
		d.Type = model.DeckMain
	}
	s.library.Put(ctx, d)
	metrics.UpdateDeckCount(len(s.library.List(ctx)))
	s.persist(ctx)
	return d, nil
}

// DeleteDeck removes a deck, deactivating it first.
func (s *Service) DeleteDeck(ctx context.Context, id string) error {
	if err := s.library.Delete(ctx, id); err != nil {
		return err
	}
	metrics.UpdateDeckCount(len(s.library.List(ctx)))
	s.persist(ctx)
	return nil
}

// ActivateDeck toggles a deck's active state and returns the new state.
func (s *Service) ActivateDeck(ctx context.Context, id string) (bool, error) {
	active, err := s.library.Activate(ctx, id)
	if err != nil {
		return false, err
	}
	s.persist(ctx)
	return active, nil
}

// ListDecks returns all decks with their active flags.
func (s *Service) ListDecks(ctx context.Context) []DeckInfo {
	decks := s.library.List(ctx)
	out := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		out = append(out, DeckInfo{Deck: d, Active: s.library.IsActive(ctx, d.ID)})
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	s.mu.RLock()
	started := s.started
	playerCount := len(s.players)
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    started,
		"cardSize":   s.cardSize,
		"fillPolicy": s.policyName,
	}
	if started {
		stats["players"] = playerCount
		stats["decks"] = len(s.library.List(ctx))
		stats["pendingEvents"] = s.reports.Size(ctx)
		stats["pendingWins"] = len(s.wins.Pending(ctx))
		stats["submissions"] = s.wins.Count(ctx)

		metrics.UpdateActivePlayers(playerCount)
		metrics.UpdatePendingEvents(s.reports.Size(ctx))
		metrics.UpdatePendingWins(len(s.wins.Pending(ctx)))
	}
	return stats
}

// player fetches a registry entry by id.
func (s *Service) player(playerID string) (*playerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return entry, nil
}

// entries snapshots the registry for iteration without holding s.mu.
func (s *Service) entries() []*playerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*playerEntry, 0, len(s.players))
	for _, entry := range s.players {
		out = append(out, entry)
	}
	return out
}

// snapshot assembles the full serializable game state.
func (s *Service) snapshot(ctx context.Context) repository.Snapshot {
	snap := repository.Snapshot{
		Decks:   s.library.Snapshot(ctx),
		Events:  s.reports.Snapshot(ctx),
		Wins:    s.wins.Snapshot(ctx),
		SavedAt: s.clock(),
	}
	for _, entry := range s.entries() {
		entry.mu.Lock()
		snap.Players = append(snap.Players, entry.state.Clone())
		entry.mu.Unlock()
	}
	sort.Slice(snap.Players, func(i, j int) bool {
		return snap.Players[i].PlayerID < snap.Players[j].PlayerID
	})
	return snap
}

// persist saves the full snapshot. In-memory state is already applied when
// this runs; a store failure is logged and counted, never rolled back, so
// live gameplay survives a broken disk.
func (s *Service) persist(ctx context.Context) {
	if s.store == nil {
		return
	}

	if err := s.store.Save(ctx, s.snapshot(ctx)); err != nil {
		metrics.RecordPersistenceError()
		s.logger.Error(ctx, "snapshot save failed", logger.Error(err))
	}
}

// notify publishes a best-effort notification. Failures are logged and
// counted; they never affect the operation that triggered them.
func (s *Service) notify(ctx context.Context, topic string, payload any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, topic, payload); err != nil {
		metrics.RecordNotifyError()
		s.logger.Warn(ctx, "notification publish failed",
			logger.String("topic", topic),
			logger.Error(err),
		)
	}
}
