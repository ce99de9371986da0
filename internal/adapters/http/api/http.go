// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	app "github.com/streamkit/bingo/internal/app"
	"github.com/streamkit/bingo/internal/domain/card"
	"github.com/streamkit/bingo/internal/domain/deck"
	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
	"github.com/streamkit/bingo/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Card lifecycle.
	RequestCard(ctx context.Context, playerID, username, deckID string) (model.PlayerState, error)
	ToggleCell(ctx context.Context, playerID string, row, col int, marked bool) (app.ToggleResult, error)
	PlayerStatus(ctx context.Context, playerID string) (model.PlayerState, error)
	ResetPlayer(ctx context.Context, playerID string) error

	// Event confirmation pipeline.
	PendingEvents(ctx context.Context) []model.PendingEvent
	AdjudicateEvent(ctx context.Context, eventID string, confirmed bool) (model.PendingEvent, []string, error)

	// Win claims and the leaderboard.
	ClaimWin(ctx context.Context, playerID, platform, platformUsername string) (string, error)
	PendingWins(ctx context.Context) []model.WinSubmission
	AdjudicateWin(ctx context.Context, submissionID string, confirmed bool) (model.WinSubmission, error)
	Leaderboard(ctx context.Context, limit int) []Entry

	// Deck management.
	SaveDeck(ctx context.Context, d model.Deck) (model.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	ActivateDeck(ctx context.Context, id string) (bool, error)
	ListDecks(ctx context.Context) []app.DeckInfo

	// Whole-state backups.
	BackupDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	cardsHandler       *CardsHandler
	playersHandler     *PlayersHandler
	eventsHandler      *EventsHandler
	winsHandler        *WinsHandler
	leaderboardHandler *LeaderboardHandler
	decksHandler       *DecksHandler
	backupHandler      *BackupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		cardsHandler:       NewCardsHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		eventsHandler:      NewEventsHandler(deps),
		winsHandler:        NewWinsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		decksHandler:       NewDecksHandler(deps),
		backupHandler:      NewBackupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/cards", MetricsMiddleware(s.cardsHandler.HandlePostCard, "cards"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandlePlayer, "players"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleListPending, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleAdjudicate, "events"))
	mux.HandleFunc("/wins", MetricsMiddleware(s.winsHandler.HandleListPending, "wins"))
	mux.HandleFunc("/wins/", MetricsMiddleware(s.winsHandler.HandleAdjudicate, "wins"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/decks", MetricsMiddleware(s.decksHandler.HandleDecks, "decks"))
	mux.HandleFunc("/decks/", MetricsMiddleware(s.decksHandler.HandleDeck, "decks"))
	mux.HandleFunc("/export", MetricsMiddleware(s.backupHandler.HandleExport, "export"))
	mux.HandleFunc("/import", MetricsMiddleware(s.backupHandler.HandleImport, "import"))
}

type adjudicateRequest struct {
	Confirmed bool `json:"confirmed"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates well-known domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, app.ErrPlayerNotFound),
		errors.Is(err, report.ErrEventNotFound),
		errors.Is(err, ledger.ErrSubmissionNotFound),
		errors.Is(err, deck.ErrDeckNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, app.ErrAlreadyHasCard),
		errors.Is(err, app.ErrAlreadyClaimed),
		errors.Is(err, ledger.ErrAlreadyAdjudicated):
		writeError(w, http.StatusConflict, "conflict", Wrap(op, err))
	case errors.Is(err, app.ErrInvalidCell),
		errors.Is(err, app.ErrNoBingoYet),
		errors.Is(err, deck.ErrNoActiveDeck),
		errors.Is(err, card.ErrInsufficientEvents),
		errors.Is(err, card.ErrInvalidSize):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", Wrap(op, err))
	case errors.Is(err, app.ErrBackupUnsupported):
		writeError(w, http.StatusNotImplemented, "unsupported", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
