// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/streamkit/bingo/internal/domain/model"
)

// EventDependencies defines the interface for the event confirmation queue.
type EventDependencies interface {
	PendingEvents(ctx context.Context) []model.PendingEvent
	AdjudicateEvent(ctx context.Context, eventID string, confirmed bool) (model.PendingEvent, []string, error)
}

// EventsHandler handles event confirmation requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type adjudicateEventResponse struct {
	Event           model.PendingEvent `json:"event"`
	AffectedPlayers []string           `json:"affected_players"`
}

// HandleListPending handles GET /events requests.
func (h *EventsHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.PendingEvents(r.Context()))
}

// HandleAdjudicate handles POST /events/{event_id}/adjudicate requests.
func (h *EventsHandler) HandleAdjudicate(w http.ResponseWriter, r *http.Request) {
	const op = "api.adjudicate_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/events/")
	eventID, ok := strings.CutSuffix(path, "/adjudicate")
	if !ok || eventID == "" || strings.Contains(eventID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req adjudicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ev, affected, err := h.deps.AdjudicateEvent(r.Context(), eventID, req.Confirmed)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, adjudicateEventResponse{Event: ev, AffectedPlayers: affected})
}
