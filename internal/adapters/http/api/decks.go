// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	app "github.com/streamkit/bingo/internal/app"
	"github.com/streamkit/bingo/internal/domain/model"
)

// DeckDependencies defines the interface for deck management.
type DeckDependencies interface {
	SaveDeck(ctx context.Context, d model.Deck) (model.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	ActivateDeck(ctx context.Context, id string) (bool, error)
	ListDecks(ctx context.Context) []app.DeckInfo
}

// DecksHandler handles deck management requests.
type DecksHandler struct {
	deps DeckDependencies
}

// NewDecksHandler creates a new decks handler.
func NewDecksHandler(deps DeckDependencies) *DecksHandler {
	return &DecksHandler{deps: deps}
}

type deckRequest struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Type   string   `json:"type,omitempty"`
	Events []string `json:"events"`
}

func (d deckRequest) validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return errors.New("missing name")
	case len(d.Events) == 0:
		return errors.New("missing events")
	}
	if d.Type != "" && d.Type != string(model.DeckMain) && d.Type != string(model.DeckAddon) {
		return errors.New("type must be main or addon")
	}
	return nil
}

type activateResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// HandleDecks handles GET /decks and POST /decks requests.
func (h *DecksHandler) HandleDecks(w http.ResponseWriter, r *http.Request) {
	const op = "api.decks"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ListDecks(r.Context()))
	case http.MethodPost:
		var req deckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		saved, err := h.deps.SaveDeck(r.Context(), model.Deck{
			ID:     req.ID,
			Name:   req.Name,
			Type:   model.DeckType(req.Type),
			Events: req.Events,
		})
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	default:
		http.NotFound(w, r)
	}
}

// HandleDeck dispatches /decks/{deck_id}[/action] requests:
//
//	DELETE /decks/{id}          -> remove a deck
//	POST   /decks/{id}/activate -> toggle active state
func (h *DecksHandler) HandleDeck(w http.ResponseWriter, r *http.Request) {
	const op = "api.deck"
	path := strings.TrimPrefix(r.URL.Path, "/decks/")
	deckID, action, _ := strings.Cut(path, "/")
	if deckID == "" || strings.Contains(action, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodDelete:
		if err := h.deps.DeleteDeck(r.Context(), deckID); err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	case action == "activate" && r.Method == http.MethodPost:
		active, err := h.deps.ActivateDeck(r.Context(), deckID)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, activateResponse{ID: deckID, Active: active})
	default:
		http.NotFound(w, r)
	}
}
