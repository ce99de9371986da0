// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/streamkit/bingo/internal/domain/model"
)

// CardDependencies defines the interface for card issuing.
type CardDependencies interface {
	RequestCard(ctx context.Context, playerID, username, deckID string) (model.PlayerState, error)
}

// CardsHandler handles card requests.
type CardsHandler struct {
	deps CardDependencies
}

// NewCardsHandler creates a new cards handler.
func NewCardsHandler(deps CardDependencies) *CardsHandler {
	return &CardsHandler{deps: deps}
}

type cardRequest struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	DeckID   string `json:"deck_id,omitempty"`
}

func (c cardRequest) validate() error {
	switch {
	case strings.TrimSpace(c.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(c.Username) == "":
		return errors.New("missing username")
	}
	return nil
}

// HandlePostCard handles POST /cards requests. Each player holds at most
// one card per round; a second request is answered with 409.
func (h *CardsHandler) HandlePostCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_card"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	state, err := h.deps.RequestCard(r.Context(), req.PlayerID, req.Username, req.DeckID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}
