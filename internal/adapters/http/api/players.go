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

// PlayerDependencies defines the interface for per-player operations.
type PlayerDependencies interface {
	PlayerStatus(ctx context.Context, playerID string) (model.PlayerState, error)
	ToggleCell(ctx context.Context, playerID string, row, col int, marked bool) (app.ToggleResult, error)
	ClaimWin(ctx context.Context, playerID, platform, platformUsername string) (string, error)
	ResetPlayer(ctx context.Context, playerID string) error
}

// PlayersHandler handles player requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type toggleRequest struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Marked bool `json:"marked"`
}

type claimRequest struct {
	Platform         string `json:"platform"`
	PlatformUsername string `json:"platform_username"`
}

func (c claimRequest) validate() error {
	switch {
	case strings.TrimSpace(c.Platform) == "":
		return errors.New("missing platform")
	case strings.TrimSpace(c.PlatformUsername) == "":
		return errors.New("missing platform_username")
	}
	return nil
}

type claimResponse struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

// HandlePlayer dispatches /players/{player_id}[/action] requests:
//
//	GET  /players/{id}         -> card status
//	POST /players/{id}/toggle  -> mark or unmark a cell
//	POST /players/{id}/claim   -> submit a win claim
//	POST /players/{id}/reset   -> administrative card reset
func (h *PlayersHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.player"
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	playerID, action, _ := strings.Cut(path, "/")
	if playerID == "" || strings.Contains(action, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.handleStatus(w, r, playerID)
	case action == "toggle" && r.Method == http.MethodPost:
		h.handleToggle(w, r, playerID)
	case action == "claim" && r.Method == http.MethodPost:
		h.handleClaim(w, r, playerID)
	case action == "reset" && r.Method == http.MethodPost:
		h.handleReset(w, r, playerID)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleStatus(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.player_status"
	state, err := h.deps.PlayerStatus(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlayersHandler) handleToggle(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.player_toggle"
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.ToggleCell(r.Context(), playerID, req.Row, req.Col, req.Marked)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *PlayersHandler) handleClaim(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.player_claim"
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	id, err := h.deps.ClaimWin(r.Context(), playerID, req.Platform, req.PlatformUsername)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, claimResponse{SubmissionID: id, Status: "pending"})
}

func (h *PlayersHandler) handleReset(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.player_reset"
	if err := h.deps.ResetPlayer(r.Context(), playerID); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
