// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/streamkit/bingo/internal/domain/model"
)

// WinDependencies defines the interface for win adjudication.
type WinDependencies interface {
	PendingWins(ctx context.Context) []model.WinSubmission
	AdjudicateWin(ctx context.Context, submissionID string, confirmed bool) (model.WinSubmission, error)
}

// WinsHandler handles win submission requests.
type WinsHandler struct {
	deps WinDependencies
}

// NewWinsHandler creates a new wins handler.
func NewWinsHandler(deps WinDependencies) *WinsHandler {
	return &WinsHandler{deps: deps}
}

// HandleListPending handles GET /wins requests.
func (h *WinsHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.PendingWins(r.Context()))
}

// HandleAdjudicate handles POST /wins/{submission_id}/adjudicate requests.
// Confirming a win recomputes placements for every confirmed submission,
// ordered by bingo completion time.
func (h *WinsHandler) HandleAdjudicate(w http.ResponseWriter, r *http.Request) {
	const op = "api.adjudicate_win"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/wins/")
	submissionID, ok := strings.CutSuffix(path, "/adjudicate")
	if !ok || submissionID == "" || strings.Contains(submissionID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req adjudicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	sub, err := h.deps.AdjudicateWin(r.Context(), submissionID, req.Confirmed)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
