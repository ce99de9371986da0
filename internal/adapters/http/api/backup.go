package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// BackupDependencies defines the whole-state backup operations used by the
// backup handler.
type BackupDependencies interface {
	ExportState(ctx context.Context) (string, error)
	ImportState(ctx context.Context, path string) error
}

// BackupHandler serves streamer-side export/import of the full game state.
type BackupHandler struct {
	deps BackupDependencies
}

// NewBackupHandler creates a backup handler with the given dependencies.
func NewBackupHandler(deps BackupDependencies) *BackupHandler {
	return &BackupHandler{deps: deps}
}

type exportResponse struct {
	Path string `json:"path"`
}

// HandleExport handles POST /export requests: write a backup file and
// return its path.
func (h *BackupHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	path, err := h.deps.ExportState(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, exportResponse{Path: path})
}

type importRequest struct {
	Path string `json:"path"`
}

// HandleImport handles POST /import requests: replace the live state with
// a previously exported backup.
func (h *BackupHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op+": path is required", ErrBadRequest))
		return
	}

	if err := h.deps.ImportState(r.Context(), req.Path); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
