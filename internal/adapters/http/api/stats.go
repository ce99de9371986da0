// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatsProvider exposes the live game counters the service tracks: players
// holding cards, decks in the library, pending adjudications.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the streamer-facing stats read model.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler creates a stats handler over the given provider.
func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats handles GET /stats requests with the current counter map.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
