package handlers

import (
	"net/http"
	"time"

	"github.com/krishimitra/leafscan/internal/httpserver/deps"
)

type readyzResponse struct {
	// Ready is always true once the server is up: the fallback path keeps
	// the service usable even when the backend is down.
	Ready            bool   `json:"ready"`
	BackendReachable bool   `json:"backend_reachable"`
	LastChecked      string `json:"last_checked,omitempty"`
}

// Readyz reports the last-known backend connectivity from the health
// watcher. UIs use the flag to warn up front that results will be
// synthesized.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reachable, checkedAt := d.Connectivity.Reachable()

		resp := readyzResponse{
			Ready:            true,
			BackendReachable: reachable,
		}
		if !checkedAt.IsZero() {
			resp.LastChecked = checkedAt.UTC().Format(time.RFC3339)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
