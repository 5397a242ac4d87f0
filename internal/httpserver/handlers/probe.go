package handlers

import (
	"net/http"

	"github.com/krishimitra/leafscan/internal/httpserver/deps"
)

type probeResponse struct {
	Triggered bool `json:"triggered"`
}

// Probe asks the health watcher for an on-demand backend re-probe, useful
// right after a backend deploy instead of waiting for the next tick. The
// probe runs asynchronously; /readyz reflects the outcome.
func Probe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		triggered := false
		if d.ProbeTrigger != nil {
			select {
			case d.ProbeTrigger <- struct{}{}:
				triggered = true
			default:
				// A probe is already queued.
			}
		}
		writeJSON(w, http.StatusAccepted, probeResponse{Triggered: triggered})
	}
}
