package handlers

import (
	"net/http"

	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/logger"
	redisstore "github.com/krishimitra/leafscan/internal/store/redis"
)

type statsResponse struct {
	Counts map[domain.DiseaseID]redisstore.DiseaseStats `json:"counts"`
	Recent []redisstore.RecentDiagnosis                 `json:"recent"`
}

// Stats returns per-disease diagnosis counters and the recent-diagnosis
// list. Answers 503 when the store is not configured.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "diagnosis stats are disabled")
			return
		}

		ctx := r.Context()

		ids := make([]domain.DiseaseID, 0)
		for id := range d.Catalog.Records() {
			ids = append(ids, id)
		}

		counts, err := d.Store.GetStats(ctx, ids)
		if err != nil {
			d.Logger.Warn("failed to read diagnosis stats", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "diagnosis stats are unavailable")
			return
		}

		recent, err := d.Store.RecentDiagnoses(ctx, redisstore.RecentLimit)
		if err != nil {
			d.Logger.Warn("failed to read recent diagnoses", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "diagnosis stats are unavailable")
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{Counts: counts, Recent: recent})
	}
}
