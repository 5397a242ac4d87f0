package handlers

import (
	"net/http"

	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/synth"
)

type classEntry struct {
	DetailedClass string                `json:"detailed_class,omitempty"`
	DisplayLabel  string                `json:"display_label,omitempty"`
	Advice        domain.AdvisoryRecord `json:"advice"`
}

type classesResponse struct {
	Diseases map[domain.DiseaseID]classEntry `json:"diseases"`
}

// Classes lists the full advisory catalog with the identifier-to-label
// mappings, the documentation surface the original backend exposed.
func Classes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := d.Catalog.Records()

		diseases := make(map[domain.DiseaseID]classEntry, len(records))
		for id, rec := range records {
			entry := classEntry{Advice: rec}
			if label, ok := synth.Label(id); ok {
				entry.DetailedClass = label
				entry.DisplayLabel = domain.FormatDetailedClass(label)
			}
			diseases[id] = entry
		}

		writeJSON(w, http.StatusOK, classesResponse{Diseases: diseases})
	}
}
