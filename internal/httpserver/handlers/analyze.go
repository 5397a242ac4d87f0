package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/inference"
	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/utils"
)

// analyzeResponse is the payload handed to the UI. It mirrors the diagnosis
// report, flattened for the renderer, and always distinguishes a real
// diagnosis from a synthesized one.
type analyzeResponse struct {
	Disease          domain.DiseaseID      `json:"disease"`
	Confidence       float64               `json:"confidence"`
	DetailedClass    string                `json:"detailed_class"`
	DisplayLabel     string                `json:"display_label"`
	Synthetic        bool                  `json:"synthetic"`
	ServiceReachable bool                  `json:"service_reachable"`
	Advice           domain.AdvisoryRecord `json:"advice"`
}

// Analyze accepts a multipart upload (form field "image"), runs one
// classification attempt and returns the complete report. Only a missing or
// invalid upload produces an error status; backend failures come back as a
// 200 with a synthetic, clearly flagged diagnosis.
func Analyze(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, d.MaxUploadBytes)

		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No image uploaded")
			return
		}
		defer utils.Close(file)

		if !allowedImageName(header.Filename) {
			writeError(w, http.StatusBadRequest, "Please upload JPG or PNG image")
			return
		}

		image, err := io.ReadAll(file)
		if err != nil {
			d.Logger.Warn("failed to read upload", logger.Error(err))
			writeError(w, http.StatusBadRequest, "Could not read uploaded image")
			return
		}

		report, err := d.Orchestrator.Analyze(r.Context(), image)
		if err != nil {
			if errors.Is(err, inference.ErrMissingInput) {
				writeError(w, http.StatusBadRequest, "No image uploaded")
				return
			}
			// Analyze only fails hard on missing input; anything else here
			// is a programming error.
			d.Logger.Error("analyze returned unexpected error", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Server error. Please try again.")
			return
		}

		recordStats(r, d, report)

		writeJSON(w, http.StatusOK, analyzeResponse{
			Disease:          report.Result.DiseaseID,
			Confidence:       report.Result.Confidence,
			DetailedClass:    report.Result.DetailedClass,
			DisplayLabel:     domain.FormatDetailedClass(report.Result.DetailedClass),
			Synthetic:        report.Result.Synthetic,
			ServiceReachable: report.ServiceReachable,
			Advice:           report.Advisory,
		})
	}
}

// recordStats updates diagnosis counters, best effort: a stats failure never
// touches the response.
func recordStats(r *http.Request, d deps.Deps, report *domain.Report) {
	if d.Store == nil {
		return
	}
	if err := d.Store.RecordDiagnosis(r.Context(), report); err != nil {
		d.Logger.Warn("failed to record diagnosis stats", logger.Error(err))
	}
}

func allowedImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
