// Package synth fabricates structurally valid classification results for the
// fallback path, so the caller always has a complete diagnosis to render even
// when the inference backend is down.
package synth

import (
	"math/rand"

	"github.com/krishimitra/leafscan/internal/domain"
)

const (
	confidenceFloor = 0.75
	confidenceSpan  = 0.20 // confidence is uniform in [0.75, 0.95)
)

// labelByID is the fixed identifier-to-label table. One-to-one, covers every
// identifier in the closed set; for a given identifier the derived label is
// always the same, only the identifier choice and confidence are random.
var labelByID = map[domain.DiseaseID]string{
	domain.DiseaseHealthy:         "Tomato___Healthy",
	domain.DiseaseBacterialBlight: "Tomato___Bacterial_spot",
	domain.DiseaseLeafSpotEarly:   "Tomato___Early_blight",
	domain.DiseaseLeafSpotLate:    "Tomato___Late_blight",
}

var idByLabel = func() map[string]domain.DiseaseID {
	m := make(map[string]domain.DiseaseID, len(labelByID))
	for id, label := range labelByID {
		m[label] = id
	}
	return m
}()

// Synthesize returns a fabricated result: a uniformly random identifier from
// the closed set, a confidence in [0.75, 0.95), and the identifier's fixed
// detailed-class label. Safe for concurrent use.
func Synthesize() domain.ClassificationResult {
	ids := domain.KnownDiseases()
	id := ids[rand.Intn(len(ids))]

	return domain.ClassificationResult{
		DiseaseID:     id,
		Confidence:    confidenceFloor + rand.Float64()*confidenceSpan,
		DetailedClass: labelByID[id],
		Synthetic:     true,
	}
}

// Label returns the fixed detailed-class label for id. The second return is
// false for identifiers outside the closed set.
func Label(id domain.DiseaseID) (string, bool) {
	label, ok := labelByID[id]
	return label, ok
}

// DiseaseForLabel is the reverse lookup of the fixed table.
func DiseaseForLabel(label string) (domain.DiseaseID, bool) {
	id, ok := idByLabel[label]
	return id, ok
}

// LabelTable returns a copy of the identifier-to-label table.
func LabelTable() map[domain.DiseaseID]string {
	out := make(map[domain.DiseaseID]string, len(labelByID))
	for id, label := range labelByID {
		out[id] = label
	}
	return out
}
