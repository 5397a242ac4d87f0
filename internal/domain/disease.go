package domain

// DiseaseID is a short slug naming a diagnosis class. The set of valid
// identifiers is closed and versioned with the catalog; anything outside it
// resolves to the healthy advisory entry.
type DiseaseID string

const (
	DiseaseHealthy         DiseaseID = "healthy"
	DiseaseBacterialBlight DiseaseID = "bacterial_blight"
	DiseaseLeafSpotEarly   DiseaseID = "leaf_spot_early"
	DiseaseLeafSpotLate    DiseaseID = "leaf_spot_late"
)

// KnownDiseases returns the closed identifier set in a stable order.
func KnownDiseases() []DiseaseID {
	return []DiseaseID{
		DiseaseHealthy,
		DiseaseBacterialBlight,
		DiseaseLeafSpotEarly,
		DiseaseLeafSpotLate,
	}
}

// IsKnownDisease reports whether id belongs to the closed set.
func IsKnownDisease(id DiseaseID) bool {
	switch id {
	case DiseaseHealthy, DiseaseBacterialBlight, DiseaseLeafSpotEarly, DiseaseLeafSpotLate:
		return true
	}
	return false
}
