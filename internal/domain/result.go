package domain

// ClassificationResult is a single diagnosis, either parsed from the remote
// classifier or fabricated locally when the classifier is unavailable.
// Synthetic marks the fabricated case so presentation can flag it.
type ClassificationResult struct {
	DiseaseID DiseaseID `json:"disease"`
	// Confidence is always in [0,1]; percentage display is up to the renderer.
	Confidence    float64 `json:"confidence"`
	DetailedClass string  `json:"detailed_class"`
	Synthetic     bool    `json:"synthetic"`
}

// Report is the complete shape handed to a renderer: the diagnosis, its
// resolved advisory, and whether the remote service answered for real.
// It carries everything needed to tell a real diagnosis from a stand-in
// without re-deriving anything.
type Report struct {
	Result           ClassificationResult `json:"result"`
	Advisory         AdvisoryRecord       `json:"advisory"`
	ServiceReachable bool                 `json:"service_reachable"`
}
