package domain

// AdvisoryRecord carries the human-facing content for one disease identifier.
// Records are built once at startup and never mutated afterwards.
type AdvisoryRecord struct {
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Treatment   string   `json:"treatment" yaml:"treatment"`
	Prevention  []string `json:"prevention" yaml:"prevention"`
}
