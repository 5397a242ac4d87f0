package redis

const (
	// KeyPrefixCount is the prefix for per-disease diagnosis counters.
	KeyPrefixCount = "leafscan:count:"
	// KeyPrefixSynthetic is the prefix for per-disease synthetic-diagnosis counters.
	KeyPrefixSynthetic = "leafscan:synthetic:"
	// KeyRecent is the list of most recent diagnoses.
	KeyRecent = "leafscan:recent"
)

// CountKey returns the counter key for a disease identifier.
func CountKey(id string) string {
	return KeyPrefixCount + id
}

// SyntheticKey returns the synthetic counter key for a disease identifier.
func SyntheticKey(id string) string {
	return KeyPrefixSynthetic + id
}
