package advisory

import (
	"fmt"

	"github.com/krishimitra/leafscan/internal/domain"
)

// Catalog maps disease identifiers to advisory records. It is built once at
// startup and read-only afterwards, so lookups need no locking.
type Catalog struct {
	records map[domain.DiseaseID]domain.AdvisoryRecord
}

// New builds a catalog from the built-in records, optionally merged with an
// override file. catalogFile may be empty, which means built-ins only.
func New(catalogFile string) (*Catalog, error) {
	records := defaultRecords()

	if catalogFile != "" {
		overrides, err := NewLoader(catalogFile).Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog overrides: %w", err)
		}
		// Overrides replace records per id and may introduce new ids.
		// Built-in ids are never removed, so the healthy default always exists.
		for id, rec := range overrides {
			records[id] = rec
		}
	}

	return &Catalog{records: records}, nil
}

// Resolve returns the advisory record for id. Identifiers outside the
// catalog, including malformed or future ones, resolve to the healthy
// record. Resolve never fails and never returns an empty record.
func (c *Catalog) Resolve(id domain.DiseaseID) domain.AdvisoryRecord {
	if rec, ok := c.records[id]; ok {
		return rec
	}
	return c.records[domain.DiseaseHealthy]
}

// Has reports whether id is present in the catalog itself, without the
// healthy fallback kicking in.
func (c *Catalog) Has(id domain.DiseaseID) bool {
	_, ok := c.records[id]
	return ok
}

// Records returns a copy of the catalog keyed by identifier, for listing
// endpoints. Mutating the copy does not affect the catalog.
func (c *Catalog) Records() map[domain.DiseaseID]domain.AdvisoryRecord {
	out := make(map[domain.DiseaseID]domain.AdvisoryRecord, len(c.records))
	for id, rec := range c.records {
		out[id] = rec
	}
	return out
}
