package advisory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/krishimitra/leafscan/internal/domain"
)

// Loader reads advisory overrides from a YAML catalog file.
//
// File shape:
//
//	diseases:
//	  bacterial_blight:
//	    display_name: Bacterial Blight
//	    treatment: ...
//	    prevention:
//	      - ...
type Loader struct {
	filePath string
}

type catalogFile struct {
	Diseases map[string]recordSchema `yaml:"diseases"`
}

type recordSchema struct {
	DisplayName string   `yaml:"display_name"`
	Treatment   string   `yaml:"treatment"`
	Prevention  []string `yaml:"prevention"`
}

// NewLoader creates a loader for the given catalog file path.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the catalog file into override records. Entries
// missing a display name or treatment are rejected so a bad file cannot
// poison the catalog with empty records.
func (l *Loader) Load() (map[domain.DiseaseID]domain.AdvisoryRecord, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	records := make(map[domain.DiseaseID]domain.AdvisoryRecord, len(file.Diseases))
	for slug, rec := range file.Diseases {
		if slug == "" {
			continue
		}
		if rec.DisplayName == "" || rec.Treatment == "" {
			return nil, fmt.Errorf("catalog entry %q is missing display_name or treatment", slug)
		}
		records[domain.DiseaseID(slug)] = domain.AdvisoryRecord{
			DisplayName: rec.DisplayName,
			Treatment:   rec.Treatment,
			Prevention:  rec.Prevention,
		}
	}

	return records, nil
}
