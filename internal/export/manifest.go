package export

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML record of one consolidation run: which files
// were seen, what each contributed, and every warning raised along the way.
type Manifest struct {
	GeneratedAt           time.Time         `yaml:"generated_at"`
	ReportsDir            string            `yaml:"reports_dir"`
	Output                string            `yaml:"output"`
	CyclesPerBillingMonth int               `yaml:"cycles_per_billing_month"`
	Files                 []FileDisposition `yaml:"files"`
	MonthsWithData        []int             `yaml:"months_with_data"`
	PopulatedCells        int               `yaml:"populated_cells"`
	Warnings              []string          `yaml:"warnings,omitempty"`
}

// FileDisposition records what one input file contributed to the run.
type FileDisposition struct {
	Name         string `yaml:"name"`
	SizeBytes    int64  `yaml:"size_bytes"`
	BillingMonth int    `yaml:"billing_month,omitempty"`
	ReadCycle    int    `yaml:"read_cycle,omitempty"`
	Contributed  bool   `yaml:"contributed"`
	Note         string `yaml:"note,omitempty"`
}

const manifestFileMode = 0o644

// WriteManifest marshals the manifest and writes it to path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	writeErr := os.WriteFile(path, data, manifestFileMode)
	if writeErr != nil {
		return fmt.Errorf("write manifest %s: %w", path, writeErr)
	}

	return nil
}
