package export_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/meterops/mrrweave/internal/export"
)

func TestWriteManifest_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml")

	manifest := export.Manifest{
		GeneratedAt:           time.Date(2021, 6, 5, 12, 0, 0, 0, time.UTC),
		ReportsDir:            "reports",
		Output:                "output.csv",
		CyclesPerBillingMonth: 21,
		Files: []export.FileDisposition{
			{Name: "MRRReport.txt.20210605", SizeBytes: 2048, BillingMonth: 5, ReadCycle: 15, Contributed: true},
			{Name: "empty.txt", SizeBytes: 100, Note: "no schedule data"},
		},
		MonthsWithData: []int{5},
		PopulatedCells: 1,
		Warnings:       []string{"empty.txt appears to not have a schedule date."},
	}

	require.NoError(t, export.WriteManifest(path, manifest))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded export.Manifest
	require.NoError(t, yaml.Unmarshal(data, &loaded))

	assert.Equal(t, manifest.ReportsDir, loaded.ReportsDir)
	assert.Equal(t, manifest.Files, loaded.Files)
	assert.Equal(t, manifest.MonthsWithData, loaded.MonthsWithData)
	assert.Equal(t, manifest.Warnings, loaded.Warnings)
}

func TestWriteManifest_UnwritablePath_ReturnsError(t *testing.T) {
	t.Parallel()

	err := export.WriteManifest(filepath.Join(t.TempDir(), "missing", "run.yaml"), export.Manifest{})

	assert.Error(t, err)
}
