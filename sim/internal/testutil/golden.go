// Package testutil provides shared test infrastructure for the lbm-info packages:
// the golden footprint dataset and float comparison helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FootprintDataset represents the structure of testdata/footprints.json.
type FootprintDataset struct {
	Cases []FootprintCase `json:"cases"`
}

// FootprintCase is one lattice configuration with its expected footprint.
type FootprintCase struct {
	Name             string `json:"name"`
	Nx               uint64 `json:"nx"`
	Ny               uint64 `json:"ny"`
	Nz               uint64 `json:"nz"`
	VelocitySet      uint64 `json:"velocity_set"`
	Precision        string `json:"precision"`
	UpdateFields     bool   `json:"update_fields"`
	MovingBoundaries bool   `json:"moving_boundaries"`
	Surface          bool   `json:"surface"`
	Temperature      bool   `json:"temperature"`

	Expected ExpectedFootprint `json:"expected"`
}

// ExpectedFootprint holds the exact expected byte and megabyte figures.
type ExpectedFootprint struct {
	HostBytesPerCell              uint64 `json:"host_bytes_per_cell"`
	DeviceBytesPerCellAllocated   uint64 `json:"device_bytes_per_cell_allocated"`
	DeviceBytesPerCellTransferred uint64 `json:"device_bytes_per_cell_transferred"`
	CPUMegabytesRequired          uint64 `json:"cpu_mb_required"`
	GPUMegabytesRequired          uint64 `json:"gpu_mb_required"`
	MaxAllocMegabytes             uint64 `json:"max_alloc_mb"`
}

// LoadFootprintDataset loads the golden footprint dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadFootprintDataset(t *testing.T) *FootprintDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "footprints.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read footprint dataset: %v", err)
	}

	var dataset FootprintDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse footprint dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
