package sim

import (
	"testing"

	"github.com/lbm-sim/lbm-info/sim/internal/testutil"
)

// TestComputeFootprint_GoldenDataset checks every case in testdata/footprints.json exactly.
func TestComputeFootprint_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadFootprintDataset(t)
	if len(dataset.Cases) == 0 {
		t.Fatal("golden dataset has no cases")
	}

	for _, tc := range dataset.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			lattice := Lattice{Nx: tc.Nx, Ny: tc.Ny, Nz: tc.Nz, Q: tc.VelocitySet}
			features := Features{
				UpdateFields:     tc.UpdateFields,
				MovingBoundaries: tc.MovingBoundaries,
				Surface:          tc.Surface,
				Temperature:      tc.Temperature,
				Precision:        Precision(tc.Precision),
			}
			if err := (Descriptor{Lattice: lattice, Features: features}).Validate(); err != nil {
				t.Fatalf("golden case is not a valid descriptor: %v", err)
			}

			got := ComputeFootprint(features, lattice)
			want := tc.Expected

			if got.HostBytesPerCell != want.HostBytesPerCell {
				t.Errorf("HostBytesPerCell: got %d, want %d", got.HostBytesPerCell, want.HostBytesPerCell)
			}
			if got.DeviceBytesPerCellAllocated != want.DeviceBytesPerCellAllocated {
				t.Errorf("DeviceBytesPerCellAllocated: got %d, want %d", got.DeviceBytesPerCellAllocated, want.DeviceBytesPerCellAllocated)
			}
			if got.DeviceBytesPerCellTransferred != want.DeviceBytesPerCellTransferred {
				t.Errorf("DeviceBytesPerCellTransferred: got %d, want %d", got.DeviceBytesPerCellTransferred, want.DeviceBytesPerCellTransferred)
			}
			if got.CPUMegabytesRequired != want.CPUMegabytesRequired {
				t.Errorf("CPUMegabytesRequired: got %d, want %d", got.CPUMegabytesRequired, want.CPUMegabytesRequired)
			}
			if got.GPUMegabytesRequired != want.GPUMegabytesRequired {
				t.Errorf("GPUMegabytesRequired: got %d, want %d", got.GPUMegabytesRequired, want.GPUMegabytesRequired)
			}
			if got.MaxAllocMegabytes != want.MaxAllocMegabytes {
				t.Errorf("MaxAllocMegabytes: got %d, want %d", got.MaxAllocMegabytes, want.MaxAllocMegabytes)
			}
		})
	}
}
