package sim

import "github.com/sirupsen/logrus"

const (
	bytesPerMegabyte = 1048576

	// flags (1) + density (4) + 3 velocity components (12)
	baseFieldBytes = 17
	// density and velocity are only transferred when fields are written back
	updateFieldBytes = 16
)

// Footprint is the per-cell memory cost of a configured simulation.
// Computed once before the run and read-only afterwards.
type Footprint struct {
	HostBytesPerCell              uint64 `yaml:"host_bytes_per_cell"`               // resident host memory
	DeviceBytesPerCellAllocated   uint64 `yaml:"device_bytes_per_cell_allocated"`   // resident device memory
	DeviceBytesPerCellTransferred uint64 `yaml:"device_bytes_per_cell_transferred"` // moved per step, for bandwidth reporting

	CPUMegabytesRequired uint64 `yaml:"cpu_mb_required"`
	GPUMegabytesRequired uint64 `yaml:"gpu_mb_required"`
	MaxAllocMegabytes    uint64 `yaml:"max_alloc_mb"` // largest single buffer (the populations)
}

// ComputeFootprint derives per-cell and total memory cost from the feature toggles and lattice size.
// Megabyte totals truncate, so they may underestimate by less than 1 MB.
func ComputeFootprint(features Features, lattice Lattice) Footprint {
	q := lattice.Q
	s := features.Precision.Size()

	host := uint64(baseFieldBytes)
	allocated := q*s + baseFieldBytes
	transferred := q*2*s + baseFieldBytes // populations are read and written
	if !features.UpdateFields {
		transferred -= updateFieldBytes
	}
	if features.NeighborFlags() {
		transferred += (q - 1) * 1
	}
	if features.Surface {
		host += 4       // phi
		allocated += 12 // mass, massex, phi
		transferred += surfaceTransferBytes(q, s)
	}
	if features.Temperature {
		host += 4                // T
		allocated += 7*s + 4     // gi, T
		transferred += 7*2*s + 4 // 2*gi, T
	}

	n := lattice.N()
	fp := Footprint{
		HostBytesPerCell:              host,
		DeviceBytesPerCellAllocated:   allocated,
		DeviceBytesPerCellTransferred: transferred,
		CPUMegabytesRequired:          toMegabytes(n, host),
		GPUMegabytesRequired:          toMegabytes(n, allocated),
		MaxAllocMegabytes:             toMegabytes(n, q*s),
	}
	logrus.Debugf("footprint: %s host=%dB device=%dB transfer=%dB per cell, cpu=%dMB gpu=%dMB",
		lattice.Label(), host, allocated, transferred, fp.CPUMegabytesRequired, fp.GPUMegabytesRequired)
	return fp
}

// surfaceTransferBytes is the per-step traffic of the four free-surface kernels.
func surfaceTransferBytes(q, s uint64) uint64 {
	surface0 := 1 + (2*q-1)*s + 8 + (q-1)*4 // flags, fi, mass, massex
	surface1 := uint64(1)                   // flags
	surface2 := uint64(1)                   // flags
	surface3 := 4 + q + 4 + 4 + 4           // rho, flags, mass, massex, phi
	return surface0 + surface1 + surface2 + surface3
}

func toMegabytes(cells, bytesPerCell uint64) uint64 {
	return cells * bytesPerCell / bytesPerMegabyte
}
