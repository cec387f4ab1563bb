// Derives the throughput figures shown on the live status line.

package sim

// Status holds the figures of one status line refresh.
type Status struct {
	Progress

	MLUPs        float64 // million lattice updates per second
	BandwidthGBs float64 // device memory bandwidth in GB/s
	StepsPerSec  float64
	Cells        uint64
}

// NewStatus derives throughput figures from a progress snapshot.
// The smoothed step time is always > 0 once the tracker is created, so the
// divisions are defined even before the first sample.
func NewStatus(lattice Lattice, fp Footprint, p Progress) Status {
	n := float64(lattice.N())
	dt := p.SmoothedStepTime
	st := Status{Progress: p, Cells: lattice.N()}
	if dt <= 0 {
		return st
	}
	st.MLUPs = n * 1e-6 / dt
	st.BandwidthGBs = n * float64(fp.DeviceBytesPerCellTransferred) * 1e-9 / dt
	st.StepsPerSec = 1.0 / dt
	return st
}
