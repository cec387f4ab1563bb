package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbm-sim/lbm-info/sim/internal/testutil"
)

func TestNewStatus_ThroughputFigures(t *testing.T) {
	// GIVEN a 1e6-cell lattice moving 169 bytes per cell per step at 10 ms per step
	lattice := Lattice{Nx: 100, Ny: 100, Nz: 100, Q: 19}
	fp := ComputeFootprint(Features{UpdateFields: true}, lattice)
	p := Progress{SmoothedStepTime: 0.01, CurrentStep: 42, TargetSteps: InfiniteSteps}

	// WHEN the status is derived
	st := NewStatus(lattice, fp, p)

	// THEN MLUPs = N*1e-6/dt, GB/s = N*bytes*1e-9/dt, steps/s = 1/dt
	assert.InDelta(t, 100.0, st.MLUPs, 1e-9)
	assert.InDelta(t, 16.9, st.BandwidthGBs, 1e-9)
	assert.InDelta(t, 100.0, st.StepsPerSec, 1e-9)
	assert.Equal(t, uint64(1_000_000), st.Cells)
	assert.Equal(t, uint64(42), st.CurrentStep)
}

func TestNewStatus_NonPositiveStepTime_ZeroFigures(t *testing.T) {
	lattice := Lattice{Nx: 10, Ny: 10, Nz: 10, Q: 19}
	st := NewStatus(lattice, Footprint{DeviceBytesPerCellTransferred: 100}, Progress{})
	assert.Equal(t, 0.0, st.MLUPs)
	assert.Equal(t, 0.0, st.BandwidthGBs)
	assert.Equal(t, 0.0, st.StepsPerSec)
}

func TestNewStatus_FromTracker(t *testing.T) {
	lattice := Lattice{Nx: 64, Ny: 64, Nz: 64, Q: 27}
	fp := ComputeFootprint(Features{UpdateFields: true, Precision: PrecisionFP16S}, lattice)
	tr := NewTracker()
	tr.Append(10000, 0)
	for i := 0; i < 5000; i++ {
		tr.Update(0.002)
	}

	st := NewStatus(lattice, fp, tr.Snapshot(5000))

	testutil.AssertFloat64Equal(t, "StepsPerSec", 500.0, st.StepsPerSec, 1e-6)
	testutil.AssertFloat64Equal(t, "MLUPs", float64(lattice.N())*1e-6*500, st.MLUPs, 1e-6)
	testutil.AssertFloat64Equal(t, "BandwidthGBs", float64(lattice.N()*fp.DeviceBytesPerCellTransferred)*1e-9*500, st.BandwidthGBs, 1e-6)
	assert.InDelta(t, 0.5, st.Fraction, 1e-12)
	assert.True(t, st.TimeKnown)
	assert.InDelta(t, 10.0, st.Time, 1e-9)
}
