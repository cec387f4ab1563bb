package monitor

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbm-sim/lbm-info/sim"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

// recordingDisplay captures display calls.
type recordingDisplay struct {
	mu          sync.Mutex
	initialized []uint64
	updates     []sim.Status
	finalized   int
}

func (d *recordingDisplay) Initialize(_ sim.Descriptor, _ sim.Footprint, targetSteps uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = append(d.initialized, targetSteps)
}

func (d *recordingDisplay) Update(st sim.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updates = append(d.updates, st)
}

func (d *recordingDisplay) Finalize() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finalized++
}

func (d *recordingDisplay) updateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.updates)
}

func testDescriptor() sim.Descriptor {
	d := sim.DefaultDescriptor()
	d.Lattice = sim.Lattice{Nx: 100, Ny: 100, Nz: 100, Q: 19}
	return d
}

func TestNew_ComputesFootprintOnce(t *testing.T) {
	m := New(testDescriptor(), nil)
	assert.Equal(t, uint64(93), m.Footprint().DeviceBytesPerCellAllocated)
	assert.Equal(t, uint64(88), m.Footprint().GPUMegabytesRequired)
	assert.Equal(t, testDescriptor(), m.Descriptor())
}

func TestMonitor_SegmentLifecycle(t *testing.T) {
	// GIVEN a monitor with a recording display
	display := &recordingDisplay{}
	m := New(testDescriptor(), display)

	// WHEN a 10-step segment runs at 0.5s per step
	m.Begin(10, 0)
	for i := uint64(1); i <= 4; i++ {
		m.Step(0.5, i)
	}
	m.Refresh()
	m.End()

	// THEN the display saw the configuration, two status lines and the close
	require.Equal(t, []uint64{10}, display.initialized)
	require.Len(t, display.updates, 2)
	assert.Equal(t, 1, display.finalized)

	st := display.updates[1]
	assert.Equal(t, uint64(4), st.CurrentStep)
	assert.True(t, st.TimeKnown)
	assert.InDelta(t, 3.0, st.Time, 1e-12) // (10/4 - 1) * 2s
	assert.InDelta(t, 0.4, st.Fraction, 1e-12)
	assert.Greater(t, st.MLUPs, 0.0)
}

func TestMonitor_ChainedSegments(t *testing.T) {
	m := New(testDescriptor(), nil)

	m.Begin(100, 0)
	for i := uint64(1); i <= 100; i++ {
		m.Step(0.1, i)
	}
	m.End()

	m.Begin(100, 100)
	for i := uint64(101); i <= 110; i++ {
		m.Step(0.2, i)
	}

	st := m.Snapshot()
	assert.InDelta(t, 18.0, st.Time, 1e-9)
	assert.InDelta(t, 12.0, st.Runtime, 1e-9)
	assert.Equal(t, uint64(100), st.SegmentStart)
}

func TestMonitor_SnapshotBeforeFirstStepIsUnknown(t *testing.T) {
	m := New(testDescriptor(), nil)
	m.Begin(100, 0)
	st := m.Snapshot()
	assert.False(t, st.TimeKnown)
}

func TestMonitor_Run_RefreshesUntilCancelled(t *testing.T) {
	display := &recordingDisplay{}
	m := New(testDescriptor(), display)
	m.Begin(sim.InfiniteSteps, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()

	// concurrent steps while the display refreshes
	for i := uint64(1); i <= 200; i++ {
		m.Step(0.001, i)
	}
	assert.Eventually(t, func() bool { return display.updateCount() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMonitor_Run_RejectsNonPositiveInterval(t *testing.T) {
	m := New(testDescriptor(), nil)
	assert.Error(t, m.Run(context.Background(), 0))
}
