// Package monitor binds a simulation descriptor to its footprint, progress
// tracker and display, and synchronises the step loop with display refreshes.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lbm-sim/lbm-info/sim"
)

// Display receives the configuration once per segment and status lines while running.
// render.Renderer implements it.
type Display interface {
	Initialize(d sim.Descriptor, fp sim.Footprint, targetSteps uint64)
	Update(st sim.Status)
	Finalize()
}

// Monitor owns the run-time info of one simulation. The footprint is computed
// once in New and read-only afterwards; tracker access is guarded by mu.
type Monitor struct {
	descriptor sim.Descriptor
	footprint  sim.Footprint
	display    Display // may be nil for headless runs

	mu      sync.RWMutex
	tracker *sim.Tracker
	step    uint64 // global step count reported by the step loop
	logger  *logrus.Entry
}

// New computes the footprint of d and creates an idle tracker.
func New(d sim.Descriptor, display Display) *Monitor {
	m := &Monitor{
		descriptor: d,
		footprint:  sim.ComputeFootprint(d.Features, d.Lattice),
		display:    display,
		tracker:    sim.NewTracker(),
		logger:     logrus.WithField("component", "monitor"),
	}
	m.logger.Infof("%s %s: CPU %d MB, GPU %d MB required",
		d.Lattice.Label(), d.Lattice.Resolution(), m.footprint.CPUMegabytesRequired, m.footprint.GPUMegabytesRequired)
	return m
}

// Descriptor returns the descriptor the monitor was created with.
func (m *Monitor) Descriptor() sim.Descriptor { return m.descriptor }

// Footprint returns the precomputed memory footprint.
func (m *Monitor) Footprint() sim.Footprint { return m.footprint }

// Begin starts a run segment of targetSteps at the given global step and prints the configuration.
func (m *Monitor) Begin(targetSteps, currentStep uint64) {
	m.mu.Lock()
	m.tracker.Append(targetSteps, currentStep)
	m.step = currentStep
	m.mu.Unlock()

	m.logger.Debugf("segment started at step %d, target %d", currentStep, targetSteps)
	if m.display != nil {
		m.display.Initialize(m.descriptor, m.footprint, targetSteps)
	}
}

// Step records dt seconds for the step(s) that brought the global counter to currentStep.
func (m *Monitor) Step(dt float64, currentStep uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracker.Update(dt)
	m.step = currentStep
}

// Snapshot returns the current status figures.
func (m *Monitor) Snapshot() sim.Status {
	m.mu.RLock()
	p := m.tracker.Snapshot(m.step)
	m.mu.RUnlock()
	return sim.NewStatus(m.descriptor.Lattice, m.footprint, p)
}

// Refresh re-prints the status line.
func (m *Monitor) Refresh() {
	if m.display == nil {
		return
	}
	m.display.Update(m.Snapshot())
}

// Run refreshes the display every interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be > 0, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Refresh()
		}
	}
}

// End prints a final status line and closes the display for the segment.
func (m *Monitor) End() {
	st := m.Snapshot()
	m.logger.Debugf("segment ended at step %d after %.3fs", st.CurrentStep, st.SegmentRuntime)
	if m.display == nil {
		return
	}
	m.display.Update(st)
	m.display.Finalize()
}
