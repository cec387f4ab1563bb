// Package sim provides run-time info for a lattice Boltzmann solver: how much
// memory a configured lattice needs and how far a running simulation has got.
//
// # Reading Guide
//
//   - lattice.go: the simulation descriptor (lattice, feature toggles, physics)
//   - footprint.go: per-cell host/device memory cost, computed once before the run
//   - progress.go: Tracker, the smoothed step time and elapsed/remaining time estimate
//   - status.go: throughput figures (MLUPs, bandwidth, steps/s) for the status line
//
// # Architecture
//
// The sim package holds the pure accounting; collaborators live in sub-packages:
//   - sim/render/: fixed-width console table and live status line
//   - sim/monitor/: owns descriptor, footprint and tracker; synchronises the
//     step loop with the display refresh
//   - sim/export/: Prometheus collector over monitor snapshots
//   - sim/stepper/: synthetic step driver standing in for a solver
//
// Nothing here is process-global: a Tracker or Monitor is created by the caller
// and passed to whatever drives the step loop and the display.
package sim
