package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptor is returned when a simulation descriptor cannot describe a runnable lattice.
var ErrInvalidDescriptor = errors.New("invalid simulation descriptor")

// Precision selects the floating-point type used to store the density distribution functions.
// Arithmetic is always FP32; only the storage format changes.
type Precision string

const (
	PrecisionFP32  Precision = "fp32"  // 4-byte storage
	PrecisionFP16S Precision = "fp16s" // IEEE half precision storage
	PrecisionFP16C Precision = "fp16c" // custom 16-bit storage format
)

// validPrecisions maps accepted precision names.
var validPrecisions = map[Precision]bool{
	PrecisionFP32:  true,
	PrecisionFP16S: true,
	PrecisionFP16C: true,
	"":             true, // empty defaults to fp32
}

// IsValidPrecision returns true if the given name is a recognized storage precision.
func IsValidPrecision(name string) bool {
	return validPrecisions[Precision(strings.ToLower(name))]
}

// Size returns the storage size in bytes of one distribution function value.
func (p Precision) Size() uint64 {
	switch p {
	case PrecisionFP16S, PrecisionFP16C:
		return 2
	default:
		return 4
	}
}

// Label returns the "arithmetic/storage" label, e.g. "FP32/FP16S".
func (p Precision) Label() string {
	switch p {
	case PrecisionFP16S:
		return "FP32/FP16S"
	case PrecisionFP16C:
		return "FP32/FP16C"
	default:
		return "FP32/FP32"
	}
}

// Collision selects the collision operator.
type Collision string

const (
	CollisionSRT Collision = "srt" // single relaxation time
	CollisionTRT Collision = "trt" // two relaxation time
)

// IsValidCollision returns true if the given name is a recognized collision operator.
func IsValidCollision(name string) bool {
	switch Collision(strings.ToLower(name)) {
	case CollisionSRT, CollisionTRT, "":
		return true
	}
	return false
}

// Label returns the upper-case operator name.
func (c Collision) Label() string {
	if c == "" {
		return strings.ToUpper(string(CollisionSRT))
	}
	return strings.ToUpper(string(c))
}

// Features groups the build-time toggles that change per-cell memory cost.
// Fixed for the whole run.
type Features struct {
	UpdateFields     bool      `yaml:"update_fields"`     // density and velocity are written back every step
	MovingBoundaries bool      `yaml:"moving_boundaries"` // moving solid boundaries
	Surface          bool      `yaml:"surface"`           // free-surface tracking
	Temperature      bool      `yaml:"temperature"`       // thermal coupling
	VolumeForce      bool      `yaml:"volume_force"`      // global volume force (no memory cost)
	Collision        Collision `yaml:"collision"`
	Precision        Precision `yaml:"precision"`
}

// NeighborFlags reports whether the neighbor status flags have to be loaded every step.
func (f Features) NeighborFlags() bool {
	return f.MovingBoundaries || f.Surface || f.Temperature
}

// TypeLabel returns the collision/precision part of the lattice type, e.g. "SRT (FP32/FP16S)".
func (f Features) TypeLabel() string {
	return fmt.Sprintf("%s (%s)", f.Collision.Label(), f.Precision.Label())
}

// validVelocitySets lists the supported DdQq velocity sets.
var validVelocitySets = map[uint64]bool{9: true, 15: true, 19: true, 27: true}

// Lattice describes the simulation grid. Owned by the solver, read-only here.
type Lattice struct {
	Nx uint64 `yaml:"nx"`
	Ny uint64 `yaml:"ny"`
	Nz uint64 `yaml:"nz"`
	Q  uint64 `yaml:"velocity_set"` // discrete directions per cell
}

// N returns the total number of cells.
func (l Lattice) N() uint64 {
	return l.Nx * l.Ny * l.Nz
}

// Dimensions returns 2 for D2Q9 and 3 for all other velocity sets.
func (l Lattice) Dimensions() int {
	if l.Q == 9 {
		return 2
	}
	return 3
}

// Label returns the velocity set name, e.g. "D3Q19".
func (l Lattice) Label() string {
	return fmt.Sprintf("D%dQ%d", l.Dimensions(), l.Q)
}

// Resolution returns "Nx x Ny x Nz = N".
func (l Lattice) Resolution() string {
	return fmt.Sprintf("%d x %d x %d = %d", l.Nx, l.Ny, l.Nz, l.N())
}

// Validate checks that the lattice has cells and a supported velocity set.
func (l Lattice) Validate() error {
	if l.Nx == 0 || l.Ny == 0 || l.Nz == 0 {
		return fmt.Errorf("%w: lattice dimensions must be > 0, got %dx%dx%d", ErrInvalidDescriptor, l.Nx, l.Ny, l.Nz)
	}
	if !validVelocitySets[l.Q] {
		return fmt.Errorf("%w: unsupported velocity set %d (want 9, 15, 19 or 27)", ErrInvalidDescriptor, l.Q)
	}
	if l.Q == 9 && l.Nz != 1 {
		return fmt.Errorf("%w: D2Q9 requires nz = 1, got %d", ErrInvalidDescriptor, l.Nz)
	}
	return nil
}

// Physics holds physically derived scalars. Display only.
type Physics struct {
	Nu    float64 `yaml:"nu"`     // kinematic viscosity
	Tau   float64 `yaml:"tau"`    // relaxation time
	ReMax float64 `yaml:"re_max"` // upper bound of the Reynolds number
	Fx    float64 `yaml:"fx,omitempty"`
	Fy    float64 `yaml:"fy,omitempty"`
	Fz    float64 `yaml:"fz,omitempty"`
	Sigma float64 `yaml:"sigma,omitempty"` // surface tension
	Alpha float64 `yaml:"alpha,omitempty"` // thermal diffusion coefficient
	Beta  float64 `yaml:"beta,omitempty"`  // thermal expansion coefficient
}

// Descriptor is everything the info module reads from the solver.
type Descriptor struct {
	Lattice  Lattice  `yaml:"lattice"`
	Features Features `yaml:"features"`
	Physics  Physics  `yaml:"physics"`
	Steps    uint64   `yaml:"steps"` // target step count, InfiniteSteps or 0 = run indefinitely
}

// TargetSteps returns the step target with 0 mapped to InfiniteSteps.
func (d Descriptor) TargetSteps() uint64 {
	if d.Steps == 0 {
		return InfiniteSteps
	}
	return d.Steps
}

// Validate checks lattice geometry and the enum-valued features.
func (d Descriptor) Validate() error {
	if err := d.Lattice.Validate(); err != nil {
		return err
	}
	if !IsValidPrecision(string(d.Features.Precision)) {
		return fmt.Errorf("%w: unknown precision %q", ErrInvalidDescriptor, d.Features.Precision)
	}
	if !IsValidCollision(string(d.Features.Collision)) {
		return fmt.Errorf("%w: unknown collision operator %q", ErrInvalidDescriptor, d.Features.Collision)
	}
	return nil
}
