package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbm-sim/lbm-info/sim"
)

// descriptorFlags holds the CLI flags describing the simulated lattice.
// Flags override the values of --config only when set explicitly.
type descriptorFlags struct {
	configPath string
	d          sim.Descriptor
	precision  string
	collision  string
}

func addDescriptorFlags(cmd *cobra.Command, f *descriptorFlags) {
	def := sim.DefaultDescriptor()
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML simulation descriptor (flags set explicitly override it)")

	// Lattice
	flags.Uint64Var(&f.d.Lattice.Nx, "nx", def.Lattice.Nx, "Lattice cells along x")
	flags.Uint64Var(&f.d.Lattice.Ny, "ny", def.Lattice.Ny, "Lattice cells along y")
	flags.Uint64Var(&f.d.Lattice.Nz, "nz", def.Lattice.Nz, "Lattice cells along z")
	flags.Uint64Var(&f.d.Lattice.Q, "velocity-set", def.Lattice.Q, "Velocity set size (9, 15, 19 or 27)")

	// Features
	flags.BoolVar(&f.d.Features.UpdateFields, "update-fields", def.Features.UpdateFields, "Write back density and velocity every step")
	flags.BoolVar(&f.d.Features.MovingBoundaries, "moving-boundaries", false, "Enable moving boundaries")
	flags.BoolVar(&f.d.Features.Surface, "surface", false, "Enable free-surface tracking")
	flags.BoolVar(&f.d.Features.Temperature, "temperature", false, "Enable temperature coupling")
	flags.BoolVar(&f.d.Features.VolumeForce, "volume-force", false, "Enable a global volume force")
	flags.StringVar(&f.collision, "collision", string(def.Features.Collision), "Collision operator (srt, trt)")
	flags.StringVar(&f.precision, "precision", string(def.Features.Precision), "DDF storage precision (fp32, fp16s, fp16c)")

	// Physics
	flags.Float64Var(&f.d.Physics.Nu, "nu", def.Physics.Nu, "Kinematic viscosity (lattice units)")
	flags.Float64Var(&f.d.Physics.Tau, "tau", def.Physics.Tau, "Relaxation time")
	flags.Float64Var(&f.d.Physics.ReMax, "re", def.Physics.ReMax, "Upper bound of the Reynolds number")
	flags.Float64Var(&f.d.Physics.Fx, "fx", 0, "Volume force x component")
	flags.Float64Var(&f.d.Physics.Fy, "fy", 0, "Volume force y component")
	flags.Float64Var(&f.d.Physics.Fz, "fz", 0, "Volume force z component")
	flags.Float64Var(&f.d.Physics.Sigma, "sigma", 0, "Surface tension coefficient")
	flags.Float64Var(&f.d.Physics.Alpha, "alpha", 0, "Thermal diffusion coefficient")
	flags.Float64Var(&f.d.Physics.Beta, "beta", 0, "Thermal expansion coefficient")

	flags.Uint64Var(&f.d.Steps, "steps", 0, "Target time steps per segment (0 = infinite)")
}

// resolve loads --config (or the defaults) and applies explicitly set flags on top.
func (f *descriptorFlags) resolve(cmd *cobra.Command) (sim.Descriptor, error) {
	d := sim.DefaultDescriptor()
	if f.configPath != "" {
		loaded, err := sim.LoadDescriptor(f.configPath)
		if err != nil {
			return sim.Descriptor{}, err
		}
		d = loaded
	}

	changed := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"nx", func() { d.Lattice.Nx = f.d.Lattice.Nx }},
		{"ny", func() { d.Lattice.Ny = f.d.Lattice.Ny }},
		{"nz", func() { d.Lattice.Nz = f.d.Lattice.Nz }},
		{"velocity-set", func() { d.Lattice.Q = f.d.Lattice.Q }},
		{"update-fields", func() { d.Features.UpdateFields = f.d.Features.UpdateFields }},
		{"moving-boundaries", func() { d.Features.MovingBoundaries = f.d.Features.MovingBoundaries }},
		{"surface", func() { d.Features.Surface = f.d.Features.Surface }},
		{"temperature", func() { d.Features.Temperature = f.d.Features.Temperature }},
		{"volume-force", func() { d.Features.VolumeForce = f.d.Features.VolumeForce }},
		{"collision", func() { d.Features.Collision = sim.Collision(f.collision) }},
		{"precision", func() { d.Features.Precision = sim.Precision(f.precision) }},
		{"nu", func() { d.Physics.Nu = f.d.Physics.Nu }},
		{"tau", func() { d.Physics.Tau = f.d.Physics.Tau }},
		{"re", func() { d.Physics.ReMax = f.d.Physics.ReMax }},
		{"fx", func() { d.Physics.Fx = f.d.Physics.Fx }},
		{"fy", func() { d.Physics.Fy = f.d.Physics.Fy }},
		{"fz", func() { d.Physics.Fz = f.d.Physics.Fz }},
		{"sigma", func() { d.Physics.Sigma = f.d.Physics.Sigma }},
		{"alpha", func() { d.Physics.Alpha = f.d.Physics.Alpha }},
		{"beta", func() { d.Physics.Beta = f.d.Physics.Beta }},
		{"steps", func() { d.Steps = f.d.Steps }},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			o.apply()
		}
	}

	d.Normalize()
	if err := d.Validate(); err != nil {
		return sim.Descriptor{}, fmt.Errorf("resolve descriptor: %w", err)
	}
	return d, nil
}
