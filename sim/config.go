package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDescriptor returns a 256^3 D3Q19 FP32 SRT lattice with field updates enabled
// and no step target.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Lattice: Lattice{Nx: 256, Ny: 256, Nz: 256, Q: 19},
		Features: Features{
			UpdateFields: true,
			Collision:    CollisionSRT,
			Precision:    PrecisionFP32,
		},
		Physics: Physics{Nu: 1.0 / 6.0, Tau: 1.0, ReMax: 0},
	}
}

// Normalize lower-cases enum fields and fills empty ones with their defaults.
func (d *Descriptor) Normalize() {
	d.Features.Precision = Precision(strings.ToLower(string(d.Features.Precision)))
	if d.Features.Precision == "" {
		d.Features.Precision = PrecisionFP32
	}
	d.Features.Collision = Collision(strings.ToLower(string(d.Features.Collision)))
	if d.Features.Collision == "" {
		d.Features.Collision = CollisionSRT
	}
}

// ParseDescriptor decodes a YAML descriptor on top of DefaultDescriptor.
// Uses strict field checking: unknown keys are errors. An empty document yields the defaults.
func ParseDescriptor(data []byte) (Descriptor, error) {
	d := DefaultDescriptor()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Descriptor{}, fmt.Errorf("parse descriptor YAML: %w", err)
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// LoadDescriptor reads and validates a YAML descriptor file.
func LoadDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read descriptor %q: %w", path, err)
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("load descriptor %q: %w", path, err)
	}
	return d, nil
}
