package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecision_SizeAndLabel(t *testing.T) {
	tests := []struct {
		p     Precision
		size  uint64
		label string
	}{
		{PrecisionFP32, 4, "FP32/FP32"},
		{PrecisionFP16S, 2, "FP32/FP16S"},
		{PrecisionFP16C, 2, "FP32/FP16C"},
		{"", 4, "FP32/FP32"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.p.Size(), string(tt.p))
		assert.Equal(t, tt.label, tt.p.Label(), string(tt.p))
	}
}

func TestFeatures_TypeLabel(t *testing.T) {
	f := Features{Collision: CollisionTRT, Precision: PrecisionFP16S}
	assert.Equal(t, "TRT (FP32/FP16S)", f.TypeLabel())
	assert.Equal(t, "SRT (FP32/FP32)", Features{}.TypeLabel())
}

func TestFeatures_NeighborFlags(t *testing.T) {
	assert.False(t, Features{UpdateFields: true, VolumeForce: true}.NeighborFlags())
	assert.True(t, Features{MovingBoundaries: true}.NeighborFlags())
	assert.True(t, Features{Surface: true}.NeighborFlags())
	assert.True(t, Features{Temperature: true}.NeighborFlags())
}

func TestLattice_Labels(t *testing.T) {
	assert.Equal(t, "D2Q9", Lattice{Nx: 4, Ny: 4, Nz: 1, Q: 9}.Label())
	assert.Equal(t, "D3Q15", Lattice{Q: 15}.Label())
	assert.Equal(t, "D3Q27", Lattice{Q: 27}.Label())
	assert.Equal(t, "2 x 3 x 4 = 24", Lattice{Nx: 2, Ny: 3, Nz: 4, Q: 19}.Resolution())
}

func TestIsValidPrecisionAndCollision(t *testing.T) {
	assert.True(t, IsValidPrecision("FP16S"))
	assert.True(t, IsValidPrecision(""))
	assert.False(t, IsValidPrecision("fp64"))
	assert.True(t, IsValidCollision("trt"))
	assert.False(t, IsValidCollision("mrt"))
}
