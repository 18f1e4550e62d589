package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSine(t *testing.T) {
	s := Sine[float64](1000, 8000, 2, 8)
	require.Len(t, s, 8)
	assert.InDelta(t, 0, s[0], 1e-15)
	assert.InDelta(t, 2, s[2], 1e-15)
	assert.InDelta(t, -2, s[6], 1e-12)

	f := Sine[float32](1000, 8000, 2, 8)
	assert.InDelta(t, 2, float64(f[2]), 1e-6)
}

func TestNoise(t *testing.T) {
	a := Noise[float64](7, 0.5, 1000)
	b := Noise[float64](7, 0.5, 1000)
	c := Noise[float64](8, 0.5, 1000)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	for _, v := range a {
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.5)
	}
}

func TestImpulseAndDC(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 1, 0}, Impulse[float64](4, 2))
	assert.Equal(t, []float32{0, 0}, Impulse[float32](2, 5))
	assert.Equal(t, []float32{1.5, 1.5, 1.5}, DC[float32](1.5, 3))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, []float32{1, -0.5}, Convert[float32]([]float64{1, -0.5}))
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 0)

	_, err = MaxAbsDiff([]float64{1}, []float64{1, 2})
	require.Error(t, err)
}

func TestEnergy(t *testing.T) {
	assert.InDelta(t, 25.0, Energy([]float64{3, -4}), 0)
	assert.InDelta(t, 0.0, Energy[float32](nil), 0)
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-13, 2}, 1e-12)
	RequireFinite(t, []float32{0, 1, float32(math.MaxFloat32)})
}
