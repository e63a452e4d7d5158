package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConstantVector(t *testing.T) {
	for _, input := range [][]float64{
		{3.7},
		{0, 0, 0},
		{-12.5, -12.5, -12.5, -12.5},
	} {
		out := Normalize(input)
		require.Len(t, out, len(input))
		for _, v := range out {
			assert.Equal(t, 85.0, v)
			assert.Equal(t, BandHigh, BandFor(v))
		}
	}
}

func TestNormalizeRescalesToWindow(t *testing.T) {
	out := Normalize([]float64{0, 10})
	assert.Equal(t, []float64{70.0, 100.0}, out)
	assert.Equal(t, []Band{BandWatch, BandHigh}, Bands(out))

	out = Normalize([]float64{0, 5, 10})
	assert.Equal(t, []float64{70.0, 85.0, 100.0}, out)
}

func TestNormalizeReplacesNonFinite(t *testing.T) {
	out := Normalize([]float64{math.NaN(), math.Inf(1), 10, math.Inf(-1)})
	// NaN/Inf read as 0, so the window spans 0..10.
	assert.Equal(t, []float64{70.0, 70.0, 100.0, 70.0}, out)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestBandThresholds(t *testing.T) {
	assert.Equal(t, BandHigh, BandFor(85))
	assert.Equal(t, BandModerate, BandFor(84.99))
	assert.Equal(t, BandModerate, BandFor(75))
	assert.Equal(t, BandWatch, BandFor(74.99))
	assert.Equal(t, BandWatch, BandFor(70))
}

func TestNormalizeRounding(t *testing.T) {
	out := Normalize([]float64{0, 1, 3})
	assert.Equal(t, 80.0, out[1]) // 70 + 10 exactly
	for _, v := range out {
		assert.Equal(t, math.Round(v*100)/100, v)
	}
}
