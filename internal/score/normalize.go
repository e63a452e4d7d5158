// Package score maps raw model outputs onto the dashboard's percentage scale.
//
// Raw predictions sit on an arbitrary regression scale that differs between
// the ten models, so they are rescaled onto a fixed [70,100] window with fixed
// band cut-points. The rescale is a display transform only: raw scores are
// kept alongside for audit.
package score

import "math"

// Band is the qualitative performance tier of a rescaled score.
type Band string

const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandWatch    Band = "watch"
)

// Normalize rescales a raw prediction vector onto [70,100], rounded to two
// decimals. NaN and ±Inf inputs are treated as 0. A degenerate vector (all
// values equal, including any single-row submission) maps flat to 85.
func Normalize(raw []float64) []float64 {
	if len(raw) == 0 {
		return nil
	}
	vals := make([]float64, len(raw))
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		vals[i] = v
	}
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(vals))
	if max == min {
		for i := range out {
			out[i] = 85.0
		}
		return out
	}
	for i, v := range vals {
		out[i] = round2(70 + (v-min)/(max-min)*30)
	}
	return out
}

// BandFor classifies a rescaled percentage score.
func BandFor(scaled float64) Band {
	switch {
	case scaled >= 85:
		return BandHigh
	case scaled >= 75:
		return BandModerate
	default:
		return BandWatch
	}
}

// Bands classifies a whole rescaled vector.
func Bands(scaled []float64) []Band {
	out := make([]Band, len(scaled))
	for i, v := range scaled {
		out[i] = BandFor(v)
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
