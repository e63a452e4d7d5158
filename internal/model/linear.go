package model

import (
	"fmt"

	"github.com/sapcop/fieldscore/internal/feature"
)

// linear evaluates an exported linear-regression artifact.
type linear struct {
	features     []string
	intercept    float64
	coefficients []float64
}

func newLinear(a artifact) (*linear, error) {
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("artifact lists no features")
	}
	if len(a.Features) != len(a.Coefficients) {
		return nil, fmt.Errorf("artifact has %d features but %d coefficients",
			len(a.Features), len(a.Coefficients))
	}
	return &linear{features: a.Features, intercept: a.Intercept, coefficients: a.Coefficients}, nil
}

func (l *linear) Predict(m *feature.Matrix) ([]float64, error) {
	// The matrix columns must line up with training order; a drifted deriver
	// feature list is a hard error, not a silent misprediction.
	if len(m.Names) != len(l.features) {
		return nil, fmt.Errorf("feature count mismatch: matrix has %d, model expects %d",
			len(m.Names), len(l.features))
	}
	for i, n := range m.Names {
		if n != l.features[i] {
			return nil, fmt.Errorf("feature %d is %q, model expects %q", i, n, l.features[i])
		}
	}
	out := make([]float64, len(m.Data))
	for r, row := range m.Data {
		v := l.intercept
		for c, x := range row {
			v += l.coefficients[c] * x
		}
		out[r] = v
	}
	return out, nil
}
