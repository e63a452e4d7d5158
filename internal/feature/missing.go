package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// missingPersons derives tracing efficiency across the gender/age categories
// of the missing-persons drive.
type missingPersons struct{}

func init() { Register(missingPersons{}) }

func (missingPersons) Kind() dataset.Kind { return dataset.KindMissingPersons }

var missingFeatures = []string{
	"missing_boys_start", "missing_boys_during", "missing_girls_start", "missing_girls_during",
	"missing_men_start", "missing_men_during", "missing_women_start", "missing_women_during",
	"traced_boys", "traced_girls", "traced_men", "traced_women",
	"missing_total", "traced_total", "tracing_efficiency",
}

func (missingPersons) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	missingTotal, err := sumColumns(en,
		"missing_boys_start", "missing_boys_during",
		"missing_girls_start", "missing_girls_during",
		"missing_men_start", "missing_men_during",
		"missing_women_start", "missing_women_during")
	if err != nil {
		return nil, nil, err
	}
	tracedTotal, err := sumColumns(en, "traced_boys", "traced_girls", "traced_men", "traced_women")
	if err != nil {
		return nil, nil, err
	}
	efficiency := guardedRatio(tracedTotal, missingTotal)

	en.AddFloatColumn("missing_total", missingTotal)
	en.AddFloatColumn("traced_total", tracedTotal)
	en.AddFloatColumn("tracing_efficiency", efficiency)

	m, err := buildMatrix(en, missingFeatures, map[string][]float64{
		"missing_total":      missingTotal,
		"traced_total":       tracedTotal,
		"tracing_efficiency": efficiency,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, efficiency, mode)
}
