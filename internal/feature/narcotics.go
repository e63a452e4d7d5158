package feature

import (
	"math"

	"github.com/sapcop/fieldscore/internal/dataset"
)

// narcotics derives arrest efficiency and a weighted seizure intensity that
// folds the different substance units onto a kilogram-equivalent scale
// (brown sugar grams /1000, cough syrup bottles /1000).
type narcotics struct{}

func init() { Register(narcotics{}) }

func (narcotics) Kind() dataset.Kind { return dataset.KindNarcotics }

var narcoticsFeatures = []string{
	"cases_registered", "persons_arrested", "ganja_kg", "brownsugar_g",
	"vehicles", "ganja_plants_destroyed", "bhanga", "opium",
	"cough_syrup_bottles", "cash_recovered", "arrest_efficiency", "seizure_intensity",
}

func (narcotics) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	cases, err := en.Floats("cases_registered")
	if err != nil {
		return nil, nil, err
	}
	arrests, err := en.Floats("persons_arrested")
	if err != nil {
		return nil, nil, err
	}
	ganja, err := en.Floats("ganja_kg")
	if err != nil {
		return nil, nil, err
	}
	brownSugar, err := en.Floats("brownsugar_g")
	if err != nil {
		return nil, nil, err
	}
	opium, err := en.Floats("opium")
	if err != nil {
		return nil, nil, err
	}
	bhanga, err := en.Floats("bhanga")
	if err != nil {
		return nil, nil, err
	}
	syrupBottles, err := en.Floats("cough_syrup_bottles")
	if err != nil {
		return nil, nil, err
	}

	arrestEff := guardedRatio(arrests, cases)

	intensity := make([]float64, len(en.Rows))
	opEff := make([]float64, len(en.Rows))
	for i := range intensity {
		intensity[i] = ganja[i] + brownSugar[i]/1000 + opium[i] + bhanga[i] + syrupBottles[i]/1000
		// Seizure quantities are non-negative sums, so Log1p stays defined.
		opEff[i] = (arrestEff[i] + math.Log1p(intensity[i])) / 2
	}

	en.AddFloatColumn("arrest_efficiency", arrestEff)
	en.AddFloatColumn("seizure_intensity", intensity)
	en.AddFloatColumn("operation_efficiency", opEff)

	m, err := buildMatrix(en, narcoticsFeatures, map[string][]float64{
		"arrest_efficiency": arrestEff,
		"seizure_intensity": intensity,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, opEff, mode)
}
