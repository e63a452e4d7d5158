package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// sandMining derives per-case arrest, vehicle-seizure and notice ratios for
// illegal sand-mining enforcement, blended 0.4/0.3/0.3.
type sandMining struct{}

func init() { Register(sandMining{}) }

func (sandMining) Kind() dataset.Kind { return dataset.KindSandMining }

func (sandMining) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
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
	vehicles, err := en.Floats("vehicles_seized")
	if err != nil {
		return nil, nil, err
	}
	notices, err := en.Floats("notices_served")
	if err != nil {
		return nil, nil, err
	}

	arrestEff := guardedRatio(arrests, cases)
	vehiclePerCase := guardedRatio(vehicles, cases)
	noticesPerCase := guardedRatio(notices, cases)

	combined := make([]float64, len(en.Rows))
	for i := range combined {
		combined[i] = arrestEff[i]*0.4 + vehiclePerCase[i]*0.3 + noticesPerCase[i]*0.3
	}

	en.AddFloatColumn("arrest_efficiency", arrestEff)
	en.AddFloatColumn("vehicle_per_case", vehiclePerCase)
	en.AddFloatColumn("notices_per_case", noticesPerCase)
	en.AddFloatColumn("mining_efficiency", combined)

	names := []string{
		"cases_registered", "vehicles_seized", "persons_arrested", "notices_served",
		"arrest_efficiency", "vehicle_per_case", "notices_per_case",
	}
	m, err := buildMatrix(en, names, map[string][]float64{
		"arrest_efficiency": arrestEff,
		"vehicle_per_case":  vehiclePerCase,
		"notices_per_case":  noticesPerCase,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, combined, mode)
}
