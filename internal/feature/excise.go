package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// excise derives arrest-per-case efficiency for Excise Act enforcement.
type excise struct{}

func init() { Register(excise{}) }

func (excise) Kind() dataset.Kind { return dataset.KindExcise }

func (excise) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
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

	perCase := guardedRatio(arrests, cases)
	en.AddFloatColumn("arrest_per_case", perCase)

	names := []string{"cases_registered", "persons_arrested", "arrest_per_case"}
	m, err := buildMatrix(en, names, map[string][]float64{"arrest_per_case": perCase})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, perCase, mode)
}
