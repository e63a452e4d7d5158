package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// firearms derives seizure totals across the seven weapon-type columns plus
// arrest efficiency. No rows are dropped in either mode.
type firearms struct{}

func init() { Register(firearms{}) }

func (firearms) Kind() dataset.Kind { return dataset.KindFirearms }

func (firearms) Derive(t *dataset.Table, _ Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()

	totalFirearms, err := sumColumns(en,
		"gun_rifle", "pistol", "revolver", "mouzer", "ak47", "slr", "others")
	if err != nil {
		return nil, nil, err
	}
	totalAmmo, err := sumColumns(en, "ammunition", "cartridge")
	if err != nil {
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

	en.AddFloatColumn("total_firearms", totalFirearms)
	en.AddFloatColumn("total_ammo", totalAmmo)
	en.AddFloatColumn("arrest_per_case", perCase)

	names := []string{"cases_registered", "total_firearms", "total_ammo", "arrest_per_case"}
	m, err := buildMatrix(en, names, map[string][]float64{
		"total_firearms":  totalFirearms,
		"total_ammo":      totalAmmo,
		"arrest_per_case": perCase,
	})
	if err != nil {
		return nil, nil, err
	}
	return m, en, nil
}
