package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// preventive derives the four sub-efficiencies of the preventive-action
// dataset and blends them with fixed 0.3/0.3/0.2/0.2 weights.
type preventive struct{}

func init() { Register(preventive{}) }

func (preventive) Kind() dataset.Kind { return dataset.KindPreventive }

var preventiveFeatures = []string{
	"notice_129_bnss", "bound_129_bnss",
	"notice_126_bnss", "bound_126_bnss",
	"nbw_executed", "chanda_cases_registered",
	"chanda_persons_arrested", "blockings_border_sealed",
	"organized_crime_action", "bnss_129_efficiency",
	"bnss_126_efficiency", "nbw_execution_ratio", "organized_action_rate",
}

func (preventive) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	notice129, err := en.Floats("notice_129_bnss")
	if err != nil {
		return nil, nil, err
	}
	bound129, err := en.Floats("bound_129_bnss")
	if err != nil {
		return nil, nil, err
	}
	notice126, err := en.Floats("notice_126_bnss")
	if err != nil {
		return nil, nil, err
	}
	bound126, err := en.Floats("bound_126_bnss")
	if err != nil {
		return nil, nil, err
	}
	nbwExecuted, err := en.Floats("nbw_executed")
	if err != nil {
		return nil, nil, err
	}
	chandaCases, err := en.Floats("chanda_cases_registered")
	if err != nil {
		return nil, nil, err
	}
	organizedAction, err := en.Floats("organized_crime_action")
	if err != nil {
		return nil, nil, err
	}

	eff129 := guardedRatio(bound129, notice129)
	eff126 := guardedRatio(bound126, notice126)

	noticesTotal := make([]float64, len(en.Rows))
	for i := range noticesTotal {
		noticesTotal[i] = notice129[i] + notice126[i]
	}
	nbwRatio := guardedRatio(nbwExecuted, noticesTotal)
	organizedRate := guardedRatio(organizedAction, chandaCases)

	combined := make([]float64, len(en.Rows))
	for i := range combined {
		combined[i] = eff129[i]*0.3 + eff126[i]*0.3 + nbwRatio[i]*0.2 + organizedRate[i]*0.2
	}

	en.AddFloatColumn("bnss_129_efficiency", eff129)
	en.AddFloatColumn("bnss_126_efficiency", eff126)
	en.AddFloatColumn("nbw_execution_ratio", nbwRatio)
	en.AddFloatColumn("organized_action_rate", organizedRate)
	en.AddFloatColumn("preventive_efficiency", combined)

	m, err := buildMatrix(en, preventiveFeatures, map[string][]float64{
		"bnss_129_efficiency":   eff129,
		"bnss_126_efficiency":   eff126,
		"nbw_execution_ratio":   nbwRatio,
		"organized_action_rate": organizedRate,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, combined, mode)
}
