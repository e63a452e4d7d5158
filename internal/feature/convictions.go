package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// convictions derives trial/conviction rates for the court-outcome dataset.
// No rows are dropped in either mode.
type convictions struct{}

func init() { Register(convictions{}) }

func (convictions) Kind() dataset.Kind { return dataset.KindConvictions }

func (convictions) Derive(t *dataset.Table, _ Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	ipcTrials, err := en.Floats("ipc_trials")
	if err != nil {
		return nil, nil, err
	}
	ipcConv, err := en.Floats("ipc_convictions")
	if err != nil {
		return nil, nil, err
	}
	sllTrials, err := en.Floats("sll_trials")
	if err != nil {
		return nil, nil, err
	}
	sllConv, err := en.Floats("sll_convictions")
	if err != nil {
		return nil, nil, err
	}

	ipcRate := guardedRatio(ipcConv, ipcTrials)
	sllRate := guardedRatio(sllConv, sllTrials)

	// Smoothed overall rate: the 1e-6 keeps an all-zero trial month at 0
	// without a zero division.
	overall := make([]float64, len(en.Rows))
	for i := range overall {
		overall[i] = (ipcConv[i] + sllConv[i]) / (ipcTrials[i] + sllTrials[i] + 1e-6)
	}

	en.AddFloatColumn("ipc_conviction_rate", ipcRate)
	en.AddFloatColumn("sll_conviction_rate", sllRate)
	en.AddFloatColumn("overall_conviction_rate", overall)

	names := []string{
		"ipc_trials", "ipc_convictions", "ipc_acquitted",
		"sll_trials", "sll_convictions", "sll_acquitted",
		"ipc_conviction_rate", "sll_conviction_rate", "overall_conviction_rate",
	}
	m, err := buildMatrix(en, names, map[string][]float64{
		"ipc_conviction_rate":     ipcRate,
		"sll_conviction_rate":     sllRate,
		"overall_conviction_rate": overall,
	})
	if err != nil {
		return nil, nil, err
	}
	return m, en, nil
}
