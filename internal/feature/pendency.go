package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// pendency derives the month-over-month pendency change per district and a
// qualitative trend label. No rows are dropped in either mode; the first row
// of each district has no prior period and gets an empty change cell.
type pendency struct{}

func init() { Register(pendency{}) }

func (pendency) Kind() dataset.Kind { return dataset.KindCrimePendency }

func (pendency) Derive(t *dataset.Table, _ Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	percent, err := en.Floats("pendency_percent")
	if err != nil {
		return nil, nil, err
	}

	districts := en.Strings("district")
	change := make([]string, len(en.Rows))
	labels := make([]string, len(en.Rows))
	prev := map[string]float64{}
	seen := map[string]bool{}
	for i, d := range districts {
		if seen[d] {
			c := percent[i] - prev[d]
			change[i] = formatFloat(c)
			labels[i] = trendLabel(c)
		}
		prev[d] = percent[i]
		seen[d] = true
	}
	en.AddColumn("pendency_change", change)
	en.AddColumn("trend_label", labels)

	names := []string{
		"cases_reported_year", "total_pendency_30days",
		"target_close", "closed_during_drive", "pendency_percent",
	}
	m, err := buildMatrix(en, names, nil)
	if err != nil {
		return nil, nil, err
	}
	return m, en, nil
}

// trendLabel bins a pendency change at -1/+1: falling pendency is improving,
// within a point is stable, rising is worsening.
func trendLabel(change float64) string {
	switch {
	case change <= -1:
		return "Improving"
	case change <= 1:
		return "Stable"
	default:
		return "Worsening"
	}
}
