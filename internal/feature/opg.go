package feature

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sapcop/fieldscore/internal/dataset"
)

// opg derives cash-seizure efficiency for OPG Act operations. The cash value
// is pulled out of the free-text seizure description.
type opg struct{}

func init() { Register(opg{}) }

func (opg) Kind() dataset.Kind { return dataset.KindOPG }

var cashPattern = regexp.MustCompile(`Rs\.?\s?([\d,]+)`)

// ExtractCashValue reads the rupee amount out of text like
// "Rs. 4,983 mobile phones and cash". Missing text or no match yields 0.
func ExtractCashValue(text string) float64 {
	m := cashPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func (opg) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
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

	cash := make([]float64, len(en.Rows))
	for i, text := range en.Strings("details_of_seizure") {
		cash[i] = ExtractCashValue(text)
	}

	arrestEff := guardedRatio(arrests, cases)
	cashPerCase := guardedRatio(cash, cases)

	opEff := make([]float64, len(en.Rows))
	for i := range opEff {
		opEff[i] = (arrestEff[i] + math.Log1p(cashPerCase[i])) / 2
	}

	en.AddFloatColumn("cash_value", cash)
	en.AddFloatColumn("arrest_efficiency", arrestEff)
	en.AddFloatColumn("cash_per_case", cashPerCase)
	en.AddFloatColumn("operation_efficiency", opEff)

	names := []string{"cases_registered", "persons_arrested", "cash_value", "arrest_efficiency", "cash_per_case"}
	m, err := buildMatrix(en, names, map[string][]float64{
		"cash_value":        cash,
		"arrest_efficiency": arrestEff,
		"cash_per_case":     cashPerCase,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, opEff, mode)
}
