package feature

import (
	"fmt"
	"strconv"

	"github.com/sapcop/fieldscore/internal/dataset"
)

// Mode selects the row policy of a deriver. Training derivation computes the
// shifted next-period target and drops rows where the shift is undefined (the
// last chronological row of each district). Inference derivation never drops
// rows: at prediction time there is no future target to align against.
type Mode int

const (
	ModeInference Mode = iota
	ModeTraining
)

// Matrix is the model-ready numeric table: one row per (kept) input row,
// columns in the fixed feature order of the matched dataset kind. It carries
// no NaN or Inf values; every ratio is denominator-guarded to zero.
type Matrix struct {
	Names []string
	Data  [][]float64
}

// Rows returns the number of observation rows.
func (m *Matrix) Rows() int { return len(m.Data) }

// Deriver converts a raw table of one dataset kind into a feature matrix plus
// an enriched copy of the table carrying the derived columns.
type Deriver interface {
	Kind() dataset.Kind
	Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error)
}

// Registry of derivers by dataset kind. Populated from init() in the sibling
// deriver files.
var registry = map[dataset.Kind]Deriver{}

// Register binds a deriver to its kind.
func Register(d Deriver) { registry[d.Kind()] = d }

// Lookup returns the registered deriver for a kind.
func Lookup(k dataset.Kind) (Deriver, bool) { d, ok := registry[k]; return d, ok }

// TargetColumn is the training-only shifted-efficiency column. It is written
// into enriched tables during training derivation and never at inference.
const TargetColumn = "target_efficiency"

// guardedRatio computes num/den element-wise, yielding 0 where den <= 0 so
// the matrix never carries NaN or Inf.
func guardedRatio(num, den []float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		if den[i] > 0 {
			out[i] = num[i] / den[i]
		}
	}
	return out
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// sumColumns adds the named columns element-wise.
func sumColumns(t *dataset.Table, cols ...string) ([]float64, error) {
	out := make([]float64, len(t.Rows))
	for _, c := range cols {
		vals, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			out[i] += v
		}
	}
	return out, nil
}

// buildMatrix assembles the ordered feature matrix from raw table columns and
// already-computed derived columns. Every name must resolve to one or the
// other.
func buildMatrix(t *dataset.Table, names []string, derived map[string][]float64) (*Matrix, error) {
	cols := make([][]float64, len(names))
	for i, n := range names {
		if v, ok := derived[n]; ok {
			cols[i] = v
			continue
		}
		v, err := t.Floats(n)
		if err != nil {
			return nil, err
		}
		cols[i] = v
	}
	m := &Matrix{Names: names, Data: make([][]float64, len(t.Rows))}
	for r := range t.Rows {
		row := make([]float64, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		m.Data[r] = row
	}
	return m, nil
}

// selectRows filters a matrix to the kept row indexes, preserving order.
func selectRows(m *Matrix, keep []int) *Matrix {
	out := &Matrix{Names: m.Names}
	for _, i := range keep {
		out.Data = append(out.Data, m.Data[i])
	}
	return out
}

// shiftByDistrict aligns each row with the next row of the same district in
// file order, returning the shifted metric (indexed like the table) and the
// indexes for which a next-period value exists. Mirrors a grouped shift(-1).
func shiftByDistrict(t *dataset.Table, metric []float64) (target []float64, keep []int, err error) {
	if !t.HasColumn("district") {
		return nil, nil, fmt.Errorf("missing column %q", "district")
	}
	districts := t.Strings("district")
	next := make([]int, len(t.Rows))
	for i := range next {
		next[i] = -1
	}
	last := map[string]int{} // district -> most recent row index seen
	for i, d := range districts {
		if j, ok := last[d]; ok {
			next[j] = i
		}
		last[d] = i
	}
	target = make([]float64, len(t.Rows))
	for i, j := range next {
		if j >= 0 {
			target[i] = metric[j]
			keep = append(keep, i)
		}
	}
	return target, keep, nil
}

// finishShifted applies the training target/drop policy shared by the
// derivers that predict next-period efficiency. In inference mode the matrix
// and the enriched table pass through untouched.
func finishShifted(m *Matrix, en *dataset.Table, metric []float64, mode Mode) (*Matrix, *dataset.Table, error) {
	if mode != ModeTraining {
		return m, en, nil
	}
	target, keep, err := shiftByDistrict(en, metric)
	if err != nil {
		return nil, nil, err
	}
	en.AddFloatColumn(TargetColumn, target)
	return selectRows(m, keep), en.Select(keep), nil
}
