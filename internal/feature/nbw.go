package feature

import "github.com/sapcop/fieldscore/internal/dataset"

// nbw derives execution, disposal and pending-reduction rates for the
// non-bailable-warrant drive. All three ratios are independently guarded.
type nbw struct{}

func init() { Register(nbw{}) }

func (nbw) Kind() dataset.Kind { return dataset.KindNBW }

func (nbw) Derive(t *dataset.Table, mode Mode) (*Matrix, *dataset.Table, error) {
	en := t.Clone()
	if err := normalizeMonth(en); err != nil {
		return nil, nil, err
	}

	pendingStart, err := en.Floats("nbw_pending_start")
	if err != nil {
		return nil, nil, err
	}
	received, err := en.Floats("nbw_received")
	if err != nil {
		return nil, nil, err
	}
	executed, err := en.Floats("nbw_executed_drive")
	if err != nil {
		return nil, nil, err
	}
	totalDisposed, err := en.Floats("nbw_total_disposed")
	if err != nil {
		return nil, nil, err
	}
	pendingEnd, err := en.Floats("nbw_pending_end")
	if err != nil {
		return nil, nil, err
	}

	execRate := guardedRatio(executed, received)
	disposalRate := guardedRatio(executed, totalDisposed)

	pendingDrop := make([]float64, len(en.Rows))
	for i := range pendingDrop {
		pendingDrop[i] = pendingStart[i] - pendingEnd[i]
	}
	pendingChangeRate := guardedRatio(pendingDrop, pendingStart)

	en.AddFloatColumn("nbw_execution_rate", execRate)
	en.AddFloatColumn("nbw_disposal_rate", disposalRate)
	en.AddFloatColumn("nbw_pending_change_rate", pendingChangeRate)

	names := []string{
		"nbw_pending_start", "nbw_received", "nbw_executed_drive",
		"nbw_disposed_other", "nbw_total_disposed", "nbw_pending_end",
		"nbw_execution_rate", "nbw_disposal_rate", "nbw_pending_change_rate",
	}
	m, err := buildMatrix(en, names, map[string][]float64{
		"nbw_execution_rate":      execRate,
		"nbw_disposal_rate":       disposalRate,
		"nbw_pending_change_rate": pendingChangeRate,
	})
	if err != nil {
		return nil, nil, err
	}
	return finishShifted(m, en, execRate, mode)
}
