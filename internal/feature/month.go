package feature

import (
	"fmt"
	"strings"
	"time"

	"github.com/sapcop/fieldscore/internal/dataset"
)

// monthLayouts are accepted forms of the reporting-period column, most
// specific first. All normalise to the comparable "2006-01" key.
var monthLayouts = []string{"2006-01", "2006-1", "2006-01-02", "2006/01", "Jan-2006", "Jan 2006"}

// normalizeMonth rewrites the month column in place to the sortable YYYY-MM
// key. Empty cells stay empty; an unparseable non-empty cell is a coercion
// error surfaced at the orchestrator boundary.
func normalizeMonth(t *dataset.Table) error {
	if !t.HasColumn("month") {
		return fmt.Errorf("missing column %q", "month")
	}
	for i, r := range t.Rows {
		cell := strings.TrimSpace(r["month"])
		if cell == "" {
			continue
		}
		key, err := MonthKey(cell)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", "month", i+1, err)
		}
		t.Rows[i]["month"] = key
	}
	return nil
}

// MonthKey parses a reporting-period value into its YYYY-MM key.
func MonthKey(s string) (string, error) {
	for _, layout := range monthLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format("2006-01"), nil
		}
	}
	return "", fmt.Errorf("cannot parse %q as a year-month", s)
}
