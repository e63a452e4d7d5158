package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row maps column name to the raw cell value as read from the upload.
type Row map[string]string

// Table is an ordered set of rows sharing one column list. The column set
// alone decides which dataset kind the table is (see Classify).
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is present.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// AddColumn appends a column and writes one value per row. Values beyond the
// row count are ignored; rows beyond the value count get an empty cell.
func (t *Table) AddColumn(name string, values []string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for i := range t.Rows {
		if i < len(values) {
			t.Rows[i][name] = values[i]
		} else {
			t.Rows[i][name] = ""
		}
	}
}

// AddFloatColumn appends a numeric column formatted for round-tripping.
func (t *Table) AddFloatColumn(name string, values []float64) {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	t.AddColumn(name, s)
}

// Select returns a copy of the table containing only the rows whose index is
// in keep, preserving order.
func (t *Table) Select(keep []int) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, i := range keep {
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out
}

// Strings returns the column's values, empty string for missing cells.
func (t *Table) Strings(col string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = strings.TrimSpace(r[col])
	}
	return out
}

// Floats parses the column as numbers. Empty cells read as zero (the upload
// templates leave untouched counters blank); anything else non-numeric is a
// coercion error carrying the column and row for the error payload.
func (t *Table) Floats(col string) ([]float64, error) {
	if !t.HasColumn(col) {
		return nil, fmt.Errorf("missing column %q", col)
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		cell := strings.TrimSpace(r[col])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: cannot parse %q as number", col, i+1, cell)
		}
		out[i] = v
	}
	return out, nil
}

// Clone deep-copies the table so derivers can enrich without mutating the
// caller's rows.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// FromCSV reads an uploaded CSV into a Table. The first record is the header;
// headers are trimmed and lowercased to match the dataset templates.
func FromCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	t := &Table{Columns: cols}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("csv carries no data rows")
	}
	return t, nil
}

// FromRecord builds a one-row table from a single submitted record, the
// quick-check path of the dashboard.
func FromRecord(rec map[string]any) (*Table, error) {
	if len(rec) == 0 {
		return nil, fmt.Errorf("empty record")
	}
	t := &Table{}
	row := Row{}
	for k, v := range rec {
		col := strings.ToLower(strings.TrimSpace(k))
		t.Columns = append(t.Columns, col)
		switch x := v.(type) {
		case nil:
			row[col] = ""
		case string:
			row[col] = x
		case float64:
			row[col] = strconv.FormatFloat(x, 'g', -1, 64)
		case bool:
			row[col] = strconv.FormatBool(x)
		default:
			row[col] = fmt.Sprint(x)
		}
	}
	t.Rows = []Row{row}
	return t, nil
}
