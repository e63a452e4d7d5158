package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWith(cols []string, firstRow Row) *Table {
	row := Row{}
	for _, c := range cols {
		row[c] = "1"
	}
	for k, v := range firstRow {
		row[k] = v
	}
	return &Table{Columns: cols, Rows: []Row{row}}
}

func TestClassifyKnownKinds(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		row  Row
		want Kind
	}{
		{
			name: "convictions",
			cols: []string{"month", "district", "ipc_trials", "ipc_convictions", "ipc_acquitted", "sll_trials", "sll_convictions", "sll_acquitted"},
			want: KindConvictions,
		},
		{
			name: "crime pendency",
			cols: []string{"month", "district", "cases_reported_year", "total_pendency_30days", "target_close", "closed_during_drive", "pendency_percent"},
			want: KindCrimePendency,
		},
		{
			name: "excise via fermented wash",
			cols: []string{"month", "district", "cases_registered", "persons_arrested", "details_of_seizure"},
			row:  Row{"details_of_seizure": "1200 ltr Fermented Wash destroyed, Rs. 300 cash"},
			want: KindExcise,
		},
		{
			name: "firearms",
			cols: []string{"district", "cases_registered", "persons_arrested", "gun_rifle", "pistol", "revolver", "mouzer", "ak47", "slr", "others", "ammunition", "cartridge"},
			want: KindFirearms,
		},
		{
			name: "missing persons",
			cols: []string{"month", "district", "missing_boys_start", "missing_girls_start", "traced_boys", "traced_girls"},
			want: KindMissingPersons,
		},
		{
			name: "nbw without ganja column",
			cols: []string{"month", "district", "nbw_pending_start", "nbw_received", "nbw_executed_drive", "nbw_disposed_other", "nbw_total_disposed", "nbw_pending_end"},
			want: KindNBW,
		},
		{
			name: "narcotics",
			cols: []string{"month", "district", "cases_registered", "persons_arrested", "ganja_kg", "brownsugar_g", "opium", "bhanga", "cough_syrup_bottles", "vehicles", "ganja_plants_destroyed", "cash_recovered"},
			want: KindNarcotics,
		},
		{
			name: "opg via mobile keyword",
			cols: []string{"month", "district", "cases_registered", "persons_arrested", "details_of_seizure"},
			row:  Row{"details_of_seizure": "Rs. 4,983 Mobile phones and cash"},
			want: KindOPG,
		},
		{
			name: "preventive",
			cols: []string{"month", "district", "notice_129_bnss", "bound_129_bnss", "notice_126_bnss", "bound_126_bnss", "nbw_executed", "chanda_cases_registered", "chanda_persons_arrested", "blockings_border_sealed", "organized_crime_action"},
			want: KindPreventive,
		},
		{
			name: "sand mining",
			cols: []string{"month", "district", "cases_registered", "persons_arrested", "vehicles_seized", "notices_served"},
			want: KindSandMining,
		},
		{
			name: "unrecognized columns",
			cols: []string{"month", "district", "random_metric", "another_metric"},
			want: KindUnknown,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tableWith(tc.cols, tc.row))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifySeizureSniffSkipsEmptyLeadingCells(t *testing.T) {
	cols := []string{"month", "district", "cases_registered", "persons_arrested", "details_of_seizure"}
	tbl := tableWith(cols, Row{"details_of_seizure": ""})
	second := Row{}
	for _, c := range cols {
		second[c] = "1"
	}
	second["details_of_seizure"] = "fermented wash seized"
	tbl.Rows = append(tbl.Rows, second)

	assert.Equal(t, KindExcise, Classify(tbl))
}

func TestClassifyNBWBeforeNarcotics(t *testing.T) {
	// A narcotics file carrying nbw-like counters must still hit narcotics
	// because ganja_kg vetoes the NBW predicate.
	cols := []string{"month", "district", "nbw_pending_start", "nbw_received", "nbw_executed_drive",
		"ganja_kg", "brownsugar_g", "cough_syrup_bottles"}
	assert.Equal(t, KindNarcotics, Classify(tableWith(cols, nil)))
}

func TestFromCSV(t *testing.T) {
	csv := "Month,District,cases_registered\n2024-01,Cuttack,12\n2024-02,Puri,7\n"
	tbl, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "district", "cases_registered"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Cuttack", tbl.Rows[0]["district"])

	vals, err := tbl.Floats("cases_registered")
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 7}, vals)
}

func TestFloatsCoercion(t *testing.T) {
	tbl := &Table{Columns: []string{"n"}, Rows: []Row{{"n": ""}, {"n": "3.5"}}}
	vals, err := tbl.Floats("n")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3.5}, vals)

	tbl.Rows = append(tbl.Rows, Row{"n": "not-a-number"})
	_, err = tbl.Floats("n")
	assert.Error(t, err)

	_, err = tbl.Floats("absent")
	assert.Error(t, err)
}

func TestFromRecordSingleRow(t *testing.T) {
	tbl, err := FromRecord(map[string]any{"District": "Puri", "cases_registered": 4.0})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Puri", tbl.Rows[0]["district"])
	assert.Equal(t, "4", tbl.Rows[0]["cases_registered"])
}
