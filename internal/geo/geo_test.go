package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/score"
)

func TestResolveCanonicalAndAlias(t *testing.T) {
	canonical, ok := Resolve("bhubaneswar")
	require.True(t, ok)
	alias, ok := Resolve("Bhubaneshwar")
	require.True(t, ok)
	assert.Equal(t, canonical.Lat, alias.Lat)
	assert.Equal(t, canonical.Lng, alias.Lng)

	spaced, ok := Resolve("  Bhadrak Town ")
	require.True(t, ok)
	assert.Equal(t, 21.0574, spaced.Lat)
}

func TestResolveUnknown(t *testing.T) {
	_, ok := Resolve("Gotham")
	assert.False(t, ok)
	_, ok = Resolve("")
	assert.False(t, ok)
}

func markerTable(rows ...dataset.Row) *dataset.Table {
	return &dataset.Table{Columns: []string{"district", "month"}, Rows: rows}
}

func TestBuildMapPointsSkipsUnresolvable(t *testing.T) {
	tbl := markerTable(
		dataset.Row{"district": "Cuttack", "month": "2024-01"},
		dataset.Row{"district": "Atlantis", "month": "2024-01"},
		dataset.Row{"district": "", "month": "2024-01"},
	)
	markers := BuildMapPoints("NBW_Drive", tbl, []float64{1, 2, 3})
	require.Len(t, markers, 1)
	assert.Equal(t, "Cuttack", markers[0].District)
	assert.Equal(t, "NBW Drive", markers[0].Category)
}

func TestBuildMapPointsLaterMonthWins(t *testing.T) {
	tbl := markerTable(
		dataset.Row{"district": "Puri", "month": "2024-01"},
		dataset.Row{"district": "Puri", "month": "2024-03"},
	)
	markers := BuildMapPoints("Excise_Act", tbl, []float64{5, 9})
	require.Len(t, markers, 1)
	require.NotNil(t, markers[0].Month)
	assert.Equal(t, "2024-03", *markers[0].Month)
	assert.Equal(t, 9.0, markers[0].RawScore)
}

func TestBuildMapPointsMonthlessNeverOverwrites(t *testing.T) {
	tbl := markerTable(
		dataset.Row{"district": "Puri", "month": "2024-02"},
		dataset.Row{"district": "Puri", "month": ""},
	)
	markers := BuildMapPoints("Excise_Act", tbl, []float64{5, 9})
	require.Len(t, markers, 1)
	require.NotNil(t, markers[0].Month)
	assert.Equal(t, "2024-02", *markers[0].Month)
	assert.Equal(t, 5.0, markers[0].RawScore)
}

func TestBuildMapPointsBandsAndScaling(t *testing.T) {
	tbl := markerTable(
		dataset.Row{"district": "Cuttack", "month": "2024-01"},
		dataset.Row{"district": "Puri", "month": "2024-01"},
	)
	markers := BuildMapPoints("SandMining", tbl, []float64{0, 10})
	require.Len(t, markers, 2)
	for _, m := range markers {
		switch m.District {
		case "Cuttack":
			assert.Equal(t, 70.0, m.Efficiency)
			assert.Equal(t, score.BandWatch, m.Band)
		case "Puri":
			assert.Equal(t, 100.0, m.Efficiency)
			assert.Equal(t, score.BandHigh, m.Band)
		}
	}
}

func TestBuildMapPointsNoDistrictColumn(t *testing.T) {
	tbl := &dataset.Table{Columns: []string{"month"}, Rows: []dataset.Row{{"month": "2024-01"}}}
	assert.Empty(t, BuildMapPoints("Convictions", tbl, []float64{1}))
}
