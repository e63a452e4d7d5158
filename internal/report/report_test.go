package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcop/fieldscore/internal/dataset"
)

func scoredTable() *dataset.Table {
	return &dataset.Table{
		Columns: []string{"district"},
		Rows: []dataset.Row{
			{"district": "Cuttack"},
			{"district": "Puri"},
			{"district": "Ganjam"},
		},
	}
}

func TestFallbackNarrativeDeterministic(t *testing.T) {
	raw := []float64{2, 8, 5}
	first, err := Fallback{}.Generate(context.Background(), "NBW_Drive", scoredTable(), raw)
	require.NoError(t, err)
	second, err := Fallback{}.Generate(context.Background(), "NBW_Drive", scoredTable(), raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Contains(t, first.Summary, "NBW_Drive: Avg")
	assert.Contains(t, first.Summary, "Top Puri")
	assert.Contains(t, first.Summary, "Lowest Cuttack")
	assert.Equal(t, "NBW Drive performance snapshot", first.Headline)
	assert.Contains(t, first.Narrative, "Puri currently leads the drive")
	assert.Contains(t, first.Narrative, "across 3 districts")
}

func TestFallbackEmptyScores(t *testing.T) {
	rep, err := Fallback{}.Generate(context.Background(), "Excise_Act", scoredTable(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No predictions", rep.Headline)
	assert.Contains(t, rep.Summary, "No predictions available")
}

func TestFallbackWithoutDistrictColumn(t *testing.T) {
	tbl := &dataset.Table{Columns: []string{"month"}, Rows: []dataset.Row{{"month": "2024-01"}, {"month": "2024-02"}}}
	rep, err := Fallback{}.Generate(context.Background(), "Convictions", tbl, []float64{1, 4})
	require.NoError(t, err)
	assert.Contains(t, rep.Summary, "Record 2")
}

func TestCleanOutputStripsDisclaimers(t *testing.T) {
	text := strings.Join([]string{
		"The data indicates strong execution in coastal districts.",
		"This report was generated by an AI model.",
		"* bullet artifact",
		"# heading artifact",
		"District-level variance implies uneven supervision.",
	}, "\n")
	got := cleanOutput(text)
	assert.Contains(t, got, "strong execution")
	assert.Contains(t, got, "uneven supervision")
	assert.NotContains(t, got, "AI model")
	assert.NotContains(t, got, "bullet artifact")
	assert.NotContains(t, got, "heading artifact")
}
