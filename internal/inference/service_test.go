package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/feature"
	"github.com/sapcop/fieldscore/internal/model"
	"github.com/sapcop/fieldscore/internal/report"
	"github.com/sapcop/fieldscore/internal/score"
	"github.com/sapcop/fieldscore/internal/store"
)

/* ---------------- fakes ---------------- */

type fakePredictor struct {
	preds []float64
	err   error
}

func (f fakePredictor) Predict(m *feature.Matrix) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.preds != nil {
		return f.preds, nil
	}
	out := make([]float64, m.Rows())
	for i := range out {
		out[i] = float64(i)
	}
	return out, nil
}

type fakeStore struct {
	saved []store.Record
	err   error
}

func (f *fakeStore) Save(_ context.Context, rec store.Record) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeStore) Recent(context.Context, int) ([]store.Record, error) { return f.saved, nil }
func (f *fakeStore) Summaries(context.Context) ([]store.Summary, error)  { return nil, nil }

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string, *dataset.Table, []float64) (report.Report, error) {
	return report.Report{}, errors.New("narrative service down")
}

func registryWith(key string, p model.Predictor) *model.Registry {
	return model.NewRegistry(map[string]model.Predictor{key: p})
}

func firearmsRow(district string) *dataset.Table {
	cols := []string{"district", "cases_registered", "persons_arrested",
		"gun_rifle", "pistol", "revolver", "mouzer", "ak47", "slr", "others",
		"ammunition", "cartridge"}
	row := dataset.Row{
		"district": district, "cases_registered": "4", "persons_arrested": "8",
		"gun_rifle": "1", "pistol": "2", "revolver": "0", "mouzer": "0",
		"ak47": "0", "slr": "0", "others": "1", "ammunition": "10", "cartridge": "2",
	}
	return &dataset.Table{Columns: cols, Rows: []dataset.Row{row}}
}

/* ---------------- tests ---------------- */

func TestRunSingleRowFirearms(t *testing.T) {
	hist := &fakeStore{}
	svc := NewService(
		registryWith("firearms_efficiency_model", fakePredictor{preds: []float64{3.2}}),
		report.Fallback{}, hist, zap.NewNop())

	res, err := svc.Run(context.Background(), firearmsRow("Cuttack"), "firearms_jan.csv")
	require.NoError(t, err)

	assert.Equal(t, "Firearms_Drive", res.Dataset)
	assert.Equal(t, []float64{3.2}, res.RawScores)
	// single-row normalization is degenerate: flat 85, band high
	assert.Equal(t, []float64{85.0}, res.Predictions)
	assert.Equal(t, []score.Band{score.BandHigh}, res.Bands)
	assert.Equal(t, []string{"Cuttack"}, res.Districts)
	require.Len(t, res.MapPoints, 1)
	assert.Equal(t, "Cuttack", res.MapPoints[0].District)
	assert.NotEmpty(t, res.RunID)
	assert.Contains(t, res.Graphs.Folder, res.RunID)

	require.Len(t, hist.saved, 1)
	assert.Equal(t, "Firearms_Drive", hist.saved[0].DatasetName)
	assert.Equal(t, "firearms_jan.csv", hist.saved[0].FileName)
	assert.Equal(t, []float64{3.2}, hist.saved[0].Predictions)
}

func TestRunUnresolvableDistrictYieldsNoMarker(t *testing.T) {
	svc := NewService(
		registryWith("firearms_efficiency_model", fakePredictor{preds: []float64{3.2}}),
		report.Fallback{}, nil, zap.NewNop())

	res, err := svc.Run(context.Background(), firearmsRow("Atlantis"), "")
	require.NoError(t, err)
	assert.Empty(t, res.MapPoints)
	assert.Equal(t, []float64{85.0}, res.Predictions)
}

func TestRunUnknownDataset(t *testing.T) {
	svc := NewService(model.NewRegistry(nil), report.Fallback{}, nil, zap.NewNop())
	tbl := &dataset.Table{Columns: []string{"mystery"}, Rows: []dataset.Row{{"mystery": "1"}}}

	_, err := svc.Run(context.Background(), tbl, "")
	assert.True(t, errors.Is(err, ErrUnknownDataset))
}

func TestRunModelUnavailable(t *testing.T) {
	svc := NewService(model.NewRegistry(nil), report.Fallback{}, nil, zap.NewNop())

	_, err := svc.Run(context.Background(), firearmsRow("Cuttack"), "")
	assert.True(t, errors.Is(err, model.ErrModelUnavailable))
}

func TestRunModelFailureAbortsRequest(t *testing.T) {
	svc := NewService(
		registryWith("firearms_efficiency_model", fakePredictor{err: errors.New("boom")}),
		report.Fallback{}, nil, zap.NewNop())

	_, err := svc.Run(context.Background(), firearmsRow("Cuttack"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunDerivationFailureAbortsRequest(t *testing.T) {
	svc := NewService(
		registryWith("firearms_efficiency_model", fakePredictor{}),
		report.Fallback{}, nil, zap.NewNop())

	tbl := firearmsRow("Cuttack")
	tbl.Rows[0]["pistol"] = "two"
	_, err := svc.Run(context.Background(), tbl, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "derive")
}

func TestCollaboratorFailuresDoNotVoidResult(t *testing.T) {
	hist := &fakeStore{err: errors.New("db down")}
	svc := NewService(
		registryWith("firearms_efficiency_model", fakePredictor{preds: []float64{1.0}}),
		failingGenerator{}, hist, zap.NewNop())

	res, err := svc.Run(context.Background(), firearmsRow("Cuttack"), "x.csv")
	require.NoError(t, err)
	assert.Equal(t, []float64{85.0}, res.Predictions)
	// fallback narrative still attached
	assert.Contains(t, res.Report.Headline, "performance snapshot")
	assert.NotEmpty(t, res.Report.Narrative)
}

func TestRunMultiRowScaling(t *testing.T) {
	cols := []string{"month", "district", "cases_registered", "persons_arrested", "vehicles_seized", "notices_served"}
	tbl := &dataset.Table{Columns: cols, Rows: []dataset.Row{
		{"month": "2024-01", "district": "Cuttack", "cases_registered": "10", "persons_arrested": "5", "vehicles_seized": "2", "notices_served": "1"},
		{"month": "2024-01", "district": "Puri", "cases_registered": "8", "persons_arrested": "16", "vehicles_seized": "4", "notices_served": "3"},
	}}
	svc := NewService(
		registryWith("sand_mining_efficiency_model", fakePredictor{preds: []float64{0, 10}}),
		report.Fallback{}, nil, zap.NewNop())

	res, err := svc.Run(context.Background(), tbl, "")
	require.NoError(t, err)
	assert.Equal(t, "SandMining", res.Dataset)
	assert.Equal(t, []float64{70.0, 100.0}, res.Predictions)
	assert.Equal(t, []score.Band{score.BandWatch, score.BandHigh}, res.Bands)
	assert.Len(t, res.MapPoints, 2)
}
