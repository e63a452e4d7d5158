// Package inference composes the scoring pipeline: classify the uploaded
// table, derive features for the matched kind, invoke the pre-trained model,
// normalize scores, dispatch the narrative and persistence collaborators, and
// assemble the geospatial markers.
package inference

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/feature"
	"github.com/sapcop/fieldscore/internal/geo"
	"github.com/sapcop/fieldscore/internal/model"
	"github.com/sapcop/fieldscore/internal/report"
	"github.com/sapcop/fieldscore/internal/score"
	"github.com/sapcop/fieldscore/internal/store"
)

// ErrUnknownDataset reports a column set matching none of the ten schemas.
var ErrUnknownDataset = errors.New("unknown dataset structure")

// GraphsInfo is the locator handle for a run's chart output directory. Chart
// rendering itself happens outside this service; the handle travels with the
// persisted record so the dashboard can resolve it.
type GraphsInfo struct {
	Folder string   `json:"folder"`
	Files  []string `json:"files"`
}

// Result is the unified response of one inference run.
type Result struct {
	RunID       string        `json:"run_id"`
	Dataset     string        `json:"dataset"`
	Predictions []float64     `json:"predictions"`
	RawScores   []float64     `json:"raw_scores"`
	Bands       []score.Band  `json:"bands"`
	Districts   []string      `json:"districts"`
	Report      report.Report `json:"analysis_report"`
	Graphs      GraphsInfo    `json:"graphs"`
	MapPoints   []geo.Marker  `json:"map_points"`
}

// Service wires the pipeline stages to their process-wide collaborators. The
// model registry and geo registry are immutable after startup, so a single
// Service serves concurrent requests; every run builds its own tables and
// matrices.
type Service struct {
	models    *model.Registry
	generator report.Generator
	history   store.Store
	log       *zap.Logger
}

func NewService(models *model.Registry, generator report.Generator, history store.Store, log *zap.Logger) *Service {
	if generator == nil {
		generator = report.Fallback{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{models: models, generator: generator, history: history, log: log}
}

// Run executes the pipeline over one raw table. Classification, derivation
// and model failures abort the numeric result; narrative and persistence
// failures are logged and degrade gracefully.
func (s *Service) Run(ctx context.Context, t *dataset.Table, sourceFile string) (*Result, error) {
	kind := dataset.Classify(t)
	if kind == dataset.KindUnknown {
		return nil, ErrUnknownDataset
	}
	label := kind.Label()

	deriver, ok := feature.Lookup(kind)
	if !ok {
		// Every classifiable kind registers a deriver in init; a miss here is
		// a wiring bug, reported as a derivation fault.
		return nil, fmt.Errorf("no feature deriver for dataset %s", label)
	}
	matrix, enriched, err := deriver.Derive(t, feature.ModeInference)
	if err != nil {
		return nil, fmt.Errorf("derive %s features: %w", label, err)
	}

	predictor, err := s.models.For(kind)
	if err != nil {
		return nil, err
	}
	raw, err := predictor.Predict(matrix)
	if err != nil {
		return nil, fmt.Errorf("%s model predict: %w", label, err)
	}

	scaled := score.Normalize(raw)

	runID := uuid.NewString()
	result := &Result{
		RunID:       runID,
		Dataset:     label,
		Predictions: scaled,
		RawScores:   raw,
		Bands:       score.Bands(scaled),
		Graphs:      GraphsInfo{Folder: path.Join("graphs", runID), Files: []string{}},
	}
	if enriched.HasColumn("district") {
		result.Districts = enriched.Strings("district")
	} else {
		result.Districts = []string{}
	}

	result.Report = s.narrative(ctx, label, enriched, raw)
	s.persist(ctx, result, sourceFile)
	result.MapPoints = geo.BuildMapPoints(label, enriched, raw)

	return result, nil
}

// narrative asks the configured generator for prose and falls back to the
// deterministic briefing when it errors; a narrative outage never blocks
// score delivery.
func (s *Service) narrative(ctx context.Context, label string, en *dataset.Table, raw []float64) report.Report {
	rep, err := s.generator.Generate(ctx, label, en, raw)
	if err != nil {
		s.log.Warn("report generation failed, using fallback",
			zap.String("dataset", label), zap.Error(err))
		rep, _ = report.Fallback{}.Generate(ctx, label, en, raw)
	}
	return rep
}

// persist appends the run to history, best-effort.
func (s *Service) persist(ctx context.Context, res *Result, sourceFile string) {
	if s.history == nil {
		return
	}
	rec := store.Record{
		ID:          res.RunID,
		DatasetName: res.Dataset,
		CreatedAt:   time.Now(),
		FileName:    sourceFile,
		Predictions: res.RawScores,
		Report:      res.Report,
		GraphsPath:  res.Graphs.Folder,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		s.log.Warn("prediction save failed",
			zap.String("dataset", res.Dataset), zap.String("run_id", res.RunID), zap.Error(err))
	}
}
