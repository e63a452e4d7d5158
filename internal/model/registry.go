// Package model hosts the pre-trained regression models. Each dataset kind
// has one named artifact; the registry is built once at startup and read-only
// afterwards, so concurrent requests share it without locking.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/feature"
)

// ErrModelUnavailable reports a registry miss for the matched dataset kind.
// It is an infrastructure fault of the request, not of the process.
var ErrModelUnavailable = errors.New("model unavailable")

// Predictor scores a feature matrix, one raw prediction per row. The model
// internals are opaque to the pipeline.
type Predictor interface {
	Predict(m *feature.Matrix) ([]float64, error)
}

// Registry is the immutable name→model mapping.
type Registry struct {
	models map[string]Predictor
}

// NewRegistry wraps an already-loaded model set. The map is copied; later
// mutation of the argument does not reach the registry.
func NewRegistry(models map[string]Predictor) *Registry {
	cp := make(map[string]Predictor, len(models))
	for k, v := range models {
		cp[k] = v
	}
	return &Registry{models: cp}
}

// Predictor returns the model registered under name.
func (r *Registry) Predictor(name string) (Predictor, bool) {
	p, ok := r.models[name]
	return p, ok
}

// For resolves the model for a dataset kind via its registry key.
func (r *Registry) For(k dataset.Kind) (Predictor, error) {
	key := KeyFor(k)
	if key == "" {
		return nil, fmt.Errorf("%w: no registry key for dataset %q", ErrModelUnavailable, k)
	}
	p, ok := r.models[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, key)
	}
	return p, nil
}

// Len reports how many models are loaded.
func (r *Registry) Len() int { return len(r.models) }

// KeyFor maps a dataset kind onto its model artifact name.
func KeyFor(k dataset.Kind) string {
	switch k {
	case dataset.KindConvictions:
		return "conviction_model"
	case dataset.KindCrimePendency:
		return "pendency_model"
	case dataset.KindExcise:
		return "excise_efficiency_model"
	case dataset.KindFirearms:
		return "firearms_efficiency_model"
	case dataset.KindMissingPersons:
		return "missing_persons_efficiency_model"
	case dataset.KindNBW:
		return "nbw_efficiency_model"
	case dataset.KindNarcotics:
		return "narcotics_efficiency_model"
	case dataset.KindOPG:
		return "opg_efficiency_model"
	case dataset.KindPreventive:
		return "preventive_efficiency_model"
	case dataset.KindSandMining:
		return "sand_mining_efficiency_model"
	default:
		return ""
	}
}

// artifact is the exported form of a trained linear regression: intercept
// plus one coefficient per feature, in feature order.
type artifact struct {
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Load reads every *.json artifact in dir into a registry, keyed by file
// stem. Called once from main before the server starts serving.
func Load(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read model dir: %w", err)
	}
	models := map[string]Predictor{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read model %s: %w", e.Name(), err)
		}
		var a artifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("parse model %s: %w", e.Name(), err)
		}
		lm, err := newLinear(a)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", e.Name(), err)
		}
		models[strings.TrimSuffix(e.Name(), ".json")] = lm
	}
	return NewRegistry(models), nil
}
