// Package report produces the narrative briefing attached to an inference
// result. Generation is a pluggable capability: the Gemini generator is
// optional decoration over a deterministic fallback, so a narrative outage
// never blocks score delivery.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/score"
)

// Report is the narrative payload persisted with every prediction run.
type Report struct {
	Summary   string `json:"summary"`
	Headline  string `json:"headline"`
	Narrative string `json:"analysis_report"`
}

// Generator turns a scored table into prose.
type Generator interface {
	Generate(ctx context.Context, datasetLabel string, en *dataset.Table, raw []float64) (Report, error)
}

// districtNames lists the district column, or positional record labels when
// the table has none.
func districtNames(en *dataset.Table, n int) []string {
	if en != nil && en.HasColumn("district") {
		return en.Strings("district")
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Record %d", i+1)
	}
	return out
}

// stats condenses what both generators need from the scaled vector.
type stats struct {
	districts    []string
	scaled       []float64
	avg          float64
	topIdx       int
	lowIdx       int
	stdDev       float64
	aboveAverage int
}

func summarize(en *dataset.Table, raw []float64) stats {
	scaled := score.Normalize(raw)
	s := stats{districts: districtNames(en, len(scaled)), scaled: scaled}
	if len(scaled) == 0 {
		return s
	}
	var sum float64
	for i, v := range scaled {
		sum += v
		if v > scaled[s.topIdx] {
			s.topIdx = i
		}
		if v < scaled[s.lowIdx] {
			s.lowIdx = i
		}
	}
	s.avg = sum / float64(len(scaled))
	var varSum float64
	for _, v := range scaled {
		d := v - s.avg
		varSum += d * d
	}
	s.stdDev = math.Sqrt(varSum / float64(len(scaled)))
	for _, v := range scaled {
		if v >= s.avg {
			s.aboveAverage++
		}
	}
	return s
}

func (s stats) name(i int) string {
	if i < len(s.districts) && strings.TrimSpace(s.districts[i]) != "" {
		return strings.TrimSpace(s.districts[i])
	}
	return fmt.Sprintf("Record %d", i+1)
}

func summaryLine(label string, s stats) string {
	return fmt.Sprintf("%s: Avg %.2f%% | Top %s | Lowest %s",
		label, s.avg, s.name(s.topIdx), s.name(s.lowIdx))
}

func defaultHeadline(label string) string {
	return strings.ReplaceAll(label, "_", " ") + " performance snapshot"
}

// Fallback is the required deterministic generator. It never errors.
type Fallback struct{}

func (Fallback) Generate(_ context.Context, label string, en *dataset.Table, raw []float64) (Report, error) {
	s := summarize(en, raw)
	if len(s.scaled) == 0 {
		return Report{
			Summary:   fmt.Sprintf("%s: (No predictions available)", label),
			Headline:  "No predictions",
			Narrative: "No performance records were available to analyse.",
		}, nil
	}
	return Report{
		Summary:   summaryLine(label, s),
		Headline:  defaultHeadline(label),
		Narrative: fallbackNarrative(label, s),
	}, nil
}

func fallbackNarrative(label string, s stats) string {
	top := s.scaled[s.topIdx]
	low := s.scaled[s.lowIdx]
	spread := top - low

	variation := "high"
	if s.stdDev < 4 {
		variation = "limited"
	} else if s.stdDev < 8 {
		variation = "moderate"
	}

	lines := []string{
		fmt.Sprintf("Operational briefing for %s indicates an average efficiency of %.1f%% across %d districts.",
			strings.ReplaceAll(label, "_", " "), s.avg, len(s.scaled)),
		fmt.Sprintf("%s currently leads the drive with %.1f%%, while %s trails at %.1f%%, creating a performance gap of %.1f points.",
			s.name(s.topIdx), top, s.name(s.lowIdx), low, spread),
		fmt.Sprintf("Variation in the data is %s, with a standard deviation of %.1f points and %d districts operating at or above the statewide average.",
			variation, s.stdDev, s.aboveAverage),
		fmt.Sprintf("Focus supervisory support on the bottom quartile to raise field execution rates and share the playbooks from %s to accelerate catch-up.",
			s.name(s.topIdx)),
		"Ensure data validation for districts showing steep swings and align weekly targets with the average benchmark for faster normalisation.",
	}
	return strings.Join(lines, " ")
}
