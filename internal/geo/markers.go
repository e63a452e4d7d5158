package geo

import (
	"sort"
	"strings"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/score"
)

// Marker is one deduplicated map entry: the most recent record per district
// within a single inference call.
type Marker struct {
	District   string     `json:"district"`
	State      string     `json:"state"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Efficiency float64    `json:"efficiency"`
	RawScore   float64    `json:"raw_score"`
	Dataset    string     `json:"dataset"`
	Category   string     `json:"category"`
	Month      *string    `json:"month"`
	Band       score.Band `json:"band"`
}

// BuildMapPoints assembles map markers from an enriched table and its raw
// score vector. Rows with a blank district or an unresolvable geocode are
// silently skipped. On a duplicate district the row with the later YYYY-MM
// month wins; a month-less row never overwrites an entry that has a month.
func BuildMapPoints(datasetLabel string, en *dataset.Table, raw []float64) []Marker {
	if en == nil || !en.HasColumn("district") {
		return []Marker{}
	}
	scaled := score.Normalize(raw)
	hasMonth := en.HasColumn("month")

	byDistrict := map[string]Marker{}
	var order []string
	for i, row := range en.Rows {
		if i >= len(raw) {
			break
		}
		name := strings.TrimSpace(row["district"])
		if name == "" {
			continue
		}
		p, ok := Resolve(name)
		if !ok {
			continue
		}

		var month *string
		if hasMonth {
			if m := strings.TrimSpace(row["month"]); m != "" {
				month = &m
			}
		}

		marker := Marker{
			District:   name,
			State:      p.State,
			Latitude:   p.Lat,
			Longitude:  p.Lng,
			Efficiency: scaled[i],
			RawScore:   raw[i],
			Dataset:    datasetLabel,
			Category:   strings.ReplaceAll(datasetLabel, "_", " "),
			Month:      month,
			Band:       score.BandFor(scaled[i]),
		}

		key := normalizeKey(name)
		existing, seen := byDistrict[key]
		if !seen {
			byDistrict[key] = marker
			order = append(order, key)
			continue
		}
		if month != nil && (existing.Month == nil || *month > *existing.Month) {
			byDistrict[key] = marker
		}
	}

	sort.Strings(order)
	out := make([]Marker, 0, len(order))
	for _, k := range order {
		out = append(out, byDistrict[k])
	}
	return out
}
