// Package store persists inference runs. The table is append-only: rows are
// inserted once per run and only ever read back for the history views.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sapcop/fieldscore/internal/report"
)

// Record is one persisted inference run.
type Record struct {
	ID          string        `json:"id"`
	DatasetName string        `json:"dataset_name"`
	CreatedAt   time.Time     `json:"timestamp"`
	FileName    string        `json:"file_name"`
	Predictions []float64     `json:"predictions"`
	Report      report.Report `json:"analysis_report"`
	GraphsPath  string        `json:"graphs_path"`
}

// Summary is the compact dashboard row of a persisted run.
type Summary struct {
	DatasetName string    `json:"dataset_name"`
	Summary     string    `json:"summary"`
	Headline    string    `json:"headline"`
	CreatedAt   time.Time `json:"timestamp"`
	GraphsPath  string    `json:"graphs_path"`
}

// Store is the persistence collaborator of the inference pipeline. Failures
// are logged by the caller and never void the numeric result.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Summaries(ctx context.Context) ([]Summary, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Save(ctx context.Context, rec Record) error {
	pj, err := json.Marshal(rec.Predictions)
	if err != nil {
		return err
	}
	rj, err := json.Marshal(rec.Report)
	if err != nil {
		return err
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO predictions (id, dataset_name, created_at, file_name, predictions_json, report_json, graphs_path)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.DatasetName, created.Unix(), rec.FileName, string(pj), string(rj), rec.GraphsPath)
	return err
}

func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset_name, created_at, file_name, predictions_json, report_json, graphs_path
		 FROM predictions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var created int64
		var pj, rj string
		if err := rows.Scan(&rec.ID, &rec.DatasetName, &created, &rec.FileName, &pj, &rj, &rec.GraphsPath); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(created, 0)
		if err := json.Unmarshal([]byte(pj), &rec.Predictions); err != nil {
			return nil, err
		}
		if rj != "" {
			if err := json.Unmarshal([]byte(rj), &rec.Report); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLStore) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dataset_name, created_at, report_json, graphs_path
		 FROM predictions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var created int64
		var rj string
		if err := rows.Scan(&sum.DatasetName, &created, &rj, &sum.GraphsPath); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(created, 0)
		if rj != "" {
			var rep report.Report
			if err := json.Unmarshal([]byte(rj), &rep); err == nil {
				sum.Summary = rep.Summary
				sum.Headline = rep.Headline
			}
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
