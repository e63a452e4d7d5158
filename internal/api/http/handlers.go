package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sapcop/fieldscore/internal/dataset"
	"github.com/sapcop/fieldscore/internal/inference"
	"github.com/sapcop/fieldscore/internal/model"
	"github.com/sapcop/fieldscore/internal/storage"
	"github.com/sapcop/fieldscore/internal/store"
)

const maxUploadBytes = 16 << 20

// errorPayload is the structured error shape of the pipeline: inference
// failures come back as data, not HTTP faults, so the dashboard never has to
// translate stack traces.
type errorPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writePipelineError(w http.ResponseWriter, err error) {
	msg := "Inference failed: " + err.Error()
	switch {
	case errors.Is(err, inference.ErrUnknownDataset):
		msg = "Unknown dataset structure"
	case errors.Is(err, model.ErrModelUnavailable):
		msg = "Model unavailable: " + err.Error()
	}
	writeJSON(w, http.StatusOK, errorPayload{Status: "error", Message: msg})
}

// PredictHandler scores an uploaded CSV. The upload is retained under the
// run id when a store is configured; retention failure is not fatal.
func PredictHandler(svc *inference.Service, uploads *storage.UploadStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "bad multipart form", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		body, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			http.Error(w, "read upload", http.StatusBadRequest)
			return
		}
		t, err := dataset.FromCSV(bytes.NewReader(body))
		if err != nil {
			writeJSON(w, http.StatusOK, errorPayload{Status: "error", Message: err.Error()})
			return
		}

		res, err := svc.Run(r.Context(), t, hdr.Filename)
		if err != nil {
			writePipelineError(w, err)
			return
		}
		if uploads != nil {
			if _, err := uploads.Save(res.RunID, hdr.Filename, bytes.NewReader(body)); err != nil {
				log.Warn("upload retention failed", zap.String("run_id", res.RunID), zap.Error(err))
			}
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// QuickCheckHandler scores a single submitted record without a file upload.
func QuickCheckHandler(svc *inference.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		t, err := dataset.FromRecord(rec)
		if err != nil {
			writeJSON(w, http.StatusOK, errorPayload{Status: "error", Message: err.Error()})
			return
		}
		res, err := svc.Run(r.Context(), t, "")
		if err != nil {
			writePipelineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// HistoryHandler lists the most recent persisted runs.
func HistoryHandler(history store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if q := r.URL.Query().Get("limit"); q != "" {
			if n, err := strconv.Atoi(q); err == nil && n > 0 {
				limit = n
			}
		}
		recs, err := history.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if recs == nil {
			recs = []store.Record{}
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

// SummariesHandler lists the compact dashboard rows of all persisted runs.
func SummariesHandler(history store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sums, err := history.Summaries(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if sums == nil {
			sums = []store.Summary{}
		}
		writeJSON(w, http.StatusOK, sums)
	}
}
