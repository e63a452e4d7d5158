// Package storage retains uploaded dataset files on disk, keyed by run id,
// so a scored upload can be re-derived or audited later.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

type UploadStore struct{ base string }

func NewUploadStore(base string) (*UploadStore, error) {
	if base == "" {
		base = "./data/uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &UploadStore{base: base}, nil
}

// Save writes the upload under <base>/<runID>/<filename> and returns the
// stored relative key.
func (s *UploadStore) Save(runID, filename string, r io.Reader) (string, error) {
	if runID == "" {
		return "", errors.New("empty run id")
	}
	name := filepath.Base(filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload.csv"
	}
	key := filepath.Join(runID, name)
	dst := filepath.Join(s.base, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

// Open reads a retained upload back by its stored key.
func (s *UploadStore) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Clean(key)))
}
