package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
)

// FileStore persists one JSON file per (symbol, day) entry under a data
// directory. It is the durability boundary: entries written before a restart
// are readable after it, so restarts never force a refetch storm.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory, for housekeeping sweeps.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(symbol, day string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", SanitizeSymbol(symbol), day))
}

func (s *FileStore) Read(_ context.Context, symbol, day string) ([]models.Candle, error) {
	b, err := os.ReadFile(s.path(symbol, day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrEntryNotFound
		}
		return nil, fmt.Errorf("read cache entry: %w", err)
	}

	var series []models.Candle
	if err := json.Unmarshal(b, &series); err != nil {
		// A corrupt entry is indistinguishable from a missing one to callers;
		// the next write replaces it wholesale.
		return nil, models.ErrEntryNotFound
	}
	return series, nil
}

// Write replaces the entry via temp file + rename, so concurrent readers
// never observe a torn write. The last complete write wins.
func (s *FileStore) Write(_ context.Context, symbol, day string, series []models.Candle) error {
	b, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	dst := s.path(symbol, day)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace cache entry: %w", err)
	}
	return nil
}

func (s *FileStore) Health(_ context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ repository.CandleStore = (*FileStore)(nil)
