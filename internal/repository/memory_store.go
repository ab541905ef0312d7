package repository

import (
	"context"
	"sync"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
)

// MemoryStore is a mutex-guarded in-process store. It does not survive
// restarts; it exists for tests and single-node setups where refetching
// after a restart is acceptable.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]models.Candle
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string][]models.Candle)}
}

func memKey(symbol, day string) string {
	return SanitizeSymbol(symbol) + ":" + day
}

func (s *MemoryStore) Read(_ context.Context, symbol, day string) ([]models.Candle, error) {
	s.mu.RLock()
	series, ok := s.m[memKey(symbol, day)]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrEntryNotFound
	}
	out := make([]models.Candle, len(series))
	copy(out, series)
	return out, nil
}

func (s *MemoryStore) Write(_ context.Context, symbol, day string, series []models.Candle) error {
	cp := make([]models.Candle, len(series))
	copy(cp, series)
	s.mu.Lock()
	s.m[memKey(symbol, day)] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Health(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

var _ repository.CandleStore = (*MemoryStore)(nil)
