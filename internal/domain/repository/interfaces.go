package repository

import (
	"context"

	"CandleCache/internal/domain/models"
)

// CandleStore persists one candle series per (symbol, calendar day). It is a
// dumb exact-key store: freshness policy (today vs. yesterday) lives in the
// usecase, which simply never reads keys for prior days.
type CandleStore interface {
	// Read returns the series stored for (symbol, day), or
	// models.ErrEntryNotFound when no such entry exists.
	Read(ctx context.Context, symbol, day string) ([]models.Candle, error)
	// Write replaces any existing entry for (symbol, day) wholesale.
	Write(ctx context.Context, symbol, day string, series []models.Candle) error
	Health(ctx context.Context) error
	Close() error
}

// Upstream fetches the raw daily-history payload for one symbol from the
// external provider. One outbound call per invocation, no retries.
type Upstream interface {
	FetchRaw(ctx context.Context, symbol string) ([]byte, error)
}

// Publisher emits refresh events after a successful upstream fetch so
// downstream consumers (alerting, notifications) can react. Optional.
type Publisher interface {
	PublishRefresh(ctx context.Context, ev *models.RefreshEvent) error
	Close() error
}

// Archive retains fetched series for analytical queries. Optional; failures
// must never affect request handling.
type Archive interface {
	AppendSeries(ctx context.Context, symbol, day string, series []models.Candle) error
	Close() error
}

// Metrics abstracts operational counters so the usecase does not depend on
// a concrete metrics backend.
type Metrics interface {
	RecordCacheHit(symbol string)
	RecordCacheMiss(symbol string)
	RecordUpstreamFetch(symbol, result string)
	RecordDroppedRows(symbol string, n int)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
