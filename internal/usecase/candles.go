package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"CandleCache/internal/domain/models"
	drepo "CandleCache/internal/domain/repository"
	"CandleCache/internal/repository"
	"CandleCache/internal/service/ratelimit"
	"CandleCache/internal/service/stooq"
	xlogger "CandleCache/pkg/logger"
	"CandleCache/pkg/util"
)

// DefaultLimit is the trailing-window size used when the caller passes no
// limit or a non-positive one.
const DefaultLimit = 100

// CandleService orchestrates the cache-or-fetch policy for candle series.
// It is the only component that knows the overall flow: store and upstream
// never talk to each other.
type CandleService struct {
	store    drepo.CandleStore
	upstream drepo.Upstream
	metrics  drepo.Metrics
	logger   *xlogger.Logger

	// optional collaborators; requests never depend on them
	publisher drepo.Publisher
	archive   drepo.Archive

	limiter       *ratelimit.Limiter
	limiterCap    float64
	limiterRefill float64

	sf  singleflight.Group
	now func() time.Time
}

// CandleServiceOption configures optional collaborators.
type CandleServiceOption func(*CandleService)

// NewCandleService creates the service.
func NewCandleService(store drepo.CandleStore, upstream drepo.Upstream, metrics drepo.Metrics, logger *xlogger.Logger, opts ...CandleServiceOption) *CandleService {
	s := &CandleService{
		store:    store,
		upstream: upstream,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPublisher wires a refresh-event publisher.
func WithPublisher(p drepo.Publisher) CandleServiceOption {
	return func(s *CandleService) { s.publisher = p }
}

// WithArchive wires a series archive.
func WithArchive(a drepo.Archive) CandleServiceOption {
	return func(s *CandleService) { s.archive = a }
}

// WithUpstreamLimit guards upstream fetches with a per-symbol token bucket.
// NoData responses are never cached, so without this a client hammering an
// unknown symbol turns into one provider call per request.
func WithUpstreamLimit(capacity, refillPerSec float64) CandleServiceOption {
	return func(s *CandleService) {
		s.limiter = ratelimit.New()
		s.limiterCap = capacity
		s.limiterRefill = refillPerSec
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) CandleServiceOption {
	return func(s *CandleService) { s.now = now }
}

// GetQuote returns the latest price, today's change and the trailing window
// of at most limit candles for the symbol. Symbols are case-insensitive.
//
// The cached entry for (symbol, today) is authoritative; an entry written on
// a prior day is treated as absent. On a miss the series is fetched from the
// provider, parsed, persisted and served. An empty feed fails with
// NoDataError and is deliberately not cached so the next request retries.
func (s *CandleService) GetQuote(ctx context.Context, symbol string, limit int) (*models.QuoteSummary, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := s.now()
	defer func() {
		s.metrics.RecordLatency("get_quote", time.Since(start).Seconds())
	}()

	sym := repository.SanitizeSymbol(symbol)
	today := util.DayOf(s.now())

	series, err := s.store.Read(ctx, sym, today)
	if err != nil && !errors.Is(err, models.ErrEntryNotFound) {
		// A broken store read is just a miss; upstream can still serve.
		s.logger.Warn("cache read failed", xlogger.String("symbol", sym), xlogger.Error(err))
	}
	if err == nil && len(series) > 0 {
		s.metrics.RecordCacheHit(sym)
		return s.assemble(sym, series, limit), nil
	}

	s.metrics.RecordCacheMiss(sym)
	series, err = s.refresh(ctx, sym, today)
	if err != nil {
		return nil, err
	}
	return s.assemble(sym, series, limit), nil
}

// refresh performs fetch → parse → persist for a cold (symbol, day) key.
// Concurrent misses for the same key collapse into one upstream call.
func (s *CandleService) refresh(ctx context.Context, sym, day string) ([]models.Candle, error) {
	v, err, _ := s.sf.Do(sym+":"+day, func() (interface{}, error) {
		if s.limiter != nil && !s.limiter.Allow(sym, s.limiterCap, s.limiterRefill) {
			s.metrics.RecordUpstreamFetch(sym, "throttled")
			return nil, &models.UpstreamError{Symbol: sym, Err: fmt.Errorf("upstream fetch throttled")}
		}

		raw, err := s.upstream.FetchRaw(ctx, sym)
		if err != nil {
			s.metrics.RecordUpstreamFetch(sym, "error")
			return nil, err
		}

		series, dropped := stooq.ParseDaily(raw)
		s.metrics.RecordDroppedRows(sym, dropped)
		if dropped > 0 {
			s.logger.Warn("dropped malformed feed rows",
				xlogger.String("symbol", sym), xlogger.Int("rows", dropped))
		}
		if len(series) == 0 {
			s.metrics.RecordUpstreamFetch(sym, "no_data")
			return nil, &models.NoDataError{Symbol: sym}
		}
		s.metrics.RecordUpstreamFetch(sym, "ok")

		s.persist(sym, day, series)
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Candle), nil
}

// persist writes the entry and notifies optional collaborators. It runs on a
// detached context: once a write starts, request cancellation does not roll
// it back. A store failure is logged and swallowed so the caller still gets
// the freshly fetched data.
func (s *CandleService) persist(sym, day string, series []models.Candle) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Write(ctx, sym, day, series); err != nil {
		s.logger.Error("cache write failed", xlogger.String("symbol", sym), xlogger.Error(err))
	}

	last := series[len(series)-1]
	if s.publisher != nil {
		ev := &models.RefreshEvent{Symbol: sym, Day: day, Price: last.Close, Candles: len(series)}
		if err := s.publisher.PublishRefresh(ctx, ev); err != nil {
			s.logger.Warn("refresh publish failed", xlogger.String("symbol", sym), xlogger.Error(err))
		}
	}
	if s.archive != nil {
		if err := s.archive.AppendSeries(ctx, sym, day, series); err != nil {
			s.logger.Warn("archive append failed", xlogger.String("symbol", sym), xlogger.Error(err))
		}
	}
}

// assemble derives the response shape from a non-empty series.
func (s *CandleService) assemble(sym string, series []models.Candle, limit int) *models.QuoteSummary {
	last := series[len(series)-1]
	price := last.Close
	change := last.Close - last.Open

	window := series
	if limit < len(series) {
		window = series[len(series)-limit:]
	}

	s.metrics.RecordLastPrice(sym, price)
	return &models.QuoteSummary{
		Price:             price,
		TodaysPriceChange: change,
		PeriodPrices:      window,
	}
}
