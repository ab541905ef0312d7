package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/repository"
	"CandleCache/internal/usecase"
	xlogger "CandleCache/pkg/logger"
)

const quoteFeed = "Date,Open,High,Low,Close,Volume\n" +
	"2024-03-01,90.0,100.5,85.2,95.8,1000\n" +
	"2024-03-02,96.0,105.2,92.5,102.3,1200\n"

type stubUpstream struct {
	payload []byte
	err     error
}

func (s *stubUpstream) FetchRaw(context.Context, string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

type stubMetrics struct{}

func (stubMetrics) RecordCacheHit(string)              {}
func (stubMetrics) RecordCacheMiss(string)             {}
func (stubMetrics) RecordUpstreamFetch(string, string) {}
func (stubMetrics) RecordDroppedRows(string, int)      {}
func (stubMetrics) RecordLastPrice(string, float64)    {}
func (stubMetrics) RecordLatency(string, float64)      {}

func newTestServer(t *testing.T, up *stubUpstream) *echo.Echo {
	t.Helper()
	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store := repository.NewMemoryStore()
	svc := usecase.NewCandleService(store, up, stubMetrics{}, logger,
		usecase.WithClock(func() time.Time {
			ts, _ := time.Parse("2006-01-02", "2024-03-02")
			return ts
		}))

	e := echo.New()
	NewCandlesHandler(logger, svc, store).RegisterRoutes(e)
	return e
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetCandlesOK(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte(quoteFeed)})

	rec := doGet(e, "/api/candles?symbol=XYZ&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Price             float64         `json:"price"`
		TodaysPriceChange float64         `json:"todaysPriceChange"`
		PeriodPrices      []models.Candle `json:"periodPrices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Price != 102.3 {
		t.Fatalf("price = %v, want 102.3", body.Price)
	}
	if len(body.PeriodPrices) != 1 {
		t.Fatalf("expected 1 candle with limit=1, got %d", len(body.PeriodPrices))
	}
	if body.PeriodPrices[0].Time != "2024-03-02" {
		t.Fatalf("unexpected window candle: %+v", body.PeriodPrices[0])
	}
}

func TestGetCandlesUnprefixedPath(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte(quoteFeed)})

	rec := doGet(e, "/candles?symbol=xyz&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetCandlesDefaultLimit(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte(quoteFeed)})

	rec := doGet(e, "/api/candles?symbol=xyz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body models.QuoteSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.PeriodPrices) != 2 {
		t.Fatalf("expected the full series under the default limit, got %d", len(body.PeriodPrices))
	}
}

func TestGetCandlesMissingSymbol(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte(quoteFeed)})

	rec := doGet(e, "/api/candles")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Missing symbol" {
		t.Fatalf("error = %q, want %q", body.Error, "Missing symbol")
	}
}

func TestGetCandlesNoData(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte("Date,Open,High,Low,Close,Volume\nNo data\n")})

	rec := doGet(e, "/api/candles?symbol=nosuch")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetCandlesUpstreamDown(t *testing.T) {
	e := newTestServer(t, &stubUpstream{
		err: &models.UpstreamError{Symbol: "xyz", Err: fmt.Errorf("connection refused")},
	})

	rec := doGet(e, "/api/candles?symbol=xyz")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Failed to fetch data from stooq" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t, &stubUpstream{payload: []byte(quoteFeed)})

	rec := doGet(e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
