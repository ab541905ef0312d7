package stooq

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CandleCache/internal/domain/models"
)

func TestFetchRawLowercasesSymbol(t *testing.T) {
	var gotSym string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSym = r.URL.Query().Get("s")
		if r.URL.Query().Get("i") != "d" {
			t.Errorf("expected daily interval, got %q", r.URL.Query().Get("i"))
		}
		_, _ = w.Write([]byte("Date,Open,High,Low,Close\n2024-03-01,1,2,0.5,1.5\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	raw, err := c.FetchRaw(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSym != "aapl" {
		t.Fatalf("expected lowercased symbol, got %q", gotSym)
	}
	if len(raw) == 0 {
		t.Fatalf("expected body")
	}
}

func TestFetchRawUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.FetchRaw(context.Background(), "xyz")
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Symbol != "xyz" {
		t.Fatalf("unexpected symbol in error: %q", ue.Symbol)
	}
}

func TestFetchRawTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, time.Second)
	_, err := c.FetchRaw(context.Background(), "xyz")
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
