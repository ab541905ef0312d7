package stooq

import "testing"

func TestParseDailyKeepsValidRows(t *testing.T) {
	raw := []byte("Date,Open,High,Low,Close,Volume\n" +
		"2024-03-01,90.0,100.5,85.2,95.8,1000\n" +
		"2024-03-02,96.0,105.2,92.5,102.3,1200\n")

	candles, dropped := ParseDaily(raw)
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if dropped != 0 {
		t.Fatalf("expected 0 dropped, got %d", dropped)
	}
	if candles[1].Time != "2024-03-02" || candles[1].Close != 102.3 {
		t.Fatalf("unexpected last candle %+v", candles[1])
	}
	if candles[0].High != 100.5 || candles[0].Low != 85.2 {
		t.Fatalf("unexpected first candle %+v", candles[0])
	}
}

func TestParseDailyDropsMalformedRows(t *testing.T) {
	raw := []byte("Date,Open,High,Low,Close\n" +
		"2024-03-01,90.0,100.5,85.2,95.8\n" +
		"2024-03-02,96.0,105.2,92.5,abc\n" + // non-numeric close
		"2024-03-03,97.0,106.0,93.0,101.0\n" +
		",98.0,107.0,94.0,103.0\n" + // missing date
		"2024-03-05,99.0,108.0,95.0,104.0\n")

	candles, dropped := ParseDaily(raw)
	if len(candles) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(candles))
	}
	if dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	// relative order preserved
	want := []string{"2024-03-01", "2024-03-03", "2024-03-05"}
	for i, c := range candles {
		if c.Time != want[i] {
			t.Fatalf("candle %d: expected %s, got %s", i, want[i], c.Time)
		}
	}
}

func TestParseDailyShortRows(t *testing.T) {
	raw := []byte("Date,Open,High,Low,Close\n2024-03-01,90.0\n")
	candles, dropped := ParseDaily(raw)
	if len(candles) != 0 || dropped != 1 {
		t.Fatalf("expected 0 candles and 1 dropped, got %d/%d", len(candles), dropped)
	}
}

func TestParseDailyNoDataSentinel(t *testing.T) {
	for _, body := range []string{
		"Date,Open,High,Low,Close\nNo data\n",
		"Date,Open,High,Low,Close\nBrak danych\n",
	} {
		candles, dropped := ParseDaily([]byte(body))
		if len(candles) != 0 {
			t.Fatalf("expected empty series for %q, got %d candles", body, len(candles))
		}
		if dropped != 0 {
			t.Fatalf("sentinel must not count as dropped, got %d", dropped)
		}
	}
}

func TestParseDailyEmptyBody(t *testing.T) {
	if candles, _ := ParseDaily(nil); len(candles) != 0 {
		t.Fatalf("expected empty series, got %d", len(candles))
	}
	if candles, _ := ParseDaily([]byte("Date,Open,High,Low,Close\n")); len(candles) != 0 {
		t.Fatalf("expected empty series for header-only body, got %d", len(candles))
	}
}
