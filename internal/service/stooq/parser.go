package stooq

import (
	"math"
	"strconv"
	"strings"

	"CandleCache/internal/domain/models"
)

// noDataSentinels mark bodies where the provider answered but has nothing
// for the symbol. Stooq serves Polish and English variants.
var noDataSentinels = []string{"No data", "Brak danych"}

// ParseDaily converts Stooq's comma-delimited daily history into candles.
// The header line is discarded. A row is kept only if its date is non-empty
// and open/close parse as finite numbers; anything else is dropped. The
// second return value is the number of dropped rows, so callers can observe
// feed quality without the parse ever failing.
//
// A sentinel "no data" body, or one with zero valid rows, yields an empty
// slice. Callers must treat that as "no data available", not as a failure.
func ParseDaily(raw []byte) ([]models.Candle, int) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, 0
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil, 0
	}
	rows := lines[1:]

	if first := strings.TrimSpace(rows[0]); isNoData(first) {
		return nil, 0
	}

	candles := make([]models.Candle, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}

		fields := strings.Split(row, ",")
		if len(fields) < 5 {
			dropped++
			continue
		}

		day := strings.TrimSpace(fields[0])
		open, openOK := parseFinite(fields[1])
		closePrice, closeOK := parseFinite(fields[4])
		if day == "" || !openOK || !closeOK {
			dropped++
			continue
		}

		high, _ := parseFinite(fields[2])
		low, _ := parseFinite(fields[3])

		candles = append(candles, models.Candle{
			Time:  day,
			Open:  open,
			High:  high,
			Low:   low,
			Close: closePrice,
		})
	}

	return candles, dropped
}

func isNoData(line string) bool {
	for _, s := range noDataSentinels {
		if strings.HasPrefix(line, s) {
			return true
		}
	}
	return false
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
