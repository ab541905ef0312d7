package models

// Candle represents one trading day's OHLC bar as served to chart views.
// Time is the calendar date in YYYY-MM-DD form, as emitted by the provider.
type Candle struct {
	Time  string  `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// QuoteSummary is the derived response shape for a symbol: latest price,
// today's change and the trailing window of candles the caller asked for.
// It is computed per request and never stored.
type QuoteSummary struct {
	Price             float64  `json:"price"`
	TodaysPriceChange float64  `json:"todaysPriceChange"`
	PeriodPrices      []Candle `json:"periodPrices"`
}
