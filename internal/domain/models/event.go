package models

// RefreshEvent is published after a cold-cache fetch stored a fresh series.
type RefreshEvent struct {
	Symbol  string  `json:"symbol"`
	Day     string  `json:"day"`
	Price   float64 `json:"price"`
	Candles int     `json:"candles"`
}
