package models

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned by a CandleStore when no entry exists for
// the requested (symbol, day) key.
var ErrEntryNotFound = errors.New("candle entry not found")

// UpstreamError indicates the provider could not be reached or answered with
// a non-success status. Nothing is cached when it occurs.
type UpstreamError struct {
	Symbol string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream unavailable for %s: %v", e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NoDataError indicates the provider was reachable but returned zero usable
// rows for the symbol. Deliberately not cached so a later request re-queries.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for symbol %s", e.Symbol)
}
