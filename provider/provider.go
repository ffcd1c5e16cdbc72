// Package provider fetches OHLCV series from a trading venue. A fetch
// failure is fatal for that render; retries, if any, belong here and not in
// the drawing core (currently: none).
package provider

import (
	"context"
	"fmt"

	"candlechart/market"
)

// Provider supplies candle series for a symbol at a timeframe.
type Provider interface {
	Fetch(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error)
}

// FetchError wraps network, auth, and unsupported-symbol failures from the
// venue.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
