// Package indicators computes overlay series (VWAP, EMA, SMA) from the
// original candle series, independent of which chart transform is active.
package indicators

import "candlechart/market"

// Point is one overlay sample: the candle open time and the indicator value.
type Point struct {
	Time  int64
	Value float64
}

// Series is an ordered overlay sequence, one pass left to right.
type Series []Point

// Indicator computes a single streaming value from closed candles.
// It is deterministic: replaying the same candles yields the same values.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "VWAP".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed candle.
	Update(c market.Candle)

	// Ready reports whether Value() is meaningful.
	Ready() bool

	// Value returns the current indicator value; callers should check Ready().
	Value() float64
}

// Collect replays a series through a streaming indicator and gathers one
// point per candle for which the indicator was ready.
func Collect(ind Indicator, s market.Series) Series {
	ind.Reset()
	out := make(Series, 0, len(s))
	for _, c := range s {
		ind.Update(c)
		if ind.Ready() {
			out = append(out, Point{Time: c.Time, Value: ind.Value()})
		}
	}
	return out
}
