// Package market defines the OHLCV data model shared by every stage of the
// chart pipeline.
package market

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) sample.
// Time is unix seconds for the candle open.
type Candle struct {
	Time   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

// TypicalPrice returns (high+low+close)/3, the price VWAP weights by volume.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// Timestamp returns the candle open time as a time.Time in UTC.
func (c Candle) Timestamp() time.Time {
	return time.Unix(c.Time, 0).UTC()
}

// Series is a chronologically ordered candle sequence. Insertion order is
// chronological order is rendering order, left to right. A Series is never
// mutated after creation; transforms and indicators return fresh slices.
type Series []Candle

// MinLow returns the lowest low in the series, or 0 for an empty series.
func (s Series) MinLow() float64 {
	if len(s) == 0 {
		return 0
	}
	min := s[0].Low
	for _, c := range s[1:] {
		if c.Low < min {
			min = c.Low
		}
	}
	return min
}

// MaxHigh returns the highest high in the series, or 0 for an empty series.
func (s Series) MaxHigh() float64 {
	if len(s) == 0 {
		return 0
	}
	max := s[0].High
	for _, c := range s[1:] {
		if c.High > max {
			max = c.High
		}
	}
	return max
}

// HasMeaningfulVolume reports whether any candle carries non-zero volume.
// VWAP is only drawn when this holds.
func (s Series) HasMeaningfulVolume() bool {
	for _, c := range s {
		if c.Volume > 0 {
			return true
		}
	}
	return false
}
