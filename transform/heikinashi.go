package transform

import (
	"math"

	"candlechart/market"
)

// heikinAshi smooths candles with the standard left-to-right recurrence.
// Output candle i depends on output candle i-1, so the loop is strictly
// sequential.
type heikinAshi struct{}

func (heikinAshi) Apply(s market.Series) market.Series {
	if len(s) == 0 {
		return market.Series{}
	}

	out := make(market.Series, len(s))
	out[0] = s[0] // first smoothed candle copies the first input exactly

	for i := 1; i < len(s); i++ {
		in := s[i]
		prev := out[i-1]

		close := (in.Open + in.High + in.Low + in.Close) / 4
		open := (prev.Open + prev.Close) / 2

		out[i] = market.Candle{
			Time:   in.Time,
			Open:   open,
			High:   math.Max(in.High, math.Max(open, close)),
			Low:    math.Min(in.Low, math.Min(open, close)),
			Close:  close,
			Volume: in.Volume,
		}
	}

	return out
}
