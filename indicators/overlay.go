package indicators

import (
	"fmt"

	"candlechart/market"
)

// EMASeries calculates the Exponential Moving Average over closes.
//
// The first value is seeded directly from the first close (no SMA warm-up),
// so the output always has one point per input candle.
func EMASeries(candles market.Series, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(candles) == 0 {
		return Series{}, nil
	}

	k := 2.0 / float64(period+1)
	out := make(Series, len(candles))

	ema := candles[0].Close
	out[0] = Point{Time: candles[0].Time, Value: ema}

	for i := 1; i < len(candles); i++ {
		ema = (candles[i].Close-ema)*k + ema
		out[i] = Point{Time: candles[i].Time, Value: ema}
	}

	return out, nil
}

// SMASeries calculates the Simple Moving Average of closes over period.
// Output length is len(candles)-period+1; shorter inputs yield an empty
// series rather than an error.
func SMASeries(candles market.Series, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(candles) < period {
		return Series{}, nil
	}

	out := make(Series, 0, len(candles)-period+1)

	sum := 0.0
	for i, c := range candles {
		sum += c.Close
		if i >= period {
			sum -= candles[i-period].Close
		}
		if i >= period-1 {
			out = append(out, Point{Time: c.Time, Value: sum / float64(period)})
		}
	}

	return out, nil
}

// VWAPSeries calculates the cumulative Volume Weighted Average Price: running
// sums of volume and volume×typical price, one point per candle. When the
// cumulative volume is still zero the point falls back to that candle's
// typical price.
func VWAPSeries(candles market.Series) Series {
	out := make(Series, len(candles))

	var cumVolume, cumVolumePrice float64
	for i, c := range candles {
		cumVolume += c.Volume
		cumVolumePrice += c.Volume * c.TypicalPrice()

		v := c.TypicalPrice()
		if cumVolume > 0 {
			v = cumVolumePrice / cumVolume
		}
		out[i] = Point{Time: c.Time, Value: v}
	}

	return out
}
