package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"candlechart/market"
)

func createTestCandles() market.Series {
	return market.Series{
		{Time: 0, Open: 100, High: 105, Low: 99, Close: 102, Volume: 10},
		{Time: 60, Open: 102, High: 107, Low: 101, Close: 105, Volume: 12},
		{Time: 120, Open: 105, High: 108, Low: 104, Close: 106, Volume: 8},
		{Time: 180, Open: 106, High: 110, Low: 105, Close: 108, Volume: 15},
		{Time: 240, Open: 108, High: 112, Low: 107, Close: 110, Volume: 9},
		{Time: 300, Open: 110, High: 113, Low: 109, Close: 111, Volume: 11},
		{Time: 360, Open: 111, High: 115, Low: 110, Close: 113, Volume: 14},
		{Time: 420, Open: 113, High: 116, Low: 112, Close: 114, Volume: 7},
		{Time: 480, Open: 114, High: 118, Low: 113, Close: 116, Volume: 10},
		{Time: 540, Open: 116, High: 120, Low: 115, Close: 118, Volume: 13},
	}
}

func TestEMASeriesLengthAndSeed(t *testing.T) {
	candles := createTestCandles()

	ema, err := EMASeries(candles, 5)
	assert.NoError(t, err)
	assert.Len(t, ema, len(candles))
	assert.Equal(t, candles[0].Close, ema[0].Value)

	// Second point follows the recurrence with k = 2/(period+1).
	k := 2.0 / 6.0
	want := (candles[1].Close-candles[0].Close)*k + candles[0].Close
	assert.InDelta(t, want, ema[1].Value, 1e-9)
}

func TestEMASeriesBadPeriod(t *testing.T) {
	_, err := EMASeries(createTestCandles(), 0)
	assert.Error(t, err)
}

func TestSMASeriesLength(t *testing.T) {
	candles := createTestCandles()

	sma, err := SMASeries(candles, 5)
	assert.NoError(t, err)
	assert.Len(t, sma, len(candles)-5+1)

	// First window: closes 102,105,106,108,110 => 531/5 = 106.2
	assert.InDelta(t, 106.2, sma[0].Value, 1e-9)
	assert.Equal(t, candles[4].Time, sma[0].Time)
}

func TestSMASeriesShortInput(t *testing.T) {
	sma, err := SMASeries(createTestCandles()[:3], 5)
	assert.NoError(t, err)
	assert.Empty(t, sma)
}

func TestSMASeriesConstantPrice(t *testing.T) {
	flat := make(market.Series, 8)
	for i := range flat {
		flat[i] = market.Candle{Time: int64(i * 60), Close: 42}
	}
	sma, err := SMASeries(flat, 3)
	assert.NoError(t, err)
	assert.Len(t, sma, 6)
	for _, p := range sma {
		assert.InDelta(t, 42.0, p.Value, 1e-9)
	}
}

func TestVWAPSeries(t *testing.T) {
	candles := createTestCandles()
	vwap := VWAPSeries(candles)

	assert.Len(t, vwap, len(candles))

	// First point is the first candle's typical price.
	assert.InDelta(t, candles[0].TypicalPrice(), vwap[0].Value, 1e-9)

	// Second point is volume-weighted over the first two candles.
	tp0, tp1 := candles[0].TypicalPrice(), candles[1].TypicalPrice()
	want := (10*tp0 + 12*tp1) / 22
	assert.InDelta(t, want, vwap[1].Value, 1e-9)
}

func TestVWAPSeriesZeroVolumeFallback(t *testing.T) {
	candles := market.Series{
		{Time: 0, High: 110, Low: 90, Close: 100},
		{Time: 60, High: 120, Low: 100, Close: 110},
	}
	vwap := VWAPSeries(candles)

	assert.Len(t, vwap, 2)
	assert.InDelta(t, candles[0].TypicalPrice(), vwap[0].Value, 1e-9)
	assert.InDelta(t, candles[1].TypicalPrice(), vwap[1].Value, 1e-9)
}
