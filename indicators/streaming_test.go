package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamingEMAMatchesBatch(t *testing.T) {
	candles := createTestCandles()

	batch, err := EMASeries(candles, 5)
	assert.NoError(t, err)

	streamed := Collect(NewEMA(5), candles)
	assert.Equal(t, len(batch), len(streamed))
	for i := range batch {
		assert.InDelta(t, batch[i].Value, streamed[i].Value, 1e-9)
		assert.Equal(t, batch[i].Time, streamed[i].Time)
	}
}

func TestStreamingSMAMatchesBatch(t *testing.T) {
	candles := createTestCandles()

	batch, err := SMASeries(candles, 4)
	assert.NoError(t, err)

	streamed := Collect(NewSMA(4), candles)
	assert.Equal(t, len(batch), len(streamed))
	for i := range batch {
		assert.InDelta(t, batch[i].Value, streamed[i].Value, 1e-9)
	}
}

func TestStreamingVWAPMatchesBatch(t *testing.T) {
	candles := createTestCandles()

	batch := VWAPSeries(candles)
	streamed := Collect(NewVWAP(), candles)

	assert.Equal(t, len(batch), len(streamed))
	for i := range batch {
		assert.InDelta(t, batch[i].Value, streamed[i].Value, 1e-9)
	}
}

func TestStreamingReset(t *testing.T) {
	candles := createTestCandles()

	ema := NewEMA(5)
	first := Collect(ema, candles)
	second := Collect(ema, candles)
	assert.Equal(t, first, second)
}

func TestStreamingNames(t *testing.T) {
	assert.Equal(t, "EMA(20)", NewEMA(20).Name())
	assert.Equal(t, "SMA(50)", NewSMA(50).Name())
	assert.Equal(t, "VWAP", NewVWAP().Name())
}
