package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesExtremes(t *testing.T) {
	s := Series{
		{Time: 0, Open: 100, High: 110, Low: 90, Close: 105},
		{Time: 60, Open: 105, High: 120, Low: 101, Close: 118},
		{Time: 120, Open: 118, High: 119, Low: 85, Close: 95},
	}

	assert.Equal(t, 85.0, s.MinLow())
	assert.Equal(t, 120.0, s.MaxHigh())
}

func TestSeriesExtremesEmpty(t *testing.T) {
	var s Series
	assert.Equal(t, 0.0, s.MinLow())
	assert.Equal(t, 0.0, s.MaxHigh())
}

func TestTypicalPrice(t *testing.T) {
	c := Candle{High: 110, Low: 90, Close: 100}
	assert.InDelta(t, 100.0, c.TypicalPrice(), 1e-9)
}

func TestHasMeaningfulVolume(t *testing.T) {
	flat := Series{{Close: 100}, {Close: 101}}
	assert.False(t, flat.HasMeaningfulVolume())

	withVol := Series{{Close: 100}, {Close: 101, Volume: 12.5}}
	assert.True(t, withVol.HasMeaningfulVolume())
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("4h")
	assert.NoError(t, err)
	assert.Equal(t, H4, tf)

	_, err = ParseTimeframe("3h")
	assert.Error(t, err)
}
