package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"candlechart/config"
	"candlechart/market"
	"candlechart/scale"
)

func renderSeries() market.Series {
	return market.Series{
		{Time: 0, Open: 100, High: 110, Low: 90, Close: 105, Volume: 10},
		{Time: 3600, Open: 105, High: 112, Low: 103, Close: 108, Volume: 8},
		{Time: 7200, Open: 108, High: 109, Low: 99, Close: 101, Volume: 14},
		{Time: 10800, Open: 101, High: 106, Low: 100, Close: 104, Volume: 6},
	}
}

func TestRenderSingleCandleScenario(t *testing.T) {
	series := market.Series{{Time: 0, Open: 100, High: 110, Low: 90, Close: 105}}
	cfg := config.Default()

	img, err := Render(series, cfg)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())

	// Range [90,110] over the default frame: y(105)=170, y(100)=300. The body
	// is centered on the single slot, so a pixel just off the vertical
	// gridline and between those rows is the bullish fill.
	d := scale.NewDimensions(800, 600)
	rng := scale.Range{Min: 90, Max: 110}
	yTop := scale.PixelY(105, rng, d)
	yBot := scale.PixelY(100, rng, d)
	assert.InDelta(t, 170.0, yTop, 1e-9)
	assert.InDelta(t, 300.0, yBot, 1e-9)

	bull := DarkTheme().Bull
	got := color.RGBAModel.Convert(img.At(400, 235)).(color.RGBA)
	assert.Equal(t, bull, got)

	// Above the body (but below the high) only the one-pixel wick column is
	// colored; a pixel away from center is still background.
	bg := DarkTheme().Background
	got = color.RGBAModel.Convert(img.At(400, 120)).(color.RGBA)
	assert.Equal(t, bg, got)
}

func TestRenderEmptySeriesNoops(t *testing.T) {
	cfg := config.Default()
	cfg.Indicators = config.Indicators{EMAPeriod: 9, SMAPeriod: 20, VWAP: true}

	for _, typ := range []string{"candlestick", "line", "area", "heikin-ashi", "renko", "line-break"} {
		cfg.Type = typ
		img, err := Render(market.Series{}, cfg)
		assert.NoError(t, err, "type %s", typ)
		assert.NotNil(t, img)
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Type = "area"
	cfg.Scale.Auto = true
	cfg.Indicators = config.Indicators{EMAPeriod: 3, SMAPeriod: 2, VWAP: true}
	cfg.Title = "BTCUSDT 1h"
	cfg.Watermark = "candlechart"
	cfg.Levels = []config.Level{{Value: 102, Style: "dotted", Label: "entry"}}

	series := renderSeries()

	var a, b bytes.Buffer
	img1, err := Render(series, cfg)
	assert.NoError(t, err)
	img2, err := Render(series, cfg)
	assert.NoError(t, err)

	assert.NoError(t, EncodePNG(&a, img1))
	assert.NoError(t, EncodePNG(&b, img2))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRenderAllChartTypes(t *testing.T) {
	series := renderSeries()

	for _, typ := range []string{"candlestick", "line", "area", "heikin-ashi", "renko", "line-break"} {
		cfg := config.Default()
		cfg.Type = typ
		img, err := Render(series, cfg)
		assert.NoError(t, err, "type %s", typ)
		assert.NotNil(t, img)
	}
}

func TestRenderVWAPRequiresVolume(t *testing.T) {
	noVolume := market.Series{
		{Time: 0, Open: 100, High: 110, Low: 90, Close: 105},
		{Time: 3600, Open: 105, High: 112, Low: 103, Close: 108},
	}
	cfg := config.Default()
	cfg.Indicators.VWAP = true

	// Must not fail; the overlay is simply skipped without volume.
	_, err := Render(noVolume, cfg)
	assert.NoError(t, err)
}

func TestRenderHiddenElementsKeepMargins(t *testing.T) {
	series := renderSeries()

	cfg := config.Default()
	visible, err := Render(series, cfg)
	assert.NoError(t, err)

	cfg.HideGrid = true
	cfg.HideAxes = true
	cfg.HideTimeAxis = true
	hidden, err := Render(series, cfg)
	assert.NoError(t, err)

	// Coordinate math is unchanged: a pixel inside the second candle's body,
	// away from any grid line, is identical whether or not grid and axes are
	// drawn.
	assert.Equal(t, visible.At(350, 190), hidden.At(350, 190))
}

func TestTimeTickIndexesCap(t *testing.T) {
	assert.Nil(t, timeTickIndexes(0))
	assert.Equal(t, []int{0}, timeTickIndexes(1))
	assert.Equal(t, []int{0, 1, 2, 3}, timeTickIndexes(4))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, timeTickIndexes(6))

	// Never more than six ticks, even just past a step boundary.
	assert.Equal(t, []int{0, 2, 4, 6, 8, 10}, timeTickIndexes(11))
	for _, n := range []int{7, 13, 50, 500, 1000} {
		assert.LessOrEqual(t, len(timeTickIndexes(n)), 6, "n=%d", n)
	}
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#26a69a")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0x26, 0xa6, 0x9a, 0xff}, c)

	c, ok = ParseHex("#26a69a80")
	assert.True(t, ok)
	assert.Equal(t, uint8(0x80), c.A)

	c, ok = ParseHex("#fff")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)

	_, ok = ParseHex("26a69a")
	assert.False(t, ok)
	_, ok = ParseHex("#xyz")
	assert.False(t, ok)
}

func TestResolveOrder(t *testing.T) {
	theme := DarkTheme()

	// Explicit custom color wins.
	assert.Equal(t, color.RGBA{0x11, 0x22, 0x33, 0xff}, resolve("#112233", theme.Bull))
	// Empty or invalid custom falls back.
	assert.Equal(t, theme.Bull, resolve("", theme.Bull))
	assert.Equal(t, theme.Bull, resolve("#nothex", theme.Bull))
}
