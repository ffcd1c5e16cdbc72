package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"candlechart/config"
	"candlechart/market"
)

func stubFetch(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
	base := 100.0
	if symbol == "ETHUSDT" {
		base = 2000.0
	}
	s := make(market.Series, 10)
	for i := range s {
		p := base + float64(i)
		s[i] = market.Candle{
			Time: int64(i) * int64(tf.Duration().Seconds()),
			Open: p, High: p + 2, Low: p - 2, Close: p + 1, Volume: 5,
		}
	}
	return s, nil
}

func baseSpec() Spec {
	return Spec{
		Symbols:   []string{"BTCUSDT", "ETHUSDT"},
		Timeframe: "1h",
		Limit:     10,
		Layout:    SideBySide,
		Gap:       10,
		Width:     1600,
		Height:    600,
		Chart:     config.Default(),
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("grid")
	assert.NoError(t, err)
	assert.Equal(t, Grid, l)

	l, err = ParseLayout("")
	assert.NoError(t, err)
	assert.Equal(t, SideBySide, l)

	_, err = ParseLayout("stacked")
	assert.Error(t, err)
}

func TestComposeSideBySide(t *testing.T) {
	img, results, err := Compose(context.Background(), stubFetch, baseSpec())
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1600, 600), img.Bounds())
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotEmpty(t, r.ID)
	}
}

func TestComposeGrid(t *testing.T) {
	spec := baseSpec()
	spec.Layout = Grid
	spec.Columns = 2
	spec.Width = 1200
	spec.Height = 800

	img, results, err := Compose(context.Background(), stubFetch, spec)
	assert.NoError(t, err)
	assert.NotNil(t, img)
	assert.Len(t, results, 2)
}

func TestGridRejectsThreeSymbols(t *testing.T) {
	spec := baseSpec()
	spec.Layout = Grid
	spec.Symbols = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}

	_, _, err := Compose(context.Background(), stubFetch, spec)
	assert.Error(t, err)

	var lce *LayoutConstraintError
	assert.ErrorAs(t, err, &lce)
	assert.Contains(t, err.Error(), "maximum 2 charts")
}

func TestGridRejectsThreeColumns(t *testing.T) {
	spec := baseSpec()
	spec.Layout = Grid
	spec.Columns = 3

	_, _, err := Compose(context.Background(), stubFetch, spec)
	assert.Error(t, err)

	var lce *LayoutConstraintError
	assert.ErrorAs(t, err, &lce)
	assert.Contains(t, err.Error(), "maximum 2 columns")
}

func TestTimeframeModeByPresence(t *testing.T) {
	spec := baseSpec()
	spec.Timeframes = []string{"1h", "4h", "1d"}

	// Cells are capped to min(symbol slots, timeframe count) and all use the
	// first symbol.
	cs, err := cells(spec)
	assert.NoError(t, err)
	assert.Len(t, cs, 2)
	for _, c := range cs {
		assert.Equal(t, "BTCUSDT", c.Symbol)
	}
	assert.Equal(t, market.H1, cs[0].Timeframe)
	assert.Equal(t, market.H4, cs[1].Timeframe)
}

func TestSymbolMode(t *testing.T) {
	cs, err := cells(baseSpec())
	assert.NoError(t, err)
	assert.Len(t, cs, 2)
	assert.Equal(t, "BTCUSDT", cs[0].Symbol)
	assert.Equal(t, "ETHUSDT", cs[1].Symbol)
	assert.Equal(t, market.H1, cs[0].Timeframe)
	assert.Equal(t, cs[0].Timeframe, cs[1].Timeframe)
}

func TestPerCellFailureIsolation(t *testing.T) {
	fetch := func(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
		if symbol == "ETHUSDT" {
			return nil, fmt.Errorf("venue unavailable")
		}
		return stubFetch(ctx, symbol, tf, limit)
	}

	img, results, err := Compose(context.Background(), fetch, baseSpec())
	assert.NoError(t, err)
	assert.NotNil(t, img)
	assert.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.False(t, errors.Is(results[0].Err, results[1].Err))
}

func TestLayoutCellsSideBySide(t *testing.T) {
	spec := baseSpec()
	rects := layoutCells(spec, 2)

	assert.Equal(t, cellRect{X: 0, Y: 0, W: 795, H: 600}, rects[0])
	assert.Equal(t, cellRect{X: 805, Y: 0, W: 795, H: 600}, rects[1])
}

func TestCellDimensionsRescaleWithFloors(t *testing.T) {
	// Full reference size keeps the default margins.
	d := cellDimensions(800, 600)
	assert.InDelta(t, 40, d.Margin.Top, 1e-9)
	assert.InDelta(t, 60, d.Margin.Left, 1e-9)

	// Tiny cells hit the legibility floors.
	d = cellDimensions(160, 120)
	assert.InDelta(t, 20, d.Margin.Top, 1e-9)
	assert.InDelta(t, 20, d.Margin.Left, 1e-9)
	assert.InDelta(t, 15, d.Margin.Bottom, 1e-9)
	assert.InDelta(t, 15, d.Margin.Right, 1e-9)
}
