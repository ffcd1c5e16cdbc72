package render

import (
	"image/color"
	"math"

	"candlechart/market"
	"candlechart/scale"
)

// palette is the resolved color set for the primary shape.
type palette struct {
	bull      color.RGBA
	bear      color.RGBA
	line      color.RGBA
	border    color.RGBA
	hasBorder bool
}

// drawCandles renders wick+body candles, one slot per candle. Used by the
// candlestick and Heikin-Ashi chart types.
func drawCandles(c *Canvas, s market.Series, r scale.Range, d scale.Dimensions, p palette) {
	n := len(s)
	if n == 0 {
		return
	}

	slot := d.ChartWidth() / float64(n)
	bodyW := math.Max(1, slot*0.7)

	for i, cd := range s {
		col := p.bear
		if cd.Bullish() {
			col = p.bull
		}
		x := scale.PixelXSlot(i, n, d)

		// Wick first so the body paints over it.
		c.Line(x, scale.PixelY(cd.High, r, d), x, scale.PixelY(cd.Low, r, d), 1, col)

		top := scale.PixelY(math.Max(cd.Open, cd.Close), r, d)
		bot := scale.PixelY(math.Min(cd.Open, cd.Close), r, d)
		h := math.Max(1, bot-top)

		c.FillRect(x-bodyW/2, top, bodyW, h, col)
		if p.hasBorder {
			c.StrokeRect(x-bodyW/2, top, bodyW, h, 1, p.border)
		}
	}
}

// drawLine renders a single polyline through closes using the point-to-point
// X convention.
func drawLine(c *Canvas, s market.Series, r scale.Range, d scale.Dimensions, p palette) {
	xs, ys := closeVertices(s, r, d)
	c.Polyline(xs, ys, 2, p.line, false)
}

// drawArea renders the close polyline plus a gradient fill from the line down
// to the chart's bottom edge, fading the bullish color out to transparent.
func drawArea(c *Canvas, s market.Series, r scale.Range, d scale.Dimensions, p palette) {
	xs, ys := closeVertices(s, r, d)
	if len(xs) == 0 {
		return
	}

	baseline := d.Margin.Top + d.ChartHeight()
	c.AreaFill(xs, ys, baseline, d.Margin.Top, withAlpha(p.bull, 0xa0), withAlpha(p.bull, 0))
	c.Polyline(xs, ys, 2, p.bull, false)
}

// drawBricks renders Renko / line-break bricks: solid fill for up bricks,
// fill plus a stroked outline for down bricks.
func drawBricks(c *Canvas, s market.Series, r scale.Range, d scale.Dimensions, p palette) {
	n := len(s)
	if n == 0 {
		return
	}

	slot := d.ChartWidth() / float64(n)
	brickW := math.Max(1, slot*0.8)

	for i, b := range s {
		x := scale.PixelXSlot(i, n, d)
		top := scale.PixelY(math.Max(b.Open, b.Close), r, d)
		bot := scale.PixelY(math.Min(b.Open, b.Close), r, d)
		h := math.Max(1, bot-top)

		if b.Bullish() {
			c.FillRect(x-brickW/2, top, brickW, h, p.bull)
		} else {
			c.FillRect(x-brickW/2, top, brickW, h, p.bear)
			c.StrokeRect(x-brickW/2, top, brickW, h, 1, p.border)
		}
	}
}

func closeVertices(s market.Series, r scale.Range, d scale.Dimensions) (xs, ys []float64) {
	n := len(s)
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i, cd := range s {
		xs[i] = scale.PixelXPoint(i, n, d)
		ys[i] = scale.PixelY(cd.Close, r, d)
	}
	return xs, ys
}
