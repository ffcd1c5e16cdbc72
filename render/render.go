package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"candlechart/config"
	"candlechart/indicators"
	"candlechart/market"
	"candlechart/scale"
	"candlechart/transform"
)

// Failure wraps an unexpected drawing error so batch and comparison callers
// can report it per chart and continue with the remaining items.
type Failure struct {
	Err error
}

func (f *Failure) Error() string { return fmt.Sprintf("render failed: %v", f.Err) }
func (f *Failure) Unwrap() error { return f.Err }

// overlay is an indicator series resolved for drawing.
type overlay struct {
	label      string
	col        color.RGBA
	dashed     bool
	labelRight bool
	labelRow   int
	points     indicators.Series
}

// Render runs the full single-chart pipeline: transform, indicators, range,
// layers. It assumes a validated config and returns the finished raster.
func Render(series market.Series, cfg config.Chart) (image.Image, error) {
	return RenderWithDims(series, cfg, cfg.Dimensions())
}

// RenderWithDims renders into an explicit coordinate frame. Comparison
// layouts use this to place sub-charts with rescaled margins.
func RenderWithDims(series market.Series, cfg config.Chart, dims scale.Dimensions) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Failure{Err: fmt.Errorf("drawing surface panic: %v", r)}
		}
	}()

	chartType, err := cfg.ChartType()
	if err != nil {
		return nil, err
	}
	theme := ThemeByName(cfg.Theme)

	// The transform feeds both the primary shape and the scaling engine;
	// indicators always run over the original series.
	drawn := transform.ForType(chartType, transform.Options{BrickPercent: cfg.BrickPercent}).Apply(series)
	rng := scale.ComputeRange(drawn, cfg.ScaleConfig())

	overlays, err := buildOverlays(series, cfg, theme)
	if err != nil {
		return nil, err
	}

	c := NewCanvas(dims.Width, dims.Height)

	// Layer order is fixed; later layers paint over earlier ones.
	c.FillRect(0, 0, float64(dims.Width), float64(dims.Height), theme.Background)
	drawPrimary(c, chartType, drawn, rng, dims, cfg, theme)
	for _, ov := range overlays {
		drawOverlay(c, ov, len(series), chartType.BarStyle(), rng, dims)
	}
	drawLevels(c, cfg.Levels, rng, dims, theme)
	if !cfg.HideGrid {
		drawGrid(c, drawn, chartType, rng, dims, theme)
	}
	if !cfg.HideAxes {
		drawPriceAxis(c, rng, dims, theme)
	}
	if !cfg.HideTimeAxis {
		drawTimeLabels(c, drawn, chartType, dims, theme)
	}
	if !cfg.HideTitle && cfg.Title != "" {
		c.Text(cfg.Title, float64(dims.Width)/2, dims.Margin.Top/2, 0.5, 0.5, theme.Text)
	}
	if cfg.Watermark != "" {
		cx := dims.Margin.Left + dims.ChartWidth()/2
		cy := dims.Margin.Top + dims.ChartHeight()/2
		c.Text(cfg.Watermark, cx, cy, 0.5, 0.5, theme.Watermark)
	}

	return c.Image(), nil
}

// drawPrimary dispatches the chart-type tag to its shape routine. Empty
// series skip the shape entirely.
func drawPrimary(c *Canvas, t transform.ChartType, drawn market.Series, rng scale.Range, dims scale.Dimensions, cfg config.Chart, theme Theme) {
	if len(drawn) == 0 {
		return
	}

	p := palette{
		bull:      resolve(cfg.BullColor, theme.Bull),
		bear:      resolve(cfg.BearColor, theme.Bear),
		line:      resolve(cfg.LineColor, theme.Line),
		border:    resolve(cfg.BorderColor, theme.Axis),
		hasBorder: cfg.BorderColor != "",
	}

	switch t {
	case transform.Line:
		drawLine(c, drawn, rng, dims, p)
	case transform.Area:
		drawArea(c, drawn, rng, dims, p)
	case transform.Renko, transform.LineBreak:
		// Down-brick outlines always stroke, custom border or not.
		p.hasBorder = true
		drawBricks(c, drawn, rng, dims, p)
	default:
		drawCandles(c, drawn, rng, dims, p)
	}
}

// buildOverlays computes the enabled indicator series from the original
// candles. VWAP is gated on meaningful volume by the caller contract and
// again here.
func buildOverlays(series market.Series, cfg config.Chart, theme Theme) ([]overlay, error) {
	var out []overlay

	if cfg.Indicators.VWAP && series.HasMeaningfulVolume() {
		out = append(out, overlay{
			label:      "VWAP",
			col:        resolve("", theme.Line),
			dashed:     true,
			labelRight: true,
			points:     indicators.VWAPSeries(series),
		})
	}
	if p := cfg.Indicators.EMAPeriod; p > 0 {
		pts, err := indicators.EMASeries(series, p)
		if err != nil {
			return nil, fmt.Errorf("ema overlay: %w", err)
		}
		out = append(out, overlay{
			label:  fmt.Sprintf("EMA(%d)", p),
			col:    color.RGBA{0xff, 0xa7, 0x26, 0xff},
			points: pts,
		})
	}
	if p := cfg.Indicators.SMAPeriod; p > 0 {
		pts, err := indicators.SMASeries(series, p)
		if err != nil {
			return nil, fmt.Errorf("sma overlay: %w", err)
		}
		out = append(out, overlay{
			label:    fmt.Sprintf("SMA(%d)", p),
			col:      color.RGBA{0xab, 0x47, 0xbc, 0xff},
			labelRow: 1, // offset below the EMA label
			points:   pts,
		})
	}

	return out, nil
}

// drawOverlay projects an indicator series through the primary shape's range.
// X positions follow the original candle indexes; a shorter series (SMA) is
// right-aligned to its source window. Values outside the range are left to
// the surface to clip.
func drawOverlay(c *Canvas, ov overlay, originalLen int, barStyle bool, rng scale.Range, dims scale.Dimensions) {
	if len(ov.points) == 0 {
		return
	}

	offset := originalLen - len(ov.points)
	xs := make([]float64, len(ov.points))
	ys := make([]float64, len(ov.points))
	for i, pt := range ov.points {
		if barStyle {
			xs[i] = scale.PixelXSlot(i+offset, originalLen, dims)
		} else {
			xs[i] = scale.PixelXPoint(i+offset, originalLen, dims)
		}
		ys[i] = scale.PixelY(pt.Value, rng, dims)
	}
	c.Polyline(xs, ys, 1.5, ov.col, ov.dashed)

	y := dims.Margin.Top + 14 + float64(ov.labelRow)*14
	if ov.labelRight {
		c.Text(ov.label, dims.Margin.Left+dims.ChartWidth()-6, y, 1, 0.5, ov.col)
	} else {
		c.Text(ov.label, dims.Margin.Left+6, y, 0, 0.5, ov.col)
	}
}

// drawLevels draws horizontal price lines with optional labels. A level's Y
// projection may land outside the chart area; the surface clips it.
func drawLevels(c *Canvas, levels []config.Level, rng scale.Range, dims scale.Dimensions, theme Theme) {
	x1 := dims.Margin.Left
	x2 := dims.Margin.Left + dims.ChartWidth()

	for _, lv := range levels {
		col := resolve(lv.Color, theme.Text)
		y := scale.PixelY(lv.Value, rng, dims)

		if lv.Style == "dotted" {
			c.DashedLine(x1, y, x2, y, 1, col, 2, 4)
		} else {
			c.Line(x1, y, x2, y, 1, col)
		}
		if lv.Label != "" {
			c.Text(lv.Label, x2-4, y-8, 1, 0.5, col)
		}
	}
}

const priceTicks = 5

// drawGrid paints horizontal lines at the price ticks and vertical lines at
// the time ticks.
func drawGrid(c *Canvas, drawn market.Series, t transform.ChartType, rng scale.Range, dims scale.Dimensions, theme Theme) {
	x1 := dims.Margin.Left
	x2 := dims.Margin.Left + dims.ChartWidth()
	y1 := dims.Margin.Top
	y2 := dims.Margin.Top + dims.ChartHeight()

	for k := 0; k < priceTicks; k++ {
		price := rng.Max - rng.Span()*float64(k)/float64(priceTicks-1)
		y := scale.PixelY(price, rng, dims)
		c.Line(x1, y, x2, y, 1, theme.GridLine)
	}

	for _, i := range timeTickIndexes(len(drawn)) {
		x := tickX(i, len(drawn), t, dims)
		c.Line(x, y1, x, y2, 1, theme.GridLine)
	}
}

// drawPriceAxis draws the axis frame and right-anchored price labels.
func drawPriceAxis(c *Canvas, rng scale.Range, dims scale.Dimensions, theme Theme) {
	x1 := dims.Margin.Left
	x2 := dims.Margin.Left + dims.ChartWidth()
	y2 := dims.Margin.Top + dims.ChartHeight()

	c.Line(x1, dims.Margin.Top, x1, y2, 1, theme.Axis)
	c.Line(x1, y2, x2, y2, 1, theme.Axis)

	for k := 0; k < priceTicks; k++ {
		price := rng.Max - rng.Span()*float64(k)/float64(priceTicks-1)
		y := scale.PixelY(price, rng, dims)
		c.Text(formatPrice(price, rng.Span()), x1-6, y, 1, 0.5, theme.Text)
	}
}

// drawTimeLabels writes timestamps under the bottom edge at the time ticks.
// It honors its own hide flag independently of the price axis.
func drawTimeLabels(c *Canvas, drawn market.Series, t transform.ChartType, dims scale.Dimensions, theme Theme) {
	if len(drawn) == 0 {
		return
	}

	layout := "01-02 15:04"
	if drawn[len(drawn)-1].Time-drawn[0].Time >= 5*24*3600 {
		layout = "2006-01-02"
	}
	y := dims.Margin.Top + dims.ChartHeight() + 16

	for _, i := range timeTickIndexes(len(drawn)) {
		x := tickX(i, len(drawn), t, dims)
		label := time.Unix(drawn[i].Time, 0).UTC().Format(layout)
		c.Text(label, x, y, 0.5, 0.5, theme.Text)
	}
}

// timeTickIndexes picks up to six evenly spaced element indexes.
func timeTickIndexes(n int) []int {
	if n == 0 {
		return nil
	}
	step := (n + 5) / 6
	var out []int
	for i := 0; i < n; i += step {
		out = append(out, i)
	}
	return out
}

// tickX maps an element index to X using the chart type's convention.
func tickX(i, n int, t transform.ChartType, dims scale.Dimensions) float64 {
	if t.BarStyle() {
		return scale.PixelXSlot(i, n, dims)
	}
	return scale.PixelXPoint(i, n, dims)
}

// formatPrice picks label precision from the visible span.
func formatPrice(v, span float64) string {
	switch {
	case span < 0.1:
		return fmt.Sprintf("%.5f", v)
	case span < 10:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
