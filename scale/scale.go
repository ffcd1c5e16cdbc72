// Package scale maps prices and candle indexes onto pixel coordinates.
// It owns the visible price range and the chart coordinate frame.
package scale

import (
	"math"

	"candlechart/market"
)

// autoScalePadding expands the base range by 5% on each side when
// auto-scaling is enabled.
const autoScalePadding = 0.05

// Range is the visible price window mapped onto the chart's vertical extent.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Config selects the scaling policy for one render.
//
// XMult and YMult both rescale the PRICE axis around its midpoint, applied in
// that order. This mirrors upstream behavior where both knobs act on the
// price range sequentially; do not reinterpret XMult as a time-axis scale.
type Config struct {
	AutoScale bool
	XMult     float64 // 0 means unset
	YMult     float64 // 0 means unset
	ManualMin *float64
	ManualMax *float64
}

// ComputeRange derives the visible price range for the series actually being
// drawn. Order of operations: base extremes, auto-scale padding, X multiplier,
// Y multiplier, manual clamps (clamps only ever shrink the range).
func ComputeRange(s market.Series, cfg Config) Range {
	if len(s) == 0 {
		return Range{Min: 0, Max: 1}
	}

	r := Range{Min: s.MinLow(), Max: s.MaxHigh()}

	if cfg.AutoScale {
		pad := r.Span() * autoScalePadding
		r.Min -= pad
		r.Max += pad
	}

	r = rescaleCentered(r, cfg.XMult)
	r = rescaleCentered(r, cfg.YMult)

	if cfg.ManualMin != nil {
		r.Min = math.Max(r.Min, *cfg.ManualMin)
	}
	if cfg.ManualMax != nil {
		r.Max = math.Min(r.Max, *cfg.ManualMax)
	}

	return padDegenerate(r)
}

// rescaleCentered scales the range symmetrically around its midpoint.
// A factor of 0 means unset and leaves the range untouched.
func rescaleCentered(r Range, factor float64) Range {
	if factor <= 0 {
		return r
	}
	mid := (r.Min + r.Max) / 2
	half := r.Span() / 2 * factor
	return Range{Min: mid - half, Max: mid + half}
}

// padDegenerate substitutes a small epsilon span for flat or inverted ranges
// so pixel math never divides by zero. The pad is half a percent of the price
// level, with an absolute floor for prices near zero.
func padDegenerate(r Range) Range {
	if r.Span() > 0 {
		return r
	}
	mid := (r.Min + r.Max) / 2
	pad := math.Max(math.Abs(mid)*0.005, 1e-9)
	return Range{Min: mid - pad, Max: mid + pad}
}

// PixelY converts a price to a canvas Y coordinate. Price increases upward,
// pixel Y increases downward.
func PixelY(price float64, r Range, d Dimensions) float64 {
	return d.Margin.Top + (r.Max-price)/r.Span()*d.ChartHeight()
}

// PixelXSlot returns the X center of slot i when the chart area is divided
// into n equal-width slots. Bar-style charts (candles, bricks) use this
// convention: each element owns a slot and is drawn at its center.
func PixelXSlot(i, n int, d Dimensions) float64 {
	if n <= 0 {
		return d.Margin.Left
	}
	slot := d.ChartWidth() / float64(n)
	return d.Margin.Left + float64(i)*slot + slot/2
}

// PixelXPoint returns the X of vertex i when n points divide the chart area
// into n-1 segments. Line and area charts use this convention: the first
// vertex sits on the left edge, the last on the right, no half-slot offset.
func PixelXPoint(i, n int, d Dimensions) float64 {
	if n <= 1 {
		return d.Margin.Left + d.ChartWidth()/2
	}
	return d.Margin.Left + float64(i)*(d.ChartWidth()/float64(n-1))
}
