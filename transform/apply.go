package transform

import "candlechart/market"

// Transform produces the series the primary shape draws from the original
// candles. Implementations are pure: the input is never mutated and the
// output is a fresh slice. Empty input yields empty output for every variant.
//
// Brick transforms (Renko, line-break) return synthetic candles where
// open/close span exactly one brick; direction is the sign of close-open.
type Transform interface {
	Apply(s market.Series) market.Series
}

// ForType returns the transform for a chart type tag.
func ForType(t ChartType, opts Options) Transform {
	switch t {
	case HeikinAshi:
		return heikinAshi{}
	case Renko:
		pct := opts.BrickPercent
		if pct <= 0 {
			pct = DefaultBrickPercent
		}
		return renko{brickPercent: pct}
	case LineBreak:
		return lineBreak{}
	default:
		return identity{}
	}
}

// identity feeds the input through unchanged; candlestick, line, and area
// charts differ only in how the drawing pipeline renders them.
type identity struct{}

func (identity) Apply(s market.Series) market.Series {
	return s
}
