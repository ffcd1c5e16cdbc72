// Package transform converts a raw candle series into the series a chart
// actually draws: identity for candlestick/line/area, Heikin-Ashi smoothing,
// or brick aggregation (Renko, line-break).
package transform

import "fmt"

// ChartType tags the primary chart shape and its transform.
type ChartType int

const (
	Candlestick ChartType = iota
	Line
	Area
	HeikinAshi
	Renko
	LineBreak
)

var chartTypeNames = map[ChartType]string{
	Candlestick: "candlestick",
	Line:        "line",
	Area:        "area",
	HeikinAshi:  "heikin-ashi",
	Renko:       "renko",
	LineBreak:   "line-break",
}

// ParseChartType maps a chart-type token to its tag.
func ParseChartType(s string) (ChartType, error) {
	for t, name := range chartTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown chart type %q (want candlestick|line|area|heikin-ashi|renko|line-break)", s)
}

func (t ChartType) String() string {
	if name, ok := chartTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ChartType(%d)", int(t))
}

// BarStyle reports whether the type draws one element per slot (candles and
// bricks) rather than point-to-point vertices. Slot-style charts use the
// half-slot X convention; line and area use the N-1 division convention.
func (t ChartType) BarStyle() bool {
	switch t {
	case Line, Area:
		return false
	default:
		return true
	}
}

// Options tunes the transforms that have knobs.
type Options struct {
	// BrickPercent is the Renko brick size as a fraction of the running
	// reference price. Zero selects DefaultBrickPercent.
	BrickPercent float64
}

// DefaultBrickPercent is 2% of the running reference price per brick.
const DefaultBrickPercent = 0.02
