// Package compose lays out several independently rendered charts onto one
// raster, side by side or in a bounded grid.
package compose

import (
	"context"
	"fmt"

	"candlechart/config"
	"candlechart/market"
)

// Layout selects how comparison cells are arranged.
type Layout int

const (
	SideBySide Layout = iota
	Grid
)

// ParseLayout maps a layout token to its tag.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "side-by-side", "":
		return SideBySide, nil
	case "grid":
		return Grid, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (want side-by-side|grid)", s)
	}
}

// Grid comparisons are a deliberately bounded business rule: two charts,
// two columns, no more.
const (
	maxGridColumns = 2
	maxGridCharts  = 2
)

// referenceWidth/Height form the canonical frame that sub-chart margins are
// rescaled against.
const (
	referenceWidth  = 800.0
	referenceHeight = 600.0
)

// LayoutConstraintError rejects comparison requests that exceed the grid
// bounds. It is returned before any cell renders; the layout never silently
// truncates.
type LayoutConstraintError struct {
	Reason string
}

func (e *LayoutConstraintError) Error() string {
	return fmt.Sprintf("layout constraint: %s", e.Reason)
}

// FetchFunc supplies the candle series for one cell. Implementations are the
// data-provider collaborators (HTTP client, sqlite cache, test stubs).
type FetchFunc func(ctx context.Context, symbol string, timeframe market.Timeframe, limit int) (market.Series, error)

// Spec describes one comparison render.
type Spec struct {
	Symbols    []string
	Timeframe  string   // shared timeframe for symbol comparison
	Timeframes []string // non-empty switches to timeframe-comparison mode
	Limit      int

	Layout  Layout
	Columns int // grid only; 0 defaults to 2
	Gap     int // pixels between cells

	Width  int
	Height int

	Chart config.Chart // per-cell options; dimensions come from the layout
}

// Cell identifies what one comparison slot shows.
type Cell struct {
	Symbol    string
	Timeframe market.Timeframe
}

// Result reports one cell's outcome. A failed cell does not abort its
// siblings; callers inspect Err per cell.
type Result struct {
	ID   string
	Cell Cell
	Err  error
}

// cells resolves the comparison mode and validates layout constraints.
// Mode selection is by presence: a non-empty timeframe list means timeframe
// comparison over the first symbol, otherwise symbol comparison over one
// shared timeframe.
func cells(spec Spec) ([]Cell, error) {
	if len(spec.Symbols) == 0 {
		return nil, fmt.Errorf("comparison needs at least one symbol")
	}

	var out []Cell
	if len(spec.Timeframes) > 0 {
		n := len(spec.Timeframes)
		if len(spec.Symbols) < n {
			n = len(spec.Symbols)
		}
		for _, tfs := range spec.Timeframes[:n] {
			tf, err := market.ParseTimeframe(tfs)
			if err != nil {
				return nil, err
			}
			out = append(out, Cell{Symbol: spec.Symbols[0], Timeframe: tf})
		}
	} else {
		tfs := spec.Timeframe
		if tfs == "" {
			tfs = string(market.H1)
		}
		tf, err := market.ParseTimeframe(tfs)
		if err != nil {
			return nil, err
		}
		for _, sym := range spec.Symbols {
			out = append(out, Cell{Symbol: sym, Timeframe: tf})
		}
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("comparison needs at least 2 cells, got %d", len(out))
	}

	if spec.Layout == Grid {
		if spec.Columns > maxGridColumns {
			return nil, &LayoutConstraintError{Reason: fmt.Sprintf("maximum %d columns in grid layout, got %d", maxGridColumns, spec.Columns)}
		}
		if len(out) > maxGridCharts {
			return nil, &LayoutConstraintError{Reason: fmt.Sprintf("maximum %d charts in grid layout, got %d", maxGridCharts, len(out))}
		}
	}

	return out, nil
}
