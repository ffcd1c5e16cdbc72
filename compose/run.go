package compose

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"candlechart/pkg/id"
	"candlechart/render"
)

// Compose renders every comparison cell as an independent single-chart
// pipeline run and assembles the rasters onto one destination canvas.
//
// Cell renders carry no data dependency on each other, so they run
// concurrently; writing into the shared destination raster happens afterwards
// on one goroutine (single-writer). A failed cell leaves its region as
// background and is reported in its Result; the composite still completes.
func Compose(ctx context.Context, fetch FetchFunc, spec Spec) (image.Image, []Result, error) {
	cs, err := cells(spec)
	if err != nil {
		return nil, nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, nil, fmt.Errorf("comparison canvas %dx%d must be positive", spec.Width, spec.Height)
	}

	rects := layoutCells(spec, len(cs))
	images := make([]image.Image, len(cs))
	results := make([]Result, len(cs))

	g, gctx := errgroup.WithContext(ctx)
	for i := range cs {
		i := i
		g.Go(func() error {
			results[i] = Result{ID: id.NewRenderID(), Cell: cs[i]}
			img, err := renderCell(gctx, fetch, spec, cs[i], rects[i])
			if err != nil {
				results[i].Err = err
				return nil // per-cell failures don't cancel siblings
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, results, err
	}

	theme := render.ThemeByName(spec.Chart.Theme)
	dst := render.NewCanvas(spec.Width, spec.Height)
	dst.FillRect(0, 0, float64(spec.Width), float64(spec.Height), theme.Background)
	for i, img := range images {
		if img == nil {
			continue
		}
		dst.DrawImage(img, rects[i].X, rects[i].Y)
	}

	return dst.Image(), results, nil
}

// renderCell fetches one cell's series and runs the full single-chart
// pipeline in the cell's own coordinate frame.
func renderCell(ctx context.Context, fetch FetchFunc, spec Spec, cell Cell, rect cellRect) (image.Image, error) {
	limit := spec.Limit
	if limit <= 0 {
		limit = 100
	}

	series, err := fetch(ctx, cell.Symbol, cell.Timeframe, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", cell.Symbol, cell.Timeframe, err)
	}

	cfg := spec.Chart
	cfg.Width = rect.W
	cfg.Height = rect.H
	cfg.Title = fmt.Sprintf("%s %s", cell.Symbol, cell.Timeframe)

	return render.RenderWithDims(series, cfg, cellDimensions(rect.W, rect.H))
}
