package compose

import (
	"math"

	"candlechart/scale"
)

// cellRect is one sub-chart's region inside the destination raster.
type cellRect struct {
	X, Y, W, H int
}

// layoutCells computes each cell's pixel region.
func layoutCells(spec Spec, count int) []cellRect {
	gap := spec.Gap
	if gap < 0 {
		gap = 0
	}

	if spec.Layout == SideBySide {
		w := (spec.Width - (count-1)*gap) / count
		out := make([]cellRect, count)
		for i := range out {
			out[i] = cellRect{X: i * (w + gap), Y: 0, W: w, H: spec.Height}
		}
		return out
	}

	cols := spec.Columns
	if cols <= 0 || cols > maxGridColumns {
		cols = maxGridColumns
	}
	if cols > count {
		cols = count
	}
	rows := int(math.Ceil(float64(count) / float64(cols)))

	w := (spec.Width - (cols-1)*gap) / cols
	h := (spec.Height - (rows-1)*gap) / rows

	out := make([]cellRect, count)
	for i := range out {
		col := i % cols
		row := i / cols
		out[i] = cellRect{X: col * (w + gap), Y: row * (h + gap), W: w, H: h}
	}
	return out
}

// cellDimensions rescales the default margins by the cell's size relative to
// the 800x600 reference frame, with floors so axis labels stay legible in
// small cells.
func cellDimensions(w, h int) scale.Dimensions {
	fx := float64(w) / referenceWidth
	fy := float64(h) / referenceHeight
	base := scale.DefaultMargin()

	return scale.Dimensions{
		Width:  w,
		Height: h,
		Margin: scale.Margin{
			Top:    math.Max(20, base.Top*fy),
			Bottom: math.Max(15, base.Bottom*fy),
			Left:   math.Max(20, base.Left*fx),
			Right:  math.Max(15, base.Right*fx),
		},
	}
}
