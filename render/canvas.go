package render

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Canvas is the raster drawing surface. It wraps a gg context with the
// primitives the pipeline needs: rect fills, solid and dashed strokes,
// anchored text, and a vertical-gradient area fill.
type Canvas struct {
	dc     *gg.Context
	width  int
	height int
}

// NewCanvas allocates a raster surface of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	return &Canvas{dc: dc, width: width, height: height}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// StrokeRect outlines an axis-aligned rectangle.
func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
}

// Line strokes a straight segment.
func (c *Canvas) Line(x1, y1, x2, y2, lineWidth float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

// DashedLine strokes a straight segment with the given dash pattern.
func (c *Canvas) DashedLine(x1, y1, x2, y2, lineWidth float64, col color.Color, dashes ...float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.SetDash(dashes...)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
	c.dc.SetDash()
}

// Polyline strokes connected segments through the given vertices. Dashed
// selects a dash pattern (used by the VWAP overlay).
func (c *Canvas) Polyline(xs, ys []float64, lineWidth float64, col color.Color, dashed bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	if dashed {
		c.dc.SetDash(6, 4)
	}
	c.dc.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		c.dc.LineTo(xs[i], ys[i])
	}
	c.dc.Stroke()
	if dashed {
		c.dc.SetDash()
	}
}

// AreaFill closes the polyline down to the baseline and fills it with a
// vertical gradient running from `from` at gradientTop to `to` at baseline.
func (c *Canvas) AreaFill(xs, ys []float64, baseline, gradientTop float64, from, to color.Color) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return
	}
	grad := gg.NewLinearGradient(0, gradientTop, 0, baseline)
	grad.AddColorStop(0, from)
	grad.AddColorStop(1, to)
	c.dc.SetFillStyle(grad)

	c.dc.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		c.dc.LineTo(xs[i], ys[i])
	}
	c.dc.LineTo(xs[len(xs)-1], baseline)
	c.dc.LineTo(xs[0], baseline)
	c.dc.ClosePath()
	c.dc.Fill()
}

// Text draws an anchored string; ax/ay select the anchor point within the
// text box (0,0 = top-left of baseline semantics per gg).
func (c *Canvas) Text(s string, x, y, ax, ay float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, ax, ay)
}

// TextWidth measures the rendered width of s.
func (c *Canvas) TextWidth(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

// DrawImage blits a rendered sub-chart into this canvas at (x, y). Callers
// compositing multiple charts must serialize calls: the destination raster
// is single-writer.
func (c *Canvas) DrawImage(im image.Image, x, y int) {
	c.dc.DrawImage(im, x, y)
}

// Image exports the pixel buffer.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes an image as PNG.
func EncodePNG(w io.Writer, im image.Image) error {
	return png.Encode(w, im)
}

// EncodeJPEG writes an image as JPEG at the given quality (1-100).
func EncodeJPEG(w io.Writer, im image.Image, quality int) error {
	if quality <= 0 {
		quality = 90
	}
	return jpeg.Encode(w, im, &jpeg.Options{Quality: quality})
}
