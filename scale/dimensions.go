package scale

// Margin is the border reserved around the chart area for axes and labels.
type Margin struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Dimensions describes one chart's canvas and its margins. Each render call
// owns its own Dimensions; comparison layouts rebuild them per sub-chart.
type Dimensions struct {
	Width  int
	Height int
	Margin Margin
}

// DefaultMargin leaves room for the price axis on the left and the time axis
// along the bottom.
func DefaultMargin() Margin {
	return Margin{Top: 40, Bottom: 40, Left: 60, Right: 30}
}

// NewDimensions builds Dimensions with the default margins.
func NewDimensions(width, height int) Dimensions {
	return Dimensions{Width: width, Height: height, Margin: DefaultMargin()}
}

// ChartWidth is the drawable width inside the margins.
func (d Dimensions) ChartWidth() float64 {
	return float64(d.Width) - d.Margin.Left - d.Margin.Right
}

// ChartHeight is the drawable height inside the margins.
func (d Dimensions) ChartHeight() float64 {
	return float64(d.Height) - d.Margin.Top - d.Margin.Bottom
}
