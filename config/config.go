// Package config holds the fully-resolved chart options bag. The CLI (or any
// other caller) builds and validates one of these; the render pipeline
// consumes it without applying further defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"candlechart/market"
	"candlechart/scale"
	"candlechart/transform"
)

// Chart is the complete configuration for one chart render.
type Chart struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	Type      string `json:"type" yaml:"type"`
	Theme     string `json:"theme" yaml:"theme"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Watermark string `json:"watermark,omitempty" yaml:"watermark,omitempty"`

	// Per-element color overrides as #rrggbb / #rrggbbaa hex. Empty means
	// fall back to the chart-type default, then the theme default.
	BullColor   string `json:"bull_color,omitempty" yaml:"bull_color,omitempty"`
	BearColor   string `json:"bear_color,omitempty" yaml:"bear_color,omitempty"`
	LineColor   string `json:"line_color,omitempty" yaml:"line_color,omitempty"`
	BorderColor string `json:"border_color,omitempty" yaml:"border_color,omitempty"`

	Indicators Indicators `json:"indicators" yaml:"indicators"`
	Scale      Scale      `json:"scale" yaml:"scale"`

	// BrickPercent is the Renko brick size as a fraction of the reference
	// price; zero selects the 2% default.
	BrickPercent float64 `json:"brick_percent,omitempty" yaml:"brick_percent,omitempty"`

	HideGrid     bool `json:"hide_grid,omitempty" yaml:"hide_grid,omitempty"`
	HideAxes     bool `json:"hide_axes,omitempty" yaml:"hide_axes,omitempty"`
	HideTimeAxis bool `json:"hide_time_axis,omitempty" yaml:"hide_time_axis,omitempty"`
	HideTitle    bool `json:"hide_title,omitempty" yaml:"hide_title,omitempty"`

	Levels []Level `json:"levels,omitempty" yaml:"levels,omitempty"`
}

// Indicators toggles the overlay series.
type Indicators struct {
	EMAPeriod int  `json:"ema_period,omitempty" yaml:"ema_period,omitempty"`
	SMAPeriod int  `json:"sma_period,omitempty" yaml:"sma_period,omitempty"`
	VWAP      bool `json:"vwap,omitempty" yaml:"vwap,omitempty"`
}

// Scale selects the price-range policy.
type Scale struct {
	Auto  bool     `json:"auto,omitempty" yaml:"auto,omitempty"`
	XMult float64  `json:"x_mult,omitempty" yaml:"x_mult,omitempty"`
	YMult float64  `json:"y_mult,omitempty" yaml:"y_mult,omitempty"`
	Min   *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Level is a horizontal price line drawn over the chart.
type Level struct {
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Style string  `json:"style,omitempty" yaml:"style,omitempty"` // solid|dotted
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Default returns the baseline configuration: an 800x600 dark candlestick
// chart with no overlays and plain base-range scaling.
func Default() Chart {
	return Chart{
		Width:  800,
		Height: 600,
		Type:   "candlestick",
		Theme:  "dark",
	}
}

// LoadFromFile loads a chart configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
		if jerr := json.Unmarshal(data, &cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", yerr)
		}
	}

	return &cfg, nil
}

// ConfigurationError reports an invalid option before any rendering starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the bag. The render core assumes a validated config.
func (c *Chart) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigurationError{Field: "dimensions", Reason: fmt.Sprintf("%dx%d must be positive", c.Width, c.Height)}
	}
	if _, err := transform.ParseChartType(c.Type); err != nil {
		return &ConfigurationError{Field: "type", Reason: err.Error()}
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return &ConfigurationError{Field: "theme", Reason: fmt.Sprintf("unknown theme %q (want dark|light)", c.Theme)}
	}
	if c.Indicators.EMAPeriod < 0 {
		return &ConfigurationError{Field: "ema_period", Reason: "must not be negative"}
	}
	if c.Indicators.SMAPeriod < 0 {
		return &ConfigurationError{Field: "sma_period", Reason: "must not be negative"}
	}
	if c.BrickPercent < 0 || c.BrickPercent > 1 {
		return &ConfigurationError{Field: "brick_percent", Reason: "must be a fraction in [0,1], 0 selects the 2% default"}
	}
	for i, lv := range c.Levels {
		if lv.Style != "" && lv.Style != "solid" && lv.Style != "dotted" {
			return &ConfigurationError{Field: "levels", Reason: fmt.Sprintf("level %d: style %q (want solid|dotted)", i, lv.Style)}
		}
	}
	return nil
}

// ValidateTimeframe checks a timeframe token for the data provider.
func ValidateTimeframe(s string) error {
	if _, err := market.ParseTimeframe(s); err != nil {
		return &ConfigurationError{Field: "timeframe", Reason: err.Error()}
	}
	return nil
}

// ValidateOutputPath checks that the output file has a supported image
// extension. Encoding happens upstream of the core by extension.
func ValidateOutputPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return nil
	default:
		return &ConfigurationError{Field: "output", Reason: fmt.Sprintf("unsupported extension %q (want .png, .jpg or .jpeg)", filepath.Ext(path))}
	}
}

// ChartType parses the configured chart-type tag.
func (c *Chart) ChartType() (transform.ChartType, error) {
	return transform.ParseChartType(c.Type)
}

// ScaleConfig maps the bag onto the scaling engine's policy.
func (c *Chart) ScaleConfig() scale.Config {
	return scale.Config{
		AutoScale: c.Scale.Auto,
		XMult:     c.Scale.XMult,
		YMult:     c.Scale.YMult,
		ManualMin: c.Scale.Min,
		ManualMax: c.Scale.Max,
	}
}

// Dimensions builds the coordinate frame for a full-size render.
func (c *Chart) Dimensions() scale.Dimensions {
	return scale.NewDimensions(c.Width, c.Height)
}
