package cli

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"candlechart/config"
	"candlechart/provider"
	"candlechart/render"
	"candlechart/store"
)

// chartFlags mirrors the config.Chart options bag onto CLI flags. Flags the
// user actually set override values loaded from --config.
type chartFlags struct {
	width  int
	height int

	chartType string
	theme     string
	title     string
	watermark string

	bullColor   string
	bearColor   string
	lineColor   string
	borderColor string

	emaPeriod int
	smaPeriod int
	vwap      bool

	autoScale bool
	scaleX    float64
	scaleY    float64
	scaleMin  float64
	scaleMax  float64

	brickPercent float64

	hideGrid     bool
	hideAxes     bool
	hideTimeAxis bool
	hideTitle    bool

	levels []string
}

// registerSize adds the canvas size flags. The compare command skips these:
// there --width/--height describe the whole comparison canvas and cells get
// their size from the layout.
func (cf *chartFlags) registerSize(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cf.width, "width", 800, "Canvas width in pixels")
	cmd.Flags().IntVar(&cf.height, "height", 600, "Canvas height in pixels")
}

func (cf *chartFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVar(&cf.chartType, "type", "candlestick", "Chart type: candlestick|line|area|heikin-ashi|renko|line-break")
	f.StringVar(&cf.theme, "theme", "dark", "Color theme: dark|light")
	f.StringVar(&cf.title, "title", "", "Chart title (defaults to symbol and timeframe)")
	f.StringVar(&cf.watermark, "watermark", "", "Watermark text drawn over the chart area")

	f.StringVar(&cf.bullColor, "bull-color", "", "Bullish candle color (#rrggbb)")
	f.StringVar(&cf.bearColor, "bear-color", "", "Bearish candle color (#rrggbb)")
	f.StringVar(&cf.lineColor, "line-color", "", "Line chart color (#rrggbb)")
	f.StringVar(&cf.borderColor, "border-color", "", "Candle body border color (#rrggbb)")

	f.IntVar(&cf.emaPeriod, "ema", 0, "EMA overlay period (0 disables)")
	f.IntVar(&cf.smaPeriod, "sma", 0, "SMA overlay period (0 disables)")
	f.BoolVar(&cf.vwap, "vwap", false, "Draw the VWAP overlay (needs volume data)")

	f.BoolVar(&cf.autoScale, "auto-scale", false, "Pad the price range by 5% on both sides")
	f.Float64Var(&cf.scaleX, "scale-x", 0, "Price-range multiplier, applied first")
	f.Float64Var(&cf.scaleY, "scale-y", 0, "Price-range multiplier, applied second")
	f.Float64Var(&cf.scaleMin, "min", math.NaN(), "Manual lower price clamp")
	f.Float64Var(&cf.scaleMax, "max", math.NaN(), "Manual upper price clamp")

	f.Float64Var(&cf.brickPercent, "brick", 0, "Renko brick size as a fraction of price (default 0.02)")

	f.BoolVar(&cf.hideGrid, "hide-grid", false, "Skip the grid layer")
	f.BoolVar(&cf.hideAxes, "hide-axes", false, "Skip the axis frame and price labels")
	f.BoolVar(&cf.hideTimeAxis, "hide-time-axis", false, "Skip the time labels")
	f.BoolVar(&cf.hideTitle, "hide-title", false, "Skip the title layer")

	f.StringArrayVar(&cf.levels, "level", nil, "Horizontal level as price[:color[:style[:label]]] (repeatable)")
}

// resolve builds the final options bag: file config (if any), overridden by
// every flag the user set explicitly.
func (cf *chartFlags) resolve(cmd *cobra.Command, rc *RootConfig) (config.Chart, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	set := cmd.Flags().Changed
	if set("width") {
		cfg.Width = cf.width
	}
	if set("height") {
		cfg.Height = cf.height
	}
	if set("type") {
		cfg.Type = cf.chartType
	}
	if set("theme") {
		cfg.Theme = cf.theme
	}
	if set("title") {
		cfg.Title = cf.title
	}
	if set("watermark") {
		cfg.Watermark = cf.watermark
	}
	if set("bull-color") {
		cfg.BullColor = cf.bullColor
	}
	if set("bear-color") {
		cfg.BearColor = cf.bearColor
	}
	if set("line-color") {
		cfg.LineColor = cf.lineColor
	}
	if set("border-color") {
		cfg.BorderColor = cf.borderColor
	}
	if set("ema") {
		cfg.Indicators.EMAPeriod = cf.emaPeriod
	}
	if set("sma") {
		cfg.Indicators.SMAPeriod = cf.smaPeriod
	}
	if set("vwap") {
		cfg.Indicators.VWAP = cf.vwap
	}
	if set("auto-scale") {
		cfg.Scale.Auto = cf.autoScale
	}
	if set("scale-x") {
		cfg.Scale.XMult = cf.scaleX
	}
	if set("scale-y") {
		cfg.Scale.YMult = cf.scaleY
	}
	if set("min") && !math.IsNaN(cf.scaleMin) {
		v := cf.scaleMin
		cfg.Scale.Min = &v
	}
	if set("max") && !math.IsNaN(cf.scaleMax) {
		v := cf.scaleMax
		cfg.Scale.Max = &v
	}
	if set("brick") {
		cfg.BrickPercent = cf.brickPercent
	}
	if set("hide-grid") {
		cfg.HideGrid = cf.hideGrid
	}
	if set("hide-axes") {
		cfg.HideAxes = cf.hideAxes
	}
	if set("hide-time-axis") {
		cfg.HideTimeAxis = cf.hideTimeAxis
	}
	if set("hide-title") {
		cfg.HideTitle = cf.hideTitle
	}
	if set("level") {
		levels, err := parseLevels(cf.levels)
		if err != nil {
			return cfg, err
		}
		cfg.Levels = levels
	}

	return cfg, cfg.Validate()
}

// parseLevels decodes repeated --level flags: price[:color[:style[:label]]].
func parseLevels(raw []string) ([]config.Level, error) {
	out := make([]config.Level, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 4)

		var lv config.Level
		if _, err := fmt.Sscanf(parts[0], "%f", &lv.Value); err != nil {
			return nil, fmt.Errorf("bad --level %q: price %q: %w", r, parts[0], err)
		}
		if len(parts) > 1 {
			lv.Color = parts[1]
		}
		if len(parts) > 2 {
			lv.Style = parts[2]
		}
		if len(parts) > 3 {
			lv.Label = parts[3]
		}
		out = append(out, lv)
	}
	return out, nil
}

// newProvider builds the data source: the venue client, wrapped in the
// sqlite cache when --cache is set.
func newProvider(rc *RootConfig) (provider.Provider, func() error, error) {
	var src provider.Provider = provider.NewBinance(os.Getenv("CANDLECHART_BASE_URL"))

	if rc.CachePath == "" {
		return src, func() error { return nil }, nil
	}

	cache, err := store.NewCache(rc.CachePath, src)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache.Close, nil
}

// saveImage encodes the raster to path, selecting PNG or JPEG by extension.
// The extension was validated before any rendering started.
func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = render.EncodeJPEG(f, img, 90)
	default:
		err = render.EncodePNG(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
