package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"candlechart/config"
	"candlechart/market"
	"candlechart/pkg/id"
	"candlechart/render"
)

func newRenderCmd(rc *RootConfig) *cobra.Command {
	var (
		symbol    string
		timeframe string
		limit     int
		outPath   string
	)
	cf := &chartFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one symbol's chart to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := rc.Logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			if symbol == "" {
				return fmt.Errorf("missing --symbol (e.g. BTCUSDT)")
			}
			if outPath == "" {
				return fmt.Errorf("missing --out")
			}
			if err := config.ValidateOutputPath(outPath); err != nil {
				return err
			}
			if err := config.ValidateTimeframe(timeframe); err != nil {
				return err
			}

			cfg, err := cf.resolve(cmd, rc)
			if err != nil {
				return err
			}
			if cfg.Title == "" {
				cfg.Title = fmt.Sprintf("%s %s", symbol, timeframe)
			}

			src, closeSrc, err := newProvider(rc)
			if err != nil {
				return err
			}
			defer closeSrc()

			renderID := id.NewRenderID()
			log.Infow("rendering chart",
				"id", renderID, "symbol", symbol, "timeframe", timeframe,
				"type", cfg.Type, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

			ctx := context.Background()
			tf, _ := market.ParseTimeframe(timeframe)
			series, err := src.Fetch(ctx, symbol, tf, limit)
			if err != nil {
				return err
			}
			log.Debugw("fetched candles", "id", renderID, "count", len(series))

			img, err := render.Render(series, cfg)
			if err != nil {
				return err
			}

			if err := saveImage(outPath, img); err != nil {
				return err
			}
			log.Infow("chart written", "id", renderID, "out", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Trading symbol (e.g. BTCUSDT)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "1h", "Candle timeframe: 1m 5m 15m 30m 1h 4h 1d 1w")
	cmd.Flags().IntVar(&limit, "limit", 100, "Number of candles to fetch")
	cmd.Flags().StringVar(&outPath, "out", "", "Output image path (.png, .jpg)")
	cf.registerSize(cmd)
	cf.register(cmd)

	return cmd
}
