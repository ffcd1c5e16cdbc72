package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"candlechart/compose"
	"candlechart/config"
)

func newCompareCmd(rc *RootConfig) *cobra.Command {
	var (
		symbols    string
		timeframe  string
		timeframes string
		limit      int
		layoutStr  string
		columns    int
		gap        int
		totalW     int
		totalH     int
		outPath    string
	)
	cf := &chartFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Render several charts onto one comparison image",
		Long: `Render several charts onto one comparison image.

With --timeframes the first symbol is compared across timeframes; otherwise
every symbol is compared at the shared --timeframe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := rc.Logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			if symbols == "" {
				return fmt.Errorf("missing --symbols (e.g. BTCUSDT,ETHUSDT)")
			}
			if outPath == "" {
				return fmt.Errorf("missing --out")
			}
			if err := config.ValidateOutputPath(outPath); err != nil {
				return err
			}

			layout, err := compose.ParseLayout(layoutStr)
			if err != nil {
				return err
			}

			cfg, err := cf.resolve(cmd, rc)
			if err != nil {
				return err
			}

			src, closeSrc, err := newProvider(rc)
			if err != nil {
				return err
			}
			defer closeSrc()

			spec := compose.Spec{
				Symbols:    splitCSV(symbols),
				Timeframe:  timeframe,
				Timeframes: splitCSV(timeframes),
				Limit:      limit,
				Layout:     layout,
				Columns:    columns,
				Gap:        gap,
				Width:      totalW,
				Height:     totalH,
				Chart:      cfg,
			}

			img, results, err := compose.Compose(context.Background(), src.Fetch, spec)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					log.Warnw("cell failed", "id", r.ID, "symbol", r.Cell.Symbol, "timeframe", r.Cell.Timeframe, "error", r.Err)
					continue
				}
				log.Infow("cell rendered", "id", r.ID, "symbol", r.Cell.Symbol, "timeframe", r.Cell.Timeframe)
			}

			if err := saveImage(outPath, img); err != nil {
				return err
			}
			log.Infow("comparison written", "out", outPath, "cells", len(results), "failed", failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbols, "symbols", "", "Comma-separated symbols (e.g. BTCUSDT,ETHUSDT)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "1h", "Shared timeframe for symbol comparison")
	cmd.Flags().StringVar(&timeframes, "timeframes", "", "Comma-separated timeframes; switches to timeframe comparison")
	cmd.Flags().IntVar(&limit, "limit", 100, "Number of candles per cell")
	cmd.Flags().StringVar(&layoutStr, "layout", "side-by-side", "Cell layout: side-by-side|grid")
	cmd.Flags().IntVar(&columns, "columns", 0, "Grid columns (maximum 2)")
	cmd.Flags().IntVar(&gap, "gap", 10, "Gap between cells in pixels")
	cmd.Flags().IntVar(&totalW, "width", 1600, "Total canvas width in pixels")
	cmd.Flags().IntVar(&totalH, "height", 600, "Total canvas height in pixels")
	cmd.Flags().StringVar(&outPath, "out", "", "Output image path (.png, .jpg)")
	cf.register(cmd)

	return cmd
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
