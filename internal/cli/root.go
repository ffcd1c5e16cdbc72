// Package cli wires the cobra commands around the chart pipeline. All flag
// parsing, defaulting, and validation happens here; the render core only ever
// sees a resolved config.Chart.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"candlechart/pkg/logger"
)

// RootConfig carries the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	CachePath  string
	LogLevel   string
	NoColor    bool
}

// Logger builds the process logger from the persistent flags.
func (rc *RootConfig) Logger() (*zap.SugaredLogger, error) {
	return logger.New(rc.LogLevel, rc.NoColor)
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "candlechart",
		Short:         "candlechart — render OHLCV candle charts to image files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to chart config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.CachePath, "cache", "", "SQLite candle cache database (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	// Subcommands
	cmd.AddCommand(
		newRenderCmd(rc),
		newCompareCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("candlechart (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
