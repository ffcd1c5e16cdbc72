package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"candlechart/config"
)

func TestCompareGridColumnsLimit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cmp.png")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"compare",
		"--symbols", "BTCUSDT,ETHUSDT",
		"--layout", "grid",
		"--columns", "3",
		"--out", out,
	})

	// The layout constraint fires before any cell is fetched or rendered.
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 2 columns")
}

func TestCompareRequiresSymbols(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "--out", "x.png"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--symbols")
}

func TestRenderRejectsBadExtension(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"render", "--symbol", "BTCUSDT", "--out", "chart.bmp"})

	err := cmd.Execute()
	assert.Error(t, err)

	var cerr *config.ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestRenderRejectsBadTimeframe(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"render", "--symbol", "BTCUSDT", "--timeframe", "2h", "--out", "chart.png"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeframe")
}

func TestParseLevels(t *testing.T) {
	levels, err := parseLevels([]string{"100.5", "98:#ff0000:dotted:stop loss"})
	assert.NoError(t, err)
	assert.Len(t, levels, 2)
	assert.Equal(t, 100.5, levels[0].Value)
	assert.Equal(t, "#ff0000", levels[1].Color)
	assert.Equal(t, "dotted", levels[1].Style)
	assert.Equal(t, "stop loss", levels[1].Label)

	_, err = parseLevels([]string{"not-a-price"})
	assert.Error(t, err)
}
