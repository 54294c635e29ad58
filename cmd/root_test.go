package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinerate/config"
	"github.com/s0up4200/cinerate/filter"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prevCfg, prevCompiler := cfg, compiler
	prevExpr, prevPreset, prevLimit, prevOverview := filterExpr, preset, limit, showOverview
	t.Cleanup(func() {
		cfg, compiler = prevCfg, prevCompiler
		filterExpr, preset, limit, showOverview = prevExpr, prevPreset, prevLimit, prevOverview
	})

	cfg = c
	compiler = filter.NewCompiler(c.Filter.Presets, 4)
	filterExpr, preset, limit, showOverview = "", "", 0, false
}

func TestResolveFilterPriority(t *testing.T) {
	withConfig(t, &config.Config{Filter: config.FilterConfig{
		DefaultExpression: "VoteCount > 10",
		Presets:           map[string]string{"acclaimed": "VoteAverage >= 8"},
	}})

	f, err := resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, "VoteCount > 10", f.String())

	preset = "acclaimed"
	f, err = resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, "VoteAverage >= 8", f.String())

	filterExpr = "Rank <= 3"
	f, err = resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, "Rank <= 3", f.String())
}

func TestResolveFilterErrors(t *testing.T) {
	withConfig(t, &config.Config{})

	f, err := resolveFilter()
	require.NoError(t, err)
	assert.Nil(t, f)

	preset = "missing"
	_, err = resolveFilter()
	assert.ErrorContains(t, err, "preset 'missing' not found")

	preset = ""
	filterExpr = "Title +"
	_, err = resolveFilter()
	assert.ErrorContains(t, err, "invalid filter")
}

func TestFormatOptions(t *testing.T) {
	withConfig(t, &config.Config{Display: config.DisplayConfig{ShowOverview: false, Limit: 5}})

	opts := formatOptions()
	assert.False(t, opts.ShowOverview)
	assert.Equal(t, 5, opts.Limit)

	showOverview, limit = true, 2
	opts = formatOptions()
	assert.True(t, opts.ShowOverview)
	assert.Equal(t, 2, opts.Limit)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	setupLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "debug", Format: "console", Color: true})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
