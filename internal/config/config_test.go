package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a directory without a config file.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, -35.0, cfg.Bounds.LatMin, 1e-9)
	assert.InDelta(t, 6.0, cfg.Bounds.LatMax, 1e-9)
	assert.InDelta(t, -75.0, cfg.Bounds.LonMin, 1e-9)
	assert.InDelta(t, -30.0, cfg.Bounds.LonMax, 1e-9)
	assert.Equal(t, 6, cfg.Clean.MaxScaleExponent)
	assert.Equal(t, 2, cfg.Resolver.ThresholdFloor)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("AEROMAPA_CLEAN_CONCURRENCY", "3")
	t.Setenv("AEROMAPA_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Clean.Concurrency)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestBoundsConversion(t *testing.T) {
	b := BoundsConfig{LatMin: -35, LatMax: 6, LonMin: -75, LonMax: -30}
	bounds := b.Bounds()

	assert.True(t, bounds.Lat.Contains(-23.55))
	assert.False(t, bounds.Lat.Contains(40))
	assert.True(t, bounds.Lon.Contains(-46.63))
}

func TestResolverOptionsConversion(t *testing.T) {
	r := ResolverConfig{ThresholdFloor: 1, ThresholdDivisor: 10}
	opts := r.Options()
	assert.Equal(t, 1, opts.Floor)
	assert.Equal(t, 10, opts.Divisor)
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nonsense", Format: "console"})
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}
