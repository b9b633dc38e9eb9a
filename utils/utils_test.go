package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadTOML reads a known test config, checking both overridden keys and
// keys left at their defaults.
func TestReadTOML(t *testing.T) {
	cfg, err := ReadTOML("testdata/testConf.toml")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6969", cfg.Server.Address)
	assert.Equal(t, []string{"example.com", "localhost:8080"}, cfg.Server.OriginPatterns)
	assert.Equal(t, 17, cfg.Server.TickMillis, "unset keys keep their default")
	assert.Equal(t, 800.0, cfg.Scene.Width)
	assert.Equal(t, 480.0, cfg.Scene.Height)
	assert.Equal(t, "testdata/level.map", cfg.Scene.Map)
	assert.Equal(t, ResolutionConfig{X: 1, Y: 1}, cfg.UI.Resolution)
	assert.Equal(t, 0.001, cfg.Math.Float64EqualityThreshold)
	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, "cpu", cfg.Debug.Profile)
}

func TestReadTOMLErrors(t *testing.T) {
	_, err := ReadTOML("testdata/missing.toml")
	assert.True(t, os.IsNotExist(err))

	_, err = ReadTOML("testdata/broken.toml")
	assert.Error(t, err)
}

func TestReadTOMLOrDefault(t *testing.T) {
	cfg, err := ReadTOMLOrDefault(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = ReadTOMLOrDefault("testdata/broken.toml")
	assert.Error(t, err)
}

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(0.1+0.2, 0.3, 1e-9))
	assert.False(t, AlmostEqual(1.0, 1.1, 0.01))
	assert.True(t, AlmostEqual(float32(1), float32(1.0005), 0.001))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(42, 0, 10))
	assert.Equal(t, 2.5, Clamp(2.5, 0.0, 10.0))
}
