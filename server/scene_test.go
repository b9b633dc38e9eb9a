package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapes/utils"
)

func TestLoadScene(t *testing.T) {
	cfg := utils.Default()
	s, err := LoadScene(cfg)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	cfg.Scene.Map = "../scene/testdata/level.map"
	s, err = LoadScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	cfg.Scene.Map = "testdata/missing.map"
	_, err = LoadScene(cfg)
	assert.Error(t, err)
}
