package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "gomassing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomassing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
snap:
  hardDistance: 3.0
  previewDistance: 8.0
grid:
  size: 0.5
  enabled: false
  extent: 200
defaults:
  floors: 6
  floorHeight: 2.8
latitude: 48.1
`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Snap.HardDistance)
	assert.Equal(t, 8.0, s.Snap.PreviewDistance)
	assert.Equal(t, 0.5, s.Grid.Size)
	assert.False(t, s.Grid.Enabled)
	assert.Equal(t, 6, s.Defaults.Floors)
	assert.Equal(t, 48.1, s.Latitude)

	cfg := s.SnapConfig()
	assert.Equal(t, 3.0, cfg.HardDistance)
	assert.False(t, cfg.GridEnabled)
}

func TestLoadRepairsInvalidThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomassing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
snap:
  hardDistance: 5.0
  previewDistance: 2.0
grid:
  size: -1
defaults:
  floors: 0
latitude: 400
`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Greater(t, s.Snap.PreviewDistance, s.Snap.HardDistance, "hard must stay below preview")
	assert.Equal(t, Default().Grid.Size, s.Grid.Size)
	assert.Equal(t, Default().Defaults.Floors, s.Defaults.Floors)
	assert.Equal(t, Default().Latitude, s.Latitude)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomassing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snap: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
