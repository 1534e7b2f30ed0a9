// Package config loads the editor settings from an optional
// gomassing.yaml next to the project. Missing file means defaults;
// invalid values are repaired rather than fatal.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/massinglab/gomassing/pkg/snap"
)

// Settings is the user-tunable editor configuration.
type Settings struct {
	Snap struct {
		HardDistance    float64 `yaml:"hardDistance"`
		PreviewDistance float64 `yaml:"previewDistance"`
	} `yaml:"snap"`

	Grid struct {
		Size    float64 `yaml:"size"`
		Enabled bool    `yaml:"enabled"`
		Extent  float64 `yaml:"extent"`
	} `yaml:"grid"`

	Defaults struct {
		Floors      int     `yaml:"floors"`
		FloorHeight float64 `yaml:"floorHeight"`
		Color       uint32  `yaml:"color"`
	} `yaml:"defaults"`

	// Latitude in degrees, used by the sun position preview.
	Latitude float64 `yaml:"latitude"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	var s Settings
	s.Snap.HardDistance = 2.5
	s.Snap.PreviewDistance = 6.0
	s.Grid.Size = 1.0
	s.Grid.Enabled = true
	s.Grid.Extent = 100.0
	s.Defaults.Floors = 3
	s.Defaults.FloorHeight = 3.0
	s.Defaults.Color = 0x4a90d9
	s.Latitude = 52.5
	return s
}

// Load reads settings from path. A missing file yields defaults
// without error; a malformed file is an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	return s.validated(), nil
}

// validated repairs out-of-range values against the defaults.
func (s Settings) validated() Settings {
	def := Default()
	if s.Snap.HardDistance <= 0 {
		s.Snap.HardDistance = def.Snap.HardDistance
	}
	if s.Snap.PreviewDistance <= s.Snap.HardDistance {
		s.Snap.PreviewDistance = s.Snap.HardDistance * 2
	}
	if s.Grid.Size <= 0 {
		s.Grid.Size = def.Grid.Size
	}
	if s.Grid.Extent <= 0 {
		s.Grid.Extent = def.Grid.Extent
	}
	if s.Defaults.Floors < 1 {
		s.Defaults.Floors = def.Defaults.Floors
	}
	if s.Defaults.FloorHeight <= 0 {
		s.Defaults.FloorHeight = def.Defaults.FloorHeight
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		s.Latitude = def.Latitude
	}
	return s
}

// SnapConfig converts the settings into a snap engine configuration.
func (s Settings) SnapConfig() snap.Config {
	return snap.Config{
		HardDistance:    s.Snap.HardDistance,
		PreviewDistance: s.Snap.PreviewDistance,
		GridSize:        s.Grid.Size,
		GridEnabled:     s.Grid.Enabled,
	}
}
