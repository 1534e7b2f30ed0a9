package building

import "github.com/massinglab/gomassing/internal/scene"

// Config carries the parametric and descriptive attributes of a
// building. Floors, FloorHeight and Color drive the extrusion; the
// remaining fields are passthrough metadata the editor stores verbatim
// and never interprets.
type Config struct {
	Floors      int         `json:"floors"`
	FloorHeight float64     `json:"floorHeight"`
	Color       scene.Color `json:"color"`

	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// DefaultConfig is the config applied to newly drawn buildings until
// the user changes it.
func DefaultConfig() Config {
	return Config{
		Floors:      3,
		FloorHeight: 3.0,
		Color:       0x4a90d9,
	}
}

// TotalHeight is the extrusion height in meters.
func (c Config) TotalHeight() float64 {
	return float64(c.Floors) * c.FloorHeight
}

// sanitize clamps out-of-range values instead of failing creation.
func (c Config) sanitize() Config {
	if c.Floors < 1 {
		c.Floors = 1
	}
	if c.FloorHeight <= 0 {
		c.FloorHeight = DefaultConfig().FloorHeight
	}
	return c
}

// Patch is a partial config update. Nil fields are left unchanged;
// Metadata keys are merged over the existing map.
type Patch struct {
	Floors      *int
	FloorHeight *float64
	Color       *scene.Color
	Name        *string
	Description *string
	Metadata    map[string]any
}

// apply merges the patch into cfg and reports whether the extrusion
// height or color changed, which forces a re-extrusion.
func (p Patch) apply(cfg Config) (Config, bool) {
	regenerate := false
	if p.Floors != nil && *p.Floors != cfg.Floors {
		cfg.Floors = *p.Floors
		regenerate = true
	}
	if p.FloorHeight != nil && *p.FloorHeight != cfg.FloorHeight {
		cfg.FloorHeight = *p.FloorHeight
		regenerate = true
	}
	if p.Color != nil && *p.Color != cfg.Color {
		cfg.Color = *p.Color
		regenerate = true
	}
	if p.Name != nil {
		cfg.Name = *p.Name
	}
	if p.Description != nil {
		cfg.Description = *p.Description
	}
	if len(p.Metadata) > 0 {
		merged := make(map[string]any, len(cfg.Metadata)+len(p.Metadata))
		for k, v := range cfg.Metadata {
			merged[k] = v
		}
		for k, v := range p.Metadata {
			merged[k] = v
		}
		cfg.Metadata = merged
	}
	return cfg.sanitize(), regenerate
}
