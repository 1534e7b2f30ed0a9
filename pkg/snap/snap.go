// Package snap decides how raw cursor positions get adjusted while a
// footprint is being drawn: first onto the construction grid, then onto
// the drawing-start vertex once the cursor comes close enough to close
// the loop.
package snap

import "github.com/massinglab/gomassing/pkg/geometry"

// Config holds the snap thresholds. HardDistance closes the loop;
// PreviewDistance only lights up the start marker so the user gets
// feedback before the geometry actually moves. HardDistance must be
// strictly smaller than PreviewDistance or the hard snap would flicker
// right at the boundary.
type Config struct {
	HardDistance    float64
	PreviewDistance float64
	GridSize        float64
	GridEnabled     bool
}

// DefaultConfig returns the tuning used by the editor out of the box.
func DefaultConfig() Config {
	return Config{
		HardDistance:    2.5,
		PreviewDistance: 6.0,
		GridSize:        1.0,
		GridEnabled:     true,
	}
}

// Result is the resolved cursor position plus the snap flags the drawing
// session and the preview renderer both consume.
type Result struct {
	Position geometry.Vector3
	// SnapToStart means the position was clamped onto the first vertex;
	// adding the point should close the polygon instead.
	SnapToStart bool
	// PreviewOnly means the cursor is inside the soft ring around the
	// start vertex but has not been clamped.
	PreviewOnly bool
}

// Engine resolves candidate cursor positions against the in-progress
// vertex list.
type Engine struct {
	cfg Config
}

// NewEngine creates a snap engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	if cfg.HardDistance >= cfg.PreviewDistance {
		cfg.PreviewDistance = cfg.HardDistance * 2
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetGridEnabled toggles the grid pass.
func (e *Engine) SetGridEnabled(enabled bool) {
	e.cfg.GridEnabled = enabled
}

// Resolve runs the candidate through the grid pass and, once the polygon
// could be closed (>= 3 committed vertices), against the start vertex.
func (e *Engine) Resolve(vertices []geometry.Vector3, candidate geometry.Vector3) Result {
	pos := candidate
	if e.cfg.GridEnabled {
		pos = geometry.SnapToGrid(pos, e.cfg.GridSize)
	}

	result := Result{Position: pos}
	if len(vertices) < 3 {
		return result
	}

	start := vertices[0]
	dist := pos.GroundDistance(start)
	if dist < e.cfg.HardDistance {
		// Clamp onto the start vertex; keep the candidate's elevation.
		result.Position = geometry.Vector3{X: start.X, Y: pos.Y, Z: start.Z}
		result.SnapToStart = true
		return result
	}
	if dist < e.cfg.PreviewDistance {
		result.PreviewOnly = true
	}
	return result
}
