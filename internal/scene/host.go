// Package scene defines the contract between the core editor logic and
// whatever backend actually draws things. The drawing session and the
// building registry create and remove visual primitives through a Host;
// they never touch the rendering backend directly.
package scene

import "github.com/massinglab/gomassing/pkg/geometry"

// Handle identifies a visual primitive owned by the host. Handles are
// issued by the host and are never reused within a session.
type Handle int64

// NoHandle is the zero value; Remove of NoHandle is a no-op.
const NoHandle Handle = 0

// Highlight is the visual state of a committed building volume.
// Selection dominates hover.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightHovered
	HighlightSelected
)

// Color is a packed 0xRRGGBB value, matching the building config format.
type Color uint32

// RGB unpacks the color channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Volume describes an extruded footprint for the host to draw.
type Volume struct {
	Vertices []geometry.Vector3
	Height   float64
	Color    Color
}

// Host is implemented by the rendering backend. All calls are made on
// the frame loop thread. Remove must release whatever resources the
// primitive holds; a failing Remove is reported but the caller will
// drop the handle regardless.
type Host interface {
	// AddMarker places a point marker. Emphasized markers are drawn
	// larger, used when the cursor approaches the drawing-start vertex.
	AddMarker(pos geometry.Vector3, emphasized bool) Handle

	// AddLine places a line segment on the ground plane.
	AddLine(from, to geometry.Vector3) Handle

	// AddLabel places a text label anchored at a world position.
	AddLabel(pos geometry.Vector3, text string) Handle

	// AddVolume places an extruded footprint volume.
	AddVolume(v Volume) Handle

	// SetHighlight changes the visual state of a volume.
	SetHighlight(h Handle, hl Highlight)

	// Remove deletes a primitive and disposes its resources.
	Remove(h Handle) error
}
