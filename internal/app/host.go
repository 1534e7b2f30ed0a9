package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
)

// markerPrimitive is a point marker on the ground plane.
type markerPrimitive struct {
	pos        rl.Vector3
	emphasized bool
}

type linePrimitive struct {
	from, to rl.Vector3
}

type labelPrimitive struct {
	pos  geometry.Vector3
	text string
}

// volumePrimitive caches the extruded wall ring so the per-frame draw
// does no geometry work.
type volumePrimitive struct {
	ring      []rl.Vector3 // Ground ring, profile order
	center    rl.Vector3
	height    float32
	color     rl.Color
	highlight scene.Highlight
}

// RaylibHost implements scene.Host on top of raylib's immediate-mode
// drawing: primitives are retained in maps and re-drawn every frame.
type RaylibHost struct {
	next    scene.Handle
	markers map[scene.Handle]markerPrimitive
	lines   map[scene.Handle]linePrimitive
	labels  map[scene.Handle]labelPrimitive
	volumes map[scene.Handle]*volumePrimitive

	lightDir rl.Vector3
}

// NewRaylibHost creates an empty host.
func NewRaylibHost() *RaylibHost {
	return &RaylibHost{
		markers:  make(map[scene.Handle]markerPrimitive),
		lines:    make(map[scene.Handle]linePrimitive),
		labels:   make(map[scene.Handle]labelPrimitive),
		volumes:  make(map[scene.Handle]*volumePrimitive),
		lightDir: rl.Vector3{X: -0.4, Y: -1.0, Z: -0.3},
	}
}

// SetLightDirection aims the shading light, fed from the sun preview.
func (h *RaylibHost) SetLightDirection(dir rl.Vector3) {
	h.lightDir = dir
}

func (h *RaylibHost) handle() scene.Handle {
	h.next++
	return h.next
}

func toRl(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// AddMarker implements scene.Host.
func (h *RaylibHost) AddMarker(pos geometry.Vector3, emphasized bool) scene.Handle {
	hd := h.handle()
	h.markers[hd] = markerPrimitive{pos: toRl(pos), emphasized: emphasized}
	return hd
}

// AddLine implements scene.Host.
func (h *RaylibHost) AddLine(from, to geometry.Vector3) scene.Handle {
	hd := h.handle()
	h.lines[hd] = linePrimitive{from: toRl(from), to: toRl(to)}
	return hd
}

// AddLabel implements scene.Host.
func (h *RaylibHost) AddLabel(pos geometry.Vector3, text string) scene.Handle {
	hd := h.handle()
	h.labels[hd] = labelPrimitive{pos: pos, text: text}
	return hd
}

// AddVolume implements scene.Host. The footprint goes through the
// extrusion profile so the volume matches exactly what a mesh extruder
// would produce from the same vertices.
func (h *RaylibHost) AddVolume(v scene.Volume) scene.Handle {
	hd := h.handle()

	center := geometry.Centroid(v.Vertices)
	ring := make([]rl.Vector3, 0, len(v.Vertices))
	if profile, err := geometry.BuildProfile(v.Vertices, center); err == nil {
		// Profile points are (x-cx, -(z-cz)); undo the mapping to get
		// the ground ring back in world space (closing point dropped).
		for _, p := range profile.Points[:len(profile.Points)-1] {
			ring = append(ring, rl.Vector3{
				X: float32(center.X + p[0]),
				Y: 0,
				Z: float32(center.Z - p[1]),
			})
		}
	} else {
		// Degenerate outline: keep whatever came in so the preview
		// still shows something.
		for _, p := range v.Vertices {
			ring = append(ring, toRl(p))
		}
	}

	r, g, b := v.Color.RGB()
	h.volumes[hd] = &volumePrimitive{
		ring:   ring,
		center: toRl(center),
		height: float32(v.Height),
		color:  rl.NewColor(r, g, b, 255),
	}
	return hd
}

// SetHighlight implements scene.Host.
func (h *RaylibHost) SetHighlight(hd scene.Handle, hl scene.Highlight) {
	if v, ok := h.volumes[hd]; ok {
		v.highlight = hl
	}
}

// Remove implements scene.Host. Nothing holds GPU resources here, so
// removal cannot actually fail; the error return exists for hosts that
// do own meshes.
func (h *RaylibHost) Remove(hd scene.Handle) error {
	delete(h.markers, hd)
	delete(h.lines, hd)
	delete(h.labels, hd)
	delete(h.volumes, hd)
	return nil
}

// Draw3D renders all retained primitives. Must run inside BeginMode3D.
func (h *RaylibHost) Draw3D() {
	for _, v := range h.volumes {
		h.drawVolume(v)
	}
	for _, l := range h.lines {
		rl.DrawLine3D(l.from, l.to, rl.Yellow)
	}
	for _, m := range h.markers {
		radius := float32(0.25)
		color := rl.SkyBlue
		if m.emphasized {
			radius = 0.45
			color = rl.Orange
		}
		rl.DrawSphere(m.pos, radius, color)
	}
}

// DrawLabels renders text labels in screen space. Must run after
// EndMode3D.
func (h *RaylibHost) DrawLabels(camera rl.Camera3D, font rl.Font) {
	for _, l := range h.labels {
		anchor := toRl(l.pos)
		anchor.Y += 0.5
		screen := rl.GetWorldToScreen(anchor, camera)
		size := rl.MeasureTextEx(font, l.text, 16, 1)
		pos := rl.Vector2{X: screen.X - size.X/2, Y: screen.Y - size.Y}
		rl.DrawRectangle(int32(pos.X)-4, int32(pos.Y)-2, int32(size.X)+8, int32(size.Y)+4, rl.NewColor(0, 0, 0, 180))
		rl.DrawTextEx(font, l.text, pos, 16, 1, rl.Yellow)
	}
}

func (h *RaylibHost) drawVolume(v *volumePrimitive) {
	if len(v.ring) < 3 {
		return
	}

	base := v.color
	switch v.highlight {
	case scene.HighlightSelected:
		base = rl.NewColor(255, 161, 54, 255)
	case scene.HighlightHovered:
		base = lighten(base, 0.35)
	}

	topCenter := rl.Vector3{X: v.center.X, Y: v.height, Z: v.center.Z}

	// Roof cap as a fan around the centroid.
	roof := lighten(base, 0.2)
	for i := range v.ring {
		a := v.ring[i]
		b := v.ring[(i+1)%len(v.ring)]
		rl.DrawTriangle3D(
			rl.Vector3{X: a.X, Y: v.height, Z: a.Z},
			rl.Vector3{X: b.X, Y: v.height, Z: b.Z},
			topCenter,
			roof,
		)
	}

	// Walls, shaded against the light direction the way a baked-light
	// mesh would be.
	for i := range v.ring {
		a := v.ring[i]
		b := v.ring[(i+1)%len(v.ring)]
		at := rl.Vector3{X: a.X, Y: v.height, Z: a.Z}
		bt := rl.Vector3{X: b.X, Y: v.height, Z: b.Z}

		normal := wallNormal(a, b)
		intensity := math.Max(0.35, -float64(normal.X*h.lightDir.X+normal.Z*h.lightDir.Z))
		wall := shade(base, intensity)

		rl.DrawTriangle3D(a, b, bt, wall)
		rl.DrawTriangle3D(a, bt, at, wall)
	}

	// Edge lines keep adjacent massing volumes readable.
	outline := rl.NewColor(20, 24, 32, 255)
	if v.highlight == scene.HighlightSelected {
		outline = rl.White
	}
	for i := range v.ring {
		a := v.ring[i]
		b := v.ring[(i+1)%len(v.ring)]
		at := rl.Vector3{X: a.X, Y: v.height, Z: a.Z}
		bt := rl.Vector3{X: b.X, Y: v.height, Z: b.Z}
		rl.DrawLine3D(a, b, outline)
		rl.DrawLine3D(at, bt, outline)
		rl.DrawLine3D(a, at, outline)
	}
}

// wallNormal is the horizontal outward normal of the wall a->b.
func wallNormal(a, b rl.Vector3) rl.Vector3 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	length := float32(math.Sqrt(float64(dx*dx + dz*dz)))
	if length == 0 {
		return rl.Vector3{}
	}
	return rl.Vector3{X: dz / length, Z: -dx / length}
}

func shade(c rl.Color, intensity float64) rl.Color {
	clamp := func(v float64) uint8 {
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return rl.NewColor(
		clamp(float64(c.R)*intensity),
		clamp(float64(c.G)*intensity),
		clamp(float64(c.B)*intensity),
		c.A,
	)
}

func lighten(c rl.Color, amount float64) rl.Color {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount)
	}
	return rl.NewColor(mix(c.R), mix(c.G), mix(c.B), c.A)
}

// debugString summarizes the live primitive counts for the HUD.
func (h *RaylibHost) debugString() string {
	return fmt.Sprintf("prims: %dm %dl %dt %dv", len(h.markers), len(h.lines), len(h.labels), len(h.volumes))
}
