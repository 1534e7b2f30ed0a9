// Package plan renders building footprints as a top-down site plan
// for the companion inspector GUI.
package plan

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Footprint is one building outline in world coordinates (x east,
// y north).
type Footprint struct {
	ID     int64
	Name   string
	Points [][2]float64
	Floors int
	Color  color.Color
}

// Renderer draws footprints and lets the user select one by tapping.
type Renderer struct {
	widget.BaseWidget
	footprints []Footprint
	selected   int64

	scale            float64
	offsetX, offsetY float64
	fitted           bool

	lines      []*canvas.Line
	dragStart  *fyne.Position
	isDragging bool
	width      float64
	height     float64
	onSelect   func(id int64)
}

// NewRenderer creates a plan renderer for the given footprints.
func NewRenderer(footprints []Footprint) *Renderer {
	r := &Renderer{
		footprints: footprints,
		scale:      4,
		lines:      make([]*canvas.Line, 0),
	}
	r.ExtendBaseWidget(r)
	return r
}

// SetOnSelect sets the callback for when a footprint is selected.
// Tapping empty space reports id 0.
func (r *Renderer) SetOnSelect(callback func(id int64)) {
	r.onSelect = callback
}

// SetFootprints replaces the displayed footprints.
func (r *Renderer) SetFootprints(footprints []Footprint) {
	r.footprints = footprints
	r.fitted = false
	r.Render(r.width, r.height)
}

// Selected returns the id of the selected footprint, 0 for none.
func (r *Renderer) Selected() int64 {
	return r.selected
}

// CreateRenderer creates the renderer for the widget
func (r *Renderer) CreateRenderer() fyne.WidgetRenderer {
	return &planWidgetRenderer{
		renderer: r,
		objects:  []fyne.CanvasObject{},
	}
}

// fitView centers the plan and picks a scale that shows everything.
func (r *Renderer) fitView(width, height float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, fp := range r.footprints {
		for _, p := range fp.Points {
			minX = math.Min(minX, p[0])
			maxX = math.Max(maxX, p[0])
			minY = math.Min(minY, p[1])
			maxY = math.Max(maxY, p[1])
		}
	}
	if minX > maxX {
		// Empty site, keep defaults.
		r.offsetX = width / 2
		r.offsetY = height / 2
		return
	}

	spanX := maxX - minX
	spanY := maxY - minY
	span := math.Max(math.Max(spanX, spanY), 1)
	r.scale = math.Min(width, height) * 0.8 / span
	r.offsetX = width/2 - (minX+spanX/2)*r.scale
	// North is up: world y grows upward, screen y grows downward.
	r.offsetY = height/2 + (minY+spanY/2)*r.scale
}

func (r *Renderer) toScreen(p [2]float64) (float64, float64) {
	return p[0]*r.scale + r.offsetX, -p[1]*r.scale + r.offsetY
}

func (r *Renderer) toWorld(x, y float64) (float64, float64) {
	return (x - r.offsetX) / r.scale, -(y - r.offsetY) / r.scale
}

// Render rebuilds the outline geometry for the current view.
func (r *Renderer) Render(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height
	if !r.fitted {
		r.fitView(width, height)
		r.fitted = true
	}

	r.lines = make([]*canvas.Line, 0)

	for _, fp := range r.footprints {
		if len(fp.Points) < 3 {
			continue
		}

		outline := fp.Color
		if outline == nil {
			outline = color.RGBA{180, 190, 205, 255}
		}
		strokeWidth := float32(1)
		if fp.ID == r.selected {
			outline = color.RGBA{255, 161, 54, 255}
			strokeWidth = 3
		}

		for i := range fp.Points {
			p1 := fp.Points[i]
			p2 := fp.Points[(i+1)%len(fp.Points)]
			x1, y1 := r.toScreen(p1)
			x2, y2 := r.toScreen(p2)

			line := canvas.NewLine(outline)
			line.StrokeWidth = strokeWidth
			line.Position1 = fyne.NewPos(float32(x1), float32(y1))
			line.Position2 = fyne.NewPos(float32(x2), float32(y2))
			r.lines = append(r.lines, line)
		}
	}

	r.Refresh()
}

// Dragged handles mouse drag events for panning
func (r *Renderer) Dragged(event *fyne.DragEvent) {
	if r.dragStart != nil {
		r.offsetX += float64(event.Position.X - r.dragStart.X)
		r.offsetY += float64(event.Position.Y - r.dragStart.Y)
		r.Render(r.width, r.height)
	}
	r.dragStart = &event.Position
	r.isDragging = true
}

// DragEnd handles the end of a drag event
func (r *Renderer) DragEnd() {
	r.dragStart = nil
	r.isDragging = false
}

// Tapped selects the footprint under the tap, or clears the selection.
func (r *Renderer) Tapped(event *fyne.PointEvent) {
	if r.isDragging {
		return
	}

	wx, wy := r.toWorld(float64(event.Position.X), float64(event.Position.Y))

	r.selected = 0
	for _, fp := range r.footprints {
		if containsPoint(fp.Points, wx, wy) {
			r.selected = fp.ID
			break
		}
	}

	r.Render(r.width, r.height)
	if r.onSelect != nil {
		r.onSelect(r.selected)
	}
}

// Scrolled handles scroll events for zooming
func (r *Renderer) Scrolled(event *fyne.ScrollEvent) {
	factor := 1.0 + float64(event.Scrolled.DY)*0.002
	if factor < 0.2 {
		factor = 0.2
	}
	// Zoom around the cursor position.
	wx, wy := r.toWorld(float64(event.Position.X), float64(event.Position.Y))
	r.scale *= factor
	r.offsetX = float64(event.Position.X) - wx*r.scale
	r.offsetY = float64(event.Position.Y) + wy*r.scale
	r.Render(r.width, r.height)
}

// containsPoint is a ray-crossing point-in-polygon test.
func containsPoint(points [][2]float64, x, y float64) bool {
	inside := false
	n := len(points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := points[i], points[j]
		if (pi[1] > y) != (pj[1] > y) &&
			x < (pj[0]-pi[0])*(y-pi[1])/(pj[1]-pi[1])+pi[0] {
			inside = !inside
		}
	}
	return inside
}

// planWidgetRenderer implements fyne.WidgetRenderer
type planWidgetRenderer struct {
	renderer *Renderer
	objects  []fyne.CanvasObject
}

func (p *planWidgetRenderer) Layout(size fyne.Size) {
	p.renderer.Render(float64(size.Width), float64(size.Height))
}

func (p *planWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (p *planWidgetRenderer) Refresh() {
	p.objects = make([]fyne.CanvasObject, 0, len(p.renderer.lines))
	for _, line := range p.renderer.lines {
		p.objects = append(p.objects, line)
	}
	canvas.Refresh(p.renderer)
}

func (p *planWidgetRenderer) Objects() []fyne.CanvasObject {
	return p.objects
}

func (p *planWidgetRenderer) Destroy() {}
