// Package building holds the authoritative collection of committed
// buildings: footprints, derived areas, selection and hover state, and
// the snapshots behind the design exploration graph. The registry owns
// every Record; the drawing session only feeds it finished polygons.
package building

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
)

var (
	// ErrInvalidGeometry means a footprint with fewer than 3 vertices
	// was handed to Create.
	ErrInvalidGeometry = errors.New("building footprint needs at least 3 vertices")

	// ErrNotFound means the referenced building id is not in the registry.
	ErrNotFound = errors.New("building not found")
)

// NoID is the null building id used to clear selection or hover.
const NoID int64 = 0

// SelectionState is the visual state of a record.
type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionHovered
	SelectionSelected
)

// Record is a committed building. Vertices are immutable after
// creation; attribute edits that change the extrusion height
// regenerate the volume from the stored vertices.
type Record struct {
	ID        int64
	Vertices  []geometry.Vector3
	Area      float64
	Config    Config
	CreatedAt time.Time
	Selection SelectionState

	volume scene.Handle
	box    geometry.Box
}

// TotalHeight is the extruded height of the record.
func (r *Record) TotalHeight() float64 {
	return r.Config.TotalHeight()
}

// Box returns the record's bounding volume.
func (r *Record) Box() geometry.Box {
	return r.box
}

// Stats is the on-demand aggregate over all records.
type Stats struct {
	Count       int
	TotalArea   float64
	TotalFloors int
}

// Registry is the authoritative building collection. All methods run
// on the frame loop thread.
type Registry struct {
	host    scene.Host
	records map[int64]*Record
	order   []int64
	nextID  int64

	selected int64
	hovered  int64

	now func() time.Time
}

// NewRegistry creates an empty registry bound to a render host.
func NewRegistry(host scene.Host) *Registry {
	return &Registry{
		host:    host,
		records: make(map[int64]*Record),
		now:     time.Now,
	}
}

// Create validates and stores a new building. The vertex order is
// normalized to counter-clockwise so extrusion always faces outward.
func (r *Registry) Create(vertices []geometry.Vector3, cfg Config) (*Record, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGeometry, len(vertices))
	}

	cfg = cfg.sanitize()
	verts := geometry.EnsureCounterClockwise(vertices)
	area := geometry.Area(verts)

	r.nextID++
	rec := &Record{
		ID:        r.nextID,
		Vertices:  verts,
		Area:      area,
		Config:    cfg,
		CreatedAt: r.now(),
	}
	rec.box = geometry.NewBoxFromPoints(verts, cfg.TotalHeight())
	rec.volume = r.host.AddVolume(scene.Volume{
		Vertices: verts,
		Height:   cfg.TotalHeight(),
		Color:    cfg.Color,
	})

	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return rec, nil
}

// Reinsert adds a record with a fixed id, used by snapshot restore and
// project import. The id counter is bumped past the reinserted id so
// later creates never collide. On a duplicate id the last entry wins.
func (r *Registry) Reinsert(id int64, vertices []geometry.Vector3, cfg Config, createdAt time.Time) (*Record, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGeometry, len(vertices))
	}

	cfg = cfg.sanitize()
	verts := geometry.EnsureCounterClockwise(vertices)
	rec := &Record{
		ID:        id,
		Vertices:  verts,
		Area:      geometry.Area(verts),
		Config:    cfg,
		CreatedAt: createdAt,
	}
	rec.box = geometry.NewBoxFromPoints(verts, cfg.TotalHeight())
	rec.volume = r.host.AddVolume(scene.Volume{
		Vertices: verts,
		Height:   cfg.TotalHeight(),
		Color:    cfg.Color,
	})

	if old, exists := r.records[id]; exists {
		r.disposeVolume(old)
	} else {
		r.order = append(r.order, id)
	}
	r.records[id] = rec
	if id > r.nextID {
		r.nextID = id
	}
	return rec, nil
}

// Get returns the record for id.
func (r *Registry) Get(id int64) (*Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return rec, nil
}

// List returns all records in creation order.
func (r *Registry) List() []*Record {
	out := make([]*Record, 0, len(r.order))
	for _, id := range r.order {
		if rec, ok := r.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Count returns the number of records.
func (r *Registry) Count() int { return len(r.records) }

// Update merges a partial config into the record. When the derived
// height or color changed the volume is regenerated from the stored
// vertices; the vertices themselves never change.
func (r *Registry) Update(id int64, patch Patch) (*Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	cfg, regenerate := patch.apply(rec.Config)
	rec.Config = cfg
	if regenerate {
		r.reextrude(rec)
	}
	return rec, nil
}

// reextrude rebuilds the record's volume from its immutable vertices.
func (r *Registry) reextrude(rec *Record) {
	r.disposeVolume(rec)
	rec.box = geometry.NewBoxFromPoints(rec.Vertices, rec.Config.TotalHeight())
	rec.volume = r.host.AddVolume(scene.Volume{
		Vertices: rec.Vertices,
		Height:   rec.Config.TotalHeight(),
		Color:    rec.Config.Color,
	})
	r.applyHighlight(rec)
}

// Delete removes a record. Idempotent: deleting an unknown id is a
// no-op. Selection and hover referencing the id are cleared.
func (r *Registry) Delete(id int64) {
	rec, ok := r.records[id]
	if !ok {
		return
	}
	r.disposeVolume(rec)
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.selected == id {
		r.selected = NoID
	}
	if r.hovered == id {
		r.hovered = NoID
	}
}

// ClearAll removes every record and resets selection and hover.
func (r *Registry) ClearAll() {
	for _, rec := range r.records {
		r.disposeVolume(rec)
	}
	r.records = make(map[int64]*Record)
	r.order = nil
	r.selected = NoID
	r.hovered = NoID
}

// Select makes id the single selected record; NoID clears the
// selection. Unknown ids fail with ErrNotFound and leave the current
// selection in place.
func (r *Registry) Select(id int64) error {
	if id != NoID {
		if _, ok := r.records[id]; !ok {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
	}
	prev := r.selected
	r.selected = id
	r.refreshHighlight(prev)
	r.refreshHighlight(id)
	return nil
}

// Selected returns the selected record, or nil.
func (r *Registry) Selected() *Record {
	return r.records[r.selected]
}

// Hover marks id as hovered; NoID clears it. A stale id clears the
// hover instead of failing: the record may have been deleted under the
// cursor.
func (r *Registry) Hover(id int64) {
	if id != NoID {
		if _, ok := r.records[id]; !ok {
			id = NoID
		}
	}
	prev := r.hovered
	r.hovered = id
	r.refreshHighlight(prev)
	r.refreshHighlight(id)
}

// Hovered returns the hovered record, or nil.
func (r *Registry) Hovered() *Record {
	return r.records[r.hovered]
}

// refreshHighlight recomputes the visual state of one record.
func (r *Registry) refreshHighlight(id int64) {
	if rec, ok := r.records[id]; ok {
		r.applyHighlight(rec)
	}
}

// applyHighlight pushes the record's visual state to the host.
// Selection dominates hover.
func (r *Registry) applyHighlight(rec *Record) {
	state := SelectionNone
	hl := scene.HighlightNone
	switch {
	case rec.ID == r.selected:
		state = SelectionSelected
		hl = scene.HighlightSelected
	case rec.ID == r.hovered:
		state = SelectionHovered
		hl = scene.HighlightHovered
	}
	rec.Selection = state
	r.host.SetHighlight(rec.volume, hl)
}

// Pick returns the record whose bounding volume the ray hits first, or
// nil when nothing is hit.
func (r *Registry) Pick(ray geometry.Ray) *Record {
	var best *Record
	bestT := math.Inf(1)
	for _, id := range r.order {
		rec, ok := r.records[id]
		if !ok {
			continue
		}
		if t, hit := ray.IntersectBox(rec.box); hit && t < bestT {
			bestT = t
			best = rec
		}
	}
	return best
}

// Stats recomputes the aggregate over all records. Never cached.
func (r *Registry) Stats() Stats {
	s := Stats{Count: len(r.records)}
	for _, rec := range r.records {
		s.TotalArea += rec.Area
		s.TotalFloors += rec.Config.Floors
	}
	return s
}

// disposeVolume removes the record's volume from the host. A failing
// removal is logged and the handle dropped regardless, so a rendering
// failure cannot strand the registry.
func (r *Registry) disposeVolume(rec *Record) {
	if rec.volume == scene.NoHandle {
		return
	}
	if err := r.host.Remove(rec.volume); err != nil {
		fmt.Printf("Warning: failed to dispose building volume %d: %v\n", rec.ID, err)
	}
	rec.volume = scene.NoHandle
}
