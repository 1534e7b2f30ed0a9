// Package drawing owns the footprint drawing state machine: the ordered
// list of committed vertices plus the transient preview artifacts for
// the polygon currently being drawn. It consumes projected pointer
// events, runs them through the snap engine and hands finished polygons
// to a commit callback (the building registry).
package drawing

import (
	"errors"
	"fmt"

	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
	"github.com/massinglab/gomassing/pkg/snap"
)

// ErrNotEnoughVertices is returned by Finish when the polygon cannot be
// closed yet. The session state is left untouched.
var ErrNotEnoughVertices = errors.New("a footprint needs at least 3 vertices")

// CommitFunc receives the finished footprint. The vertex slice is owned
// by the callee.
type CommitFunc func(vertices []geometry.Vector3) error

// ProjectFunc projects a pointer ray onto the ground. The default uses
// the mathematical y=0 plane; the shell installs a projector that asks
// the rendered ground mesh first and falls back to the plane.
type ProjectFunc func(geometry.Ray) (geometry.Vector3, bool)

type pendingPreview struct {
	ray   geometry.Ray
	epoch uint64
}

// Session is the drawing state machine. All methods run on the frame
// loop thread; one transition completes fully before the next begins.
type Session struct {
	host    scene.Host
	snapper *snap.Engine
	commit  CommitFunc
	project ProjectFunc
	onEdge  func(index int, length float64)

	active            bool
	vertices          []geometry.Vector3
	snapToStartActive bool

	previewHeight float64
	previewColor  scene.Color

	// Preview throttling. Epoch is bumped on every start/finish/cancel;
	// a pending preview captured under an older epoch is stale and gets
	// discarded instead of resurrecting artifacts after a transition.
	epoch   uint64
	busy    bool
	pending *pendingPreview

	vertexMarkers []scene.Handle
	cursorMarker  scene.Handle
	rubberBand    scene.Handle
	dimLabel      scene.Handle
	previewVolume scene.Handle
}

// NewSession creates an idle session bound to a render host.
func NewSession(host scene.Host, snapper *snap.Engine, commit CommitFunc) *Session {
	return &Session{
		host:          host,
		snapper:       snapper,
		commit:        commit,
		project:       func(r geometry.Ray) (geometry.Vector3, bool) { return r.GroundIntersection() },
		previewHeight: 9.0,
		previewColor:  0x4a90d9,
	}
}

// SetProjector replaces the ground projection function.
func (s *Session) SetProjector(p ProjectFunc) {
	if p != nil {
		s.project = p
	}
}

// SetEdgeListener installs a callback fired when a new edge is committed.
func (s *Session) SetEdgeListener(fn func(index int, length float64)) {
	s.onEdge = fn
}

// SetPreviewVolume sets the height and color used for the live extruded
// preview, normally floors times floor height of the pending config.
func (s *Session) SetPreviewVolume(height float64, color scene.Color) {
	s.previewHeight = height
	s.previewColor = color
}

// Active reports whether a footprint is being drawn.
func (s *Session) Active() bool { return s.active }

// Vertices returns a copy of the committed vertex list.
func (s *Session) Vertices() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// VertexCount returns the number of committed vertices.
func (s *Session) VertexCount() int { return len(s.vertices) }

// SnapToStartActive reports whether the last preview was clamped onto
// the drawing-start vertex.
func (s *Session) SnapToStartActive() bool { return s.snapToStartActive }

// Start transitions Idle -> Drawing. A session already drawing is
// cancelled first so no artifacts leak across the restart.
func (s *Session) Start() {
	if s.active {
		s.Cancel()
	}
	s.active = true
	s.epoch++
}

// AddPoint projects the ray onto the ground, snaps it and appends it to
// the footprint. A hard snap onto the start vertex with a closable
// polygon triggers Finish instead of appending. Rays that miss the
// ground are skipped silently.
func (s *Session) AddPoint(ray geometry.Ray) {
	if !s.active {
		return
	}
	point, ok := s.project(ray)
	if !ok {
		return
	}

	res := s.snapper.Resolve(s.vertices, point)
	if res.SnapToStart && len(s.vertices) >= 3 {
		if err := s.Finish(); err != nil {
			fmt.Printf("Warning: close-loop finish failed: %v\n", err)
		}
		return
	}

	s.vertices = append(s.vertices, res.Position)
	s.vertexMarkers = append(s.vertexMarkers, s.host.AddMarker(res.Position, false))
	s.clearStepPreview()

	if n := len(s.vertices); n >= 2 {
		length := s.vertices[n-2].Distance(s.vertices[n-1])
		if s.onEdge != nil {
			s.onEdge(n-1, length)
		}
	}
}

// SchedulePreview records the latest pointer ray for the next flush.
// Intermediate moves within a frame are coalesced: only the most recent
// candidate survives.
func (s *Session) SchedulePreview(ray geometry.Ray) {
	if !s.active {
		return
	}
	s.pending = &pendingPreview{ray: ray, epoch: s.epoch}
}

// FlushPreview runs at most one preview recomputation. It refuses to
// re-enter while a prior flush is still running and discards previews
// scheduled before the last state transition.
func (s *Session) FlushPreview() {
	if s.pending == nil || s.busy {
		return
	}
	p := *s.pending
	s.pending = nil
	if !s.active || p.epoch != s.epoch {
		return
	}

	s.busy = true
	defer func() { s.busy = false }()

	point, ok := s.project(p.ray)
	if !ok {
		return
	}
	s.updatePreview(point)
}

// updatePreview fully replaces the transient artifacts: at any moment
// there is exactly one cursor marker, at most one rubber band, one
// dimension label and one preview volume.
func (s *Session) updatePreview(point geometry.Vector3) {
	res := s.snapper.Resolve(s.vertices, point)
	s.snapToStartActive = res.SnapToStart

	s.clearStepPreview()
	s.cursorMarker = s.host.AddMarker(res.Position, res.SnapToStart || res.PreviewOnly)

	if len(s.vertices) > 0 {
		last := s.vertices[len(s.vertices)-1]
		s.rubberBand = s.host.AddLine(last, res.Position)

		mid := last.Add(res.Position).Mul(0.5)
		length := last.Distance(res.Position)
		s.dimLabel = s.host.AddLabel(mid, fmt.Sprintf("%.2f m", length))
	}

	if len(s.vertices) >= 2 {
		outline := make([]geometry.Vector3, len(s.vertices), len(s.vertices)+1)
		copy(outline, s.vertices)
		outline = append(outline, res.Position)
		s.previewVolume = s.host.AddVolume(scene.Volume{
			Vertices: outline,
			Height:   s.previewHeight,
			Color:    s.previewColor,
		})
	}
}

// UndoLastPoint pops the most recent vertex. No-op when empty.
func (s *Session) UndoLastPoint() {
	if !s.active || len(s.vertices) == 0 {
		return
	}
	s.vertices = s.vertices[:len(s.vertices)-1]
	last := len(s.vertexMarkers) - 1
	s.removeHandle(&s.vertexMarkers[last])
	s.vertexMarkers = s.vertexMarkers[:last]
	s.clearStepPreview()
	s.snapToStartActive = false
}

// Finish commits the footprint. With fewer than 3 vertices the session
// is left exactly as it was and ErrNotEnoughVertices is returned.
func (s *Session) Finish() error {
	if !s.active {
		return nil
	}
	if len(s.vertices) < 3 {
		return ErrNotEnoughVertices
	}

	finished := make([]geometry.Vector3, len(s.vertices))
	copy(finished, s.vertices)

	s.clearAllArtifacts()
	s.reset()

	if s.commit != nil {
		if err := s.commit(finished); err != nil {
			fmt.Printf("Warning: footprint commit rejected: %v\n", err)
			return err
		}
	}
	return nil
}

// Cancel discards the footprint and every artifact unconditionally.
func (s *Session) Cancel() {
	if !s.active {
		return
	}
	s.clearAllArtifacts()
	s.reset()
}

func (s *Session) reset() {
	s.active = false
	s.vertices = nil
	s.snapToStartActive = false
	s.pending = nil
	s.epoch++
}

// clearStepPreview removes the per-move artifacts but keeps the
// committed vertex markers.
func (s *Session) clearStepPreview() {
	s.removeHandle(&s.cursorMarker)
	s.removeHandle(&s.rubberBand)
	s.removeHandle(&s.dimLabel)
	s.removeHandle(&s.previewVolume)
}

func (s *Session) clearAllArtifacts() {
	s.clearStepPreview()
	for i := range s.vertexMarkers {
		s.removeHandle(&s.vertexMarkers[i])
	}
	s.vertexMarkers = nil
}

// removeHandle forces the handle out of the logical set even when the
// host fails to dispose it, so a rendering-layer failure cannot leave
// the session thinking an artifact is still alive.
func (s *Session) removeHandle(h *scene.Handle) {
	if *h == scene.NoHandle {
		return
	}
	if err := s.host.Remove(*h); err != nil {
		fmt.Printf("Warning: failed to dispose preview artifact %d: %v\n", *h, err)
	}
	*h = scene.NoHandle
}
