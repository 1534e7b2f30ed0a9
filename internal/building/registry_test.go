package building

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
)

// fakeHost tracks live volumes and the last highlight per handle.
type fakeHost struct {
	next       scene.Handle
	volumes    map[scene.Handle]scene.Volume
	highlights map[scene.Handle]scene.Highlight
	failRemove bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		volumes:    make(map[scene.Handle]scene.Volume),
		highlights: make(map[scene.Handle]scene.Highlight),
	}
}

func (f *fakeHost) AddMarker(pos geometry.Vector3, emphasized bool) scene.Handle {
	f.next++
	return f.next
}

func (f *fakeHost) AddLine(from, to geometry.Vector3) scene.Handle {
	f.next++
	return f.next
}

func (f *fakeHost) AddLabel(pos geometry.Vector3, text string) scene.Handle {
	f.next++
	return f.next
}

func (f *fakeHost) AddVolume(v scene.Volume) scene.Handle {
	f.next++
	f.volumes[f.next] = v
	return f.next
}

func (f *fakeHost) SetHighlight(h scene.Handle, hl scene.Highlight) {
	f.highlights[h] = hl
}

func (f *fakeHost) Remove(h scene.Handle) error {
	if f.failRemove {
		return fmt.Errorf("disposal of %d failed", h)
	}
	delete(f.volumes, h)
	delete(f.highlights, h)
	return nil
}

func squareAt(x, z, size float64) []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(x, 0, z),
		geometry.NewVector3(x+size, 0, z),
		geometry.NewVector3(x+size, 0, z+size),
		geometry.NewVector3(x, 0, z+size),
	}
}

func TestCreateComputesAreaAndID(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)

	a, err := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	require.NoError(t, err)
	b, err := reg.Create(squareAt(20, 0, 5), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.Area)
	assert.Equal(t, 25.0, b.Area)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, 2, len(host.volumes))
}

func TestCreateRejectsDegenerateFootprint(t *testing.T) {
	reg := NewRegistry(newFakeHost())

	_, err := reg.Create(squareAt(0, 0, 10)[:2], DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.Zero(t, reg.Count())
}

func TestCreateNormalizesWinding(t *testing.T) {
	reg := NewRegistry(newFakeHost())

	verts := squareAt(0, 0, 4)
	if geometry.IsCounterClockwise(verts) {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	rec, err := reg.Create(verts, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, geometry.IsCounterClockwise(rec.Vertices))
	assert.Equal(t, 16.0, rec.Area)
}

func TestSelectionIsExclusive(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	b, _ := reg.Create(squareAt(20, 0, 10), DefaultConfig())

	require.NoError(t, reg.Select(a.ID))
	assert.Equal(t, SelectionSelected, a.Selection)

	require.NoError(t, reg.Select(b.ID))
	assert.Equal(t, SelectionSelected, b.Selection)
	assert.NotEqual(t, SelectionSelected, a.Selection)

	require.NoError(t, reg.Select(NoID))
	assert.Equal(t, SelectionNone, a.Selection)
	assert.Equal(t, SelectionNone, b.Selection)
	assert.Nil(t, reg.Selected())
}

func TestSelectUnknownFails(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	require.NoError(t, reg.Select(a.ID))

	err := reg.Select(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, a, reg.Selected(), "failed select must keep the current selection")
}

func TestSelectionDominatesHover(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())

	require.NoError(t, reg.Select(a.ID))
	reg.Hover(a.ID)

	assert.Equal(t, SelectionSelected, a.Selection, "a selected record is never shown hovered")
	assert.Equal(t, scene.HighlightSelected, host.highlights[a.volume])
}

func TestHoverStaleIDClears(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())

	reg.Hover(a.ID)
	assert.Equal(t, a, reg.Hovered())

	reg.Hover(42)
	assert.Nil(t, reg.Hovered(), "stale hover id must clear the hover")
}

func TestDeleteIsIdempotentAndClearsReferences(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	require.NoError(t, reg.Select(a.ID))
	reg.Hover(a.ID)

	reg.Delete(a.ID)
	assert.Zero(t, reg.Count())
	assert.Nil(t, reg.Selected())
	assert.Nil(t, reg.Hovered())
	assert.Zero(t, len(host.volumes))

	reg.Delete(a.ID) // no-op
	reg.Delete(1234) // no-op
}

func TestClearAll(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)
	reg.Create(squareAt(0, 0, 10), DefaultConfig())
	reg.Create(squareAt(20, 0, 10), DefaultConfig())

	reg.ClearAll()
	assert.Zero(t, reg.Count())
	assert.Zero(t, len(host.volumes))
	assert.Equal(t, Stats{}, reg.Stats())
}

func TestUpdateRegeneratesVolumeButNotArea(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)
	rec, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	areaBefore := rec.Area
	volumeBefore := rec.volume

	floors := 8
	updated, err := reg.Update(rec.ID, Patch{Floors: &floors})
	require.NoError(t, err)

	assert.Equal(t, areaBefore, updated.Area, "floors change must not touch the area")
	assert.Equal(t, 8*DefaultConfig().FloorHeight, updated.TotalHeight())
	assert.NotEqual(t, volumeBefore, updated.volume, "height change must re-extrude")

	v, ok := host.volumes[updated.volume]
	require.True(t, ok)
	assert.Equal(t, updated.TotalHeight(), v.Height)
}

func TestUpdateMetadataOnlySkipsReextrusion(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	rec, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())
	volumeBefore := rec.volume

	name := "Block A"
	updated, err := reg.Update(rec.ID, Patch{
		Name:     &name,
		Metadata: map[string]any{"hvac": "district heat", "windowRatio": 0.4},
	})
	require.NoError(t, err)
	assert.Equal(t, "Block A", updated.Config.Name)
	assert.Equal(t, "district heat", updated.Config.Metadata["hvac"])
	assert.Equal(t, volumeBefore, updated.volume, "metadata edits must not re-extrude")
}

func TestUpdateUnknownFails(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	floors := 2
	_, err := reg.Update(7, Patch{Floors: &floors})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPickReturnsNearestHit(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	near, _ := reg.Create(squareAt(-2, -2, 4), DefaultConfig())
	reg.Create(squareAt(20, 0, 4), DefaultConfig())

	ray := geometry.Ray{
		Origin:    geometry.NewVector3(0, 50, 0),
		Direction: geometry.NewVector3(0, -1, 0),
	}
	hit := reg.Pick(ray)
	require.NotNil(t, hit)
	assert.Equal(t, near.ID, hit.ID)

	miss := geometry.Ray{
		Origin:    geometry.NewVector3(100, 50, 100),
		Direction: geometry.NewVector3(0, -1, 0),
	}
	assert.Nil(t, reg.Pick(miss))
}

func TestPickPrefersSmallerT(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	// Two towers stacked along the ray direction; the taller one is hit first
	// by a descending ray over the same spot.
	tall := DefaultConfig()
	tall.Floors = 10
	tallRec, _ := reg.Create(squareAt(0, 0, 4), tall)

	low := DefaultConfig()
	low.Floors = 1
	reg.Create(squareAt(1, 0, 2), low)

	ray := geometry.Ray{
		Origin:    geometry.NewVector3(2, 100, 2),
		Direction: geometry.NewVector3(0, -1, 0),
	}
	hit := reg.Pick(ray)
	require.NotNil(t, hit)
	assert.Equal(t, tallRec.ID, hit.ID)
}

func TestStatsRecomputedOnDemand(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	cfg := DefaultConfig()
	cfg.Floors = 4
	reg.Create(squareAt(0, 0, 10), cfg)
	b, _ := reg.Create(squareAt(20, 0, 5), cfg)

	s := reg.Stats()
	assert.Equal(t, Stats{Count: 2, TotalArea: 125.0, TotalFloors: 8}, s)

	reg.Delete(b.ID)
	s = reg.Stats()
	assert.Equal(t, Stats{Count: 1, TotalArea: 100.0, TotalFloors: 4}, s)
}

func TestDisposalFailureStillRemovesRecord(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)
	a, _ := reg.Create(squareAt(0, 0, 10), DefaultConfig())

	host.failRemove = true
	reg.Delete(a.ID)
	assert.Zero(t, reg.Count(), "record must go even when the host fails to dispose")
}
