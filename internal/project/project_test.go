package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massinglab/gomassing/internal/building"
	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
)

type nullHost struct{ next scene.Handle }

func (n *nullHost) AddMarker(pos geometry.Vector3, emphasized bool) scene.Handle {
	n.next++
	return n.next
}
func (n *nullHost) AddLine(from, to geometry.Vector3) scene.Handle { n.next++; return n.next }
func (n *nullHost) AddLabel(pos geometry.Vector3, text string) scene.Handle {
	n.next++
	return n.next
}
func (n *nullHost) AddVolume(v scene.Volume) scene.Handle           { n.next++; return n.next }
func (n *nullHost) SetHighlight(h scene.Handle, hl scene.Highlight) {}
func (n *nullHost) Remove(h scene.Handle) error                     { return nil }

func square(x, z, size float64) []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(x, 0, z),
		geometry.NewVector3(x+size, 0, z),
		geometry.NewVector3(x+size, 0, z+size),
		geometry.NewVector3(x, 0, z+size),
	}
}

func entry(id int64, points int) BuildingData {
	b := BuildingData{ID: id, Floors: 2, FloorHeight: 3.5}
	for i := 0; i < points; i++ {
		// Any non-degenerate ring works for the importer.
		b.Points = append(b.Points, PointData{X: float64(i * i), Z: float64(i)})
	}
	return b
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg := building.NewRegistry(&nullHost{})
	cfg := building.DefaultConfig()
	cfg.Name = "Library"
	cfg.Metadata = map[string]any{"program": "cultural"}
	reg.Create(square(0, 0, 10), cfg)
	reg.Create(square(20, 0, 6), building.DefaultConfig())

	path := filepath.Join(t.TempDir(), "campus.massing.json")
	require.NoError(t, Save(path, reg))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, f.Version)
	require.Len(t, f.Buildings, 2)
	assert.Equal(t, "Library", f.Buildings[0].Name)
	assert.Equal(t, 100.0, f.Buildings[0].Area)

	fresh := building.NewRegistry(&nullHost{})
	res := Import(fresh, f)
	assert.Equal(t, Result{Created: 2}, res)

	rec, err := fresh.Get(f.Buildings[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Library", rec.Config.Name)
	assert.Equal(t, "cultural", rec.Config.Metadata["program"])
	assert.Equal(t, 100.0, rec.Area, "area is regenerated from points")
}

func TestImportSkipsMalformedEntries(t *testing.T) {
	f := File{
		Version: FormatVersion,
		Buildings: []BuildingData{
			entry(1, 4),
			entry(2, 3),
			entry(3, 2), // malformed: 2 points
			entry(4, 5),
			entry(5, 4),
		},
	}

	reg := building.NewRegistry(&nullHost{})
	res := Import(reg, f)

	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 4, reg.Count())
	_, err := reg.Get(3)
	assert.ErrorIs(t, err, building.ErrNotFound)
}

func TestImportDefaultsMissingFields(t *testing.T) {
	f := File{
		Version: FormatVersion,
		Buildings: []BuildingData{
			{
				// No floors, floor height, color or timestamp.
				ID: 1,
				Points: []PointData{
					{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 4, Z: 4},
				},
			},
		},
	}

	reg := building.NewRegistry(&nullHost{})
	res := Import(reg, f)
	require.Equal(t, Result{Created: 1}, res)

	rec, err := reg.Get(1)
	require.NoError(t, err)
	def := building.DefaultConfig()
	assert.Equal(t, def.Floors, rec.Config.Floors)
	assert.Equal(t, def.FloorHeight, rec.Config.FloorHeight)
	assert.Equal(t, def.Color, rec.Config.Color)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestImportClearsExistingRecords(t *testing.T) {
	reg := building.NewRegistry(&nullHost{})
	reg.Create(square(0, 0, 10), building.DefaultConfig())

	f := File{Version: FormatVersion, Buildings: []BuildingData{entry(7, 3)}}
	Import(reg, f)

	assert.Equal(t, 1, reg.Count())
	_, err := reg.Get(7)
	assert.NoError(t, err)
}

func TestImportFlattensElevation(t *testing.T) {
	f := File{
		Version: FormatVersion,
		Buildings: []BuildingData{
			{
				ID: 1,
				Points: []PointData{
					{X: 0, Y: 2.5, Z: 0}, {X: 4, Y: 2.5, Z: 0}, {X: 4, Y: 2.5, Z: 4},
				},
			},
		},
	}

	reg := building.NewRegistry(&nullHost{})
	Import(reg, f)
	rec, err := reg.Get(1)
	require.NoError(t, err)
	for _, v := range rec.Vertices {
		assert.Zero(t, v.Y, "footprint vertices live on the ground plane")
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestExportStableOrdering(t *testing.T) {
	reg := building.NewRegistry(&nullHost{})
	for i := 0; i < 5; i++ {
		reg.Create(square(float64(i*20), 0, 5), building.DefaultConfig())
	}

	f := Export(reg)
	require.Len(t, f.Buildings, 5)
	for i, b := range f.Buildings {
		assert.Equal(t, int64(i+1), b.ID, fmt.Sprintf("entry %d out of order", i))
	}
}
