// Package project serializes the building registry to a versioned JSON
// file and reconstructs it on load. A malformed building entry is
// skipped with a warning instead of aborting the whole import.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/massinglab/gomassing/internal/building"
	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
)

// FormatVersion is written into every saved project.
const FormatVersion = "1.0"

// File is the on-disk project structure.
type File struct {
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	Buildings []BuildingData `json:"buildings"`
}

// PointData is a footprint vertex in the save file.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BuildingData is one saved building. Area and TotalHeight are stored
// for external consumers; on import the geometry is regenerated from
// Points, so stale derived values cannot corrupt the registry.
type BuildingData struct {
	ID          int64          `json:"id"`
	Points      []PointData    `json:"points"`
	Area        float64        `json:"area"`
	Floors      int            `json:"floors"`
	FloorHeight float64        `json:"floorHeight"`
	Color       uint32         `json:"color"`
	TotalHeight float64        `json:"totalHeight"`
	CreatedAt   time.Time      `json:"createdAt"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Export freezes the registry into a File.
func Export(reg *building.Registry) File {
	f := File{
		Version:   FormatVersion,
		CreatedAt: time.Now(),
	}
	for _, rec := range reg.List() {
		points := make([]PointData, 0, len(rec.Vertices))
		for _, v := range rec.Vertices {
			points = append(points, PointData{X: v.X, Y: v.Y, Z: v.Z})
		}
		f.Buildings = append(f.Buildings, BuildingData{
			ID:          rec.ID,
			Points:      points,
			Area:        rec.Area,
			Floors:      rec.Config.Floors,
			FloorHeight: rec.Config.FloorHeight,
			Color:       uint32(rec.Config.Color),
			TotalHeight: rec.TotalHeight(),
			CreatedAt:   rec.CreatedAt,
			Name:        rec.Config.Name,
			Description: rec.Config.Description,
			Metadata:    rec.Config.Metadata,
		})
	}
	return f
}

// Save writes the registry to path as indented JSON.
func Save(path string, reg *building.Registry) error {
	data, err := json.MarshalIndent(Export(reg), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	fmt.Printf("Saved project to: %s\n", path)
	return nil
}

// Load reads and parses a project file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	return f, nil
}

// Result reports how an import went.
type Result struct {
	Created int
	Skipped int
}

// Import reconstructs the file's buildings into the registry. The
// registry is cleared first; entries with fewer than 3 points are
// skipped with a warning and counted, missing optional fields fall
// back to defaults.
func Import(reg *building.Registry, f File) Result {
	reg.ClearAll()

	var res Result
	for i, b := range f.Buildings {
		if len(b.Points) < 3 {
			fmt.Printf("Warning: skipping building entry %d (id %d): %d point(s), need at least 3\n", i, b.ID, len(b.Points))
			res.Skipped++
			continue
		}

		vertices := make([]geometry.Vector3, 0, len(b.Points))
		for _, p := range b.Points {
			vertices = append(vertices, geometry.NewVector3(p.X, 0, p.Z))
		}

		cfg := building.DefaultConfig()
		if b.Floors >= 1 {
			cfg.Floors = b.Floors
		}
		if b.FloorHeight > 0 {
			cfg.FloorHeight = b.FloorHeight
		}
		if b.Color != 0 {
			cfg.Color = scene.Color(b.Color)
		}
		cfg.Name = b.Name
		cfg.Description = b.Description
		cfg.Metadata = b.Metadata

		createdAt := b.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		var err error
		if b.ID > 0 {
			_, err = reg.Reinsert(b.ID, vertices, cfg, createdAt)
		} else {
			_, err = reg.Create(vertices, cfg)
		}
		if err != nil {
			fmt.Printf("Warning: skipping building entry %d (id %d): %v\n", i, b.ID, err)
			res.Skipped++
			continue
		}
		res.Created++
	}

	if res.Skipped > 0 {
		fmt.Printf("Import finished: %d building(s) created, %d skipped\n", res.Created, res.Skipped)
	}
	return res
}
