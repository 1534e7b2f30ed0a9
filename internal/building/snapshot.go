package building

import (
	"fmt"
	"time"

	"github.com/massinglab/gomassing/pkg/geometry"
)

// BuildingState is one building frozen into a snapshot: everything
// needed to reconstruct the record, nothing transient.
type BuildingState struct {
	ID        int64
	Vertices  []geometry.Vector3
	Config    Config
	CreatedAt time.Time
}

// Snapshot is a deep copy of the registry's building set. Snapshots
// are immutable once captured; restoring one replaces the registry
// contents wholesale.
type Snapshot struct {
	Buildings []BuildingState
	TakenAt   time.Time
}

// Capture freezes the current building set.
func (r *Registry) Capture() Snapshot {
	snap := Snapshot{TakenAt: r.now()}
	for _, rec := range r.List() {
		verts := make([]geometry.Vector3, len(rec.Vertices))
		copy(verts, rec.Vertices)

		cfg := rec.Config
		if len(cfg.Metadata) > 0 {
			meta := make(map[string]any, len(cfg.Metadata))
			for k, v := range cfg.Metadata {
				meta[k] = v
			}
			cfg.Metadata = meta
		}

		snap.Buildings = append(snap.Buildings, BuildingState{
			ID:        rec.ID,
			Vertices:  verts,
			Config:    cfg,
			CreatedAt: rec.CreatedAt,
		})
	}
	return snap
}

// Restore replaces the registry contents with the snapshot. Buildings
// that fail to reconstruct are skipped with a warning so one bad entry
// cannot take down a whole restore.
func (r *Registry) Restore(snap Snapshot) {
	r.ClearAll()
	skipped := 0
	for _, b := range snap.Buildings {
		if _, err := r.Reinsert(b.ID, b.Vertices, b.Config, b.CreatedAt); err != nil {
			fmt.Printf("Warning: skipping building %d during restore: %v\n", b.ID, err)
			skipped++
		}
	}
	if skipped > 0 {
		fmt.Printf("Restore finished with %d skipped building(s)\n", skipped)
	}
}
