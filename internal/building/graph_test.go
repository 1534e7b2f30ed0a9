package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureRestoreRoundTrip(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry(host)

	cfg := DefaultConfig()
	cfg.Name = "Hall"
	cfg.Metadata = map[string]any{"program": "office"}
	a, _ := reg.Create(squareAt(0, 0, 10), cfg)
	reg.Create(squareAt(20, 0, 5), DefaultConfig())

	snap := reg.Capture()
	require.Len(t, snap.Buildings, 2)

	// Mutate the registry after the capture.
	reg.Delete(a.ID)
	reg.Create(squareAt(40, 0, 3), DefaultConfig())

	reg.Restore(snap)
	assert.Equal(t, 2, reg.Count())

	restored, err := reg.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall", restored.Config.Name)
	assert.Equal(t, "office", restored.Config.Metadata["program"])
	assert.Equal(t, 100.0, restored.Area)
	assert.Equal(t, 2, len(host.volumes), "restore must rebuild the host volumes")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	cfg := DefaultConfig()
	cfg.Metadata = map[string]any{"hvac": "vrf"}
	rec, _ := reg.Create(squareAt(0, 0, 10), cfg)

	snap := reg.Capture()

	// Mutating the live record must not leak into the snapshot.
	reg.Update(rec.ID, Patch{Metadata: map[string]any{"hvac": "radiant"}})
	assert.Equal(t, "vrf", snap.Buildings[0].Config.Metadata["hvac"])
}

func TestRestoreContinuesIDSequence(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	reg.Create(squareAt(0, 0, 10), DefaultConfig())
	reg.Create(squareAt(20, 0, 10), DefaultConfig())
	snap := reg.Capture()

	fresh := NewRegistry(newFakeHost())
	fresh.Restore(snap)

	rec, err := fresh.Create(squareAt(40, 0, 10), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID, "new ids must not collide with restored ones")
}

func TestGraphCommitAndCheckout(t *testing.T) {
	reg := NewRegistry(newFakeHost())
	graph := NewGraph()

	reg.Create(squareAt(0, 0, 10), DefaultConfig())
	base := graph.Commit("base massing", reg.Capture())

	reg.Create(squareAt(20, 0, 10), DefaultConfig())
	dense := graph.Commit("denser option", reg.Capture())
	assert.Equal(t, base.ID, dense.ParentID)

	// Branch: go back to base and commit a different alternative.
	snap, err := graph.Checkout(base.ID)
	require.NoError(t, err)
	reg.Restore(snap)
	assert.Equal(t, 1, reg.Count())

	reg.Create(squareAt(-20, 0, 6), DefaultConfig())
	alt := graph.Commit("west wing", reg.Capture())
	assert.Equal(t, base.ID, alt.ParentID)

	children := graph.Children(base.ID)
	require.Len(t, children, 2)
	assert.Equal(t, 3, graph.Len())

	// Checking out the dense branch restores its two buildings.
	snap, err = graph.Checkout(dense.ID)
	require.NoError(t, err)
	reg.Restore(snap)
	assert.Equal(t, 2, reg.Count())
}

func TestGraphCheckoutUnknown(t *testing.T) {
	graph := NewGraph()
	_, err := graph.Checkout("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
