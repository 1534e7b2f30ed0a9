package snap

import (
	"testing"

	"github.com/massinglab/gomassing/pkg/geometry"
)

func square() []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(5, 0, 0),
		geometry.NewVector3(5, 0, 5),
		geometry.NewVector3(0, 0, 5),
	}
}

func TestResolveGridPass(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridSize: 1.0, GridEnabled: true})

	r := e.Resolve(nil, geometry.NewVector3(1.7, 0, 2.4))
	if r.Position.X != 2.0 || r.Position.Z != 2.0 {
		t.Errorf("expected grid snap to (2, 2), got (%v, %v)", r.Position.X, r.Position.Z)
	}
	if r.SnapToStart || r.PreviewOnly {
		t.Error("no start snap expected with empty vertex list")
	}
}

func TestResolveGridDisabled(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridSize: 1.0, GridEnabled: false})

	r := e.Resolve(nil, geometry.NewVector3(1.7, 0, 2.4))
	if r.Position.X != 1.7 || r.Position.Z != 2.4 {
		t.Errorf("grid disabled must not move the point, got (%v, %v)", r.Position.X, r.Position.Z)
	}
}

func TestResolveHardSnapToStart(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridEnabled: false})

	r := e.Resolve(square(), geometry.NewVector3(1.0, 0, 1.0))
	if !r.SnapToStart {
		t.Fatal("expected hard snap to start")
	}
	if r.Position.X != 0 || r.Position.Z != 0 {
		t.Errorf("expected clamp to (0, 0), got (%v, %v)", r.Position.X, r.Position.Z)
	}
}

func TestResolvePreviewRing(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridEnabled: false})

	r := e.Resolve(square(), geometry.NewVector3(4.0, 0, 0.1))
	if r.SnapToStart {
		t.Error("outside the hard threshold must not snap")
	}
	if !r.PreviewOnly {
		t.Error("inside the preview threshold must set PreviewOnly")
	}
	if r.Position.X != 4.0 {
		t.Error("preview ring must not move the point")
	}
}

func TestResolveOutsideBothThresholds(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridEnabled: false})

	r := e.Resolve(square(), geometry.NewVector3(20, 0, 20))
	if r.SnapToStart || r.PreviewOnly {
		t.Error("far point must not trigger any snap state")
	}
}

func TestResolveNeedsThreeVertices(t *testing.T) {
	e := NewEngine(Config{HardDistance: 2.5, PreviewDistance: 6.0, GridEnabled: false})

	two := square()[:2]
	r := e.Resolve(two, geometry.NewVector3(0.1, 0, 0.1))
	if r.SnapToStart || r.PreviewOnly {
		t.Error("start snap must not engage before the polygon could close")
	}
}

func TestNewEngineRepairsInvertedThresholds(t *testing.T) {
	e := NewEngine(Config{HardDistance: 6.0, PreviewDistance: 2.0})
	cfg := e.Config()
	if cfg.HardDistance >= cfg.PreviewDistance {
		t.Errorf("engine must keep hard < preview, got %v >= %v", cfg.HardDistance, cfg.PreviewDistance)
	}
}
