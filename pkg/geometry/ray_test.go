package geometry

import (
	"math"
	"testing"
)

func TestGroundIntersection(t *testing.T) {
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(0, -1, 0),
	}

	hit, ok := ray.GroundIntersection()
	if !ok {
		t.Fatal("expected a ground hit")
	}
	if hit.Y != 0 {
		t.Errorf("ground hit must be at y=0, got %v", hit.Y)
	}
}

func TestGroundIntersectionAngled(t *testing.T) {
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(1, -1, 0).Normalize(),
	}

	hit, ok := ray.GroundIntersection()
	if !ok {
		t.Fatal("expected a ground hit")
	}
	if math.Abs(hit.X-10) > 1e-9 {
		t.Errorf("expected x=10, got %v", hit.X)
	}
}

func TestGroundIntersectionParallel(t *testing.T) {
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(1, 0, 0),
	}
	if _, ok := ray.GroundIntersection(); ok {
		t.Error("parallel ray must not hit the ground")
	}
}

func TestGroundIntersectionBehind(t *testing.T) {
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(0, 1, 0),
	}
	if _, ok := ray.GroundIntersection(); ok {
		t.Error("upward ray must not hit the ground")
	}
}

func TestIntersectBox(t *testing.T) {
	box := Box{Min: NewVector3(-1, 0, -1), Max: NewVector3(1, 2, 1)}
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(0, -1, 0),
	}

	tHit, ok := ray.IntersectBox(box)
	if !ok {
		t.Fatal("expected a box hit")
	}
	if math.Abs(tHit-8) > 1e-9 {
		t.Errorf("expected t=8, got %v", tHit)
	}
}

func TestIntersectBoxMiss(t *testing.T) {
	box := Box{Min: NewVector3(5, 0, 5), Max: NewVector3(6, 2, 6)}
	ray := Ray{
		Origin:    NewVector3(0, 10, 0),
		Direction: NewVector3(0, -1, 0),
	}
	if _, ok := ray.IntersectBox(box); ok {
		t.Error("expected a miss")
	}
}

func TestIntersectBoxFromInside(t *testing.T) {
	box := Box{Min: NewVector3(-1, -1, -1), Max: NewVector3(1, 1, 1)}
	ray := Ray{
		Origin:    NewVector3(0, 0, 0),
		Direction: NewVector3(1, 0, 0),
	}
	tHit, ok := ray.IntersectBox(box)
	if !ok || tHit != 0 {
		t.Errorf("origin inside box should hit with t=0, got t=%v ok=%v", tHit, ok)
	}
}

func TestNewBoxFromPoints(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(10, 0, 0),
		NewVector3(10, 0, 10),
		NewVector3(0, 0, 10),
	}
	box := NewBoxFromPoints(points, 12)

	if box.Min != NewVector3(0, 0, 0) {
		t.Errorf("unexpected min: %v", box.Min)
	}
	if box.Max != NewVector3(10, 12, 10) {
		t.Errorf("unexpected max: %v", box.Max)
	}
}
