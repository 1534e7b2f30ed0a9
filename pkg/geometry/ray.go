package geometry

import "math"

// Ray is a half-line used for ground projection and picking.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// IntersectPlaneY intersects the ray with the horizontal plane at the
// given elevation. Returns false when the ray is parallel to the plane
// or the intersection lies behind the origin.
func (r Ray) IntersectPlaneY(y float64) (Vector3, bool) {
	if math.Abs(r.Direction.Y) < 1e-12 {
		return Vector3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return Vector3{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}

// GroundIntersection projects the ray onto the ground plane at y=0.
// This is the mathematical fallback used when the rendered ground mesh
// does not report a hit, so drawing keeps working even with the ground
// culled or hidden.
func (r Ray) GroundIntersection() (Vector3, bool) {
	p, ok := r.IntersectPlaneY(0)
	if !ok {
		return Vector3{}, false
	}
	p.Y = 0
	return p, true
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vector3
}

// NewBoxFromPoints returns the tightest box containing all points,
// expanded upward to the given height.
func NewBoxFromPoints(points []Vector3, height float64) Box {
	if len(points) == 0 {
		return Box{}
	}
	box := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	if box.Max.Y < box.Min.Y+height {
		box.Max.Y = box.Min.Y + height
	}
	return box
}

// IntersectBox intersects the ray with the box using the slab method.
// Returns the entry parameter t (>= 0) and whether the ray hits at all.
func (r Ray) IntersectBox(box Box) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	origins := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dirs := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	mins := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dirs[axis]) < 1e-12 {
			if origins[axis] < mins[axis] || origins[axis] > maxs[axis] {
				return 0, false
			}
			continue
		}
		t1 := (mins[axis] - origins[axis]) / dirs[axis]
		t2 := (maxs[axis] - origins[axis]) / dirs[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		// Origin is inside the box.
		return 0, true
	}
	return tMin, true
}
