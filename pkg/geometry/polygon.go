package geometry

import (
	"errors"
	"math"
)

// ErrDegeneratePolygon is returned when an operation needs at least
// three vertices and got fewer.
var ErrDegeneratePolygon = errors.New("polygon needs at least 3 vertices")

// Centroid returns the arithmetic mean of the points per axis.
// Returns NaN components for an empty slice; callers must guard.
func Centroid(points []Vector3) Vector3 {
	if len(points) == 0 {
		nan := math.NaN()
		return Vector3{X: nan, Y: nan, Z: nan}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// SignedArea returns twice the signed polygon area via the shoelace sum
// over the (x,z) ground plane. Positive means counter-clockwise in this
// axis convention. Returns 0 for fewer than 3 points.
func SignedArea(points []Vector3) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Z - q.X*p.Z
	}
	return sum
}

// Area returns the absolute polygon area on the ground plane.
func Area(points []Vector3) float64 {
	return math.Abs(SignedArea(points)) / 2.0
}

// IsCounterClockwise reports whether the polygon winds counter-clockwise
// on the ground plane.
func IsCounterClockwise(points []Vector3) bool {
	return SignedArea(points) > 0
}

// EnsureCounterClockwise returns a copy of the points in counter-clockwise
// order, reversing when needed. The input is never mutated; polygons with
// fewer than 3 points pass through unchanged.
func EnsureCounterClockwise(points []Vector3) []Vector3 {
	out := make([]Vector3, len(points))
	copy(out, points)
	if len(points) < 3 || IsCounterClockwise(points) {
		return out
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SnapToGrid rounds X and Z to the nearest multiple of cellSize.
// Y is left untouched. A cellSize <= 0 returns the point unchanged.
func SnapToGrid(p Vector3, cellSize float64) Vector3 {
	if cellSize <= 0 {
		return p
	}
	return Vector3{
		X: math.Round(p.X/cellSize) * cellSize,
		Y: p.Y,
		Z: math.Round(p.Z/cellSize) * cellSize,
	}
}

// EdgeLengths returns the length of each edge of the closed polygon,
// edge i running from points[i] to points[i+1] (wrapping).
func EdgeLengths(points []Vector3) []float64 {
	if len(points) < 2 {
		return nil
	}
	lengths := make([]float64, len(points))
	for i, p := range points {
		lengths[i] = p.Distance(points[(i+1)%len(points)])
	}
	return lengths
}

// Profile is a closed 2D outline in extrusion-local coordinates,
// centered on the footprint centroid. The last point repeats the first.
type Profile struct {
	Points [][2]float64
}

// BuildProfile maps footprint vertices to profile-local 2D coordinates
// via (x-cx, -(z-cz)) and closes the loop back to the first vertex. The
// z negation compensates for the rotation the extruder applies when it
// stands the profile up along Y.
func BuildProfile(vertices []Vector3, center Vector3) (Profile, error) {
	if len(vertices) < 3 {
		return Profile{}, ErrDegeneratePolygon
	}
	points := make([][2]float64, 0, len(vertices)+1)
	for _, v := range vertices {
		points = append(points, [2]float64{v.X - center.X, -(v.Z - center.Z)})
	}
	points = append(points, points[0])
	return Profile{Points: points}, nil
}
