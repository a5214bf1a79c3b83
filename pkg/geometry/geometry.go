// Package geometry provides the 2D primitives used by layout and routing:
// points, poses (position plus orientation), polygons and bounding boxes.
//
// All coordinates are in micrometers and all angles in degrees, matching
// the conventions of photonic layout tools. Angles are normalized to the
// half-open interval (-180, 180].
package geometry

import "math"

// Eps is the absolute tolerance used for geometric comparisons.
// Coordinates are micrometers, so 1e-6 corresponds to a picometer.
const Eps = 1e-6

// Point is a 2D coordinate or displacement vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product p · q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the scalar cross product p × q.
// Positive when q lies counterclockwise of p.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Norm() }

// Angle returns the direction of p in degrees, normalized to (-180, 180].
func (p Point) Angle() float64 {
	return NormalizeAngle(math.Atan2(p.Y, p.X) * 180 / math.Pi)
}

// Rotate returns p rotated by deg degrees around the origin.
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// RotateAround returns p rotated by deg degrees around center.
func (p Point) RotateAround(deg float64, center Point) Point {
	return p.Sub(center).Rotate(deg).Add(center)
}

// Unit returns the unit vector in the direction of p.
// The zero vector is returned unchanged.
func (p Point) Unit() Point {
	n := p.Norm()
	if n < Eps {
		return Point{}
	}
	return p.Scale(1 / n)
}

// Eq reports whether p and q coincide within Eps.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) < Eps && math.Abs(p.Y-q.Y) < Eps
}

// DirVector returns the unit vector pointing along deg degrees.
func DirVector(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{c, s}
}

// NormalizeAngle maps deg into the half-open interval (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// AngleDiff returns the signed smallest rotation from a to b in degrees,
// normalized to (-180, 180].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// AnglesClose reports whether two angles are equal within tol degrees,
// accounting for wraparound.
func AnglesClose(a, b, tol float64) bool {
	return math.Abs(AngleDiff(a, b)) <= tol
}
