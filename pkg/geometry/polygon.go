package geometry

import "math"

// Polygon is an ordered list of vertices. Orientation is not enforced;
// Area is signed (positive for counterclockwise winding).
type Polygon []Point

// Translate returns the polygon shifted by d.
func (pg Polygon) Translate(d Point) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.Add(d)
	}
	return out
}

// Rotate returns the polygon rotated by deg degrees around center.
func (pg Polygon) Rotate(deg float64, center Point) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.RotateAround(deg, center)
	}
	return out
}

// MirrorY returns the polygon mirrored across the x-axis.
func (pg Polygon) MirrorY() Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = Point{p.X, -p.Y}
	}
	return out
}

// Area returns the signed area via the shoelace formula.
func (pg Polygon) Area() float64 {
	if len(pg) < 3 {
		return 0
	}
	var sum float64
	for i, p := range pg {
		q := pg[(i+1)%len(pg)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// Bounds returns the axis-aligned bounding box of the polygon.
// An empty polygon yields the zero Box.
func (pg Polygon) Bounds() Box {
	if len(pg) == 0 {
		return Box{}
	}
	b := Box{Min: pg[0], Max: pg[0]}
	for _, p := range pg[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Rect builds the rectangle polygon spanning (x0,y0)-(x1,y1),
// counterclockwise.
func Rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// PathLength returns the total length of the polyline through pts.
func PathLength(pts []Point) float64 {
	var sum float64
	for i := 1; i < len(pts); i++ {
		sum += pts[i].Dist(pts[i-1])
	}
	return sum
}

// CenterlineToPolygon expands a polyline into a constant-width outline by
// offsetting each segment normal by width/2 on both sides. Joints use the
// averaged normal of adjacent segments (miter join), which is adequate for
// the shallow angles produced by bend discretization.
func CenterlineToPolygon(pts []Point, width float64) Polygon {
	if len(pts) < 2 {
		return nil
	}
	half := width / 2
	normals := make([]Point, len(pts))
	for i := range pts {
		var dir Point
		switch {
		case i == 0:
			dir = pts[1].Sub(pts[0]).Unit()
		case i == len(pts)-1:
			dir = pts[i].Sub(pts[i-1]).Unit()
		default:
			dir = pts[i+1].Sub(pts[i-1]).Unit()
		}
		normals[i] = Point{-dir.Y, dir.X}
	}
	out := make(Polygon, 0, 2*len(pts))
	for i, p := range pts {
		out = append(out, p.Add(normals[i].Scale(half)))
	}
	for i := len(pts) - 1; i >= 0; i-- {
		out = append(out, pts[i].Sub(normals[i].Scale(half)))
	}
	return out
}
