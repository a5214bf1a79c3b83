package geometry

import "math"

// Pose is a position with a heading. Ports, waypoints and route elements
// are all placed by poses.
type Pose struct {
	Position    Point   `json:"position"`
	Orientation float64 `json:"orientation"` // degrees, (-180, 180]
}

// At builds a pose from coordinates and a heading in degrees.
func At(x, y, deg float64) Pose {
	return Pose{Position: Pt(x, y), Orientation: NormalizeAngle(deg)}
}

// Dir returns the unit vector along the pose heading.
func (p Pose) Dir() Point { return DirVector(p.Orientation) }

// Reversed returns the same position with the heading flipped 180 degrees.
func (p Pose) Reversed() Pose {
	return Pose{Position: p.Position, Orientation: NormalizeAngle(p.Orientation + 180)}
}

// Advance returns the pose moved d units along its heading.
func (p Pose) Advance(d float64) Pose {
	return Pose{Position: p.Position.Add(p.Dir().Scale(d)), Orientation: p.Orientation}
}

// Turn returns the pose with its heading rotated by deg degrees in place.
func (p Pose) Turn(deg float64) Pose {
	return Pose{Position: p.Position, Orientation: NormalizeAngle(p.Orientation + deg)}
}

// Transform maps a local pose through a placement: rotation by deg around
// the origin, optional mirror across the x-axis (applied before rotation),
// then translation.
func (p Pose) Transform(origin Point, rotation float64, mirror bool) Pose {
	pos := p.Position
	ang := p.Orientation
	if mirror {
		pos.Y = -pos.Y
		ang = -ang
	}
	return Pose{
		Position:    pos.Rotate(rotation).Add(origin),
		Orientation: NormalizeAngle(ang + rotation),
	}
}

// RayIntersection solves a.Position + t1*a.Dir() == b.Position + t2*b.Dir().
// It returns the two ray parameters and ok=false when the headings are
// parallel within tolerance. Negative parameters mean the crossing lies
// behind the corresponding pose.
func RayIntersection(a, b Pose) (t1, t2 float64, ok bool) {
	d1 := a.Dir()
	d2 := b.Dir()
	denom := d1.Cross(d2)
	if math.Abs(denom) < Eps {
		return 0, 0, false
	}
	w := b.Position.Sub(a.Position)
	t1 = w.Cross(d2) / denom
	t2 = w.Cross(d1) / denom
	return t1, t2, true
}
