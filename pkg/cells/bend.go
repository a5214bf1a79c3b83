package cells

import (
	"math"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// BendCircular builds a circular-arc bend. angle is in degrees, positive
// turning left (counterclockwise); radius 0 uses the cross-section
// default. The bend starts at the origin heading east.
func BendCircular(xs xsection.CrossSection, radius, angle float64) (*layout.Component, error) {
	radius = defaultRadius(xs, radius)
	if err := checkBend(radius, angle); err != nil {
		return nil, err
	}
	c := layout.NewComponent("bend_circular")
	pts := arcPoints(radius, angle)
	extrudePath(c, xs, pts)
	end := geometry.Pose{Position: pts[len(pts)-1], Orientation: geometry.NormalizeAngle(angle)}
	if err := addEndPorts(c, xs, geometry.At(0, 0, 180), end); err != nil {
		return nil, err
	}
	c.Info["length"] = radius * math.Abs(angle) * math.Pi / 180
	c.Info["radius"] = radius
	return c, nil
}

// BendEuler builds an Euler (clothoid) bend: curvature ramps linearly
// from zero to 1/radius and back, with an optional circular middle. p is
// the fraction of the turn carried by the clothoid ends (p=1 is a pure
// clothoid, p→0 approaches a circular bend). Euler bends trade footprint
// for lower transition loss.
func BendEuler(xs xsection.CrossSection, radius, angle, p float64) (*layout.Component, error) {
	radius = defaultRadius(xs, radius)
	if err := checkBend(radius, angle); err != nil {
		return nil, err
	}
	if p <= 0 || p > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "euler fraction p must be in (0, 1], got %g", p)
	}
	c := layout.NewComponent("bend_euler")
	pts, length := eulerPoints(radius, angle, p)
	extrudePath(c, xs, pts)
	end := geometry.Pose{Position: pts[len(pts)-1], Orientation: geometry.NormalizeAngle(angle)}
	if err := addEndPorts(c, xs, geometry.At(0, 0, 180), end); err != nil {
		return nil, err
	}
	c.Info["length"] = length
	c.Info["radius"] = radius
	c.Info["p"] = p
	return c, nil
}

func buildBendCircular(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	radius, err := floatParam(p, "radius")
	if err != nil {
		return nil, err
	}
	angle, err := floatParam(p, "angle")
	if err != nil {
		return nil, err
	}
	return BendCircular(xs, radius, angle)
}

func buildBendEuler(xreg *xsection.Registry, params layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, params)
	if err != nil {
		return nil, err
	}
	radius, err := floatParam(params, "radius")
	if err != nil {
		return nil, err
	}
	angle, err := floatParam(params, "angle")
	if err != nil {
		return nil, err
	}
	p, err := floatParam(params, "p")
	if err != nil {
		return nil, err
	}
	return BendEuler(xs, radius, angle, p)
}

func defaultRadius(xs xsection.CrossSection, radius float64) float64 {
	if radius == 0 {
		return xs.Radius
	}
	return radius
}

func checkBend(radius, angle float64) error {
	if radius <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bend radius must be positive, got %g", radius)
	}
	if angle == 0 || math.Abs(angle) > 360 {
		return errors.New(errors.ErrCodeInvalidInput, "bend angle must be in [-360, 360] and nonzero, got %g", angle)
	}
	return nil
}

// arcPoints samples a circular arc starting at the origin heading east.
// One point per degree keeps the facet error below 0.01% of the radius.
func arcPoints(radius, angleDeg float64) []geometry.Point {
	n := int(math.Ceil(math.Abs(angleDeg))) + 1
	if n < 2 {
		n = 2
	}
	sign := 1.0
	if angleDeg < 0 {
		sign = -1
	}
	a := math.Abs(angleDeg) * math.Pi / 180
	pts := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		t := a * float64(i) / float64(n-1)
		pts[i] = geometry.Pt(radius*math.Sin(t), sign*radius*(1-math.Cos(t)))
	}
	return pts
}

// EulerGeometry returns the end pose and path length of an Euler bend
// starting at the origin heading east, without building a component.
// The router uses this to size bend arms.
func EulerGeometry(radius, angleDeg, p float64) (geometry.Pose, float64) {
	pts, length := eulerPoints(radius, angleDeg, p)
	return geometry.Pose{
		Position:    pts[len(pts)-1],
		Orientation: geometry.NormalizeAngle(angleDeg),
	}, length
}

// eulerPoints integrates the Euler bend centerline and returns the points
// and the total path length. The curvature profile is a symmetric
// trapezoid peaking at 1/radius.
func eulerPoints(radius, angleDeg, p float64) ([]geometry.Point, float64) {
	sign := 1.0
	if angleDeg < 0 {
		sign = -1
	}
	alpha := math.Abs(angleDeg) * math.Pi / 180
	k := 1 / radius

	// Arc length of each clothoid end and of the circular middle. Each
	// clothoid end sweeps p*alpha/2 with curvature ramping 0 -> k, so its
	// mean curvature is k/2.
	s1 := p * alpha / k
	s2 := (1 - p) * alpha * radius
	total := 2*s1 + s2

	curvature := func(s float64) float64 {
		switch {
		case s < s1:
			return k * s / s1
		case s < s1+s2:
			return k
		default:
			return k * (total - s) / s1
		}
	}

	const steps = 400
	ds := total / steps
	pts := make([]geometry.Point, 0, steps+1)
	pos := geometry.Point{}
	theta := 0.0
	pts = append(pts, pos)
	for i := 0; i < steps; i++ {
		s := (float64(i) + 0.5) * ds
		theta += sign * curvature(s) * ds
		pos = pos.Add(geometry.Pt(math.Cos(theta), math.Sin(theta)).Scale(ds))
		pts = append(pts, pos)
	}
	return pts, total
}
