package route

import (
	"math"

	"github.com/waveforge/waveforge/pkg/cells"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// BendShape abstracts the bend geometry the router composes with. The
// router only needs three things from a bend of a given turn angle: where
// it ends, how far its endpoints sit from the corner point (the arm
// lengths), and how to build the actual component.
type BendShape interface {
	// Name identifies the shape in route summaries.
	Name() string
	// EndPose returns the pose at the end of a bend that starts at the
	// origin heading east. turnDeg is signed, positive turning left.
	EndPose(turnDeg float64) geometry.Pose
	// ArmLengths returns the distances from the bend's start and end
	// points to the corner (the intersection of the entry and exit
	// tangents). For symmetric shapes both arms are equal.
	ArmLengths(turnDeg float64) (in, out float64)
	// PathLength returns the centerline length of the bend.
	PathLength(turnDeg float64) float64
	// Build constructs the bend component for Materialize.
	Build(xs xsection.CrossSection, turnDeg float64) (*layout.Component, error)
	// MaxTurn returns the largest |turn| the shape supports in a single
	// bend. The router splits larger turns.
	MaxTurn() float64
}

// CircularBend is a constant-radius arc bend. Arm lengths follow the
// tangent-length closed form R*tan(|turn|/2).
type CircularBend struct {
	Radius float64
}

// Name identifies the shape.
func (b CircularBend) Name() string { return "circular" }

// EndPose returns the arc end pose.
func (b CircularBend) EndPose(turnDeg float64) geometry.Pose {
	t := math.Abs(turnDeg) * math.Pi / 180
	sign := 1.0
	if turnDeg < 0 {
		sign = -1
	}
	return geometry.Pose{
		Position:    geometry.Pt(b.Radius*math.Sin(t), sign*b.Radius*(1-math.Cos(t))),
		Orientation: geometry.NormalizeAngle(turnDeg),
	}
}

// ArmLengths returns the symmetric tangent length R*tan(|turn|/2).
func (b CircularBend) ArmLengths(turnDeg float64) (float64, float64) {
	t := math.Abs(turnDeg) * math.Pi / 180
	arm := b.Radius * math.Tan(t/2)
	return arm, arm
}

// PathLength returns the arc length.
func (b CircularBend) PathLength(turnDeg float64) float64 {
	return b.Radius * math.Abs(turnDeg) * math.Pi / 180
}

// Build constructs a circular bend component.
func (b CircularBend) Build(xs xsection.CrossSection, turnDeg float64) (*layout.Component, error) {
	return cells.BendCircular(xs, b.Radius, turnDeg)
}

// MaxTurn caps single circular bends just below a U-turn; the tangent
// length diverges at 180 degrees.
func (b CircularBend) MaxTurn() float64 { return 179 }

// EulerBend is a clothoid bend with minimum radius Radius and clothoid
// fraction P (see cells.BendEuler). Arm lengths are derived numerically
// from the integrated end pose.
type EulerBend struct {
	Radius float64
	P      float64
}

// Name identifies the shape.
func (b EulerBend) Name() string { return "euler" }

// EndPose returns the integrated clothoid end pose.
func (b EulerBend) EndPose(turnDeg float64) geometry.Pose {
	end, _ := cells.EulerGeometry(b.Radius, turnDeg, b.P)
	return end
}

// ArmLengths intersects the entry tangent (east from the origin) with the
// reversed exit tangent to find the corner, then measures both arms.
// Parallel tangents have no corner: near turn 0 both arms vanish with the
// turn, near a half-turn they diverge.
func (b EulerBend) ArmLengths(turnDeg float64) (float64, float64) {
	end := b.EndPose(turnDeg)
	t1, t2, ok := geometry.RayIntersection(
		geometry.At(0, 0, 0),
		geometry.Pose{Position: end.Position, Orientation: end.Orientation}.Reversed(),
	)
	if !ok {
		if math.Abs(geometry.NormalizeAngle(turnDeg)) < 90 {
			return 0, 0
		}
		// Half-turn: the exit tangent is antiparallel to the entry, so
		// the corner recedes to infinity, like the circular tangent
		// length at 180 degrees.
		return math.Inf(1), math.Inf(1)
	}
	return t1, t2
}

// PathLength returns the integrated clothoid length.
func (b EulerBend) PathLength(turnDeg float64) float64 {
	_, length := cells.EulerGeometry(b.Radius, turnDeg, b.P)
	return length
}

// Build constructs an Euler bend component.
func (b EulerBend) Build(xs xsection.CrossSection, turnDeg float64) (*layout.Component, error) {
	return cells.BendEuler(xs, b.Radius, turnDeg, b.P)
}

// MaxTurn caps single Euler bends just below a U-turn, matching the
// circular shape's corner construction.
func (b EulerBend) MaxTurn() float64 { return 179 }

// shapeForXS picks the default bend shape for a cross-section.
func shapeForXS(xs xsection.CrossSection) (BendShape, error) {
	if xs.Radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidCrossSection,
			"cross-section %s has no bend radius", xs.Name)
	}
	return EulerBend{Radius: xs.Radius, P: 0.5}, nil
}
