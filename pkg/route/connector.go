package route

import (
	"math"

	"github.com/waveforge/waveforge/pkg/cells"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

const (
	// angleTol is the turn angle below which a bend collapses to nothing.
	angleTol = 1e-4
	// posTol is the positional slack tolerated on straight lengths.
	posTol = 1e-6
	// headingIterations bounds the fixed-point search for the indirect
	// connector's intermediate heading. The iteration contracts fast for
	// shallow turns but slows near U-turns.
	headingIterations = 500
	// maxEscapeDepth bounds wraparound recursion.
	maxEscapeDepth = 2
)

// Options configures a route computation.
type Options struct {
	// Shape overrides the bend shape; nil picks an Euler bend with the
	// cross-section's default radius.
	Shape BendShape
	// MinStraight drops straights shorter than this length; zero uses
	// the cross-section minimum.
	MinStraight float64
	// Steps are user waypoint directives applied in order between the
	// two ports.
	Steps []Step
}

// Ports connects two component ports. Port orientations point outward, so
// the route leaves from along its orientation and arrives at to against
// its orientation.
func Ports(from, to layout.Port, xs xsection.CrossSection, opts Options) (*Route, error) {
	return Poses(from.Pose(), to.Pose().Reversed(), xs, opts)
}

// Poses connects two poses given in travel convention: a.Orientation is
// the departure heading, b.Orientation the arrival heading.
func Poses(a, b geometry.Pose, xs xsection.CrossSection, opts Options) (*Route, error) {
	shape := opts.Shape
	if shape == nil {
		var err error
		if shape, err = shapeForXS(xs); err != nil {
			return nil, err
		}
	}
	minLen := opts.MinStraight
	if minLen == 0 {
		minLen = xs.MinLength
	}

	if len(opts.Steps) > 0 {
		return connectWithSteps(a, b, shape, minLen, opts.Steps)
	}
	return connect(a, b, shape, minLen, maxEscapeDepth)
}

// connect computes a single connection between travel poses.
func connect(a, b geometry.Pose, shape BendShape, minLen float64, depth int) (*Route, error) {
	bld := newBuilder(a, shape, minLen)
	if err := connectInto(bld, a, b, shape, minLen, depth); err != nil {
		return nil, err
	}
	return bld.done(), nil
}

// connectInto appends the connection from a to b onto an existing builder.
func connectInto(bld *builder, a, b geometry.Pose, shape BendShape, minLen float64, depth int) error {
	delta := b.Position.Sub(a.Position)

	// Collinear case: same heading and the target sits ahead on the ray.
	if geometry.AnglesClose(a.Orientation, b.Orientation, angleTol) {
		ahead := delta.Dot(a.Dir())
		off := delta.Cross(a.Dir())
		if off > -posTol && off < posTol && ahead >= -posTol {
			return bld.straight(ahead)
		}
		// Parallel offset: S-bend via the indirect connector.
		return indirect(bld, a, b, shape, minLen, depth)
	}

	// Direct case: the departure ray and the reversed arrival ray cross
	// ahead of both poses with room for the bend arms.
	if ok := direct(bld, a, b, shape); ok {
		return nil
	}

	return indirect(bld, a, b, shape, minLen, depth)
}

// direct tries the single-bend connection and reports success.
func direct(bld *builder, a, b geometry.Pose, shape BendShape) bool {
	t1, t2, ok := geometry.RayIntersection(a, b.Reversed())
	if !ok {
		return false
	}
	turn := geometry.AngleDiff(a.Orientation, b.Orientation)
	armIn, armOut := shape.ArmLengths(turn)
	if t1 < armIn-posTol || t2 < armOut-posTol {
		return false
	}
	if err := bld.straight(t1 - armIn); err != nil {
		return false
	}
	if err := bld.bend(turn); err != nil {
		return false
	}
	return bld.straight(t2-armOut) == nil
}

// indirect connects via an intermediate heading: bend, straight, bend.
// The heading is found by fixed-point iteration on the two corner points;
// when the iteration fails to produce a feasible middle straight, the
// wraparound escape is attempted.
func indirect(bld *builder, a, b geometry.Pose, shape BendShape, minLen float64, depth int) error {
	c1 := a.Position
	c2 := b.Position

	var (
		turn1, turn2 float64
		exit, entry  geometry.Point
		prevMid      float64
		headingOK    bool
	)
	for i := 0; i < headingIterations; i++ {
		span := c2.Sub(c1)
		if span.Norm() < posTol {
			headingOK = false
			break
		}
		mid := span.Angle()
		turn1 = geometry.AngleDiff(a.Orientation, mid)
		turn2 = geometry.AngleDiff(mid, b.Orientation)

		in1, out1 := shape.ArmLengths(turn1)
		in2, out2 := shape.ArmLengths(turn2)

		// A half-turn leg has no corner for the arms to meet at; only
		// the escape step can resolve it.
		if math.IsInf(in1, 0) || math.IsInf(out1, 0) ||
			math.IsInf(in2, 0) || math.IsInf(out2, 0) {
			headingOK = false
			break
		}

		corner1 := a.Position.Add(a.Dir().Scale(in1))
		corner2 := b.Position.Sub(b.Dir().Scale(out2))
		exit = corner1.Add(geometry.DirVector(mid).Scale(out1))
		entry = corner2.Sub(geometry.DirVector(mid).Scale(in2))

		c1, c2 = corner1, corner2
		if headingOK && abs(geometry.AngleDiff(prevMid, mid)) < 1e-12 {
			break
		}
		prevMid = mid
		headingOK = true
	}

	// Only touch the builder once the leg is known feasible; it may
	// already hold elements from earlier legs.
	if headingOK {
		span := entry.Sub(exit)
		mid := c2.Sub(c1).Angle()
		along := span.Dot(geometry.DirVector(mid))
		across := span.Cross(geometry.DirVector(mid))
		if along >= -posTol && across > -1e-3 && across < 1e-3 {
			if err := bld.bend(turn1); err != nil {
				return err
			}
			if err := bld.straight(along); err != nil {
				return err
			}
			return bld.bend(turn2)
		}
	}

	return escape(bld, a, b, shape, minLen, depth)
}

// escape handles the wraparound regime: the target is unreachable with
// two bends, typically because it lies behind the source with a ~180°
// heading difference. A waypoint is synthesized beside the direct span
// and the two halves are solved recursively.
func escape(bld *builder, a, b geometry.Pose, shape BendShape, minLen float64, depth int) error {
	if depth <= 0 {
		return errors.New(errors.ErrCodeRouteImpossible,
			"no path from (%.3f, %.3f)@%.1f° to (%.3f, %.3f)@%.1f°",
			a.Position.X, a.Position.Y, a.Orientation,
			b.Position.X, b.Position.Y, b.Orientation)
	}

	span := b.Position.Sub(a.Position)
	axis := span.Unit()
	if span.Norm() < posTol {
		axis = a.Dir().Rotate(90)
	}

	// Escape to the side the source already leans toward; ties go left.
	side := 1.0
	if axis.Cross(a.Dir()) < 0 {
		side = -1
	}
	armIn, armOut := shape.ArmLengths(90)
	clearance := 2 * (armIn + armOut)

	waypoint := geometry.Pose{
		Position: a.Position.Add(span.Scale(0.5)).
			Add(axis.Rotate(90 * side).Scale(clearance)),
		Orientation: axis.Angle(),
	}
	if span.Norm() < posTol {
		waypoint.Orientation = geometry.NormalizeAngle(a.Orientation + 180)
	}

	if err := connectInto(bld, a, waypoint, shape, minLen, depth-1); err != nil {
		return err
	}
	return connectInto(bld, waypoint, b, shape, minLen, depth-1)
}

// straightCell builds the straight component used by Materialize.
func straightCell(xs xsection.CrossSection, length float64) (*layout.Component, error) {
	return cells.Straight(xs, length)
}
