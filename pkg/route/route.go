// Package route implements the all-angle interconnect router: given two
// ports with arbitrary positions and orientations, it computes a
// bend+straight path between them.
//
// The router distinguishes four regimes:
//
//   - straight: the ports are collinear and facing each other
//   - direct: the port rays intersect with enough room for one bend
//   - indirect: no usable intersection; an intermediate heading is found
//     by fixed-point iteration, giving a two-bend (S or U shaped) path
//   - wraparound: the target lies behind the source facing away; the
//     router synthesizes a perpendicular escape waypoint and solves the
//     two halves recursively
//
// User waypoints ("steps") and bundles of parallel routes with a
// separation constraint build on the same single-connection core.
package route

import (
	"fmt"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// ElementKind discriminates route elements.
type ElementKind int

const (
	// ElementStraight is a straight run.
	ElementStraight ElementKind = iota
	// ElementBend is a bend through a signed turn angle.
	ElementBend
)

// Element is one piece of a route: a straight of a given length or a
// bend through a signed turn.
type Element struct {
	Kind   ElementKind `json:"kind"`
	Length float64     `json:"length,omitempty"` // um, straights only
	Turn   float64     `json:"turn,omitempty"`   // degrees, bends only
}

// Route is a computed connection: an ordered list of elements starting at
// Start, plus summary figures.
type Route struct {
	Start    geometry.Pose `json:"start"`
	Elements []Element     `json:"elements"`
	Length   float64       `json:"length"` // total centerline length, um
	NBends   int           `json:"n_bends"`

	shape BendShape
}

// Shape returns the bend shape the route was computed with.
func (r *Route) Shape() BendShape { return r.shape }

// End replays the elements to return the final pose (position and travel
// heading at arrival).
func (r *Route) End() geometry.Pose {
	cur := r.Start
	for _, e := range r.Elements {
		cur = advance(cur, e, r.shape)
	}
	return cur
}

// Points returns the route centerline as a coarse polyline: element
// endpoints only, bends contributing their corner-free end positions.
// Useful for previews and length checks, not for extrusion.
func (r *Route) Points() []geometry.Point {
	pts := []geometry.Point{r.Start.Position}
	cur := r.Start
	for _, e := range r.Elements {
		cur = advance(cur, e, r.shape)
		pts = append(pts, cur.Position)
	}
	return pts
}

// advance maps a pose through one element.
func advance(cur geometry.Pose, e Element, shape BendShape) geometry.Pose {
	switch e.Kind {
	case ElementStraight:
		return cur.Advance(e.Length)
	default:
		end := shape.EndPose(e.Turn)
		return geometry.Pose{
			Position:    cur.Position.Add(end.Position.Rotate(cur.Orientation)),
			Orientation: geometry.NormalizeAngle(cur.Orientation + e.Turn),
		}
	}
}

// Materialize instantiates the route as straight and bend cells inside
// parent, connected port to port starting at the from port. It returns
// the final open port, which mates the destination.
func (r *Route) Materialize(parent *layout.Component, xs xsection.CrossSection, from layout.Port) (layout.Port, error) {
	cur := from
	for i, e := range r.Elements {
		var (
			comp *layout.Component
			err  error
		)
		switch e.Kind {
		case ElementStraight:
			if e.Length < xs.MinLength {
				continue
			}
			comp, err = straightCell(xs, e.Length)
		default:
			comp, err = r.shape.Build(xs, e.Turn)
		}
		if err != nil {
			return layout.Port{}, errors.Wrap(errors.ErrCodeInternal, err,
				"materializing route element %d", i)
		}
		ref := parent.AddRef(comp)
		if err := ref.Connect("o1", cur); err != nil {
			return layout.Port{}, err
		}
		cur, err = ref.Port("o2")
		if err != nil {
			return layout.Port{}, err
		}
	}
	return cur, nil
}

// String summarizes the route for logs.
func (r *Route) String() string {
	return fmt.Sprintf("route{%d elements, %d bends, %.3f um}", len(r.Elements), r.NBends, r.Length)
}

// builder accumulates elements while tracking the cursor pose.
type builder struct {
	route  Route
	cursor geometry.Pose
	minLen float64
}

func newBuilder(start geometry.Pose, shape BendShape, minLen float64) *builder {
	return &builder{
		route:  Route{Start: start, shape: shape},
		cursor: start,
		minLen: minLen,
	}
}

// straight appends a straight run; lengths below the minimum straight
// threshold are dropped as numerical noise.
func (b *builder) straight(length float64) error {
	if length < -posTol {
		return errors.New(errors.ErrCodeRouteImpossible, "negative straight of %g um", length)
	}
	if length < b.minLen || length <= posTol {
		return nil
	}
	b.route.Elements = append(b.route.Elements, Element{Kind: ElementStraight, Length: length})
	b.route.Length += length
	b.cursor = b.cursor.Advance(length)
	return nil
}

// bend appends a bend; turns below the angle tolerance are dropped.
// Turns beyond the shape's single-bend limit are split evenly.
func (b *builder) bend(turn float64) error {
	turn = geometry.NormalizeAngle(turn)
	if turn > -angleTol && turn < angleTol {
		return nil
	}
	max := b.route.shape.MaxTurn()
	parts := 1
	for abs(turn)/float64(parts) > max {
		parts++
	}
	per := turn / float64(parts)
	for i := 0; i < parts; i++ {
		e := Element{Kind: ElementBend, Turn: per}
		b.route.Elements = append(b.route.Elements, e)
		b.route.Length += b.route.shape.PathLength(per)
		b.route.NBends++
		b.cursor = advance(b.cursor, e, b.route.shape)
	}
	return nil
}

func (b *builder) done() *Route {
	r := b.route
	return &r
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
