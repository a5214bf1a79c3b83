package route

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// BundleOptions configures a bundle of parallel routes.
type BundleOptions struct {
	Options
	// Separation is the center-to-center spacing between neighboring
	// routes; zero uses twice the cross-section full width.
	Separation float64
}

// Bundle routes n port pairs in parallel. Each route is offset laterally
// from the bundle axis by its slot, (i - (n-1)/2) * separation, so the
// group stays evenly spaced through shared waypoints. The port lists are
// matched by index and must have equal length.
func Bundle(from, to []layout.Port, xs xsection.CrossSection, opts BundleOptions) ([]*Route, error) {
	if len(from) != len(to) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"bundle port counts differ: %d vs %d", len(from), len(to))
	}
	if len(from) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty bundle")
	}

	sep := opts.Separation
	if sep == 0 {
		sep = 2 * xs.FullWidth()
	}
	if sep < xs.FullWidth() {
		return nil, errors.New(errors.ErrCodeSeparationViolation,
			"separation %g um below cross-section width %g um", sep, xs.FullWidth())
	}

	n := len(from)
	routes := make([]*Route, n)
	for i := 0; i < n; i++ {
		offset := (float64(i) - float64(n-1)/2) * sep
		o := opts.Options
		o.Steps = offsetSteps(opts.Steps, from[i].Pose(), offset)
		r, err := Ports(from[i], to[i], xs, o)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "bundle route %d", i)
		}
		routes[i] = r
	}

	if err := checkSeparation(routes, sep); err != nil {
		return nil, err
	}
	return routes, nil
}

// offsetSteps shifts shared waypoints sideways for one bundle slot. The
// shift is normal to the departure heading so the slots fan out without
// crossing. Relative moves (dx/dy) are kept as-is; absolute coordinates
// are displaced.
func offsetSteps(steps []Step, start geometry.Pose, offset float64) []Step {
	if len(steps) == 0 || offset == 0 {
		return steps
	}
	normal := start.Dir().Rotate(90).Scale(offset)
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s
		if s.X != nil {
			x := *s.X + normal.X
			out[i].X = &x
		}
		if s.Y != nil {
			y := *s.Y + normal.Y
			out[i].Y = &y
		}
	}
	return out
}

// checkSeparation verifies neighboring routes keep at least sep spacing
// at their sampled element endpoints.
func checkSeparation(routes []*Route, sep float64) error {
	for i := 1; i < len(routes); i++ {
		a := routes[i-1].Points()
		b := routes[i].Points()
		if d := minPairDist(a, b); d < sep-posTol {
			return errors.New(errors.ErrCodeSeparationViolation,
				"routes %d and %d approach to %.3f um, need %.3f um", i-1, i, d, sep)
		}
	}
	return nil
}

// minPairDist returns the smallest distance between a point of one
// polyline and a segment of the other, checked both ways.
func minPairDist(a, b []geometry.Point) float64 {
	min := pointsToSegments(a, b)
	if d := pointsToSegments(b, a); d < min {
		min = d
	}
	return min
}

func pointsToSegments(pts, line []geometry.Point) float64 {
	best := pts[0].Dist(line[0])
	for _, p := range pts {
		for i := 1; i < len(line); i++ {
			if d := pointSegmentDist(p, line[i-1], line[i]); d < best {
				best = d
			}
		}
	}
	return best
}

func pointSegmentDist(p, a, b geometry.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}
