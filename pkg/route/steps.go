package route

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
)

// Step is a waypoint directive. Absolute coordinates (X, Y) and relative
// moves (DX, DY) may be mixed; unset fields inherit from the previous
// waypoint. Exit, when set, forces the travel heading leaving the
// waypoint; otherwise the heading toward the next waypoint is used.
type Step struct {
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	DX *float64 `json:"dx,omitempty"`
	DY *float64 `json:"dy,omitempty"`
	// Exit is the heading in degrees leaving this waypoint.
	Exit *float64 `json:"exit,omitempty"`
}

// position resolves the step against the previous waypoint position.
func (s Step) position(prev geometry.Point) (geometry.Point, error) {
	p := prev
	if s.X != nil && s.DX != nil {
		return p, errors.New(errors.ErrCodeInvalidInput, "step sets both x and dx")
	}
	if s.Y != nil && s.DY != nil {
		return p, errors.New(errors.ErrCodeInvalidInput, "step sets both y and dy")
	}
	if s.X != nil {
		p.X = *s.X
	}
	if s.DX != nil {
		p.X += *s.DX
	}
	if s.Y != nil {
		p.Y = *s.Y
	}
	if s.DY != nil {
		p.Y += *s.DY
	}
	return p, nil
}

// connectWithSteps expands the steps into virtual waypoint poses and
// routes each leg with the single-connection core.
func connectWithSteps(a, b geometry.Pose, shape BendShape, minLen float64, steps []Step) (*Route, error) {
	waypoints := make([]geometry.Pose, 0, len(steps)+2)
	waypoints = append(waypoints, a)

	prev := a.Position
	for i, s := range steps {
		pos, err := s.position(prev)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "step %d", i)
		}
		if pos.Eq(prev) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "step %d does not move", i)
		}
		wp := geometry.Pose{Position: pos}
		if s.Exit != nil {
			wp.Orientation = geometry.NormalizeAngle(*s.Exit)
		}
		waypoints = append(waypoints, wp)
		prev = pos
	}
	waypoints = append(waypoints, b)

	// Fill unset headings: each waypoint without an Exit points toward
	// the next waypoint position.
	for i := 1; i < len(waypoints)-1; i++ {
		if steps[i-1].Exit != nil {
			continue
		}
		next := waypoints[i+1].Position
		waypoints[i].Orientation = next.Sub(waypoints[i].Position).Angle()
	}

	bld := newBuilder(a, shape, minLen)
	for i := 0; i < len(waypoints)-1; i++ {
		if err := connectInto(bld, waypoints[i], waypoints[i+1], shape, minLen, maxEscapeDepth); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "routing leg %d", i)
		}
	}
	return bld.done(), nil
}
