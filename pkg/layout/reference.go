package layout

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
)

// Reference is a placed instance of a component inside a parent:
// mirror across x (applied first), then rotation around the origin,
// then translation.
type Reference struct {
	ID       string  // unique instance ID
	Name     string  // instance name for netlists
	Cell     *Component
	Origin   geometry.Point
	Rotation float64
	Mirror   bool
}

// Move translates the reference by d and returns it for chaining.
func (r *Reference) Move(d geometry.Point) *Reference {
	r.Origin = r.Origin.Add(d)
	return r
}

// MoveTo places the reference origin at p.
func (r *Reference) MoveTo(p geometry.Point) *Reference {
	r.Origin = p
	return r
}

// Rotate adds deg degrees to the placement rotation.
func (r *Reference) Rotate(deg float64) *Reference {
	r.Rotation = geometry.NormalizeAngle(r.Rotation + deg)
	return r
}

// MirrorY toggles the mirror across the x-axis.
func (r *Reference) MirrorY() *Reference {
	r.Mirror = !r.Mirror
	return r
}

// Port returns the named port of the referenced cell mapped through the
// instance transform.
func (r *Reference) Port(name string) (Port, error) {
	p, err := r.Cell.Port(name)
	if err != nil {
		return Port{}, err
	}
	pose := p.Pose().Transform(r.Origin, r.Rotation, r.Mirror)
	p.Center = pose.Position
	p.Orientation = pose.Orientation
	return p, nil
}

// Connect places the reference so that its named port mates dst: centers
// coincident, headings opposite. The reference's mirror state is kept.
func (r *Reference) Connect(portName string, dst Port) error {
	local, err := r.Cell.Port(portName)
	if err != nil {
		return err
	}
	if local.Width > 0 && dst.Width > 0 && !floatClose(local.Width, dst.Width) {
		return errors.New(errors.ErrCodeInvalidPort,
			"port width mismatch: %s is %g, %s is %g", portName, local.Width, dst.Name, dst.Width)
	}

	localPose := local.Pose()
	if r.Mirror {
		localPose.Position.Y = -localPose.Position.Y
		localPose.Orientation = -localPose.Orientation
	}

	r.Rotation = geometry.NormalizeAngle(dst.Orientation + 180 - localPose.Orientation)
	r.Origin = dst.Center.Sub(localPose.Position.Rotate(r.Rotation))
	return nil
}

// transformPolygon maps a polygon through the instance transform.
func (r *Reference) transformPolygon(pg geometry.Polygon) geometry.Polygon {
	out := pg
	if r.Mirror {
		out = out.MirrorY()
	}
	return out.Rotate(r.Rotation, geometry.Point{}).Translate(r.Origin)
}

func floatClose(a, b float64) bool {
	d := a - b
	return d < geometry.Eps && d > -geometry.Eps
}
