package cells

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// Straight builds a straight waveguide of the given length directly,
// without going through a registry. Routers compose straights this way.
func Straight(xs xsection.CrossSection, length float64) (*layout.Component, error) {
	if length < xs.MinLength {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"straight length %g below minimum %g", length, xs.MinLength)
	}
	c := layout.NewComponent("straight")
	extrudePath(c, xs, []geometry.Point{{X: 0, Y: 0}, {X: length, Y: 0}})
	if err := addEndPorts(c, xs, geometry.At(0, 0, 180), geometry.At(length, 0, 0)); err != nil {
		return nil, err
	}
	c.Info["length"] = length
	return c, nil
}

func buildStraight(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	length, err := floatParam(p, "length")
	if err != nil {
		return nil, err
	}
	return Straight(xs, length)
}

// extrudePath writes the cross-section's core and auxiliary sections
// along a centerline into the component.
func extrudePath(c *layout.Component, xs xsection.CrossSection, centerline []geometry.Point) {
	c.AddPolygon(xs.Layer, geometry.CenterlineToPolygon(centerline, xs.Width))
	for _, s := range xs.Sections {
		line := centerline
		if s.Offset != 0 {
			line = offsetPolyline(centerline, s.Offset)
		}
		c.AddPolygon(s.Layer, geometry.CenterlineToPolygon(line, s.Width))
	}
}

// offsetPolyline shifts a polyline laterally by d (positive to the left
// of travel), using per-vertex averaged normals.
func offsetPolyline(pts []geometry.Point, d float64) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		var dir geometry.Point
		switch {
		case i == 0:
			dir = pts[1].Sub(pts[0]).Unit()
		case i == len(pts)-1:
			dir = pts[i].Sub(pts[i-1]).Unit()
		default:
			dir = pts[i+1].Sub(pts[i-1]).Unit()
		}
		normal := geometry.Pt(-dir.Y, dir.X)
		out[i] = p.Add(normal.Scale(d))
	}
	return out
}

// addEndPorts attaches the standard o1/o2 ports at the given poses.
func addEndPorts(c *layout.Component, xs xsection.CrossSection, in, out geometry.Pose) error {
	if err := c.AddPort(layout.Port{
		Name: "o1", Center: in.Position, Orientation: in.Orientation,
		Width: xs.Width, Layer: xs.Layer, CrossSection: xs.Name,
	}); err != nil {
		return err
	}
	return c.AddPort(layout.Port{
		Name: "o2", Center: out.Position, Orientation: out.Orientation,
		Width: xs.Width, Layer: xs.Layer, CrossSection: xs.Name,
	})
}
