package cells

import (
	"math"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// RingSingle builds an all-pass ring resonator: a bus waveguide coupled
// to a racetrack ring across gap. lengthX is the straight coupling
// section of the racetrack; radius 0 uses the cross-section default.
//
// Ports: o1 (west), o2 (east) on the bus.
func RingSingle(xs xsection.CrossSection, radius, gap, lengthX float64) (*layout.Component, error) {
	radius = defaultRadius(xs, radius)
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ring radius must be positive")
	}
	if gap <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "coupling gap must be positive, got %g", gap)
	}

	busLength := lengthX + 2*radius
	c := layout.NewComponent("ring_single")

	bus, err := Straight(xs, busLength)
	if err != nil {
		return nil, err
	}
	c.AddRef(bus)

	// Racetrack centerline, built counterclockwise starting at the left
	// end of the coupling section.
	cy := gap + xs.Width // centerline-to-centerline offset from the bus
	x0 := radius
	var ring []geometry.Point
	appendArc := func(center geometry.Point, start, sweep float64) {
		n := int(math.Ceil(math.Abs(sweep))) + 1
		for i := 0; i <= n; i++ {
			t := (start + sweep*float64(i)/float64(n)) * math.Pi / 180
			ring = append(ring, center.Add(geometry.Pt(math.Cos(t), math.Sin(t)).Scale(radius)))
		}
	}
	ring = append(ring, geometry.Pt(x0, cy))
	ring = append(ring, geometry.Pt(x0+lengthX, cy))
	appendArc(geometry.Pt(x0+lengthX, cy+radius), -90, 180)
	ring = append(ring, geometry.Pt(x0, cy+2*radius))
	appendArc(geometry.Pt(x0, cy+radius), 90, 180)

	c.AddPolygon(xs.Layer, geometry.CenterlineToPolygon(ring, xs.Width))

	for name, p := range bus.Ports {
		port := p
		port.Name = name
		if err := c.AddPort(port); err != nil {
			return nil, err
		}
	}
	c.Info["radius"] = radius
	c.Info["gap"] = gap
	c.Info["circumference"] = 2*lengthX + 2*math.Pi*radius
	return c, nil
}

func buildRingSingle(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	radius, err := floatParam(p, "radius")
	if err != nil {
		return nil, err
	}
	gap, err := floatParam(p, "gap")
	if err != nil {
		return nil, err
	}
	lengthX, err := floatParam(p, "length_x")
	if err != nil {
		return nil, err
	}
	return RingSingle(xs, radius, gap, lengthX)
}
