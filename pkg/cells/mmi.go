package cells

import (
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// MMI1x2 builds a 1x2 multimode interference splitter: a multimode body
// with one input taper and two output tapers separated by gap.
//
// Ports: o1 (west input), o2 (upper east output), o3 (lower east output).
func MMI1x2(xs xsection.CrossSection, widthMMI, lengthMMI, gap, lengthTaper float64) (*layout.Component, error) {
	taperWidth := 2 * xs.Width
	if taperWidth+gap > widthMMI {
		taperWidth = (widthMMI - gap) / 2
	}
	outOffset := (gap + taperWidth) / 2

	c := layout.NewComponent("mmi1x2")

	// Multimode body.
	c.AddPolygon(xs.Layer, geometry.Rect(lengthTaper, -widthMMI/2, lengthTaper+lengthMMI, widthMMI/2))

	// Input taper: single-mode width up to the access width.
	in, err := Taper(xs, lengthTaper, xs.Width, taperWidth)
	if err != nil {
		return nil, err
	}
	c.AddRef(in)

	// Output tapers, widening back down toward the outputs.
	for _, y := range []float64{outOffset, -outOffset} {
		out, err := Taper(xs, lengthTaper, taperWidth, xs.Width)
		if err != nil {
			return nil, err
		}
		c.AddRef(out).MoveTo(geometry.Pt(lengthTaper+lengthMMI, y))
	}

	totalLength := 2*lengthTaper + lengthMMI
	ports := []layout.Port{
		{Name: "o1", Center: geometry.Pt(0, 0), Orientation: 180, Width: xs.Width, Layer: xs.Layer, CrossSection: xs.Name},
		{Name: "o2", Center: geometry.Pt(totalLength, outOffset), Orientation: 0, Width: xs.Width, Layer: xs.Layer, CrossSection: xs.Name},
		{Name: "o3", Center: geometry.Pt(totalLength, -outOffset), Orientation: 0, Width: xs.Width, Layer: xs.Layer, CrossSection: xs.Name},
	}
	for _, p := range ports {
		if err := c.AddPort(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func buildMMI1x2(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	widthMMI, err := floatParam(p, "width_mmi")
	if err != nil {
		return nil, err
	}
	lengthMMI, err := floatParam(p, "length_mmi")
	if err != nil {
		return nil, err
	}
	gap, err := floatParam(p, "gap")
	if err != nil {
		return nil, err
	}
	lengthTaper, err := floatParam(p, "length_taper")
	if err != nil {
		return nil, err
	}
	return MMI1x2(xs, widthMMI, lengthMMI, gap, lengthTaper)
}
