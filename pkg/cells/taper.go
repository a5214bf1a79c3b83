package cells

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// Taper builds a linear taper from width1 to width2 over length.
func Taper(xs xsection.CrossSection, length, width1, width2 float64) (*layout.Component, error) {
	if length <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "taper length must be positive, got %g", length)
	}
	if width1 <= 0 || width2 <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "taper widths must be positive")
	}
	c := layout.NewComponent("taper")
	c.AddPolygon(xs.Layer, geometry.Polygon{
		{X: 0, Y: -width1 / 2},
		{X: length, Y: -width2 / 2},
		{X: length, Y: width2 / 2},
		{X: 0, Y: width1 / 2},
	})
	err := c.AddPort(layout.Port{
		Name: "o1", Center: geometry.Pt(0, 0), Orientation: 180,
		Width: width1, Layer: xs.Layer, CrossSection: xs.Name,
	})
	if err != nil {
		return nil, err
	}
	err = c.AddPort(layout.Port{
		Name: "o2", Center: geometry.Pt(length, 0), Orientation: 0,
		Width: width2, Layer: xs.Layer, CrossSection: xs.Name,
	})
	if err != nil {
		return nil, err
	}
	c.Info["length"] = length
	return c, nil
}

// TaperFromTransition builds the taper described by a transition spec.
func TaperFromTransition(tr xsection.Transition) (*layout.Component, error) {
	return Taper(tr.From, tr.Length, tr.From.Width, tr.To.Width)
}

func buildTaper(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	length, err := floatParam(p, "length")
	if err != nil {
		return nil, err
	}
	w1, err := floatParam(p, "width1")
	if err != nil {
		return nil, err
	}
	w2, err := floatParam(p, "width2")
	if err != nil {
		return nil, err
	}
	return Taper(xs, length, w1, w2)
}
