// Package cells provides the built-in parametric cell library: straights,
// circular and Euler bends, tapers, MMIs, rings and MZIs.
//
// Cells are registered into a [layout.Registry] with RegisterAll and built
// by name with parameter overrides:
//
//	reg := layout.NewRegistry(nil)
//	cells.RegisterAll(reg, xreg)
//	c, err := reg.Build(ctx, "straight", layout.Params{"length": 25.0})
package cells

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// RegisterAll registers the built-in cells against a cross-section
// registry. Cells resolve their "cross_section" parameter by name at
// build time.
func RegisterAll(reg *layout.Registry, xreg *xsection.Registry) error {
	type cell struct {
		name     string
		defaults layout.Params
		build    func(*xsection.Registry, layout.Params) (*layout.Component, error)
	}
	list := []cell{
		{"straight", layout.Params{"length": 10.0, "cross_section": "strip"}, buildStraight},
		{"bend_circular", layout.Params{"radius": 0.0, "angle": 90.0, "cross_section": "strip"}, buildBendCircular},
		{"bend_euler", layout.Params{"radius": 0.0, "angle": 90.0, "p": 0.5, "cross_section": "strip"}, buildBendEuler},
		{"taper", layout.Params{"length": 10.0, "width1": 0.5, "width2": 1.0, "cross_section": "strip"}, buildTaper},
		{"mmi1x2", layout.Params{"width_mmi": 2.5, "length_mmi": 5.5, "gap": 0.25, "length_taper": 1.0, "cross_section": "strip"}, buildMMI1x2},
		{"ring_single", layout.Params{"radius": 0.0, "gap": 0.2, "length_x": 4.0, "cross_section": "strip"}, buildRingSingle},
		{"mzi", layout.Params{"delta_length": 10.0, "length_x": 0.1, "length_y": 2.0, "cross_section": "strip"}, buildMZI},
	}
	for _, c := range list {
		c := c
		err := reg.Register(c.name, c.defaults, func(p layout.Params) (*layout.Component, error) {
			return c.build(xreg, p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// resolveXS resolves the "cross_section" parameter against the registry.
func resolveXS(xreg *xsection.Registry, p layout.Params) (xsection.CrossSection, error) {
	name, ok := p["cross_section"].(string)
	if !ok {
		return xsection.CrossSection{}, errors.New(errors.ErrCodeInvalidCrossSection,
			"cross_section parameter must be a string")
	}
	return xreg.Get(name)
}

// floatParam reads a numeric parameter, accepting ints for convenience.
func floatParam(p layout.Params, key string) (float64, error) {
	switch v := p[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %q must be numeric, got %T", key, p[key])
	}
}
