package cells

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// MZI builds a Mach-Zehnder interferometer: an MMI splitter, two arms,
// and an MMI combiner. The bottom arm carries deltaLength extra path
// length, split across its two vertical runs.
//
//	           __Lx__
//	          |      |
//	          Ly     Ly
//	          |      |
//	splitter==|      |==combiner
//	          |      |
//	          Ly     Ly
//	          |      |
//	          | delta_length/2
//	          |__Lx__|
//
// Ports: o1 (west input), o2 (east output).
func MZI(xs xsection.CrossSection, deltaLength, lengthX, lengthY float64) (*layout.Component, error) {
	if deltaLength < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "delta_length must be >= 0, got %g", deltaLength)
	}
	radius := xs.Radius

	splitter, err := MMI1x2(xs, 2.5, 5.5, 0.25, 1.0)
	if err != nil {
		return nil, err
	}

	c := layout.NewComponent("mzi")
	split := c.AddRef(splitter)

	topStart, err := split.Port("o2")
	if err != nil {
		return nil, err
	}
	botStart, err := split.Port("o3")
	if err != nil {
		return nil, err
	}

	topEnd, err := chainArm(c, xs, topStart, []armElem{
		{bend: 90}, {straight: lengthY}, {bend: -90},
		{straight: lengthX},
		{bend: -90}, {straight: lengthY}, {bend: 90},
	}, radius)
	if err != nil {
		return nil, err
	}
	_, err = chainArm(c, xs, botStart, []armElem{
		{bend: -90}, {straight: lengthY + deltaLength/2}, {bend: 90},
		{straight: lengthX},
		{bend: 90}, {straight: lengthY + deltaLength/2}, {bend: -90},
	}, radius)
	if err != nil {
		return nil, err
	}

	comb := c.AddRef(splitter)
	comb.MirrorY()
	if err := comb.Connect("o2", topEnd); err != nil {
		return nil, err
	}

	in, err := split.Port("o1")
	if err != nil {
		return nil, err
	}
	out, err := comb.Port("o1")
	if err != nil {
		return nil, err
	}
	in.Name = "o1"
	out.Name = "o2"
	if err := c.AddPort(in); err != nil {
		return nil, err
	}
	if err := c.AddPort(out); err != nil {
		return nil, err
	}
	c.Info["delta_length"] = deltaLength
	return c, nil
}

// armElem is one element of an MZI arm: either a signed 90-degree bend or
// a straight run.
type armElem struct {
	bend     float64 // degrees, 0 for straight elements
	straight float64 // um
}

// chainArm connects bends and straights port-to-port starting from a
// port, returning the final open port. Zero-length straights are skipped.
func chainArm(c *layout.Component, xs xsection.CrossSection, start layout.Port, elems []armElem, radius float64) (layout.Port, error) {
	cur := start
	for _, e := range elems {
		var (
			comp *layout.Component
			err  error
		)
		if e.bend != 0 {
			comp, err = BendCircular(xs, radius, e.bend)
		} else {
			if e.straight <= 0 {
				continue
			}
			comp, err = Straight(xs, e.straight)
		}
		if err != nil {
			return layout.Port{}, err
		}
		ref := c.AddRef(comp)
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

func buildMZI(xreg *xsection.Registry, p layout.Params) (*layout.Component, error) {
	xs, err := resolveXS(xreg, p)
	if err != nil {
		return nil, err
	}
	deltaLength, err := floatParam(p, "delta_length")
	if err != nil {
		return nil, err
	}
	lengthX, err := floatParam(p, "length_x")
	if err != nil {
		return nil, err
	}
	lengthY, err := floatParam(p, "length_y")
	if err != nil {
		return nil, err
	}
	return MZI(xs, deltaLength, lengthX, lengthY)
}
