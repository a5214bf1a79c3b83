// Package xsection defines waveguide cross-sections and transitions.
//
// A cross-section names the core width and layer plus any auxiliary
// sections (slabs, heater rails) that run parallel to the path. Cells and
// routes are extruded along their centerlines using a cross-section.
package xsection

import (
	"sort"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/tech"
)

// Section is one parallel strip of a cross-section.
type Section struct {
	Width  float64    `json:"width"`
	Offset float64    `json:"offset"` // centerline offset, um
	Layer  tech.Layer `json:"layer"`
}

// CrossSection describes the transverse geometry of a waveguide.
type CrossSection struct {
	Name      string     `json:"name"`
	Width     float64    `json:"width"`  // core width, um
	Layer     tech.Layer `json:"layer"`  // core layer
	LayerName string     `json:"layer_name"`
	Radius    float64    `json:"radius"`     // default bend radius, um
	MinLength float64    `json:"min_length"` // shortest allowed straight, um
	Sections  []Section  `json:"sections,omitempty"`
}

// Hash returns a stable content hash of the cross-section, used to key
// meshes and solver results.
func (xs CrossSection) Hash() string {
	return cache.HashParams(xs)
}

// FullWidth returns the widest transverse extent across core and sections.
func (xs CrossSection) FullWidth() float64 {
	w := xs.Width
	for _, s := range xs.Sections {
		half := s.Offset
		if half < 0 {
			half = -half
		}
		if ext := 2 * (half + s.Width/2); ext > w {
			w = ext
		}
	}
	return w
}

// Transition describes a linear taper between two cross-sections.
type Transition struct {
	From   CrossSection `json:"from"`
	To     CrossSection `json:"to"`
	Length float64      `json:"length"`
}

// Registry holds the named cross-sections of a technology.
type Registry struct {
	byName map[string]CrossSection
}

// NewRegistry builds a registry from a tech definition, resolving layer
// names against the tech's layer map.
func NewRegistry(t *tech.Tech) (*Registry, error) {
	r := &Registry{byName: make(map[string]CrossSection, len(t.CrossSections))}
	for name, cfg := range t.CrossSections {
		layer, err := t.Layers.Get(cfg.Layer)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCrossSection, err, "cross-section %s", name)
		}
		xs := CrossSection{
			Name:      name,
			Width:     cfg.Width,
			Layer:     layer,
			LayerName: cfg.Layer,
			Radius:    cfg.Radius,
			MinLength: cfg.MinLength,
		}
		for _, s := range cfg.Sections {
			sl, err := t.Layers.Get(s.Layer)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidCrossSection, err, "cross-section %s", name)
			}
			xs.Sections = append(xs.Sections, Section{Width: s.Width, Offset: s.Offset, Layer: sl})
		}
		r.byName[name] = xs
	}
	return r, nil
}

// Get looks up a cross-section by name.
func (r *Registry) Get(name string) (CrossSection, error) {
	xs, ok := r.byName[name]
	if !ok {
		return CrossSection{}, errors.New(errors.ErrCodeInvalidCrossSection,
			"unknown cross-section: %s", name)
	}
	return xs, nil
}

// Names returns all registered cross-section names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
