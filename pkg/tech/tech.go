package tech

import (
	"github.com/BurntSushi/toml"

	"github.com/waveforge/waveforge/pkg/errors"
)

// CrossSectionConfig is the tech-file description of a cross-section.
// The xsection package turns these into usable cross-sections.
type CrossSectionConfig struct {
	Width     float64         `toml:"width" json:"width"`                             // um
	Layer     string          `toml:"layer" json:"layer"`                             // layer name
	Radius    float64         `toml:"radius" json:"radius"`                           // default bend radius, um
	MinLength float64         `toml:"min_length,omitempty" json:"min_length"`         // shortest allowed straight, um
	Sections  []SectionConfig `toml:"sections,omitempty" json:"sections,omitempty"`   // extra parallel sections
}

// SectionConfig is one auxiliary section of a cross-section (slab, trench,
// heater rail) running parallel to the core.
type SectionConfig struct {
	Width  float64 `toml:"width" json:"width"`
	Offset float64 `toml:"offset" json:"offset"`
	Layer  string  `toml:"layer" json:"layer"`
}

// Tech bundles everything a PDK ships: the layer map, display views, the
// vertical stack, and named cross-sections.
type Tech struct {
	Name          string                        `toml:"name" json:"name"`
	Layers        LayerMap                      `toml:"layers" json:"layers"`
	Views         LayerViews                    `toml:"views" json:"views,omitempty"`
	Stack         LayerStack                    `toml:"stack" json:"stack"`
	CrossSections map[string]CrossSectionConfig `toml:"cross_sections" json:"cross_sections"`
}

// Load reads and validates a TOML tech file.
func Load(path string) (*Tech, error) {
	var t Tech
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTechFile, err, "failed to load %s", path)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Parse decodes a TOML tech definition from a string.
func Parse(data string) (*Tech, error) {
	var t Tech
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTechFile, err, "failed to parse tech data")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate cross-checks the tech: layer map entries, stack levels, and
// cross-section layer references must all be consistent.
func (t *Tech) Validate() error {
	if t.Name == "" {
		return errors.New(errors.ErrCodeTechFile, "tech has no name")
	}
	if err := t.Layers.Validate(); err != nil {
		return err
	}
	if err := t.Stack.Validate(); err != nil {
		return err
	}
	for _, name := range sortedKeys(t.Views) {
		if _, ok := t.Layers[name]; !ok {
			return errors.New(errors.ErrCodeTechFile, "view for unknown layer: %s", name)
		}
	}
	for _, name := range sortedKeys(t.CrossSections) {
		xs := t.CrossSections[name]
		if xs.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidCrossSection,
				"cross-section %s has non-positive width %g", name, xs.Width)
		}
		if _, ok := t.Layers[xs.Layer]; !ok {
			return errors.New(errors.ErrCodeInvalidCrossSection,
				"cross-section %s references unknown layer %s", name, xs.Layer)
		}
		for _, s := range xs.Sections {
			if _, ok := t.Layers[s.Layer]; !ok {
				return errors.New(errors.ErrCodeInvalidCrossSection,
					"cross-section %s section references unknown layer %s", name, s.Layer)
			}
		}
	}
	return nil
}
