// Package tech models process/fabrication metadata: the layer map (named
// GDS layer/datatype pairs), layer views (display styling), and the layer
// stack (vertical geometry per layer for simulation handoff).
//
// A complete technology is normally loaded from a TOML tech file, see
// [Load]. A built-in generic 220 nm SOI technology is available through
// [Generic] for tests and demos.
package tech

import (
	"fmt"
	"sort"

	"github.com/waveforge/waveforge/pkg/errors"
)

// Layer identifies a GDS layer/datatype pair.
type Layer struct {
	Layer    int `json:"layer" toml:"layer"`
	Datatype int `json:"datatype" toml:"datatype"`
}

// String renders the layer as "layer/datatype".
func (l Layer) String() string { return fmt.Sprintf("%d/%d", l.Layer, l.Datatype) }

// Validate checks both numbers against the GDSII 16-bit range.
func (l Layer) Validate() error {
	return errors.ValidateLayer(l.Layer, l.Datatype)
}

// LayerMap maps layer names (WG, SLAB90, M1, HEATER...) to GDS layers.
type LayerMap map[string]Layer

// Get looks up a named layer.
func (m LayerMap) Get(name string) (Layer, error) {
	l, ok := m[name]
	if !ok {
		return Layer{}, errors.New(errors.ErrCodeInvalidLayer, "unknown layer: %s", name)
	}
	return l, nil
}

// Names returns the layer names in sorted order.
func (m LayerMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every entry of the map.
func (m LayerMap) Validate() error {
	seen := make(map[Layer]string, len(m))
	for _, name := range m.Names() {
		l := m[name]
		if err := errors.ValidateName(name); err != nil {
			return err
		}
		if err := l.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayer, err, "layer %s", name)
		}
		if prev, dup := seen[l]; dup {
			return errors.New(errors.ErrCodeInvalidLayer,
				"layers %s and %s share GDS layer %s", prev, name, l)
		}
		seen[l] = name
	}
	return nil
}
