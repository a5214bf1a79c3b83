package tech

import (
	"sort"

	"github.com/waveforge/waveforge/pkg/errors"
)

// LayerLevel describes the vertical geometry of one layer of the stack,
// as needed by meshing and mode-solver handoff.
type LayerLevel struct {
	Layer         Layer          `json:"layer" toml:"layer"`
	Thickness     float64        `json:"thickness" toml:"thickness"`           // um
	ZMin          float64        `json:"zmin" toml:"zmin"`                     // um, bottom of the level
	Material      string         `json:"material" toml:"material"`             // material name (si, sio2, sin...)
	SidewallAngle float64        `json:"sidewall_angle" toml:"sidewall_angle"` // degrees from vertical
	MeshOrder     int            `json:"mesh_order" toml:"mesh_order"`         // lower order wins on overlap
	Info          map[string]any `json:"info,omitempty" toml:"info,omitempty"`
}

// ZMax returns the top of the level.
func (l LayerLevel) ZMax() float64 { return l.ZMin + l.Thickness }

// LayerStack maps level names to their vertical geometry.
type LayerStack map[string]LayerLevel

// Names returns level names sorted by mesh order, then name. This is the
// order meshing engines should consume levels in.
func (s LayerStack) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s[names[i]], s[names[j]]
		if a.MeshOrder != b.MeshOrder {
			return a.MeshOrder < b.MeshOrder
		}
		return names[i] < names[j]
	})
	return names
}

// Get looks up a level by name.
func (s LayerStack) Get(name string) (LayerLevel, error) {
	l, ok := s[name]
	if !ok {
		return LayerLevel{}, errors.New(errors.ErrCodeNotFound, "unknown stack level: %s", name)
	}
	return l, nil
}

// Thickness returns the thickness of a named level.
func (s LayerStack) Thickness(name string) (float64, error) {
	l, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	return l.Thickness, nil
}

// Slice returns a sub-stack containing only the named levels. Simulation
// jobs slice the stack down to the levels that matter for one solve.
func (s LayerStack) Slice(names ...string) (LayerStack, error) {
	out := make(LayerStack, len(names))
	for _, name := range names {
		l, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		out[name] = l
	}
	return out, nil
}

// Perturb returns a copy of the stack with the named level's thickness
// scaled by factor. Sensitivity models solve perturbed copies of the
// nominal stack.
func (s LayerStack) Perturb(name string, factor float64) (LayerStack, error) {
	if _, err := s.Get(name); err != nil {
		return nil, err
	}
	out := make(LayerStack, len(s))
	for k, v := range s {
		if k == name {
			v.Thickness *= factor
		}
		out[k] = v
	}
	return out, nil
}

// Validate checks the stack for zero or negative thickness and invalid
// layer numbers.
func (s LayerStack) Validate() error {
	for _, name := range s.Names() {
		l := s[name]
		if l.Thickness <= 0 {
			return errors.New(errors.ErrCodeTechFile,
				"stack level %s has non-positive thickness %g", name, l.Thickness)
		}
		if l.Material == "" {
			return errors.New(errors.ErrCodeTechFile, "stack level %s has no material", name)
		}
		if err := l.Layer.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeTechFile, err, "stack level %s", name)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
