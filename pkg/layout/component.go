// Package layout provides the hierarchical component model: layer-tagged
// polygons, ports, placed references, and the parametric cell registry
// with build caching and auto-naming.
package layout

import (
	"sort"

	"github.com/google/uuid"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/tech"
)

// Info stores arbitrary key-value pairs attached to a component
// (measured loss, design intent, simulation tags). Info maps are never
// nil after NewComponent.
type Info map[string]any

// Component is a reusable building block: polygons per layer, named
// ports, and references to child components.
//
// Components built through a [Registry] are cached and must be treated
// as immutable once returned. Compose them by reference instead of
// mutating them.
type Component struct {
	Name     string
	Polygons map[tech.Layer][]geometry.Polygon
	Ports    map[string]Port
	Refs     []*Reference
	Info     Info
}

// NewComponent creates an empty component.
func NewComponent(name string) *Component {
	return &Component{
		Name:     name,
		Polygons: make(map[tech.Layer][]geometry.Polygon),
		Ports:    make(map[string]Port),
		Info:     make(Info),
	}
}

// AddPolygon adds a polygon on the given layer.
func (c *Component) AddPolygon(layer tech.Layer, pg geometry.Polygon) {
	c.Polygons[layer] = append(c.Polygons[layer], pg)
}

// AddPort registers a port. Returns ErrCodeInvalidPort for bad names and
// ErrCodeDuplicateCell-free duplicate handling: re-adding an existing
// name is an error.
func (c *Component) AddPort(p Port) error {
	if err := errors.ValidatePortName(p.Name); err != nil {
		return err
	}
	if _, exists := c.Ports[p.Name]; exists {
		return errors.New(errors.ErrCodeInvalidPort, "duplicate port: %s", p.Name)
	}
	c.Ports[p.Name] = p
	return nil
}

// Port looks up a port by name.
func (c *Component) Port(name string) (Port, error) {
	p, ok := c.Ports[name]
	if !ok {
		return Port{}, errors.New(errors.ErrCodePortNotFound, "no port %s on %s", name, c.Name)
	}
	return p, nil
}

// PortNames returns the port names in sorted order.
func (c *Component) PortNames() []string {
	names := make([]string, 0, len(c.Ports))
	for name := range c.Ports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddRef places a child component at the origin and returns the
// reference for further placement. Instance names default to the child
// name plus a unique suffix.
func (c *Component) AddRef(child *Component) *Reference {
	ref := &Reference{
		ID:   uuid.NewString(),
		Name: child.Name,
		Cell: child,
	}
	c.Refs = append(c.Refs, ref)
	return ref
}

// Bounds returns the bounding box over own polygons and all references,
// recursively.
func (c *Component) Bounds() geometry.Box {
	var (
		box geometry.Box
		any bool
	)
	add := func(b geometry.Box) {
		if !any {
			box = b
			any = true
			return
		}
		box = box.Union(b)
	}
	for _, pgs := range c.Polygons {
		for _, pg := range pgs {
			add(pg.Bounds())
		}
	}
	for _, ref := range c.Refs {
		child := ref.Cell.Bounds()
		corners := geometry.Polygon{
			child.Min, {X: child.Max.X, Y: child.Min.Y},
			child.Max, {X: child.Min.X, Y: child.Max.Y},
		}
		add(ref.transformPolygon(corners).Bounds())
	}
	return box
}

// Flatten resolves the reference hierarchy into a new component with
// concrete polygons only. Top-level ports are preserved.
func (c *Component) Flatten() *Component {
	flat := NewComponent(c.Name)
	flat.Info = c.Info
	for name, p := range c.Ports {
		flat.Ports[name] = p
	}
	c.flattenInto(flat, geometry.Point{}, 0, false)
	return flat
}

func (c *Component) flattenInto(dst *Component, origin geometry.Point, rotation float64, mirror bool) {
	for layer, pgs := range c.Polygons {
		for _, pg := range pgs {
			out := pg
			if mirror {
				out = out.MirrorY()
			}
			out = out.Rotate(rotation, geometry.Point{}).Translate(origin)
			dst.AddPolygon(layer, out)
		}
	}
	for _, ref := range c.Refs {
		childOrigin := ref.Origin
		childRot := ref.Rotation
		childMirror := ref.Mirror != mirror
		if mirror {
			childOrigin.Y = -childOrigin.Y
			childRot = -childRot
		}
		ref.Cell.flattenInto(dst,
			childOrigin.Rotate(rotation).Add(origin),
			geometry.NormalizeAngle(childRot+rotation),
			childMirror)
	}
}

// PolygonCount returns the total number of polygons after flattening.
func (c *Component) PolygonCount() int {
	n := 0
	for _, pgs := range c.Polygons {
		n += len(pgs)
	}
	for _, ref := range c.Refs {
		n += ref.Cell.PolygonCount()
	}
	return n
}
