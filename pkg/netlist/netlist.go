// Package netlist extracts connectivity from a hierarchical layout: each
// placed reference becomes an instance, and pairs of mated ports become
// nets. The extracted graph can be validated and rendered to Graphviz
// DOT for inspection.
package netlist

import (
	"errors"
	"fmt"
	"sort"

	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
)

var (
	// ErrInvalidInstanceID is returned when an instance name is empty.
	ErrInvalidInstanceID = errors.New("instance name must not be empty")

	// ErrDuplicateInstanceID is returned when two instances share a name.
	ErrDuplicateInstanceID = errors.New("duplicate instance name")

	// ErrUnknownInstance is returned by AddNet when an endpoint names an
	// instance that does not exist.
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrSelfConnection is returned by Validate when a net connects an
	// instance port to itself.
	ErrSelfConnection = errors.New("net connects a port to itself")

	// ErrPortOverconnected is returned by Validate when one instance port
	// appears in more than one net. Waveguide ports are point-to-point.
	ErrPortOverconnected = errors.New("port used by multiple nets")
)

// Metadata stores arbitrary key-value pairs attached to instances or the
// netlist. Maps are never nil after AddInstance.
type Metadata map[string]any

// Instance is one placed cell in the netlist.
type Instance struct {
	Name     string
	Cell     string // name of the referenced cell
	Origin   geometry.Point
	Rotation float64
	Mirror   bool
	Meta     Metadata
}

// PortRef addresses one port of one instance.
type PortRef struct {
	Instance string `json:"instance"`
	Port     string `json:"port"`
}

func (p PortRef) String() string { return p.Instance + "," + p.Port }

// Net is a point-to-point connection between two instance ports.
type Net struct {
	A, B PortRef
}

// Netlist is the connectivity view of one component: instances keyed by
// name plus the nets between them.
type Netlist struct {
	Component string
	instances map[string]*Instance
	nets      []Net
	meta      Metadata
}

// New creates an empty netlist for the named component.
func New(component string, meta Metadata) *Netlist {
	if meta == nil {
		meta = Metadata{}
	}
	return &Netlist{
		Component: component,
		instances: make(map[string]*Instance),
		meta:      meta,
	}
}

// Meta returns the netlist-level metadata map, never nil.
func (n *Netlist) Meta() Metadata { return n.meta }

// AddInstance adds an instance. Names must be unique and non-empty.
func (n *Netlist) AddInstance(inst Instance) error {
	if inst.Name == "" {
		return ErrInvalidInstanceID
	}
	if _, exists := n.instances[inst.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateInstanceID, inst.Name)
	}
	if inst.Meta == nil {
		inst.Meta = Metadata{}
	}
	n.instances[inst.Name] = &inst
	return nil
}

// AddNet adds a net between two existing instances.
func (n *Netlist) AddNet(net Net) error {
	if _, ok := n.instances[net.A.Instance]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInstance, net.A.Instance)
	}
	if _, ok := n.instances[net.B.Instance]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInstance, net.B.Instance)
	}
	n.nets = append(n.nets, net)
	return nil
}

// Instance returns the named instance, or nil and false.
func (n *Netlist) Instance(name string) (*Instance, bool) {
	inst, ok := n.instances[name]
	return inst, ok
}

// Instances returns all instances sorted by name.
func (n *Netlist) Instances() []*Instance {
	names := make([]string, 0, len(n.instances))
	for name := range n.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Instance, len(names))
	for i, name := range names {
		out[i] = n.instances[name]
	}
	return out
}

// Nets returns the nets in insertion order.
func (n *Netlist) Nets() []Net { return n.nets }

// InstanceCount returns the number of instances.
func (n *Netlist) InstanceCount() int { return len(n.instances) }

// NetCount returns the number of nets.
func (n *Netlist) NetCount() int { return len(n.nets) }

// Validate checks netlist integrity: every net endpoint must name an
// existing instance, no net may connect a port to itself, and no port
// may appear in more than one net.
func (n *Netlist) Validate() error {
	seen := make(map[PortRef]bool)
	for _, net := range n.nets {
		for _, end := range [2]PortRef{net.A, net.B} {
			if _, ok := n.instances[end.Instance]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownInstance, end.Instance)
			}
			if seen[end] {
				return fmt.Errorf("%w: %s", ErrPortOverconnected, end)
			}
			seen[end] = true
		}
		if net.A == net.B {
			return fmt.Errorf("%w: %s", ErrSelfConnection, net.A)
		}
	}
	return nil
}

// Extract builds the netlist of a component from its references: ports
// whose world poses mate (coincident centers, opposite orientations,
// matching widths) become nets. Instance names are made unique by
// appending an index when references share a name.
func Extract(c *layout.Component) (*Netlist, error) {
	nl := New(c.Name, Metadata{})

	type worldPort struct {
		ref  PortRef
		port layout.Port
	}
	var ports []worldPort

	nameCount := make(map[string]int)
	for _, ref := range c.Refs {
		name := ref.Name
		nameCount[name]++
		if nameCount[name] > 1 {
			name = fmt.Sprintf("%s_%d", name, nameCount[name])
		}
		err := nl.AddInstance(Instance{
			Name:     name,
			Cell:     ref.Cell.Name,
			Origin:   ref.Origin,
			Rotation: ref.Rotation,
			Mirror:   ref.Mirror,
		})
		if err != nil {
			return nil, err
		}
		for _, pn := range ref.Cell.PortNames() {
			wp, err := ref.Port(pn)
			if err != nil {
				return nil, err
			}
			ports = append(ports, worldPort{
				ref:  PortRef{Instance: name, Port: pn},
				port: wp,
			})
		}
	}

	used := make(map[int]bool)
	for i := 0; i < len(ports); i++ {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(ports); j++ {
			if used[j] || !mates(ports[i].port, ports[j].port) {
				continue
			}
			if err := nl.AddNet(Net{A: ports[i].ref, B: ports[j].ref}); err != nil {
				return nil, err
			}
			used[i], used[j] = true, true
			break
		}
	}
	return nl, nil
}

// mates reports whether two world-space ports form a connection.
func mates(a, b layout.Port) bool {
	if a.Layer != b.Layer {
		return false
	}
	if a.Center.Dist(b.Center) > geometry.Eps {
		return false
	}
	if d := a.Width - b.Width; d > geometry.Eps || d < -geometry.Eps {
		return false
	}
	diff := geometry.AngleDiff(a.Orientation, b.Orientation+180)
	return diff > -1e-3 && diff < 1e-3
}
