package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/tech"
)

// componentJSON is the interchange form of a flattened component. The
// reference hierarchy is not serialized; callers flatten before export.
// GDS binary output is out of scope, this JSON form is the interchange
// format consumed by downstream tooling.
type componentJSON struct {
	Name     string         `json:"name"`
	Layers   []layerJSON    `json:"layers"`
	Ports    []Port         `json:"ports"`
	Info     Info           `json:"info,omitempty"`
}

type layerJSON struct {
	Layer    tech.Layer         `json:"layer"`
	Polygons []geometry.Polygon `json:"polygons"`
}

// MarshalComponent converts a component to JSON bytes. References are not
// serialized; pass a flattened component for complete geometry. Layers
// and ports are sorted for deterministic output.
func MarshalComponent(c *Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteComponent(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteComponent writes a component as JSON to an io.Writer.
func WriteComponent(c *Component, w io.Writer) error {
	out := componentJSON{Name: c.Name, Info: c.Info}

	layers := make([]tech.Layer, 0, len(c.Polygons))
	for l := range c.Polygons {
		layers = append(layers, l)
	}
	sort.Slice(layers, func(i, j int) bool {
		if layers[i].Layer != layers[j].Layer {
			return layers[i].Layer < layers[j].Layer
		}
		return layers[i].Datatype < layers[j].Datatype
	})
	for _, l := range layers {
		out.Layers = append(out.Layers, layerJSON{Layer: l, Polygons: c.Polygons[l]})
	}

	for _, name := range c.PortNames() {
		out.Ports = append(out.Ports, c.Ports[name])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteComponentFile writes a component to a JSON file with 0644
// permissions.
func WriteComponentFile(c *Component, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteComponent(c, f)
}

// UnmarshalComponent decodes a component from its JSON interchange form.
func UnmarshalComponent(data []byte) (*Component, error) {
	var in componentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode component: %w", err)
	}
	c := NewComponent(in.Name)
	if in.Info != nil {
		c.Info = in.Info
	}
	for _, l := range in.Layers {
		c.Polygons[l.Layer] = l.Polygons
	}
	for _, p := range in.Ports {
		c.Ports[p.Name] = p
	}
	return c, nil
}

// ReadComponentFile reads a JSON file and returns the decoded component.
func ReadComponentFile(path string) (*Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalComponent(data)
}
