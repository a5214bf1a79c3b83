package netlist

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures DOT conversion.
type DOTOptions struct {
	// Detailed includes placement (origin, rotation) in node labels.
	// When false, only instance and cell names are shown.
	Detailed bool
}

// ToDOT converts a netlist to Graphviz DOT. Edges carry the port names
// of both endpoints as labels, so routed connections stay traceable.
func ToDOT(n *Netlist, opts DOTOptions) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", n.Component)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, inst := range n.Instances() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", inst.Name, instLabel(inst, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, net := range n.Nets() {
		fmt.Fprintf(&buf, "  %q -- %q [taillabel=%q, headlabel=%q, fontsize=10];\n",
			net.A.Instance, net.B.Instance, net.A.Port, net.B.Port)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func instLabel(inst *Instance, detailed bool) string {
	label := inst.Name
	if inst.Cell != inst.Name {
		label += "\n" + inst.Cell
	}
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("at (%.3f, %.3f)", inst.Origin.X, inst.Origin.Y)}
	if inst.Rotation != 0 {
		parts = append(parts, fmt.Sprintf("rot %g", inst.Rotation))
	}
	if inst.Mirror {
		parts = append(parts, "mirrored")
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
