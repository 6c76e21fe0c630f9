package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/render"
)

// ToDOT describes the scene as an undirected Graphviz graph. Each layer
// becomes a cluster whose nodes are the occupied cells and whose edges are
// the connectors; diagonal connectors are dashed.
func ToDOT(s render.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", hex(s.Background))
	buf.WriteString("  node [shape=circle, style=filled, label=\"\", width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=2];\n")

	for i, l := range s.Layers {
		col := hex(l.Color)
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=\"layer %d\";\n", i)
		buf.WriteString("    color=\"#999999\";\n")
		fmt.Fprintf(&buf, "    node [fillcolor=%q, color=%q];\n", col, col)
		fmt.Fprintf(&buf, "    edge [color=%q];\n", col)
		for _, sh := range l.Disks() {
			fmt.Fprintf(&buf, "    %s;\n", nodeID(i, sh.Cell))
		}
		for _, sh := range l.Shapes {
			if sh.Kind != render.KindConnector {
				continue
			}
			to := sh.Cell.Add(sh.Direction.Offset())
			attrs := ""
			if sh.Direction.Diagonal() {
				attrs = " [style=dashed]"
			}
			fmt.Fprintf(&buf, "    %s -- %s%s;\n", nodeID(i, sh.Cell), nodeID(i, to), attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(layer int, c grid.Cell) string {
	return fmt.Sprintf("l%d_r%d_c%d", layer, c.Row, c.Col)
}

// RenderDOT lays out a DOT graph with Graphviz and returns SVG bytes.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
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
