package pack

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a packing tree to Graphviz DOT format for debugging.
// Occupied nodes are drawn as filled boxes labeled with the occupant's
// position and size; free leaves are dashed boxes labeled with the leftover
// area. The resulting string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(root *Region) string {
	var buf bytes.Buffer
	buf.WriteString("digraph packtree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	id := 0
	writeNode(&buf, root, &id)

	buf.WriteString("}\n")
	return buf.String()
}

// writeNode emits node n and its subtree, returning n's DOT identifier.
func writeNode(buf *bytes.Buffer, n *Region, id *int) string {
	name := fmt.Sprintf("n%d", *id)
	*id++

	r := n.Rect()
	if !n.Occupied() {
		fmt.Fprintf(buf, "  %s [label=\"free\\n%dx%d @ (%d,%d)\", style=dashed, fontcolor=grey40];\n",
			name, r.Width, r.Height, r.X, r.Y)
		return name
	}

	occ := *n.occupant
	fmt.Fprintf(buf, "  %s [label=\"%dx%d @ (%d,%d)\", style=filled, fillcolor=lightblue];\n",
		name, occ.Width, occ.Height, occ.X, occ.Y)

	left := writeNode(buf, n.left, id)
	right := writeNode(buf, n.right, id)
	fmt.Fprintf(buf, "  %s -> %s;\n", name, left)
	fmt.Fprintf(buf, "  %s -> %s;\n", name, right)
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
