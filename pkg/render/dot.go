// Package render produces drawing-ready views of a block graph for the
// painter collaborator: Graphviz DOT/SVG node-link diagrams and the
// absolute port positions needed to draw connections on the canvas.
// The engine itself never touches pixels; this package sits at its
// rendering boundary.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes port labels and properties in node labels.
	// When false, only the block ID and category are shown.
	Detailed bool
}

// categoryFill maps block categories to fill colors in the diagram.
var categoryFill = map[blockgraph.Category]string{
	blockgraph.CategoryPattern:   "lightgoldenrod1",
	blockgraph.CategoryColor:     "lightpink",
	blockgraph.CategoryLoop:      "lightblue",
	blockgraph.CategoryStructure: "palegreen",
	blockgraph.CategoryColumn:    "lightgrey",
}

// ToDOT converts a block graph to Graphviz DOT format. Blocks become
// box nodes colored by category; each connection becomes one edge from
// its output end to its input end.
func ToDOT(g *blockgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph blockloom {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, b := range g.Blocks() {
		label := fmtLabel(b, opts.Detailed)
		attrs := fmtAttrs(b, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", c.From.BlockID, c.To.BlockID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b *blockgraph.Block, detailed bool) string {
	label := fmt.Sprintf("%s\n(%s)", b.ID, b.Category)
	if !detailed {
		return label
	}
	parts := []string{label}
	for _, k := range slices.Sorted(maps.Keys(b.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, b.Properties[k]))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(b *blockgraph.Block, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := categoryFill[b.Category]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", fill))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
