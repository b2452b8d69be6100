package render

import (
	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// Anchor is a port's absolute position on the canvas: the owning
// block's position plus the port's offset.
type Anchor struct {
	BlockID string           `json:"block_id"`
	PortID  string           `json:"port_id"`
	Pos     blockgraph.Point `json:"pos"`
}

// Line is one connection ready to draw, with both endpoints resolved
// to absolute canvas coordinates.
type Line struct {
	From Anchor `json:"from"`
	To   Anchor `json:"to"`
}

// PortAnchor returns the absolute position of one port. Reports false
// if the block or port does not exist.
func PortAnchor(g *blockgraph.Graph, blockID, portID string) (Anchor, bool) {
	b, ok := g.Block(blockID)
	if !ok {
		return Anchor{}, false
	}
	p := b.Port(portID)
	if p == nil {
		return Anchor{}, false
	}
	return Anchor{
		BlockID: blockID,
		PortID:  portID,
		Pos: blockgraph.Point{
			X: b.Position.X + p.Offset.X,
			Y: b.Position.Y + p.Offset.Y,
		},
	}, true
}

// Anchors returns the absolute positions of every port in the graph,
// in z-order of blocks and declaration order of ports.
func Anchors(g *blockgraph.Graph) []Anchor {
	var anchors []Anchor
	for _, b := range g.Blocks() {
		for _, p := range b.Ports {
			anchors = append(anchors, Anchor{
				BlockID: b.ID,
				PortID:  p.ID,
				Pos: blockgraph.Point{
					X: b.Position.X + p.Offset.X,
					Y: b.Position.Y + p.Offset.Y,
				},
			})
		}
	}
	return anchors
}

// Lines resolves every connection to a drawable line. Connections
// appear once each, oriented as returned by [blockgraph.Graph.Connections].
func Lines(g *blockgraph.Graph) []Line {
	var lines []Line
	for _, c := range g.Connections() {
		from, okF := PortAnchor(g, c.From.BlockID, c.From.PortID)
		to, okT := PortAnchor(g, c.To.BlockID, c.To.PortID)
		if !okF || !okT {
			continue
		}
		lines = append(lines, Line{From: from, To: to})
	}
	return lines
}
