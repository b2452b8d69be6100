package blockgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidBlockID is returned by [Graph.AddBlock] when the block ID
	// is empty. All blocks must have non-empty identifiers.
	ErrInvalidBlockID = errors.New("block ID must not be empty")

	// ErrDuplicateBlockID is returned by [Graph.AddBlock] when a block
	// with the same ID already exists. Block IDs must be unique.
	ErrDuplicateBlockID = errors.New("duplicate block ID")
)

// Connection is a derived, undirected edge: a pair of mutually
// referencing ports. Connections are not stored on the graph; they are
// materialized on demand from port references, once per pair.
type Connection struct {
	From PortRef `json:"from" bson:"from"`
	To   PortRef `json:"to" bson:"to"`
}

// Graph is an ordered collection of blocks and the connections between
// their ports. Insertion order is the workspace's z-order and is
// preserved through serialization, but carries no weight for validation.
//
// Two invariants hold for every graph reachable through this API:
//
//  1. Symmetry: every non-nil port reference points at a port that
//     exists on a block currently in the graph and whose own reference
//     points back at the origin port.
//  2. At most one connection per port.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent use; the engine assumes a single writer and callers must
// serialize access externally.
type Graph struct {
	blocks   []*Block
	index    map[string]*Block
	selected string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]*Block)}
}

// AddBlock appends a block to the graph. There is no validity
// precondition beyond a unique, non-empty ID: blocks may be added fully
// disconnected and wired up later. A nil Properties map is initialized
// to an empty one.
func (g *Graph) AddBlock(b *Block) error {
	if b.ID == "" {
		return ErrInvalidBlockID
	}
	if _, exists := g.index[b.ID]; exists {
		return ErrDuplicateBlockID
	}
	if b.Properties == nil {
		b.Properties = map[string]any{}
	}
	g.blocks = append(g.blocks, b)
	g.index[b.ID] = b
	return nil
}

// RemoveBlock removes the block with the given ID, first severing every
// connection touching any of its ports so that no dangling reference
// survives on the other end. The selection is cleared if it referenced
// the removed block. Reports whether a block was removed; an unknown ID
// is a no-op, not an error, because UI gestures routinely race against
// removal.
func (g *Graph) RemoveBlock(id string) bool {
	b, ok := g.index[id]
	if !ok {
		return false
	}
	for i := range b.Ports {
		g.sever(&b.Ports[i])
	}
	if g.selected == id {
		g.selected = ""
	}
	delete(g.index, id)
	g.blocks = slices.DeleteFunc(g.blocks, func(x *Block) bool { return x.ID == id })
	return true
}

// MoveBlock updates a block's position. Position has no structural
// effect: connections and validation verdicts are unaffected. Reports
// whether the block exists.
func (g *Graph) MoveBlock(id string, pos Point) bool {
	b, ok := g.index[id]
	if !ok {
		return false
	}
	b.Position = pos
	return true
}

// SetProperties replaces a block's property map. Reports whether the
// block exists. The map is stored as given; callers should not mutate
// it afterwards.
func (g *Graph) SetProperties(id string, props map[string]any) bool {
	b, ok := g.index[id]
	if !ok {
		return false
	}
	if props == nil {
		props = map[string]any{}
	}
	b.Properties = props
	return true
}

// Select marks the block as selected. Selecting an unknown ID clears
// the selection. Selection is UI state: it is excluded from snapshots
// and from the canonical signature.
func (g *Graph) Select(id string) {
	if _, ok := g.index[id]; !ok {
		g.selected = ""
		return
	}
	g.selected = id
}

// Selected returns the selected block's ID, or "" if none.
func (g *Graph) Selected() string { return g.selected }

// Block returns the block with the given ID and true, or nil and false
// if not found. Absence is common and non-exceptional (a drag may end
// after the block was removed), so there is no error return.
func (g *Graph) Block(id string) (*Block, bool) {
	b, ok := g.index[id]
	return b, ok
}

// Port returns the named port on the named block, or nil and false if
// either does not exist.
func (g *Graph) Port(blockID, portID string) (*Port, bool) {
	b, ok := g.index[blockID]
	if !ok {
		return nil, false
	}
	p := b.Port(portID)
	if p == nil {
		return nil, false
	}
	return p, true
}

// Blocks returns all blocks in insertion (z-) order. The returned slice
// is a copy, but it shares block pointers with the graph.
func (g *Graph) Blocks() []*Block { return slices.Clone(g.blocks) }

// BlockCount returns the number of blocks in the graph.
func (g *Graph) BlockCount() int { return len(g.blocks) }

// Connections returns every connection exactly once, in z-order of the
// originating block. Each pair of mutually referencing ports appears as
// a single Connection with From on the side encountered first.
func (g *Graph) Connections() []Connection {
	var conns []Connection
	seen := make(map[PortRef]bool)
	for _, b := range g.blocks {
		for i := range b.Ports {
			p := &b.Ports[i]
			if p.ConnectedTo == nil {
				continue
			}
			self := PortRef{BlockID: b.ID, PortID: p.ID}
			if seen[self] || seen[*p.ConnectedTo] {
				continue
			}
			seen[self] = true
			conns = append(conns, Connection{From: self, To: *p.ConnectedTo})
		}
	}
	return conns
}

// ConnectionCount returns the number of connections in the graph.
func (g *Graph) ConnectionCount() int { return len(g.Connections()) }

// sever clears the connection held by p on both sides. A free port is
// left untouched. The reciprocal side is looked up through the graph so
// symmetry is restored even mid-removal.
func (g *Graph) sever(p *Port) {
	if p.ConnectedTo == nil {
		return
	}
	if other, ok := g.Port(p.ConnectedTo.BlockID, p.ConnectedTo.PortID); ok {
		other.ConnectedTo = nil
	}
	p.ConnectedTo = nil
}
