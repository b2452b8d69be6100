package blockgraph

import (
	"github.com/google/uuid"
)

// Category classifies a block by the role it plays on the canvas.
// The known categories below cover the built-in palette, but the set is
// open: callers may introduce new categories and the engine treats them
// like any other tag. Validation only cares about categories when a
// requirement names one explicitly.
type Category string

// Built-in block categories.
const (
	CategoryPattern   Category = "pattern"
	CategoryColor     Category = "color"
	CategoryLoop      Category = "loop"
	CategoryStructure Category = "structure"
	CategoryColumn    Category = "column"
)

// Direction indicates whether a port accepts or emits a connection.
type Direction string

const (
	// DirInput marks a port that receives a connection.
	DirInput Direction = "input"
	// DirOutput marks a port that originates a connection.
	DirOutput Direction = "output"
)

// Point is a 2D position in canvas coordinates.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a block's width and height in canvas units.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// PortRef identifies one end of a connection by block and port ID.
// Connections are stored as ID pairs rather than pointers so that a
// serialized graph round-trips without reference fixup and removed
// blocks cannot be kept alive through stale references.
type PortRef struct {
	BlockID string `json:"block_id" bson:"block_id"`
	PortID  string `json:"port_id" bson:"port_id"`
}

// Port is a named connection point on a block.
//
// ConnectedTo records the opposite end of an established connection, or
// nil when the port is free. The reference is symmetric: whenever port A
// points at port B, port B points back at A. The mutation operations on
// [Graph] maintain this invariant; it is never legal to observe a graph
// with a one-sided reference.
type Port struct {
	ID          string    // Unique within the owning block
	Label       string    // Human-readable name for the UI
	Dir         Direction // input or output
	Offset      Point     // Position relative to the owning block's origin
	ConnectedTo *PortRef  // Opposite end of the connection, or nil
}

// Connected reports whether the port currently holds a connection.
func (p *Port) Connected() bool { return p.ConnectedTo != nil }

// Block is a node in the program graph: one visual/programmatic unit the
// user places on the canvas. A block owns its ports exclusively.
//
// Properties is an open-ended bag for category-specific parameters, such
// as a loop block's repeat count. The engine never interprets property
// values; they ride along through serialization and snapshots.
type Block struct {
	ID         string
	Category   Category
	Position   Point
	Size       Size
	Properties map[string]any
	Ports      []Port
}

// Port returns the port with the given ID, or nil if the block has no
// such port.
func (b *Block) Port(portID string) *Port {
	for i := range b.Ports {
		if b.Ports[i].ID == portID {
			return &b.Ports[i]
		}
	}
	return nil
}

// NewBlockID returns a fresh unique block identifier.
func NewBlockID() string { return uuid.NewString() }

// DefaultPorts returns the ports a freshly created block of the given
// category carries. The returned slice is newly allocated on every call,
// so callers may modify it freely.
func DefaultPorts(c Category) []Port {
	switch c {
	case CategoryPattern:
		return []Port{outPort()}
	case CategoryColumn:
		return []Port{inPort()}
	case CategoryColor, CategoryLoop, CategoryStructure:
		return []Port{inPort(), outPort()}
	default:
		return []Port{inPort(), outPort()}
	}
}

// DefaultProperties returns the initial property map for the category.
// Most categories start empty; loop blocks carry a repeat count.
func DefaultProperties(c Category) map[string]any {
	props := map[string]any{}
	if c == CategoryLoop {
		props["repeat"] = 2
	}
	return props
}

// NewBlock creates a block of the given category at the given position,
// with a generated ID, default size, default ports, and the category's
// default properties.
func NewBlock(c Category, pos Point) *Block {
	return &Block{
		ID:         NewBlockID(),
		Category:   c,
		Position:   pos,
		Size:       Size{Width: 96, Height: 64},
		Properties: DefaultProperties(c),
		Ports:      DefaultPorts(c),
	}
}

func inPort() Port {
	return Port{ID: "in", Label: "In", Dir: DirInput, Offset: Point{X: 0, Y: 32}}
}

func outPort() Port {
	return Port{ID: "out", Label: "Out", Dir: DirOutput, Offset: Point{X: 96, Y: 32}}
}
