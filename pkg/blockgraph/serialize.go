package blockgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Records - Canonical Serialization Format
// =============================================================================

// GraphRecord is the canonical serialization format for a graph.
// Used for persistence, history snapshots, API responses, and
// cross-tool compatibility.
//
// The format is human-readable and round-trip faithful: export followed
// by re-import produces a structurally equal graph, including every
// connection, under the symmetry invariant. Selection and other UI
// state are deliberately absent.
type GraphRecord struct {
	Blocks []BlockRecord `json:"blocks" bson:"blocks"`
}

// BlockRecord is the serialized form of a [Block].
type BlockRecord struct {
	ID         string         `json:"id" bson:"id"`
	Category   string         `json:"category" bson:"category"`
	X          float64        `json:"x" bson:"x"`
	Y          float64        `json:"y" bson:"y"`
	Width      float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height     float64        `json:"height,omitempty" bson:"height,omitempty"`
	Properties map[string]any `json:"properties,omitempty" bson:"properties,omitempty"`
	Ports      []PortRecord   `json:"ports,omitempty" bson:"ports,omitempty"`
}

// PortRecord is the serialized form of a [Port]. A connection is
// recorded on both of its ends; ToGraph verifies the two sides agree.
type PortRecord struct {
	ID             string  `json:"id" bson:"id"`
	Label          string  `json:"label,omitempty" bson:"label,omitempty"`
	Direction      string  `json:"direction" bson:"direction"`
	OffsetX        float64 `json:"offset_x,omitempty" bson:"offset_x,omitempty"`
	OffsetY        float64 `json:"offset_y,omitempty" bson:"offset_y,omitempty"`
	ConnectedBlock string  `json:"connected_block,omitempty" bson:"connected_block,omitempty"`
	ConnectedPort  string  `json:"connected_port,omitempty" bson:"connected_port,omitempty"`
}

// =============================================================================
// Graph ↔ Record Conversion
// =============================================================================

// FromGraph converts a graph to its serialization format. Blocks appear
// in insertion (z-) order, which makes the output deterministic for a
// given mutation history.
func FromGraph(g *Graph) GraphRecord {
	rec := GraphRecord{Blocks: make([]BlockRecord, 0, len(g.blocks))}
	for _, b := range g.blocks {
		rec.Blocks = append(rec.Blocks, blockToRecord(b))
	}
	return rec
}

// ToGraph converts a record back into a graph. It rebuilds blocks in
// record order and re-links ports, verifying that every recorded
// connection is reciprocated and that both ends exist. A record that
// violates those constraints was not produced by FromGraph and is
// rejected.
func ToGraph(rec GraphRecord) (*Graph, error) {
	g := New()
	for _, br := range rec.Blocks {
		b := &Block{
			ID:         br.ID,
			Category:   Category(br.Category),
			Position:   Point{X: br.X, Y: br.Y},
			Size:       Size{Width: br.Width, Height: br.Height},
			Properties: br.Properties,
			Ports:      make([]Port, 0, len(br.Ports)),
		}
		for _, pr := range br.Ports {
			p := Port{
				ID:     pr.ID,
				Label:  pr.Label,
				Dir:    Direction(pr.Direction),
				Offset: Point{X: pr.OffsetX, Y: pr.OffsetY},
			}
			if pr.ConnectedBlock != "" {
				p.ConnectedTo = &PortRef{BlockID: pr.ConnectedBlock, PortID: pr.ConnectedPort}
			}
			b.Ports = append(b.Ports, p)
		}
		if err := g.AddBlock(b); err != nil {
			return nil, fmt.Errorf("add block %s: %w", br.ID, err)
		}
	}
	if err := checkSymmetry(g); err != nil {
		return nil, err
	}
	return g, nil
}

// checkSymmetry verifies the port-reference invariant over a freshly
// deserialized graph.
func checkSymmetry(g *Graph) error {
	for _, b := range g.blocks {
		for i := range b.Ports {
			p := &b.Ports[i]
			if p.ConnectedTo == nil {
				continue
			}
			other, ok := g.Port(p.ConnectedTo.BlockID, p.ConnectedTo.PortID)
			if !ok {
				return fmt.Errorf("port %s.%s references missing port %s.%s",
					b.ID, p.ID, p.ConnectedTo.BlockID, p.ConnectedTo.PortID)
			}
			if other.ConnectedTo == nil ||
				other.ConnectedTo.BlockID != b.ID || other.ConnectedTo.PortID != p.ID {
				return fmt.Errorf("port %s.%s connection is not reciprocated by %s.%s",
					b.ID, p.ID, p.ConnectedTo.BlockID, p.ConnectedTo.PortID)
			}
		}
	}
	return nil
}

func blockToRecord(b *Block) BlockRecord {
	br := BlockRecord{
		ID:         b.ID,
		Category:   string(b.Category),
		X:          b.Position.X,
		Y:          b.Position.Y,
		Width:      b.Size.Width,
		Height:     b.Size.Height,
		Properties: copyProps(b.Properties),
		Ports:      make([]PortRecord, 0, len(b.Ports)),
	}
	for _, p := range b.Ports {
		pr := PortRecord{
			ID:        p.ID,
			Label:     p.Label,
			Direction: string(p.Dir),
			OffsetX:   p.Offset.X,
			OffsetY:   p.Offset.Y,
		}
		if p.ConnectedTo != nil {
			pr.ConnectedBlock = p.ConnectedTo.BlockID
			pr.ConnectedPort = p.ConnectedTo.PortID
		}
		br.Ports = append(br.Ports, pr)
	}
	return br
}

// copyProps creates a shallow copy so the record does not alias the
// live graph's property maps. Returns nil for an empty map.
func copyProps(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph serializes a graph to pretty-printed JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	return json.MarshalIndent(FromGraph(g), "", "  ")
}

// UnmarshalGraph deserializes JSON bytes into a graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var rec GraphRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}
	return ToGraph(rec)
}

// ReadGraph reads a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalGraph(data)
}

// WriteGraph writes a graph to w as JSON.
func WriteGraph(g *Graph, w io.Writer) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadGraphFile reads a JSON graph from a file.
func ReadGraphFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalGraph(data)
}

// WriteGraphFile writes a graph to a JSON file.
func WriteGraphFile(g *Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
