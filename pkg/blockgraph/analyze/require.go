package analyze

import (
	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// Requirement is the structured specification a challenge supplies to
// describe what a finished graph must look like. Every recognized
// predicate is evaluated independently and all of them must pass.
//
// An empty requirement is trivially satisfied: a record with no
// recognized keys is valid, and unrecognized keys in serialized form
// are ignored rather than rejected.
type Requirement struct {
	// MinConnections is the minimum number of connections the graph
	// must contain.
	MinConnections int `json:"minConnections,omitempty" toml:"min_connections"`

	// RequiresBlockType lists block categories that must all be present.
	RequiresBlockType []string `json:"requiresBlockType,omitempty" toml:"requires_block_type"`

	// RequiresConnection lists connections that must each exist.
	RequiresConnection []ConnectionRule `json:"requiresConnection,omitempty" toml:"requires_connection"`

	// RequiresStructure names a structural shape the graph must
	// exhibit: "sequence", "loop", or "conditional". Empty means no
	// shape is required.
	RequiresStructure Structure `json:"requiresStructure,omitempty" toml:"requires_structure"`
}

// ConnectionRule names one required connection. A and B each identify
// an endpoint by block ID or by category; since connections are
// undirected for analysis, the rule matches in either order.
type ConnectionRule struct {
	A string `json:"a" toml:"a"`
	B string `json:"b" toml:"b"`
}

// Result is the verdict of evaluating a [Requirement] against a graph,
// broken down per predicate so callers can tell the user what is still
// missing.
type Result struct {
	Satisfied bool `json:"satisfied"`

	MinConnectionsOK bool `json:"min_connections_ok"`
	BlockTypesOK     bool `json:"block_types_ok"`
	ConnectionsOK    bool `json:"connections_ok"`
	StructureOK      bool `json:"structure_ok"`

	// MissingCategories lists required categories absent from the graph.
	MissingCategories []string `json:"missing_categories,omitempty"`
}

// Satisfies evaluates the requirement against the graph. The graph is
// not modified. All predicates must hold for Satisfied to be true.
func Satisfies(g *blockgraph.Graph, req Requirement) Result {
	res := Result{
		MinConnectionsOK: g.ConnectionCount() >= req.MinConnections,
		BlockTypesOK:     true,
		ConnectionsOK:    true,
		StructureOK:      HasStructure(g, req.RequiresStructure),
	}

	present := make(map[string]bool)
	for _, b := range g.Blocks() {
		present[string(b.Category)] = true
	}
	for _, cat := range req.RequiresBlockType {
		if !present[cat] {
			res.BlockTypesOK = false
			res.MissingCategories = append(res.MissingCategories, cat)
		}
	}

	for _, rule := range req.RequiresConnection {
		if !hasConnection(g, rule) {
			res.ConnectionsOK = false
			break
		}
	}

	res.Satisfied = res.MinConnectionsOK && res.BlockTypesOK && res.ConnectionsOK && res.StructureOK
	return res
}

// hasConnection reports whether some connection in the graph matches
// the rule, in either orientation.
func hasConnection(g *blockgraph.Graph, rule ConnectionRule) bool {
	for _, c := range g.Connections() {
		from, okF := g.Block(c.From.BlockID)
		to, okT := g.Block(c.To.BlockID)
		if !okF || !okT {
			continue
		}
		if matches(from, rule.A) && matches(to, rule.B) {
			return true
		}
		if matches(from, rule.B) && matches(to, rule.A) {
			return true
		}
	}
	return false
}

// matches reports whether the block is identified by the given name,
// which may be its ID or its category.
func matches(b *blockgraph.Block, name string) bool {
	return b.ID == name || string(b.Category) == name
}
