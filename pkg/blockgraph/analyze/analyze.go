package analyze

import (
	"slices"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// Structure is a topological classification of a graph, independent of
// the category tags on its blocks.
type Structure string

const (
	// StructureNone requires no particular shape.
	StructureNone Structure = ""
	// StructureSequence is a simple path of at least three blocks.
	StructureSequence Structure = "sequence"
	// StructureLoop is a cycle in the connection graph.
	StructureLoop Structure = "loop"
	// StructureConditional is reserved for branch blocks. No current
	// category produces one, so the classifier reports it absent; this
	// is a deliberately incomplete classifier, not a bug.
	StructureConditional Structure = "conditional"
)

// minSequenceLen is the number of distinct blocks a path must visit to
// count as a sequence.
const minSequenceLen = 3

// Adjacency returns the undirected connection graph as a mapping from
// block ID to the IDs of its directly connected blocks. Multiple
// connections between the same two blocks collapse into one adjacency,
// and neighbor lists are sorted, so the result is deterministic and
// ready for reuse across analyzer passes and by external callers such
// as UI highlighting.
//
// Every block appears as a key, including isolated ones (with a nil
// neighbor list).
func Adjacency(g *blockgraph.Graph) map[string][]string {
	adj := make(map[string][]string, g.BlockCount())
	for _, b := range g.Blocks() {
		adj[b.ID] = nil
	}
	for _, c := range g.Connections() {
		a, b := c.From.BlockID, c.To.BlockID
		if !slices.Contains(adj[a], b) {
			adj[a] = append(adj[a], b)
		}
		if !slices.Contains(adj[b], a) {
			adj[b] = append(adj[b], a)
		}
	}
	for id := range adj {
		slices.Sort(adj[id])
	}
	return adj
}

// HasCycle reports whether the connection graph contains a cycle. The
// graph is treated as undirected; a depth-first search flags any edge
// that reaches an already visited block other than the one it came
// from. An empty graph has no cycle.
func HasCycle(g *blockgraph.Graph) bool {
	adj := Adjacency(g)
	visited := make(map[string]bool, len(adj))

	var dfs func(id, parent string) bool
	dfs = func(id, parent string) bool {
		visited[id] = true
		for _, next := range adj[id] {
			if next == parent {
				continue
			}
			if visited[next] {
				return true
			}
			if dfs(next, id) {
				return true
			}
		}
		return false
	}

	for _, b := range g.Blocks() {
		if !visited[b.ID] && dfs(b.ID, "") {
			return true
		}
	}
	return false
}

// HasSequence reports whether some simple path (no repeated blocks) of
// at least three distinct blocks exists in the connection graph. A
// two-block chain is not a sequence; an isolated block never is.
func HasSequence(g *blockgraph.Graph) bool {
	adj := Adjacency(g)
	onPath := make(map[string]bool, len(adj))

	var dfs func(id string, length int) bool
	dfs = func(id string, length int) bool {
		if length >= minSequenceLen {
			return true
		}
		onPath[id] = true
		defer delete(onPath, id)
		for _, next := range adj[id] {
			if onPath[next] {
				continue
			}
			if dfs(next, length+1) {
				return true
			}
		}
		return false
	}

	for id := range adj {
		if dfs(id, 1) {
			return true
		}
	}
	return false
}

// HasConditional reports whether the graph contains conditional
// structure. Reserved for future branch categories; currently always
// false.
func HasConditional(g *blockgraph.Graph) bool {
	return false
}

// HasStructure reports whether the graph exhibits the named structure.
// StructureNone is trivially present.
func HasStructure(g *blockgraph.Graph, s Structure) bool {
	switch s {
	case StructureSequence:
		return HasSequence(g)
	case StructureLoop:
		return HasCycle(g)
	case StructureConditional:
		return HasConditional(g)
	default:
		return true
	}
}
