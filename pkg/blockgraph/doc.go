// Package blockgraph provides the block-graph data model at the heart
// of the Blockloom engine: blocks, their ports, and the connections
// between them.
//
// # Overview
//
// A workspace is a [Graph] of [Block] values. Each block carries an
// ordered list of [Port] connection points, and a connection is a
// symmetric pair of port references. Blocks do not execute; the graph
// only captures structure, which pkg/blockgraph/analyze classifies and
// pkg/validation checks against challenge requirements.
//
// # Basic Usage
//
// Create a graph with [New], add blocks, and wire ports:
//
//	g := blockgraph.New()
//	p := blockgraph.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{X: 10, Y: 10})
//	c := blockgraph.NewBlock(blockgraph.CategoryColor, blockgraph.Point{X: 140, Y: 10})
//	g.AddBlock(p)
//	g.AddBlock(c)
//	g.Connect(p.ID, "out", c.ID, "in")
//
// All connection operations are total: a missing block or port yields a
// false return, never a panic or error, because drag-and-connect
// gestures in the UI routinely race against removal.
//
// # Invariants
//
// Two invariants hold for every graph reachable through the public API
// and are worth restating because every algorithm downstream assumes
// them: port references are always reciprocated, and a port holds at
// most one connection at a time. Connect enforces the latter by
// severing any existing connection on either end before linking.
//
// # Serialization
//
// [FromGraph] and [ToGraph] convert between the live graph and its
// canonical record form ([GraphRecord]), which round-trips losslessly
// through JSON and BSON. History snapshots and the persistence layer
// both build on this format.
package blockgraph
