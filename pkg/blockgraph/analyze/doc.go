// Package analyze implements read-only structural analysis over block
// graphs: connection-graph export, cycle and sequence detection, and
// requirement evaluation.
//
// All functions in this package are pure with respect to the graph:
// they traverse but never mutate. Connections are treated as undirected
// edges between blocks, with multiple port pairs between the same two
// blocks collapsed into a single adjacency.
//
// The classifiers answer "what shape is this graph": a cycle anywhere
// means loop structure, a simple path of three or more blocks means
// sequence structure, and conditional structure is reserved for future
// branch categories. An empty graph satisfies no shape, and a single
// isolated block never satisfies sequence or loop requirements.
package analyze
