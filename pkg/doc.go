// Package pkg provides the core libraries of the Blockloom block-graph
// engine.
//
// # Overview
//
// Blockloom is the engine behind a visual-programming canvas: users
// place blocks, wire their ports together, and the engine validates the
// result against challenge requirements. The pkg directory splits into
// the in-memory engine and the infrastructure around it:
//
//  1. [blockgraph] - The graph model (blocks, ports, connections)
//  2. [blockgraph/analyze] - Structural classification and requirements
//  3. [validation] - Memoized requirement verdicts
//  4. [history] - Bounded undo/redo over graph snapshots
//  5. [workspace] - Graph + validator + history behind one mutation surface
//  6. [challenge], [render], [store], [cache] - The edges: challenge
//     files, diagrams, persistence, artifact caching
//
// # Architecture
//
// The typical data flow:
//
//	canvas gesture / HTTP request / CLI command
//	         ↓
//	    [workspace] (mutate, snapshot, invalidate)
//	         ↓
//	    [blockgraph] (graph model, symmetry invariant)
//	         ↓
//	    [blockgraph/analyze] (sequence / loop classification)
//	         ↓
//	    verdict, DOT/SVG diagram, or saved document
//
// # Quick Start
//
// Build a graph and check it against a requirement:
//
//	import (
//	    "github.com/weftlabs/blockloom/pkg/blockgraph"
//	    "github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
//	    "github.com/weftlabs/blockloom/pkg/workspace"
//	)
//
//	ws := workspace.New()
//	pat := ws.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{X: 0, Y: 0})
//	col := ws.NewBlock(blockgraph.CategoryColor, blockgraph.Point{X: 200, Y: 0})
//	ws.Connect(pat.ID, "out", col.ID, "in")
//
//	res := ws.Check(analyze.Requirement{
//	    MinConnections:    1,
//	    RequiresBlockType: []string{"pattern", "color"},
//	})
//	fmt.Println(res.Satisfied)
//
//	ws.Undo() // back to the state before the connect
//
// # Main Packages
//
// [blockgraph] - Blocks, typed ports, and symmetric connections. The
// mutation operations maintain the invariant that every connection is
// referenced identically from both of its ends. Serialization to a
// stable JSON record format lives here too.
//
// [blockgraph/analyze] - Undirected structural analysis (sequences,
// loops) and requirement evaluation. Requirements combine a minimum
// connection count, required categories, required connections, and a
// required structural shape.
//
// [validation] - Content-addressed verdict memo keyed by a canonical
// graph signature, cleared wholesale on every structural mutation.
//
// [history] - Bounded linear undo/redo log over serialized snapshots.
//
// [workspace] - The composition root of the engine: one graph, its
// validator, and its history behind a single mutation surface.
//
// [challenge] - TOML and JSON challenge file loading.
//
// [render] - Graphviz DOT/SVG diagrams and absolute port positions for
// canvas drawing.
//
// [store] - Workspace persistence: memory, file, and MongoDB backends
// (the last in [store/mongostore]).
//
// [cache] - Byte caches for rendered artifacts: memory, Redis, and a
// null implementation.
//
// [observability] - Hook interfaces for instrumenting mutations,
// analysis runs, and cache operations without binding the engine to a
// metrics backend.
//
// [errors] - Structured error codes for the CLI and HTTP surfaces. The
// engine itself reports absence through boolean returns; codes apply at
// the I/O boundaries.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/blockgraph/...   # Specific package
//
// [blockgraph]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/blockgraph
// [blockgraph/analyze]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/blockgraph/analyze
// [validation]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/validation
// [history]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/history
// [workspace]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/workspace
// [challenge]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/challenge
// [render]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/render
// [store]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/store
// [store/mongostore]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/store/mongostore
// [cache]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/cache
// [observability]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/observability
// [errors]: https://pkg.go.dev/github.com/weftlabs/blockloom/pkg/errors
package pkg
