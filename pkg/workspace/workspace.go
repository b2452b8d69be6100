// Package workspace composes the block-graph engine: one graph, its
// validation cache, and its undo/redo history behind a single mutation
// surface.
//
// UI-level callers go through a Workspace rather than mutating the
// graph directly, because every successful mutation has two side
// effects the graph itself knows nothing about: the validator's memo
// is cleared and a snapshot is recorded for undo. Failed operations
// (unknown block, incompatible ports) leave cache and history alone.
//
// A Workspace is synchronous and single-writer, like the graph it
// owns. Callers with multiple UI surfaces over one workspace must
// serialize access externally; internal/server does so with a
// per-workspace mutex.
package workspace

import (
	"context"
	"time"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	"github.com/weftlabs/blockloom/pkg/history"
	"github.com/weftlabs/blockloom/pkg/observability"
	"github.com/weftlabs/blockloom/pkg/validation"
)

// Workspace owns a graph together with its validator and history.
// The zero value is not usable - use [New] or [Load].
type Workspace struct {
	graph     *blockgraph.Graph
	validator *validation.Validator
	log       *history.Log
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithHistoryCapacity sets the number of undoable steps (default 50).
func WithHistoryCapacity(n int) Option {
	return func(w *Workspace) {
		w.log = history.New(snapshot(w.graph), n)
	}
}

// WithValidator substitutes the validator, typically to inject a
// counting evaluator in tests.
func WithValidator(v *validation.Validator) Option {
	return func(w *Workspace) {
		if v != nil {
			w.validator = v
		}
	}
}

// New creates a workspace over an empty graph. The empty state is
// recorded as the oldest history snapshot, so the first mutation can
// be undone back to it.
func New(opts ...Option) *Workspace {
	g := blockgraph.New()
	w := &Workspace{
		graph:     g,
		validator: validation.New(),
		log:       history.New(snapshot(g), history.DefaultCapacity),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load creates a workspace over a previously serialized graph record.
func Load(rec blockgraph.GraphRecord, opts ...Option) (*Workspace, error) {
	g, err := blockgraph.ToGraph(rec)
	if err != nil {
		return nil, err
	}
	w := &Workspace{
		graph:     g,
		validator: validation.New(),
		log:       history.New(snapshot(g), history.DefaultCapacity),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Graph returns the live graph. Callers must treat it as read-only;
// mutations go through the Workspace so that cache and history stay
// coherent.
func (w *Workspace) Graph() *blockgraph.Graph { return w.graph }

// Record returns the current graph in its serialization format.
func (w *Workspace) Record() blockgraph.GraphRecord {
	return blockgraph.FromGraph(w.graph)
}

// =============================================================================
// Mutations
// =============================================================================

// AddBlock appends a block to the graph.
func (w *Workspace) AddBlock(b *blockgraph.Block) error {
	if err := w.graph.AddBlock(b); err != nil {
		return err
	}
	w.committed("add_block")
	return nil
}

// NewBlock creates a block of the given category at the given position
// with default ports and properties, adds it, and returns it.
func (w *Workspace) NewBlock(c blockgraph.Category, pos blockgraph.Point) *blockgraph.Block {
	b := blockgraph.NewBlock(c, pos)
	// A generated UUID cannot collide with an existing block.
	_ = w.graph.AddBlock(b)
	w.committed("add_block")
	return b
}

// RemoveBlock removes a block, severing all its connections first.
// Reports whether a block was removed.
func (w *Workspace) RemoveBlock(id string) bool {
	if !w.graph.RemoveBlock(id) {
		return false
	}
	w.committed("remove_block")
	return true
}

// MoveBlock updates a block's position. The move is recorded in
// history, but the validation cache is left intact: position is not
// part of the canonical signature, so cached verdicts remain correct.
func (w *Workspace) MoveBlock(id string, pos blockgraph.Point) bool {
	if !w.graph.MoveBlock(id, pos) {
		return false
	}
	w.log.Record(snapshot(w.graph))
	observability.Engine().OnMutation(context.Background(), "move_block",
		w.graph.BlockCount(), w.graph.ConnectionCount())
	return true
}

// SetProperties replaces a block's property map.
func (w *Workspace) SetProperties(id string, props map[string]any) bool {
	if !w.graph.SetProperties(id, props) {
		return false
	}
	w.committed("set_properties")
	return true
}

// Connect wires two ports together under the compatibility rules of
// [blockgraph.Graph.Connect]. Reports success.
func (w *Workspace) Connect(fromBlockID, fromPortID, toBlockID, toPortID string) bool {
	if !w.graph.Connect(fromBlockID, fromPortID, toBlockID, toPortID) {
		return false
	}
	w.committed("connect")
	return true
}

// Disconnect severs the connection held by the named port.
func (w *Workspace) Disconnect(blockID, portID string) bool {
	if !w.graph.Disconnect(blockID, portID) {
		return false
	}
	w.committed("disconnect")
	return true
}

// DisconnectPair severs the specific connection between two named ports.
func (w *Workspace) DisconnectPair(blockID1, portID1, blockID2, portID2 string) bool {
	if !w.graph.DisconnectPair(blockID1, portID1, blockID2, portID2) {
		return false
	}
	w.committed("disconnect")
	return true
}

// =============================================================================
// Undo / Redo
// =============================================================================

// Undo restores the previous snapshot. Reports whether a step was
// taken; at the oldest state Undo is a no-op.
func (w *Workspace) Undo() bool {
	snap, ok := w.log.Undo()
	if !ok {
		return false
	}
	w.restore(snap)
	return true
}

// Redo restores the next snapshot after an undo. Reports whether a
// step was taken.
func (w *Workspace) Redo() bool {
	snap, ok := w.log.Redo()
	if !ok {
		return false
	}
	w.restore(snap)
	return true
}

// CanUndo reports whether an undo step is available.
func (w *Workspace) CanUndo() bool { return w.log.CanUndo() }

// CanRedo reports whether a redo step is available.
func (w *Workspace) CanRedo() bool { return w.log.CanRedo() }

// =============================================================================
// Validation
// =============================================================================

// Check evaluates the requirement against the current graph, consulting
// the validator's memo first.
func (w *Workspace) Check(req analyze.Requirement) analyze.Result {
	start := time.Now()
	res := w.validator.Check(w.graph, req)
	observability.Engine().OnAnalysis(context.Background(), res.Satisfied, time.Since(start))
	return res
}

// Signature returns the canonical signature of the current graph.
func (w *Workspace) Signature() string { return validation.Signature(w.graph) }

// committed runs the post-mutation side effects: clear the verdict
// memo, record a snapshot, emit the mutation event.
func (w *Workspace) committed(op string) {
	w.validator.Invalidate()
	w.log.Record(snapshot(w.graph))
	observability.Engine().OnMutation(context.Background(), op,
		w.graph.BlockCount(), w.graph.ConnectionCount())
}

// restore replaces the live graph with a snapshot's content. Restored
// graphs never reuse verdicts from the pre-undo timeline; signatures
// are content-addressed so reuse would be sound, but clearing is free
// at this scale and removes the question.
func (w *Workspace) restore(snap []byte) {
	g, err := blockgraph.UnmarshalGraph(snap)
	if err != nil {
		// Snapshots are produced by MarshalGraph on graphs that held
		// the engine invariants; failure here is a defect, not input.
		panic("workspace: corrupt history snapshot: " + err.Error())
	}
	w.graph = g
	w.validator.Invalidate()
}

func snapshot(g *blockgraph.Graph) []byte {
	data, err := blockgraph.MarshalGraph(g)
	if err != nil {
		panic("workspace: snapshot graph: " + err.Error())
	}
	return data
}
