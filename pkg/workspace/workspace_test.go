package workspace

import (
	"testing"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	"github.com/weftlabs/blockloom/pkg/validation"
)

// counted builds a workspace whose validator counts analyzer runs.
func counted(t *testing.T) (*Workspace, *int) {
	t.Helper()
	calls := new(int)
	v := validation.NewWithEvaluator(func(g *blockgraph.Graph, req analyze.Requirement) analyze.Result {
		*calls++
		return analyze.Satisfies(g, req)
	})
	return New(WithValidator(v)), calls
}

func TestChallengeFlow(t *testing.T) {
	// A pattern block wired into a color block satisfies a challenge
	// asking for exactly that; removing the pattern block breaks it.
	w := New()
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{X: 0, Y: 0})
	c := w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{X: 200, Y: 0})
	if !w.Connect(p.ID, "out", c.ID, "in") {
		t.Fatal("Connect failed")
	}

	req := analyze.Requirement{
		MinConnections:     1,
		RequiresBlockType:  []string{"pattern", "color"},
		RequiresConnection: []analyze.ConnectionRule{{A: "pattern", B: "color"}},
	}
	if res := w.Check(req); !res.Satisfied {
		t.Fatalf("wired graph should satisfy the challenge: %+v", res)
	}

	if !w.RemoveBlock(p.ID) {
		t.Fatal("RemoveBlock failed")
	}
	res := w.Check(req)
	if res.Satisfied {
		t.Fatalf("graph without the pattern block still satisfies: %+v", res)
	}
	if res.BlockTypesOK || res.MinConnectionsOK || res.ConnectionsOK {
		t.Errorf("breakdown after removal = %+v", res)
	}
}

func TestCheckUsesMemoUntilMutation(t *testing.T) {
	w, calls := counted(t)
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	c := w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	w.Connect(p.ID, "out", c.ID, "in")
	req := analyze.Requirement{MinConnections: 1}

	w.Check(req)
	w.Check(req)
	if *calls != 1 {
		t.Fatalf("analyzer ran %d times for repeated Check, want 1", *calls)
	}

	// A structural mutation forces a recompute.
	w.Disconnect(p.ID, "out")
	w.Check(req)
	if *calls != 2 {
		t.Fatalf("analyzer ran %d times after mutation, want 2", *calls)
	}
}

func TestMoveDoesNotInvalidate(t *testing.T) {
	w, calls := counted(t)
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	req := analyze.Requirement{RequiresBlockType: []string{"pattern"}}

	w.Check(req)
	if !w.MoveBlock(p.ID, blockgraph.Point{X: 300, Y: 40}) {
		t.Fatal("MoveBlock failed")
	}
	w.Check(req)

	if *calls != 1 {
		t.Errorf("analyzer ran %d times, want 1: a move must not clear the memo", *calls)
	}
}

func TestMoveIsUndoable(t *testing.T) {
	w := New()
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{X: 10, Y: 10})
	w.MoveBlock(p.ID, blockgraph.Point{X: 90, Y: 90})

	if !w.Undo() {
		t.Fatal("Undo failed")
	}
	b, ok := w.Graph().Block(p.ID)
	if !ok {
		t.Fatal("block lost after undo")
	}
	if b.Position.X != 10 || b.Position.Y != 10 {
		t.Errorf("position after undo = %+v, want (10, 10)", b.Position)
	}
}

func TestUndoRedo(t *testing.T) {
	w := New()
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	c := w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	w.Connect(p.ID, "out", c.ID, "in")

	// Undo the connect.
	if !w.Undo() {
		t.Fatal("Undo failed")
	}
	if w.Graph().ConnectionCount() != 0 {
		t.Errorf("connections after undo = %d, want 0", w.Graph().ConnectionCount())
	}

	// Redo restores it, including both sides of the port references.
	if !w.Redo() {
		t.Fatal("Redo failed")
	}
	if w.Graph().ConnectionCount() != 1 {
		t.Errorf("connections after redo = %d, want 1", w.Graph().ConnectionCount())
	}
	port, _ := w.Graph().Port(c.ID, "in")
	if port.ConnectedTo == nil || port.ConnectedTo.BlockID != p.ID {
		t.Errorf("redo did not restore the reciprocal reference: %+v", port.ConnectedTo)
	}

	// Undo all the way to the initial empty state.
	for w.CanUndo() {
		w.Undo()
	}
	if w.Graph().BlockCount() != 0 {
		t.Errorf("blocks at history floor = %d, want 0", w.Graph().BlockCount())
	}
	if w.Undo() {
		t.Error("Undo at the floor should be a no-op")
	}
}

func TestMutationTruncatesRedo(t *testing.T) {
	w := New()
	w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})

	w.Undo()
	if !w.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}
	w.NewBlock(blockgraph.CategoryLoop, blockgraph.Point{})
	if w.CanRedo() {
		t.Error("CanRedo = true after a mutation, want truncated future")
	}
}

func TestHistoryCapacityBound(t *testing.T) {
	const capacity = 5
	w := New(WithHistoryCapacity(capacity))
	for i := 0; i < capacity+5; i++ {
		w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	}

	undos := 0
	for w.CanUndo() {
		w.Undo()
		undos++
	}
	if undos != capacity {
		t.Errorf("undoable steps = %d, want %d", undos, capacity)
	}
	// The oldest reachable state already contains the evicted blocks.
	if got := w.Graph().BlockCount(); got != 5 {
		t.Errorf("blocks at history floor = %d, want 5", got)
	}
}

func TestUndoInvalidatesVerdicts(t *testing.T) {
	w, calls := counted(t)
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	c := w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	w.Connect(p.ID, "out", c.ID, "in")
	req := analyze.Requirement{MinConnections: 1}

	if res := w.Check(req); !res.Satisfied {
		t.Fatalf("connected graph should satisfy: %+v", res)
	}
	w.Undo()
	res := w.Check(req)
	if res.Satisfied {
		t.Fatalf("verdict after undo still satisfied: %+v", res)
	}
	if *calls != 2 {
		t.Errorf("analyzer ran %d times, want 2 (recompute after undo)", *calls)
	}
}

func TestFailedMutationsLeaveStateAlone(t *testing.T) {
	w, calls := counted(t)
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	req := analyze.Requirement{}
	w.Check(req)

	if w.RemoveBlock("missing") {
		t.Error("RemoveBlock of missing block = true")
	}
	if w.Connect(p.ID, "out", "ghost", "in") {
		t.Error("Connect to missing block = true")
	}
	if w.MoveBlock("missing", blockgraph.Point{}) {
		t.Error("MoveBlock of missing block = true")
	}

	// No snapshot was recorded and the memo survived.
	w.Check(req)
	if *calls != 1 {
		t.Errorf("analyzer ran %d times, want 1: failed mutations must not invalidate", *calls)
	}
	w.Undo()
	if w.Graph().BlockCount() != 0 {
		t.Error("failed mutations recorded history snapshots")
	}
}

func TestLoadRestoresWorkspace(t *testing.T) {
	w := New()
	p := w.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	c := w.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	w.Connect(p.ID, "out", c.ID, "in")

	restored, err := Load(w.Record())
	if err != nil {
		t.Fatal(err)
	}
	if restored.Signature() != w.Signature() {
		t.Errorf("signatures differ after load:\n%s\n%s", restored.Signature(), w.Signature())
	}
	// The loaded state is the history floor.
	if restored.CanUndo() {
		t.Error("freshly loaded workspace should have nothing to undo")
	}
}

func TestLoadRejectsCorruptRecord(t *testing.T) {
	rec := blockgraph.GraphRecord{Blocks: []blockgraph.BlockRecord{
		{ID: "a", Category: "pattern", Ports: []blockgraph.PortRecord{
			{ID: "out", Direction: "output", ConnectedBlock: "ghost", ConnectedPort: "in"},
		}},
	}}
	if _, err := Load(rec); err == nil {
		t.Fatal("Load accepted a record with a dangling connection")
	}
}
