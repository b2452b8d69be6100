package analyze

import (
	"slices"
	"testing"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// patternColor wires a pattern block "p" into a color block "c".
func patternColor(t *testing.T) *blockgraph.Graph {
	t.Helper()
	g := blockgraph.New()
	p := blockgraph.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	p.ID = "p"
	c := blockgraph.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	c.ID = "c"
	if err := g.AddBlock(p); err != nil {
		t.Fatal(err)
	}
	if err := g.AddBlock(c); err != nil {
		t.Fatal(err)
	}
	if !g.Connect("p", "out", "c", "in") {
		t.Fatal("connect failed")
	}
	return g
}

func TestSatisfiesEmptyRequirement(t *testing.T) {
	res := Satisfies(blockgraph.New(), Requirement{})
	if !res.Satisfied {
		t.Error("empty requirement against empty graph should be satisfied")
	}
}

func TestSatisfiesMinConnections(t *testing.T) {
	g := patternColor(t)

	if res := Satisfies(g, Requirement{MinConnections: 1}); !res.Satisfied {
		t.Errorf("one connection should satisfy minConnections=1: %+v", res)
	}
	res := Satisfies(g, Requirement{MinConnections: 2})
	if res.Satisfied || res.MinConnectionsOK {
		t.Errorf("one connection should fail minConnections=2: %+v", res)
	}
}

func TestSatisfiesBlockTypes(t *testing.T) {
	g := patternColor(t)

	res := Satisfies(g, Requirement{RequiresBlockType: []string{"pattern", "color"}})
	if !res.Satisfied {
		t.Errorf("present categories should pass: %+v", res)
	}

	res = Satisfies(g, Requirement{RequiresBlockType: []string{"pattern", "loop", "column"}})
	if res.Satisfied || res.BlockTypesOK {
		t.Errorf("missing categories should fail: %+v", res)
	}
	if !slices.Equal(res.MissingCategories, []string{"loop", "column"}) {
		t.Errorf("MissingCategories = %v, want [loop column]", res.MissingCategories)
	}
}

func TestSatisfiesConnections(t *testing.T) {
	g := patternColor(t)

	tests := []struct {
		name string
		rule ConnectionRule
		want bool
	}{
		{"ByCategory", ConnectionRule{A: "pattern", B: "color"}, true},
		{"ByCategoryReversed", ConnectionRule{A: "color", B: "pattern"}, true},
		{"ByID", ConnectionRule{A: "p", B: "c"}, true},
		{"MixedIDAndCategory", ConnectionRule{A: "p", B: "color"}, true},
		{"Absent", ConnectionRule{A: "pattern", B: "loop"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Satisfies(g, Requirement{RequiresConnection: []ConnectionRule{tt.rule}})
			if res.Satisfied != tt.want {
				t.Errorf("Satisfied = %v, want %v (%+v)", res.Satisfied, tt.want, res)
			}
		})
	}
}

func TestSatisfiesStructure(t *testing.T) {
	g := patternColor(t) // two blocks: no sequence, no loop

	res := Satisfies(g, Requirement{RequiresStructure: StructureSequence})
	if res.Satisfied || res.StructureOK {
		t.Errorf("two-block chain should fail sequence requirement: %+v", res)
	}

	// Extend to three blocks.
	l := blockgraph.NewBlock(blockgraph.CategoryLoop, blockgraph.Point{})
	l.ID = "l"
	g.AddBlock(l)
	g.Connect("c", "out", "l", "in")

	if res := Satisfies(g, Requirement{RequiresStructure: StructureSequence}); !res.Satisfied {
		t.Errorf("three-block chain should satisfy sequence requirement: %+v", res)
	}
	if res := Satisfies(g, Requirement{RequiresStructure: StructureLoop}); res.Satisfied {
		t.Errorf("chain should fail loop requirement: %+v", res)
	}
}

func TestSatisfiesAllPredicatesAnd(t *testing.T) {
	g := patternColor(t)

	// Every predicate passes except the structural one.
	req := Requirement{
		MinConnections:     1,
		RequiresBlockType:  []string{"pattern"},
		RequiresConnection: []ConnectionRule{{A: "pattern", B: "color"}},
		RequiresStructure:  StructureLoop,
	}
	res := Satisfies(g, req)
	if res.Satisfied {
		t.Errorf("one failing predicate must fail the whole requirement: %+v", res)
	}
	if !res.MinConnectionsOK || !res.BlockTypesOK || !res.ConnectionsOK || res.StructureOK {
		t.Errorf("per-predicate breakdown wrong: %+v", res)
	}
}
