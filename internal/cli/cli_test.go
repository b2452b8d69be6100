package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"validate": false,
		"analyze":  false,
		"render":   false,
		"inspect":  false,
		"serve":    false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

// writeGraphFile writes a two-block connected graph for command tests.
func writeGraphFile(t *testing.T) string {
	t.Helper()
	g := blockgraph.New()
	p := blockgraph.NewBlock(blockgraph.CategoryPattern, blockgraph.Point{})
	p.ID = "p"
	c := blockgraph.NewBlock(blockgraph.CategoryColor, blockgraph.Point{})
	c.ID = "c"
	g.AddBlock(p)
	g.AddBlock(c)
	g.Connect("p", "out", "c", "in")

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := blockgraph.WriteGraphFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	graphPath := writeGraphFile(t)
	challengePath := filepath.Join(t.TempDir(), "challenge.toml")
	if err := os.WriteFile(challengePath, []byte(`
name = "Wire It Up"

[requirement]
min_connections = 1
requires_block_type = ["pattern", "color"]
`), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", graphPath, "--challenge", challengePath})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate on a satisfying graph failed: %v", err)
	}
}

func TestValidateCommandUnsatisfied(t *testing.T) {
	graphPath := writeGraphFile(t)
	challengePath := filepath.Join(t.TempDir(), "challenge.toml")
	if err := os.WriteFile(challengePath, []byte(`
name = "Impossible"

[requirement]
min_connections = 99
`), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", graphPath, "--challenge", challengePath})
	if err := root.Execute(); err == nil {
		t.Fatal("validate on an unsatisfying graph should exit non-zero")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	graphPath := writeGraphFile(t)

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"analyze", graphPath, "--adjacency"})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
}

func TestValidateCommandMissingGraph(t *testing.T) {
	challengePath := filepath.Join(t.TempDir(), "challenge.toml")
	os.WriteFile(challengePath, []byte(`name = "X"`), 0644)

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", filepath.Join(t.TempDir(), "missing.json"), "-c", challengePath})
	if err := root.Execute(); err == nil {
		t.Fatal("validate with a missing graph file should fail")
	}
}
