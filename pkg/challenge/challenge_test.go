package challenge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	bperrors "github.com/weftlabs/blockloom/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleTOML = `
name = "First Weave"
description = "Wire a pattern into a color block."

[requirement]
min_connections = 1
requires_block_type = ["pattern", "color"]
requires_structure = "sequence"

[[requirement.requires_connection]]
a = "pattern"
b = "color"
`

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "first.toml", sampleTOML)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "First Weave" {
		t.Errorf("Name = %q", c.Name)
	}
	req := c.Requirement
	if req.MinConnections != 1 {
		t.Errorf("MinConnections = %d, want 1", req.MinConnections)
	}
	if len(req.RequiresBlockType) != 2 {
		t.Errorf("RequiresBlockType = %v", req.RequiresBlockType)
	}
	if len(req.RequiresConnection) != 1 || req.RequiresConnection[0].A != "pattern" {
		t.Errorf("RequiresConnection = %v", req.RequiresConnection)
	}
	if req.RequiresStructure != analyze.StructureSequence {
		t.Errorf("RequiresStructure = %q", req.RequiresStructure)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "first.json", `{
		"name": "First Weave",
		"requirement": {
			"minConnections": 2,
			"requiresBlockType": ["loop"]
		}
	}`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Requirement.MinConnections != 2 {
		t.Errorf("MinConnections = %d, want 2", c.Requirement.MinConnections)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	// Keys from a newer engine version load without error.
	tomlPath := writeFile(t, "future.toml", `
name = "Future"
difficulty = 3

[requirement]
min_connections = 1
requires_mystery = true
`)
	c, err := Load(tomlPath)
	if err != nil {
		t.Fatalf("TOML with unknown keys rejected: %v", err)
	}
	if c.Requirement.MinConnections != 1 {
		t.Errorf("MinConnections = %d, want 1", c.Requirement.MinConnections)
	}

	jsonPath := writeFile(t, "future.json", `{
		"name": "Future",
		"requirement": {"minConnections": 1, "requiresMystery": true}
	}`)
	if _, err := Load(jsonPath); err != nil {
		t.Fatalf("JSON with unknown keys rejected: %v", err)
	}
}

func TestLoadEmptyRequirement(t *testing.T) {
	path := writeFile(t, "empty.toml", `name = "Sandbox"`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := analyze.Requirement{}
	if c.Requirement.MinConnections != want.MinConnections ||
		c.Requirement.RequiresStructure != want.RequiresStructure {
		t.Errorf("Requirement = %+v, want zero value", c.Requirement)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "bad.yaml", "name: nope")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted a .yaml file")
	}
	if bperrors.GetCode(err) != bperrors.ErrCodeInvalidChallenge {
		t.Errorf("code = %s, want %s", bperrors.GetCode(err), bperrors.ErrCodeInvalidChallenge)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestParseRequirement(t *testing.T) {
	req, err := ParseRequirement([]byte(`{"minConnections": 3, "requiresStructure": "loop"}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.MinConnections != 3 || req.RequiresStructure != analyze.StructureLoop {
		t.Errorf("req = %+v", req)
	}

	if _, err := ParseRequirement([]byte("{bad")); err == nil {
		t.Fatal("ParseRequirement accepted malformed JSON")
	}
}
