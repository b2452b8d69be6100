// Package challenge loads requirement specifications from challenge
// files authored by the curriculum layer.
//
// Challenges are written in TOML (the authoring format) or JSON (the
// interchange format used by the API). Unrecognized keys are ignored,
// not rejected: a challenge file written against a newer engine still
// loads, its unknown predicates simply absent. A challenge with no
// recognized requirement keys is valid and trivially satisfied.
package challenge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	bperrors "github.com/weftlabs/blockloom/pkg/errors"
)

// Challenge couples a requirement with its presentation metadata.
type Challenge struct {
	Name        string              `toml:"name" json:"name"`
	Description string              `toml:"description" json:"description,omitempty"`
	Requirement analyze.Requirement `toml:"requirement" json:"requirement"`
}

// Load reads a challenge from a TOML or JSON file, chosen by extension.
func Load(path string) (Challenge, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".json":
		return LoadJSON(path)
	default:
		return Challenge{}, bperrors.New(bperrors.ErrCodeInvalidChallenge,
			"unsupported challenge file %q (want .toml or .json)", filepath.Base(path))
	}
}

// LoadTOML reads a challenge from a TOML file.
func LoadTOML(path string) (Challenge, error) {
	var c Challenge
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Challenge{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// LoadJSON reads a challenge from a JSON file.
func LoadJSON(path string) (Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Challenge{}, fmt.Errorf("read %s: %w", path, err)
	}
	var c Challenge
	if err := json.Unmarshal(data, &c); err != nil {
		return Challenge{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// ParseRequirement decodes a bare requirement from JSON bytes, as
// submitted to the validation API.
func ParseRequirement(data []byte) (analyze.Requirement, error) {
	var req analyze.Requirement
	if err := json.Unmarshal(data, &req); err != nil {
		return analyze.Requirement{}, fmt.Errorf("decode requirement: %w", err)
	}
	return req, nil
}
