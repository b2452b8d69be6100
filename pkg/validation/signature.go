package validation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
)

// Signature returns a canonical string encoding of the graph's
// validation-relevant content: sorted (blockID, category) pairs
// followed by sorted connection pairs. Two graphs with the same blocks
// and connections produce the same signature regardless of insertion
// order, port enumeration order, or block positions - positions do not
// participate in structural classification, so moving a block leaves
// the signature unchanged.
func Signature(g *blockgraph.Graph) string {
	blocks := make([]string, 0, g.BlockCount())
	for _, b := range g.Blocks() {
		blocks = append(blocks, b.ID+"="+string(b.Category))
	}
	slices.Sort(blocks)

	var conns []string
	for _, c := range g.Connections() {
		a := c.From.BlockID + "." + c.From.PortID
		b := c.To.BlockID + "." + c.To.PortID
		// Canonical orientation: lexicographically smaller end first.
		if b < a {
			a, b = b, a
		}
		conns = append(conns, a+"<->"+b)
	}
	slices.Sort(conns)

	return strings.Join(blocks, ";") + "|" + strings.Join(conns, ";")
}

// requirementKey returns a deterministic key for a requirement. Slices
// are sorted before hashing so that rule order does not fragment the
// cache.
func requirementKey(req analyze.Requirement) string {
	norm := req
	norm.RequiresBlockType = slices.Clone(req.RequiresBlockType)
	slices.Sort(norm.RequiresBlockType)
	norm.RequiresConnection = slices.Clone(req.RequiresConnection)
	slices.SortFunc(norm.RequiresConnection, func(a, b analyze.ConnectionRule) int {
		return strings.Compare(a.A+"/"+a.B, b.A+"/"+b.B)
	})

	data, _ := json.Marshal(norm)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
