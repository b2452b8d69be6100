// Package validation memoizes structural-analysis verdicts so the UI
// can re-query graph validity every frame without re-running the
// analyzer when nothing changed.
//
// The cache is keyed by a canonical [Signature] of the graph combined
// with a digest of the requirement. Keys are content-addressed, so a
// stale entry can never be wrong - invalidation exists to bound memory,
// and since graphs in this domain are tens of blocks at most, the cache
// is simply cleared wholesale on every mutation rather than evicted
// entry by entry.
//
// A Validator is owned by a single workspace and passed alongside its
// graph; it is deliberately not process-wide state, so independent
// workspaces never share or cross-contaminate verdicts.
package validation

import (
	"context"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	"github.com/weftlabs/blockloom/pkg/observability"
)

// cacheKeyType labels validator entries in cache hook events.
const cacheKeyType = "verdict"

// Evaluator computes a requirement verdict for a graph. The default is
// [analyze.Satisfies]; tests substitute a counting wrapper to observe
// cache behavior.
type Evaluator func(*blockgraph.Graph, analyze.Requirement) analyze.Result

// Validator memoizes requirement verdicts for one workspace. Like the
// graph it validates, it assumes a single caller and is not safe for
// concurrent use.
type Validator struct {
	entries map[string]analyze.Result
	eval    Evaluator
}

// New creates an empty validator backed by [analyze.Satisfies].
func New() *Validator {
	return NewWithEvaluator(analyze.Satisfies)
}

// NewWithEvaluator creates a validator with a custom evaluator.
// A nil evaluator falls back to [analyze.Satisfies].
func NewWithEvaluator(eval Evaluator) *Validator {
	if eval == nil {
		eval = analyze.Satisfies
	}
	return &Validator{
		entries: make(map[string]analyze.Result),
		eval:    eval,
	}
}

// Check returns the verdict for the graph under the requirement,
// computing and storing it on first sight of this graph/requirement
// combination and returning the stored verdict afterwards.
func (v *Validator) Check(g *blockgraph.Graph, req analyze.Requirement) analyze.Result {
	key := Signature(g) + "#" + requirementKey(req)
	if res, ok := v.entries[key]; ok {
		observability.Cache().OnCacheHit(context.Background(), cacheKeyType)
		return res
	}
	observability.Cache().OnCacheMiss(context.Background(), cacheKeyType)
	res := v.eval(g, req)
	v.entries[key] = res
	return res
}

// Invalidate clears every stored verdict. Called after each structural
// mutation and after undo/redo.
func (v *Validator) Invalidate() {
	v.entries = make(map[string]analyze.Result)
}

// Len returns the number of stored verdicts.
func (v *Validator) Len() int { return len(v.entries) }
