// Package typevars implements the per-solve-scope TypeVarContext: a
// mapping from type-variable identity to {narrow bound, wide bound,
// retain-literals}, plus parameter-specification bindings, a solve-for
// scope set, and a lockable write gate.
package typevars

import "github.com/solace-lang/tycore/internal/types"

// Entry is the bound pair stored for one TypeVar.
type Entry struct {
	Narrow         types.Type
	Wide           types.Type
	RetainLiterals bool
}

// ParamSpecBinding records a parameter-specification's bound parameter
// list.
type ParamSpecBinding struct {
	Parameters   []types.Parameter
	Flags        types.FunctionFlags
	ScopeID      string
	ParamSpecRef *types.TypeVar
}

// Context is a TypeVarContext: created at the start of an assignability /
// call-argument matching task, mutated by the solver, sealed by Lock, and
// discarded when the task ends.
type Context struct {
	entries    map[types.VarKey]Entry
	paramSpecs map[types.VarKey]ParamSpecBinding
	solveFor   map[string]bool
	locked     bool
}

// New creates a Context whose solve-for set is exactly the given scope
// ids.
func New(solveForScopes ...string) *Context {
	sf := make(map[string]bool, len(solveForScopes))
	for _, id := range solveForScopes {
		sf[id] = true
	}
	return &Context{
		entries:    make(map[types.VarKey]Entry),
		paramSpecs: make(map[types.VarKey]ParamSpecBinding),
		solveFor:   sf,
	}
}

// HasSolveForScope reports membership of scopeID in the solve-for set.
func (c *Context) HasSolveForScope(scopeID string) bool {
	if c == nil {
		return false
	}
	return c.solveFor[scopeID]
}

// AddSolveForScope extends the solve-for set. Used when nested generic
// calls widen the scopes a single context is allowed to bind (e.g. `self`
// typed destinations reusing the ambient context).
func (c *Context) AddSolveForScope(scopeID string) {
	if c.locked {
		return
	}
	c.solveFor[scopeID] = true
}

// Get looks up the current bound pair for tv. ok is false on a miss.
func (c *Context) Get(tv types.TypeVar) (Entry, bool) {
	e, ok := c.entries[tv.Key()]
	return e, ok
}

// GetParamSpec looks up the current parameter-spec binding.
func (c *Context) GetParamSpec(tv types.TypeVar) (ParamSpecBinding, bool) {
	b, ok := c.paramSpecs[tv.Key()]
	return b, ok
}

// Set replaces the bound entry for tv. If the context is locked this is a
// no-op that reports false, which solver callers treat as "validate only".
// The caller (the solver) is responsible for having already verified
// narrow ⊑ wide before calling Set — Context trusts it blindly.
func (c *Context) Set(tv types.TypeVar, narrow, wide types.Type, retainLiterals bool) bool {
	if c.locked {
		return false
	}
	c.entries[tv.Key()] = Entry{Narrow: narrow, Wide: wide, RetainLiterals: retainLiterals}
	return true
}

// SetParamSpec records a parameter-spec binding, subject to the same
// locked-context no-op rule as Set.
func (c *Context) SetParamSpec(tv types.TypeVar, binding ParamSpecBinding) bool {
	if c.locked {
		return false
	}
	c.paramSpecs[tv.Key()] = binding
	return true
}

// Lock seals the context: all further Set/SetParamSpec/AddSolveForScope
// calls become no-ops.
func (c *Context) Lock() { c.locked = true }

// Locked reports whether the context has been locked.
func (c *Context) Locked() bool { return c.locked }

// Snapshot returns a shallow copy of the current entries, for tests that
// need to assert "no mutation happened".
func (c *Context) Snapshot() map[types.VarKey]Entry {
	out := make(map[types.VarKey]Entry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
