// Package evalapi is the public façade the core exposes to a checker:
// NarrowingCallbackFor, AssignTypeVar, PopulateContextFromExpectedType,
// and the parse-tree predicates. A checker (or, in this repo,
// cmd/tyeval's scenario runner) imports only this package and
// internal/capability — never the solver/narrow internals directly —
// matching the teacher's pkg/ vs internal/ boundary (pkg/cli only ever
// called into internal/evaluator and friends through a handful of named
// entry points, never reaching into their private state).
package evalapi

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/narrow"
	"github.com/solace-lang/tycore/internal/solver"
	"github.com/solace-lang/tycore/internal/tree"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// Capabilities re-exports internal/capability.Capabilities so callers never
// need to import the internal package directly.
type Capabilities = capability.Capabilities

// Context re-exports internal/typevars.Context.
type Context = typevars.Context

// Sink re-exports internal/diagnostics.Sink.
type Sink = diagnostics.Sink

// Budget re-exports internal/types.Budget.
type Budget = types.Budget

// NewContext re-exports internal/typevars.New.
func NewContext(solveForScopes ...string) *Context { return typevars.New(solveForScopes...) }

// NewBudget re-exports internal/types.NewBudget.
func NewBudget(max int, cancelled func() bool) *Budget { return types.NewBudget(max, cancelled) }

// NewBudgetWithLimits re-exports internal/types.NewBudgetWithLimits.
func NewBudgetWithLimits(max, maxSubtypes int, cancelled func() bool) *Budget {
	return types.NewBudgetWithLimits(max, maxSubtypes, cancelled)
}

// NewSink re-exports internal/diagnostics.NewSink.
func NewSink() *Sink { return diagnostics.NewSink() }

// NarrowingCallbackFor resolves the narrowing callback for one test
// expression/reference pair, or (nil, false) when no pattern applies.
func NarrowingCallbackFor(t *tree.Tree, caps Capabilities, referenceID, testExprID int, isPositive bool, budget *Budget) (func(types.Type) types.Type, bool) {
	cb, ok := narrow.GetNarrowingCallback(t, caps, referenceID, testExprID, isPositive, budget)
	if !ok {
		return nil, false
	}
	return func(in types.Type) types.Type { return cb(in) }, true
}

// AssignTypeVar re-exports internal/solver.AssignTypeVar.
func AssignTypeVar(caps Capabilities, dest types.TypeVar, src types.Type, diag *Sink, ctx *Context, flags types.AssignFlags, budget *Budget) bool {
	return solver.AssignTypeVar(caps, dest, src, diag, ctx, flags, budget)
}

// AssignParamSpec re-exports internal/solver.AssignParamSpec.
func AssignParamSpec(dest types.TypeVar, src types.Type, diag *Sink, ctx *Context) bool {
	return solver.AssignParamSpec(dest, src, diag, ctx)
}

// PopulateContextFromExpectedType re-exports
// internal/solver.PopulateContextFromExpectedType.
func PopulateContextFromExpectedType(caps Capabilities, target, expected types.Class, ctx *Context, budget *Budget) bool {
	return solver.PopulateContextFromExpectedType(caps, target, expected, ctx, budget)
}

// EnclosingScope, EvaluationScope, IsMatchingExpression,
// IsPartialMatchingExpression, IsWriteAccess, IsDocstring, StatementRange
// and ActiveArgumentIndex are the parse-tree predicates internal/tree
// implements, re-exported here so pkg/evalapi is the one-stop façade.
var (
	EnclosingScope              = tree.EnclosingScope
	EnclosingFunctionScope      = tree.EnclosingFunctionScope
	EvaluationScope             = tree.EvaluationScope
	IsMatchingExpression        = tree.IsMatchingExpression
	IsPartialMatchingExpression = tree.IsPartialMatchingExpression
	IsWriteAccess               = tree.IsWriteAccess
	IsDocstring                 = tree.IsDocstring
	StatementRange              = tree.StatementRange
	ActiveArgumentIndex         = tree.ActiveArgumentIndex
)
