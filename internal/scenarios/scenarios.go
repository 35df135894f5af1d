// Package scenarios holds the fixed battery of solver/narrowing-engine
// scenarios cmd/tyeval reports on interactively and cmd/tybench times
// repeatedly for regression tracking. Factored out of a single command so
// neither driver duplicates the fixture-building code: one scenario
// battery, two consumers.
package scenarios

import (
	"fmt"

	"github.com/solace-lang/tycore/internal/tree"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/pkg/evalapi"
)

// Result is the outcome of running one scenario.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Scenario is one fixture-and-assert function against a shared Budget and
// a solve-for scope list (the scope a fresh TypeVarContext is seeded
// with — a scenario that doesn't need a context-wide scope ignores it).
type Scenario func(budget *evalapi.Budget, solveForScopes []string) Result

// scopeOrDefault returns the first configured solve-for scope, or "s" when
// none was configured (mirroring the scenarios' original hardcoded scope).
func scopeOrDefault(scopes []string) string {
	if len(scopes) > 0 {
		return scopes[0]
	}
	return "s"
}

// All is the fixed battery both drivers run, in a stable order so
// cmd/tybench's historical samples stay comparable run over run.
var All = []Scenario{
	IsNotNoneNarrowing,
	UnconstrainedTypeVarWidens,
	ConstrainedTypeVarPicksNarrowest,
}

// IsNotNoneNarrowing builds the fixture tree for `if x is not None:` and
// checks that the positive branch strips None from the reference's
// declared type.
func IsNotNoneNarrowing(budget *evalapi.Budget, solveForScopes []string) Result {
	const name = "is-not-None narrowing removes None"

	t := tree.New()
	x := t.Add(tree.Node{Kind: tree.KindName, Name: "x"})
	none := t.Add(tree.Node{Kind: tree.KindConstant, Name: "None"})
	ref := t.Add(tree.Node{Kind: tree.KindName, Name: "x"})
	test := t.Add(tree.Node{Kind: tree.KindBinaryOperation, Op: "is not", Left: x, Right: none})

	union := types.NormalizeUnion([]types.Type{
		types.Class{Name: "int"}.AsInstance(),
		types.None,
	})

	cb, ok := evalapi.NarrowingCallbackFor(t, evalapi.Capabilities{}, ref, test, true, budget)
	if !ok {
		return Result{name, false, "no callback returned"}
	}
	narrowed := cb(union)
	if types.StructurallyEqual(narrowed, union) {
		return Result{name, false, fmt.Sprintf("got %s, None was not stripped", narrowed)}
	}
	return Result{name, true, fmt.Sprintf("%s -> %s", union, narrowed)}
}

// UnconstrainedTypeVarWidens assigns int then str to the same unconstrained
// TypeVar and checks the narrow bound widened to a union instead of being
// silently overwritten.
func UnconstrainedTypeVarWidens(budget *evalapi.Budget, solveForScopes []string) Result {
	const name = "unconstrained TypeVar widens monotonically"

	scope := scopeOrDefault(solveForScopes)
	ctx := evalapi.NewContext(scope)
	dest := types.TypeVar{Name: "T", ScopeID: scope}
	caps := evalapi.Capabilities{Assign: subclassAssign{}}

	if !evalapi.AssignTypeVar(caps, dest, types.Class{Name: "int"}.AsInstance(), nil, ctx, types.AssignDefault, budget) {
		return Result{name, false, "first assignment rejected"}
	}
	if !evalapi.AssignTypeVar(caps, dest, types.Class{Name: "str"}.AsInstance(), nil, ctx, types.AssignDefault, budget) {
		return Result{name, false, "second assignment rejected"}
	}
	bound, ok := ctx.Get(dest)
	if !ok {
		return Result{name, false, "no bound recorded"}
	}
	if _, isUnion := bound.Narrow.(types.Union); !isUnion {
		return Result{name, false, fmt.Sprintf("narrow bound = %s, want a union of int and str", bound.Narrow)}
	}
	return Result{name, true, fmt.Sprintf("narrow bound = %s", bound.Narrow)}
}

// ConstrainedTypeVarPicksNarrowest assigns int to a TypeVar constrained to
// {int, object} and checks the solver picks int, not the wider constraint.
func ConstrainedTypeVarPicksNarrowest(budget *evalapi.Budget, solveForScopes []string) Result {
	const name = "constrained TypeVar picks narrowest constraint"

	scope := scopeOrDefault(solveForScopes)
	ctx := evalapi.NewContext(scope)
	intCls := types.Class{Name: "int"}.AsInstance()
	objCls := types.Class{Name: "object"}.AsInstance()
	dest := types.TypeVar{Name: "T", ScopeID: scope, Constraints: []types.Type{intCls, objCls}}
	caps := evalapi.Capabilities{Assign: subclassAssign{}}

	if !evalapi.AssignTypeVar(caps, dest, intCls, nil, ctx, types.AssignDefault, budget) {
		return Result{name, false, "assignment rejected"}
	}
	bound, ok := ctx.Get(dest)
	if !ok {
		return Result{name, false, "no bound recorded"}
	}
	if bound.Narrow.String() != intCls.String() {
		return Result{name, false, fmt.Sprintf("got %s, want int", bound.Narrow)}
	}
	return Result{name, true, fmt.Sprintf("bound = %s", bound.Narrow)}
}

// subclassAssign is a minimal evalapi.Capabilities.Assign fake standing in
// for the checker's real assignability judgment: "object" accepts
// anything, everything else defers to nominal subclassing.
type subclassAssign struct{}

func (subclassAssign) Assign(dest, src types.Type, diag *evalapi.Sink, destCtx, srcCtx *evalapi.Context, flags types.AssignFlags, budget *evalapi.Budget) bool {
	destCls, destOK := dest.(types.Class)
	srcCls, srcOK := src.(types.Class)
	if !destOK || !srcOK {
		return true
	}
	if destCls.Name == "object" {
		return true
	}
	return srcCls.IsSubclassOf(destCls)
}
