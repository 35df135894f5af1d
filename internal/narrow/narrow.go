// Package narrow implements the narrowing engine: a single entry point,
// GetNarrowingCallback, that inspects the syntactic shape of a test
// expression and returns a pure Type → Type closure.
//
// Grounded on the teacher's internal/typesystem constraint-propagation
// style (small closures over an immutable snapshot of the types involved)
// generalized from unification substitutions to narrowing callbacks —
// small value types capturing the evaluator handle, the literal/class
// being compared, and the positive/negative bit.
package narrow

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/tree"
	"github.com/solace-lang/tycore/internal/types"
)

// Callback is the narrowing function's `Type → Type` shape. Every
// Callback returned by this package is referentially transparent: its
// result depends only on its argument.
type Callback func(types.Type) types.Type

// GetNarrowingCallback is the narrowing engine's entry point: given the
// reference expression being narrowed, the test expression it appears
// under, and the branch polarity, it dispatches on testExprID's syntactic
// shape and returns a Callback, or (nil, false) when no pattern applies.
func GetNarrowingCallback(t *tree.Tree, caps capability.Capabilities, referenceID, testExprID int, isPositive bool, budget *types.Budget) (Callback, bool) {
	if !budget.Enter() {
		return identity, true
	}
	defer budget.Leave()
	if budget.Cancelled() {
		return identity, true
	}

	n := t.Node(testExprID)

	// Pattern 1: walrus on the test itself — narrow using the assigned
	// value expression first; failing that, when the reference is the
	// bound name itself, narrow it by truthiness.
	if n.Kind == tree.KindAssignmentExpression {
		if cb, ok := GetNarrowingCallback(t, caps, referenceID, n.Right, isPositive, budget); ok {
			return cb, true
		}
		if tree.IsMatchingExpression(t, referenceID, n.Left) {
			return truthinessCallback(isPositive), true
		}
		return nil, false
	}

	// Pattern 21: unary `not` with a Name reference — negate and recurse.
	if n.Kind == tree.KindUnaryOperation && n.Op == "not" {
		return GetNarrowingCallback(t, caps, referenceID, n.Operand, !isPositive, budget)
	}

	// Pattern 20: aliased condition — test_expr is a bare Name bound
	// earlier in the same scope to a boolean-valued expression.
	if n.Kind == tree.KindName {
		if aliasedExprID, ok := resolveAliasedCondition(t, testExprID); ok {
			return GetNarrowingCallback(t, caps, referenceID, aliasedExprID, isPositive, budget)
		}
	}

	if n.Kind == tree.KindCall {
		if cb, ok := dispatchCall(t, caps, referenceID, testExprID, isPositive, budget); ok {
			return cb, true
		}
	}

	if n.Kind == tree.KindBinaryOperation {
		if cb, ok := dispatchBinary(t, caps, referenceID, testExprID, isPositive, budget); ok {
			return cb, true
		}
	}

	// Pattern 19: the reference itself used as a bare truthiness test.
	if tree.IsMatchingExpression(t, referenceID, testExprID) {
		return truthinessCallback(isPositive), true
	}

	return nil, false
}

func identity(t types.Type) types.Type { return t }

func truthinessCallback(isPositive bool) Callback {
	return func(t types.Type) types.Type {
		return types.NarrowTruthiness(t, isPositive)
	}
}

// calleeName returns the identifier of a Call node's Func, or "" if Func is
// not a bare Name — the callable-narrowing patterns only trigger on a
// direct call to a recognized builtin or user function name.
func calleeName(t *tree.Tree, callID int) string {
	call := t.Node(callID)
	fn := t.Node(call.Func)
	if fn.Kind != tree.KindName {
		return ""
	}
	return fn.Name
}
