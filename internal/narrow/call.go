package narrow

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/tree"
	"github.com/solace-lang/tycore/internal/types"
)

// dispatchCall covers every narrowing pattern whose test_expr is a bare
// Call: isinstance/issubclass (15), callable (16), a user-defined type
// guard (17), and bool() (18).
func dispatchCall(t *tree.Tree, caps capability.Capabilities, referenceID, callID int, isPositive bool, budget *types.Budget) (Callback, bool) {
	call := t.Node(callID)
	name := calleeName(t, callID)

	switch name {
	case "isinstance", "issubclass":
		if len(call.Args) != 2 || !tree.IsMatchingExpression(t, referenceID, call.Args[0]) {
			return nil, false
		}
		filters, ok := extractFilters(caps, call.Args[1])
		if !ok {
			return nil, false
		}
		isSubclassForm := name == "issubclass"
		return func(ref types.Type) types.Type {
			result, _ := isinstanceNarrow(caps, ref, filters, isPositive, isSubclassForm, true, budget)
			return result
		}, true

	case "callable":
		if len(call.Args) != 1 || !tree.IsMatchingExpression(t, referenceID, call.Args[0]) {
			return nil, false
		}
		return callableNarrow(caps, isPositive, budget), true

	case "bool":
		if len(call.Args) != 1 || !tree.IsMatchingExpression(t, referenceID, call.Args[0]) {
			return nil, false
		}
		return truthinessCallback(isPositive), true
	}

	// Pattern 17: a user-defined type guard.
	if len(call.Args) >= 1 {
		if guardInfo, ok := typeGuardInfoFor(caps, call.Func); ok {
			for _, argID := range call.Args {
				if tree.IsMatchingExpression(t, referenceID, argID) {
					return typeGuardNarrow(caps, guardInfo.GuardedType, guardInfo.IsStrict, isPositive, budget), true
				}
			}
		}
	}

	return nil, false
}

// extractFilters resolves the second argument of an isinstance/issubclass
// call to its flattened list of filter classes: a single class, a tuple of
// classes, `Type[T]`, the `None` class, or a callable protocol signature.
func extractFilters(caps capability.Capabilities, exprID int) ([]types.Class, bool) {
	t, ok := literalTypeOf(caps, exprID)
	if !ok {
		return nil, false
	}
	var out []types.Class
	types.ForEachFlattenedSubtype(t, func(st types.Type) {
		switch v := st.(type) {
		case types.Class:
			out = append(out, v.AsInstantiable())
		case types.NoneType:
			out = append(out, types.Class{Name: "NoneType", Inst: true})
		}
	})
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// callableClassName names the synthetic protocol filter callableNarrow
// synthesizes an intersection against when a class subtype has neither an
// instantiable bit nor a `__call__` member of its own.
const callableClassName = "Callable"

// callableNarrow is pattern 16: keep function, overloaded, instantiable
// class, and class-instance subtypes whose __call__ lookup succeeds;
// remove None/Module in the positive branch. When a class subtype fails
// that check outright but an IntersectionSynthesizer is available, it
// synthesizes `<subclass of S and Callable>` rather than dropping the
// subtype — the same intersection-synthesis fallback isinstance/issubclass
// narrowing falls back to when no filter already relates to the candidate.
func callableNarrow(caps capability.Capabilities, isPositive bool, budget *types.Budget) Callback {
	return func(ref types.Type) types.Type {
		return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
			isCallable := false
			switch v := sub.(type) {
			case types.Function, types.OverloadedFunction:
				isCallable = true
			case types.Class:
				if v.Instantiable() {
					isCallable = true
				} else if sym, ok := v.LookupField("__call__"); ok {
					isCallable = sym.HasCallMember
				}
			}
			if !isPositive {
				return sub
			}
			if isCallable {
				return sub
			}
			if c, ok := sub.(types.Class); ok && caps.Intersection != nil {
				filter := types.Class{Name: callableClassName, Flags: types.FlagProtocol, Inst: false}
				return synthesizeIntersection(caps, c, filter)
			}
			return types.Never
		})
	}
}

func typeGuardInfoFor(caps capability.Capabilities, funcExprID int) (types.TypeGuardInfo, bool) {
	t, ok := literalTypeOf(caps, funcExprID)
	if !ok {
		return types.TypeGuardInfo{}, false
	}
	fn, isFn := t.(types.Function)
	if !isFn || fn.TypeGuard == nil {
		return types.TypeGuardInfo{}, false
	}
	return *fn.TypeGuard, true
}

// typeGuardNarrow is pattern 17: non-strict narrows to G outright; strict
// narrows each subtype to its pointwise intersection with G, and in the
// negative branch eliminates subtypes wholly contained in G (i.e. assignable
// to G), not merely structurally identical to it.
func typeGuardNarrow(caps capability.Capabilities, guarded types.Type, isStrict bool, isPositive bool, budget *types.Budget) Callback {
	return func(ref types.Type) types.Type {
		if !isStrict {
			if isPositive {
				return guarded
			}
			return ref
		}
		if isPositive {
			if guardedClass, ok := guarded.(types.Class); ok {
				result, _ := isinstanceNarrow(caps, ref, []types.Class{guardedClass}, true, false, true, budget)
				return result
			}
			return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
				return pointwiseIntersection(caps, sub, guarded, budget)
			})
		}
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			if caps.Assign == nil {
				return !types.StructurallyEqual(sub, guarded)
			}
			return !caps.Assign.Assign(guarded, sub, nil, nil, nil, types.AssignDefault, budget)
		})
	}
}

// pointwiseIntersection is the non-Class fallback for the strict-positive
// branch above: Class/Class pairs go through isinstanceNarrow's
// classifyAgainstFilters/synthesizeIntersection path instead.
func pointwiseIntersection(caps capability.Capabilities, sub, guarded types.Type, budget *types.Budget) types.Type {
	if types.IsAnyOrUnknown(sub) {
		return guarded
	}
	if caps.Assign == nil {
		return guarded
	}
	if caps.Assign.Assign(guarded, sub, nil, nil, nil, types.AssignDefault, budget) {
		return sub
	}
	if caps.Assign.Assign(sub, guarded, nil, nil, nil, types.AssignDefault, budget) {
		return guarded
	}
	return types.Never
}

// resolveAliasedCondition is pattern 20: test_expr is a bare Name bound by
// an earlier Assignment in the same statement list to some expression.
// This walks the statement list containing testExprID backwards looking
// for the nearest prior `name = <expr>` and returns <expr>'s node id.
//
// Simplification: the full rule additionally requires that neither the
// reference nor the alias be reassigned between the alias's definition and
// the conditional; that liveness check needs a control-flow view this
// package's pure arena walk does not have, so it is left to the calling
// checker to pre-filter ineligible aliases before invoking this engine.
func resolveAliasedCondition(t *tree.Tree, nameID int) (int, bool) {
	name := t.Node(nameID).Name
	p, ok := t.Parent(nameID)
	if !ok {
		return 0, false
	}
	for {
		pn := t.Node(p)
		if len(pn.Body) > 0 {
			return searchBodyForAlias(t, pn.Body, nameID, name)
		}
		next, ok := t.Parent(p)
		if !ok {
			return 0, false
		}
		p = next
	}
}

func searchBodyForAlias(t *tree.Tree, body []int, before int, name string) (int, bool) {
	beforeIdx := -1
	for i, stmtID := range body {
		if isDescendantInTree(t, stmtID, before) {
			beforeIdx = i
			break
		}
	}
	if beforeIdx <= 0 {
		return 0, false
	}
	for i := beforeIdx - 1; i >= 0; i-- {
		stmt := t.Node(body[i])
		if stmt.Kind != tree.KindAssignment {
			continue
		}
		target := t.Node(stmt.Target)
		if target.Kind == tree.KindName && target.Name == name {
			return stmt.Right, true
		}
	}
	return 0, false
}

func isDescendantInTree(t *tree.Tree, ancestor, node int) bool {
	cur := node
	for {
		if cur == ancestor {
			return true
		}
		p, ok := t.Parent(cur)
		if !ok {
			return false
		}
		cur = p
	}
}
