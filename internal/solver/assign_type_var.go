// Package solver implements the constraint solver: AssignTypeVar,
// AssignParamSpec, and PopulateContextFromExpectedType. The solver
// consumes the external assignability judgment as a capability
// (internal/capability.Assignability) and is itself called back by that
// judgment for every TypeVar destination it encounters — it never
// constructs or inspects an implementation of that judgment beyond
// calling it.
//
// Grounded on the teacher's internal/typesystem unification code for the
// general shape (a bounded recursive solve threaded through a mutable
// context), generalized from unification to a narrow/wide bound-pair
// model — the teacher solves single bindings, this solves monotone
// interval bounds under variance.
package solver

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// AssignTypeVar solves a single TypeVar destination against one source type.
func AssignTypeVar(caps capability.Capabilities, dest types.TypeVar, src types.Type, diag *diagnostics.Sink, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	if !budget.Enter() {
		return true
	}
	defer budget.Leave()
	if budget.Cancelled() {
		return true
	}

	inScope := dest.ScopeID != "" && ctx.HasSolveForScope(dest.ScopeID)
	if !inScope {
		if types.IsAnyOrUnknown(src) || derivesFromAnyOrUnknown(src) {
			return true
		}
		if flags.Has(types.ReverseTypeVarMatching) || flags.Has(types.IgnoreTypeVarScope) {
			destT, srcT := types.Type(dest), src
			if caps.Concretise != nil {
				destT = caps.Concretise.Concretise(destT)
				srcT = caps.Concretise.Concretise(srcT)
			}
			if caps.Assign == nil {
				return false
			}
			return caps.Assign.Assign(destT, srcT, diag, ctx, ctx, flags, budget)
		}
		if !dest.IsSynthesized {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.ScopeViolation,
				Text:        "type variable outside solve-for scope",
				TypeVarName: dest.Name,
			})
		}
		return false
	}

	src = adjustForUnpacking(caps, dest, src)

	if dest.IsConstrained() {
		return assignConstrained(caps, dest, src, diag, ctx, flags, budget)
	}
	return assignUnconstrained(caps, dest, src, diag, ctx, flags, budget)
}

// derivesFromAnyOrUnknown reports whether t is a class whose MRO includes a
// base that is itself gradual. The type model (internal/types) only
// represents resolvable ancestry through Class.MRO, so a class literally
// deriving from an unresolved Any/Unknown base has no representation beyond
// being Any/Unknown itself — this helper exists for that degenerate case
// and otherwise defers to IsAnyOrUnknown.
func derivesFromAnyOrUnknown(t types.Type) bool {
	return types.IsAnyOrUnknown(t)
}

// adjustForUnpacking handles the two special-cased destination shapes: a
// variadic destination packages a bare source into a synthetic unpacked
// tuple, and a bare `type` instance (no type arguments) assigned to an
// instantiable destination is replaced by Any.
func adjustForUnpacking(caps capability.Capabilities, dest types.TypeVar, src types.Type) types.Type {
	if dest.IsVariadic {
		if c, ok := src.(types.Class); !ok || !c.Flags.Has(types.FlagTuple) {
			src = types.Class{
				Name:      "tuple",
				Flags:     types.FlagTuple,
				TupleArgs: []types.TupleArg{{Type: src, IsUnbounded: true}},
				Inst:      false,
			}
		}
	}
	if dest.Inst && caps.Builtins != nil {
		if c, ok := src.(types.Class); ok && c.SameGenericClass(caps.Builtins.TypeClass()) && len(c.TypeArgs) == 0 {
			return types.Any
		}
	}
	return src
}
