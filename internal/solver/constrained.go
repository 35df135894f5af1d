package solver

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// assignConstrained implements the constrained-TypeVar solving strategy —
// dest.Constraints is a finite closed set, so the solver picks a member
// rather than widening a bound pair.
func assignConstrained(caps capability.Capabilities, dest types.TypeVar, src types.Type, diag *diagnostics.Sink, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	// Step 1: a source that is itself a TypeVar assignable to dest under a
	// fresh scoped context is accepted as the binding directly.
	if srcTV, ok := src.(types.TypeVar); ok && caps.Assign != nil {
		fresh := typevars.New(srcTV.ScopeID)
		if caps.Assign.Assign(dest, srcTV, nil, fresh, fresh, flags, budget) {
			return commitBound(ctx, dest, src, src, false)
		}
	}

	// Step 2/3: map each unconditional source subtype to its narrowest
	// accepting constraint; all unconditional subtypes must agree.
	var chosen types.Type
	mismatch := false
	types.ForEachFlattenedSubtype(src, func(sub types.Type) {
		if mismatch {
			return
		}
		if len(sub.GetConditions()) > 0 {
			return // conditioned subtypes don't participate in the agreement check
		}
		c := narrowestConstraint(caps, dest.Constraints, sub, ctx, flags, budget)
		if c == nil {
			return
		}
		if chosen == nil {
			chosen = c
			return
		}
		if !types.StructurallyEqual(chosen, c) {
			mismatch = true
		}
	})
	if mismatch {
		diag.AddAddendum(diagnostics.Addendum{
			Kind:        diagnostics.AssignabilityMismatch,
			Text:        "unconditional source subtypes map to distinct constraints",
			TypeVarName: dest.Name,
			SourceType:  src,
		})
		return false
	}

	// Step 4: nothing matched per-subtype, but the whole union might still
	// be assignable to a single constraint.
	if chosen == nil {
		chosen = narrowestConstraint(caps, dest.Constraints, src, ctx, flags, budget)
	}
	if chosen == nil {
		diag.AddAddendum(diagnostics.Addendum{
			Kind:        diagnostics.AssignabilityMismatch,
			Text:        "source does not satisfy any constraint",
			TypeVarName: dest.Name,
			SourceType:  src,
		})
		return false
	}

	// Step 5: compatibility against the current narrow bound.
	if entry, ok := ctx.Get(dest); ok && entry.Narrow != nil {
		if caps.Assign != nil && caps.Assign.Assign(entry.Narrow, chosen, nil, ctx, ctx, flags, budget) {
			chosen = entry.Narrow
		} else if caps.Assign != nil && caps.Assign.Assign(chosen, entry.Narrow, nil, ctx, ctx, flags, budget) {
			// widen to chosen
		} else {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:           diagnostics.AssignabilityMismatch,
				Text:           "new constraint binding incompatible with current bound",
				TypeVarName:    dest.Name,
				ConstraintName: chosen.String(),
			})
			return false
		}
	}

	return commitBound(ctx, dest, chosen, chosen, false)
}

// narrowestConstraint returns, among dest's constraint list, the member
// assignable from src that is not itself a supertype of another accepting
// member: among constraints that accept the subtype, the one that is not
// a supertype of another accepting constraint. Returns nil if no
// constraint accepts src.
func narrowestConstraint(caps capability.Capabilities, constraints []types.Type, src types.Type, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) types.Type {
	if caps.Assign == nil {
		return nil
	}
	var accepting []types.Type
	for _, c := range constraints {
		if caps.Assign.Assign(c, src, nil, ctx, ctx, flags, budget) {
			accepting = append(accepting, c)
		}
	}
	for _, candidate := range accepting {
		isSupertypeOfAnother := false
		for _, other := range accepting {
			if types.StructurallyEqual(candidate, other) {
				continue
			}
			if caps.Assign.Assign(candidate, other, nil, ctx, ctx, flags, budget) {
				isSupertypeOfAnother = true
				break
			}
		}
		if !isSupertypeOfAnother {
			return candidate
		}
	}
	if len(accepting) > 0 {
		return accepting[0]
	}
	return nil
}

// commitBound writes narrow/wide to ctx for dest. By the time this is
// called every compatibility check has already passed, so the call
// succeeds regardless of whether the write actually lands — a locked
// context makes Set a reported no-op, meaning "validated, but did not
// write", not failure.
func commitBound(ctx *typevars.Context, dest types.TypeVar, narrow, wide types.Type, retainLiterals bool) bool {
	ctx.Set(dest, narrow, wide, retainLiterals)
	return true
}
