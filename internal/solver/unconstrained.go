package solver

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// assignUnconstrained implements the unconstrained-TypeVar solving
// strategy: maintain two monotone bounds narrow ⊑ wide, updating whichever
// one the variance/flag combination designates.
func assignUnconstrained(caps capability.Capabilities, dest types.TypeVar, src types.Type, diag *diagnostics.Sink, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	entry, hadEntry := ctx.Get(dest)

	retainLiterals := flags.Has(types.RetainLiteralsForTypeVar) ||
		(hadEntry && entry.RetainLiterals) ||
		constraintsRequireLiteralRetention(dest)
	adjSrc := src
	if !retainLiterals {
		adjSrc = types.StripLiterals(src)
	}

	if dest.Inst {
		instantiable, ok := toInstantiable(adjSrc)
		if !ok {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.AssignabilityMismatch,
				Text:        "source is not effectively instantiable",
				TypeVarName: dest.Name,
				SourceType:  src,
			})
			return false
		}
		adjSrc = instantiable
	}

	contravariant := flags.Has(types.ReverseTypeVarMatching) || flags.Has(types.AllowTypeVarNarrowing)
	if contravariant {
		if !updateWideBound(caps, dest, adjSrc, diag, ctx, &entry, flags, budget) {
			return false
		}
	} else {
		if !updateNarrowBound(caps, dest, adjSrc, diag, ctx, &entry, flags, budget) {
			return false
		}
		if !narrowWithinWide(caps, entry.Narrow, entry.Wide, ctx, flags, budget) {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.AssignabilityMismatch,
				Text:        "narrow bound escaped wide bound",
				TypeVarName: dest.Name,
			})
			return false
		}
	}

	if !boundCheck(caps, dest, diag, ctx, entry, flags, budget) {
		return false
	}

	entry.RetainLiterals = entry.RetainLiterals || retainLiterals
	return commitBound(ctx, dest, entry.Narrow, entry.Wide, entry.RetainLiterals)
}

// constraintsRequireLiteralRetention holds when any part of dest's shape
// demands literal retention — currently only the explicit flag and a prior
// context entry do, since dest is unconstrained here by construction; kept
// as a named hook so a future constraint-derived rule has an obvious home.
func constraintsRequireLiteralRetention(dest types.TypeVar) bool {
	return false
}

// toInstantiable converts t to its instantiable ("class-qua-class") form,
// reporting false when t has no such form.
func toInstantiable(t types.Type) (types.Type, bool) {
	switch v := t.(type) {
	case types.Class:
		return v.AsInstantiable(), true
	case types.AnyType, types.UnknownType:
		return t, true
	case types.Union:
		mapped := types.MapFlattenedSubtypes(t, func(st types.Type) types.Type {
			if c, ok := st.(types.Class); ok {
				return c.AsInstantiable()
			}
			return st
		})
		return mapped, true
	default:
		return t, false
	}
}

// updateWideBound is the contravariant / AllowTypeVarNarrowing path.
func updateWideBound(caps capability.Capabilities, dest types.TypeVar, adjSrc types.Type, diag *diagnostics.Sink, ctx *typevars.Context, entry *typevars.Entry, flags types.AssignFlags, budget *types.Budget) bool {
	switch {
	case entry.Wide == nil:
		entry.Wide = adjSrc
	case types.StructurallyEqual(entry.Wide, adjSrc):
		// no-op
	case caps.Assign != nil && concretisedAccepts(caps, entry.Wide, adjSrc, ctx, flags, budget):
		entry.Wide = adjSrc
	case caps.Assign != nil && caps.Assign.Assign(adjSrc, entry.Wide, nil, ctx, ctx, flags, budget):
		// adjSrc accepts the current wide bound: already tighter, retain.
	default:
		diag.AddAddendum(diagnostics.Addendum{
			Kind:        diagnostics.AssignabilityMismatch,
			Text:        "wide bound update rejected incompatible source",
			TypeVarName: dest.Name,
			SourceType:  adjSrc,
			DestType:    entry.Wide,
		})
		return false
	}
	if entry.Narrow != nil && caps.Assign != nil {
		if !caps.Assign.Assign(entry.Wide, entry.Narrow, nil, ctx, ctx, flags, budget) {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.AssignabilityMismatch,
				Text:        "wide bound no longer accepts narrow bound",
				TypeVarName: dest.Name,
			})
			return false
		}
	}
	return true
}

func concretisedAccepts(caps capability.Capabilities, dest, src types.Type, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	if caps.Concretise != nil {
		src = caps.Concretise.Concretise(src)
	}
	return caps.Assign.Assign(dest, src, nil, ctx, ctx, flags, budget)
}

// updateNarrowBound is the covariant / default path.
func updateNarrowBound(caps capability.Capabilities, dest types.TypeVar, adjSrc types.Type, diag *diagnostics.Sink, ctx *typevars.Context, entry *typevars.Entry, flags types.AssignFlags, budget *types.Budget) bool {
	switch {
	case entry.Narrow == nil:
		entry.Narrow = adjSrc
		return true
	case caps.Assign != nil && caps.Assign.Assign(entry.Narrow, adjSrc, nil, ctx, ctx, flags, budget):
		if partlyUnknown(entry.Narrow) && !partlyUnknown(adjSrc) && caps.Assign.Assign(adjSrc, entry.Narrow, nil, ctx, ctx, flags, budget) {
			entry.Narrow = adjSrc
		}
		return true
	default:
		if ctx.Locked() {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.AssignabilityMismatch,
				Text:        "locked context refused narrow-bound widening",
				TypeVarName: dest.Name,
			})
			return false
		}
		if dest.IsVariadic {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.AssignabilityMismatch,
				Text:        "variadic type variable refused narrow-bound widening",
				TypeVarName: dest.Name,
			})
			return false
		}
		widened := types.UnionOf(entry.Narrow, adjSrc)
		if u, ok := widened.(types.Union); ok && len(u.Subtypes) > budget.MaxSubtypes() && dest.Bound != nil && caps.Builtins != nil {
			widened = caps.Builtins.Object().AsInstance()
		}
		entry.Narrow = widened
		return true
	}
}

// narrowWithinWide is the covariant path's closing invariant check: the
// resulting narrow bound must be within wide when wide is present. A
// TypeVar wide bound matched exactly, or present in the narrow union, is
// accepted without concretisation.
func narrowWithinWide(caps capability.Capabilities, narrow, wide types.Type, ctx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	if wide == nil {
		return true
	}
	if types.StructurallyEqual(narrow, wide) {
		return true
	}
	if u, ok := narrow.(types.Union); ok {
		for _, st := range u.Subtypes {
			if types.StructurallyEqual(st, wide) {
				return true
			}
		}
	}
	if caps.Assign == nil {
		return true
	}
	return caps.Assign.Assign(wide, narrow, nil, ctx, ctx, flags, budget)
}

// partlyUnknown reports whether t contains Any/Unknown (or Never) anywhere
// in its flattened leaf set, used by the "prefer the more precise bound" tie-break
// in the covariant-update step.
func partlyUnknown(t types.Type) bool {
	return types.ContainsGradualForm(t)
}

// boundCheck is the final bound check: if dest declares a bound, the
// surviving bound (narrow, else wide) must be assignable to it after
// concretisation.
func boundCheck(caps capability.Capabilities, dest types.TypeVar, diag *diagnostics.Sink, ctx *typevars.Context, entry typevars.Entry, flags types.AssignFlags, budget *types.Budget) bool {
	if dest.Bound == nil || caps.Assign == nil {
		return true
	}
	surviving := entry.Narrow
	if surviving == nil {
		surviving = entry.Wide
	}
	if surviving == nil {
		return true
	}
	// Self-typed destinations (dest.IsSynthesizedSelf) reuse the ambient
	// context as-is here, so the bound itself can bind other type
	// variables in the same solve.
	if caps.Concretise != nil {
		surviving = caps.Concretise.Concretise(surviving)
	}
	if !caps.Assign.Assign(dest.Bound, surviving, nil, ctx, ctx, flags, budget) {
		diag.AddAddendum(diagnostics.Addendum{
			Kind:        diagnostics.AssignabilityMismatch,
			Text:        "bound violated",
			TypeVarName: dest.Name,
			DestType:    dest.Bound,
			SourceType:  surviving,
		})
		return false
	}
	return true
}
