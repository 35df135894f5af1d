package narrow

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/solver"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// isinstanceNarrow implements isinstance/issubclass narrowing.
// isSubclassForm is true for `issubclass`, false for `isinstance`; filters
// is the resolved, flattened list of filter classes extracted from the
// call's second argument (single class, tuple of classes, Type[T], None,
// or a callable protocol).
func isinstanceNarrow(caps capability.Capabilities, referenceType types.Type, filters []types.Class, isPositive, isSubclassForm bool, allowIntersection bool, budget *types.Budget) (types.Type, []types.Type) {
	var anySubstitutions []types.Type

	referenceType = expandTypeVars(caps, referenceType)

	result := types.MapFlattenedSubtypes(referenceType, func(sub types.Type) types.Type {
		sub = resolveAlias(caps, sub)
		if types.IsAnyOrUnknown(sub) {
			if !isPositive {
				return sub
			}
			var instances []types.Type
			for _, f := range filters {
				if isSubclassForm {
					instances = append(instances, f.AsInstantiable())
				} else {
					instances = append(instances, f.AsInstance())
				}
			}
			u := types.UnionOf(instances...)
			anySubstitutions = append(anySubstitutions, u)
			return u
		}

		subClass, isClass := sub.(types.Class)
		if !isClass {
			return narrowNonClassAgainstFilters(sub, filters, isPositive)
		}

		anySuper, anySub, indeterminate := classifyAgainstFilters(caps, subClass, filters, budget)

		if !isPositive {
			if anySuper && !indeterminate {
				return types.Never
			}
			return sub
		}

		if anySuper {
			return subClass
		}
		if anySub {
			return specialisedFilter(caps, subClass, filters, budget)
		}
		if allowIntersection && caps.Intersection != nil && len(filters) > 0 {
			return synthesizeIntersection(caps, subClass, filters[0])
		}
		return types.Never
	})

	if types.StructurallyEqual(result, types.Never) && len(anySubstitutions) > 0 {
		return types.UnionOf(anySubstitutions...), anySubstitutions
	}
	return result, anySubstitutions
}

// classifyAgainstFilters reports whether any filter is a superclass of sub,
// any filter is a subclass of sub, and whether the relation is
// indeterminate (both hold simultaneously due to unresolved imports — in
// this implementation, "indeterminate" degrades to "both true for the same
// filter", since we have no notion of an unresolved-import placeholder
// beyond Any/Unknown, which is handled separately above).
func classifyAgainstFilters(caps capability.Capabilities, sub types.Class, filters []types.Class, budget *types.Budget) (anySuper, anySub, indeterminate bool) {
	for _, f := range filters {
		super := sub.IsSubclassOf(f) || protocolAccepts(caps, sub, f)
		subRel := f.IsSubclassOf(sub) || (f.Flags.Has(types.FlagProtocol) && protocolAccepts(caps, f.AsInstance(), sub))
		if super && subRel {
			indeterminate = true
		}
		anySuper = anySuper || super
		anySub = anySub || subRel
	}
	return
}

func protocolAccepts(caps capability.Capabilities, src types.Class, proto types.Class) bool {
	if !proto.Flags.Has(types.FlagProtocol) || caps.Protocols == nil {
		return false
	}
	return caps.Protocols.SatisfiesProtocol(src.AsInstance(), proto)
}

// specialisedFilter infers a specialisation of the (subclass) filter so
// that the subtype's own type arguments are preserved, via
// PopulateContextFromExpectedType.
func specialisedFilter(caps capability.Capabilities, sub types.Class, filters []types.Class, budget *types.Budget) types.Type {
	for _, f := range filters {
		if !f.IsSubclassOf(sub) {
			continue
		}
		ctx := typevars.New(f.Name)
		if solver.PopulateContextFromExpectedType(caps, f, sub, ctx, budget) {
			specialised := f
			args := make([]types.Type, len(f.TypeParams))
			for i, tp := range f.TypeParams {
				tv := types.TypeVar{Name: tp.Name, ScopeID: f.Name}
				if entry, ok := ctx.Get(tv); ok {
					if entry.Narrow != nil {
						args[i] = entry.Narrow
					} else {
						args[i] = entry.Wide
					}
				}
			}
			hasAll := true
			for _, a := range args {
				if a == nil {
					hasAll = false
				}
			}
			if hasAll {
				specialised = specialised.WithTypeArgs(args)
			}
			return specialised
		}
		return f
	}
	if len(filters) > 0 {
		return filters[0]
	}
	return types.Never
}

func synthesizeIntersection(caps capability.Capabilities, sub types.Class, filter types.Class) types.Type {
	key := capability.IntersectionKey{Module: sub.Name, SourceSpan: 0, FilterName: filter.Name}
	return caps.Intersection.SynthesizeIntersection(key, sub, filter)
}

// narrowNonClassAgainstFilters handles isinstance/issubclass narrowing for
// a non-Class leaf: Function/OverloadedFunction match a callable filter,
// everything else drops in the positive branch and survives in the
// negative one.
func narrowNonClassAgainstFilters(sub types.Type, filters []types.Class, isPositive bool) types.Type {
	isCallable := false
	switch sub.(type) {
	case types.Function, types.OverloadedFunction:
		for _, f := range filters {
			if f.Name == "Callable" || hasCallMember(f) {
				isCallable = true
				break
			}
		}
	}
	if isPositive {
		if isCallable {
			return sub
		}
		return types.Never
	}
	return sub
}

func hasCallMember(c types.Class) bool {
	sym, ok := c.LookupField("__call__")
	return ok && sym.HasCallMember
}

// resolveAlias expands t one level through the checker's recursive-alias
// table before structural inspection, if the caller supplied one; every
// reference subtype isinstance/issubclass narrowing classifies against a
// filter passes through here first, since a bare recursive-alias
// placeholder carries no structure of its own to classify.
func resolveAlias(caps capability.Capabilities, t types.Type) types.Type {
	if caps.Walk == nil {
		return t
	}
	return caps.Walk.ResolveRecursiveAlias(t)
}

// expandTypeVars resolves TypeVar subtypes of t to their bound/constraint
// form so isinstance/issubclass narrowing can classify a constrained type
// variable's possible values instead of treating it as an opaque leaf;
// every other subtype passes through unexpanded.
func expandTypeVars(caps capability.Capabilities, t types.Type) types.Type {
	if caps.Walk == nil {
		return t
	}
	return caps.Walk.MapSubtypesExpandTypeVars(t, nil, func(expanded, unexpanded types.Type) types.Type {
		if _, isTV := unexpanded.(types.TypeVar); isTV {
			return expanded
		}
		return unexpanded
	})
}
