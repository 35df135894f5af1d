package solver

import (
	"fmt"

	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// PopulateContextFromExpectedType infers, given a target class
// target = T[...] and an expected specialised supertype expected = E[...],
// T's type arguments that make it assignable to expected, writing the
// results into ctx.
func PopulateContextFromExpectedType(caps capability.Capabilities, target, expected types.Class, ctx *typevars.Context, budget *types.Budget) bool {
	if target.SameGenericClass(expected) {
		return copySameClassSpecialization(target, expected, ctx)
	}
	return synthesizeAndSolve(caps, target, expected, ctx, budget)
}

// copySameClassSpecialization handles the direct case: target and expected
// are instantiations of the same generic class, so each type argument is
// copied respecting the target's declared variance — covariant params set
// only the narrow bound, contravariant only the wide bound, invariant sets
// both.
func copySameClassSpecialization(target, expected types.Class, ctx *typevars.Context) bool {
	n := len(target.TypeParams)
	if len(expected.TypeArgs) < n {
		return false
	}
	ok := true
	for i, tp := range target.TypeParams {
		arg := expected.TypeArgs[i]
		if arg == nil {
			ok = false
			continue
		}
		tv := types.TypeVar{Name: tp.Name, ScopeID: target.Name, Bound: tp.Bound}
		switch tp.Variance {
		case types.Covariant:
			ctx.Set(tv, arg, nil, false)
		case types.Contravariant:
			ctx.Set(tv, nil, arg, false)
		default:
			ctx.Set(tv, arg, arg, false)
		}
	}
	return ok
}

// synthesizeAndSolve handles the general case: target and expected are
// unrelated generic classes. It synthesizes E' (expected with fresh
// synthetic TypeVars in place of its arguments) and T' similarly, runs an
// assignability check E' := T' that binds the synthetic TypeVars through
// the ordinary solver path, and projects each binding back onto target's
// TypeVars.
func synthesizeAndSolve(caps capability.Capabilities, target, expected types.Class, ctx *typevars.Context, budget *types.Budget) bool {
	if caps.Assign == nil {
		return false
	}

	synthScope := "populate:" + target.Name + ":" + expected.Name
	synthCtx := typevars.New(synthScope)

	expectedSynthArgs := make([]types.Type, len(expected.TypeArgs))
	expectedSynthVars := make([]types.TypeVar, len(expected.TypeArgs))
	for i := range expected.TypeArgs {
		tv := types.TypeVar{
			Name:             fmt.Sprintf("E%d", i),
			ScopeID:          synthScope,
			IsSynthesized:    true,
			SynthesizedIndex: i,
		}
		expectedSynthVars[i] = tv
		expectedSynthArgs[i] = tv
	}
	eSynth := expected.WithTypeArgs(expectedSynthArgs)

	targetSynthArgs := make([]types.Type, len(target.TypeParams))
	targetSynthVars := make([]types.TypeVar, len(target.TypeParams))
	for i, tp := range target.TypeParams {
		tv := types.TypeVar{
			Name:             "T" + tp.Name,
			ScopeID:          synthScope,
			IsSynthesized:    true,
			SynthesizedIndex: i,
		}
		targetSynthVars[i] = tv
		targetSynthArgs[i] = tv
	}
	tSynth := target.WithTypeArgs(targetSynthArgs)

	if !caps.Assign.Assign(eSynth, tSynth, nil, synthCtx, synthCtx, types.AssignDefault, budget) {
		return false
	}

	ok := true
	for i, tp := range target.TypeParams {
		entry, found := synthCtx.Get(targetSynthVars[i])
		if !found {
			ok = false
			continue
		}
		binding := entry.Narrow
		if binding == nil {
			binding = entry.Wide
		}
		if binding == nil {
			ok = false
			continue
		}
		binding = transformExpectedForConstructor(binding, expectedSynthVars, target.TypeParams)
		destTV := types.TypeVar{Name: tp.Name, ScopeID: target.Name, Bound: tp.Bound}
		switch tp.Variance {
		case types.Covariant:
			ctx.Set(destTV, binding, nil, false)
		case types.Contravariant:
			ctx.Set(destTV, nil, binding, false)
		default:
			ctx.Set(destTV, binding, binding, false)
		}
	}
	return ok
}

// transformExpectedForConstructor substitutes any synthetic E-side TypeVar
// still present in binding with Any: once projection is done, a synthetic
// variable surviving in the final binding means the corresponding
// argument was never pinned down by the assignability check, so it
// degrades to the gradual form rather than leaking an internal synthetic
// identity to the caller.
func transformExpectedForConstructor(binding types.Type, liveSynthVars []types.TypeVar, _ []types.TypeParam) types.Type {
	isLive := func(tv types.TypeVar) bool {
		for _, v := range liveSynthVars {
			if v.Key() == tv.Key() {
				return true
			}
		}
		return false
	}
	return types.MapFlattenedSubtypes(binding, func(st types.Type) types.Type {
		if tv, ok := st.(types.TypeVar); ok && isLive(tv) {
			return types.Any
		}
		return st
	})
}
