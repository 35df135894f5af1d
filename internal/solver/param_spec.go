package solver

import (
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// AssignParamSpec solves a ParamSpec TypeVar destination: dest binds an
// entire parameter list rather than a single type.
func AssignParamSpec(dest types.TypeVar, src types.Type, diag *diagnostics.Sink, ctx *typevars.Context) bool {
	var params []types.Parameter
	var flags types.FunctionFlags

	switch v := src.(type) {
	case types.TypeVar:
		if !v.IsParamSpec {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.ParamSpecMismatch,
				Text:        "source type variable is not a parameter specification",
				TypeVarName: dest.Name,
			})
			return false
		}
		return bindParamSpecIdentity(dest, v, diag, ctx)
	case types.Function:
		for _, p := range v.Parameters {
			params = append(params, p)
		}
		flags = v.Flags
	case types.AnyType, types.UnknownType:
		return ctx.SetParamSpec(dest, typevars.ParamSpecBinding{})
	default:
		diag.AddAddendum(diagnostics.Addendum{
			Kind:        diagnostics.ParamSpecMismatch,
			Text:        "function-form expected for parameter-specification binding",
			TypeVarName: dest.Name,
		})
		return false
	}

	if existing, ok := ctx.GetParamSpec(dest); ok {
		if !sameParameterList(existing.Parameters, params) {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.ParamSpecMismatch,
				Text:        "re-binding does not match the existing parameter list",
				TypeVarName: dest.Name,
			})
			return false
		}
		return true
	}

	return ctx.SetParamSpec(dest, typevars.ParamSpecBinding{Parameters: params, Flags: flags, ScopeID: dest.ScopeID})
}

func bindParamSpecIdentity(dest, src types.TypeVar, diag *diagnostics.Sink, ctx *typevars.Context) bool {
	if existing, ok := ctx.GetParamSpec(dest); ok {
		if existing.ParamSpecRef == nil || existing.ParamSpecRef.Key() != src.Key() {
			diag.AddAddendum(diagnostics.Addendum{
				Kind:        diagnostics.ParamSpecMismatch,
				Text:        "re-binding identity mismatch",
				TypeVarName: dest.Name,
			})
			return false
		}
		return true
	}
	return ctx.SetParamSpec(dest, typevars.ParamSpecBinding{ScopeID: dest.ScopeID, ParamSpecRef: &src})
}

// sameParameterList is the function-equivalence check a ParamSpec
// re-binding must satisfy: category, name, default presence and declared
// type must match position-for-position; return type is ignored.
func sameParameterList(a, b []types.Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Category != b[i].Category || a[i].Name != b[i].Name || a[i].HasDefault != b[i].HasDefault {
			return false
		}
		if !types.StructurallyEqual(a[i].DeclaredType, b[i].DeclaredType) {
			return false
		}
	}
	return true
}
