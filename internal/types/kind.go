// Package types is the tagged-sum type model: Class, Function,
// OverloadedFunction, TypeVar, Union, Module, None, Any, Unknown and Never,
// plus the flags and provenance data the solver and narrowing engine need
// to reason about them.
package types

// Kind discriminates the variants of Type. Every Type implementation
// reports exactly one Kind and the switch over Kind is expected to be
// exhaustive at every call site that inspects a Type structurally.
type Kind int

const (
	KindClass Kind = iota
	KindFunction
	KindOverloadedFunction
	KindTypeVar
	KindUnion
	KindModule
	KindNone
	KindAny
	KindUnknown
	KindNever
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindFunction:
		return "Function"
	case KindOverloadedFunction:
		return "OverloadedFunction"
	case KindTypeVar:
		return "TypeVar"
	case KindUnion:
		return "Union"
	case KindModule:
		return "Module"
	case KindNone:
		return "None"
	case KindAny:
		return "Any"
	case KindUnknown:
		return "Unknown"
	case KindNever:
		return "Never"
	default:
		return "?"
	}
}

// Variance is the declared variance of a class type parameter or TypeVar.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// Type is the common interface of every type-model variant. Several
// invariants hold over values of this interface, not methods on it —
// callers that construct Union values must call NormalizeUnion rather
// than build Union literals directly, or the flattened-union invariant
// silently breaks.
type Type interface {
	Kind() Kind
	String() string
	// Instantiable reports whether this value denotes the class/function
	// itself (instantiable, "class-qua-class") rather than an instance of
	// it. Every variant carries this bit, even the nullary ones.
	Instantiable() bool
	// GetConditions returns the provenance annotations attached to this
	// type by constrained-TypeVar resolution. Narrowing must propagate
	// these through every subtype map it performs.
	GetConditions() []Condition
}

// Condition is a provenance annotation recording which constraint of a
// constrained TypeVar produced a given type, so later narrowing can
// remember the origin.
type Condition struct {
	TypeVarName string
	ScopeID     string
	Constraint  Type
}

func sameConditions(a, b []Condition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].TypeVarName != b[i].TypeVarName || a[i].ScopeID != b[i].ScopeID {
			return false
		}
		an, bn := "", ""
		if a[i].Constraint != nil {
			an = a[i].Constraint.String()
		}
		if b[i].Constraint != nil {
			bn = b[i].Constraint.String()
		}
		if an != bn {
			return false
		}
	}
	return true
}
