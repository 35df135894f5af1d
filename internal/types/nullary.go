package types

// None, Any, Unknown and Never are nullary variants. They still carry an
// instantiable bit and conditions list for uniformity with every other
// variant, even though in practice only None is ever built with
// Instantiable set (type(None) is the class of the None singleton).

type NoneType struct {
	Inst       bool
	Conditions []Condition
}

func (t NoneType) Kind() Kind                 { return KindNone }
func (t NoneType) String() string             { return "None" }
func (t NoneType) Instantiable() bool         { return t.Inst }
func (t NoneType) GetConditions() []Condition { return t.Conditions }

// WithConditions returns a copy of t tagged with the given conditions.
func (t NoneType) WithConditions(conds []Condition) NoneType {
	t.Conditions = conds
	return t
}

// None is the canonical None instance.
var None = NoneType{}

type AnyType struct {
	Conditions []Condition
}

func (t AnyType) Kind() Kind                 { return KindAny }
func (t AnyType) String() string             { return "Any" }
func (t AnyType) Instantiable() bool         { return false }
func (t AnyType) GetConditions() []Condition { return t.Conditions }

// Any is the canonical Any value.
var Any = AnyType{}

type UnknownType struct {
	Conditions []Condition
}

func (t UnknownType) Kind() Kind                 { return KindUnknown }
func (t UnknownType) String() string             { return "Unknown" }
func (t UnknownType) Instantiable() bool         { return false }
func (t UnknownType) GetConditions() []Condition { return t.Conditions }

// Unknown is the canonical Unknown value (Any arising from an
// unannotated/unresolved source, tracked separately so diagnostics can
// distinguish "explicitly Any" from "inference gave up").
var Unknown = UnknownType{}

type NeverType struct {
	Conditions []Condition
}

func (t NeverType) Kind() Kind                 { return KindNever }
func (t NeverType) String() string             { return "Never" }
func (t NeverType) Instantiable() bool         { return false }
func (t NeverType) GetConditions() []Condition { return t.Conditions }

// Never is the canonical Never (bottom) value.
var Never = NeverType{}

// Module represents an imported module namespace.
type Module struct {
	Name       string
	Conditions []Condition
}

func (t Module) Kind() Kind                 { return KindModule }
func (t Module) String() string             { return "Module[" + t.Name + "]" }
func (t Module) Instantiable() bool         { return false }
func (t Module) GetConditions() []Condition { return t.Conditions }

// IsAnyOrUnknown reports whether t is the Any or Unknown gradual type.
func IsAnyOrUnknown(t Type) bool {
	switch t.(type) {
	case AnyType, UnknownType:
		return true
	default:
		return false
	}
}

// ContainsGradualForm reports whether t (a non-union leaf, or any subtype
// of a union) includes Any, Unknown or Never, the three "escape hatch"
// nullary forms that preclude a definite narrowing conclusion in several
// of the §4.4 patterns (e.g. 12: `x.m is None`).
func ContainsGradualForm(t Type) bool {
	found := false
	ForEachFlattenedSubtype(t, func(st Type) {
		switch st.(type) {
		case AnyType, UnknownType, NeverType:
			found = true
		}
	})
	return found
}
