package types

// TypeVar is a type variable, a parameter specification, or a variadic
// type variable, distinguished by the IsParamSpec/IsVariadic bits.
// ScopeID is the definition-site identity that a TypeVarContext's
// solve-for set is keyed on; a TypeVar with an empty ScopeID is
// out-of-scope and never bound.
type TypeVar struct {
	Name    string
	ScopeID string

	Bound       Type
	Constraints []Type // non-empty => a constrained TypeVar
	Variance    Variance

	IsParamSpec       bool
	IsVariadic        bool
	IsSynthesized     bool
	IsSynthesizedSelf bool
	SynthesizedIndex  int

	Inst       bool
	Conditions []Condition
}

func (t TypeVar) Kind() Kind                 { return KindTypeVar }
func (t TypeVar) Instantiable() bool         { return t.Inst }
func (t TypeVar) GetConditions() []Condition { return t.Conditions }

func (t TypeVar) String() string {
	if t.IsParamSpec {
		return "**" + t.Name
	}
	return t.Name
}

// IsConstrained reports whether t is a constrained TypeVar, i.e. its
// solution set is a finite closed list rather than a bound-delimited
// interval.
func (t TypeVar) IsConstrained() bool { return len(t.Constraints) > 0 }

// InScope reports whether t has a non-empty scope identity and that
// identity is a member of solveFor.
func (t TypeVar) InScope(solveFor map[string]bool) bool {
	if t.ScopeID == "" {
		return false
	}
	return solveFor[t.ScopeID]
}

// Key returns the (name, scope) pair that identifies this TypeVar inside
// a TypeVarContext.
func (t TypeVar) Key() VarKey { return VarKey{Name: t.Name, ScopeID: t.ScopeID} }

// VarKey is the map key a TypeVarContext uses to identify a TypeVar.
type VarKey struct {
	Name    string
	ScopeID string
}

// WithConditions returns a copy of t tagged with the given conditions.
func (t TypeVar) WithConditions(conds []Condition) TypeVar {
	t.Conditions = conds
	return t
}
