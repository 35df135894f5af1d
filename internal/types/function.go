package types

import "strings"

// ParamCategory discriminates a parameter's calling convention: simple,
// var-positional, or var-keyword.
type ParamCategory int

const (
	ParamSimple ParamCategory = iota
	ParamVarPositional
	ParamVarKeyword
)

// Parameter is one entry of a Function's parameter list.
type Parameter struct {
	Category     ParamCategory
	Name         string
	DeclaredType Type
	HasDefault   bool
}

// TypeGuardInfo is the `TypeGuard[G]`/`StrictTypeGuard[G]` return
// annotation a user-defined guard function carries.
type TypeGuardInfo struct {
	GuardedType Type
	IsStrict    bool
}

// Function is a single callable signature.
type Function struct {
	Parameters         []Parameter
	DeclaredReturnType Type
	InferredReturnType Type
	Flags              FunctionFlags
	TypeGuard          *TypeGuardInfo
	ParamSpecRef       *TypeVar
	Inst               bool // a bound method reference may be instantiable=false by convention; kept for uniformity
	Conditions         []Condition
}

func (f Function) Kind() Kind                 { return KindFunction }
func (f Function) Instantiable() bool         { return f.Inst }
func (f Function) GetConditions() []Condition { return f.Conditions }

// ReturnType returns the declared return type if present, else the
// inferred one.
func (f Function) ReturnType() Type {
	if f.DeclaredReturnType != nil {
		return f.DeclaredReturnType
	}
	return f.InferredReturnType
}

func (f Function) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range f.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		switch p.Category {
		case ParamVarPositional:
			b.WriteString("*")
		case ParamVarKeyword:
			b.WriteString("**")
		}
		b.WriteString(p.Name)
		if p.DeclaredType != nil {
			b.WriteString(": " + p.DeclaredType.String())
		}
		if p.HasDefault {
			b.WriteString(" = ...")
		}
	}
	b.WriteString(") -> ")
	if rt := f.ReturnType(); rt != nil {
		b.WriteString(rt.String())
	} else {
		b.WriteString("Unknown")
	}
	return b.String()
}

// HasCallMember reports whether a Function value can stand in for a
// `__call__` lookup target (narrowing pattern 16, `callable(x)`).
func (Function) HasCallMember() bool { return true }

// OverloadedFunction is an ordered list of Function signatures.
type OverloadedFunction struct {
	Overloads  []Function
	Conditions []Condition
}

func (o OverloadedFunction) Kind() Kind                 { return KindOverloadedFunction }
func (o OverloadedFunction) Instantiable() bool         { return false }
func (o OverloadedFunction) GetConditions() []Condition { return o.Conditions }

func (o OverloadedFunction) String() string {
	parts := make([]string, len(o.Overloads))
	for i, fn := range o.Overloads {
		parts[i] = fn.String()
	}
	return "Overload[" + strings.Join(parts, ", ") + "]"
}
