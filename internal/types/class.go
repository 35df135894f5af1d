package types

import (
	"fmt"
	"strings"
)

// TypeParam is a class's declared type parameter together with its
// declared variance.
type TypeParam struct {
	Name     string
	Variance Variance
	Bound    Type // optional
}

// TupleArg is one element of a fixed-length tuple's argument list.
type TupleArg struct {
	Type        Type
	IsUnbounded bool
}

// Symbol is a minimal member-table entry: just enough for narrowing and
// the solver to inspect a class's declared members. PropertyGetterType
// lets member-discriminator narrowing treat a property whose getter is
// literal-typed as if it were a plain attribute. IsRequired marks whether
// a TypedDict-field symbol must be provided by every literal of the class
// (TypedDictEntries honors this instead of assuming every declared field
// is required).
type Symbol struct {
	Name               string
	Type               Type
	IsProperty         bool
	PropertyGetterType Type
	HasCallMember      bool // true when this symbol is `__call__`
	IsRequired         bool // TypedDict field only; declared-required vs total=false optional
}

// Class is the most complex Type variant: fully-qualified name, flags,
// declared type parameters with variance, optional explicit type
// arguments, optional tuple type arguments, optional literal value,
// optional TypedDict narrowed-entries map, an include-subclasses flag,
// optional conditions, MRO, and fields.
type Class struct {
	Name  string
	Flags ClassFlags

	TypeParams []TypeParam
	TypeArgs   []Type // optional explicit specialization

	TupleArgs []TupleArg // optional; mutually exclusive meaning with unbounded args

	Literal *LiteralValue // optional; forces Inst=false

	// TypedDictNarrowed is a delta over the class's declared TypedDict
	// entries: a key absent here inherits the declared required-ness from
	// the class's own Fields.
	TypedDictNarrowed map[string]TypedDictEntry

	IncludeSubclasses bool

	MRO []Class // linearised ancestors, most-derived first

	Fields map[string]Symbol

	Inst       bool // instantiable vs instance
	Conditions []Condition
}

// TypedDictEntry is one entry of a TypedDict's narrowed-entries map.
type TypedDictEntry struct {
	ValueType  Type
	IsRequired bool
	IsProvided bool
}

func (c Class) Kind() Kind { return KindClass }

func (c Class) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	if c.Literal != nil {
		return fmt.Sprintf("%s[%s]", c.Name, c.Literal.String())
	}
	if len(c.TypeArgs) > 0 {
		b.WriteString("[")
		for i, a := range c.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString("]")
	} else if len(c.TupleArgs) > 0 {
		b.WriteString("[")
		for i, a := range c.TupleArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			if a.IsUnbounded {
				b.WriteString(a.Type.String() + ", ...")
			} else {
				b.WriteString(a.Type.String())
			}
		}
		b.WriteString("]")
	}
	if c.Inst {
		return "type[" + b.String() + "]"
	}
	return b.String()
}

func (c Class) Instantiable() bool {
	if c.Literal != nil {
		return false // a literal value forces non-instantiable
	}
	return c.Inst
}

func (c Class) GetConditions() []Condition { return c.Conditions }

// WithConditions returns a copy of c tagged with the given conditions,
// used throughout narrowing to propagate constrained-TypeVar provenance.
func (c Class) WithConditions(conds []Condition) Class {
	c.Conditions = conds
	return c
}

// SameGenericClass reports whether c and o are instantiations of the same
// declared generic class, ignoring type arguments/tuple args/literal
// value — the same-generic-class discriminator is realised here as a
// comparison rather than a stored bit, since identity is already fully
// determined by Name.
func (c Class) SameGenericClass(o Class) bool {
	return c.Name == o.Name
}

// IsSubclassOf reports whether c appears in ancestor's MRO (nominal
// ancestry only — protocol structural membership is a capability the
// checker supplies, see internal/capability).
func (c Class) IsSubclassOf(ancestor Class) bool {
	if c.SameGenericClass(ancestor) {
		return true
	}
	for _, m := range c.MRO {
		if m.SameGenericClass(ancestor) {
			return true
		}
	}
	return false
}

// AsInstance returns a copy of c with Inst=false (an instance of the
// class) unless c carries a literal value, in which case it is already
// forced to be an instance already, by virtue of carrying a literal value.
func (c Class) AsInstance() Class {
	c.Inst = false
	return c
}

// AsInstantiable returns a copy of c with Inst=true ("class-qua-class"),
// refusing to set the bit on a literal-valued class.
func (c Class) AsInstantiable() Class {
	if c.Literal != nil {
		return c
	}
	c.Inst = true
	return c
}

// LookupField resolves name through Fields, falling back through MRO in
// order (nearest ancestor wins after the class's own declarations).
func (c Class) LookupField(name string) (Symbol, bool) {
	if s, ok := c.Fields[name]; ok {
		return s, true
	}
	for _, m := range c.MRO {
		if s, ok := m.Fields[name]; ok {
			return s, true
		}
	}
	return Symbol{}, false
}

// TypedDictEntries merges the class's declared field types with its
// narrowed-entries delta: a key absent from TypedDictNarrowed
// inherits the declared required-ness from Fields.
func (c Class) TypedDictEntries() map[string]TypedDictEntry {
	out := make(map[string]TypedDictEntry, len(c.Fields))
	for name, sym := range c.Fields {
		out[name] = TypedDictEntry{ValueType: sym.Type, IsRequired: sym.IsRequired}
	}
	for name, entry := range c.TypedDictNarrowed {
		out[name] = entry
	}
	return out
}

// WithTypedDictNarrowed returns a copy of c whose TypedDictNarrowed map is
// the receiver's overlaid with the given deltas.
func (c Class) WithTypedDictNarrowed(deltas map[string]TypedDictEntry) Class {
	merged := make(map[string]TypedDictEntry, len(c.TypedDictNarrowed)+len(deltas))
	for k, v := range c.TypedDictNarrowed {
		merged[k] = v
	}
	for k, v := range deltas {
		merged[k] = v
	}
	c.TypedDictNarrowed = merged
	return c
}

// WithTypeArgs returns a copy of c specialised with the given type
// arguments.
func (c Class) WithTypeArgs(args []Type) Class {
	c.TypeArgs = args
	return c
}
