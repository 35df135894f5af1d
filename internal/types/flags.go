package types

// ClassFlags are the per-class bits alongside Class: built-in, final,
// protocol, TypedDict, tuple. The same-generic-class discriminator is not
// a bit; Class.SameGenericClass compares names instead. FlagEnum
// is added so EnumerateLiterals can decide whether a class's literal
// space is finite without a separate capability call.
type ClassFlags uint16

const (
	FlagBuiltin ClassFlags = 1 << iota
	FlagFinal
	FlagProtocol
	FlagTypedDict
	FlagTuple
	FlagEnum
)

func (f ClassFlags) Has(bit ClassFlags) bool { return f&bit != 0 }
func (f ClassFlags) With(bit ClassFlags) ClassFlags { return f | bit }

// FunctionFlags are the per-Function bits: synthesized, async, abstract,
// overload.
type FunctionFlags uint16

const (
	FuncSynthesized FunctionFlags = 1 << iota
	FuncAsync
	FuncAbstract
	FuncOverload
)

func (f FunctionFlags) Has(bit FunctionFlags) bool { return f&bit != 0 }

// AssignFlags are the mode bits threaded through AssignTypeVar.
type AssignFlags uint32

const (
	AssignDefault AssignFlags = 0
	// ReverseTypeVarMatching puts the solver in contravariant mode: it
	// updates the wide bound instead of the narrow bound.
	ReverseTypeVarMatching AssignFlags = 1 << iota
	SkipSolveTypeVars
	IgnoreTypeVarScope
	// AllowTypeVarNarrowing permits the contravariant-mode wide-bound
	// tightening path even outside a reverse-matching call.
	AllowTypeVarNarrowing
	RetainLiteralsForTypeVar
	PopulatingExpectedType
)

func (f AssignFlags) Has(bit AssignFlags) bool { return f&bit != 0 }
func (f AssignFlags) With(bit AssignFlags) AssignFlags { return f | bit }
