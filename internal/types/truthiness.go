package types

// Truthiness classifies whether a leaf subtype can be truthy, falsy, or
// both, driving narrowing patterns 18/19 (`bool(x)` and bare reference
// truthiness narrowing).
type Truthiness int

const (
	TruthinessUnknown Truthiness = iota
	TruthinessAlwaysTruthy
	TruthinessAlwaysFalsy
	TruthinessBoth
)

// ClassifyTruthiness inspects a leaf (non-union) type for its truthiness.
// Literal values are definite; None is always falsy; Never, Any and
// Unknown are indeterminate (TruthinessBoth, so narrowing is a no-op on
// them); ordinary class instances default to "could be either" unless a
// literal says otherwise, matching the conservative reading the
// narrowing patterns need (never drop a value narrowing can't prove is
// impossible, which would break soundness).
func ClassifyTruthiness(t Type) Truthiness {
	switch v := t.(type) {
	case NoneType:
		return TruthinessAlwaysFalsy
	case AnyType, UnknownType, NeverType:
		return TruthinessBoth
	case Class:
		if v.Literal != nil {
			switch v.Literal.Kind {
			case LiteralBool:
				if v.Literal.Bool {
					return TruthinessAlwaysTruthy
				}
				return TruthinessAlwaysFalsy
			case LiteralInt:
				if v.Literal.Int == 0 {
					return TruthinessAlwaysFalsy
				}
				return TruthinessAlwaysTruthy
			case LiteralStr:
				if v.Literal.Str == "" {
					return TruthinessAlwaysFalsy
				}
				return TruthinessAlwaysTruthy
			case LiteralBytes:
				if v.Literal.Bytes == "" {
					return TruthinessAlwaysFalsy
				}
				return TruthinessAlwaysTruthy
			}
		}
		if v.Flags.Has(FlagTuple) {
			if len(v.TupleArgs) == 0 {
				return TruthinessAlwaysFalsy
			}
			allBounded := true
			for _, a := range v.TupleArgs {
				if a.IsUnbounded {
					allBounded = false
				}
			}
			if allBounded {
				return TruthinessAlwaysTruthy
			}
		}
		return TruthinessBoth
	case Function, OverloadedFunction, Module:
		return TruthinessAlwaysTruthy
	default:
		return TruthinessBoth
	}
}

// NarrowTruthiness removes falsy leaf subtypes (isPositive) or truthy
// leaf subtypes (!isPositive) from t, keeping anything indeterminate —
// this is the shared implementation behind narrowing patterns 18 and 19.
func NarrowTruthiness(t Type, isPositive bool) Type {
	return FilterFlattenedSubtypes(t, func(st Type) bool {
		switch ClassifyTruthiness(st) {
		case TruthinessAlwaysTruthy:
			return isPositive
		case TruthinessAlwaysFalsy:
			return !isPositive
		default:
			return true
		}
	})
}

// StripLiterals returns a copy of t with literal values removed from every
// leaf Class subtype, used by the solver's covariant-bound update: the
// adjusted source is stripped of literals unless literal retention was
// requested.
func StripLiterals(t Type) Type {
	return MapFlattenedSubtypes(t, func(st Type) Type {
		if c, ok := st.(Class); ok && c.Literal != nil {
			c.Literal = nil
			c.Inst = true
			return c
		}
		return st
	})
}

// HasLiteral reports whether any leaf subtype of t carries a literal
// value.
func HasLiteral(t Type) bool {
	found := false
	ForEachFlattenedSubtype(t, func(st Type) {
		if c, ok := st.(Class); ok && c.Literal != nil {
			found = true
		}
	})
	return found
}
