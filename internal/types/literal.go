package types

import "fmt"

// LiteralKind discriminates the value carried by a literal-valued Class
// instance: bool, int, str, bytes, or enum-member.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralStr
	LiteralBytes
	LiteralEnum
)

// LiteralValue is the literal payload on a Class instance. Its presence
// forces Instantiable=false on the owning Class.
type LiteralValue struct {
	Kind LiteralKind

	Bool  bool
	Int   int64
	Str   string
	Bytes string // string-encoded for simple equality/hash; bytes literals compare by content

	// EnumClass/EnumMember identify a specific enum member (LiteralEnum).
	EnumClass  string
	EnumMember string
}

func (l LiteralValue) String() string {
	switch l.Kind {
	case LiteralBool:
		if l.Bool {
			return "True"
		}
		return "False"
	case LiteralInt:
		return fmt.Sprintf("%d", l.Int)
	case LiteralStr:
		return fmt.Sprintf("%q", l.Str)
	case LiteralBytes:
		return fmt.Sprintf("b%q", l.Bytes)
	case LiteralEnum:
		return l.EnumClass + "." + l.EnumMember
	default:
		return "<literal>"
	}
}

// Equal reports whether two literal values carry the same payload.
func (l LiteralValue) Equal(o LiteralValue) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LiteralBool:
		return l.Bool == o.Bool
	case LiteralInt:
		return l.Int == o.Int
	case LiteralStr:
		return l.Str == o.Str
	case LiteralBytes:
		return l.Bytes == o.Bytes
	case LiteralEnum:
		return l.EnumClass == o.EnumClass && l.EnumMember == o.EnumMember
	default:
		return false
	}
}

// EnumerateLiterals lists every literal value of cls when cls's set of
// values is finitely enumerable — bool (True/False) or an enum class
// (its non-protocol-ignored fields). ok is false when cls's literal
// space is not finite (e.g. str, int).
func EnumerateLiterals(cls Class, enumFields func(enumClassName string) []string) ([]LiteralValue, bool) {
	if cls.Name == "bool" {
		return []LiteralValue{{Kind: LiteralBool, Bool: true}, {Kind: LiteralBool, Bool: false}}, true
	}
	if cls.Flags.Has(FlagEnum) && enumFields != nil {
		members := enumFields(cls.Name)
		out := make([]LiteralValue, 0, len(members))
		for _, m := range members {
			out = append(out, LiteralValue{Kind: LiteralEnum, EnumClass: cls.Name, EnumMember: m})
		}
		return out, true
	}
	return nil, false
}
