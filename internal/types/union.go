package types

import "strings"

// Union is a non-empty flat list of subtypes; no subtype may itself be a
// Union. Always construct via NormalizeUnion or UnionOf, never a literal
// Union{...}, so flattening cannot be violated.
type Union struct {
	Subtypes   []Type
	Conditions []Condition
}

func (u Union) Kind() Kind                 { return KindUnion }
func (u Union) Instantiable() bool         { return false }
func (u Union) GetConditions() []Condition { return u.Conditions }

func (u Union) String() string {
	parts := make([]string, len(u.Subtypes))
	for i, t := range u.Subtypes {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// UnionOf is sugar for NormalizeUnion(subtypes...).
func UnionOf(subtypes ...Type) Type {
	return NormalizeUnion(subtypes)
}

// NormalizeUnion flattens nested unions and deduplicates by structural
// string identity, preserving first-seen order (stable, so that
// repeated narrowing of the same expression yields a structurally equal
// result). Collapses to the sole element,
// or to Never, for degenerate inputs.
func NormalizeUnion(subtypes []Type) Type {
	flat := make([]Type, 0, len(subtypes))
	for _, t := range subtypes {
		if t == nil {
			continue
		}
		if u, ok := t.(Union); ok {
			flat = append(flat, u.Subtypes...)
		} else {
			flat = append(flat, t)
		}
	}
	seen := make(map[string]bool, len(flat))
	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}
	switch len(unique) {
	case 0:
		return Never
	case 1:
		return unique[0]
	default:
		return Union{Subtypes: unique}
	}
}

// MaxSubtypesForInferredType is the default pathological-union threshold
// (64); the solver widens to `object` beyond it rather than keep
// accreting subtypes into a narrow bound. A checker may override this per
// run via Budget.MaxSubtypes (see internal/config).
const MaxSubtypesForInferredType = 64

// ForEachFlattenedSubtype applies f to every leaf subtype of t — t itself
// if t is not a Union, or each of its Subtypes (already flat)
// otherwise. This is the core package's own pure structural walker; it
// does not resolve recursive aliases (that requires the external
// capability.SubtypeWalker, since alias expansion is a checker concern).
func ForEachFlattenedSubtype(t Type, f func(Type)) {
	if u, ok := t.(Union); ok {
		for _, st := range u.Subtypes {
			f(st)
		}
		return
	}
	f(t)
}

// MapFlattenedSubtypes rebuilds t by mapping f over every leaf subtype and
// re-normalizing the result (so the output stays flat).
func MapFlattenedSubtypes(t Type, f func(Type) Type) Type {
	if u, ok := t.(Union); ok {
		mapped := make([]Type, 0, len(u.Subtypes))
		for _, st := range u.Subtypes {
			mapped = append(mapped, f(st))
		}
		return NormalizeUnion(mapped)
	}
	return f(t)
}

// FilterFlattenedSubtypes keeps only the leaf subtypes of t for which keep
// returns true, re-normalizing the result. Used by nearly every
// narrowing-engine pattern.
func FilterFlattenedSubtypes(t Type, keep func(Type) bool) Type {
	if u, ok := t.(Union); ok {
		kept := make([]Type, 0, len(u.Subtypes))
		for _, st := range u.Subtypes {
			if keep(st) {
				kept = append(kept, st)
			}
		}
		return NormalizeUnion(kept)
	}
	if keep(t) {
		return t
	}
	return Never
}

// StructurallyEqual reports whether two Type values have identical string
// forms — the notion of equality narrowing's purity and monotonicity
// properties are stated in terms of.
func StructurallyEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
