package narrow

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/types"
)

// literalTypeOf resolves an operand expression to its Type via the
// ExprTypes capability — every literal-comparison and filter-extraction
// pattern needs the operand's resolved Type, not just its syntax (see
// capability.ExprTypes's doc comment).
func literalTypeOf(caps capability.Capabilities, exprID int) (types.Type, bool) {
	if caps.Exprs == nil {
		return nil, false
	}
	return caps.Exprs.TypeOf(exprID)
}

// literalComparison narrows referenceType by comparing each of its leaf
// subtypes against the literal type L. isIdentity distinguishes `is`/
// `is not` from `==`/`!=`: an identity comparison against a mismatched
// generic class can never hold, so it drops in the positive branch the
// same way a None subtype does, whereas `==` may still hold through a
// user-defined `__eq__` and so is retained.
func literalComparison(caps capability.Capabilities, referenceType types.Type, l types.Class, isPositive, isIdentity bool) types.Type {
	return types.MapFlattenedSubtypes(referenceType, func(sub types.Type) types.Type {
		c, ok := sub.(types.Class)
		if !ok {
			return dropOrRetainNonClass(sub, isPositive, isIdentity)
		}
		if !c.SameGenericClass(l) {
			return dropOrRetainNonClass(sub, isPositive, isIdentity)
		}
		if c.Literal != nil {
			matches := l.Literal != nil && c.Literal.Equal(*l.Literal)
			if isPositive {
				if matches {
					return sub
				}
				return types.Never
			}
			if matches {
				return types.Never
			}
			return sub
		}
		// Same generic class, no literal value on the subtype itself.
		if isPositive {
			return l
		}
		if literals, finite := types.EnumerateLiterals(c, nil); finite {
			var rest []types.Type
			for _, lv := range literals {
				if l.Literal != nil && lv.Equal(*l.Literal) {
					continue
				}
				lvCopy := lv
				rest = append(rest, withLiteralHelper(c, &lvCopy))
			}
			return types.UnionOf(rest...)
		}
		return sub
	})
}

// withLiteralHelper is a small unexported helper kept local to this file (the
// Class type itself has no such setter — every other call site constructs
// a literal Class by hand, but the enumerate-and-exclude loop above needs
// it repeatedly).
func withLiteralHelper(c types.Class, l *types.LiteralValue) types.Class {
	c.Literal = l
	c.Inst = false
	return c
}

// dropOrRetainNonClass handles a subtype that does not share L's generic
// class: in positive mode an identity comparison or a None subtype can
// never match, so it drops; every other case retains the subtype.
func dropOrRetainNonClass(sub types.Type, isPositive, isIdentity bool) types.Type {
	if !isPositive {
		return sub
	}
	if isIdentity {
		return types.Never
	}
	if _, isNone := sub.(types.NoneType); isNone {
		return types.Never
	}
	return sub
}
