package narrow

import (
	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/tree"
	"github.com/solace-lang/tycore/internal/types"
)

// dispatchBinary covers every §4.4 pattern whose test_expr is a
// BinaryOperation: is/is not/==/!= against None or a literal (patterns
// 2,3,5,6,7,8,10,11,12) and in/not in (patterns 13,14).
func dispatchBinary(t *tree.Tree, caps capability.Capabilities, referenceID, testExprID int, isPositive bool, budget *types.Budget) (Callback, bool) {
	n := t.Node(testExprID)
	switch n.Op {
	case "is", "is not", "==", "!=":
		negatedOp := n.Op == "is not" || n.Op == "!="
		effectivePositive := isPositive != negatedOp
		isIdentity := n.Op == "is" || n.Op == "is not"
		return dispatchEquality(t, caps, referenceID, n.Left, n.Right, effectivePositive, isIdentity, budget)
	case "in", "not in":
		negatedOp := n.Op == "not in"
		effectivePositive := isPositive != negatedOp
		return dispatchMembership(t, caps, referenceID, n.Left, n.Right, effectivePositive, budget)
	}
	return nil, false
}

// dispatchEquality handles every is/==-family pattern by first deciding
// which operand plays the "reference-rooted" role (the bare reference, or
// a member/index access rooted at it) and which is the comparand.
func dispatchEquality(t *tree.Tree, caps capability.Capabilities, referenceID, left, right int, isPositive, isIdentity bool, budget *types.Budget) (Callback, bool) {
	if cb, ok := tryEqualityOperands(t, caps, referenceID, left, right, isPositive, isIdentity, budget); ok {
		return cb, true
	}
	return tryEqualityOperands(t, caps, referenceID, right, left, isPositive, isIdentity, budget)
}

// tryEqualityOperands treats accessorID as the reference-rooted side and
// literalID as the comparand, returning (nil, false) if accessorID doesn't
// actually root at referenceID.
func tryEqualityOperands(t *tree.Tree, caps capability.Capabilities, referenceID, accessorID, literalID int, isPositive, isIdentity bool, budget *types.Budget) (Callback, bool) {
	// Pattern 4: type(x) is Y.
	if isTypeCall(t, accessorID, referenceID) {
		return typeIsNarrow(caps, literalID, isPositive), true
	}

	// Pattern 9: len(x) == n / len(x) != n.
	if isLenCall(t, accessorID, referenceID) {
		if n, ok := tupleIndexLiteral(t, literalID); ok {
			return tupleLengthNarrow(n, isPositive), true
		}
	}

	an := t.Node(accessorID)

	// Bare reference: patterns 2 (is None), 5/6 (literal comparison).
	if tree.IsMatchingExpression(t, referenceID, accessorID) {
		if isNoneLiteral(t, literalID) {
			return isNoneNarrow(isPositive), true
		}
		if l, ok := literalTypeOf(caps, literalID); ok {
			if lc, ok := l.(types.Class); ok {
				return func(ref types.Type) types.Type {
					return literalComparison(caps, ref, lc, isPositive, isIdentity)
				}, true
			}
		}
		return nil, false
	}

	switch an.Kind {
	case tree.KindIndex:
		if !tree.IsMatchingExpression(t, referenceID, an.Base) {
			return nil, false
		}
		if isNoneLiteral(t, literalID) {
			return tupleIndexIsNoneNarrow(an.IndexExpr, t, isPositive), true
		}
		if l, ok := literalTypeOf(caps, literalID); ok {
			if lc, ok := l.(types.Class); ok {
				return indexDiscriminatorNarrow(caps, t, an.IndexExpr, lc, isPositive), true
			}
		}
	case tree.KindMemberAccess:
		if !tree.IsMatchingExpression(t, referenceID, an.Receiver) {
			return nil, false
		}
		if isNoneLiteral(t, literalID) {
			return memberIsNoneNarrow(an.Name, isPositive), true
		}
		if l, ok := literalTypeOf(caps, literalID); ok {
			if lc, ok := l.(types.Class); ok {
				return memberDiscriminatorNarrow(an.Name, lc, isPositive), true
			}
		}
	}
	return nil, false
}

func isNoneLiteral(t *tree.Tree, id int) bool {
	n := t.Node(id)
	return n.Kind == tree.KindConstant && n.Name == "None"
}

func isTypeCall(t *tree.Tree, id, referenceID int) bool {
	return isBuiltinCallOn(t, id, referenceID, "type")
}

func isLenCall(t *tree.Tree, id, referenceID int) bool {
	return isBuiltinCallOn(t, id, referenceID, "len")
}

func isBuiltinCallOn(t *tree.Tree, id, referenceID int, name string) bool {
	n := t.Node(id)
	if n.Kind != tree.KindCall || len(n.Args) != 1 {
		return false
	}
	if calleeName(t, id) != name {
		return false
	}
	return tree.IsMatchingExpression(t, referenceID, n.Args[0])
}

// tupleLengthNarrow is pattern 9: keep fixed-length tuple subtypes whose
// length matches (positive) or mismatches (negative); unbounded tuples
// always pass through untouched.
func tupleLengthNarrow(n int, isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			c, ok := sub.(types.Class)
			if !ok || !c.Flags.Has(types.FlagTuple) {
				return true
			}
			for _, a := range c.TupleArgs {
				if a.IsUnbounded {
					return true
				}
			}
			matches := len(c.TupleArgs) == n
			if isPositive {
				return matches
			}
			return !matches
		})
	}
}

// isNoneNarrow is pattern 2: `x is None` family.
func isNoneNarrow(isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
			if types.IsAnyOrUnknown(sub) {
				return sub
			}
			_, isNone := sub.(types.NoneType)
			if isPositive {
				if isNone {
					return sub
				}
				if c, ok := sub.(types.Class); ok && c.Name == "object" {
					return types.None.WithConditions(c.GetConditions())
				}
				return types.Never
			}
			if isNone {
				return types.Never
			}
			return sub
		})
	}
}

// tupleIndexIsNoneNarrow is pattern 3: `x[i] is None` on a fixed-length
// tuple, i an in-range integer literal.
func tupleIndexIsNoneNarrow(indexExprID int, t *tree.Tree, isPositive bool) Callback {
	idx, hasIdx := tupleIndexLiteral(t, indexExprID)
	return func(ref types.Type) types.Type {
		if !hasIdx {
			return ref
		}
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			c, ok := sub.(types.Class)
			if !ok || !c.Flags.Has(types.FlagTuple) || idx < 0 || idx >= len(c.TupleArgs) {
				return true
			}
			_, elIsNone := c.TupleArgs[idx].Type.(types.NoneType)
			if isPositive {
				return elIsNone || types.ContainsGradualForm(c.TupleArgs[idx].Type)
			}
			return !elIsNone
		})
	}
}

func tupleIndexLiteral(t *tree.Tree, id int) (int, bool) {
	n := t.Node(id)
	if n.Kind != tree.KindNumber {
		return 0, false
	}
	v := n.IntValue
	if n.IsNegatedInt {
		v = -v
	}
	return int(v), true
}

// indexDiscriminatorNarrow is patterns 7/8: `x[k] == L` (TypedDict) or
// `x[i] == L` (tuple), keyed by whatever the index literal resolves to.
func indexDiscriminatorNarrow(caps capability.Capabilities, t *tree.Tree, indexExprID int, l types.Class, isPositive bool) Callback {
	n := t.Node(indexExprID)
	if n.Kind == tree.KindString {
		key := n.StrValue
		return typedDictKeyDiscriminator(caps, key, l, isPositive)
	}
	idx, hasIdx := tupleIndexLiteral(t, indexExprID)
	return func(ref types.Type) types.Type {
		if !hasIdx {
			return ref
		}
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			c, ok := sub.(types.Class)
			if !ok || !c.Flags.Has(types.FlagTuple) || idx < 0 || idx >= len(c.TupleArgs) {
				return true
			}
			elClass, ok := c.TupleArgs[idx].Type.(types.Class)
			if !ok || !elClass.SameGenericClass(l) || elClass.Literal == nil || l.Literal == nil {
				return true
			}
			matches := elClass.Literal.Equal(*l.Literal)
			if isPositive {
				return matches
			}
			return !matches
		})
	}
}

func typedDictKeyDiscriminator(caps capability.Capabilities, key string, l types.Class, isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			c, ok := sub.(types.Class)
			if !ok || !c.Flags.Has(types.FlagTypedDict) {
				return true
			}
			entries := typedDictMembersOf(caps, c)
			entry, has := entries[key]
			if !has {
				return true
			}
			entryClass, ok := entry.ValueType.(types.Class)
			if !ok || entryClass.Literal == nil || l.Literal == nil {
				return true
			}
			matches := entryClass.Literal.Equal(*l.Literal)
			if isPositive {
				return matches
			}
			return !matches
		})
	}
}

// memberDiscriminatorNarrow is patterns 10/11: `x.m == L` / `x.m is L`.
func memberDiscriminatorNarrow(member string, l types.Class, isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			c, ok := sub.(types.Class)
			if !ok {
				return true
			}
			sym, ok := c.LookupField(member)
			if !ok {
				return true
			}
			memberType := sym.Type
			if sym.IsProperty {
				memberType = sym.PropertyGetterType
			}
			mc, ok := memberType.(types.Class)
			if !ok || mc.Literal == nil || l.Literal == nil {
				return true
			}
			matches := mc.Literal.Equal(*l.Literal)
			if isPositive {
				return matches
			}
			return !matches
		})
	}
}

// memberIsNoneNarrow is pattern 12: `x.m is None` — skipped (identity)
// whenever the member is a descriptor/property or its type already
// contains a gradual form: canNarrow iff the member type is
// definitely-or-definitely-not None, i.e. contains no Any/Unknown/Never.
func memberIsNoneNarrow(member string, isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
			c, ok := sub.(types.Class)
			if !ok {
				return sub
			}
			sym, ok := c.LookupField(member)
			if !ok || sym.IsProperty {
				return sub
			}
			if types.ContainsGradualForm(sym.Type) {
				return sub
			}
			_, isNone := sym.Type.(types.NoneType)
			if isPositive {
				if isNone {
					return sub
				}
				return types.Never
			}
			if isNone {
				return types.Never
			}
			return sub
		})
	}
}

// typeIsNarrow is pattern 4: `type(x) is Y` / `type(x) is not Y`.
func typeIsNarrow(caps capability.Capabilities, yExprID int, isPositive bool) Callback {
	yType, ok := literalTypeOf(caps, yExprID)
	return func(ref types.Type) types.Type {
		if !ok {
			return ref
		}
		yClass, isClass := yType.(types.Class)
		if !isClass {
			return ref
		}
		return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
			c, isC := sub.(types.Class)
			if !isC {
				if isPositive {
					return types.Never
				}
				return sub
			}
			if isPositive {
				if yClass.IsSubclassOf(c) {
					return c
				}
				return yClass.AsInstance()
			}
			if c.Flags.Has(types.FlagFinal) && c.SameGenericClass(yClass) {
				return types.Never
			}
			return sub
		})
	}
}

// dispatchMembership covers patterns 13 (`x in C`) and 14 (`k in td`).
func dispatchMembership(t *tree.Tree, caps capability.Capabilities, referenceID, left, right int, isPositive bool, budget *types.Budget) (Callback, bool) {
	if tree.IsMatchingExpression(t, referenceID, left) {
		return containerMembershipNarrow(caps, right, isPositive), true
	}
	if tree.IsMatchingExpression(t, referenceID, right) {
		ln := t.Node(left)
		if ln.Kind == tree.KindString {
			return typedDictKeyInNarrow(caps, ln.StrValue, isPositive), true
		}
	}
	return nil, false
}

// typedDictMembersOf resolves c's effective TypedDict member map through
// the checker's TypedDictInspector when one is supplied, since that
// capability is the authoritative source for each member's
// {value type, is-required, is-provided} triple — falling back to the
// class's own merged view (TypedDictEntries, which takes required-ness
// from each field's Symbol.IsRequired) only when no inspector is available.
func typedDictMembersOf(caps capability.Capabilities, c types.Class) map[string]types.TypedDictEntry {
	if caps.TypedDicts != nil {
		return caps.TypedDicts.GetTypedDictMembers(c, true)
	}
	return c.TypedDictEntries()
}

var containerClassNames = map[string]bool{
	"list": true, "set": true, "frozenset": true, "deque": true,
	"tuple": true, "dict": true, "defaultdict": true, "OrderedDict": true,
}

// containerMembershipNarrow is pattern 13: `x in C`. Positive narrowing
// keeps reference subtypes that are a super- or sub-type of the
// container's element type, stripping literals on the supertype side;
// negative never narrows.
func containerMembershipNarrow(caps capability.Capabilities, containerExprID int, isPositive bool) Callback {
	containerType, ok := literalTypeOf(caps, containerExprID)
	return func(ref types.Type) types.Type {
		if !isPositive || !ok || caps.Assign == nil {
			return ref
		}
		containerClass, isClass := containerType.(types.Class)
		if !isClass || !containerClassNames[containerClass.Name] {
			return ref
		}
		elementType := containerElementType(containerClass)
		if elementType == nil {
			return ref
		}
		return types.FilterFlattenedSubtypes(ref, func(sub types.Type) bool {
			if caps.Assign.Assign(types.StripLiterals(sub), elementType, nil, nil, nil, types.AssignDefault, nil) {
				return true
			}
			return caps.Assign.Assign(elementType, sub, nil, nil, nil, types.AssignDefault, nil)
		})
	}
}

func containerElementType(c types.Class) types.Type {
	if len(c.TypeArgs) > 0 {
		return c.TypeArgs[len(c.TypeArgs)-1]
	}
	if len(c.TupleArgs) > 0 {
		elems := make([]types.Type, 0, len(c.TupleArgs))
		for _, a := range c.TupleArgs {
			elems = append(elems, a.Type)
		}
		return types.UnionOf(elems...)
	}
	return nil
}

// typedDictKeyInNarrow is pattern 14: `k in td`.
func typedDictKeyInNarrow(caps capability.Capabilities, key string, isPositive bool) Callback {
	return func(ref types.Type) types.Type {
		return types.MapFlattenedSubtypes(ref, func(sub types.Type) types.Type {
			c, ok := sub.(types.Class)
			if !ok || !c.Flags.Has(types.FlagTypedDict) {
				return sub
			}
			entries := typedDictMembersOf(caps, c)
			entry, has := entries[key]
			if isPositive {
				if !has {
					if c.Flags.Has(types.FlagFinal) {
						return types.Never
					}
					return sub
				}
				if !entry.IsRequired && !entry.IsProvided {
					return c.WithTypedDictNarrowed(map[string]types.TypedDictEntry{
						key: {ValueType: entry.ValueType, IsRequired: entry.IsRequired, IsProvided: true},
					})
				}
				return sub
			}
			if has && (entry.IsRequired || entry.IsProvided) {
				return types.Never
			}
			return sub
		})
	}
}
