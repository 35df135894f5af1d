package tree

// scalarValue reports the literal value of a scalar index expression: an
// integer literal, a negated integer literal (`-1`, modeled either as a
// Number node with IsNegatedInt set, or a UnaryOperation "-" wrapping a
// Number), or a string literal. ok is false for any other shape.
func scalarValue(t *Tree, id int) (isInt bool, intVal int64, isStr bool, strVal string, ok bool) {
	n := t.Node(id)
	if n.Kind == KindUnaryOperation && n.Op == "-" {
		operand := t.Node(n.Operand)
		if operand.Kind == KindNumber {
			return true, -operand.IntValue, false, "", true
		}
		return false, 0, false, "", false
	}
	if n.Kind == KindNumber {
		v := n.IntValue
		if n.IsNegatedInt {
			v = -v
		}
		return true, v, false, "", true
	}
	if n.Kind == KindString {
		return false, 0, true, n.StrValue, true
	}
	return false, 0, false, "", false
}

func isScalarIndex(t *Tree, id int) bool {
	_, _, _, _, ok := scalarValue(t, id)
	return ok
}

func scalarEqual(t *Tree, a, b int) bool {
	aIsInt, aInt, aIsStr, aStr, aok := scalarValue(t, a)
	bIsInt, bInt, bIsStr, bStr, bok := scalarValue(t, b)
	if !aok || !bok {
		return false
	}
	if aIsInt != bIsInt || aIsStr != bIsStr {
		return false
	}
	if aIsInt {
		return aInt == bInt
	}
	return aStr == bStr
}

// IsMatchingExpression is the structural-equality predicate defined over
// Name, MemberAccess(receiver, member), and Index(base, scalar) where
// scalar is an integer literal, a negated integer literal, or a string
// literal. Any other Index shape (a non-scalar subscript) returns false
// rather than attempting a deeper comparison.
func IsMatchingExpression(t *Tree, reference, candidate int) bool {
	rn := t.Node(reference)
	cn := t.Node(candidate)
	if rn.Kind != cn.Kind {
		return false
	}
	switch rn.Kind {
	case KindName:
		return rn.Name == cn.Name
	case KindMemberAccess:
		return rn.Name == cn.Name && IsMatchingExpression(t, rn.Receiver, cn.Receiver)
	case KindIndex:
		if !isScalarIndex(t, rn.IndexExpr) || !isScalarIndex(t, cn.IndexExpr) {
			return false
		}
		if !scalarEqual(t, rn.IndexExpr, cn.IndexExpr) {
			return false
		}
		return IsMatchingExpression(t, rn.Base, cn.Base)
	default:
		return false
	}
}

// IsPartialMatchingExpression reports whether candidate is a strict
// prefix of reference under member-access/index chains — e.g. `a.b` is a
// strict prefix of `a.b.c` and of `a.b[0]`, but not of `a.b` itself.
func IsPartialMatchingExpression(t *Tree, reference, candidate int) bool {
	cur := reference
	for {
		n := t.Node(cur)
		var inner int
		switch n.Kind {
		case KindMemberAccess:
			inner = n.Receiver
		case KindIndex:
			if !isScalarIndex(t, n.IndexExpr) {
				return false
			}
			inner = n.Base
		default:
			return false
		}
		cur = inner
		if IsMatchingExpression(t, cur, candidate) {
			return true
		}
	}
}
