package tree

// IsWriteAccess reports whether nameID sits in a write-access position:
// the left of an assignment or augmented assignment, a walrus target, a
// `for` or comprehension-for target, an except-as binding, a with-as
// binding, a del target, or an import-as alias.
func IsWriteAccess(t *Tree, nameID int) bool {
	p, ok := t.Parent(nameID)
	if !ok {
		return false
	}
	pn := t.Node(p)
	switch pn.Kind {
	case KindAssignment, KindAugAssignment:
		return pn.Target == nameID
	case KindAssignmentExpression:
		return pn.Left == nameID
	case KindFor, KindComprehensionFor:
		return pn.Target == nameID
	case KindExceptHandler, KindWithItem, KindImportAs, KindDel:
		return pn.Target == nameID
	default:
		return false
	}
}
