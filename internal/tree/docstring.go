package tree

// IsDocstring reports whether stringID is a docstring: a bare String
// literal that is the first statement in a scope-bearing node's body
// (Module, Class, Function or Lambda).
func IsDocstring(t *Tree, stringID int) bool {
	n := t.Node(stringID)
	if n.Kind != KindString {
		return false
	}
	p, ok := t.Parent(stringID)
	if !ok {
		return false
	}
	pn := t.Node(p)
	if !isScopeKind(pn.Kind) || len(pn.Body) == 0 {
		return false
	}
	return pn.Body[0] == stringID
}

// StatementRange returns the source-offset span of the statement that
// contains node — the top-level body entry reached by walking up from
// node until the immediate parent is scope-bearing.
func StatementRange(t *Tree, nodeID int) (start, end int) {
	cur := nodeID
	for {
		p, ok := t.Parent(cur)
		if !ok {
			n := t.Node(cur)
			return n.StartOffset, n.EndOffset
		}
		pn := t.Node(p)
		if isScopeKind(pn.Kind) {
			n := t.Node(cur)
			return n.StartOffset, n.EndOffset
		}
		cur = p
	}
}
