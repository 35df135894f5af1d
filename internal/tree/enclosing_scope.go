package tree

func isScopeKind(k Kind) bool {
	switch k {
	case KindFunction, KindLambda, KindClass, KindModule, KindListComprehension:
		return true
	}
	return false
}

// isDescendant reports whether node is ancestor itself or a descendant of
// it, by walking node's parent chain.
func isDescendant(t *Tree, ancestor, node int) bool {
	cur := node
	for {
		if cur == ancestor {
			return true
		}
		p, ok := t.Parent(cur)
		if !ok {
			return false
		}
		cur = p
	}
}

// isDecoratorChild reports whether childComingFrom lies within one of
// candidateAncestor's decorator expressions: a decorator is not "inside"
// its decorated function.
func isDecoratorChild(t *Tree, candidateAncestor, childComingFrom int) bool {
	n := t.Node(candidateAncestor)
	for _, d := range n.Decorators {
		if isDescendant(t, d, childComingFrom) {
			return true
		}
	}
	return false
}

// EnclosingScope returns the nearest ancestor of node whose Kind is kind,
// skipping over any candidate whose boundary the walk entered through a
// decorator expression rather than the body.
func EnclosingScope(t *Tree, nodeID int, kind Kind) (int, bool) {
	cur := nodeID
	for {
		p, ok := t.Parent(cur)
		if !ok {
			return noNode, false
		}
		pn := t.Node(p)
		if pn.Kind == kind && !isDecoratorChild(t, p, cur) {
			return p, true
		}
		cur = p
	}
}

// EnclosingFunctionScope is the type-var-scope variant: the nearest
// Function ancestor, full stop — it never falls back to a Lambda, Class
// or Module scope when no Function encloses node.
func EnclosingFunctionScope(t *Tree, nodeID int) (int, bool) {
	return EnclosingScope(t, nodeID, KindFunction)
}

// EvaluationScope returns the lexical scope whose symbol table would
// resolve a free reference written at node:
//   - class bodies are transparent (skipped) when computing this scope;
//   - the iterable of a list comprehension's outermost generator clause
//     resolves in the scope enclosing the comprehension, not the
//     comprehension's own scope (the "comprehension-leakage" rule) —
//     every other part of the comprehension (output expression, later
//     clauses, filters) resolves inside the comprehension itself.
func EvaluationScope(t *Tree, nodeID int) int {
	cur := nodeID
	for {
		p, ok := t.Parent(cur)
		if !ok {
			return cur
		}
		pn := t.Node(p)
		if isScopeKind(pn.Kind) && !isDecoratorChild(t, p, cur) {
			if pn.Kind == KindListComprehension && len(pn.Clauses) > 0 {
				first := t.Node(pn.Clauses[0])
				if first.Kind == KindComprehensionFor && isDescendant(t, first.Iterable, nodeID) {
					cur = p
					continue
				}
			}
			if pn.Kind == KindClass {
				cur = p
				continue
			}
			return p
		}
		cur = p
	}
}
