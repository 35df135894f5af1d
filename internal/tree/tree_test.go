package tree

import "testing"

// buildModuleWithComprehension builds:
//
//	module
//	  listcomp: [x.y | x <- outer_list, x.y > 1]
//
// where outer_list is a Name resolved in the module scope (leakage rule)
// and the filter/output expressions resolve inside the comprehension.
func buildModuleWithComprehension(t *testing.T) (*Tree, int, int, int) {
	tr := New()
	moduleID := tr.Add(Node{Kind: KindModule, Parent: noNode})

	outerListID := tr.Add(Node{Kind: KindName, Name: "outer_list"})

	lcID := tr.Add(Node{Kind: KindListComprehension})

	xTargetID := tr.Add(Node{Kind: KindName, Name: "x", Parent: lcID})
	compForID := tr.Add(Node{Kind: KindComprehensionFor, Parent: lcID, Target: xTargetID, Iterable: outerListID})
	tr.Set(outerListID, withParent(tr.Node(outerListID), compForID))

	xInOutputID := tr.Add(Node{Kind: KindName, Name: "x", Parent: lcID})
	outputID := tr.Add(Node{Kind: KindMemberAccess, Parent: lcID, Name: "y", Receiver: xInOutputID})
	tr.Set(xInOutputID, withParent(tr.Node(xInOutputID), outputID))

	lc := tr.Node(lcID)
	lc.Parent = moduleID
	lc.Output = outputID
	lc.Clauses = []int{compForID}
	tr.Set(lcID, lc)

	mod := tr.Node(moduleID)
	mod.Body = []int{lcID}
	tr.Set(moduleID, mod)

	return tr, moduleID, lcID, outerListID
}

func withParent(n Node, parent int) Node {
	n.Parent = parent
	return n
}

func TestEvaluationScopeComprehensionLeakage(t *testing.T) {
	tr, moduleID, _, outerListID := buildModuleWithComprehension(t)

	got := EvaluationScope(tr, outerListID)
	if got != moduleID {
		t.Fatalf("outer_list iterable should leak to module scope, got node %d want %d", got, moduleID)
	}
}

func TestEvaluationScopeOutputStaysInComprehension(t *testing.T) {
	tr, _, lcID, _ := buildModuleWithComprehension(t)
	lc := tr.Node(lcID)
	got := EvaluationScope(tr, lc.Output)
	if got != lcID {
		t.Fatalf("output expression should resolve inside the comprehension, got %d want %d", got, lcID)
	}
}

func TestIsMatchingExpression(t *testing.T) {
	tr := New()
	xID := tr.Add(Node{Kind: KindName, Name: "x"})
	memberID := tr.Add(Node{Kind: KindMemberAccess, Name: "y", Receiver: xID})

	x2ID := tr.Add(Node{Kind: KindName, Name: "x"})
	member2ID := tr.Add(Node{Kind: KindMemberAccess, Name: "y", Receiver: x2ID})

	if !IsMatchingExpression(tr, memberID, member2ID) {
		t.Fatalf("x.y should match x.y")
	}

	zID := tr.Add(Node{Kind: KindName, Name: "z"})
	memberZID := tr.Add(Node{Kind: KindMemberAccess, Name: "y", Receiver: zID})
	if IsMatchingExpression(tr, memberID, memberZID) {
		t.Fatalf("x.y should not match z.y")
	}
}

func TestIsPartialMatchingExpression(t *testing.T) {
	tr := New()
	xID := tr.Add(Node{Kind: KindName, Name: "x"})
	abID := tr.Add(Node{Kind: KindMemberAccess, Name: "b", Receiver: xID})
	abcID := tr.Add(Node{Kind: KindMemberAccess, Name: "c", Receiver: abID})

	xOnly := tr.Add(Node{Kind: KindName, Name: "x"})

	if !IsPartialMatchingExpression(tr, abcID, abID) {
		t.Fatalf("x.b should be a partial match of x.b.c via structural prefix")
	}
	if !IsPartialMatchingExpression(tr, abID, xOnly) {
		t.Fatalf("x should be a partial match of x.b")
	}
	if IsPartialMatchingExpression(tr, abID, abID) {
		t.Fatalf("a reference must not partially match itself (strict prefix only)")
	}
}

func TestIsWriteAccessInForTarget(t *testing.T) {
	tr := New()
	iterID := tr.Add(Node{Kind: KindName, Name: "items"})
	targetID := tr.Add(Node{Kind: KindName, Name: "item"})
	forID := tr.Add(Node{Kind: KindFor, Target: targetID, Iterable: iterID})
	tr.Set(targetID, withParent(tr.Node(targetID), forID))
	tr.Set(iterID, withParent(tr.Node(iterID), forID))

	if !IsWriteAccess(tr, targetID) {
		t.Fatalf("for-loop target should be a write access")
	}
	if IsWriteAccess(tr, iterID) {
		t.Fatalf("for-loop iterable should not be a write access")
	}
}

func TestIsDocstring(t *testing.T) {
	tr := New()
	moduleID := tr.Add(Node{Kind: KindModule})
	docID := tr.Add(Node{Kind: KindString, StrValue: "module doc", Parent: moduleID})
	otherID := tr.Add(Node{Kind: KindString, StrValue: "not a docstring", Parent: moduleID})
	mod := tr.Node(moduleID)
	mod.Body = []int{docID, otherID}
	tr.Set(moduleID, mod)

	if !IsDocstring(tr, docID) {
		t.Fatalf("first string statement should be a docstring")
	}
	if IsDocstring(tr, otherID) {
		t.Fatalf("second string statement should not be a docstring")
	}
}

func TestEnclosingScopeSkipsDecorator(t *testing.T) {
	tr := New()
	fnID := tr.Add(Node{Kind: KindFunction, Parent: noNode})
	decoID := tr.Add(Node{Kind: KindName, Name: "deco", Parent: fnID})
	fn := tr.Node(fnID)
	fn.Decorators = []int{decoID}
	tr.Set(fnID, fn)

	if _, ok := EnclosingScope(tr, decoID, KindFunction); ok {
		t.Fatalf("a decorator expression must not be considered inside its decorated function")
	}
}
