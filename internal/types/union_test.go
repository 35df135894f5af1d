package types

import "testing"

func TestNormalizeUnionFlattensAndDedupes(t *testing.T) {
	intCls := Class{Name: "int", Inst: false}.AsInstance()
	strCls := Class{Name: "str", Inst: false}.AsInstance()

	inner := NormalizeUnion([]Type{intCls, strCls})
	outer := NormalizeUnion([]Type{inner, strCls, None})

	u, ok := outer.(Union)
	if !ok {
		t.Fatalf("expected Union, got %T", outer)
	}
	if len(u.Subtypes) != 3 {
		t.Fatalf("expected 3 flattened+deduped subtypes, got %d: %s", len(u.Subtypes), u.String())
	}
}

func TestNormalizeUnionCollapsesSingleton(t *testing.T) {
	intCls := Class{Name: "int"}.AsInstance()
	got := NormalizeUnion([]Type{intCls, intCls})
	if _, ok := got.(Union); ok {
		t.Fatalf("expected collapse to non-union, got Union: %s", got.String())
	}
	if got.String() != "int" {
		t.Fatalf("got %s, want int", got.String())
	}
}

func TestNormalizeUnionEmptyIsNever(t *testing.T) {
	got := NormalizeUnion(nil)
	if got.Kind() != KindNever {
		t.Fatalf("expected Never, got %s", got.Kind())
	}
}

func TestStripLiteralsPreservesNonLiterals(t *testing.T) {
	lit := Class{Name: "int", Literal: &LiteralValue{Kind: LiteralInt, Int: 5}}
	stripped := StripLiterals(lit)
	cls, ok := stripped.(Class)
	if !ok {
		t.Fatalf("expected Class, got %T", stripped)
	}
	if cls.Literal != nil {
		t.Fatalf("expected literal stripped")
	}
	if cls.Inst {
		t.Fatalf("expected Inst=false (still an instance) after stripping a literal instance")
	}
}

func TestNarrowTruthinessKeepsIndeterminate(t *testing.T) {
	u := UnionOf(Class{Name: "int"}.AsInstance(), Any, None)
	positive := NarrowTruthiness(u, true)
	// None is always falsy, dropped on the positive branch; Any stays (indeterminate).
	if !ContainsGradualForm(positive) {
		t.Fatalf("expected Any to survive positive truthiness narrowing: %s", positive.String())
	}
	if StructurallyEqual(positive, None) {
		t.Fatalf("None must not survive the positive truthiness branch")
	}
}
