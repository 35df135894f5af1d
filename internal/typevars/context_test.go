package typevars

import (
	"testing"

	"github.com/solace-lang/tycore/internal/types"
)

func TestLockedContextRejectsWrites(t *testing.T) {
	ctx := New("fn1")
	tv := types.TypeVar{Name: "T", ScopeID: "fn1"}
	intCls := types.Class{Name: "int"}.AsInstance()

	if ok := ctx.Set(tv, intCls, intCls, false); !ok {
		t.Fatalf("expected unlocked Set to succeed")
	}
	ctx.Lock()

	if ok := ctx.Set(tv, types.Class{Name: "str"}.AsInstance(), nil, false); ok {
		t.Fatalf("expected locked Set to be a no-op")
	}

	got, ok := ctx.Get(tv)
	if !ok || got.Narrow.String() != "int" {
		t.Fatalf("locked context must not have mutated the prior binding, got %+v", got)
	}
}

func TestScopeIsolation(t *testing.T) {
	ctx := New("fn1")
	outOfScope := types.TypeVar{Name: "U", ScopeID: "fn2"}
	if ctx.HasSolveForScope(outOfScope.ScopeID) {
		t.Fatalf("fn2 should not be in the solve-for set")
	}
}
