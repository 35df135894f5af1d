package solver

import (
	"testing"

	"github.com/solace-lang/tycore/internal/capability"
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// permissiveAssign is a fake Assignability that accepts everything except
// an explicitly blocked (dest, src) string pair, good enough to drive the
// solver's own bound-maintenance logic without modeling real subtyping.
type permissiveAssign struct {
	blocked map[[2]string]bool
}

func (p permissiveAssign) Assign(dest, src types.Type, diag *diagnostics.Sink, destCtx, srcCtx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool {
	if p.blocked != nil && p.blocked[[2]string{dest.String(), src.String()}] {
		return false
	}
	return true
}

func intClass() types.Class { return types.Class{Name: "int", Inst: false}.AsInstance() }
func strClass() types.Class { return types.Class{Name: "str", Inst: false}.AsInstance() }

func TestScopeIsolationNeverMutatesContext(t *testing.T) {
	ctx := typevars.New("scope-a")
	dest := types.TypeVar{Name: "T", ScopeID: "scope-b"}

	ok := AssignTypeVar(capability.Capabilities{}, dest, intClass(), nil, ctx, types.AssignDefault, nil)
	if ok {
		t.Fatalf("expected scope violation to fail")
	}
	if _, found := ctx.Get(dest); found {
		t.Fatalf("out-of-scope assignment must never write to the context")
	}
}

func TestScopeIsolationAcceptsGradualSource(t *testing.T) {
	ctx := typevars.New("scope-a")
	dest := types.TypeVar{Name: "T", ScopeID: "scope-b"}

	ok := AssignTypeVar(capability.Capabilities{}, dest, types.Any, nil, ctx, types.AssignDefault, nil)
	if !ok {
		t.Fatalf("Any source outside solve-for scope should still succeed")
	}
}

func TestLockedContextValidatesOnly(t *testing.T) {
	ctx := typevars.New("s")
	ctx.Lock()
	dest := types.TypeVar{Name: "T", ScopeID: "s"}
	caps := capability.Capabilities{Assign: permissiveAssign{}}

	ok := AssignTypeVar(caps, dest, intClass(), nil, ctx, types.AssignDefault, nil)
	if !ok {
		t.Fatalf("a locked context should validate (and here, nothing contradicts), not fail outright")
	}
	if _, found := ctx.Get(dest); found {
		t.Fatalf("a locked context must perform no writes")
	}
}

func TestUnconstrainedNarrowWidensMonotonically(t *testing.T) {
	ctx := typevars.New("s")
	dest := types.TypeVar{Name: "T", ScopeID: "s"}
	caps := capability.Capabilities{Assign: permissiveAssign{
		blocked: map[[2]string]bool{{"int", "str"}: true, {"str", "int"}: true},
	}}

	if !AssignTypeVar(caps, dest, intClass(), nil, ctx, types.AssignDefault, nil) {
		t.Fatalf("first bind should succeed")
	}
	first, _ := ctx.Get(dest)
	if !types.StructurallyEqual(first.Narrow, intClass()) {
		t.Fatalf("narrow bound should be int after first bind, got %s", first.Narrow)
	}

	if !AssignTypeVar(caps, dest, strClass(), nil, ctx, types.AssignDefault, nil) {
		t.Fatalf("second bind should widen rather than fail")
	}
	second, _ := ctx.Get(dest)
	if !types.StructurallyEqual(second.Narrow, types.UnionOf(intClass(), strClass())) {
		t.Fatalf("narrow bound should widen to int | str, got %s", second.Narrow)
	}
}

func TestConstrainedTypeVarRejectsDistinctConstraints(t *testing.T) {
	ctx := typevars.New("s")
	dest := types.TypeVar{
		Name:        "AnyStr",
		ScopeID:     "s",
		Constraints: []types.Type{strClass(), types.Class{Name: "bytes"}.AsInstance()},
	}
	caps := capability.Capabilities{Assign: permissiveAssign{
		blocked: map[[2]string]bool{
			{"bytes", "str"}: true,
			{"str", "bytes"}: true,
			{"bytes", "int"}: true,
			{"str", "int"}:   true,
			{"int", "str"}:   true,
			{"int", "bytes"}: true,
		},
	}}
	src := types.UnionOf(strClass(), types.Class{Name: "bytes"}.AsInstance())

	diag := diagnostics.NewSink()
	ok := AssignTypeVar(caps, dest, src, diag, ctx, types.AssignDefault, nil)
	if ok {
		t.Fatalf("str | bytes against AnyStr constrained by {str, bytes} should fail (distinct unconditional constraints)")
	}
	if diag.Len() == 0 {
		t.Fatalf("expected a diagnostic addendum describing the mismatch")
	}
}

func TestRecursionBoundExhaustionIsConservativeSuccess(t *testing.T) {
	budget := types.NewBudget(1, nil)
	budget.Enter() // consume the only slot
	ctx := typevars.New("s")
	dest := types.TypeVar{Name: "T", ScopeID: "s"}

	ok := AssignTypeVar(capability.Capabilities{}, dest, intClass(), nil, ctx, types.AssignDefault, budget)
	if !ok {
		t.Fatalf("exhausted recursion budget must yield conservative success")
	}
}
