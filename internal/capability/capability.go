// Package capability declares the external collaborators the core
// consumes: the assignability judgment, concretisation, subtype traversal
// over recursive aliases, builtin-class lookups, TypedDict inspection,
// protocol checks, intersection synthesis, and expression types.
// Cancellation is not declared here; it travels in types.Budget. The core never constructs an implementation of any of
// these — they are always passed in or reached through a handle — and it
// never inspects one beyond calling it.
package capability

import (
	"github.com/solace-lang/tycore/internal/diagnostics"
	"github.com/solace-lang/tycore/internal/types"
	"github.com/solace-lang/tycore/internal/typevars"
)

// ExprTypes resolves a parse-tree expression node to its already-inferred
// Type. The narrowing engine (internal/narrow) dispatches on test-expression
// *syntax*, but several patterns — the filter operand of
// isinstance/issubclass, the `Y` of `type(x) is Y`, the literal `L` of every
// literal-comparison pattern — need that operand's resolved Type, which the
// read-only parse tree does not itself carry. This capability is the
// bridge: the surrounding checker already computed it once during ordinary
// type evaluation, so the engine asks for it rather than re-deriving it
// from syntax.
type ExprTypes interface {
	TypeOf(exprID int) (types.Type, bool)
}

// Assignability is the judgment the solver calls back into, and which in
// turn calls back into the solver for any TypeVar destination it meets.
type Assignability interface {
	Assign(dest, src types.Type, diag *diagnostics.Sink, destCtx, srcCtx *typevars.Context, flags types.AssignFlags, budget *types.Budget) bool
}

// Concretiser replaces TypeVars in t by their concrete bounds/unions.
type Concretiser interface {
	Concretise(t types.Type) types.Type
}

// SubtypeWalker resolves the parts of a type's structure that package
// types's pure flattened helpers cannot reach on their own, because doing
// so requires the checker's alias table or TypeVar solutions rather than a
// pure function of the Type value alone.
type SubtypeWalker interface {
	// MapSubtypesExpandTypeVars replaces each flattened TypeVar subtype
	// with its bound/constraint form, handing the callback both the
	// expanded and original value so it can decide which to keep.
	MapSubtypesExpandTypeVars(t types.Type, conditionFilter []types.Condition, f func(expanded, unexpanded types.Type) types.Type) types.Type
	// ResolveRecursiveAlias expands t one level if it is a recursive type
	// alias placeholder; narrowing routes every structural inspection of a
	// possibly-alias type through this first.
	ResolveRecursiveAlias(t types.Type) types.Type
}

// Builtins is the builtin-class lookup capability: `object`, `type`,
// `dict`, the TypedDict metaclass, the tuple metaclass.
type Builtins interface {
	Object() types.Class
	TypeClass() types.Class
	Dict() types.Class
	TypedDictMetaclass() types.Class
	TupleMetaclass() types.Class
}

// TypedDictInspector resolves a class's effective TypedDict member map,
// honoring narrowed-entries deltas recorded on the class when
// allowNarrowed is set — the authoritative source for a member's
// {value type, is-required, is-provided} triple, as opposed to the
// class's raw declared fields.
type TypedDictInspector interface {
	GetTypedDictMembers(cls types.Class, allowNarrowed bool) map[string]types.TypedDictEntry
}

// ProtocolChecker decides structural protocol membership: whether src
// satisfies the member requirements of the protocol proto. Needed by
// isinstance/issubclass narrowing and callable() narrowing when a filter
// class is a protocol.
type ProtocolChecker interface {
	SatisfiesProtocol(src types.Type, proto types.Class) bool
}

// IntersectionSynthesizer creates the synthesised `<subclass of S and F>`
// class isinstance narrowing falls back to when neither filter is already
// a super- or subclass of the candidate, keyed deterministically by
// (module, source-location, filter-class-name) so that repeated narrowing
// of the same expression yields the same class identity (important for
// the surrounding checker's caching).
type IntersectionSynthesizer interface {
	SynthesizeIntersection(key IntersectionKey, subclass, filter types.Class) types.Class
}

// IntersectionKey is the deterministic identity a synthesised intersection
// class is cached under.
type IntersectionKey struct {
	Module     string
	SourceSpan int
	FilterName string
}

// Capabilities bundles every external collaborator the narrowing engine
// and solver need, so call sites thread one value instead of eight
// parameters. Any field may be nil if the corresponding feature is not
// exercised by the caller's test — every call site nil-checks before use.
type Capabilities struct {
	Assign       Assignability
	Concretise   Concretiser
	Walk         SubtypeWalker
	Builtins     Builtins
	TypedDicts   TypedDictInspector
	Protocols    ProtocolChecker
	Intersection IntersectionSynthesizer
	Exprs        ExprTypes
}
