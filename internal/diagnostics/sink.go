// Package diagnostics implements the structured diagnostic sink: the core
// never raises for a predictable mismatch, it signals failure with a
// boolean return paired with an addendum carrying {source type,
// destination type, type-variable name, constraint name} in structured
// form. Wording/severity/localisation are explicitly out of scope — this
// package never formats a sentence, it only carries the structured facts
// a checker's localisation facility would need to build one.
//
// Grounded on the teacher's internal/typesystem/error.go idiom (small
// named error structs implementing error, no third-party error/logging
// library anywhere in the retrieval pack) generalized to a richer
// addendum shape.
package diagnostics

import "github.com/solace-lang/tycore/internal/types"

// Kind classifies a diagnostic addendum.
type Kind int

const (
	AssignabilityMismatch Kind = iota
	ParamSpecMismatch
	ScopeViolation
	RecursionBoundExhaustion
	CancellationNotice
)

func (k Kind) String() string {
	switch k {
	case AssignabilityMismatch:
		return "assignability-mismatch"
	case ParamSpecMismatch:
		return "param-spec-mismatch"
	case ScopeViolation:
		return "scope-violation"
	case RecursionBoundExhaustion:
		return "recursion-bound-exhaustion"
	case CancellationNotice:
		return "cancellation"
	default:
		return "?"
	}
}

// Addendum is one structured diagnostic fact. Text is a short
// implementer-facing tag (e.g. "narrow bound invariant violated"), never
// user-facing wording — message formatting belongs to the external
// localisation facility.
type Addendum struct {
	Kind           Kind
	Text           string
	SourceType     types.Type
	DestType       types.Type
	TypeVarName    string
	ConstraintName string
	Nested         []Addendum
}

// Sink collects addenda for the duration of one assignability / solve
// task. The caller owns it; the core never retains a reference beyond the
// call that was given one (so there is no caching or background
// processing obligation on Sink itself, matching the single-threaded,
// synchronous model of the rest of the core).
type Sink struct {
	addenda []Addendum
}

// NewSink constructs an empty Sink. A nil *Sink is valid everywhere a Sink
// is accepted — every method below is a no-op on nil, so callers that
// don't want diagnostics can pass nil instead of allocating one.
func NewSink() *Sink { return &Sink{} }

// AddMessage appends a leaf addendum carrying only a tag and no type
// payload.
func (s *Sink) AddMessage(kind Kind, text string) {
	if s == nil {
		return
	}
	s.addenda = append(s.addenda, Addendum{Kind: kind, Text: text})
}

// AddAddendum appends a fully-formed structured addendum, optionally
// nesting child addenda beneath it.
func (s *Sink) AddAddendum(a Addendum) {
	if s == nil {
		return
	}
	s.addenda = append(s.addenda, a)
}

// Addenda returns the collected addenda in emission order.
func (s *Sink) Addenda() []Addendum {
	if s == nil {
		return nil
	}
	return s.addenda
}

// Len reports how many addenda have been collected.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.addenda)
}
