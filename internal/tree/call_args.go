package tree

// ActiveArgumentIndex maps a source offset within a Call expression to a
// zero-based argument index — the call-and-active-argument query a
// signature-help feature needs. isActiveOrFake is true when offset falls
// inside a real argument,
// or when it falls past every argument's end — in the latter case index
// is a synthetic "fake" slot at len(Args), matching a cursor sitting past
// the last written argument (e.g. right after a trailing comma).
func ActiveArgumentIndex(t *Tree, callID int, offset int) (index int, isActiveOrFake bool) {
	call := t.Node(callID)
	if len(call.Args) == 0 {
		return 0, true
	}
	for i, argID := range call.Args {
		arg := t.Node(argID)
		if offset >= arg.StartOffset && offset <= arg.EndOffset {
			return i, true
		}
	}
	last := t.Node(call.Args[len(call.Args)-1])
	if offset > last.EndOffset {
		return len(call.Args), true
	}
	return -1, false
}
