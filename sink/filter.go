package sink

import "github.com/arlograph/rdf"

// Filter forwards only statement events matching a fixed pattern (a zero
// Node field acts as a wildcard, per rdf.Statement.Matches); every other
// event kind is forwarded verbatim, since a base/prefix/end event carries
// no node pattern to filter against.
type Filter struct {
	Next    rdf.Sink
	Pattern rdf.Statement
}

// NewFilter returns a Filter passing only statements matching pattern
// through to next.
func NewFilter(next rdf.Sink, pattern rdf.Statement) *Filter {
	return &Filter{Next: next, Pattern: pattern}
}

// OnEvent implements rdf.Sink.
func (f *Filter) OnEvent(e rdf.Event) error {
	if e.Kind == rdf.EventStatement && !e.Statement.Matches(f.Pattern) {
		return nil
	}
	return f.Next.OnEvent(e)
}
