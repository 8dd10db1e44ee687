package rdf

// EventKind tags the four event variants the parser emits to a Sink.
type EventKind uint8

const (
	// EventBase carries a new base IRI, from an @base/BASE directive.
	EventBase EventKind = iota
	// EventPrefix carries a new (name, expansion) prefix binding.
	EventPrefix
	// EventStatement carries one fully recognized statement plus
	// abbreviation-context flags.
	EventStatement
	// EventEnd closes the anonymous node most recently opened; it carries
	// no payload beyond the blank node it closes.
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventBase:
		return "base"
	case EventPrefix:
		return "prefix"
	case EventStatement:
		return "statement"
	case EventEnd:
		return "end"
	default:
		return "unknown-event"
	}
}

// StatementFlags records the inline abbreviation context a parser observed
// while recognizing a statement event, so a serializer or sink can recreate
// list/anonymous-node structure without re-deriving it from the triples
// alone.
type StatementFlags uint8

const (
	// FlagAnonSubject marks that Subject is the blank node introduced by an
	// immediately preceding "[" that has not yet been closed.
	FlagAnonSubject StatementFlags = 1 << iota
	// FlagAnonObject marks that Object is the blank node introduced by an
	// immediately preceding "[" that has not yet been closed.
	FlagAnonObject
	// FlagListSubject marks that Subject is the head of an RDF collection
	// opened by "(".
	FlagListSubject
	// FlagListObject marks that Object is the head of an RDF collection
	// opened by "(".
	FlagListObject
	// FlagEmptyBlank marks a blank node introduced by "[]" with no nested
	// predicate-object list, i.e. it will never receive a matching
	// EventEnd-preceding body of its own statements.
	FlagEmptyBlank
)

// Has reports whether all bits in mask are set in f.
func (f StatementFlags) Has(mask StatementFlags) bool { return f&mask == mask }

// Event is the typed union pushed from parser to sink. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	// EventBase
	Base Node

	// EventPrefix
	PrefixName string
	PrefixURI  Node

	// EventStatement
	Statement Statement
	Flags     StatementFlags

	// EventEnd
	Blank Node

	Origin Cursor
}

// NewBaseEvent returns an EventBase event.
func NewBaseEvent(base Node, origin Cursor) Event {
	return Event{Kind: EventBase, Base: base, Origin: origin}
}

// NewPrefixEvent returns an EventPrefix event.
func NewPrefixEvent(name string, uri Node, origin Cursor) Event {
	return Event{Kind: EventPrefix, PrefixName: name, PrefixURI: uri, Origin: origin}
}

// NewStatementEvent returns an EventStatement event.
func NewStatementEvent(stmt Statement, flags StatementFlags) Event {
	return Event{Kind: EventStatement, Statement: stmt, Flags: flags, Origin: stmt.Origin}
}

// NewEndEvent returns an EventEnd event closing the given blank node.
func NewEndEvent(blank Node, origin Cursor) Event {
	return Event{Kind: EventEnd, Blank: blank, Origin: origin}
}

// Sink is the capability every event consumer implements: a single
// on_event entry point. Inserter, filter, expander and normaliser (the
// sink combinators) and the serializer are all just implementations of
// this one capability, per the design's "sink is a capability set" note.
//
// A Sink returns a non-success Status-carrying error to abort the call
// that is pumping events through it; the pump (parse.Decoder.Run)
// propagates it unchanged.
type Sink interface {
	OnEvent(Event) error
}

// SinkFunc adapts a plain function to the Sink interface, for sinks that
// need no state of their own.
type SinkFunc func(Event) error

// OnEvent implements Sink.
func (f SinkFunc) OnEvent(e Event) error { return f(e) }

// Handlers lets a caller supply only the event kinds it cares about,
// bridging spec.md's legacy per-kind handler shape onto the unified Sink
// capability: a Handlers value IS a Sink (via OnEvent), and any unset
// handler is treated as a no-op returning StatusSuccess. This is the thin
// wrapper legacy Triple/Quad-style callers build on, rather than the
// module maintaining two separate parser entry points for one event
// stream.
type Handlers struct {
	OnBase      func(base Node, origin Cursor) error
	OnPrefix    func(name string, uri Node, origin Cursor) error
	OnStatement func(stmt Statement, flags StatementFlags) error
	OnEnd       func(blank Node, origin Cursor) error
}

// OnEvent implements Sink by dispatching to whichever handler is set.
func (h Handlers) OnEvent(e Event) error {
	switch e.Kind {
	case EventBase:
		if h.OnBase != nil {
			return h.OnBase(e.Base, e.Origin)
		}
	case EventPrefix:
		if h.OnPrefix != nil {
			return h.OnPrefix(e.PrefixName, e.PrefixURI, e.Origin)
		}
	case EventStatement:
		if h.OnStatement != nil {
			return h.OnStatement(e.Statement, e.Flags)
		}
	case EventEnd:
		if h.OnEnd != nil {
			return h.OnEnd(e.Blank, e.Origin)
		}
	}
	return nil
}
