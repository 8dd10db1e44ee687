package parse

import "github.com/arlograph/rdf"

// defaultStackDepth is the nesting bound a Decoder uses when its Options
// leaves StackDepth at zero, matching the design's "bounded working
// stack... on overflow the parser fails with overflow (never unwinds the
// caller's stack)."
const defaultStackDepth = 256

// ctxKind distinguishes why a context frame was pushed.
type ctxKind uint8

const (
	ctxTop ctxKind = iota
	ctxPropertyList
	ctxCollection
	ctxGraph
)

// ctxFrame is one saved parse context: the subject/predicate/graph a
// nested structure's parent statement had in progress, plus which kind of
// bracketed structure was opened. The parent's object is never saved: a
// newly opened property list or collection always starts without one.
type ctxFrame struct {
	kind       ctxKind
	subj, pred rdf.Node
	graph      rdf.Node
	subjFlags  rdf.StatementFlags
	subjOrigin rdf.Cursor
	// asObject marks that the structure just closed was this frame's
	// object (so popping resumes at parseEnd), as opposed to its subject
	// (so popping resumes at parsePredicate).
	asObject bool
}

// ctxStack is the Decoder's bounded nesting stack: its full capacity is
// allocated once at construction and never grown, so push either
// succeeds within that bound or reports StatusOverflow — it never
// silently reallocates past the configured depth.
type ctxStack struct {
	frames []ctxFrame
	depth  int
}

// newCtxStack allocates a stack with capacity max, or defaultStackDepth if
// max <= 0.
func newCtxStack(max int) *ctxStack {
	if max <= 0 {
		max = defaultStackDepth
	}
	return &ctxStack{frames: make([]ctxFrame, max)}
}

// push adds f to the stack, or returns StatusOverflow if the stack is at
// capacity.
func (s *ctxStack) push(f ctxFrame) error {
	if s.depth >= len(s.frames) {
		return rdf.NewStatusError(rdf.StatusOverflow, "parse: nesting depth exceeds %d", len(s.frames))
	}
	s.frames[s.depth] = f
	s.depth++
	return nil
}

// pop removes and returns the top frame. It panics if the stack is empty;
// callers must check empty() first, since an empty pop is always an
// internal parser bug, not a reportable user error.
func (s *ctxStack) pop() ctxFrame {
	s.depth--
	return s.frames[s.depth]
}

// top returns the current top frame without removing it.
func (s *ctxStack) top() ctxFrame { return s.frames[s.depth-1] }

func (s *ctxStack) empty() bool { return s.depth == 0 }

func (s *ctxStack) depthNow() int { return s.depth }
