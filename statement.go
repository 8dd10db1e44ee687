package rdf

// Cursor is a document-origin record used only for diagnostics: the
// document name together with a 1-based line and column. The zero Cursor
// (empty Document, Line 0) means "no origin recorded."
type Cursor struct {
	Document string
	Line     int
	Column   int
}

// IsZero reports whether c carries no origin information.
func (c Cursor) IsZero() bool { return c.Document == "" && c.Line == 0 && c.Column == 0 }

func (c Cursor) String() string {
	if c.IsZero() {
		return "<no cursor>"
	}
	if c.Document == "" {
		return itoa(c.Line) + ":" + itoa(c.Column)
	}
	return c.Document + ":" + itoa(c.Line) + ":" + itoa(c.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Statement is an ordered quadruple (subject, predicate, object, graph?)
// plus an optional origin cursor. Subject and Graph must be KindIRI,
// KindPrefixed or KindBlank; Predicate must be KindIRI or KindPrefixed;
// Object may be any kind. A Statement does not own its nodes: in a Model,
// the nodes are owned by the Interner and the Statement only references
// them by value.
type Statement struct {
	Subject   Node
	Predicate Node
	Object    Node
	Graph     Node // zero Node means "no graph / default graph"
	Origin    Cursor
}

// HasGraph reports whether the statement carries an explicit graph field.
func (s Statement) HasGraph() bool { return !s.Graph.IsZero() }

// Matches reports whether s satisfies a pattern where each zero Node field
// acts as a wildcard. Graph is only compared when pattern.Graph is
// non-zero; a pattern with a zero Graph matches statements in any graph,
// including the default graph.
func (s Statement) Matches(pattern Statement) bool {
	if !pattern.Subject.IsZero() && !pattern.Subject.Eq(s.Subject) {
		return false
	}
	if !pattern.Predicate.IsZero() && !pattern.Predicate.Eq(s.Predicate) {
		return false
	}
	if !pattern.Object.IsZero() && !pattern.Object.Eq(s.Object) {
		return false
	}
	if !pattern.Graph.IsZero() && !pattern.Graph.Eq(s.Graph) {
		return false
	}
	return true
}

// Eq reports full structural equality of all four fields (not pattern
// matching; use Matches for wildcard comparison). Origin is excluded,
// since it is diagnostic metadata, not part of the statement's identity.
func (s Statement) Eq(other Statement) bool {
	return s.Subject.Eq(other.Subject) && s.Predicate.Eq(other.Predicate) &&
		s.Object.Eq(other.Object) && s.Graph.Eq(other.Graph)
}
