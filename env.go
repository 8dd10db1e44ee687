package rdf

// prefixEntry is one (name, expansion) pair in an Environment's ordered
// prefix table. Entries are kept in insertion order so that qualify's
// longest-expansion-prefix-match is deterministic even when several
// expansions are prefixes of each other.
type prefixEntry struct {
	name string
	uri  string
}

// Environment holds an optional base reference and an ordered sequence of
// prefix-name -> expansion-IRI entries, used to resolve prefixed names and
// relative IRIs during parsing and to shorten IRIs during serialization.
type Environment struct {
	base    Node // zero Node means "no base set"
	entries []prefixEntry
	byName  map[string]int // name -> index into entries, for O(1) lookup/replace
}

// NewEnvironment returns an empty Environment with no base and no
// prefixes.
func NewEnvironment() *Environment {
	return &Environment{byName: make(map[string]int)}
}

// Base returns the current base reference, or the zero Node if unset.
func (e *Environment) Base() Node { return e.base }

// SetBase sets the base reference. node must be the zero Node (clearing
// the base) or a KindIRI node; if it is relative, it is resolved against
// the current base first. Returns StatusBadArgument if node is not an IRI.
func (e *Environment) SetBase(node Node) error {
	if node.IsZero() {
		e.base = Node{}
		return nil
	}
	if node.Kind() != KindIRI {
		return NewStatusError(StatusBadArgument, "rdf: base must be an IRI, got %s", node.Kind())
	}
	if e.base.IsZero() {
		e.base = node
		return nil
	}
	resolved, err := ResolveReference(node.Value(), e.base.Value())
	if err != nil {
		return WrapStatus(StatusBadArgument, err)
	}
	e.base = NewIRIUnsafe(resolved)
	return nil
}

// SetPrefix associates name with the expansion IRI uri. uri may be
// relative, in which case it is resolved against the current base at
// set-time (not at use-time); this requires a base to be set first.
// A later call with the same name replaces the earlier entry in place,
// preserving its original ordering position.
func (e *Environment) SetPrefix(name string, uri Node) error {
	if uri.Kind() != KindIRI {
		return NewStatusError(StatusBadArgument, "rdf: prefix expansion must be an IRI, got %s", uri.Kind())
	}
	expansion := uri.Value()
	if ParseURIView(expansion).Scheme == "" {
		if e.base.IsZero() {
			return NewStatusError(StatusBadArgument, "rdf: relative prefix IRI %q requires a base", expansion)
		}
		resolved, err := ResolveReference(expansion, e.base.Value())
		if err != nil {
			return WrapStatus(StatusBadArgument, err)
		}
		expansion = resolved
	}
	if i, ok := e.byName[name]; ok {
		e.entries[i].uri = expansion
		return nil
	}
	e.byName[name] = len(e.entries)
	e.entries = append(e.entries, prefixEntry{name: name, uri: expansion})
	return nil
}

// Prefixes returns the current prefix table as name -> expansion, in no
// particular order; callers needing the qualify search order should use
// Qualify directly.
func (e *Environment) Prefixes() map[string]string {
	m := make(map[string]string, len(e.entries))
	for _, pe := range e.entries {
		m[pe.name] = pe.uri
	}
	return m
}

// Qualify searches the prefix table for the entry whose expansion is the
// longest prefix of uri's value, and returns a new prefixed-name node, or
// the zero Node and false if no entry qualifies.
func (e *Environment) Qualify(uri Node) (Node, bool) {
	if uri.Kind() != KindIRI {
		return Node{}, false
	}
	s := uri.Value()
	bestLen := -1
	var best prefixEntry
	for _, pe := range e.entries {
		if len(pe.uri) > bestLen && len(pe.uri) < len(s) && s[:len(pe.uri)] == pe.uri {
			bestLen = len(pe.uri)
			best = pe
		}
	}
	if bestLen < 0 {
		return Node{}, false
	}
	return NewPrefixed(best.name, s[bestLen:]), true
}

// Expand resolves node against the environment: a prefixed name is
// expanded to its absolute IRI; a relative IRI is resolved against the
// base; a literal whose datatype is a prefixed name has its datatype
// expanded. Other node kinds are returned unchanged. Returns false if
// expansion fails (unknown prefix, or a relative IRI with no base set).
func (e *Environment) Expand(node Node) (Node, bool) {
	switch node.Kind() {
	case KindPrefixed:
		prefix, local := node.PrefixedParts()
		i, ok := e.byName[prefix]
		if !ok {
			return Node{}, false
		}
		return NewIRIUnsafe(e.entries[i].uri + local), true
	case KindIRI:
		if ParseURIView(node.Value()).Scheme != "" {
			return node, true
		}
		if e.base.IsZero() {
			return Node{}, false
		}
		resolved, err := ResolveReference(node.Value(), e.base.Value())
		if err != nil {
			return Node{}, false
		}
		return NewIRIUnsafe(resolved), true
	case KindLiteral:
		dt := node.Datatype()
		if dt == nil {
			return node, true
		}
		expandedDT, ok := e.Expand(*dt)
		if !ok {
			return Node{}, false
		}
		if expandedDT.Eq(*dt) {
			return node, true
		}
		if node.Lang() != "" {
			return NewLangLiteral(node.Value(), node.Lang()), true
		}
		return NewTypedLiteralMust(node.Value(), expandedDT), true
	default:
		return node, true
	}
}
