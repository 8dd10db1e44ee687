// Package rdf provides the node model, interner, environment and the event
// types shared by the parse, write, model and sink subpackages. The small
// legacy Triple/Quad convenience API lives in the parse subpackage, layered
// on top of its unified parser.
//
// The main use case is reading and writing RDF graphs in the line-based
// and terse syntaxes of the RDF family (N-Triples, N-Quads, Turtle, TriG),
// and holding the result in an in-memory, multi-index model for pattern
// queries. It does not do SPARQL or reasoning.
package rdf

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind distinguishes the four node variants.
type Kind uint8

const (
	KindIRI Kind = iota
	KindPrefixed
	KindBlank
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindPrefixed:
		return "prefixed-name"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Exported construction errors.
var (
	ErrEmptyBlankID = errors.New("blank node cannot have an empty ID")
	ErrEmptyIRI     = errors.New("IRI cannot be an empty string")
	ErrIllegalIRI   = errors.New("IRI cannot contain space or any of the characters: <>{}|\\^`\"")
)

// Node is an immutable, structurally-comparable RDF term: an IRI, a
// prefixed name (only meaningful against an Environment), a blank node, or
// a literal. The zero Node is the "null" node, which compares less than
// every other node and is used as a wildcard in pattern queries.
//
// Node is deliberately a flat value type, not an interface over pointer
// variants or a struct holding a *Node for the literal datatype: a literal
// datatype is itself always just an IRI or a prefixed name (never another
// literal), so it is stored inline as a (kind, value) pair rather than
// through a pointer. That keeps Node fully comparable with ==, which the
// Interner relies on to use Node directly as a map key for canonicalizing
// structurally-equal nodes — a *Node field would compare by pointer
// identity there, defeating canonicalization for any two literals built
// from separate NewTypedLiteral calls.
type Node struct {
	kind  Kind
	value string // IRI string / "prefix:local" / blank id / literal lexical form

	hasDatatype bool
	dtKind      Kind
	dtValue     string

	lang       string // literal only
	hasNewline bool   // literal only: lexical form contains '\n' or '\r'
	hasQuote   bool   // literal only: lexical form contains '"'
}

// IsZero reports whether n is the null node.
func (n Node) IsZero() bool {
	return n.kind == KindIRI && n.value == "" && !n.hasDatatype && n.lang == ""
}

// Kind returns the node's type tag.
func (n Node) Kind() Kind { return n.kind }

// Value returns the node's immutable lexical string: the IRI, the
// "prefix:local" form, the blank id, or the literal's lexical form.
func (n Node) Value() string { return n.value }

// Datatype returns the literal's datatype node, or nil if untyped, plain,
// or language-tagged.
func (n Node) Datatype() *Node {
	if !n.hasDatatype {
		return nil
	}
	dt := Node{kind: n.dtKind, value: n.dtValue}
	return &dt
}

// Lang returns the literal's language tag, or "" if none.
func (n Node) Lang() string { return n.lang }

// HasNewline reports whether a literal's lexical form contains a newline
// or carriage return, used by the serializer to pick triple-quoted form.
func (n Node) HasNewline() bool { return n.hasNewline }

// HasQuote reports whether a literal's lexical form contains a double
// quote, used by the serializer to pick triple-quoted or escaped form.
func (n Node) HasQuote() bool { return n.hasQuote }

// NewIRI returns a new absolute-or-relative IRI node, or an error if the
// string is empty or contains a character forbidden in an IRI reference.
func NewIRI(iri string) (Node, error) {
	if iri == "" {
		return Node{}, ErrEmptyIRI
	}
	for _, r := range iri {
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\', ' ':
			return Node{}, ErrIllegalIRI
		}
	}
	return Node{kind: KindIRI, value: iri}, nil
}

// NewIRIUnsafe returns an IRI node without validating the input; used
// internally once the parser has already recognized a well-formed IRI.
func NewIRIUnsafe(iri string) Node { return Node{kind: KindIRI, value: iri} }

// NewPrefixed returns a prefixed-name node "prefix:local". It is only
// meaningful in the context of an Environment that defines "prefix".
func NewPrefixed(prefix, local string) Node {
	return Node{kind: KindPrefixed, value: prefix + ":" + local}
}

// PrefixedParts splits a prefixed-name node's value into prefix and local
// part. It panics if n is not a KindPrefixed node.
func (n Node) PrefixedParts() (prefix, local string) {
	if n.kind != KindPrefixed {
		panic("rdf: PrefixedParts called on non-prefixed node")
	}
	i := strings.IndexByte(n.value, ':')
	if i < 0 {
		return n.value, ""
	}
	return n.value[:i], n.value[i+1:]
}

// NewBlank returns a new blank node with the given id, or an error if id
// is empty.
func NewBlank(id string) (Node, error) {
	if strings.TrimSpace(id) == "" {
		return Node{}, ErrEmptyBlankID
	}
	return Node{kind: KindBlank, value: id}, nil
}

// NewBlankUnsafe returns a blank node without validating the id.
func NewBlankUnsafe(id string) Node { return Node{kind: KindBlank, value: id} }

// NewLiteral returns a plain literal with the given lexical form; its
// datatype is left unset (the parser/serializer treat an untyped literal
// as xsd:string, per RDF 1.1).
func NewLiteral(lex string) Node {
	return Node{kind: KindLiteral, value: lex, hasNewline: strings.ContainsAny(lex, "\n\r"), hasQuote: strings.ContainsRune(lex, '"')}
}

// NewTypedLiteral returns a literal with the given lexical form and
// datatype IRI/prefixed-name node. dt must be KindIRI or KindPrefixed.
func NewTypedLiteral(lex string, dt Node) (Node, error) {
	if dt.kind != KindIRI && dt.kind != KindPrefixed {
		return Node{}, errors.Errorf("rdf: literal datatype must be an IRI or prefixed name, got %s", dt.kind)
	}
	return Node{
		kind: KindLiteral, value: lex,
		hasDatatype: true, dtKind: dt.kind, dtValue: dt.value,
		hasNewline: strings.ContainsAny(lex, "\n\r"), hasQuote: strings.ContainsRune(lex, '"'),
	}, nil
}

// NewTypedLiteralMust is like NewTypedLiteral but panics on error; used
// internally once the datatype node's kind has already been checked.
func NewTypedLiteralMust(lex string, dt Node) Node {
	n, err := NewTypedLiteral(lex, dt)
	if err != nil {
		panic(err)
	}
	return n
}

// NewLangLiteral returns a language-tagged literal. Its effective datatype
// is rdf:langString; the tag is not validated against BCP 47.
func NewLangLiteral(lex, lang string) Node {
	return Node{kind: KindLiteral, value: lex, lang: lang, hasNewline: strings.ContainsAny(lex, "\n\r"), hasQuote: strings.ContainsRune(lex, '"')}
}

// Eq reports structural equality: same kind, value, datatype and
// language. It is exactly Go's == for Node, exposed as a method so callers
// outside the package don't need to know Node is comparable by value.
func (n Node) Eq(other Node) bool { return n == other }

// Compare orders nodes by kind, then value, then literal metadata; the
// null node sorts before every other node. It is the ordering used by the
// model's indices.
func Compare(a, b Node) int {
	if a.IsZero() && b.IsZero() {
		return 0
	}
	if a.IsZero() {
		return -1
	}
	if b.IsZero() {
		return 1
	}
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if a.value != b.value {
		if a.value < b.value {
			return -1
		}
		return 1
	}
	if a.kind == KindLiteral {
		if a.lang != b.lang {
			if a.lang < b.lang {
				return -1
			}
			return 1
		}
		switch {
		case !a.hasDatatype && !b.hasDatatype:
			return 0
		case !a.hasDatatype:
			return -1
		case !b.hasDatatype:
			return 1
		case a.dtKind != b.dtKind:
			if a.dtKind < b.dtKind {
				return -1
			}
			return 1
		case a.dtValue != b.dtValue:
			if a.dtValue < b.dtValue {
				return -1
			}
			return 1
		default:
			return 0
		}
	}
	return 0
}

// String renders the node in a form suitable for debugging and for
// insertion into a SPARQL-like query; it is not the serializer's output
// (use the write package for syntax-correct serialization).
func (n Node) String() string {
	switch n.kind {
	case KindIRI:
		return "<" + n.value + ">"
	case KindPrefixed:
		return n.value
	case KindBlank:
		return "_:" + n.value
	case KindLiteral:
		s := fmt.Sprintf("%q", n.value)
		if n.lang != "" {
			return s + "@" + n.lang
		}
		if n.hasDatatype {
			dt := Node{kind: n.dtKind, value: n.dtValue}
			return s + "^^" + dt.String()
		}
		return s
	default:
		return "<null>"
	}
}
