package parse

import (
	"fmt"

	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/internal/chars"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenError

	tokenIRIAbs
	tokenIRIRel
	tokenBNode
	tokenAnonBNode
	tokenLiteral
	tokenLiteral3
	tokenLiteralInteger
	tokenLiteralDouble
	tokenLiteralDecimal
	tokenLangMarker
	tokenLang
	tokenDataTypeMarker
	tokenDot
	tokenSemicolon
	tokenComma
	tokenRDFType
	tokenPrefix
	tokenPrefixLabel
	tokenPrefixedName
	tokenBase
	tokenSparqlPrefix
	tokenSparqlBase
	tokenPropertyListStart
	tokenPropertyListEnd
	tokenCollectionStart
	tokenCollectionEnd
	tokenGraphStart
	tokenGraphEnd
	tokenGraphKeyword
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenError:
		return "error"
	case tokenIRIAbs:
		return "absolute IRI"
	case tokenIRIRel:
		return "relative IRI"
	case tokenBNode:
		return "blank node"
	case tokenAnonBNode:
		return "anonymous blank node"
	case tokenLiteral, tokenLiteral3:
		return "literal"
	case tokenLiteralInteger:
		return "integer literal"
	case tokenLiteralDouble:
		return "double literal"
	case tokenLiteralDecimal:
		return "decimal literal"
	case tokenLangMarker:
		return "'@'"
	case tokenLang:
		return "language tag"
	case tokenDataTypeMarker:
		return "'^^'"
	case tokenDot:
		return "'.'"
	case tokenSemicolon:
		return "';'"
	case tokenComma:
		return "','"
	case tokenRDFType:
		return "'a'"
	case tokenPrefix:
		return "'@prefix'"
	case tokenPrefixLabel:
		return "prefix label"
	case tokenPrefixedName:
		return "prefixed name"
	case tokenBase:
		return "'@base'"
	case tokenSparqlPrefix:
		return "'PREFIX'"
	case tokenSparqlBase:
		return "'BASE'"
	case tokenPropertyListStart:
		return "'['"
	case tokenPropertyListEnd:
		return "']'"
	case tokenCollectionStart:
		return "'('"
	case tokenCollectionEnd:
		return "')'"
	case tokenGraphStart:
		return "'{'"
	case tokenGraphEnd:
		return "'}'"
	case tokenGraphKeyword:
		return "'GRAPH'"
	default:
		return "unknown token"
	}
}

type token struct {
	typ    tokenType
	text   string
	origin rdf.Cursor
	unEsc  bool // text still needs escape processing
}

const eof = -1

// lexer turns a Source into a token stream. Unlike the teacher's
// goroutine-and-channel lexer, it is pulled synchronously by the decoder:
// the design's concurrency model (§5) forbids a parse call from spawning
// threads, so the state-machine shape is kept but driven by direct calls
// instead of `go l.run()` feeding a channel.
type lexer struct {
	src      *Source
	document string

	buf   []rune // pending runes of the token being built
	start rdf.Cursor
}

func newLexer(src *Source, document string) *lexer {
	return &lexer{src: src, document: document}
}

func (l *lexer) cursor() rdf.Cursor {
	return rdf.Cursor{Document: l.document, Line: l.src.Line(), Column: l.src.Column()}
}

func (l *lexer) next() rune {
	r, size := l.src.Advance()
	if size == 0 {
		return eof
	}
	l.buf = append(l.buf, r)
	return r
}

func (l *lexer) peek() rune {
	r, size := l.src.Peek()
	if size == 0 {
		return eof
	}
	return r
}

func (l *lexer) ignore() { l.buf = l.buf[:0] }

func (l *lexer) errorf(format string, args ...interface{}) token {
	return token{typ: tokenError, text: fmt.Sprintf(format, args...), origin: l.cursor()}
}

func (l *lexer) emit(typ tokenType, unEsc bool) token {
	t := token{typ: typ, text: string(l.buf), origin: l.start, unEsc: unEsc}
	l.buf = l.buf[:0]
	return t
}

// skipWhitespaceAndComments advances past spaces, tabs, newlines and
// '#'-to-end-of-line comments.
func (l *lexer) skipWhitespaceAndComments() {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.next()
			l.ignore()
		case r == '#':
			for r := l.next(); r != '\n' && r != eof; r = l.next() {
			}
			l.ignore()
		default:
			return
		}
	}
}

// nextToken scans and returns the next token, modeled on the teacher's
// lexAny top-level dispatch in parse/lex.go, generalized with graph-block
// tokens ('{', '}', GRAPH) for terse-quads.
func (l *lexer) nextToken() token {
	l.skipWhitespaceAndComments()
	l.start = l.cursor()
	r := l.next()

	switch r {
	case eof:
		return token{typ: tokenEOF, origin: l.start}
	case '@':
		return l.lexAtDirective()
	case '_':
		if l.peek() != ':' {
			return l.errorf("illegal character after '_', expected ':'")
		}
		l.next()
		l.ignore()
		return l.lexBNode()
	case '<':
		l.ignore()
		return l.lexIRI()
	case 'a':
		p := l.peek()
		for _, ok := range chars.OKAfterRDFType {
			if p == ok {
				return l.emit(tokenRDFType, false)
			}
		}
		if p == eof {
			return l.emit(tokenRDFType, false)
		}
		return l.lexPrefixedName(true)
	case ':':
		// ':' is already in l.buf from the l.next() above, giving the
		// default-namespace reference its leading colon for free.
		return l.lexPrefixedName(false)
	case '\'', '"':
		return l.lexLiteral(r)
	case '+', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.lexNumber(r)
	case '[':
		l.skipWhitespaceAndComments()
		if l.peek() == ']' {
			l.next()
			l.ignore()
			return token{typ: tokenAnonBNode, origin: l.start}
		}
		l.ignore()
		return token{typ: tokenPropertyListStart, origin: l.start}
	case ']':
		l.ignore()
		return token{typ: tokenPropertyListEnd, origin: l.start}
	case '(':
		l.ignore()
		return token{typ: tokenCollectionStart, origin: l.start}
	case ')':
		l.ignore()
		return token{typ: tokenCollectionEnd, origin: l.start}
	case '{':
		l.ignore()
		return token{typ: tokenGraphStart, origin: l.start}
	case '}':
		l.ignore()
		return token{typ: tokenGraphEnd, origin: l.start}
	case '.':
		if chars.IsDigit(l.peek()) {
			return l.lexNumber('.')
		}
		l.ignore()
		return token{typ: tokenDot, origin: l.start}
	case '^':
		if l.peek() != '^' {
			return l.errorf("illegal character %q, expected '^^'", r)
		}
		l.next()
		l.ignore()
		return token{typ: tokenDataTypeMarker, origin: l.start}
	case ';':
		l.ignore()
		return token{typ: tokenSemicolon, origin: l.start}
	case ',':
		l.ignore()
		return token{typ: tokenComma, origin: l.start}
	case 'P':
		if l.acceptKeyword("REFIX") {
			l.ignore()
			return token{typ: tokenSparqlPrefix, origin: l.start}
		}
		return l.lexPrefixedName(true)
	case 'B':
		if l.acceptKeyword("ASE") {
			l.ignore()
			return token{typ: tokenSparqlBase, origin: l.start}
		}
		return l.lexPrefixedName(true)
	case 'G':
		if l.acceptKeyword("RAPH") {
			l.ignore()
			return token{typ: tokenGraphKeyword, origin: l.start}
		}
		return l.lexPrefixedName(true)
	default:
		if chars.IsPnCharsBase(r) {
			return l.lexPrefixedName(true)
		}
		return l.errorf("illegal character %q", r)
	}
}

// acceptKeyword reports whether rest immediately follows the first
// letter already read into l.buf, consuming it only on a full match.
// Source has no backup primitive (it is a pull-only forward cursor), so
// the whole lookahead has to be peeked with PeekAt before any of it is
// consumed with next; a partial consume-then-rewind, as the teacher's
// index-addressable buffer could do, is not available here.
func (l *lexer) acceptKeyword(rest string) bool {
	runes := []rune(rest)
	for i, want := range runes {
		r, sz := l.src.PeekAt(i)
		if sz == 0 || r != want {
			return false
		}
	}
	// keyword must not be immediately followed by a PN_CHARS rune (else
	// it's actually a longer prefixed name/local token).
	if tail, sz := l.src.PeekAt(len(runes)); sz > 0 && (chars.IsPnChars(tail) || tail == ':') {
		return false
	}
	for range runes {
		l.next()
	}
	return true
}

func (l *lexer) lexAtDirective() token {
	r := l.next()
	switch r {
	case 'p':
		if !l.acceptExact("refix") {
			return l.errorf("illegal directive '@p...'")
		}
		l.ignore()
		return token{typ: tokenPrefix, origin: l.start}
	case 'b':
		if !l.acceptExact("ase") {
			return l.errorf("illegal directive '@b...'")
		}
		l.ignore()
		return token{typ: tokenBase, origin: l.start}
	default:
		return l.errorf("illegal character %q after '@'", r)
	}
}

func (l *lexer) acceptExact(s string) bool {
	for _, want := range s {
		if l.next() != want {
			return false
		}
	}
	return true
}

func (l *lexer) lexBNode() token {
	r := l.next()
	if r == eof {
		return l.errorf("bad blank node: unexpected end of input")
	}
	if !(chars.IsPnCharsU(r) || chars.IsDigit(r)) {
		return l.errorf("bad blank node: invalid character %q", r)
	}
	for {
		r = l.peek()
		if r == '.' {
			// a '.' belongs to the label only if another PN_CHARS rune
			// follows it; otherwise it is the statement-ending dot and
			// must be left unconsumed for the next nextToken call to
			// report as its own tokenDot (two-rune lookahead for dot).
			if next, sz := l.src.PeekAt(1); sz > 0 && chars.IsPnChars(next) {
				l.next()
				continue
			}
			break
		}
		if !chars.IsPnChars(r) {
			break
		}
		l.next()
	}
	return l.emit(tokenBNode, false)
}

// lexPrefixedName scans a full "prefix:local" token in one pass and emits
// it as a single tokenPrefixedName, rather than the teacher's two-token
// (tokenPrefixLabel then a separate IRI-suffix token) shape: since this
// lexer is pulled one token at a time rather than run as a background
// goroutine feeding a channel, splitting the scan across two nextToken
// calls would force a generic-dispatch call in between that cannot tell a
// continuation of the same prefixed name apart from the start of a new
// token. prefixRead indicates the first PN_CHARS_BASE rune of the prefix
// is already sitting in l.buf (true), or l.buf holds just the leading ':'
// of a default-namespace reference, already consumed (false).
func (l *lexer) lexPrefixedName(prefixRead bool) token {
	if prefixRead {
		for {
			r := l.peek()
			if r == ':' || !(chars.IsPnChars(r) || r == '.') {
				break
			}
			l.next()
		}
		if l.peek() != ':' {
			return l.errorf("illegal token: %q is not followed by ':'", string(l.buf))
		}
		l.next() // consume ':', appended to l.buf automatically
	}
	// local part, optional
	r := l.peek()
	if r == eof || !chars.IsPnLocalFirst(r) {
		return l.emit(tokenPrefixedName, true)
	}
	l.next()
	for {
		r = l.peek()
		if r == '\\' {
			l.next()
			esc := l.peek()
			ok := false
			for _, e := range chars.PNLocalEsc {
				if e == esc {
					ok = true
					break
				}
			}
			if !ok {
				return l.errorf("illegal escape %q in local name", esc)
			}
			l.next()
			continue
		}
		if r == '.' {
			// a '.' is part of the local name only if more local-name
			// content follows; otherwise leave it unconsumed for the
			// next nextToken call to report as its own tokenDot.
			if next, sz := l.src.PeekAt(1); sz > 0 && (chars.IsPnLocalMid(next) || next == '\\') {
				l.next()
				continue
			}
			break
		}
		if chars.IsPnLocalMid(r) {
			l.next()
			continue
		}
		break
	}
	return l.emit(tokenPrefixedName, true)
}

// consumeLangMarker reports whether the immediately following rune is
// '@' (a language tag marker after a literal), consuming it if so. It
// must only be called right after a literal token, never through the
// generic nextToken dispatch, which treats a top-level '@' as the start
// of a directive.
func (l *lexer) consumeLangMarker() bool {
	if l.peek() != '@' {
		return false
	}
	l.next()
	l.ignore()
	return true
}

// consumeDatatypeMarker reports whether the following two runes are
// "^^", consuming them if so.
func (l *lexer) consumeDatatypeMarker() bool {
	if l.peek() != '^' {
		return false
	}
	if r, sz := l.src.PeekAt(1); sz == 0 || r != '^' {
		return false
	}
	l.next()
	l.next()
	l.ignore()
	return true
}

// lexLangTag scans a BCP-47-shaped language tag; call only right after
// consumeLangMarker returns true.
func (l *lexer) lexLangTag() token {
	n := 0
	for chars.IsAlpha(l.peek()) {
		l.next()
		n++
	}
	if n == 0 {
		return l.errorf("bad literal: invalid language tag")
	}
	for l.peek() == '-' {
		l.next()
		m := 0
		for chars.IsAlphaOrDigit(l.peek()) {
			l.next()
			m++
		}
		if m == 0 {
			return l.errorf("bad literal: invalid language tag")
		}
	}
	return l.emit(tokenLang, false)
}

func (l *lexer) lexIRI() token {
	hasScheme := false
	maybeAbsolute := true
	for {
		r := l.next()
		if r == eof {
			return l.errorf("bad IRI: no closing '>'")
		}
		for _, bad := range chars.BadIRIRunes {
			if r == bad {
				return l.errorf("bad IRI: disallowed character %q", r)
			}
		}
		if r == '\\' {
			esc := l.peek()
			switch esc {
			case 'u':
				l.next()
				if !l.acceptHex(4) {
					return l.errorf("bad IRI: insufficient hex digits in unicode escape")
				}
			case 'U':
				l.next()
				if !l.acceptHex(8) {
					return l.errorf("bad IRI: insufficient hex digits in unicode escape")
				}
			case eof:
				return l.errorf("bad IRI: no closing '>'")
			default:
				return l.errorf("bad IRI: disallowed escape character %q", esc)
			}
		}
		if maybeAbsolute && r == ':' {
			if hasValidScheme(l.buf[:len(l.buf)-1]) {
				hasScheme = true
			}
			maybeAbsolute = false
		}
		if r == '>' {
			l.buf = l.buf[:len(l.buf)-1] // drop trailing '>'
			break
		}
	}
	if hasScheme {
		return l.emit(tokenIRIAbs, true)
	}
	return l.emit(tokenIRIRel, true)
}

func hasValidScheme(runes []rune) bool {
	if len(runes) == 0 || !chars.IsAlpha(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !(chars.IsAlphaOrDigit(r) || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

func (l *lexer) acceptHex(n int) bool {
	for i := 0; i < n; i++ {
		r := l.peek()
		ok := false
		for _, h := range chars.Hex {
			if rune(h) == r {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
		l.next()
	}
	return true
}

func (l *lexer) lexLiteral(quote rune) token {
	l.ignore() // drop opening quote
	quoteCount := 1
	if l.peek() == quote {
		l.next()
		quoteCount++
		if l.peek() == quote {
			l.next()
			quoteCount++
			l.ignore()
		}
	}
	if quoteCount == 2 {
		// empty string
		l.ignore()
		return l.finishLiteral(0, false)
	}
	if quoteCount != 3 {
		l.ignore()
	}

	unesc := false
	for {
		r := l.next()
		switch r {
		case eof:
			return l.errorf("bad literal: no closing quote")
		case '\n', '\r':
			if quoteCount != 3 {
				return l.errorf("bad literal: newline not allowed in single-quoted string")
			}
		case '\\':
			esc := l.next()
			switch esc {
			case 't', 'b', 'n', 'r', 'f', '"', '\'', '\\':
				unesc = true
			case 'u':
				if !l.acceptHex(4) {
					return l.errorf("bad literal: insufficient hex digits in unicode escape")
				}
				unesc = true
			case 'U':
				if !l.acceptHex(8) {
					return l.errorf("bad literal: insufficient hex digits in unicode escape")
				}
				unesc = true
			case eof:
				return l.errorf("bad literal: no closing quote")
			default:
				return l.errorf("bad literal: disallowed escape character %q", esc)
			}
		case quote:
			if quoteCount == 3 {
				if l.peek() != quote {
					continue
				}
				l.next()
				if l.peek() != quote {
					continue
				}
				l.next()
				l.buf = l.buf[:len(l.buf)-3]
			} else {
				l.buf = l.buf[:len(l.buf)-1]
			}
			return l.finishLiteral(quoteCount, unesc)
		}
	}
}

func (l *lexer) finishLiteral(quoteCount int, unesc bool) token {
	typ := tokenLiteral
	if quoteCount == 3 {
		typ = tokenLiteral3
	}
	return l.emit(typ, unesc)
}

// nextIsDigit reports whether the rune n positions past the current
// (unconsumed) peek is a digit, without consuming anything.
func (l *lexer) nextIsDigit(n int) bool {
	r, sz := l.src.PeekAt(n)
	return sz > 0 && chars.IsDigit(r)
}

func (l *lexer) lexNumber(first rune) token {
	gotDot := first == '.'
	gotE := false
	if first == '+' || first == '-' {
		if r := l.peek(); r == '.' && l.nextIsDigit(1) {
			l.next()
			gotDot = true
		}
	}
loop:
	for {
		r := l.peek()
		switch {
		case chars.IsDigit(r):
			l.next()
		case r == '.' && !gotDot && l.nextIsDigit(1):
			// only consumed when a digit follows; a lone trailing '.'
			// ends the statement instead (two-rune lookahead for dot).
			gotDot = true
			l.next()
		case (r == 'e' || r == 'E') && !gotE:
			gotE = true
			l.next()
			if p := l.peek(); p == '+' || p == '-' {
				l.next()
			}
		default:
			break loop
		}
	}
	switch {
	case gotE:
		return l.emit(tokenLiteralDouble, false)
	case gotDot:
		return l.emit(tokenLiteralDecimal, false)
	default:
		return l.emit(tokenLiteralInteger, false)
	}
}
