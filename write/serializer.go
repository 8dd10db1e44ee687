// Package write implements the event-to-text serializer (C8): a Sink that
// renders the statement/prefix/base/end event stream a parse.Decoder (or a
// model replay) produces back into one of the four textual syntaxes,
// modeled on the teacher's TripleEncoder abbreviation state in encoder.go
// generalized to the full separator-table design and to terse-quads graph
// blocks.
package write

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/internal/chars"
	"github.com/arlograph/rdf/parse"
	"github.com/arlograph/rdf/xsd"
)

func isTerse(s parse.Syntax) bool {
	return s == parse.SyntaxTerseTriples || s == parse.SyntaxTerseQuads
}

func allowsGraphs(s parse.Syntax) bool {
	return s == parse.SyntaxFlatQuads || s == parse.SyntaxTerseQuads
}

// Options configures a Serializer.
type Options struct {
	Syntax parse.Syntax
	// ASCII escapes every non-ASCII rune in IRIs and literals when true.
	ASCII bool
	// Base, if non-empty, is the IRI relative output is computed against.
	Base string
	// RelativeRoot bounds relative-URI output per rdf.Relativize: up
	// references never climb above it.
	RelativeRoot string
}

// frame is a saved context the Serializer resumes once a nested "]" closes
// or a collection's rdf:rest chain reaches rdf:nil, mirroring parse's
// ctxFrame on the writing side.
type frame struct {
	isList     bool
	subj, pred rdf.Node
	cursor     rdf.Node // current cons cell, only meaningful when isList
}

// Serializer renders an rdf.Event stream as text. It implements rdf.Sink,
// so it can be wired directly as a parse.Decoder's sink or fed statements
// replayed from a model.Model.
type Serializer struct {
	w    *errWriter
	opts Options
	env  *rdf.Environment

	curSubj, curPred, curGraph rdf.Node
	open                       bool // a subject statement is open, awaiting '.', ';' or ','
	graphOpen                 bool

	stack []frame
}

// NewSerializer returns a Serializer writing to w under opts. env supplies
// the prefix table and base used to shorten IRIs in terse output; a nil env
// starts empty (every IRI is written in full form).
func NewSerializer(w io.Writer, opts Options, env *rdf.Environment) *Serializer {
	if env == nil {
		env = rdf.NewEnvironment()
	}
	return &Serializer{
		w:    &errWriter{w: bufio.NewWriter(w)},
		opts: opts,
		env:  env,
	}
}

// OnEvent implements rdf.Sink.
func (s *Serializer) OnEvent(e rdf.Event) error {
	switch e.Kind {
	case rdf.EventBase:
		return s.onBase(e.Base)
	case rdf.EventPrefix:
		return s.onPrefix(e.PrefixName, e.PrefixURI)
	case rdf.EventStatement:
		return s.onStatement(e.Statement, e.Flags)
	case rdf.EventEnd:
		return s.onEnd(e.Blank)
	default:
		return nil
	}
}

// Close finishes the document: closes any open subject and graph block,
// and flushes the underlying buffered writer.
func (s *Serializer) Close() error {
	s.closeSubject()
	if s.graphOpen {
		s.w.write([]byte("}\n"))
		s.graphOpen = false
	}
	if s.w.err != nil {
		return s.w.err
	}
	return s.w.w.Flush()
}

func (s *Serializer) onBase(base rdf.Node) error {
	if err := s.env.SetBase(base); err != nil {
		return rdf.WrapStatus(rdf.StatusBadArgument, err)
	}
	if !isTerse(s.opts.Syntax) {
		return s.w.err
	}
	s.closeSubject()
	s.w.write([]byte(fmt.Sprintf("@base <%s> .\n", s.escapeIRIText(base.Value()))))
	return s.w.err
}

func (s *Serializer) onPrefix(name string, uri rdf.Node) error {
	if err := s.env.SetPrefix(name, uri); err != nil {
		return rdf.WrapStatus(rdf.StatusBadArgument, err)
	}
	if !isTerse(s.opts.Syntax) {
		return s.w.err
	}
	s.closeSubject()
	s.w.write([]byte(fmt.Sprintf("@prefix %s: <%s> .\n", name, s.escapeIRIText(uri.Value()))))
	return s.w.err
}

func (s *Serializer) onEnd(blank rdf.Node) error {
	s.w.write([]byte("]"))
	return s.popInto()
}

func (s *Serializer) popInto() error {
	if len(s.stack) == 0 {
		s.curSubj, s.curPred = rdf.Node{}, rdf.Node{}
		return s.w.err
	}
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.curSubj, s.curPred = f.subj, f.pred
	return s.w.err
}

// onStatement is the core abbreviation engine, grounded on the teacher's
// curSubj/curPred/OpenStatement tracking in encoder.go, extended with the
// anonymous-node and collection recognition spec.md §4.6 calls for.
func (s *Serializer) onStatement(stmt rdf.Statement, flags rdf.StatementFlags) error {
	if allowsGraphs(s.opts.Syntax) {
		if err := s.switchGraph(stmt.Graph); err != nil {
			return err
		}
	}

	if len(s.stack) > 0 && s.stack[len(s.stack)-1].isList && stmt.Subject.Eq(s.stack[len(s.stack)-1].cursor) {
		return s.continueList(stmt)
	}

	if !isTerse(s.opts.Syntax) {
		return s.writeFlat(stmt)
	}
	return s.writeTerse(stmt, flags)
}

// continueList handles one rdf:first/rdf:rest cell of a collection already
// in progress: rdf:first prints its object inline, rdf:rest either advances
// the cursor to the next cell or, when the object is rdf:nil, closes the
// list and pops back to the context that held it.
func (s *Serializer) continueList(stmt rdf.Statement) error {
	switch {
	case stmt.Predicate.Eq(xsd.RDFFirst):
		s.w.write([]byte(" "))
		s.w.write([]byte(s.formatObject(stmt.Object)))
	case stmt.Predicate.Eq(xsd.RDFRest):
		if stmt.Object.Eq(xsd.RDFNil) {
			s.w.write([]byte(")"))
			return s.popInto()
		}
		s.stack[len(s.stack)-1].cursor = stmt.Object
	}
	return s.w.err
}

// switchGraph opens/closes a TriG graph block (or, for flat-quads, simply
// tracks the graph field for the per-line writer) when the statement's
// graph differs from the one currently open.
func (s *Serializer) switchGraph(graph rdf.Node) error {
	if graph.Eq(s.curGraph) {
		return nil
	}
	if s.opts.Syntax == parse.SyntaxFlatQuads {
		s.curGraph = graph
		return nil
	}
	s.closeSubject()
	if s.graphOpen {
		s.w.write([]byte("}\n"))
		s.graphOpen = false
	}
	s.curGraph = graph
	if !graph.IsZero() {
		s.w.write([]byte(s.formatIRIOrBlank(graph)))
		s.w.write([]byte(" {\n"))
		s.graphOpen = true
	}
	return s.w.err
}

func (s *Serializer) writeFlat(stmt rdf.Statement) error {
	s.w.write([]byte(s.formatFlatNode(stmt.Subject)))
	s.w.write([]byte(" "))
	s.w.write([]byte(s.formatFlatNode(stmt.Predicate)))
	s.w.write([]byte(" "))
	s.w.write([]byte(s.formatFlatNode(stmt.Object)))
	if s.opts.Syntax == parse.SyntaxFlatQuads && !stmt.Graph.IsZero() {
		s.w.write([]byte(" "))
		s.w.write([]byte(s.formatFlatNode(stmt.Graph)))
	}
	s.w.write([]byte(" .\n"))
	return s.w.err
}

func (s *Serializer) writeTerse(stmt rdf.Statement, flags rdf.StatementFlags) error {
	sameSubj := s.open && stmt.Subject.Eq(s.curSubj)
	samePred := sameSubj && stmt.Predicate.Eq(s.curPred)

	switch {
	case samePred:
		s.w.write([]byte(" ,\n\t"))
	case sameSubj:
		s.w.write([]byte(" ;\n\t"))
		s.w.write([]byte(s.formatPredicate(stmt.Predicate)))
		s.w.write([]byte(" "))
	default:
		s.closeSubject()
		s.w.write([]byte(s.openSubject(stmt.Subject, flags)))
		s.w.write([]byte(" "))
		s.w.write([]byte(s.formatPredicate(stmt.Predicate)))
		s.w.write([]byte(" "))
	}
	s.curSubj, s.curPred = stmt.Subject, stmt.Predicate
	s.open = true

	if flags.Has(rdf.FlagListObject) {
		s.w.write([]byte("("))
		s.stack = append(s.stack, frame{isList: false, subj: s.curSubj, pred: s.curPred})
		s.stack = append(s.stack, frame{isList: true, cursor: stmt.Object})
		return s.w.err
	}
	s.w.write([]byte(s.formatObject(stmt.Object)))
	return s.w.err
}

// openSubject renders the subject term that begins a new statement group,
// honoring the flags the parser recorded: FlagAnonSubject/FlagListSubject
// print "[" / "(" in place of a node reference, pushing a frame that
// EventEnd (for "]") or continueList (for the rdf:nil close) will pop.
func (s *Serializer) openSubject(subj rdf.Node, flags rdf.StatementFlags) string {
	if flags.Has(rdf.FlagEmptyBlank) {
		return "[]"
	}
	if flags.Has(rdf.FlagAnonSubject) {
		s.stack = append(s.stack, frame{subj: rdf.Node{}, pred: rdf.Node{}})
		return "["
	}
	if flags.Has(rdf.FlagListSubject) {
		s.stack = append(s.stack, frame{subj: subj, pred: rdf.Node{}})
		s.stack = append(s.stack, frame{isList: true, cursor: subj})
		return "("
	}
	return s.formatIRIOrBlank(subj)
}

func (s *Serializer) closeSubject() {
	if !s.open {
		return
	}
	s.w.write([]byte(" .\n"))
	s.open = false
	s.curSubj, s.curPred = rdf.Node{}, rdf.Node{}
}

func (s *Serializer) formatPredicate(n rdf.Node) string {
	if isTerse(s.opts.Syntax) && n.Eq(xsd.RDFType) {
		return "a"
	}
	return s.formatIRIOrBlank(n)
}

func (s *Serializer) formatObject(n rdf.Node) string {
	if n.Kind() == rdf.KindLiteral {
		return s.formatLiteral(n)
	}
	if isTerse(s.opts.Syntax) && n.Eq(xsd.RDFNil) {
		return "()"
	}
	return s.formatIRIOrBlank(n)
}

func (s *Serializer) formatFlatNode(n rdf.Node) string {
	switch n.Kind() {
	case rdf.KindLiteral:
		return s.formatFlatLiteral(n)
	case rdf.KindBlank:
		return "_:" + n.Value()
	default:
		return "<" + s.escapeIRIText(n.Value()) + ">"
	}
}

func (s *Serializer) formatIRIOrBlank(n rdf.Node) string {
	if n.Kind() == rdf.KindBlank {
		return "_:" + n.Value()
	}
	return s.formatIRI(n)
}

// formatIRI renders an IRI node, preferring a prefixed form (or a
// base-relative form) in terse output; flat output always uses the
// fully-qualified <...> form, handled by formatFlatNode instead.
func (s *Serializer) formatIRI(n rdf.Node) string {
	if q, ok := s.env.Qualify(n); ok {
		prefix, local := q.PrefixedParts()
		if local == "" || chars.IsPnLocalFirst([]rune(local)[0]) {
			return prefix + ":" + chars.EscapeLocal(local)
		}
	}
	v := n.Value()
	if s.opts.Base != "" {
		v = rdf.Relativize(v, s.opts.Base, s.opts.RelativeRoot)
	}
	return "<" + s.escapeIRIText(v) + ">"
}

func (s *Serializer) escapeIRIText(v string) string {
	if !s.opts.ASCII {
		return v
	}
	return escapeNonASCII(v)
}

func (s *Serializer) formatFlatLiteral(n rdf.Node) string {
	body := "\"" + s.escapeLiteralText(chars.EscapeLiteral(n.Value())) + "\""
	if n.Lang() != "" {
		return body + "@" + n.Lang()
	}
	if dt := n.Datatype(); dt != nil {
		return body + "^^" + s.formatFlatNode(*dt)
	}
	return body
}

func (s *Serializer) formatLiteral(n rdf.Node) string {
	if dt := n.Datatype(); dt != nil && n.Lang() == "" {
		if bare, ok := bareNumericForm(n.Value(), *dt); ok {
			return bare
		}
	}
	var body string
	if n.HasNewline() || n.HasQuote() {
		body = "\"\"\"" + s.escapeLiteralText(escapeTripleQuoted(n.Value())) + "\"\"\""
	} else {
		body = "\"" + s.escapeLiteralText(chars.EscapeLiteral(n.Value())) + "\""
	}
	return s.literalSuffix(n, body)
}

func (s *Serializer) literalSuffix(n rdf.Node, body string) string {
	if n.Lang() != "" {
		return body + "@" + n.Lang()
	}
	dt := n.Datatype()
	if dt == nil {
		return body
	}
	return body + "^^" + s.formatIRIOrBlank(*dt)
}

func (s *Serializer) escapeLiteralText(v string) string {
	if !s.opts.ASCII {
		return v
	}
	return escapeNonASCII(v)
}

// bareNumericForm reports the unquoted literal text for xsd:boolean,
// xsd:integer or xsd:decimal, per spec.md's abbreviation policy, or false
// if the lexical form isn't already in the syntax's bare numeric grammar.
func bareNumericForm(lex string, dt rdf.Node) (string, bool) {
	switch dt.Value() {
	case xsd.Boolean.Value():
		if lex == "true" || lex == "false" {
			return lex, true
		}
	case xsd.Integer.Value():
		if validInteger(lex) {
			return lex, true
		}
	case xsd.Decimal.Value():
		if validDecimal(lex) {
			return lex, true
		}
	}
	return "", false
}

func validInteger(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if !chars.IsDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

func validDecimal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	dot := -1
	digitsBefore, digitsAfter := 0, 0
	for ; i < len(s); i++ {
		switch {
		case s[i] == '.' && dot < 0:
			dot = i
		case chars.IsDigit(rune(s[i])):
			if dot < 0 {
				digitsBefore++
			} else {
				digitsAfter++
			}
		default:
			return false
		}
	}
	return dot >= 0 && digitsAfter > 0 && (digitsBefore > 0 || digitsAfter > 0)
}

func escapeTripleQuoted(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

func escapeNonASCII(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			fmt.Fprintf(&b, `\U%08X`, r)
		} else {
			fmt.Fprintf(&b, `\u%04X`, r)
		}
	}
	return b.String()
}

// errWriter accumulates the first write error and suppresses subsequent
// writes, the same short-circuiting shape as the teacher's errWriter in
// encoder.go.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (ew *errWriter) write(buf []byte) {
	if ew.err != nil {
		return
	}
	if _, err := ew.w.Write(buf); err != nil {
		ew.err = rdf.WrapStatus(rdf.StatusBadWrite, err)
	}
}
