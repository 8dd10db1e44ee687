package sink

import (
	"strconv"
	"strings"

	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/xsd"
)

// maxNormalisedFrac bounds the fractional digits Normaliser keeps for
// xsd:decimal: a value is written with the fewest fractional digits that
// round-trip it as a float64, but never more than this; a normaliser's job
// is canonical form, not arbitrary-precision arithmetic.
const maxNormalisedFrac = 18

// Normaliser rewrites literal lexical forms into their canonical form for
// xsd:boolean, xsd:float, xsd:double, xsd:decimal and the integer family
// (xsd:integer and its restricted subtypes), leaving every other node and
// event untouched. A literal whose existing lexical form does not parse
// under its declared datatype is forwarded unchanged rather than rejected:
// normalisation is a best-effort pass-through, not a validator.
type Normaliser struct {
	Next rdf.Sink
}

// NewNormaliser returns a Normaliser forwarding to next.
func NewNormaliser(next rdf.Sink) *Normaliser {
	return &Normaliser{Next: next}
}

// OnEvent implements rdf.Sink.
func (n *Normaliser) OnEvent(e rdf.Event) error {
	if e.Kind != rdf.EventStatement {
		return n.Next.OnEvent(e)
	}
	stmt := e.Statement
	stmt.Subject = normaliseNode(stmt.Subject)
	stmt.Predicate = normaliseNode(stmt.Predicate)
	stmt.Object = normaliseNode(stmt.Object)
	stmt.Graph = normaliseNode(stmt.Graph)
	return n.Next.OnEvent(rdf.NewStatementEvent(stmt, e.Flags))
}

func normaliseNode(node rdf.Node) rdf.Node {
	if node.Kind() != rdf.KindLiteral {
		return node
	}
	dt := node.Datatype()
	if dt == nil {
		return node
	}
	lex, ok := normaliseLexical(dt.Value(), node.Value())
	if !ok || lex == node.Value() {
		return node
	}
	return rdf.NewTypedLiteralMust(lex, *dt)
}

func normaliseLexical(datatype, lex string) (string, bool) {
	switch datatype {
	case xsd.Boolean.Value():
		return normaliseBoolean(lex)
	case xsd.Double.Value(), xsd.Float.Value():
		f, err := strconv.ParseFloat(lex, 64)
		if err != nil {
			return "", false
		}
		return rdf.FormatDouble(f, -1), true
	case xsd.Decimal.Value():
		f, err := strconv.ParseFloat(lex, 64)
		if err != nil {
			return "", false
		}
		frac := maxNormalisedFrac
		if _, digits, _ := strings.Cut(strconv.FormatFloat(f, 'f', -1, 64), "."); len(digits) < frac {
			frac = len(digits)
		}
		return rdf.FormatDecimal(f, frac), true
	case xsd.Integer.Value(), xsd.NonNegativeInteger.Value(), xsd.PositiveInteger.Value(),
		xsd.NegativeInteger.Value(), xsd.Byte.Value(), xsd.Short.Value(), xsd.Long.Value():
		return normaliseInteger(lex)
	default:
		return "", false
	}
}

func normaliseBoolean(lex string) (string, bool) {
	switch strings.TrimSpace(lex) {
	case "true", "1":
		return "true", true
	case "false", "0":
		return "false", true
	default:
		return "", false
	}
}

func normaliseInteger(lex string) (string, bool) {
	s := strings.TrimSpace(lex)
	neg := strings.HasPrefix(s, "-")
	if neg || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
		neg = false
	}
	if neg {
		return "-" + s, true
	}
	return s, true
}
