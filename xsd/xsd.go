// Package xsd exports the IRIs of the XML Schema built-in datatypes used
// by the RDF literal grammar, plus rdf:langString and rdf:type/rdf:nil/
// rdf:first/rdf:rest, kept in one place for the parser, serializer and
// sink normaliser to share.
package xsd

import "github.com/arlograph/rdf"

var (
	// Core types.
	String  = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#string")
	Boolean = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#boolean")
	Decimal = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#decimal")
	Integer = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#integer")

	// IEEE floating-point numbers.
	Double = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#double")
	Float  = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#float")

	// Time and date.
	Date          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#date")
	Time          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#time")
	DateTime      = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dateTime")
	DateTimeStamp = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dateTimeStamp")

	// Recurring and partial dates.
	Year              = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gYear")
	Month             = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gMonth")
	Day               = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gDay")
	YearMonth         = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gYearMonth")
	Duration          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#duration")
	YearMonthDuration = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#yearMonthDuration")
	DayTimeDuration   = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dayTimeDuration")

	// Limited-range integer family, canonicalised like xsd:integer by the
	// sink normaliser.
	Byte               = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#byte")
	Short              = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#short")
	Long               = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#long")
	NonNegativeInteger = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#nonNegativeInteger")
	PositiveInteger    = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#positiveInteger")
	NegativeInteger    = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#negativeInteger")

	// Encoded binary data. The codec itself is an external black box (see
	// DESIGN.md); only the datatype IRI is needed to recognize/emit the
	// lexical form.
	Base64Binary = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#base64Binary")
	HexBinary    = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#hexBinary")
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

var (
	RDFType      = rdf.NewIRIUnsafe(rdfNS + "type")
	RDFLangString = rdf.NewIRIUnsafe(rdfNS + "langString")
	RDFNil       = rdf.NewIRIUnsafe(rdfNS + "nil")
	RDFFirst     = rdf.NewIRIUnsafe(rdfNS + "first")
	RDFRest      = rdf.NewIRIUnsafe(rdfNS + "rest")
)

// IsNumeric reports whether dt is xsd:boolean, xsd:integer, xsd:decimal or
// xsd:double. The serializer writes bare (unquoted) literals only for the
// first three; xsd:double literals are always quoted.
func IsNumeric(dt rdf.Node) bool {
	switch dt.Value() {
	case Boolean.Value(), Integer.Value(), Decimal.Value(), Double.Value():
		return true
	default:
		return false
	}
}
