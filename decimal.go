package rdf

import (
	"strconv"
	"strings"
)

// Parsing xsd:double/xsd:decimal/xsd:integer lexical forms needs no
// hand-rolled conforming parser: strconv.ParseFloat, like the teacher's own
// decoder.go/ttl.go/parse/decoder.go, never consults LC_NUMERIC and is
// already locale-independent. What the teacher never needed, because it
// only ever round-trips the lexical form it read, is canonical
// *formatting* of a value constructed programmatically with a bounded
// precision — that's what FormatDecimal/FormatDouble are for.

// FormatDecimal renders f as an xsd:decimal lexical form: always containing
// a decimal point, trimmed to at most maxFrac fractional digits with
// trailing zeros removed (but at least one fractional digit kept).
func FormatDecimal(f float64, maxFrac int) string {
	if maxFrac < 1 {
		maxFrac = 1
	}
	s := strconv.FormatFloat(f, 'f', maxFrac, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		fracPart = "0"
	}
	out := intPart + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDouble renders f as an xsd:double lexical form using the shortest
// representation that round-trips (maxPrecision < 1), in exponential
// notation with an uppercase "E", an explicitly signed exponent without
// leading zeros, and trailing mantissa zeros removed (e.g. 1.25 renders as
// "1.25E+0" and 100 as "1E+2").
func FormatDouble(f float64, maxPrecision int) string {
	if maxPrecision < 1 {
		maxPrecision = -1 // strconv: -1 means "shortest that round-trips"
	}
	s := strconv.FormatFloat(f, 'e', maxPrecision, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}
	sign := "+"
	if strings.HasPrefix(exp, "-") {
		sign = "-"
		exp = exp[1:]
	} else {
		exp = strings.TrimPrefix(exp, "+")
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "E" + sign + exp
}
