package write

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/parse"
)

func render(t *testing.T, input string, in, out parse.Syntax) string {
	t.Helper()
	var buf bytes.Buffer
	env := rdf.NewEnvironment()
	s := NewSerializer(&buf, Options{Syntax: out}, env)
	dec := parse.NewDecoder(parse.NewSourceString(input), parse.Options{Syntax: in, Strict: true}, s, env)
	require.NoError(t, dec.Run())
	require.NoError(t, s.Close())
	return buf.String()
}

func TestSerializerFlatTriplesRoundTrip(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"hello\" .\n"
	got := render(t, input, parse.SyntaxFlatTriples, parse.SyntaxFlatTriples)
	want := "<http://example.org/s> <http://example.org/p> \"hello\" .\n"
	assert.Equal(t, want, got)
}

func TestSerializerFlatQuadsKeepsGraph(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	got := render(t, input, parse.SyntaxFlatQuads, parse.SyntaxFlatQuads)
	want := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	assert.Equal(t, want, got)
}

func TestSerializerTerseAbbreviatesSamePredicate(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o1> .
<http://example.org/s> <http://example.org/p> <http://example.org/o2> .
`
	got := render(t, input, parse.SyntaxFlatTriples, parse.SyntaxTerseTriples)
	assert.Contains(t, got, "<http://example.org/s>")
	assert.Contains(t, got, " ,\n")
	assert.Equal(t, 1, bytes.Count([]byte(got), []byte(" .\n")))
}

func TestSerializerTerseAbbreviatesRDFType(t *testing.T) {
	input := "<http://example.org/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Thing> .\n"
	got := render(t, input, parse.SyntaxFlatTriples, parse.SyntaxTerseTriples)
	assert.Contains(t, got, " a <http://example.org/Thing>")
}

func TestSerializerTerseWritesPrefixDirective(t *testing.T) {
	var buf bytes.Buffer
	env := rdf.NewEnvironment()
	require.NoError(t, env.SetPrefix("ex", rdf.NewIRIUnsafe("http://example.org/")))
	s := NewSerializer(&buf, Options{Syntax: parse.SyntaxTerseTriples}, env)

	require.NoError(t, s.OnEvent(rdf.NewPrefixEvent("ex", rdf.NewIRIUnsafe("http://example.org/"), rdf.Cursor{})))
	require.NoError(t, s.OnEvent(rdf.NewStatementEvent(rdf.Statement{
		Subject:   rdf.NewIRIUnsafe("http://example.org/s"),
		Predicate: rdf.NewIRIUnsafe("http://example.org/p"),
		Object:    rdf.NewLiteral("v"),
	}, 0)))
	require.NoError(t, s.Close())

	got := buf.String()
	assert.Contains(t, got, "@prefix ex: <http://example.org/> .\n")
	assert.Contains(t, got, "ex:s ex:p")
}

func TestSerializerTriGOpensGraphBlock(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	got := render(t, input, parse.SyntaxFlatQuads, parse.SyntaxTerseQuads)
	assert.Contains(t, got, "<http://example.org/g> {\n")
	assert.Contains(t, got, "}\n")
}

func TestSerializerBareNumericLiteral(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"42\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"
	got := render(t, input, parse.SyntaxFlatTriples, parse.SyntaxTerseTriples)
	assert.Contains(t, got, " 42 .\n")
}

func TestSerializerCollectionRoundTrip(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ( ex:a ex:b ) .
`
	got := render(t, input, parse.SyntaxTerseTriples, parse.SyntaxTerseTriples)
	assert.Contains(t, got, "(")
	assert.Contains(t, got, ")")
}
