package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlograph/rdf"
)

func collectStatements(t *testing.T, input string, syntax Syntax) []rdf.Statement {
	t.Helper()
	var got []rdf.Statement
	var bases []rdf.Node
	h := rdf.Handlers{
		OnStatement: func(stmt rdf.Statement, _ rdf.StatementFlags) error {
			got = append(got, stmt)
			return nil
		},
		OnBase: func(base rdf.Node, _ rdf.Cursor) error {
			bases = append(bases, base)
			return nil
		},
	}
	dec := NewDecoder(NewSourceString(input), Options{Syntax: syntax, Strict: true}, h, nil)
	require.NoError(t, dec.Run())
	return got
}

func TestDecodeFlatTriples(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"hello\" .\n" +
		"<http://example.org/s> <http://example.org/p2> <http://example.org/o2> .\n"
	stmts := collectStatements(t, input, SyntaxFlatTriples)
	require.Len(t, stmts, 2)
	assert.Equal(t, "http://example.org/s", stmts[0].Subject.Value())
	assert.Equal(t, "http://example.org/p", stmts[0].Predicate.Value())
	assert.Equal(t, "hello", stmts[0].Object.Value())
	assert.True(t, stmts[0].Graph.IsZero())
}

func TestDecodeFlatQuads(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"hello\" <http://example.org/g> .\n"
	stmts := collectStatements(t, input, SyntaxFlatQuads)
	require.Len(t, stmts, 1)
	assert.Equal(t, "http://example.org/g", stmts[0].Graph.Value())
}

func TestDecodeTurtlePrefixAndAbbreviation(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o1, ex:o2 ;
     a ex:Thing .
`
	stmts := collectStatements(t, input, SyntaxTerseTriples)
	require.Len(t, stmts, 3)
	for _, s := range stmts {
		assert.Equal(t, "http://example.org/s", s.Subject.Value())
	}
	assert.Equal(t, "http://example.org/p", stmts[0].Predicate.Value())
	assert.Equal(t, "http://example.org/o1", stmts[0].Object.Value())
	assert.Equal(t, "http://example.org/p", stmts[1].Predicate.Value())
	assert.Equal(t, "http://example.org/o2", stmts[1].Object.Value())
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", stmts[2].Predicate.Value())
	assert.Equal(t, "http://example.org/Thing", stmts[2].Object.Value())
}

func TestDecodeTurtleCollection(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ( ex:a ex:b ) .
`
	stmts := collectStatements(t, input, SyntaxTerseTriples)
	// one rdf:first/rdf:rest pair per element, plus the enclosing ex:p
	// triple pointing at the list head.
	require.Len(t, stmts, 5)
	assert.Equal(t, "http://example.org/s", stmts[0].Subject.Value())
	assert.Equal(t, "http://example.org/p", stmts[0].Predicate.Value())
}

func TestDecodeTurtleAnonymousBlank(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p [ ex:q ex:r ] .
`
	stmts := collectStatements(t, input, SyntaxTerseTriples)
	require.Len(t, stmts, 2)
	assert.True(t, stmts[0].Object.Kind() == rdf.KindBlank)
	assert.Equal(t, stmts[0].Object.Value(), stmts[1].Subject.Value())
}

func TestDecodeStrictModeReportsBadSyntax(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> not-a-term .\n"
	var called bool
	h := rdf.Handlers{OnStatement: func(rdf.Statement, rdf.StatementFlags) error {
		called = true
		return nil
	}}
	dec := NewDecoder(NewSourceString(input), Options{Syntax: SyntaxFlatTriples, Strict: true}, h, nil)
	err := dec.Run()
	require.Error(t, err)
	assert.Equal(t, rdf.StatusBadSyntax, rdf.AsStatus(err))
	assert.False(t, called)
}

func TestDecodeBaseDirectiveResolvesRelativeIRIs(t *testing.T) {
	input := `@base <http://example.org/> .
@prefix ex: <http://example.org/> .
<s> ex:p <o> .
`
	stmts := collectStatements(t, input, SyntaxTerseTriples)
	require.Len(t, stmts, 1)
	assert.Equal(t, "http://example.org/s", stmts[0].Subject.Value())
	assert.Equal(t, "http://example.org/o", stmts[0].Object.Value())
}
