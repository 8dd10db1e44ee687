package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/model"
	"github.com/arlograph/rdf/xsd"
)

func TestInserterBuildsModelFromEvents(t *testing.T) {
	m := model.New(model.IndexDefault)
	env := rdf.NewEnvironment()
	ins := NewInserter(m, env)

	require.NoError(t, ins.OnEvent(rdf.NewBaseEvent(rdf.NewIRIUnsafe("http://example.org/"), rdf.Cursor{})))
	require.NoError(t, ins.OnEvent(rdf.NewPrefixEvent("ex", rdf.NewIRIUnsafe("http://example.org/"), rdf.Cursor{})))

	stmt := rdf.Statement{
		Subject:   rdf.NewPrefixed("ex", "s"),
		Predicate: rdf.NewPrefixed("ex", "p"),
		Object:    rdf.NewLiteral("hello"),
	}
	require.NoError(t, ins.OnEvent(rdf.NewStatementEvent(stmt, 0)))

	assert.Equal(t, 1, m.Size())
	assert.True(t, m.Ask(rdf.Statement{Subject: rdf.NewIRIUnsafe("http://example.org/s")}))
}

func TestFilterPassesOnlyMatchingStatements(t *testing.T) {
	m := model.New(model.IndexDefault)
	env := rdf.NewEnvironment()
	ins := NewInserter(m, env)
	p := rdf.NewIRIUnsafe("http://example.org/p")
	f := NewFilter(ins, rdf.Statement{Predicate: p})

	keep := rdf.Statement{Subject: rdf.NewIRIUnsafe("http://example.org/s1"), Predicate: p, Object: rdf.NewLiteral("a")}
	drop := rdf.Statement{
		Subject:   rdf.NewIRIUnsafe("http://example.org/s2"),
		Predicate: rdf.NewIRIUnsafe("http://example.org/other"),
		Object:    rdf.NewLiteral("b"),
	}
	require.NoError(t, f.OnEvent(rdf.NewStatementEvent(keep, 0)))
	require.NoError(t, f.OnEvent(rdf.NewStatementEvent(drop, 0)))

	assert.Equal(t, 1, m.Size())
	assert.True(t, m.Ask(rdf.Statement{Predicate: p}))
}

func TestExpanderRewritesPrefixedNodes(t *testing.T) {
	var got rdf.Statement
	capture := rdf.SinkFunc(func(e rdf.Event) error {
		if e.Kind == rdf.EventStatement {
			got = e.Statement
		}
		return nil
	})
	env := rdf.NewEnvironment()
	x := NewExpander(capture, env)

	require.NoError(t, x.OnEvent(rdf.NewPrefixEvent("ex", rdf.NewIRIUnsafe("http://example.org/"), rdf.Cursor{})))
	stmt := rdf.Statement{
		Subject:   rdf.NewPrefixed("ex", "s"),
		Predicate: rdf.NewPrefixed("ex", "p"),
		Object:    rdf.NewPrefixed("ex", "o"),
	}
	require.NoError(t, x.OnEvent(rdf.NewStatementEvent(stmt, 0)))

	assert.Equal(t, rdf.KindIRI, got.Subject.Kind())
	assert.Equal(t, "http://example.org/s", got.Subject.Value())
	assert.Equal(t, "http://example.org/o", got.Object.Value())
}

func TestNormaliserCanonicalizesLexicalForms(t *testing.T) {
	var got rdf.Statement
	capture := rdf.SinkFunc(func(e rdf.Event) error {
		if e.Kind == rdf.EventStatement {
			got = e.Statement
		}
		return nil
	})
	n := NewNormaliser(capture)

	boolLit := rdf.NewTypedLiteralMust("1", xsd.Boolean)
	intLit := rdf.NewTypedLiteralMust("+007", xsd.Integer)
	stmt := rdf.Statement{
		Subject:   rdf.NewIRIUnsafe("http://example.org/s"),
		Predicate: rdf.NewIRIUnsafe("http://example.org/p"),
		Object:    boolLit,
	}
	require.NoError(t, n.OnEvent(rdf.NewStatementEvent(stmt, 0)))
	assert.Equal(t, "true", got.Object.Value())

	stmt.Object = intLit
	require.NoError(t, n.OnEvent(rdf.NewStatementEvent(stmt, 0)))
	assert.Equal(t, "7", got.Object.Value())
}
