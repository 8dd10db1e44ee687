package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlograph/rdf"
)

func mustIRI(t *testing.T, s string) rdf.Node {
	t.Helper()
	return rdf.NewIRIUnsafe(s)
}

func TestModelInsertIdempotent(t *testing.T) {
	m := New(IndexDefault)
	s := mustIRI(t, "http://example.org/s")
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")

	require.NoError(t, m.Add(s, p, o, rdf.Node{}))
	assert.Equal(t, 1, m.Size())

	err := m.Add(s, p, o, rdf.Node{})
	require.Error(t, err)
	assert.Equal(t, rdf.StatusIDClash, rdf.AsStatus(err))
	assert.Equal(t, 1, m.Size())
}

func TestModelInsertBlockedByLiveIterator(t *testing.T) {
	m := New(IndexDefault)
	s := mustIRI(t, "http://example.org/s")
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	require.NoError(t, m.Add(s, p, o, rdf.Node{}))

	it := m.Begin()
	err := m.Add(s, p, mustIRI(t, "http://example.org/o2"), rdf.Node{})
	require.Error(t, err)
	assert.Equal(t, rdf.StatusBadArgument, rdf.AsStatus(err))

	require.NoError(t, it.Close())
	require.NoError(t, m.Add(s, p, mustIRI(t, "http://example.org/o2"), rdf.Node{}))
}

func TestModelEraseAllowedWithLiveIterators(t *testing.T) {
	m := New(IndexDefault)
	s := mustIRI(t, "http://example.org/s")
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	stmt := rdf.Statement{Subject: s, Predicate: p, Object: o}
	require.NoError(t, m.Insert(stmt))

	it := m.Begin()
	require.NoError(t, m.Erase(stmt))
	assert.Equal(t, 0, m.Size())

	// it was live across the erasure and is now stale.
	assert.False(t, it.Next())
	assert.Equal(t, rdf.StatusBadIterator, rdf.AsStatus(it.Err()))
}

func TestModelEraseIterKeepsDrivingIteratorValid(t *testing.T) {
	m := New(IndexDefault)
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	s1 := mustIRI(t, "http://example.org/s1")
	s2 := mustIRI(t, "http://example.org/s2")
	require.NoError(t, m.Add(s1, p, o, rdf.Node{}))
	require.NoError(t, m.Add(s2, p, o, rdf.Node{}))

	it := m.Begin()
	require.True(t, it.Next())
	first := it.Statement()
	require.NoError(t, m.EraseIter(it))
	assert.Equal(t, 1, m.Size())

	require.True(t, it.Next())
	assert.NotEqual(t, first.Subject, it.Statement().Subject)
}

func TestModelFindWildcardEnumeratesEveryStatementOnce(t *testing.T) {
	m := New(IndexDefault)
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	want := map[string]bool{}
	for i := 0; i < 5; i++ {
		s := mustIRI(t, "http://example.org/s"+string(rune('0'+i)))
		require.NoError(t, m.Add(s, p, o, rdf.Node{}))
		want[s.String()] = true
	}

	it := m.Find(rdf.Statement{})
	defer it.Close()
	got := map[string]bool{}
	for it.Next() {
		got[it.Statement().Subject.String()] = true
	}
	assert.Equal(t, want, got)
}

func TestModelQueryPlanningPrefersExactPrefixIndex(t *testing.T) {
	// Only SPO (mandatory) and OPS are enabled: a subject- and object-bound,
	// predicate-unbound pattern has no exact-prefix index and falls back to
	// a filtered range scan of SPO, while an object-bound, predicate-bound
	// pattern gets an exact range scan of OPS.
	m := New(IndexSPO | IndexOPS)
	p := mustIRI(t, "http://example.org/p")
	o1 := mustIRI(t, "http://example.org/o1")
	o2 := mustIRI(t, "http://example.org/o2")
	s := mustIRI(t, "http://example.org/s")
	require.NoError(t, m.Add(s, p, o1, rdf.Node{}))
	require.NoError(t, m.Add(s, p, o2, rdf.Node{}))

	pattern := rdf.Statement{Predicate: p, Object: o1}
	pr := record{s: pattern.Subject, p: pattern.Predicate, o: pattern.Object, g: pattern.Graph}
	pl := choosePlan(m.enabled, pr)
	assert.Equal(t, modeRange, pl.mode)
	assert.Equal(t, IndexOPS, pl.ord.Flag)

	assert.Equal(t, 1, m.Count(pattern))
}

func TestModelGetStatementRequiresExactlyOneWildcard(t *testing.T) {
	m := New(IndexDefault)
	s := mustIRI(t, "http://example.org/s")
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	g := mustIRI(t, "http://example.org/g")
	require.NoError(t, m.Add(s, p, o, g))

	got, err := m.GetStatement(rdf.Statement{Subject: s, Predicate: p, Graph: g})
	require.NoError(t, err)
	assert.True(t, o.Eq(got.Object))

	_, err = m.GetStatement(rdf.Statement{Subject: s, Graph: g})
	require.Error(t, err)
	assert.Equal(t, rdf.StatusInvalid, rdf.AsStatus(err))

	_, err = m.GetStatement(rdf.Statement{Subject: s, Predicate: p, Object: mustIRI(t, "http://example.org/none")})
	require.Error(t, err)
	assert.Equal(t, rdf.StatusNotFound, rdf.AsStatus(err))
}

func TestModelAskAndEraseRange(t *testing.T) {
	m := New(IndexDefault)
	p := mustIRI(t, "http://example.org/p")
	o := mustIRI(t, "http://example.org/o")
	s1 := mustIRI(t, "http://example.org/s1")
	s2 := mustIRI(t, "http://example.org/s2")
	stmt1 := rdf.Statement{Subject: s1, Predicate: p, Object: o}
	stmt2 := rdf.Statement{Subject: s2, Predicate: p, Object: o}
	require.NoError(t, m.AddRange([]rdf.Statement{stmt1, stmt2}))

	assert.True(t, m.Ask(rdf.Statement{Subject: s1}))
	assert.False(t, m.Ask(rdf.Statement{Subject: mustIRI(t, "http://example.org/none")}))

	require.NoError(t, m.EraseRange([]rdf.Statement{stmt1, stmt2}))
	assert.True(t, m.Empty())
}
