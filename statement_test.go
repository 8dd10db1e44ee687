package rdf

import "testing"

func TestStatementMatchesWildcards(t *testing.T) {
	s := NewIRIUnsafe("http://example.org/s")
	p := NewIRIUnsafe("http://example.org/p")
	o := NewLiteral("o")
	g := NewIRIUnsafe("http://example.org/g")
	stmt := Statement{Subject: s, Predicate: p, Object: o, Graph: g}

	tests := []struct {
		pattern Statement
		want    bool
	}{
		{Statement{}, true},
		{Statement{Subject: s}, true},
		{Statement{Subject: NewIRIUnsafe("http://example.org/other")}, false},
		{Statement{Subject: s, Predicate: p, Object: o, Graph: g}, true},
		{Statement{Subject: s, Graph: NewIRIUnsafe("http://example.org/other-graph")}, false},
	}
	for i, tt := range tests {
		if got := stmt.Matches(tt.pattern); got != tt.want {
			t.Errorf("case %d: Matches = %v; want %v", i, got, tt.want)
		}
	}
}

func TestStatementMatchesZeroGraphIsWildcard(t *testing.T) {
	inDefault := Statement{Subject: NewIRIUnsafe("http://example.org/s")}
	inNamed := Statement{Subject: NewIRIUnsafe("http://example.org/s"), Graph: NewIRIUnsafe("http://example.org/g")}
	pattern := Statement{Subject: NewIRIUnsafe("http://example.org/s")}

	if !inDefault.Matches(pattern) {
		t.Errorf("default-graph statement should match a graph-wildcard pattern")
	}
	if !inNamed.Matches(pattern) {
		t.Errorf("named-graph statement should match a graph-wildcard pattern")
	}
}

func TestStatementEqIgnoresOrigin(t *testing.T) {
	a := Statement{Subject: NewIRIUnsafe("http://example.org/s"), Origin: Cursor{Document: "a.ttl", Line: 1}}
	b := Statement{Subject: NewIRIUnsafe("http://example.org/s"), Origin: Cursor{Document: "b.ttl", Line: 9}}
	if !a.Eq(b) {
		t.Errorf("Eq should ignore Origin")
	}
}

func TestCursorIsZero(t *testing.T) {
	if !(Cursor{}).IsZero() {
		t.Errorf("zero Cursor should be IsZero")
	}
	if (Cursor{Document: "a"}).IsZero() {
		t.Errorf("Cursor with Document set should not be IsZero")
	}
}
