package report

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/arlograph/rdf"
)

func TestWorldEmitInvokesCallback(t *testing.T) {
	var got Report
	var n int
	w := New(zerolog.Nop(), func(r Report) {
		got = r
		n++
	})

	w.Errorf("parser", rdf.Cursor{Document: "a.ttl", Line: 3, Column: 5}, rdf.StatusBadSyntax, "bad token %q", "!")

	if n != 1 {
		t.Fatalf("callback invoked %d times; want 1", n)
	}
	if got.Domain != "parser" {
		t.Errorf("Domain = %q; want parser", got.Domain)
	}
	if got.Level != LevelError {
		t.Errorf("Level = %v; want LevelError", got.Level)
	}
	if got.Status != rdf.StatusBadSyntax {
		t.Errorf("Status = %v; want StatusBadSyntax", got.Status)
	}
	if got.Message != `bad token "!"` {
		t.Errorf("Message = %q; want %q", got.Message, `bad token "!"`)
	}
}

func TestWorldWarnfUsesWarningLevel(t *testing.T) {
	var got Report
	w := New(zerolog.Nop(), func(r Report) { got = r })

	w.Warnf("parser", rdf.Cursor{}, rdf.StatusBadSyntax, "recovered from %s", "trailing comma")

	if got.Level != LevelWarning {
		t.Errorf("Level = %v; want LevelWarning", got.Level)
	}
}

func TestWorldEmitWithoutCallbackDoesNotPanic(t *testing.T) {
	w := New(zerolog.Nop(), nil)
	w.Emit(Report{Domain: "writer", Level: LevelNote, Message: "fyi"})
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		l    Level
		want string
	}{
		{LevelNote, "note"},
		{LevelWarning, "warning"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q; want %q", tt.l, got, tt.want)
		}
	}
}
