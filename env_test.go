package rdf

import "testing"

func TestEnvironmentSetBaseResolvesRelative(t *testing.T) {
	e := NewEnvironment()
	if err := e.SetBase(NewIRIUnsafe("http://example.org/a/b")); err != nil {
		t.Fatalf("SetBase failed: %v", err)
	}
	if err := e.SetBase(NewIRIUnsafe("c")); err != nil {
		t.Fatalf("SetBase (relative) failed: %v", err)
	}
	if want, got := "http://example.org/a/c", e.Base().Value(); got != want {
		t.Errorf("Base() = %q; want %q", got, want)
	}
}

func TestEnvironmentSetPrefixRequiresBaseForRelative(t *testing.T) {
	e := NewEnvironment()
	if err := e.SetPrefix("ex", NewIRIUnsafe("rel/path")); err == nil {
		t.Errorf("SetPrefix with relative IRI and no base: want error, got nil")
	}
	if err := e.SetBase(NewIRIUnsafe("http://example.org/")); err != nil {
		t.Fatalf("SetBase failed: %v", err)
	}
	if err := e.SetPrefix("ex", NewIRIUnsafe("rel/path")); err != nil {
		t.Errorf("SetPrefix with base set: unexpected error %v", err)
	}
}

func TestEnvironmentSetPrefixReplacesInPlace(t *testing.T) {
	e := NewEnvironment()
	if err := e.SetPrefix("ex", NewIRIUnsafe("http://example.org/")); err != nil {
		t.Fatalf("SetPrefix failed: %v", err)
	}
	if err := e.SetPrefix("other", NewIRIUnsafe("http://other.org/")); err != nil {
		t.Fatalf("SetPrefix failed: %v", err)
	}
	if err := e.SetPrefix("ex", NewIRIUnsafe("http://example.org/v2/")); err != nil {
		t.Fatalf("SetPrefix replace failed: %v", err)
	}
	prefixes := e.Prefixes()
	if got := prefixes["ex"]; got != "http://example.org/v2/" {
		t.Errorf("Prefixes()[\"ex\"] = %q; want %q", got, "http://example.org/v2/")
	}
	if got := prefixes["other"]; got != "http://other.org/" {
		t.Errorf("Prefixes()[\"other\"] = %q; want %q", got, "http://other.org/")
	}
}

func TestEnvironmentQualifyLongestMatch(t *testing.T) {
	e := NewEnvironment()
	_ = e.SetPrefix("ex", NewIRIUnsafe("http://example.org/"))
	_ = e.SetPrefix("exns", NewIRIUnsafe("http://example.org/ns/"))

	got, ok := e.Qualify(NewIRIUnsafe("http://example.org/ns/thing"))
	if !ok {
		t.Fatalf("Qualify: want match, got none")
	}
	if want := "exns:thing"; got.Value() != want {
		t.Errorf("Qualify = %q; want %q (longest expansion should win)", got.Value(), want)
	}
}

func TestEnvironmentExpandPrefixedAndRelative(t *testing.T) {
	e := NewEnvironment()
	_ = e.SetBase(NewIRIUnsafe("http://example.org/"))
	_ = e.SetPrefix("ex", NewIRIUnsafe("http://example.org/ns/"))

	expanded, ok := e.Expand(NewPrefixed("ex", "thing"))
	if !ok || expanded.Value() != "http://example.org/ns/thing" {
		t.Errorf("Expand(prefixed) = %v, %v; want http://example.org/ns/thing, true", expanded, ok)
	}

	expanded, ok = e.Expand(NewIRIUnsafe("rel"))
	if !ok || expanded.Value() != "http://example.org/rel" {
		t.Errorf("Expand(relative IRI) = %v, %v; want http://example.org/rel, true", expanded, ok)
	}

	_, ok = e.Expand(NewPrefixed("unknown", "thing"))
	if ok {
		t.Errorf("Expand(unknown prefix): want false, got true")
	}
}
