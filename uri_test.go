package rdf

import "testing"

func TestParseURIView(t *testing.T) {
	v := ParseURIView("http://example.org/a/b?q=1#frag")
	if v.Scheme != "http" {
		t.Errorf("Scheme = %q; want http", v.Scheme)
	}
	if v.Authority != "example.org" || !v.HasAuth {
		t.Errorf("Authority = %q, HasAuth = %v; want example.org, true", v.Authority, v.HasAuth)
	}
	if v.Path != "/a/b" {
		t.Errorf("Path = %q; want /a/b", v.Path)
	}
	if v.Query != "q=1" || !v.HasQuery {
		t.Errorf("Query = %q, HasQuery = %v; want q=1, true", v.Query, v.HasQuery)
	}
	if v.Fragment != "frag" || !v.HasFrag {
		t.Errorf("Fragment = %q, HasFrag = %v; want frag, true", v.Fragment, v.HasFrag)
	}
}

// ResolveReference test cases from RFC 3986 §5.4.1 (normal examples), base
// "http://a/b/c/d;p?q".
func TestResolveReferenceRFC3986NormalExamples(t *testing.T) {
	const base = "http://a/b/c/d;p?q"
	tests := []struct {
		ref  string
		want string
	}{
		{"g:h", "g:h"},
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"g#s", "http://a/b/c/g#s"},
		{"", "http://a/b/c/d;p?q"},
		{".", "http://a/b/c/"},
		{"./", "http://a/b/c/"},
		{"..", "http://a/b/"},
		{"../", "http://a/b/"},
		{"../g", "http://a/b/g"},
		{"../..", "http://a/"},
		{"../../g", "http://a/g"},
	}
	for _, tt := range tests {
		got, err := ResolveReference(tt.ref, base)
		if err != nil {
			t.Errorf("ResolveReference(%q, base) failed: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveReference(%q, base) = %q; want %q", tt.ref, got, tt.want)
		}
	}
}

func TestResolveReferenceAbsoluteRefIsNoop(t *testing.T) {
	got, err := ResolveReference("http://example.org/x", "http://a/b/c/")
	if err != nil {
		t.Fatalf("ResolveReference failed: %v", err)
	}
	if want := "http://example.org/x"; got != want {
		t.Errorf("ResolveReference(absolute) = %q; want %q", got, want)
	}
}

func TestResolveReferenceRequiresAbsoluteBase(t *testing.T) {
	_, err := ResolveReference("g", "relative/base")
	if err == nil {
		t.Errorf("ResolveReference with relative base: want error, got nil")
	}
	if AsStatus(err) != StatusBadArgument {
		t.Errorf("AsStatus(err) = %v; want StatusBadArgument", AsStatus(err))
	}
}

func TestRelativizeShortensUnderSharedDirectory(t *testing.T) {
	got := Relativize("http://example.org/a/b/c", "http://example.org/a/b/base", "")
	if want := "c"; got != want {
		t.Errorf("Relativize = %q; want %q", got, want)
	}
}

func TestRelativizeFallsBackOutsideBound(t *testing.T) {
	target := "http://other.org/x"
	got := Relativize(target, "http://example.org/a/", "")
	if got != target {
		t.Errorf("Relativize across authorities = %q; want unchanged %q", got, target)
	}
}
