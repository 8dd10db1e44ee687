package rdf

import "strings"

// URIView holds six string slices borrowing from an external buffer:
// scheme, authority, path (base and reference-relative remainder), query
// and fragment. It mirrors the component breakdown of RFC 3986 §3, kept
// minimal to what reference resolution needs.
type URIView struct {
	Scheme    string
	Authority string
	HasAuth   bool
	Path      string
	Query     string
	HasQuery  bool
	Fragment  string
	HasFrag   bool
}

// ParseURIView splits s into its components. It does not validate the
// scheme or authority grammar beyond what's needed to locate the
// delimiters; full IRI-character validation happens in the parser.
func ParseURIView(s string) URIView {
	var v URIView

	rest := s
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		v.Fragment = rest[i+1:]
		v.HasFrag = true
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		v.Query = rest[i+1:]
		v.HasQuery = true
		rest = rest[:i]
	}

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":"
	if i := strings.IndexByte(rest, ':'); i > 0 && isValidScheme(rest[:i]) {
		v.Scheme = rest[:i]
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		v.HasAuth = true
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			v.Authority = rest[:i]
			rest = rest[i:]
		} else {
			v.Authority = rest
			rest = ""
		}
	}
	v.Path = rest
	return v
}

func isValidScheme(s string) bool {
	if s == "" || !isAlphaASCII(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlphaASCII(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isAlphaASCII(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// IsAbsolute reports whether the view has a scheme component, i.e. the
// original string was an absolute IRI rather than a reference.
func (v URIView) IsAbsolute() bool { return v.Scheme != "" }

// String reassembles the view into its string form.
func (v URIView) String() string {
	var b strings.Builder
	if v.Scheme != "" {
		b.WriteString(v.Scheme)
		b.WriteByte(':')
	}
	if v.HasAuth {
		b.WriteString("//")
		b.WriteString(v.Authority)
	}
	b.WriteString(v.Path)
	if v.HasQuery {
		b.WriteByte('?')
		b.WriteString(v.Query)
	}
	if v.HasFrag {
		b.WriteByte('#')
		b.WriteString(v.Fragment)
	}
	return b.String()
}

// mergePaths implements RFC 3986 §5.3's path merge: if the base has an
// authority and an empty path, the merged path is "/" + ref path;
// otherwise it's the base path up to and including the last "/", plus the
// ref path.
func mergePaths(base URIView, refPath string) string {
	if base.HasAuth && base.Path == "" {
		return "/" + refPath
	}
	if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
		return base.Path[:i+1] + refPath
	}
	return refPath
}

// removeDotSegments implements RFC 3986 §5.2.4.
func removeDotSegments(path string) string {
	var out []string
	trailingSlash := false
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			slash := strings.IndexByte(in[1:], '/')
			var seg string
			if !strings.HasPrefix(in, "/") {
				if j := strings.IndexByte(in, '/'); j >= 0 {
					seg = in[:j]
					in = in[j:]
				} else {
					seg = in
					in = ""
				}
				out = append(out, seg)
				continue
			}
			if slash < 0 {
				seg = in
				in = ""
			} else {
				seg = in[:slash+1]
				in = in[slash+1:]
			}
			out = append(out, seg)
		}
		trailingSlash = in == "/" || strings.HasSuffix(in, "/..") || strings.HasSuffix(in, "/.")
	}
	result := strings.Join(out, "")
	if trailingSlash && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	return result
}

// ResolveReference resolves ref (relative or absolute) against base,
// following RFC 3986 §5.3. If ref is already absolute it is returned
// unchanged (its dot segments removed), matching §8's invariant that
// resolving an absolute reference is a no-op. base must be absolute.
func ResolveReference(ref, base string) (string, error) {
	r := ParseURIView(ref)
	if r.IsAbsolute() {
		r.Path = removeDotSegments(r.Path)
		return r.String(), nil
	}
	b := ParseURIView(base)
	if !b.IsAbsolute() {
		return "", NewStatusError(StatusBadArgument, "rdf: resolve base %q is not an absolute IRI", base)
	}

	var t URIView
	t.Scheme = b.Scheme
	switch {
	case r.HasAuth:
		t.HasAuth = true
		t.Authority = r.Authority
		t.Path = removeDotSegments(r.Path)
		t.HasQuery, t.Query = r.HasQuery, r.Query
	case r.Path == "":
		t.HasAuth, t.Authority = b.HasAuth, b.Authority
		t.Path = b.Path
		if r.HasQuery {
			t.HasQuery, t.Query = true, r.Query
		} else {
			t.HasQuery, t.Query = b.HasQuery, b.Query
		}
	default:
		t.HasAuth, t.Authority = b.HasAuth, b.Authority
		if strings.HasPrefix(r.Path, "/") {
			t.Path = removeDotSegments(r.Path)
		} else {
			t.Path = removeDotSegments(mergePaths(b, r.Path))
		}
		t.HasQuery, t.Query = r.HasQuery, r.Query
	}
	t.HasFrag, t.Fragment = r.HasFrag, r.Fragment
	return t.String(), nil
}

// Relativize computes the shortest reference that resolves to target
// against base, bounded so that relative up-references ("../") never
// escape root (if root is non-empty, the result never climbs above it).
// If target shares no prefix with base under root, the absolute target is
// returned unchanged.
func Relativize(target, base, root string) string {
	if root != "" && !strings.HasPrefix(target, root) {
		return target
	}
	tv, bv := ParseURIView(target), ParseURIView(base)
	if tv.Scheme != bv.Scheme || tv.Authority != bv.Authority || tv.HasAuth != bv.HasAuth {
		return target
	}
	bound := root
	if bound == "" {
		bound = bv.Scheme + "://" + bv.Authority + "/"
	}
	if !strings.HasPrefix(target, bound) {
		return target
	}

	bDir := bv.Path
	if i := strings.LastIndexByte(bDir, '/'); i >= 0 {
		bDir = bDir[:i+1]
	} else {
		bDir = ""
	}
	if strings.HasPrefix(tv.Path, bDir) && len(bDir) > 0 {
		rel := tv.Path[len(bDir):]
		if rel == "" {
			rel = "./"
		}
		return appendTail(rel, tv)
	}

	// Fall back to climbing up from base's directory to the common
	// ancestor, bounded so the climb never passes above root/bound.
	boundDir := dirOf(ParseURIView(bound).Path)
	bParts := splitDir(bDir)
	tParts := splitDir(dirOf(tv.Path))
	boundParts := splitDir(boundDir)

	common := 0
	for common < len(bParts) && common < len(tParts) && bParts[common] == tParts[common] {
		common++
	}
	ups := len(bParts) - common
	if maxUps := len(bParts) - len(boundParts); ups > maxUps {
		ups = maxUps
	}
	if ups < 0 {
		ups = 0
	}

	var rel strings.Builder
	for i := 0; i < ups; i++ {
		rel.WriteString("../")
	}
	for i := common; i < len(tParts); i++ {
		rel.WriteString(tParts[i])
		rel.WriteByte('/')
	}
	rel.WriteString(lastSeg(tv.Path))
	return appendTail(rel.String(), tv)
}

func appendTail(rel string, tv URIView) string {
	var b strings.Builder
	b.WriteString(rel)
	if tv.HasQuery {
		b.WriteByte('?')
		b.WriteString(tv.Query)
	}
	if tv.HasFrag {
		b.WriteByte('#')
		b.WriteString(tv.Fragment)
	}
	return b.String()
}

func dirOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i+1]
	}
	return ""
}

func lastSeg(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func splitDir(dir string) []string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
