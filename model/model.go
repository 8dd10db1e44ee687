// Package model implements the indexed, multi-ordering in-memory store of
// quadruples (C10): up to twelve ordered indices over interned statements,
// chosen-index query planning, and iterator-stable mutation, per spec.md
// §4.7. Each enabled ordering is a github.com/google/btree.BTreeG set of
// statement records, grounded on the pack's balanced-ordered-set usage
// (see DESIGN.md) rather than a hand-rolled tree or a sorted slice that
// would make insertion O(n).
package model

import (
	"github.com/google/btree"

	"github.com/arlograph/rdf"
)

const btreeDegree = 32

// record is one interned statement as stored in every enabled index: the
// resolved node values (for ordering and Matches) plus the interner handles
// that own them, so Erase can Deref on removal.
type record struct {
	s, p, o, g         rdf.Node
	sH, pH, oH, gH     rdf.Handle
	origin             rdf.Cursor
}

func (r record) statement() rdf.Statement {
	return rdf.Statement{Subject: r.s, Predicate: r.p, Object: r.o, Graph: r.g, Origin: r.origin}
}

// Model is a multi-index ordered store of quadruples. The zero Model is not
// usable; construct with New.
type Model struct {
	interner *rdf.Interner
	enabled  IndexFlag
	indices  map[IndexFlag]*btree.BTreeG[record]

	version    uint64
	liveIters  int
	statements map[key]record // keyed by the four raw node values, the model's own identity check for "does this quad already exist"
}

// key is the plain-value lookup key used only to detect an already-present
// quad on Insert (§4.7 "If insertion into the mandatory index finds an
// existing equal record, the attempt is reported as failure"); the btree
// indices themselves are the durable per-ordering storage.
type key struct{ s, p, o, g rdf.Node }

func keyOf(r record) key { return key{r.s, r.p, r.o, r.g} }

// New returns an empty Model maintaining the orderings named in enabled.
// IndexSPO is always maintained regardless of enabled, since it is the
// mandatory index every pattern can fall back to for a full scan.
func New(enabled IndexFlag) *Model {
	enabled |= IndexSPO
	m := &Model{
		interner:   rdf.NewInterner(),
		enabled:    enabled,
		indices:    make(map[IndexFlag]*btree.BTreeG[record]),
		statements: make(map[key]record),
	}
	for _, o := range orderings {
		if enabled&o.Flag == 0 {
			continue
		}
		ord := o
		m.indices[o.Flag] = btree.NewG(btreeDegree, func(a, b record) bool { return ord.less(a, b) })
	}
	return m
}

// Size returns the number of statements currently stored.
func (m *Model) Size() int { return len(m.statements) }

// Empty reports whether the model holds no statements.
func (m *Model) Empty() bool { return len(m.statements) == 0 }

// Version returns the model's monotonic mutation counter, bumped on every
// successful Insert/Erase; Iterator uses it to detect staleness.
func (m *Model) Version() uint64 { return m.version }

// Add interns s/p/o/g (g may be the zero Node for the default graph) and
// inserts the resulting statement, per §4.7's add(s,p,o,g) convenience form.
func (m *Model) Add(s, p, o, g rdf.Node) error {
	return m.Insert(rdf.Statement{Subject: s, Predicate: p, Object: o, Graph: g})
}

// Insert interns stmt's nodes and adds it to every enabled index. Returns
// StatusIDClash if an equal statement is already present (the new record is
// discarded, per §4.7); returns StatusBadArgument if an outstanding
// Iterator is live, per §4.7's anti-aliasing rule ("insertion may not
// proceed while iterators are live").
func (m *Model) Insert(stmt rdf.Statement) error {
	if m.liveIters > 0 {
		return rdf.NewStatusError(rdf.StatusBadArgument, "model: cannot insert while %d iterator(s) are live", m.liveIters)
	}
	rec := record{s: stmt.Subject, p: stmt.Predicate, o: stmt.Object, g: stmt.Graph, origin: stmt.Origin}
	if _, exists := m.statements[keyOf(rec)]; exists {
		return rdf.NewStatusError(rdf.StatusIDClash, "model: statement already present")
	}

	rec.sH = m.interner.Intern(rec.s)
	rec.pH = m.interner.Intern(rec.p)
	rec.oH = m.interner.Intern(rec.o)
	if !rec.g.IsZero() {
		rec.gH = m.interner.Intern(rec.g)
	}

	for flag, idx := range m.indices {
		_ = flag
		idx.ReplaceOrInsert(rec)
	}
	m.statements[keyOf(rec)] = rec
	m.version++
	return nil
}

// AddRange inserts every statement in stmts, stopping at (and returning) the
// first error; statements before the failure remain inserted.
func (m *Model) AddRange(stmts []rdf.Statement) error {
	for _, s := range stmts {
		if err := m.Insert(s); err != nil {
			return err
		}
	}
	return nil
}

// Erase removes the statement it identifies (matched by s/p/o/g as an exact
// quad, not a wildcard pattern) from every index, bumping Version so any
// live Iterator other than the one driving the erasure becomes invalid, per
// §4.7's erasure/anti-aliasing split: unlike Insert, Erase is allowed while
// iterators are live. Returns StatusNotFound if no such statement exists.
func (m *Model) Erase(stmt rdf.Statement) error {
	k := key{stmt.Subject, stmt.Predicate, stmt.Object, stmt.Graph}
	rec, ok := m.statements[k]
	if !ok {
		return rdf.NewStatusError(rdf.StatusNotFound, "model: statement not present")
	}
	for _, idx := range m.indices {
		idx.Delete(rec)
	}
	delete(m.statements, k)
	m.interner.Deref(rec.sH)
	m.interner.Deref(rec.pH)
	m.interner.Deref(rec.oH)
	if !rec.g.IsZero() {
		m.interner.Deref(rec.gH)
	}
	m.version++
	return nil
}

// EraseIter erases the statement it currently references (per §4.7's
// erase(iter) operation) and, unlike Erase, re-synchronizes it to the
// model's post-erase version so it — and only it — survives the mutation
// valid, matching §4.7's "iterators other than the one driving the
// erasure are invalidated."
func (m *Model) EraseIter(it *Iterator) error {
	if it.m != m {
		return rdf.NewStatusError(rdf.StatusBadIterator, "model: iterator does not belong to this model")
	}
	if err := it.checkValid(); err != nil {
		return err
	}
	if it.pos < 0 || it.pos >= len(it.results) {
		return rdf.NewStatusError(rdf.StatusBadIterator, "model: iterator is not positioned on a statement")
	}
	stmt := it.results[it.pos].statement()
	if err := m.Erase(stmt); err != nil {
		return err
	}
	it.version = m.version
	it.results = append(it.results[:it.pos], it.results[it.pos+1:]...)
	// Step back so the next Next lands on the result that followed the
	// erased one.
	it.pos--
	return nil
}

// EraseRange erases every statement in stmts with Erase, stopping at (and
// returning) the first error; statements erased before the failure stay
// erased. It takes a slice rather than a live Iterator: callers collect the
// matches of a Range/Find result first, since every Erase bumps Version and
// invalidates any Iterator still being walked.
func (m *Model) EraseRange(stmts []rdf.Statement) error {
	for _, s := range stmts {
		if err := m.Erase(s); err != nil {
			return err
		}
	}
	return nil
}

// Ask reports whether any statement matches pattern (nil/zero fields act as
// wildcards).
func (m *Model) Ask(pattern rdf.Statement) bool {
	it := m.Find(pattern)
	defer it.Close()
	return it.Next()
}

// Count returns the number of statements matching pattern.
func (m *Model) Count(pattern rdf.Statement) int {
	it := m.Find(pattern)
	defer it.Close()
	n := 0
	for it.Next() {
		n++
	}
	return n
}

// GetStatement returns the one statement matching pattern, which must have
// exactly one zero field (the field being looked up); returns StatusInvalid
// if pattern doesn't have exactly one wildcard field, StatusNotFound if no
// match exists, or a report of more than one match as the first found (per
// §4.7, "requires exactly one field null" describes the caller's contract,
// not a uniqueness guarantee the model enforces server-side beyond that).
func (m *Model) GetStatement(pattern rdf.Statement) (rdf.Statement, error) {
	wildcards := 0
	for _, n := range []rdf.Node{pattern.Subject, pattern.Predicate, pattern.Object, pattern.Graph} {
		if n.IsZero() {
			wildcards++
		}
	}
	if wildcards != 1 {
		return rdf.Statement{}, rdf.NewStatusError(rdf.StatusInvalid, "model: GetStatement pattern must leave exactly one field null, got %d", wildcards)
	}
	it := m.Find(pattern)
	defer it.Close()
	if !it.Next() {
		return rdf.Statement{}, rdf.NewStatusError(rdf.StatusNotFound, "model: no statement matches pattern")
	}
	return it.Statement(), nil
}

// Find returns an Iterator positioned before the first statement matching
// pattern (nil/zero fields act as wildcards over all four positions). The
// iterator holds a version snapshot of m; any mutation before it is closed
// invalidates it for every further use (see Iterator.Next).
func (m *Model) Find(pattern rdf.Statement) *Iterator {
	return m.Range(pattern)
}

// Range is Find's full name, kept distinct for readers coming from §4.7's
// operation list where find and range are named separately: find returns
// the same kind of Iterator as range, just documented as "to the first
// match" rather than "a range", since this Iterator always starts
// positioned before its first result either way.
func (m *Model) Range(pattern rdf.Statement) *Iterator {
	pr := record{s: pattern.Subject, p: pattern.Predicate, o: pattern.Object, g: pattern.Graph}
	pl := choosePlan(m.enabled, pr)
	m.liveIters++
	return &Iterator{
		m:       m,
		version: m.version,
		plan:    pl,
		pattern: rdf.Statement{Subject: pattern.Subject, Predicate: pattern.Predicate, Object: pattern.Object, Graph: pattern.Graph},
		idx:     m.indices[pl.ord.Flag],
	}
}

// Begin returns an Iterator over every statement, in the mandatory SPO
// index's order.
func (m *Model) Begin() *Iterator { return m.Range(rdf.Statement{}) }
