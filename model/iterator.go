package model

import (
	"github.com/google/btree"

	"github.com/arlograph/rdf"
)

// Iterator walks the statements matching a Find/Range pattern in the order
// of whichever index the query planner chose. It is positioned before its
// first result; call Next to advance. An Iterator is live from the moment
// Range/Find returns it until Close, and it must be Closed to let Insert
// proceed again (§4.7's anti-aliasing rule). Any mutation of the owning
// Model other than the erasure that produced this particular Iterator (see
// Model.EraseIter) invalidates it: Next then reports StatusBadIterator.
type Iterator struct {
	m       *Model
	version uint64
	plan    plan
	pattern rdf.Statement
	idx     *btree.BTreeG[record]

	results []record
	pos     int
	started bool
	err     error
	closed  bool
}

// checkValid reports StatusBadIterator if the model has mutated since this
// Iterator was created (beyond an EraseIter call on this same Iterator,
// which re-syncs version itself).
func (it *Iterator) checkValid() error {
	if it.closed {
		return rdf.NewStatusError(rdf.StatusBadIterator, "model: iterator is closed")
	}
	if it.m.version != it.version {
		return rdf.NewStatusError(rdf.StatusBadIterator, "model: iterator is stale")
	}
	return nil
}

// materialize walks the chosen index once, per plan.mode, collecting every
// matching record in index order. Walking eagerly (rather than lazily
// stepping the btree cursor) keeps Next trivial and keeps the iterator's
// view stable for the single pass between creation and the first mutation.
func (it *Iterator) materialize() {
	if it.started {
		return
	}
	it.started = true

	switch it.plan.mode {
	case modeFullScan:
		it.idx.Ascend(func(r record) bool {
			if r.statement().Matches(it.pattern) {
				it.results = append(it.results, r)
			}
			return true
		})
	case modeRange, modeFilterRange:
		pivot := record{s: it.pattern.Subject, p: it.pattern.Predicate, o: it.pattern.Object, g: it.pattern.Graph}
		prefix := it.plan.ord.Fields[:it.plan.prefixLen]
		it.idx.AscendGreaterOrEqual(pivot, func(r record) bool {
			for _, f := range prefix {
				if rdf.Compare(f.get(r), f.get(pivot)) != 0 {
					return false
				}
			}
			if it.plan.mode == modeRange || r.statement().Matches(it.pattern) {
				it.results = append(it.results, r)
			}
			return true
		})
	}
	it.pos = -1
}

// Next advances the iterator to its next matching statement, returning
// false when exhausted or when the iterator has gone stale (in which case
// Err reports StatusBadIterator).
func (it *Iterator) Next() bool {
	if err := it.checkValid(); err != nil {
		it.err = err
		it.pos = len(it.results)
		return false
	}
	it.materialize()
	if it.pos+1 >= len(it.results) {
		it.pos = len(it.results)
		return false
	}
	it.pos++
	return true
}

// Statement returns the statement Next last positioned the iterator on.
// Calling it before a successful Next, or after Next returns false, yields
// the zero Statement.
func (it *Iterator) Statement() rdf.Statement {
	if it.pos < 0 || it.pos >= len(it.results) {
		return rdf.Statement{}
	}
	return it.results[it.pos].statement()
}

// Err returns the error, if any, that stopped the last Next call short of a
// normal end-of-results.
func (it *Iterator) Err() error { return it.err }

// Close releases the iterator, allowing Insert to proceed again once every
// live iterator on the model has been closed.
func (it *Iterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	it.m.liveIters--
	return nil
}
