package model

import "github.com/arlograph/rdf"

// field names one of the four quad positions a key ordering can sort by.
type field uint8

const (
	fieldS field = iota
	fieldP
	fieldO
	fieldG
)

func (f field) get(r record) rdf.Node {
	switch f {
	case fieldS:
		return r.s
	case fieldP:
		return r.p
	case fieldO:
		return r.o
	default:
		return r.g
	}
}

// ordering is one of the up to twelve fixed field orderings §4.7 describes:
// the six permutations of {subject, predicate, object}, each with the graph
// field compared first ("graph-leading", used for graph-qualified queries)
// or last ("graph-trailing", used when graph is equal-or-wildcard). Graph is
// always present somewhere in the comparison — trailing rather than absent —
// so that two statements differing only in Graph still sort to distinct,
// individually addressable positions in a non-graph-leading index instead of
// colliding as equal keys; see DESIGN.md's note on this Open Question.
type ordering struct {
	Flag        IndexFlag
	Name        string
	Fields      [4]field // full 4-field compare order, for total uniqueness
	GraphLeads  bool
	PrimaryLen  int // length of the {S,P,O} prefix before Fields[...] reaches G, for graph-trailing orderings
}

// IndexFlag selects which of the twelve orderings a Model maintains.
// IndexSPO is always implied, per §4.7's "the subject-predicate-object
// index is mandatory."
type IndexFlag uint16

const (
	IndexSPO IndexFlag = 1 << iota
	IndexSOP
	IndexPSO
	IndexPOS
	IndexOSP
	IndexOPS
	IndexGSPO
	IndexGSOP
	IndexGPSO
	IndexGPOS
	IndexGOSP
	IndexGOPS

	// IndexAll enables every one of the twelve orderings.
	IndexAll = IndexSPO | IndexSOP | IndexPSO | IndexPOS | IndexOSP | IndexOPS |
		IndexGSPO | IndexGSOP | IndexGPSO | IndexGPOS | IndexGOSP | IndexGOPS
	// IndexDefault enables the mandatory SPO index plus the graph-leading
	// GSPO index, a reasonable default for mixed pattern/graph queries
	// without paying for all twelve orderings.
	IndexDefault = IndexSPO | IndexGSPO
)

// orderings lists all twelve, in a fixed canonical order that doubles as the
// tie-break order the query planner walks when more than one ordering
// qualifies for a pattern.
var orderings = []ordering{
	{IndexSPO, "spo", [4]field{fieldS, fieldP, fieldO, fieldG}, false, 3},
	{IndexSOP, "sop", [4]field{fieldS, fieldO, fieldP, fieldG}, false, 3},
	{IndexPSO, "pso", [4]field{fieldP, fieldS, fieldO, fieldG}, false, 3},
	{IndexPOS, "pos", [4]field{fieldP, fieldO, fieldS, fieldG}, false, 3},
	{IndexOSP, "osp", [4]field{fieldO, fieldS, fieldP, fieldG}, false, 3},
	{IndexOPS, "ops", [4]field{fieldO, fieldP, fieldS, fieldG}, false, 3},
	{IndexGSPO, "gspo", [4]field{fieldG, fieldS, fieldP, fieldO}, true, 3},
	{IndexGSOP, "gsop", [4]field{fieldG, fieldS, fieldO, fieldP}, true, 3},
	{IndexGPSO, "gpso", [4]field{fieldG, fieldP, fieldS, fieldO}, true, 3},
	{IndexGPOS, "gpos", [4]field{fieldG, fieldP, fieldO, fieldS}, true, 3},
	{IndexGOSP, "gosp", [4]field{fieldG, fieldO, fieldS, fieldP}, true, 3},
	{IndexGOPS, "gops", [4]field{fieldG, fieldO, fieldP, fieldS}, true, 3},
}

func (o ordering) less(a, b record) bool {
	for _, f := range o.Fields {
		c := rdf.Compare(f.get(a), f.get(b))
		if c != 0 {
			return c < 0
		}
	}
	return false
}

// bitsOf reports the {S,P,O} bound-ness bitmask (bit 0 = subject, 1 =
// predicate, 2 = object) and whether graph is bound, for a query pattern.
func bitsOf(pattern record) (spo uint8, graphBound bool) {
	if !pattern.s.IsZero() {
		spo |= 1
	}
	if !pattern.p.IsZero() {
		spo |= 2
	}
	if !pattern.o.IsZero() {
		spo |= 4
	}
	return spo, !pattern.g.IsZero()
}

// planMode classifies how a chosen ordering is walked for a given pattern.
type planMode uint8

const (
	modeFullScan planMode = iota
	modeFilterRange
	modeRange
)

// plan is the result of query planning: which ordering to walk, how many of
// its leading fields are covered by the pattern's bound fields (the
// contiguous run that can be turned into a btree range scan), and whether
// that run covers every bound field (modeRange) or only some of them
// (modeFilterRange, requiring a post-range Matches filter) or none at all
// (modeFullScan, walking the mandatory index start to finish).
type plan struct {
	ord       ordering
	prefixLen int
	mode      planMode
}

// choosePlan selects the best enabled ordering for pattern, per §4.7: prefer
// an ordering whose leading fields are exactly the bound fields (a
// contiguous range scan); otherwise the ordering whose leading run of bound
// fields is longest (a filtered range scan); otherwise a full scan of the
// mandatory SPO index.
func choosePlan(enabled IndexFlag, pattern record) plan {
	spoBits, graphBound := bitsOf(pattern)
	wantSet := func(o ordering) map[field]bool {
		want := map[field]bool{}
		if spoBits&1 != 0 {
			want[fieldS] = true
		}
		if spoBits&2 != 0 {
			want[fieldP] = true
		}
		if spoBits&4 != 0 {
			want[fieldO] = true
		}
		if graphBound {
			want[fieldG] = true
		}
		return want
	}

	bestFilter := plan{ord: mandatorySPO(), prefixLen: 0, mode: modeFullScan}
	bestFilterLen := -1

	for _, o := range orderings {
		if enabled&o.Flag == 0 {
			continue
		}
		want := wantSet(o)
		if len(want) == 0 {
			continue
		}
		run := 0
		for _, f := range o.Fields {
			if !want[f] {
				break
			}
			run++
		}
		if run == 0 {
			continue
		}
		if run == len(want) {
			// Exact leading-prefix match: every bound field (and only bound
			// fields) occupies the ordering's leading run, so the whole
			// pattern narrows to one contiguous range with no filtering left.
			return plan{ord: o, prefixLen: run, mode: modeRange}
		}
		if run > bestFilterLen {
			bestFilterLen = run
			bestFilter = plan{ord: o, prefixLen: run, mode: modeFilterRange}
		}
	}
	if bestFilterLen > 0 {
		return bestFilter
	}
	return plan{ord: mandatorySPO(), prefixLen: 0, mode: modeFullScan}
}

func mandatorySPO() ordering { return orderings[0] }
