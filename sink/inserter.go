// Package sink implements the pass-through event transforms of C11:
// Inserter, Filter, Expander and Normaliser. Each is a small rdf.Sink
// wrapping another rdf.Sink (except Inserter, which terminates the chain
// into a model.Model), modeled on the teacher's single-struct,
// several-forwarding-methods shape for its own encoder/decoder types.
package sink

import (
	"github.com/arlograph/rdf"
	"github.com/arlograph/rdf/model"
)

// Inserter is a terminal rdf.Sink that builds an model.Model: base and
// prefix events update a held Environment, statement events are expanded
// against that environment, interned, and inserted into the model, and end
// events are ignored (there is nothing for an in-memory store to do when an
// anonymous node's property list closes).
type Inserter struct {
	Model *model.Model
	Env   *rdf.Environment
}

// NewInserter returns an Inserter writing into m, using env to resolve
// prefixed names and relative IRIs (env is typically fresh, since the
// events themselves carry the base/prefix directives that populate it).
func NewInserter(m *model.Model, env *rdf.Environment) *Inserter {
	return &Inserter{Model: m, Env: env}
}

// OnEvent implements rdf.Sink.
func (ins *Inserter) OnEvent(e rdf.Event) error {
	switch e.Kind {
	case rdf.EventBase:
		return ins.Env.SetBase(e.Base)
	case rdf.EventPrefix:
		return ins.Env.SetPrefix(e.PrefixName, e.PrefixURI)
	case rdf.EventStatement:
		stmt := e.Statement
		s, ok := ins.Env.Expand(stmt.Subject)
		if !ok {
			return rdf.NewStatusError(rdf.StatusBadArgument, "sink: cannot expand subject %v", stmt.Subject)
		}
		p, ok := ins.Env.Expand(stmt.Predicate)
		if !ok {
			return rdf.NewStatusError(rdf.StatusBadArgument, "sink: cannot expand predicate %v", stmt.Predicate)
		}
		o, ok := ins.Env.Expand(stmt.Object)
		if !ok {
			return rdf.NewStatusError(rdf.StatusBadArgument, "sink: cannot expand object %v", stmt.Object)
		}
		g := stmt.Graph
		if !g.IsZero() {
			expandedG, ok := ins.Env.Expand(g)
			if !ok {
				return rdf.NewStatusError(rdf.StatusBadArgument, "sink: cannot expand graph %v", g)
			}
			g = expandedG
		}
		return ins.Model.Add(s, p, o, g)
	case rdf.EventEnd:
		return nil
	default:
		return nil
	}
}
