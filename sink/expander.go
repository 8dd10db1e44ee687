package sink

import "github.com/arlograph/rdf"

// Expander rewrites every statement's nodes against an Environment before
// forwarding (prefixed names to absolute IRIs, relative IRIs resolved
// against base, prefixed literal datatypes expanded); base and prefix
// events update the same Environment so later statements see the prefixes
// and base they declare, and end events forward unchanged.
type Expander struct {
	Next rdf.Sink
	Env  *rdf.Environment
}

// NewExpander returns an Expander using env to rewrite nodes and forwarding
// the result to next.
func NewExpander(next rdf.Sink, env *rdf.Environment) *Expander {
	return &Expander{Next: next, Env: env}
}

// OnEvent implements rdf.Sink.
func (x *Expander) OnEvent(e rdf.Event) error {
	switch e.Kind {
	case rdf.EventBase:
		if err := x.Env.SetBase(e.Base); err != nil {
			return err
		}
		return x.Next.OnEvent(e)
	case rdf.EventPrefix:
		if err := x.Env.SetPrefix(e.PrefixName, e.PrefixURI); err != nil {
			return err
		}
		return x.Next.OnEvent(e)
	case rdf.EventStatement:
		stmt := e.Statement
		if s, ok := x.Env.Expand(stmt.Subject); ok {
			stmt.Subject = s
		}
		if p, ok := x.Env.Expand(stmt.Predicate); ok {
			stmt.Predicate = p
		}
		if o, ok := x.Env.Expand(stmt.Object); ok {
			stmt.Object = o
		}
		if !stmt.Graph.IsZero() {
			if g, ok := x.Env.Expand(stmt.Graph); ok {
				stmt.Graph = g
			}
		}
		return x.Next.OnEvent(rdf.NewStatementEvent(stmt, e.Flags))
	default:
		return x.Next.OnEvent(e)
	}
}
