package parse

import (
	"io"

	"github.com/arlograph/rdf"
)

// TripleDecoder and QuadDecoder are thin, pull-style wrappers around
// Decoder, mirroring the teacher's root-package TripleDecoder/QuadDecoder
// Decode/DecodeAll shape for callers that want "give me the next
// statement" rather than pushing events at a Sink. They live in this
// package rather than the root one because Decoder (and the Sink they
// drive) is itself defined here; a root-package decoder would need to
// import parse, which parse already imports rdf to build on, so the
// legacy API is layered on top of the unified parser from the same side
// of that dependency instead of forcing a cycle.
//
// Both decoders run the whole source through Decoder.Run on first use,
// buffering every recognized statement, then hand them out one at a time;
// this is a convenience replay, not a second streaming implementation.
type TripleDecoder struct {
	opts  Options
	src   *Source
	env   *rdf.Environment
	stmts []rdf.Statement
	pos   int
	ran   bool
	err   error
}

// NewTripleDecoder returns a TripleDecoder reading r under the given
// syntax (flat-triples or terse-triples; a quad syntax works too, but its
// graph fields are discarded the way the teacher's own TripleDecoder never
// saw them in the first place).
func NewTripleDecoder(r io.Reader, syntax Syntax) *TripleDecoder {
	return &TripleDecoder{
		opts: Options{Syntax: syntax},
		src:  NewSource(r),
		env:  rdf.NewEnvironment(),
	}
}

func (d *TripleDecoder) run() {
	if d.ran {
		return
	}
	d.ran = true
	dec := NewDecoder(d.src, d.opts, rdf.Handlers{
		OnStatement: func(stmt rdf.Statement, _ rdf.StatementFlags) error {
			d.stmts = append(d.stmts, stmt)
			return nil
		},
	}, d.env)
	d.err = dec.Run()
}

// Decode returns the next Triple-shaped Statement (Graph always zero), or
// io.EOF once the source is exhausted.
func (d *TripleDecoder) Decode() (rdf.Statement, error) {
	d.run()
	if d.err != nil {
		return rdf.Statement{}, d.err
	}
	if d.pos >= len(d.stmts) {
		return rdf.Statement{}, io.EOF
	}
	stmt := d.stmts[d.pos]
	stmt.Graph = rdf.Node{}
	d.pos++
	return stmt, nil
}

// DecodeAll decodes and returns every Statement from the source.
func (d *TripleDecoder) DecodeAll() ([]rdf.Statement, error) {
	var out []rdf.Statement
	for {
		s, err := d.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

// QuadDecoder is TripleDecoder's Graph-preserving counterpart, for
// flat-quads/terse-quads syntaxes.
type QuadDecoder struct {
	opts  Options
	src   *Source
	env   *rdf.Environment
	stmts []rdf.Statement
	pos   int
	ran   bool
	err   error
}

// NewQuadDecoder returns a QuadDecoder reading r under the given syntax.
func NewQuadDecoder(r io.Reader, syntax Syntax) *QuadDecoder {
	return &QuadDecoder{
		opts: Options{Syntax: syntax},
		src:  NewSource(r),
		env:  rdf.NewEnvironment(),
	}
}

func (d *QuadDecoder) run() {
	if d.ran {
		return
	}
	d.ran = true
	dec := NewDecoder(d.src, d.opts, rdf.Handlers{
		OnStatement: func(stmt rdf.Statement, _ rdf.StatementFlags) error {
			d.stmts = append(d.stmts, stmt)
			return nil
		},
	}, d.env)
	d.err = dec.Run()
}

// Decode returns the next Statement, Graph included, or io.EOF once the
// source is exhausted.
func (d *QuadDecoder) Decode() (rdf.Statement, error) {
	d.run()
	if d.err != nil {
		return rdf.Statement{}, d.err
	}
	if d.pos >= len(d.stmts) {
		return rdf.Statement{}, io.EOF
	}
	stmt := d.stmts[d.pos]
	d.pos++
	return stmt, nil
}

// DecodeAll decodes and returns every Statement from the source.
func (d *QuadDecoder) DecodeAll() ([]rdf.Statement, error) {
	var out []rdf.Statement
	for {
		s, err := d.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}
