// Package cmdspec names the interface of the command-line filter program
// that reads one RDF document and writes another: an external collaborator
// specified only by its interface, not implemented here.
package cmdspec

import "io"

// Syntax names one of the four textual syntaxes a Flags value selects for
// input or output.
type Syntax string

const (
	SyntaxFlatTriples  Syntax = "nt"
	SyntaxFlatQuads    Syntax = "nq"
	SyntaxTerseTriples Syntax = "ttl"
	SyntaxTerseQuads   Syntax = "trig"
)

// Flags names every command-line flag the filter program exposes.
type Flags struct {
	InputSyntax  Syntax
	OutputSyntax Syntax

	// RelativeRoot bounds relative-URI output, per Relativize's root
	// parameter: up-references never climb above it.
	RelativeRoot string

	// BlankPrefixAdd is prepended to every blank node label read from
	// input, to avoid clashes when merging multiple documents.
	BlankPrefixAdd string
	// BlankPrefixChop is stripped from every blank node label, the
	// inverse operation, applied before BlankPrefixAdd.
	BlankPrefixChop string

	StackSize int

	Strict bool
	ASCII  bool

	// BulkRead/BulkWrite select whole-document buffering versus
	// incremental chunked I/O.
	BulkRead  bool
	BulkWrite bool
}

// Runner is the shape a future CLI binary implements: read exactly one
// document from in, per Flags, and write exactly one document to out.
type Runner interface {
	Run(flags Flags, in io.Reader, out io.Writer) error
}
