package parse

import (
	"bufio"
	"io"
	"strings"

	"github.com/arlograph/rdf/internal/chars"
)

// pageSize is the minimum read-ahead buffer size for a reader-backed
// Source, matching the design's "≥ page size 4 KiB" requirement.
const pageSize = 4096

// Source is a buffered, pull-based byte-and-rune reader with 1-rune
// lookahead and line/column tracking, modeled on the teacher's lexer feed
// loop in lex.go generalized from "read one line at a time" to a paged
// buffer, because the terse syntaxes are not line-oriented the way
// flat-triples/flat-quads are: a triple-quoted literal can span many
// lines, so a per-line lexer has to special-case re-feeding (as the
// teacher's lexer.feed(overwrite bool) does); a true pull source makes
// that special case disappear.
//
// Source never spawns a goroutine: every read happens synchronously on
// the calling goroutine, matching the module's single-threaded
// cooperative concurrency model.
type Source struct {
	r    *bufio.Reader
	src  io.Reader
	line int
	col  int

	peeked  rune
	peekSz  int
	hasPeek bool

	closed bool
}

// NewSource wraps r in a Source, skipping a leading UTF-8 byte-order mark
// if present.
func NewSource(r io.Reader) *Source {
	s := &Source{r: bufio.NewReaderSize(r, pageSize), src: r, line: 1, col: 1}
	s.skipBOM()
	return s
}

// NewSourceString wraps a string in a Source. It reads the string through
// the same paged buffer as NewSource; there is no separate page-size-1 mode.
func NewSourceString(s string) *Source { return NewSource(strings.NewReader(s)) }

func (s *Source) skipBOM() {
	b, err := s.r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		s.r.Discard(3)
	}
}

// Peek returns the next rune without consuming it, or chars.RuneError and
// size 0 at end of input.
func (s *Source) Peek() (r rune, size int) {
	if s.hasPeek {
		return s.peeked, s.peekSz
	}
	buf, _ := s.r.Peek(4)
	if len(buf) == 0 {
		s.hasPeek, s.peeked, s.peekSz = true, chars.RuneError, 0
		return s.peeked, 0
	}
	r, size = chars.DecodeRune(buf)
	s.hasPeek, s.peeked, s.peekSz = true, r, size
	return r, size
}

// Advance consumes and returns the rune Peek last reported, updating line
// and column. Advancing past end of input is a no-op returning size 0.
func (s *Source) Advance() (r rune, size int) {
	r, size = s.Peek()
	s.hasPeek = false
	if size == 0 {
		return r, 0
	}
	s.r.Discard(size)
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r, size
}

// PeekAt returns the rune n positions ahead of the current read position
// (n=0 is equivalent to Peek) without consuming anything. It backs the
// lexer's multi-rune lookahead, such as telling a trailing '.' that ends a
// statement apart from a '.' inside a numeric literal.
func (s *Source) PeekAt(n int) (r rune, size int) {
	if n == 0 {
		return s.Peek()
	}
	buf, _ := s.r.Peek(4*(n+1) + 4)
	off := 0
	for i := 0; i <= n; i++ {
		if off >= len(buf) {
			return chars.RuneError, 0
		}
		rr, sz := chars.DecodeRune(buf[off:])
		if sz == 0 {
			return chars.RuneError, 0
		}
		if i == n {
			return rr, sz
		}
		off += sz
	}
	return chars.RuneError, 0
}

// AtEOF reports whether the next Peek would report end of input.
func (s *Source) AtEOF() bool {
	_, size := s.Peek()
	return size == 0
}

// Line returns the current 1-based line number.
func (s *Source) Line() int { return s.line }

// Column returns the current 1-based column number.
func (s *Source) Column() int { return s.col }

// Close releases the underlying reader if it implements io.Closer.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
