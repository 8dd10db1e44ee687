package parse

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleDecoderDecodeDropsGraph(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	d := NewTripleDecoder(strings.NewReader(input), SyntaxFlatQuads)

	stmt, err := d.Decode()
	require.NoError(t, err)
	assert.True(t, stmt.Graph.IsZero())
	assert.Equal(t, "http://example.org/s", stmt.Subject.Value())

	_, err = d.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestTripleDecoderDecodeAll(t *testing.T) {
	input := "<http://example.org/s1> <http://example.org/p> <http://example.org/o1> .\n" +
		"<http://example.org/s2> <http://example.org/p> <http://example.org/o2> .\n"
	d := NewTripleDecoder(strings.NewReader(input), SyntaxFlatTriples)

	stmts, err := d.DecodeAll()
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "http://example.org/s1", stmts[0].Subject.Value())
	assert.Equal(t, "http://example.org/s2", stmts[1].Subject.Value())
}

func TestQuadDecoderPreservesGraph(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	d := NewQuadDecoder(strings.NewReader(input), SyntaxFlatQuads)

	stmt, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/g", stmt.Graph.Value())

	_, err = d.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestQuadDecoderRunsOnlyOnce(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"
	d := NewQuadDecoder(strings.NewReader(input), SyntaxFlatTriples)

	first, err := d.DecodeAll()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A second DecodeAll after exhaustion returns no further statements
	// rather than re-running the source, matching the buffered-replay
	// contract.
	second, err := d.DecodeAll()
	require.NoError(t, err)
	assert.Empty(t, second)
}
