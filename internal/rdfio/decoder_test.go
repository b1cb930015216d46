package rdfio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleDecoderBasic(t *testing.T) {
	in := `<http://example.com/a> <http://example.com/p> <http://example.com/b> .
# a comment, skipped
<http://example.com/a> <http://example.com/p> "hello"@en .
<http://example.com/a> <http://example.com/p> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:b1 <http://example.com/p> _:b2 .
`
	d := NewTripleDecoder(strings.NewReader(in))
	ts, err := d.DecodeAll()
	require.NoError(t, err)
	require.Len(t, ts, 4)

	assert.Equal(t, Term{Kind: TermIRI, Value: "http://example.com/a"}, ts[0].Subj)
	assert.Equal(t, Term{Kind: TermIRI, Value: "http://example.com/b"}, ts[0].Obj)

	assert.Equal(t, "hello", ts[1].Obj.Value)
	assert.Equal(t, "en", ts[1].Obj.Lang)
	assert.Equal(t, rdfLangString, ts[1].Obj.Datatype)

	assert.Equal(t, "1", ts[2].Obj.Value)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", ts[2].Obj.Datatype)

	assert.Equal(t, Term{Kind: TermBlank, Value: "b1"}, ts[3].Subj)
	assert.Equal(t, Term{Kind: TermBlank, Value: "b2"}, ts[3].Obj)
}

func TestTripleDecoderEOF(t *testing.T) {
	d := NewTripleDecoder(strings.NewReader(""))
	_, err := d.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTripleDecoderSyntaxError(t *testing.T) {
	d := NewTripleDecoder(strings.NewReader(`<http://example.com/a> <http://example.com/p> .` + "\n"))
	_, err := d.Decode()
	assert.Error(t, err)
}

func TestQuadDecoderDefaultAndNamedGraph(t *testing.T) {
	in := `<http://example.com/a> <http://example.com/p> <http://example.com/b> .
<http://example.com/a> <http://example.com/p> <http://example.com/c> <http://example.com/g1> .
`
	d := NewQuadDecoder(strings.NewReader(in))
	qs, err := d.DecodeAll()
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "", qs[0].Graph.Value)
	assert.Equal(t, "http://example.com/g1", qs[1].Graph.Value)
}

func TestTripleEncoderRoundTrip(t *testing.T) {
	in := `<http://example.com/a> <http://example.com/p> "hello, \"world\""@en .
`
	ts, err := NewTripleDecoder(strings.NewReader(in)).DecodeAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := NewTripleEncoder(&buf)
	for _, tr := range ts {
		require.NoError(t, enc.Encode(tr))
	}
	require.NoError(t, enc.Close())

	ts2, err := NewTripleDecoder(strings.NewReader(buf.String())).DecodeAll()
	require.NoError(t, err)
	assert.Equal(t, ts, ts2)
}

func TestQuadEncoderRoundTrip(t *testing.T) {
	q := Quad{
		Graph:  Term{Kind: TermIRI, Value: "http://example.com/g"},
		Triple: Triple{Subj: Term{Kind: TermIRI, Value: "http://example.com/a"}, Pred: Term{Kind: TermIRI, Value: "http://example.com/p"}, Obj: Term{Kind: TermLiteral, Value: "1", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}},
	}
	var buf bytes.Buffer
	enc := NewQuadEncoder(&buf)
	require.NoError(t, enc.Encode(q))
	require.NoError(t, enc.Close())

	qs, err := NewQuadDecoder(strings.NewReader(buf.String())).DecodeAll()
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, q, qs[0])
}
