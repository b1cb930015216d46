package graphfusion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNQuadsCodecRoundTripsThroughLoadAndDump(t *testing.T) {
	a := iri(t, "http://example.org/a")
	p := iri(t, "http://example.org/p")
	g := iri(t, "http://example.org/g")

	var buf bytes.Buffer
	require.NoError(t, NQuadsCodec{}.Serialize(&buf, []Quad{
		{Subject: a, Predicate: p, Object: intLit("1")},
		{Subject: a, Predicate: p, Object: intLit("2"), Graph: &g},
	}))

	s := New()
	n, err := s.LoadFromReader(NQuadsCodec{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, s.Contains(Quad{Subject: a, Predicate: p, Object: intLit("1")}))
	assert.True(t, s.Contains(Quad{Subject: a, Predicate: p, Object: intLit("2"), Graph: &g}))
}

func TestNTriplesCodecRoundTripsDefaultGraphOnly(t *testing.T) {
	a := iri(t, "http://example.org/a")
	p := iri(t, "http://example.org/p")
	b := iri(t, "http://example.org/b")

	var buf bytes.Buffer
	require.NoError(t, NTriplesCodec{}.Serialize(&buf, []Quad{{Subject: a, Predicate: p, Object: b}}))

	s := New()
	n, err := s.LoadFromReader(NTriplesCodec{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, s.Contains(Quad{Subject: a, Predicate: p, Object: b}))
}
