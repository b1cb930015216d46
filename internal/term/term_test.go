package term

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/rdfio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNamedNodeValidation(t *testing.T) {
	_, err := NewNamedNode("")
	assert.Error(t, err)

	_, err = NewNamedNode("http://example.org/with a space")
	assert.Error(t, err)

	n, err := NewNamedNode("http://example.org/foo")
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/foo>", n.String())
}

func TestTermEq(t *testing.T) {
	a := NewSimpleLiteral("hello")
	b := NewSimpleLiteral("hello")
	c := NewLangLiteral("hello", "en")
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(c))

	bn1 := NewBlankNode("x")
	bn2 := NewBlankNode("x")
	bn3 := NewBlankNode("y")
	assert.True(t, bn1.Eq(bn2))
	assert.False(t, bn1.Eq(bn3))
}

func TestFromWireToWireRoundTrip(t *testing.T) {
	w := rdfio.Term{Kind: rdfio.TermLiteral, Value: "42", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}
	tm := FromWire(w)
	assert.Equal(t, KindLiteral, tm.Kind)
	assert.Equal(t, "42", tm.Literal.Lexical)
	back := tm.ToWire()
	assert.Equal(t, w, back)
}

func TestIsNumeric(t *testing.T) {
	num := NewTypedLiteral("1.5", "http://www.w3.org/2001/XMLSchema#decimal")
	assert.True(t, num.IsNumeric())

	str := NewSimpleLiteral("hello")
	assert.False(t, str.IsNumeric())

	iri, _ := NewNamedNode("http://example.org/x")
	assert.False(t, iri.IsNumeric())
}
