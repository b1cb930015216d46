package functions

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareNumericOrdersByValueNotLexical(t *testing.T) {
	nine := term.NewTypedLiteral("9", "http://www.w3.org/2001/XMLSchema#integer")
	ten := term.NewTypedLiteral("10", "http://www.w3.org/2001/XMLSchema#integer")
	c, ok := Compare(nine, ten)
	require.True(t, ok)
	assert.Negative(t, c)
}

func TestCompareStringsAreLexical(t *testing.T) {
	a := term.NewSimpleLiteral("apple")
	b := term.NewSimpleLiteral("banana")
	c, ok := Compare(a, b)
	require.True(t, ok)
	assert.Negative(t, c)
}

func TestCompareIncompatibleTypesIsTypeError(t *testing.T) {
	n := term.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer")
	s := term.NewSimpleLiteral("1")
	_, ok := Compare(n, s)
	assert.False(t, ok)
}

func TestCompareIRIsIsTypeError(t *testing.T) {
	a, _ := term.NewNamedNode("http://example.org/a")
	b, _ := term.NewNamedNode("http://example.org/b")
	_, ok := Compare(a, b)
	assert.False(t, ok)
}
