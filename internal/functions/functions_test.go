package functions

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeTests(t *testing.T) {
	n, _ := term.NewNamedNode("http://example.org/x")
	assert.True(t, IsIRI(n))
	assert.True(t, IsBlank(term.NewBlankNode("b")))
	assert.True(t, IsLiteral(term.NewSimpleLiteral("s")))
	assert.True(t, IsNumeric(term.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer")))
}

func TestNumericPromotionOnAdd(t *testing.T) {
	intLit := term.NewTypedLiteral("2", "http://www.w3.org/2001/XMLSchema#integer")
	dec := term.NewTypedLiteral("1.5", "http://www.w3.org/2001/XMLSchema#decimal")
	r, ok := Add(intLit, dec)
	require.True(t, ok)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#decimal", r.Literal.Datatype)
	assert.Equal(t, "3.5", r.Literal.Lexical)
}

func TestDivisionByZeroMasksRow(t *testing.T) {
	one := term.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer")
	zero := term.NewTypedLiteral("0", "http://www.w3.org/2001/XMLSchema#integer")
	_, ok := Div(one, zero)
	assert.False(t, ok)
}

func TestEBVRules(t *testing.T) {
	v, ok := EBV(term.NewTypedLiteral("true", "http://www.w3.org/2001/XMLSchema#boolean"))
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = EBV(term.NewSimpleLiteral(""))
	assert.True(t, ok)
	assert.False(t, v)

	n, _ := term.NewNamedNode("http://example.org/x")
	_, ok = EBV(n)
	assert.False(t, ok)
}

func TestStrFunctions(t *testing.T) {
	s := term.NewSimpleLiteral("hello world")
	r, ok := StrLen(s)
	require.True(t, ok)
	assert.Equal(t, "11", r.Literal.Lexical)

	sub, ok := Substr(s, 1, 5, true)
	require.True(t, ok)
	assert.Equal(t, "hello", sub.Literal.Lexical)

	up, _ := UCase(s)
	assert.Equal(t, "HELLO WORLD", up.Literal.Lexical)

	b, ok := StrStarts(s, term.NewSimpleLiteral("hello"))
	require.True(t, ok)
	assert.True(t, b)
}

func TestConcatPreservesSharedLanguage(t *testing.T) {
	a := term.NewLangLiteral("bon", "fr")
	b := term.NewLangLiteral("jour", "fr")
	r, ok := Concat([]term.Term{a, b})
	require.True(t, ok)
	assert.Equal(t, "bonjour", r.Literal.Lexical)
	assert.Equal(t, "fr", r.Literal.Language)
}

func TestRegexAndReplace(t *testing.T) {
	text := term.NewSimpleLiteral("foobar")
	ok1, ok := Regex(text, term.NewSimpleLiteral("^foo"), term.Term{}, false)
	require.True(t, ok)
	assert.True(t, ok1)

	replaced, ok := Replace(text, term.NewSimpleLiteral("o+"), term.NewSimpleLiteral("0"), term.Term{}, false)
	require.True(t, ok)
	assert.Equal(t, "f0bar", replaced.Literal.Lexical)
}

func TestCastIntegerToBoolean(t *testing.T) {
	zero := term.NewTypedLiteral("0", "http://www.w3.org/2001/XMLSchema#integer")
	r, ok := Cast(CastBoolean, zero)
	require.True(t, ok)
	assert.Equal(t, "false", r.Literal.Lexical)
}

func TestAggregateCountSumMinMax(t *testing.T) {
	count := NewCount(false)
	sum := NewSum()
	min := NewMin()
	max := NewMax()
	vals := []term.Term{
		term.NewTypedLiteral("3", "http://www.w3.org/2001/XMLSchema#integer"),
		term.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer"),
		term.NewTypedLiteral("2", "http://www.w3.org/2001/XMLSchema#integer"),
	}
	for _, v := range vals {
		count.Add(v, true)
		sum.Add(v, true)
		min.Add(v, true)
		max.Add(v, true)
	}
	assert.Equal(t, "3", count.Result().Literal.Lexical)
	assert.Equal(t, "6", sum.Result().Literal.Lexical)
	assert.Equal(t, "1", min.Result().Literal.Lexical)
	assert.Equal(t, "3", max.Result().Literal.Lexical)
}

func TestIsCompatibleAndSharesBoundVariable(t *testing.T) {
	a := Solution{"x": term.NewSimpleLiteral("1")}
	b := Solution{"x": term.NewSimpleLiteral("1"), "y": term.NewSimpleLiteral("2")}
	c := Solution{"x": term.NewSimpleLiteral("different")}

	assert.True(t, IsCompatible(a, b))
	assert.False(t, IsCompatible(a, c))
	assert.True(t, SharesBoundVariable(a, b))

	d := Solution{"z": term.NewSimpleLiteral("3")}
	assert.False(t, SharesBoundVariable(a, d))
}
