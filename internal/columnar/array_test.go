package columnar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEncodingRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := NewBuilder(mem, ModeValue)

	named, err := term.NewNamedNode("http://example.org/s")
	require.NoError(t, err)
	blank := term.NewBlankNode("b1")
	plain := term.NewSimpleLiteral("hello")
	lang := term.NewLangLiteral("bonjour", "fr")
	typedInt := term.NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer")
	typedDecimal := term.NewTypedLiteral("1.50", "http://www.w3.org/2001/XMLSchema#decimal")
	unknown := term.NewTypedLiteral("xyz", "http://example.org/customType")

	rows := []term.Term{named, blank, plain, lang, typedInt, typedDecimal, unknown}
	for _, r := range rows {
		b.AppendTerm(r)
	}
	arr := b.Finalize()
	require.Equal(t, len(rows), arr.Len())

	for i, want := range rows {
		got := arr.Decode(i)
		assert.Truef(t, want.Eq(got), "row %d: want %v got %v", i, want, got)
	}

	assert.Equal(t, FieldInteger, arr.Field(4))
	assert.Equal(t, FieldDecimal, arr.Field(5))
	assert.Equal(t, FieldOtherLiteral, arr.Field(6))
}

func TestPlainEncodingKeepsLiteralsVerbatim(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := NewPlainBuilder(mem)
	typedInt := term.NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer")
	b.AppendTerm(typedInt)
	arr := b.Finalize()

	assert.Equal(t, FieldOtherLiteral, arr.Field(0))
	got := arr.Decode(0)
	assert.True(t, typedInt.Eq(got))
}

func TestObjectIDRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()
	dict := newFakeDict()

	b := NewBuilder(mem, ModeValue)
	a, _ := term.NewNamedNode("http://example.org/a")
	b.AppendTerm(a)
	arr := b.Finalize()

	ids := EncodeObjectIDs(arr, dict)
	require.Equal(t, 1, ids.Len())
	assert.NotEqual(t, NullObjectID, ids.At(0))

	b2 := NewBuilder(mem, ModeValue)
	decoded := DecodeObjectIDs(ids, dict, b2)
	assert.True(t, a.Eq(decoded.Decode(0)))
}

type fakeDict struct {
	terms []term.Term
}

func newFakeDict() *fakeDict { return &fakeDict{terms: []term.Term{{}}} }

func (d *fakeDict) Intern(t term.Term) ObjectID {
	for i, existing := range d.terms {
		if existing.Eq(t) {
			return ObjectID(i)
		}
	}
	d.terms = append(d.terms, t)
	return ObjectID(len(d.terms) - 1)
}

func (d *fakeDict) Lookup(id ObjectID) (term.Term, bool) {
	if int(id) >= len(d.terms) {
		return term.Term{}, false
	}
	return d.terms[id], true
}

func TestSortKeyOrdersTiersAndNumericValues(t *testing.T) {
	unbound := SortKey(term.Term{})
	blank := SortKey(term.NewBlankNode("x"))
	named, _ := term.NewNamedNode("http://example.org/a")
	namedKey := SortKey(named)
	lit := SortKey(term.NewSimpleLiteral("x"))

	assert.True(t, lessBytes(unbound, blank))
	assert.True(t, lessBytes(blank, namedKey))
	assert.True(t, lessBytes(namedKey, lit))

	one := SortKey(term.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer"))
	two := SortKey(term.NewTypedLiteral("2", "http://www.w3.org/2001/XMLSchema#integer"))
	negOne := SortKey(term.NewTypedLiteral("-1", "http://www.w3.org/2001/XMLSchema#integer"))
	assert.True(t, lessBytes(negOne, one))
	assert.True(t, lessBytes(one, two))
}

func lessBytes(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
