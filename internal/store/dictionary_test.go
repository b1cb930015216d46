package store

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryInternIsStable(t *testing.T) {
	d := NewDictionary()
	a := term.NewSimpleLiteral("hello")

	id1 := d.Intern(a)
	id2 := d.Intern(a)
	assert.Equal(t, id1, id2)

	got, ok := d.Lookup(id1)
	require.True(t, ok)
	assert.True(t, got.Eq(a))
}

func TestDictionaryDistinguishesKinds(t *testing.T) {
	d := NewDictionary()
	iri, err := term.NewNamedNode("http://example.org/x")
	require.NoError(t, err)
	blank := term.NewBlankNode("x")
	lit := term.NewSimpleLiteral("x")

	ids := map[uint32]bool{}
	for _, tm := range []term.Term{iri, blank, lit} {
		id := uint32(d.Intern(tm))
		assert.False(t, ids[id])
		ids[id] = true
	}
	assert.Equal(t, 4, d.Len()) // 3 terms + reserved null at index 0
}

func TestDictionaryLookupUnknownID(t *testing.T) {
	d := NewDictionary()
	_, ok := d.Lookup(999)
	assert.False(t, ok)
}
