package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

func internerFor(ids map[string]uint32) Interner {
	return func(t term.Term) uint32 { return ids[t.Named.IRI] }
}

func TestToLogicalPathLink(t *testing.T) {
	p, _ := term.NewNamedNode("http://example.org/p")
	intern := internerFor(map[string]uint32{"http://example.org/p": 9})
	got := toLogicalPath(PathLink{Predicate: p}, intern)
	iri, ok := got.(logical.PathIRI)
	require.True(t, ok)
	assert.Equal(t, uint32(9), iri.ID)
}

func TestToLogicalPathInverseWraps(t *testing.T) {
	p, _ := term.NewNamedNode("http://example.org/p")
	intern := internerFor(map[string]uint32{"http://example.org/p": 1})
	got := toLogicalPath(PathInv{Path: PathLink{Predicate: p}}, intern)
	_, ok := got.(logical.PathInverse)
	assert.True(t, ok)
}

func TestToLogicalPathSeqAltStarPlusOpt(t *testing.T) {
	p, _ := term.NewNamedNode("http://example.org/p")
	q, _ := term.NewNamedNode("http://example.org/q")
	intern := internerFor(map[string]uint32{"http://example.org/p": 1, "http://example.org/q": 2})

	seq := toLogicalPath(PathSeq{Left: PathLink{Predicate: p}, Right: PathLink{Predicate: q}}, intern)
	_, ok := seq.(logical.PathSeq)
	assert.True(t, ok)

	alt := toLogicalPath(PathAlt{Left: PathLink{Predicate: p}, Right: PathLink{Predicate: q}}, intern)
	_, ok = alt.(logical.PathAlt)
	assert.True(t, ok)

	opt := toLogicalPath(PathOpt{Path: PathLink{Predicate: p}}, intern)
	_, ok = opt.(logical.PathZeroOrOne)
	assert.True(t, ok)

	star := toLogicalPath(PathStar{Path: PathLink{Predicate: p}}, intern)
	_, ok = star.(logical.PathZeroOrMore)
	assert.True(t, ok)

	plus := toLogicalPath(PathPlus{Path: PathLink{Predicate: p}}, intern)
	_, ok = plus.(logical.PathOneOrMore)
	assert.True(t, ok)
}

func TestToLogicalPathNegatedPropertySetInternsBothSides(t *testing.T) {
	p, _ := term.NewNamedNode("http://example.org/p")
	q, _ := term.NewNamedNode("http://example.org/q")
	intern := internerFor(map[string]uint32{"http://example.org/p": 5, "http://example.org/q": 6})
	got := toLogicalPath(PathNPS{Forward: []term.Term{p}, Inverse: []term.Term{q}}, intern)
	nps, ok := got.(logical.PathNegatedPropertySet)
	require.True(t, ok)
	assert.Equal(t, []uint32{5}, nps.Forward)
	assert.Equal(t, []uint32{6}, nps.Inverse)
}

func TestToPositionBindingVariableVsTerm(t *testing.T) {
	p, _ := term.NewNamedNode("http://example.org/p")
	intern := internerFor(map[string]uint32{"http://example.org/p": 3})

	varBinding := toPositionBinding(V("x"), intern)
	assert.True(t, varBinding.IsVariable())

	constBinding := toPositionBinding(T(p), intern)
	assert.True(t, constBinding.IsConst())
	assert.Equal(t, uint32(3), *constBinding.Const)
}
