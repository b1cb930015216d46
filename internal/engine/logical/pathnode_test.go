package logical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPathIRIIsScan(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathIRI{ID: 5}}.Expand(NewVarGen())
	scan, ok := n.(*Scan)
	require.True(t, ok)
	assert.True(t, scan.Pattern.Predicate.IsConst())
	assert.Equal(t, uint32(5), *scan.Pattern.Predicate.Const)
}

func TestExpandPathInverseSwapsSubjectObject(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathInverse{Path: PathIRI{ID: 1}}}.Expand(NewVarGen())
	scan := n.(*Scan)
	assert.Equal(t, "o", scan.Pattern.Subject.Variable)
	assert.Equal(t, "s", scan.Pattern.Object.Variable)
}

func TestExpandPathSeqIntroducesFreshJoinVariable(t *testing.T) {
	g := NewVarGen()
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathSeq{Left: PathIRI{ID: 1}, Right: PathIRI{ID: 2}}}.Expand(g)
	join, ok := n.(*Join)
	require.True(t, ok)
	left := join.Left.(*Scan)
	right := join.Right.(*Scan)
	assert.Equal(t, left.Pattern.Object.Variable, right.Pattern.Subject.Variable)
	assert.NotEmpty(t, left.Pattern.Object.Variable)
}

func TestExpandPathAltIsUnion(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathAlt{Left: PathIRI{ID: 1}, Right: PathIRI{ID: 2}}}.Expand(NewVarGen())
	_, ok := n.(*Union)
	assert.True(t, ok)
}

func TestExpandPathZeroOrOneIsUnionWithExtendEquals(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathZeroOrOne{Path: PathIRI{ID: 1}}}.Expand(NewVarGen())
	u := n.(*Union)
	_, ok := u.Right.(*ExtendEquals)
	assert.True(t, ok)
}

func TestExpandPathZeroOrMoreIsFixedPointClosure(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathZeroOrMore{Path: PathIRI{ID: 1}}}.Expand(NewVarGen())
	fp := n.(*FixedPointClosure)
	assert.True(t, fp.IncludeEmpty)
}

func TestExpandNegatedPropertySetForwardOnly(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathNegatedPropertySet{Forward: []uint32{1, 2}}}.Expand(NewVarGen())
	scan, ok := n.(*Scan)
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 2}, scan.Except)
}

func TestExpandNegatedPropertySetBothDirectionsIsUnion(t *testing.T) {
	n := PathNode{Subject: BindVar("s"), Object: BindVar("o"), Path: PathNegatedPropertySet{Forward: []uint32{1}, Inverse: []uint32{2}}}.Expand(NewVarGen())
	_, ok := n.(*Union)
	assert.True(t, ok)
}
