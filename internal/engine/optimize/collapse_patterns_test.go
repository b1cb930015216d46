package optimize

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapsePatternsMergesCompatibleScans(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x"), Predicate: logical.BindConst(1), Object: logical.BindVar("y")}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x"), Predicate: logical.BindVar("p"), Object: logical.BindConst(2)}}
	join := &logical.Join{Left: left, Right: right}

	out := CollapsePatterns(join)
	scan, ok := out.(*logical.Scan)
	require.True(t, ok)
	assert.Equal(t, "x", scan.Pattern.Subject.Variable)
	assert.True(t, scan.Pattern.Predicate.IsConst())
	assert.True(t, scan.Pattern.Object.IsConst())
}

func TestCollapsePatternsLeavesConflictingConstantsAsJoin(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Predicate: logical.BindConst(1)}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Predicate: logical.BindConst(2)}}
	join := &logical.Join{Left: left, Right: right}

	out := CollapsePatterns(join)
	_, ok := out.(*logical.Join)
	assert.True(t, ok)
}

func TestCollapsePatternsRecursesThroughFilter(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x")}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x")}}
	n := &logical.Filter{Child: &logical.Join{Left: left, Right: right}}

	out := CollapsePatterns(n)
	f := out.(*logical.Filter)
	_, ok := f.Child.(*logical.Scan)
	assert.True(t, ok)
}
