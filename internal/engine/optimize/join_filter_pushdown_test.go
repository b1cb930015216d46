package optimize

import (
	"testing"

	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpr struct {
	vars     []string
	volatile bool
}

func (f fakeExpr) ReferencedVariables() []string { return f.vars }
func (f fakeExpr) IsVolatile() bool              { return f.volatile }

func TestPushDownJoinFiltersMovesSingleSidedFilter(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x")}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("y")}}
	n := &logical.Filter{Child: &logical.Join{Left: left, Right: right}, Expr: fakeExpr{vars: []string{"x"}}}

	out := PushDownJoinFilters(n)
	join, ok := out.(*logical.Join)
	require.True(t, ok)
	f, ok := join.Left.(*logical.Filter)
	require.True(t, ok)
	assert.Same(t, left, f.Child)
}

func TestPushDownJoinFiltersLeavesCrossSideFilterAbove(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x")}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("y")}}
	n := &logical.Filter{Child: &logical.Join{Left: left, Right: right}, Expr: fakeExpr{vars: []string{"x", "y"}}}

	out := PushDownJoinFilters(n)
	f, ok := out.(*logical.Filter)
	require.True(t, ok)
	_, ok = f.Child.(*logical.Join)
	assert.True(t, ok)
}

func TestPushDownJoinFiltersSkipsVolatileExpressions(t *testing.T) {
	left := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("x")}}
	right := &logical.Scan{Pattern: logical.QuadPattern{Subject: logical.BindVar("y")}}
	n := &logical.Filter{Child: &logical.Join{Left: left, Right: right}, Expr: fakeExpr{vars: []string{"x"}, volatile: true}}

	out := PushDownJoinFilters(n)
	f, ok := out.(*logical.Filter)
	require.True(t, ok)
	_, ok = f.Child.(*logical.Join)
	assert.True(t, ok)
}
