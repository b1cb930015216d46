package logical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadPatternVariablesDeduped(t *testing.T) {
	p := QuadPattern{
		Subject:   BindVar("x"),
		Predicate: BindConst(1),
		Object:    BindVar("x"),
		Graph:     BindVar("g"),
	}
	assert.Equal(t, []string{"x", "g"}, p.Variables())
}

func TestQuadPatternRepeatedVariableEquality(t *testing.T) {
	p := QuadPattern{Subject: BindVar("x"), Object: BindVar("x")}
	pairs := p.repeatedVariableEquality()
	assert.Equal(t, [][2]int{{0, 2}}, pairs)
}

func TestQuadPatternPlanFixesConstantsLeavesVariablesUnbound(t *testing.T) {
	p := QuadPattern{Subject: BindVar("s"), Predicate: BindConst(10), Object: BindConst(20), Graph: BindVar("g")}
	planned := p.Plan()
	assert.Nil(t, planned.Pattern.Subject)
	require := assert.New(t)
	require.NotNil(planned.Pattern.Predicate)
	require.Equal(uint32(10), *planned.Pattern.Predicate)
	require.NotNil(planned.Pattern.Object)
	require.Equal(uint32(20), *planned.Pattern.Object)
	require.Nil(planned.Pattern.Graph)
}
